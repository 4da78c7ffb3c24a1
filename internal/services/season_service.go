package services

import (
	"context"
	"strings"

	"paddy-backend/internal/apperrors"
	"paddy-backend/internal/logger"
	"paddy-backend/internal/models"
)

type SeasonService struct {
	seasons SeasonStore
	cache   StatsCache
	log     *logger.Logger
}

func NewSeasonService(seasons SeasonStore, cache StatsCache, log *logger.Logger) *SeasonService {
	return &SeasonService{seasons: seasons, cache: cache, log: log}
}

func validSeasonType(t string) bool {
	return t == models.SeasonTypeKharif || t == models.SeasonTypeRabi
}

func (s *SeasonService) Create(ctx context.Context, tc models.TenantContext, req *models.CreateSeasonRequest) (*models.Season, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.Validation("season name is required")
	}
	if !validSeasonType(req.Type) {
		return nil, apperrors.Validation("season type must be %q or %q", models.SeasonTypeKharif, models.SeasonTypeRabi)
	}

	season := &models.Season{TenantID: tc.TenantID, Name: name, Type: req.Type}
	if err := s.seasons.Create(ctx, season); err != nil {
		return nil, err
	}
	s.log.Info("season created", "tenant_id", tc.TenantID, "season_id", season.ID, "name", season.Name)
	return season, nil
}

func (s *SeasonService) Get(ctx context.Context, tc models.TenantContext, id int) (*models.Season, error) {
	return s.seasons.Get(ctx, tc.TenantID, id)
}

func (s *SeasonService) GetActive(ctx context.Context, tc models.TenantContext) (*models.Season, error) {
	return s.seasons.GetActive(ctx, tc.TenantID)
}

func (s *SeasonService) List(ctx context.Context, tc models.TenantContext) ([]*models.Season, error) {
	return s.seasons.List(ctx, tc.TenantID)
}

func (s *SeasonService) Update(ctx context.Context, tc models.TenantContext, id int, req *models.UpdateSeasonRequest) (*models.Season, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.Validation("season name is required")
	}
	if !validSeasonType(req.Type) {
		return nil, apperrors.Validation("season type must be %q or %q", models.SeasonTypeKharif, models.SeasonTypeRabi)
	}
	if err := s.seasons.Update(ctx, tc.TenantID, id, name, req.Type); err != nil {
		return nil, err
	}
	return s.seasons.Get(ctx, tc.TenantID, id)
}

// Delete removes a season. Seasons with recorded entries are referenced by
// the ledger and cannot be deleted, nor can the currently active season.
func (s *SeasonService) Delete(ctx context.Context, tc models.TenantContext, id int) error {
	season, err := s.seasons.Get(ctx, tc.TenantID, id)
	if err != nil {
		return err
	}
	if season.IsActive {
		return apperrors.BusinessRule("cannot delete the active season")
	}
	hasEntries, err := s.seasons.HasEntries(ctx, tc.TenantID, id)
	if err != nil {
		return err
	}
	if hasEntries {
		return apperrors.BusinessRule("season has gate pass entries and cannot be deleted")
	}
	if err := s.seasons.Delete(ctx, tc.TenantID, id); err != nil {
		return err
	}
	s.log.Info("season deleted", "tenant_id", tc.TenantID, "season_id", id)
	return nil
}

// SetActive makes the season the tenant's single active one. The store swaps
// the flag transactionally so there is never a moment with two active
// seasons visible.
func (s *SeasonService) SetActive(ctx context.Context, tc models.TenantContext, id int) (*models.Season, error) {
	if err := s.seasons.SetActive(ctx, tc.TenantID, id); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, tc.TenantID)
	s.log.Info("season activated", "tenant_id", tc.TenantID, "season_id", id)
	return s.seasons.Get(ctx, tc.TenantID, id)
}

// SetTargets upserts per-society targets for the season.
func (s *SeasonService) SetTargets(ctx context.Context, tc models.TenantContext, seasonID int, req *models.SetTargetsRequest) (int, error) {
	if _, err := s.seasons.Get(ctx, tc.TenantID, seasonID); err != nil {
		return 0, err
	}
	if len(req.Targets) == 0 {
		return 0, apperrors.Validation("at least one target is required")
	}
	for _, t := range req.Targets {
		if t.SocietyID <= 0 {
			return 0, apperrors.Validation("society_id is required on every target")
		}
		if t.TargetQuantity < 0 {
			return 0, apperrors.Validation("target quantity cannot be negative")
		}
	}

	count, err := s.seasons.UpsertTargets(ctx, seasonID, req.Targets)
	if err != nil {
		return count, err
	}
	s.cache.Invalidate(ctx, tc.TenantID)
	s.log.Info("targets set", "tenant_id", tc.TenantID, "season_id", seasonID, "count", count)
	return count, nil
}

func (s *SeasonService) GetTargets(ctx context.Context, tc models.TenantContext, seasonID int) ([]models.SocietyTargetRow, error) {
	if _, err := s.seasons.Get(ctx, tc.TenantID, seasonID); err != nil {
		return nil, err
	}
	return s.seasons.GetTargets(ctx, tc.TenantID, seasonID)
}
