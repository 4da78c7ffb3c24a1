package services

import (
	"context"
	"errors"
	"strings"

	"paddy-backend/internal/apperrors"
	"paddy-backend/internal/logger"
	"paddy-backend/internal/models"
	"paddy-backend/internal/repositories"
)

type PartyService struct {
	parties   PartyStore
	societies SocietyStore
	log       *logger.Logger
}

func NewPartyService(parties PartyStore, societies SocietyStore, log *logger.Logger) *PartyService {
	return &PartyService{parties: parties, societies: societies, log: log}
}

func (s *PartyService) Create(ctx context.Context, tc models.TenantContext, req *models.CreatePartyRequest) (*models.Party, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.Validation("party name is required")
	}
	if _, err := s.societies.GetLite(ctx, tc.TenantID, req.SocietyID); err != nil {
		return nil, err
	}

	p := &models.Party{
		TenantID:   tc.TenantID,
		SocietyID:  req.SocietyID,
		Name:       name,
		FatherName: strings.TrimSpace(req.FatherName),
		Phone:      strings.TrimSpace(req.Phone),
		Address:    strings.TrimSpace(req.Address),
	}
	if err := s.parties.Create(ctx, p); err != nil {
		if errors.Is(err, repositories.ErrDuplicateParty) {
			return nil, apperrors.Conflict("party %q already exists in this society", name)
		}
		return nil, err
	}
	return p, nil
}

// Resolve finds the society's party with the given name, creating it when
// absent. Identity is the trimmed name matched case-insensitively. A create
// losing the race to a concurrent writer re-reads the winner's row, so the
// returned party is always the one persisted.
func (s *PartyService) Resolve(ctx context.Context, tc models.TenantContext, societyID int, name, fatherName, phone string) (*models.Party, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Validation("party name is required")
	}

	existing, err := s.parties.FindByName(ctx, societyID, name)
	if err == nil {
		return existing, nil
	}
	if !apperrors.IsNotFound(err) {
		return nil, err
	}

	p := &models.Party{
		TenantID:   tc.TenantID,
		SocietyID:  societyID,
		Name:       name,
		FatherName: strings.TrimSpace(fatherName),
		Phone:      strings.TrimSpace(phone),
	}
	err = s.parties.Create(ctx, p)
	if err == nil {
		s.log.Debug("party created", "tenant_id", tc.TenantID, "society_id", societyID, "party_id", p.ID)
		return p, nil
	}
	if errors.Is(err, repositories.ErrDuplicateParty) {
		return s.parties.FindByName(ctx, societyID, name)
	}
	return nil, err
}

func (s *PartyService) Get(ctx context.Context, tc models.TenantContext, id int) (*models.Party, error) {
	return s.parties.Get(ctx, tc.TenantID, id)
}

func (s *PartyService) List(ctx context.Context, tc models.TenantContext, societyID int, search string) ([]*models.Party, error) {
	return s.parties.List(ctx, tc.TenantID, societyID, search)
}

func (s *PartyService) Update(ctx context.Context, tc models.TenantContext, id int, req *models.UpdatePartyRequest) (*models.Party, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, apperrors.Validation("party name is required")
	}
	if err := s.parties.Update(ctx, tc.TenantID, id, req); err != nil {
		return nil, err
	}
	return s.parties.Get(ctx, tc.TenantID, id)
}

// Delete refuses while ledger entries still reference the party.
func (s *PartyService) Delete(ctx context.Context, tc models.TenantContext, id int) error {
	if _, err := s.parties.Get(ctx, tc.TenantID, id); err != nil {
		return err
	}
	entries, err := s.parties.CountEntries(ctx, id)
	if err != nil {
		return err
	}
	if entries > 0 {
		return apperrors.BusinessRule("party has %d gate pass entries and cannot be deleted", entries)
	}
	return s.parties.Delete(ctx, tc.TenantID, id)
}
