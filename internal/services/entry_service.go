package services

import (
	"context"
	"math"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"paddy-backend/internal/apperrors"
	"paddy-backend/internal/logger"
	"paddy-backend/internal/models"
	"paddy-backend/internal/timeutil"
)

// EntryService is the ledger writer: it validates a gate pass, resolves its
// party, denormalizes reference names onto the entry, and persists it.
type EntryService struct {
	entries   EntryStore
	seasons   SeasonStore
	societies SocietyStore
	parties   *PartyService
	cache     StatsCache
	log       *logger.Logger
}

func NewEntryService(entries EntryStore, seasons SeasonStore, societies SocietyStore,
	parties *PartyService, cache StatsCache, log *logger.Logger) *EntryService {
	return &EntryService{
		entries:   entries,
		seasons:   seasons,
		societies: societies,
		parties:   parties,
		cache:     cache,
		log:       log,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// normalizeVehicleNo strips separators so "cg 04-ab 1234" stores as
// "CG04AB1234" and token-level matching stays exact.
func normalizeVehicleNo(no string) string {
	no = strings.ToUpper(strings.TrimSpace(no))
	no = strings.ReplaceAll(no, " ", "")
	return strings.ReplaceAll(no, "-", "")
}

func (s *EntryService) Create(ctx context.Context, tc models.TenantContext, req *models.CreateEntryRequest) (*models.GatePassEntry, error) {
	token := strings.TrimSpace(req.TokenNo)
	if token == "" {
		return nil, apperrors.Validation("token number is required")
	}
	if req.Bags <= 0 {
		return nil, apperrors.Validation("bags must be positive")
	}
	if req.Quantity <= 0 {
		return nil, apperrors.Validation("quantity must be positive")
	}
	if !models.ValidVehicleType(req.VehicleType) {
		return nil, apperrors.Validation("invalid vehicle type %q", req.VehicleType)
	}
	vehicleNo := normalizeVehicleNo(req.VehicleNo)
	if !models.ValidVehicleNo(vehicleNo) {
		return nil, apperrors.Validation("invalid vehicle number %q", req.VehicleNo)
	}

	date := timeutil.Now()
	if req.Date != "" {
		d, err := timeutil.ParseDate(req.Date)
		if err != nil {
			return nil, apperrors.Validation("invalid date %q, want YYYY-MM-DD", req.Date)
		}
		date = d
	}

	// Society and season are independent lookups; fetch them concurrently.
	var (
		society *models.SocietyLite
		season  *models.Season
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		society, err = s.societies.GetLite(gctx, tc.TenantID, req.SocietyID)
		return err
	})
	g.Go(func() error {
		var err error
		if req.SeasonID != nil {
			season, err = s.seasons.Get(gctx, tc.TenantID, *req.SeasonID)
		} else {
			season, err = s.seasons.GetActive(gctx, tc.TenantID)
			if apperrors.IsNotFound(err) {
				err = apperrors.Validation("no active season")
			}
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if !season.IsActive {
		return nil, apperrors.Validation("season %q is not active", season.Name)
	}

	exists, err := s.entries.TokenExists(ctx, tc.TenantID, token, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Conflict("token %q already used", token)
	}

	party, err := s.parties.Resolve(ctx, tc, society.ID, req.PartyName, req.FatherName, req.Phone)
	if err != nil {
		return nil, err
	}

	entry := &models.GatePassEntry{
		TenantID:        tc.TenantID,
		TokenNo:         token,
		Date:            date,
		PartyID:         party.ID,
		PartyName:       party.Name,
		SocietyID:       society.ID,
		SocietyName:     society.Name,
		DistrictID:      society.DistrictID,
		SeasonID:        season.ID,
		VehicleType:     req.VehicleType,
		VehicleNo:       vehicleNo,
		Bags:            req.Bags,
		Quantity:        req.Quantity,
		CreatedByUserID: tc.UserID,
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}
	entry.QtyPerBag = round2(entry.Quantity / float64(entry.Bags))

	s.cache.Invalidate(ctx, tc.TenantID)
	s.log.Info("entry recorded",
		"tenant_id", tc.TenantID, "entry_id", entry.ID, "token", entry.TokenNo,
		"society_id", entry.SocietyID, "quantity", entry.Quantity)
	return entry, nil
}

func (s *EntryService) Get(ctx context.Context, tc models.TenantContext, id int) (*models.GatePassEntry, error) {
	return s.entries.Get(ctx, tc.TenantID, id)
}

func (s *EntryService) List(ctx context.Context, tc models.TenantContext, f *models.EntryFilter) (*models.EntryPage, error) {
	return s.entries.List(ctx, tc.TenantID, f)
}

// Update patches an entry in place. Party and society bindings are fixed at
// creation; only the gate-side fields can change.
func (s *EntryService) Update(ctx context.Context, tc models.TenantContext, id int, req *models.UpdateEntryRequest) (*models.GatePassEntry, error) {
	entry, err := s.entries.Get(ctx, tc.TenantID, id)
	if err != nil {
		return nil, err
	}

	if req.TokenNo != nil {
		token := strings.TrimSpace(*req.TokenNo)
		if token == "" {
			return nil, apperrors.Validation("token number is required")
		}
		if token != entry.TokenNo {
			exists, err := s.entries.TokenExists(ctx, tc.TenantID, token, id)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, apperrors.Conflict("token %q already used", token)
			}
		}
		entry.TokenNo = token
	}
	if req.Date != nil {
		d, err := timeutil.ParseDate(*req.Date)
		if err != nil {
			return nil, apperrors.Validation("invalid date %q, want YYYY-MM-DD", *req.Date)
		}
		entry.Date = d
	}
	if req.VehicleType != nil {
		if !models.ValidVehicleType(*req.VehicleType) {
			return nil, apperrors.Validation("invalid vehicle type %q", *req.VehicleType)
		}
		entry.VehicleType = *req.VehicleType
	}
	if req.VehicleNo != nil {
		no := normalizeVehicleNo(*req.VehicleNo)
		if !models.ValidVehicleNo(no) {
			return nil, apperrors.Validation("invalid vehicle number %q", *req.VehicleNo)
		}
		entry.VehicleNo = no
	}
	if req.Bags != nil {
		if *req.Bags <= 0 {
			return nil, apperrors.Validation("bags must be positive")
		}
		entry.Bags = *req.Bags
	}
	if req.Quantity != nil {
		if *req.Quantity <= 0 {
			return nil, apperrors.Validation("quantity must be positive")
		}
		entry.Quantity = *req.Quantity
	}

	if err := s.entries.Update(ctx, entry); err != nil {
		return nil, err
	}
	entry.QtyPerBag = round2(entry.Quantity / float64(entry.Bags))
	entry.UpdatedAt = time.Now()

	s.cache.Invalidate(ctx, tc.TenantID)
	return entry, nil
}

func (s *EntryService) Delete(ctx context.Context, tc models.TenantContext, id int) error {
	if err := s.entries.Delete(ctx, tc.TenantID, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, tc.TenantID)
	s.log.Info("entry deleted", "tenant_id", tc.TenantID, "entry_id", id)
	return nil
}
