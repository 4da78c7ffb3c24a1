package services

import (
	"context"
	"fmt"
	"strings"

	"paddy-backend/internal/apperrors"
	"paddy-backend/internal/logger"
	"paddy-backend/internal/models"
)

type SocietyService struct {
	societies SocietyStore
	districts DistrictStore
	log       *logger.Logger
}

func NewSocietyService(societies SocietyStore, districts DistrictStore, log *logger.Logger) *SocietyService {
	return &SocietyService{societies: societies, districts: districts, log: log}
}

// Create registers a society under a district and assigns it a generated
// code of the form PACS-<districtCode>-<seq>.
func (s *SocietyService) Create(ctx context.Context, tc models.TenantContext, req *models.CreateSocietyRequest) (*models.Society, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.Validation("society name is required")
	}
	district, err := s.districts.Get(ctx, tc.TenantID, req.DistrictID)
	if err != nil {
		return nil, err
	}

	seq, err := s.societies.NextCodeSeq(ctx, district.ID)
	if err != nil {
		return nil, err
	}

	society := &models.Society{
		TenantID:      tc.TenantID,
		DistrictID:    district.ID,
		Name:          name,
		Code:          fmt.Sprintf("PACS-%s-%03d", district.Code, seq),
		Address:       strings.TrimSpace(req.Address),
		ContactPerson: strings.TrimSpace(req.ContactPerson),
		ContactPhone:  strings.TrimSpace(req.ContactPhone),
	}
	if err := s.societies.Create(ctx, society); err != nil {
		return nil, err
	}
	society.DistrictName = district.Name
	s.log.Info("society created", "tenant_id", tc.TenantID, "society_id", society.ID, "code", society.Code)
	return society, nil
}

func (s *SocietyService) Get(ctx context.Context, tc models.TenantContext, id int) (*models.Society, error) {
	return s.societies.Get(ctx, tc.TenantID, id)
}

func (s *SocietyService) List(ctx context.Context, tc models.TenantContext, districtID int) ([]*models.Society, error) {
	return s.societies.List(ctx, tc.TenantID, districtID)
}

func (s *SocietyService) Update(ctx context.Context, tc models.TenantContext, id int, req *models.UpdateSocietyRequest) (*models.Society, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, apperrors.Validation("society name is required")
	}
	if err := s.societies.Update(ctx, tc.TenantID, id, req); err != nil {
		return nil, err
	}
	return s.societies.Get(ctx, tc.TenantID, id)
}

// Delete refuses while parties or ledger entries still reference the society.
func (s *SocietyService) Delete(ctx context.Context, tc models.TenantContext, id int) error {
	if _, err := s.societies.Get(ctx, tc.TenantID, id); err != nil {
		return err
	}
	entries, err := s.societies.CountEntries(ctx, id)
	if err != nil {
		return err
	}
	if entries > 0 {
		return apperrors.BusinessRule("society has %d gate pass entries and cannot be deleted", entries)
	}
	parties, err := s.societies.CountParties(ctx, id)
	if err != nil {
		return err
	}
	if parties > 0 {
		return apperrors.BusinessRule("society has %d parties and cannot be deleted", parties)
	}
	if err := s.societies.Delete(ctx, tc.TenantID, id); err != nil {
		return err
	}
	s.log.Info("society deleted", "tenant_id", tc.TenantID, "society_id", id)
	return nil
}
