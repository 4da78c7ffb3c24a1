package services

import (
	"context"
	"strings"

	"paddy-backend/internal/apperrors"
	"paddy-backend/internal/logger"
	"paddy-backend/internal/models"
)

type DistrictService struct {
	districts DistrictStore
	log       *logger.Logger
}

func NewDistrictService(districts DistrictStore, log *logger.Logger) *DistrictService {
	return &DistrictService{districts: districts, log: log}
}

func (s *DistrictService) Create(ctx context.Context, tc models.TenantContext, req *models.CreateDistrictRequest) (*models.District, error) {
	name := strings.TrimSpace(req.Name)
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if name == "" {
		return nil, apperrors.Validation("district name is required")
	}
	if code == "" {
		return nil, apperrors.Validation("district code is required")
	}

	d := &models.District{
		TenantID: tc.TenantID,
		Name:     name,
		Code:     code,
		State:    strings.TrimSpace(req.State),
	}
	if err := s.districts.Create(ctx, d); err != nil {
		return nil, err
	}
	s.log.Info("district created", "tenant_id", tc.TenantID, "district_id", d.ID, "code", d.Code)
	return d, nil
}

func (s *DistrictService) Get(ctx context.Context, tc models.TenantContext, id int) (*models.District, error) {
	return s.districts.Get(ctx, tc.TenantID, id)
}

func (s *DistrictService) List(ctx context.Context, tc models.TenantContext) ([]*models.District, error) {
	return s.districts.List(ctx, tc.TenantID)
}

func (s *DistrictService) Update(ctx context.Context, tc models.TenantContext, id int, req *models.UpdateDistrictRequest) (*models.District, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.Validation("district name is required")
	}
	if err := s.districts.Update(ctx, tc.TenantID, id, name, strings.TrimSpace(req.State)); err != nil {
		return nil, err
	}
	return s.districts.Get(ctx, tc.TenantID, id)
}

// Delete refuses while societies still reference the district.
func (s *DistrictService) Delete(ctx context.Context, tc models.TenantContext, id int) error {
	if _, err := s.districts.Get(ctx, tc.TenantID, id); err != nil {
		return err
	}
	count, err := s.districts.CountSocieties(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.BusinessRule("district has %d societies and cannot be deleted", count)
	}
	if err := s.districts.Delete(ctx, tc.TenantID, id); err != nil {
		return err
	}
	s.log.Info("district deleted", "tenant_id", tc.TenantID, "district_id", id)
	return nil
}
