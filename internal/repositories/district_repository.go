package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"paddy-backend/internal/apperrors"
	"paddy-backend/internal/models"
)

type DistrictRepository struct {
	DB *pgxpool.Pool
}

func NewDistrictRepository(db *pgxpool.Pool) *DistrictRepository {
	return &DistrictRepository{DB: db}
}

func (r *DistrictRepository) Create(ctx context.Context, d *models.District) error {
	query := `
		INSERT INTO districts (tenant_id, name, code, state)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := r.DB.QueryRow(ctx, query, d.TenantID, d.Name, d.Code, d.State).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("district code %q already exists", d.Code)
		}
		return fmt.Errorf("create district: %w", err)
	}
	return nil
}

func (r *DistrictRepository) Get(ctx context.Context, tenantID, id int) (*models.District, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, tenant_id, name, code, state, created_at, updated_at
		 FROM districts WHERE id = $1 AND tenant_id = $2`, id, tenantID)

	var d models.District
	err := row.Scan(&d.ID, &d.TenantID, &d.Name, &d.Code, &d.State, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("district %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get district: %w", err)
	}
	return &d, nil
}

func (r *DistrictRepository) List(ctx context.Context, tenantID int) ([]*models.District, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, tenant_id, name, code, state, created_at, updated_at
		 FROM districts WHERE tenant_id = $1 ORDER BY name ASC`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list districts: %w", err)
	}
	defer rows.Close()

	var districts []*models.District
	for rows.Next() {
		var d models.District
		if err := rows.Scan(&d.ID, &d.TenantID, &d.Name, &d.Code, &d.State, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan district: %w", err)
		}
		districts = append(districts, &d)
	}
	return districts, rows.Err()
}

// Update changes name and state only. The code is the stable key society
// codes are derived from and never changes after creation.
func (r *DistrictRepository) Update(ctx context.Context, tenantID, id int, name, state string) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE districts SET name = $1, state = $2, updated_at = NOW()
		 WHERE id = $3 AND tenant_id = $4`, name, state, id, tenantID)
	if err != nil {
		return fmt.Errorf("update district: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("district %d not found", id)
	}
	return nil
}

func (r *DistrictRepository) Delete(ctx context.Context, tenantID, id int) error {
	tag, err := r.DB.Exec(ctx,
		`DELETE FROM districts WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return fmt.Errorf("delete district: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("district %d not found", id)
	}
	return nil
}

func (r *DistrictRepository) CountSocieties(ctx context.Context, id int) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM societies WHERE district_id = $1`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count societies: %w", err)
	}
	return count, nil
}
