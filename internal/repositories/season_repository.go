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

type SeasonRepository struct {
	DB *pgxpool.Pool
}

func NewSeasonRepository(db *pgxpool.Pool) *SeasonRepository {
	return &SeasonRepository{DB: db}
}

func (r *SeasonRepository) Create(ctx context.Context, s *models.Season) error {
	query := `
		INSERT INTO seasons (tenant_id, name, type, is_active)
		VALUES ($1, $2, $3, false)
		RETURNING id, created_at, updated_at
	`
	err := r.DB.QueryRow(ctx, query, s.TenantID, s.Name, s.Type).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("season %q already exists", s.Name)
		}
		return fmt.Errorf("create season: %w", err)
	}
	return nil
}

func (r *SeasonRepository) Get(ctx context.Context, tenantID, id int) (*models.Season, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, tenant_id, name, type, is_active, created_at, updated_at
		 FROM seasons WHERE id = $1 AND tenant_id = $2`, id, tenantID)

	var s models.Season
	err := row.Scan(&s.ID, &s.TenantID, &s.Name, &s.Type, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("season %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get season: %w", err)
	}
	return &s, nil
}

// GetActive returns the tenant's single active season, or NotFound.
func (r *SeasonRepository) GetActive(ctx context.Context, tenantID int) (*models.Season, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, tenant_id, name, type, is_active, created_at, updated_at
		 FROM seasons WHERE tenant_id = $1 AND is_active = true`, tenantID)

	var s models.Season
	err := row.Scan(&s.ID, &s.TenantID, &s.Name, &s.Type, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("no active season")
	}
	if err != nil {
		return nil, fmt.Errorf("get active season: %w", err)
	}
	return &s, nil
}

func (r *SeasonRepository) List(ctx context.Context, tenantID int) ([]*models.Season, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, tenant_id, name, type, is_active, created_at, updated_at
		 FROM seasons WHERE tenant_id = $1 ORDER BY created_at DESC`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	defer rows.Close()

	var seasons []*models.Season
	for rows.Next() {
		var s models.Season
		if err := rows.Scan(&s.ID, &s.TenantID, &s.Name, &s.Type, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan season: %w", err)
		}
		seasons = append(seasons, &s)
	}
	return seasons, rows.Err()
}

func (r *SeasonRepository) Update(ctx context.Context, tenantID, id int, name, seasonType string) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE seasons SET name = $1, type = $2, updated_at = NOW()
		 WHERE id = $3 AND tenant_id = $4`, name, seasonType, id, tenantID)
	if err != nil {
		return fmt.Errorf("update season: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("season %d not found", id)
	}
	return nil
}

func (r *SeasonRepository) Delete(ctx context.Context, tenantID, id int) error {
	tag, err := r.DB.Exec(ctx,
		`DELETE FROM seasons WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return fmt.Errorf("delete season: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("season %d not found", id)
	}
	return nil
}

// SetActive deactivates every other season of the tenant and activates the
// target season in one transaction. Partial completion would leave zero or
// two active seasons, so both statements commit or neither does.
func (r *SeasonRepository) SetActive(ctx context.Context, tenantID, id int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin set-active: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE seasons SET is_active = false, updated_at = NOW()
		 WHERE tenant_id = $1 AND is_active = true AND id <> $2`, tenantID, id); err != nil {
		return fmt.Errorf("deactivate seasons: %w", err)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE seasons SET is_active = true, updated_at = NOW()
		 WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return fmt.Errorf("activate season: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("season %d not found", id)
	}

	return tx.Commit(ctx)
}

// HasEntries reports whether any ledger entry references the season.
func (r *SeasonRepository) HasEntries(ctx context.Context, tenantID, id int) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM gate_pass_entries WHERE season_id = $1 AND tenant_id = $2)`,
		id, tenantID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check season entries: %w", err)
	}
	return exists, nil
}

// UpsertTargets writes one society_targets row per assignment, updating the
// quantity when the (season, society) pair already exists.
func (r *SeasonRepository) UpsertTargets(ctx context.Context, seasonID int, targets []models.TargetAssignment) (int, error) {
	count := 0
	for _, t := range targets {
		_, err := r.DB.Exec(ctx, `
			INSERT INTO society_targets (season_id, society_id, target_quantity)
			VALUES ($1, $2, $3)
			ON CONFLICT (season_id, society_id)
			DO UPDATE SET target_quantity = EXCLUDED.target_quantity
		`, seasonID, t.SocietyID, t.TargetQuantity)
		if err != nil {
			return count, fmt.Errorf("upsert target for society %d: %w", t.SocietyID, err)
		}
		count++
	}
	return count, nil
}

// GetTargets returns every society of the tenant with its target for the
// season, defaulting to 0 when unset.
func (r *SeasonRepository) GetTargets(ctx context.Context, tenantID, seasonID int) ([]models.SocietyTargetRow, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT s.id, s.name, s.code, d.id, d.name, COALESCE(t.target_quantity, 0)
		FROM societies s
		JOIN districts d ON d.id = s.district_id
		LEFT JOIN society_targets t ON t.society_id = s.id AND t.season_id = $1
		WHERE s.tenant_id = $2
		ORDER BY s.name ASC
	`, seasonID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("get targets: %w", err)
	}
	defer rows.Close()

	var out []models.SocietyTargetRow
	for rows.Next() {
		var row models.SocietyTargetRow
		if err := rows.Scan(&row.SocietyID, &row.SocietyName, &row.SocietyCode,
			&row.DistrictID, &row.DistrictName, &row.TargetQuantity); err != nil {
			return nil, fmt.Errorf("scan target row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// SumTargets returns the season's total assigned target.
func (r *SeasonRepository) SumTargets(ctx context.Context, seasonID int) (float64, error) {
	var sum float64
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(target_quantity), 0) FROM society_targets WHERE season_id = $1`,
		seasonID).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum targets: %w", err)
	}
	return sum, nil
}
