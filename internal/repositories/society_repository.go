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

type SocietyRepository struct {
	DB *pgxpool.Pool
}

func NewSocietyRepository(db *pgxpool.Pool) *SocietyRepository {
	return &SocietyRepository{DB: db}
}

func (r *SocietyRepository) Create(ctx context.Context, s *models.Society) error {
	query := `
		INSERT INTO societies (tenant_id, district_id, name, code, address, contact_person, contact_phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	err := r.DB.QueryRow(ctx, query,
		s.TenantID, s.DistrictID, s.Name, s.Code, s.Address, s.ContactPerson, s.ContactPhone).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("society code %q already exists", s.Code)
		}
		return fmt.Errorf("create society: %w", err)
	}
	return nil
}

func (r *SocietyRepository) Get(ctx context.Context, tenantID, id int) (*models.Society, error) {
	row := r.DB.QueryRow(ctx, `
		SELECT s.id, s.tenant_id, s.district_id, s.name, s.code,
		       s.address, s.contact_person, s.contact_phone,
		       s.created_at, s.updated_at, d.name
		FROM societies s
		JOIN districts d ON d.id = s.district_id
		WHERE s.id = $1 AND s.tenant_id = $2
	`, id, tenantID)

	var s models.Society
	err := row.Scan(&s.ID, &s.TenantID, &s.DistrictID, &s.Name, &s.Code,
		&s.Address, &s.ContactPerson, &s.ContactPhone,
		&s.CreatedAt, &s.UpdatedAt, &s.DistrictName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("society %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get society: %w", err)
	}
	return &s, nil
}

// GetLite fetches only the fields the ledger writer denormalizes into an
// entry, skipping the district join of Get.
func (r *SocietyRepository) GetLite(ctx context.Context, tenantID, id int) (*models.SocietyLite, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, district_id FROM societies WHERE id = $1 AND tenant_id = $2`,
		id, tenantID)

	var s models.SocietyLite
	err := row.Scan(&s.ID, &s.Name, &s.DistrictID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("society %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get society: %w", err)
	}
	return &s, nil
}

func (r *SocietyRepository) List(ctx context.Context, tenantID int, districtID int) ([]*models.Society, error) {
	query := `
		SELECT s.id, s.tenant_id, s.district_id, s.name, s.code,
		       s.address, s.contact_person, s.contact_phone,
		       s.created_at, s.updated_at, d.name
		FROM societies s
		JOIN districts d ON d.id = s.district_id
		WHERE s.tenant_id = $1
	`
	args := []interface{}{tenantID}
	if districtID > 0 {
		query += " AND s.district_id = $2"
		args = append(args, districtID)
	}
	query += " ORDER BY s.name ASC"

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list societies: %w", err)
	}
	defer rows.Close()

	var societies []*models.Society
	for rows.Next() {
		var s models.Society
		if err := rows.Scan(&s.ID, &s.TenantID, &s.DistrictID, &s.Name, &s.Code,
			&s.Address, &s.ContactPerson, &s.ContactPhone,
			&s.CreatedAt, &s.UpdatedAt, &s.DistrictName); err != nil {
			return nil, fmt.Errorf("scan society: %w", err)
		}
		societies = append(societies, &s)
	}
	return societies, rows.Err()
}

func (r *SocietyRepository) Update(ctx context.Context, tenantID, id int, req *models.UpdateSocietyRequest) error {
	tag, err := r.DB.Exec(ctx, `
		UPDATE societies
		SET name = $1, address = $2, contact_person = $3, contact_phone = $4, updated_at = NOW()
		WHERE id = $5 AND tenant_id = $6
	`, req.Name, req.Address, req.ContactPerson, req.ContactPhone, id, tenantID)
	if err != nil {
		return fmt.Errorf("update society: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("society %d not found", id)
	}
	return nil
}

func (r *SocietyRepository) Delete(ctx context.Context, tenantID, id int) error {
	tag, err := r.DB.Exec(ctx,
		`DELETE FROM societies WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return fmt.Errorf("delete society: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("society %d not found", id)
	}
	return nil
}

// NextCodeSeq returns the next sequence number for society codes within a
// district, counting existing societies plus one.
func (r *SocietyRepository) NextCodeSeq(ctx context.Context, districtID int) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM societies WHERE district_id = $1`, districtID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("next code seq: %w", err)
	}
	return count + 1, nil
}

func (r *SocietyRepository) CountParties(ctx context.Context, id int) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM parties WHERE society_id = $1`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count parties: %w", err)
	}
	return count, nil
}

func (r *SocietyRepository) CountEntries(ctx context.Context, id int) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM gate_pass_entries WHERE society_id = $1`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return count, nil
}
