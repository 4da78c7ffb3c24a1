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

type PartyRepository struct {
	DB *pgxpool.Pool
}

func NewPartyRepository(db *pgxpool.Pool) *PartyRepository {
	return &PartyRepository{DB: db}
}

// Create inserts a party. A unique-violation is surfaced as ErrDuplicateParty
// so the resolver can re-read the row another writer just inserted.
var ErrDuplicateParty = errors.New("party already exists")

func (r *PartyRepository) Create(ctx context.Context, p *models.Party) error {
	query := `
		INSERT INTO parties (tenant_id, society_id, name, father_name, phone, address)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := r.DB.QueryRow(ctx, query,
		p.TenantID, p.SocietyID, p.Name, p.FatherName, p.Phone, p.Address).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateParty
		}
		return fmt.Errorf("create party: %w", err)
	}
	return nil
}

func (r *PartyRepository) Get(ctx context.Context, tenantID, id int) (*models.Party, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, tenant_id, society_id, name, father_name, phone, address, created_at, updated_at
		 FROM parties WHERE id = $1 AND tenant_id = $2`, id, tenantID)

	var p models.Party
	err := row.Scan(&p.ID, &p.TenantID, &p.SocietyID, &p.Name, &p.FatherName,
		&p.Phone, &p.Address, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("party %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get party: %w", err)
	}
	return &p, nil
}

// FindByName looks a party up within a society by case-insensitive trimmed
// name, matching the lower(name) index.
func (r *PartyRepository) FindByName(ctx context.Context, societyID int, name string) (*models.Party, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, tenant_id, society_id, name, father_name, phone, address, created_at, updated_at
		 FROM parties WHERE society_id = $1 AND lower(name) = lower($2)`, societyID, name)

	var p models.Party
	err := row.Scan(&p.ID, &p.TenantID, &p.SocietyID, &p.Name, &p.FatherName,
		&p.Phone, &p.Address, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("party %q not found", name)
	}
	if err != nil {
		return nil, fmt.Errorf("find party: %w", err)
	}
	return &p, nil
}

func (r *PartyRepository) List(ctx context.Context, tenantID, societyID int, search string) ([]*models.Party, error) {
	query := `
		SELECT id, tenant_id, society_id, name, father_name, phone, address, created_at, updated_at
		FROM parties WHERE tenant_id = $1
	`
	args := []interface{}{tenantID}
	if societyID > 0 {
		args = append(args, societyID)
		query += fmt.Sprintf(" AND society_id = $%d", len(args))
	}
	if search != "" {
		args = append(args, "%"+search+"%")
		query += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}
	query += " ORDER BY name ASC"

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list parties: %w", err)
	}
	defer rows.Close()

	var parties []*models.Party
	for rows.Next() {
		var p models.Party
		if err := rows.Scan(&p.ID, &p.TenantID, &p.SocietyID, &p.Name, &p.FatherName,
			&p.Phone, &p.Address, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan party: %w", err)
		}
		parties = append(parties, &p)
	}
	return parties, rows.Err()
}

func (r *PartyRepository) Update(ctx context.Context, tenantID, id int, req *models.UpdatePartyRequest) error {
	tag, err := r.DB.Exec(ctx, `
		UPDATE parties
		SET name = $1, father_name = $2, phone = $3, address = $4, updated_at = NOW()
		WHERE id = $5 AND tenant_id = $6
	`, req.Name, req.FatherName, req.Phone, req.Address, id, tenantID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("party %q already exists in this society", req.Name)
		}
		return fmt.Errorf("update party: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("party %d not found", id)
	}
	return nil
}

func (r *PartyRepository) Delete(ctx context.Context, tenantID, id int) error {
	tag, err := r.DB.Exec(ctx,
		`DELETE FROM parties WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return fmt.Errorf("delete party: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("party %d not found", id)
	}
	return nil
}

func (r *PartyRepository) CountEntries(ctx context.Context, id int) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM gate_pass_entries WHERE party_id = $1`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return count, nil
}
