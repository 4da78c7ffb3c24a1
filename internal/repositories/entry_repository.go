package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"paddy-backend/internal/apperrors"
	"paddy-backend/internal/models"
	"paddy-backend/internal/query"
)

type EntryRepository struct {
	DB *pgxpool.Pool
}

func NewEntryRepository(db *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{DB: db}
}

// qty_per_bag is derived at read time, never stored.
const entryColumns = `
	e.id, e.tenant_id, e.token_no, e.date, e.party_id, e.party_name,
	e.society_id, e.society_name, e.district_id, e.season_id,
	e.vehicle_type, e.vehicle_no, e.bags, e.quantity,
	COALESCE(e.quantity / NULLIF(e.bags, 0), 0),
	e.created_by_user_id, e.created_at, e.updated_at`

func (r *EntryRepository) Create(ctx context.Context, e *models.GatePassEntry) error {
	stmt := `
		INSERT INTO gate_pass_entries
			(tenant_id, token_no, date, party_id, party_name, society_id, society_name,
			 district_id, season_id, vehicle_type, vehicle_no, bags, quantity,
			 created_by_user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at
	`
	err := r.DB.QueryRow(ctx, stmt,
		e.TenantID, e.TokenNo, e.Date, e.PartyID, e.PartyName, e.SocietyID, e.SocietyName,
		e.DistrictID, e.SeasonID, e.VehicleType, e.VehicleNo, e.Bags, e.Quantity,
		e.CreatedByUserID).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("token %q already used", e.TokenNo)
		}
		return fmt.Errorf("create entry: %w", err)
	}
	return nil
}

func (r *EntryRepository) Get(ctx context.Context, tenantID, id int) (*models.GatePassEntry, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+entryColumns+` FROM gate_pass_entries e WHERE e.id = $1 AND e.tenant_id = $2`,
		id, tenantID)

	var e models.GatePassEntry
	if err := scanEntry(row, &e); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("entry %d not found", id)
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return &e, nil
}

func scanEntry(row pgx.Row, e *models.GatePassEntry) error {
	return row.Scan(&e.ID, &e.TenantID, &e.TokenNo, &e.Date, &e.PartyID, &e.PartyName,
		&e.SocietyID, &e.SocietyName, &e.DistrictID, &e.SeasonID,
		&e.VehicleType, &e.VehicleNo, &e.Bags, &e.Quantity, &e.QtyPerBag,
		&e.CreatedByUserID, &e.CreatedAt, &e.UpdatedAt)
}

var entrySortKeys = map[string]string{
	"date":     "e.date",
	"token":    "e.token_no",
	"quantity": "e.quantity",
	"bags":     "e.bags",
	"party":    "e.party_name",
	"society":  "e.society_name",
	"created":  "e.created_at",
}

// entryListQuery carries the composed count and page statements; the count
// runs against the predicate args only, the page adds limit/offset.
type entryListQuery struct {
	countSQL  string
	countArgs []interface{}
	listSQL   string
	listArgs  []interface{}
	pg        query.Pagination
}

func buildEntryListQuery(tenantID int, f *models.EntryFilter) (*entryListQuery, error) {
	b := query.NewBuilder()
	b.Where("e.tenant_id = ?", tenantID)
	b.WhereIf(f.SocietyID > 0, "e.society_id = ?", f.SocietyID)
	b.WhereIf(f.DistrictID > 0, "e.district_id = ?", f.DistrictID)
	b.WhereIf(f.SeasonID > 0, "e.season_id = ?", f.SeasonID)
	b.WhereIf(f.PartyID > 0, "e.party_id = ?", f.PartyID)
	b.WhereIf(f.VehicleType != "", "e.vehicle_type = ?", f.VehicleType)
	if f.Search != "" {
		pat := query.SearchPattern(f.Search)
		b.Where("(e.token_no ILIKE ? OR e.party_name ILIKE ? OR e.vehicle_no ILIKE ?)", pat, pat, pat)
	}

	rng, err := query.ParseDateRange(f.FromDate, f.ToDate)
	if err != nil {
		return nil, err
	}
	rng.Apply(b, "e.date")

	q := &entryListQuery{
		countSQL:  `SELECT COUNT(*) FROM gate_pass_entries e ` + b.Clause(),
		countArgs: append([]interface{}(nil), b.Args()...),
		pg:        query.NormalizePagination(f.Page, f.Limit),
	}

	// e.id tiebreak keeps pagination stable when the sort column repeats.
	order := query.OrderBy(f.SortBy, f.SortOrder, "date", entrySortKeys) + ", e.id DESC"

	q.listSQL = fmt.Sprintf(`
		SELECT %s, d.name, s.name
		FROM gate_pass_entries e
		JOIN districts d ON d.id = e.district_id
		JOIN seasons s ON s.id = e.season_id
		%s
		%s
		LIMIT %s OFFSET %s
	`, entryColumns, b.Clause(), order, b.Bind(q.pg.Limit), b.Bind(q.pg.Offset()))
	q.listArgs = b.Args()
	return q, nil
}

// List applies the filter predicates, counts the full match set, then returns
// one page joined with district and season names.
func (r *EntryRepository) List(ctx context.Context, tenantID int, f *models.EntryFilter) (*models.EntryPage, error) {
	q, err := buildEntryListQuery(tenantID, f)
	if err != nil {
		return nil, err
	}

	var total int
	if err := r.DB.QueryRow(ctx, q.countSQL, q.countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count entries: %w", err)
	}

	rows, err := r.DB.Query(ctx, q.listSQL, q.listArgs...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	entries := []models.EntryListItem{}
	for rows.Next() {
		var item models.EntryListItem
		if err := rows.Scan(&item.ID, &item.TenantID, &item.TokenNo, &item.Date,
			&item.PartyID, &item.PartyName, &item.SocietyID, &item.SocietyName,
			&item.DistrictID, &item.SeasonID, &item.VehicleType, &item.VehicleNo,
			&item.Bags, &item.Quantity, &item.QtyPerBag, &item.CreatedByUserID,
			&item.CreatedAt, &item.UpdatedAt,
			&item.DistrictName, &item.SeasonName); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &models.EntryPage{Entries: entries, Total: total, Page: q.pg.Page, Limit: q.pg.Limit}, nil
}

func (r *EntryRepository) Update(ctx context.Context, e *models.GatePassEntry) error {
	tag, err := r.DB.Exec(ctx, `
		UPDATE gate_pass_entries
		SET token_no = $1, date = $2, party_id = $3, party_name = $4,
		    society_id = $5, society_name = $6, district_id = $7, season_id = $8,
		    vehicle_type = $9, vehicle_no = $10, bags = $11, quantity = $12,
		    updated_at = NOW()
		WHERE id = $13 AND tenant_id = $14
	`, e.TokenNo, e.Date, e.PartyID, e.PartyName,
		e.SocietyID, e.SocietyName, e.DistrictID, e.SeasonID,
		e.VehicleType, e.VehicleNo, e.Bags, e.Quantity,
		e.ID, e.TenantID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("token %q already used", e.TokenNo)
		}
		return fmt.Errorf("update entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("entry %d not found", e.ID)
	}
	return nil
}

func (r *EntryRepository) Delete(ctx context.Context, tenantID, id int) error {
	tag, err := r.DB.Exec(ctx,
		`DELETE FROM gate_pass_entries WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("entry %d not found", id)
	}
	return nil
}

// TokenExists checks token uniqueness within the tenant, optionally excluding
// one entry so updates don't collide with themselves.
func (r *EntryRepository) TokenExists(ctx context.Context, tenantID int, token string, excludeID int) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM gate_pass_entries
			WHERE tenant_id = $1 AND token_no = $2 AND id <> $3
		)`, tenantID, token, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check token: %w", err)
	}
	return exists, nil
}

// Recent returns the latest n entries of a season for the dashboard.
func (r *EntryRepository) Recent(ctx context.Context, tenantID, seasonID, n int) ([]*models.GatePassEntry, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+entryColumns+`
		 FROM gate_pass_entries e
		 WHERE e.tenant_id = $1 AND e.season_id = $2
		 ORDER BY e.created_at DESC
		 LIMIT $3`, tenantID, seasonID, n)
	if err != nil {
		return nil, fmt.Errorf("recent entries: %w", err)
	}
	defer rows.Close()

	entries := []*models.GatePassEntry{}
	for rows.Next() {
		var e models.GatePassEntry
		if err := scanEntry(rows, &e); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
