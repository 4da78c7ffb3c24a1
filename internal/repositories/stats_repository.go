package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"paddy-backend/internal/models"
	"paddy-backend/internal/query"
)

// StatsRepository holds the aggregate queries behind the dashboard and the
// reporting engine. Sums are pushed into SQL; Go only shapes the results.
type StatsRepository struct {
	DB *pgxpool.Pool
}

func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{DB: db}
}

// istDay renders a timestamptz column as its IST calendar date.
func istDay(column string) string {
	return fmt.Sprintf("to_char(%s AT TIME ZONE 'Asia/Kolkata', 'YYYY-MM-DD')", column)
}

// SeasonTotals returns the overall quantity and entry count for a season.
func (r *StatsRepository) SeasonTotals(ctx context.Context, tenantID, seasonID int) (*models.SeasonTotals, error) {
	var t models.SeasonTotals
	err := r.DB.QueryRow(ctx, `
		SELECT COALESCE(SUM(quantity), 0), COUNT(*)
		FROM gate_pass_entries
		WHERE tenant_id = $1 AND season_id = $2
	`, tenantID, seasonID).Scan(&t.Quantity, &t.Entries)
	if err != nil {
		return nil, fmt.Errorf("season totals: %w", err)
	}
	return &t, nil
}

// SocietyStats joins every society of the tenant to its season target and
// entry sums. Societies with no entries still appear with zero achieved.
func (r *StatsRepository) SocietyStats(ctx context.Context, tenantID, seasonID int) ([]models.SocietyStatRow, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT s.id, s.name, d.id, d.name,
		       COALESCE(t.target_quantity, 0),
		       COALESCE(SUM(e.quantity), 0),
		       COUNT(e.id)
		FROM societies s
		JOIN districts d ON d.id = s.district_id
		LEFT JOIN society_targets t ON t.society_id = s.id AND t.season_id = $1
		LEFT JOIN gate_pass_entries e ON e.society_id = s.id AND e.season_id = $1
		WHERE s.tenant_id = $2
		GROUP BY s.id, s.name, d.id, d.name, t.target_quantity
		ORDER BY s.name ASC
	`, seasonID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("society stats: %w", err)
	}
	defer rows.Close()

	var out []models.SocietyStatRow
	for rows.Next() {
		var row models.SocietyStatRow
		if err := rows.Scan(&row.SocietyID, &row.SocietyName, &row.DistrictID, &row.DistrictName,
			&row.Target, &row.Achieved, &row.EntryCount); err != nil {
			return nil, fmt.Errorf("scan society stat: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// TrendByDay sums quantity per IST calendar day for a season, ascending.
func (r *StatsRepository) TrendByDay(ctx context.Context, tenantID, seasonID int, rng query.DateRange) ([]models.DayTotal, error) {
	b := query.NewBuilder()
	b.Where("tenant_id = ?", tenantID)
	b.Where("season_id = ?", seasonID)
	rng.Apply(b, "date")

	day := istDay("date")
	sql := fmt.Sprintf(`
		SELECT %s AS day, COALESCE(SUM(quantity), 0)
		FROM gate_pass_entries
		%s
		GROUP BY day
		ORDER BY day ASC
	`, day, b.Clause())

	rows, err := r.DB.Query(ctx, sql, b.Args()...)
	if err != nil {
		return nil, fmt.Errorf("trend by day: %w", err)
	}
	defer rows.Close()

	var out []models.DayTotal
	for rows.Next() {
		var d models.DayTotal
		if err := rows.Scan(&d.Date, &d.Quantity); err != nil {
			return nil, fmt.Errorf("scan day total: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// PerSocietyDaySums groups quantities by (society, IST day) inside the range.
func (r *StatsRepository) PerSocietyDaySums(ctx context.Context, tenantID, seasonID int, rng query.DateRange, districtID int) ([]models.DaySum, error) {
	b := query.NewBuilder()
	b.Where("tenant_id = ?", tenantID)
	b.Where("season_id = ?", seasonID)
	b.WhereIf(districtID > 0, "district_id = ?", districtID)
	rng.Apply(b, "date")

	day := istDay("date")
	sql := fmt.Sprintf(`
		SELECT society_id, %s AS day, COALESCE(SUM(quantity), 0)
		FROM gate_pass_entries
		%s
		GROUP BY society_id, day
		ORDER BY society_id, day ASC
	`, day, b.Clause())

	rows, err := r.DB.Query(ctx, sql, b.Args()...)
	if err != nil {
		return nil, fmt.Errorf("per-society day sums: %w", err)
	}
	defer rows.Close()

	var out []models.DaySum
	for rows.Next() {
		var d models.DaySum
		if err := rows.Scan(&d.SocietyID, &d.Date, &d.Quantity); err != nil {
			return nil, fmt.Errorf("scan day sum: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// PreRangeCumulative sums each society's receipts strictly before the cutoff.
func (r *StatsRepository) PreRangeCumulative(ctx context.Context, tenantID, seasonID int, before time.Time, districtID int) ([]models.SocietyCumulative, error) {
	b := query.NewBuilder()
	b.Where("tenant_id = ?", tenantID)
	b.Where("season_id = ?", seasonID)
	b.Where("date < ?", before)
	b.WhereIf(districtID > 0, "district_id = ?", districtID)

	sql := fmt.Sprintf(`
		SELECT society_id, COALESCE(SUM(quantity), 0)
		FROM gate_pass_entries
		%s
		GROUP BY society_id
	`, b.Clause())

	rows, err := r.DB.Query(ctx, sql, b.Args()...)
	if err != nil {
		return nil, fmt.Errorf("pre-range cumulative: %w", err)
	}
	defer rows.Close()

	var out []models.SocietyCumulative
	for rows.Next() {
		var c models.SocietyCumulative
		if err := rows.Scan(&c.SocietyID, &c.Quantity); err != nil {
			return nil, fmt.Errorf("scan cumulative: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// SocietiesWithTargets returns the day-wise report spine: every society in
// scope with its target, whether or not it received anything in range.
func (r *StatsRepository) SocietiesWithTargets(ctx context.Context, tenantID, seasonID, districtID int) ([]models.SocietyWithTarget, error) {
	b := query.NewBuilder()
	b.Where("s.tenant_id = ?", tenantID)
	b.WhereIf(districtID > 0, "s.district_id = ?", districtID)

	sql := fmt.Sprintf(`
		SELECT s.id, s.name, COALESCE(t.target_quantity, 0)
		FROM societies s
		LEFT JOIN society_targets t ON t.society_id = s.id AND t.season_id = %s
		%s
		ORDER BY s.name ASC
	`, b.Bind(seasonID), b.Clause())

	rows, err := r.DB.Query(ctx, sql, b.Args()...)
	if err != nil {
		return nil, fmt.Errorf("societies with targets: %w", err)
	}
	defer rows.Close()

	var out []models.SocietyWithTarget
	for rows.Next() {
		var s models.SocietyWithTarget
		if err := rows.Scan(&s.SocietyID, &s.SocietyName, &s.Target); err != nil {
			return nil, fmt.Errorf("scan society target: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// reportFilter builds the shared predicate set of the report queries.
func reportFilter(tenantID int, req *models.ReportRequest, rng query.DateRange) *query.Builder {
	b := query.NewBuilder()
	b.Where("e.tenant_id = ?", tenantID)
	if req.SeasonID != nil {
		b.Where("e.season_id = ?", *req.SeasonID)
	}
	if req.SocietyID != nil {
		b.Where("e.society_id = ?", *req.SocietyID)
	}
	if req.DistrictID != nil {
		b.Where("e.district_id = ?", *req.DistrictID)
	}
	rng.Apply(b, "e.date")
	return b
}

var groupKeys = map[string]struct{ id, name string }{
	models.ReportSociety:  {"e.society_id", "e.society_name"},
	models.ReportDistrict: {"e.district_id", "d.name"},
	models.ReportParty:    {"e.party_id", "e.party_name"},
}

// groupedSumsQuery composes the grouped report statement. District grouping
// joins districts for the name and counts distinct societies, and is keyed by
// id so two districts sharing a name stay separate rows.
func groupedSumsQuery(tenantID int, reportType string, req *models.ReportRequest, rng query.DateRange) (string, []interface{}, error) {
	keys, ok := groupKeys[reportType]
	if !ok {
		return "", nil, fmt.Errorf("no grouping for report type %q", reportType)
	}

	agg := &query.Aggregate{
		Table: "gate_pass_entries e",
		Selects: []string{
			keys.id, keys.name,
			"COUNT(*)",
			"COALESCE(SUM(e.bags), 0)",
			"COALESCE(SUM(e.quantity), 0)",
			"0",
		},
		GroupBy: []string{keys.id, keys.name},
		OrderBy: "ORDER BY COALESCE(SUM(e.quantity), 0) DESC",
		Pred:    reportFilter(tenantID, req, rng),
	}
	if reportType == models.ReportDistrict {
		agg.Joins = []string{"JOIN districts d ON d.id = e.district_id"}
		agg.Selects[5] = "COUNT(DISTINCT e.society_id)"
	}

	sql, args := agg.SQL()
	return sql, args, nil
}

// GroupedSums sums entries grouped by society, district, or party.
func (r *StatsRepository) GroupedSums(ctx context.Context, tenantID int, reportType string, req *models.ReportRequest, rng query.DateRange) ([]models.GroupAggRow, error) {
	sql, args, err := groupedSumsQuery(tenantID, reportType, req, rng)
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("grouped sums: %w", err)
	}
	defer rows.Close()

	var out []models.GroupAggRow
	for rows.Next() {
		var g models.GroupAggRow
		if err := rows.Scan(&g.GroupID, &g.Name, &g.Entries, &g.Bags, &g.Quantity, &g.Societies); err != nil {
			return nil, fmt.Errorf("scan group row: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// SummaryAgg computes the single consolidated row in one pass.
func (r *StatsRepository) SummaryAgg(ctx context.Context, tenantID int, req *models.ReportRequest, rng query.DateRange) (*models.SummaryAgg, error) {
	agg := &query.Aggregate{
		Table: "gate_pass_entries e",
		Selects: []string{
			"COUNT(*)",
			"COALESCE(SUM(e.bags), 0)",
			"COALESCE(SUM(e.quantity), 0)",
			"COUNT(DISTINCT e.society_id)",
			"COUNT(DISTINCT e.district_id)",
			"COUNT(DISTINCT e.party_id)",
			"COUNT(DISTINCT NULLIF(e.vehicle_no, ''))",
		},
		Pred: reportFilter(tenantID, req, rng),
	}
	sql, args := agg.SQL()

	var s models.SummaryAgg
	err := r.DB.QueryRow(ctx, sql, args...).
		Scan(&s.Entries, &s.Bags, &s.Quantity, &s.Societies, &s.Districts, &s.Parties, &s.Vehicles)
	if err != nil {
		return nil, fmt.Errorf("summary agg: %w", err)
	}
	return &s, nil
}

// DailyRows lists the raw in-range entries for the daily report, oldest first.
func (r *StatsRepository) DailyRows(ctx context.Context, tenantID int, req *models.ReportRequest, rng query.DateRange) ([]models.DailyReportRow, error) {
	b := reportFilter(tenantID, req, rng)

	day := istDay("e.date")
	sql := fmt.Sprintf(`
		SELECT %s, e.token_no, e.party_name, e.society_name, d.name,
		       e.vehicle_type, e.vehicle_no, e.bags, e.quantity,
		       COALESCE(e.quantity / NULLIF(e.bags, 0), 0)
		FROM gate_pass_entries e
		JOIN districts d ON d.id = e.district_id
		%s
		ORDER BY e.date ASC, e.id ASC
	`, day, b.Clause())

	rows, err := r.DB.Query(ctx, sql, b.Args()...)
	if err != nil {
		return nil, fmt.Errorf("daily rows: %w", err)
	}
	defer rows.Close()

	var out []models.DailyReportRow
	for rows.Next() {
		var d models.DailyReportRow
		if err := rows.Scan(&d.Date, &d.TokenNo, &d.PartyName, &d.SocietyName, &d.DistrictName,
			&d.VehicleType, &d.VehicleNo, &d.Bags, &d.Quantity, &d.QtyPerBag); err != nil {
			return nil, fmt.Errorf("scan daily row: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
