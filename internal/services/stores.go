package services

import (
	"context"
	"time"

	"paddy-backend/internal/models"
	"paddy-backend/internal/query"
)

// Store interfaces consumed by the services. The pgx repositories satisfy
// them; tests substitute in-memory fakes.

type SeasonStore interface {
	Create(ctx context.Context, s *models.Season) error
	Get(ctx context.Context, tenantID, id int) (*models.Season, error)
	GetActive(ctx context.Context, tenantID int) (*models.Season, error)
	List(ctx context.Context, tenantID int) ([]*models.Season, error)
	Update(ctx context.Context, tenantID, id int, name, seasonType string) error
	Delete(ctx context.Context, tenantID, id int) error
	SetActive(ctx context.Context, tenantID, id int) error
	HasEntries(ctx context.Context, tenantID, id int) (bool, error)
	UpsertTargets(ctx context.Context, seasonID int, targets []models.TargetAssignment) (int, error)
	GetTargets(ctx context.Context, tenantID, seasonID int) ([]models.SocietyTargetRow, error)
	SumTargets(ctx context.Context, seasonID int) (float64, error)
}

type DistrictStore interface {
	Create(ctx context.Context, d *models.District) error
	Get(ctx context.Context, tenantID, id int) (*models.District, error)
	List(ctx context.Context, tenantID int) ([]*models.District, error)
	Update(ctx context.Context, tenantID, id int, name, state string) error
	Delete(ctx context.Context, tenantID, id int) error
	CountSocieties(ctx context.Context, id int) (int, error)
}

type SocietyStore interface {
	Create(ctx context.Context, s *models.Society) error
	Get(ctx context.Context, tenantID, id int) (*models.Society, error)
	GetLite(ctx context.Context, tenantID, id int) (*models.SocietyLite, error)
	List(ctx context.Context, tenantID, districtID int) ([]*models.Society, error)
	Update(ctx context.Context, tenantID, id int, req *models.UpdateSocietyRequest) error
	Delete(ctx context.Context, tenantID, id int) error
	NextCodeSeq(ctx context.Context, districtID int) (int, error)
	CountParties(ctx context.Context, id int) (int, error)
	CountEntries(ctx context.Context, id int) (int, error)
}

type PartyStore interface {
	Create(ctx context.Context, p *models.Party) error
	Get(ctx context.Context, tenantID, id int) (*models.Party, error)
	FindByName(ctx context.Context, societyID int, name string) (*models.Party, error)
	List(ctx context.Context, tenantID, societyID int, search string) ([]*models.Party, error)
	Update(ctx context.Context, tenantID, id int, req *models.UpdatePartyRequest) error
	Delete(ctx context.Context, tenantID, id int) error
	CountEntries(ctx context.Context, id int) (int, error)
}

type EntryStore interface {
	Create(ctx context.Context, e *models.GatePassEntry) error
	Get(ctx context.Context, tenantID, id int) (*models.GatePassEntry, error)
	List(ctx context.Context, tenantID int, f *models.EntryFilter) (*models.EntryPage, error)
	Update(ctx context.Context, e *models.GatePassEntry) error
	Delete(ctx context.Context, tenantID, id int) error
	TokenExists(ctx context.Context, tenantID int, token string, excludeID int) (bool, error)
	Recent(ctx context.Context, tenantID, seasonID, n int) ([]*models.GatePassEntry, error)
}

type StatsStore interface {
	SeasonTotals(ctx context.Context, tenantID, seasonID int) (*models.SeasonTotals, error)
	SocietyStats(ctx context.Context, tenantID, seasonID int) ([]models.SocietyStatRow, error)
	TrendByDay(ctx context.Context, tenantID, seasonID int, rng query.DateRange) ([]models.DayTotal, error)
	PerSocietyDaySums(ctx context.Context, tenantID, seasonID int, rng query.DateRange, districtID int) ([]models.DaySum, error)
	PreRangeCumulative(ctx context.Context, tenantID, seasonID int, before time.Time, districtID int) ([]models.SocietyCumulative, error)
	SocietiesWithTargets(ctx context.Context, tenantID, seasonID, districtID int) ([]models.SocietyWithTarget, error)
	GroupedSums(ctx context.Context, tenantID int, reportType string, req *models.ReportRequest, rng query.DateRange) ([]models.GroupAggRow, error)
	SummaryAgg(ctx context.Context, tenantID int, req *models.ReportRequest, rng query.DateRange) (*models.SummaryAgg, error)
	DailyRows(ctx context.Context, tenantID int, req *models.ReportRequest, rng query.DateRange) ([]models.DailyReportRow, error)
}

type UserStore interface {
	Get(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// StatsCache caches dashboard payloads per tenant+season. The redis-backed
// implementation degrades to a no-op when redis is not configured.
type StatsCache interface {
	GetStats(ctx context.Context, tenantID, seasonID int) (*models.DashboardStats, bool)
	SetStats(ctx context.Context, tenantID, seasonID int, stats *models.DashboardStats)
	Invalidate(ctx context.Context, tenantID int)
}
