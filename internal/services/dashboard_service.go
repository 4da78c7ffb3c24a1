package services

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"paddy-backend/internal/apperrors"
	"paddy-backend/internal/logger"
	"paddy-backend/internal/models"
	"paddy-backend/internal/query"
)

const recentEntriesLimit = 10

// DashboardService assembles the live procurement dashboard from the
// aggregate store. Heavy payloads are cached per tenant+season; every ledger
// or target write invalidates the tenant's cache.
type DashboardService struct {
	stats   StatsStore
	seasons SeasonStore
	entries EntryStore
	cache   StatsCache
	log     *logger.Logger
}

func NewDashboardService(stats StatsStore, seasons SeasonStore, entries EntryStore,
	cache StatsCache, log *logger.Logger) *DashboardService {
	return &DashboardService{stats: stats, seasons: seasons, entries: entries, cache: cache, log: log}
}

func (s *DashboardService) resolveSeason(ctx context.Context, tc models.TenantContext, seasonID int) (*models.Season, error) {
	if seasonID > 0 {
		return s.seasons.Get(ctx, tc.TenantID, seasonID)
	}
	return s.seasons.GetActive(ctx, tc.TenantID)
}

func percent(achieved, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return round2(achieved / target * 100)
}

// remaining never reports a negative shortfall once the target is exceeded.
func remaining(target, achieved float64) float64 {
	if achieved >= target {
		return 0
	}
	return round2(target - achieved)
}

// Stats computes the full dashboard for a season (the active one when
// seasonID is 0). The four independent aggregates are fetched concurrently.
func (s *DashboardService) Stats(ctx context.Context, tc models.TenantContext, seasonID int) (*models.DashboardStats, error) {
	season, err := s.resolveSeason(ctx, tc, seasonID)
	if err != nil {
		return nil, err
	}

	if cached, ok := s.cache.GetStats(ctx, tc.TenantID, season.ID); ok {
		return cached, nil
	}

	var (
		totalTarget float64
		totals      *models.SeasonTotals
		societyRows []models.SocietyStatRow
		recent      []*models.GatePassEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totalTarget, err = s.seasons.SumTargets(gctx, season.ID)
		return err
	})
	g.Go(func() error {
		var err error
		totals, err = s.stats.SeasonTotals(gctx, tc.TenantID, season.ID)
		return err
	})
	g.Go(func() error {
		var err error
		societyRows, err = s.stats.SocietyStats(gctx, tc.TenantID, season.ID)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = s.entries.Recent(gctx, tc.TenantID, season.ID, recentEntriesLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	societies := make([]models.SocietyProgress, 0, len(societyRows))
	// Roll societies up to districts by id: two districts sharing a name
	// must stay distinct rows.
	districtIndex := map[int]int{}
	districts := []models.DistrictProgress{}

	for _, row := range societyRows {
		societies = append(societies, models.SocietyProgress{
			SocietyID:    row.SocietyID,
			SocietyName:  row.SocietyName,
			DistrictID:   row.DistrictID,
			DistrictName: row.DistrictName,
			Target:       row.Target,
			Achieved:     row.Achieved,
			EntryCount:   row.EntryCount,
			Remaining:    remaining(row.Target, row.Achieved),
			Percentage:   percent(row.Achieved, row.Target),
		})

		i, ok := districtIndex[row.DistrictID]
		if !ok {
			i = len(districts)
			districtIndex[row.DistrictID] = i
			districts = append(districts, models.DistrictProgress{
				DistrictID:   row.DistrictID,
				DistrictName: row.DistrictName,
			})
		}
		districts[i].Target += row.Target
		districts[i].Achieved += row.Achieved
		districts[i].EntryCount += row.EntryCount
		districts[i].SocietyCount++
	}
	for i := range districts {
		districts[i].Remaining = remaining(districts[i].Target, districts[i].Achieved)
		districts[i].Percentage = percent(districts[i].Achieved, districts[i].Target)
	}

	sort.SliceStable(societies, func(i, j int) bool {
		return societies[i].Percentage > societies[j].Percentage
	})
	sort.SliceStable(districts, func(i, j int) bool {
		return districts[i].Percentage > districts[j].Percentage
	})

	recentEntries := make([]models.GatePassEntry, 0, len(recent))
	for _, e := range recent {
		recentEntries = append(recentEntries, *e)
	}

	stats := &models.DashboardStats{
		SeasonID:      season.ID,
		SeasonName:    season.Name,
		TotalTarget:   totalTarget,
		TotalAchieved: round2(totals.Quantity),
		TotalEntries:  totals.Entries,
		Percentage:    percent(totals.Quantity, totalTarget),
		Societies:     societies,
		Districts:     districts,
		RecentEntries: recentEntries,
	}

	s.cache.SetStats(ctx, tc.TenantID, season.ID, stats)
	return stats, nil
}

// Chart returns target-vs-achieved bars grouped by society or district.
func (s *DashboardService) Chart(ctx context.Context, tc models.TenantContext, seasonID int, groupBy string) ([]models.ChartPoint, error) {
	if groupBy != "society" && groupBy != "district" {
		return nil, apperrors.Validation("group_by must be %q or %q", "society", "district")
	}
	season, err := s.resolveSeason(ctx, tc, seasonID)
	if err != nil {
		return nil, err
	}
	rows, err := s.stats.SocietyStats(ctx, tc.TenantID, season.ID)
	if err != nil {
		return nil, err
	}

	if groupBy == "society" {
		points := make([]models.ChartPoint, 0, len(rows))
		for _, row := range rows {
			points = append(points, models.ChartPoint{
				Name:     row.SocietyName,
				Target:   row.Target,
				Achieved: round2(row.Achieved),
			})
		}
		return points, nil
	}

	index := map[int]int{}
	points := []models.ChartPoint{}
	for _, row := range rows {
		i, ok := index[row.DistrictID]
		if !ok {
			i = len(points)
			index[row.DistrictID] = i
			points = append(points, models.ChartPoint{Name: row.DistrictName})
		}
		points[i].Target += row.Target
		points[i].Achieved += row.Achieved
	}
	for i := range points {
		points[i].Achieved = round2(points[i].Achieved)
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].Name < points[j].Name })
	return points, nil
}

// Trend returns the per-day quantity series with a running cumulative.
func (s *DashboardService) Trend(ctx context.Context, tc models.TenantContext, seasonID int, fromDate, toDate string) ([]models.TrendPoint, error) {
	season, err := s.resolveSeason(ctx, tc, seasonID)
	if err != nil {
		return nil, err
	}
	rng, err := query.ParseDateRange(fromDate, toDate)
	if err != nil {
		return nil, err
	}
	days, err := s.stats.TrendByDay(ctx, tc.TenantID, season.ID, rng)
	if err != nil {
		return nil, err
	}

	points := make([]models.TrendPoint, 0, len(days))
	cumulative := 0.0
	for _, d := range days {
		cumulative += d.Quantity
		points = append(points, models.TrendPoint{
			Date:       d.Date,
			Quantity:   round2(d.Quantity),
			Cumulative: round2(cumulative),
		})
	}
	return points, nil
}
