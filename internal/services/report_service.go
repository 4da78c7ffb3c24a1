package services

import (
	"context"
	"sort"

	"paddy-backend/internal/apperrors"
	"paddy-backend/internal/logger"
	"paddy-backend/internal/models"
	"paddy-backend/internal/query"
	"paddy-backend/internal/timeutil"
)

// ReportService is the reporting engine: six report types computed on demand
// from the aggregate store, each carrying a synthetic TOTAL row.
type ReportService struct {
	stats   StatsStore
	seasons SeasonStore
	log     *logger.Logger
}

func NewReportService(stats StatsStore, seasons SeasonStore, log *logger.Logger) *ReportService {
	return &ReportService{stats: stats, seasons: seasons, log: log}
}

func (s *ReportService) Generate(ctx context.Context, tc models.TenantContext, req *models.ReportRequest) (*models.Report, error) {
	rng, err := query.ParseDateRange(req.FromDate, req.ToDate)
	if err != nil {
		return nil, err
	}

	// An explicit season filter must name a season this tenant owns; a bogus
	// id would otherwise pass straight into the predicates and report empty.
	if req.SeasonID != nil {
		if _, err := s.seasons.Get(ctx, tc.TenantID, *req.SeasonID); err != nil {
			return nil, err
		}
	}

	report := &models.Report{
		Type:        req.ReportType,
		GeneratedAt: timeutil.Now().Format(timeutil.DateTimeLayout),
	}

	switch req.ReportType {
	case models.ReportDaily:
		report.Daily, err = s.daily(ctx, tc, req, rng)
	case models.ReportSociety, models.ReportDistrict, models.ReportParty:
		report.Group, err = s.grouped(ctx, tc, req, rng)
	case models.ReportSummary:
		report.Summary, err = s.summary(ctx, tc, req, rng)
	case models.ReportSocietyDayWise:
		report.SocietyDayWise, err = s.societyDayWise(ctx, tc, req, rng)
	default:
		return nil, apperrors.Validation("unknown report type %q", req.ReportType)
	}
	if err != nil {
		return nil, err
	}

	s.log.Info("report generated", "tenant_id", tc.TenantID, "type", req.ReportType)
	return report, nil
}

func (s *ReportService) daily(ctx context.Context, tc models.TenantContext, req *models.ReportRequest, rng query.DateRange) (*models.DailyReport, error) {
	rows, err := s.stats.DailyRows(ctx, tc.TenantID, req, rng)
	if err != nil {
		return nil, err
	}

	report := &models.DailyReport{Rows: rows}
	if report.Rows == nil {
		report.Rows = []models.DailyReportRow{}
	}
	for _, r := range rows {
		report.Total.Entries++
		report.Total.Bags += r.Bags
		report.Total.Quantity += r.Quantity
	}
	report.Total.Quantity = round2(report.Total.Quantity)
	return report, nil
}

func (s *ReportService) grouped(ctx context.Context, tc models.TenantContext, req *models.ReportRequest, rng query.DateRange) (*models.GroupReport, error) {
	aggRows, err := s.stats.GroupedSums(ctx, tc.TenantID, req.ReportType, req, rng)
	if err != nil {
		return nil, err
	}

	report := &models.GroupReport{GroupBy: req.ReportType, Rows: []models.GroupReportRow{}}
	total := models.GroupReportRow{Name: "TOTAL"}
	for _, agg := range aggRows {
		row := models.GroupReportRow{
			Name:     agg.Name,
			Entries:  agg.Entries,
			Bags:     agg.Bags,
			Quantity: round2(agg.Quantity),
		}
		if agg.Entries > 0 {
			row.AvgQtyPerEntry = round2(agg.Quantity / float64(agg.Entries))
		}
		if req.ReportType == models.ReportDistrict {
			row.Societies = agg.Societies
		}
		report.Rows = append(report.Rows, row)

		total.Entries += agg.Entries
		total.Bags += agg.Bags
		total.Quantity += agg.Quantity
		total.Societies += row.Societies
	}
	total.Quantity = round2(total.Quantity)
	if total.Entries > 0 {
		total.AvgQtyPerEntry = round2(total.Quantity / float64(total.Entries))
	}
	report.Total = total
	return report, nil
}

func (s *ReportService) summary(ctx context.Context, tc models.TenantContext, req *models.ReportRequest, rng query.DateRange) (*models.SummaryReport, error) {
	agg, err := s.stats.SummaryAgg(ctx, tc.TenantID, req, rng)
	if err != nil {
		return nil, err
	}

	report := &models.SummaryReport{
		Entries:   agg.Entries,
		Bags:      agg.Bags,
		Quantity:  round2(agg.Quantity),
		Societies: agg.Societies,
		Districts: agg.Districts,
		Parties:   agg.Parties,
		Vehicles:  agg.Vehicles,
	}
	if agg.Entries > 0 {
		report.AvgBagsPerEntry = round2(float64(agg.Bags) / float64(agg.Entries))
		report.AvgQtyPerEntry = round2(agg.Quantity / float64(agg.Entries))
	}
	return report, nil
}

// societyDayWise builds the dated-columns report: one row per society in
// scope (entries or not), one column per distinct in-range day, plus the
// cumulative received before the range when a from date is given.
func (s *ReportService) societyDayWise(ctx context.Context, tc models.TenantContext, req *models.ReportRequest, rng query.DateRange) (*models.SocietyDayWiseReport, error) {
	seasonID := 0
	if req.SeasonID != nil {
		seasonID = *req.SeasonID
	} else {
		active, err := s.seasons.GetActive(ctx, tc.TenantID)
		if err != nil {
			return nil, err
		}
		seasonID = active.ID
	}

	districtID := 0
	if req.DistrictID != nil {
		districtID = *req.DistrictID
	}

	spine, err := s.stats.SocietiesWithTargets(ctx, tc.TenantID, seasonID, districtID)
	if err != nil {
		return nil, err
	}
	if req.SocietyID != nil {
		filtered := spine[:0]
		for _, soc := range spine {
			if soc.SocietyID == *req.SocietyID {
				filtered = append(filtered, soc)
			}
		}
		spine = filtered
	}

	daySums, err := s.stats.PerSocietyDaySums(ctx, tc.TenantID, seasonID, rng, districtID)
	if err != nil {
		return nil, err
	}

	// Cumulative before the range start only makes sense with a from date.
	preRange := map[int]float64{}
	upToLabel := ""
	if !rng.From.IsZero() {
		cums, err := s.stats.PreRangeCumulative(ctx, tc.TenantID, seasonID, rng.From, districtID)
		if err != nil {
			return nil, err
		}
		for _, c := range cums {
			preRange[c.SocietyID] = c.Quantity
		}
		upToLabel = timeutil.DayKey(rng.From.AddDate(0, 0, -1))
	}

	dateSet := map[string]struct{}{}
	bySocietyDay := map[int]map[string]float64{}
	for _, d := range daySums {
		dateSet[d.Date] = struct{}{}
		if bySocietyDay[d.SocietyID] == nil {
			bySocietyDay[d.SocietyID] = map[string]float64{}
		}
		bySocietyDay[d.SocietyID][d.Date] = d.Quantity
	}
	dates := make([]string, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	includeUpTo := false
	for _, v := range preRange {
		if v != 0 {
			includeUpTo = true
			break
		}
	}

	report := &models.SocietyDayWiseReport{Dates: dates, Rows: []models.SocietyDayWiseRow{}}
	total := models.SocietyDayWiseRow{SocietyName: "TOTAL", Days: make([]models.DateColumn, len(dates))}
	for i, d := range dates {
		total.Days[i].Date = d
	}
	if includeUpTo {
		total.UpToCol = &models.DateColumn{Date: upToLabel}
	}

	for _, soc := range spine {
		row := models.SocietyDayWiseRow{
			SocietyID:   soc.SocietyID,
			SocietyName: soc.SocietyName,
			Target:      soc.Target,
			Days:        make([]models.DateColumn, len(dates)),
		}
		received := 0.0
		for i, d := range dates {
			v := bySocietyDay[soc.SocietyID][d]
			row.Days[i] = models.DateColumn{Date: d, Value: round2(v)}
			received += v
			total.Days[i].Value = round2(total.Days[i].Value + v)
		}
		if includeUpTo {
			pre := preRange[soc.SocietyID]
			row.UpToCol = &models.DateColumn{Date: upToLabel, Value: round2(pre)}
			received += pre
			total.UpToCol.Value = round2(total.UpToCol.Value + pre)
		}
		row.TotalReceived = round2(received)
		row.Variance = round2(received - soc.Target)
		report.Rows = append(report.Rows, row)

		total.Target += soc.Target
		total.TotalReceived += row.TotalReceived
	}
	total.Target = round2(total.Target)
	total.TotalReceived = round2(total.TotalReceived)
	total.Variance = round2(total.TotalReceived - total.Target)
	report.Total = total
	return report, nil
}
