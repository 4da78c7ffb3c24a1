package services

import (
	"context"
	"testing"

	"paddy-backend/internal/apperrors"
	"paddy-backend/internal/models"
)

func TestGenerateRejectsUnknownTypeAndBadRange(t *testing.T) {
	env := newTestEnv(t)
	env.seedBasic(t)
	ctx := context.Background()

	_, err := env.reports.Generate(ctx, env.tc, &models.ReportRequest{ReportType: "weekly"})
	if !apperrors.IsValidation(err) {
		t.Fatalf("unknown type: want validation error, got %v", err)
	}

	_, err = env.reports.Generate(ctx, env.tc, &models.ReportRequest{
		ReportType: models.ReportDaily, FromDate: "2025-11-20", ToDate: "2025-11-10",
	})
	if !apperrors.IsValidation(err) {
		t.Fatalf("inverted range: want validation error, got %v", err)
	}
}

func TestGenerateRejectsUnknownSeasonFilter(t *testing.T) {
	env := newTestEnv(t)
	env.seedBasic(t)
	ctx := context.Background()

	bogus := 999
	_, err := env.reports.Generate(ctx, env.tc, &models.ReportRequest{
		ReportType: models.ReportSummary, SeasonID: &bogus,
	})
	if !apperrors.IsNotFound(err) {
		t.Fatalf("bogus season filter: want not-found, got %v", err)
	}

	theirs, err := env.seasons.Create(ctx, env.otherTC, &models.CreateSeasonRequest{Name: "2025-26", Type: models.SeasonTypeKharif})
	if err != nil {
		t.Fatalf("create other season: %v", err)
	}
	_, err = env.reports.Generate(ctx, env.tc, &models.ReportRequest{
		ReportType: models.ReportDaily, SeasonID: &theirs.ID,
	})
	if !apperrors.IsNotFound(err) {
		t.Fatalf("cross-tenant season filter: want not-found, got %v", err)
	}
}

func TestDailyReportTotals(t *testing.T) {
	env := newTestEnv(t)
	_, society, _ := env.seedBasic(t)
	ctx := context.Background()

	env.entryOn(t, society, "T-1", "2025-11-10", "Ram Kumar", 100, 40)
	env.entryOn(t, society, "T-2", "2025-11-11", "Mohan Lal", 50, 20)
	env.entryOn(t, society, "T-3", "2025-12-01", "Ram Kumar", 10, 4) // outside range

	report, err := env.reports.Generate(ctx, env.tc, &models.ReportRequest{
		ReportType: models.ReportDaily, FromDate: "2025-11-01", ToDate: "2025-11-30",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	daily := report.Daily
	if daily == nil {
		t.Fatal("daily payload missing")
	}
	if len(daily.Rows) != 2 {
		t.Fatalf("rows = %d, want 2 in range", len(daily.Rows))
	}
	if daily.Total.Entries != 2 || daily.Total.Bags != 150 || daily.Total.Quantity != 60 {
		t.Fatalf("total = %+v, want 2 entries, 150 bags, 60 qty", daily.Total)
	}
}

func TestGroupedReportWithTotalRow(t *testing.T) {
	env := newTestEnv(t)
	district, society, _ := env.seedBasic(t)
	ctx := context.Background()

	other, err := env.societies.Create(ctx, env.tc, &models.CreateSocietyRequest{
		DistrictID: district.ID, Name: "Arang PACS",
	})
	if err != nil {
		t.Fatalf("create society: %v", err)
	}
	env.entryOn(t, society, "T-1", "2025-11-10", "Ram Kumar", 100, 40)
	env.entryOn(t, society, "T-2", "2025-11-11", "Mohan Lal", 50, 20)
	env.entryOn(t, other, "T-3", "2025-11-11", "Ram Kumar", 25, 10)

	report, err := env.reports.Generate(ctx, env.tc, &models.ReportRequest{ReportType: models.ReportSociety})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	group := report.Group
	if group == nil || group.GroupBy != models.ReportSociety {
		t.Fatalf("group payload = %+v, want society grouping", group)
	}
	if len(group.Rows) != 2 {
		t.Fatalf("rows = %d, want 2 societies", len(group.Rows))
	}
	// Rows come largest quantity first.
	if group.Rows[0].Name != society.Name || group.Rows[0].Quantity != 60 || group.Rows[0].AvgQtyPerEntry != 30 {
		t.Errorf("top row = %+v, want %s with 60 qty, avg 30", group.Rows[0], society.Name)
	}
	if group.Total.Name != "TOTAL" || group.Total.Entries != 3 || group.Total.Bags != 175 || group.Total.Quantity != 70 {
		t.Errorf("total = %+v, want TOTAL/3/175/70", group.Total)
	}

	// District grouping carries a distinct-society count.
	report, err = env.reports.Generate(ctx, env.tc, &models.ReportRequest{ReportType: models.ReportDistrict})
	if err != nil {
		t.Fatalf("generate district: %v", err)
	}
	if len(report.Group.Rows) != 1 || report.Group.Rows[0].Societies != 2 {
		t.Fatalf("district rows = %+v, want one district spanning 2 societies", report.Group.Rows)
	}
}

func TestSummaryReport(t *testing.T) {
	env := newTestEnv(t)
	_, society, _ := env.seedBasic(t)
	ctx := context.Background()

	env.entryOn(t, society, "T-1", "2025-11-10", "Ram Kumar", 100, 40)
	env.entryOn(t, society, "T-2", "2025-11-11", "Mohan Lal", 60, 20)

	report, err := env.reports.Generate(ctx, env.tc, &models.ReportRequest{ReportType: models.ReportSummary})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	s := report.Summary
	if s == nil {
		t.Fatal("summary payload missing")
	}
	if s.Entries != 2 || s.Bags != 160 || s.Quantity != 60 {
		t.Errorf("summary = %+v, want 2/160/60", s)
	}
	if s.Societies != 1 || s.Parties != 2 {
		t.Errorf("distincts = %d societies, %d parties, want 1 and 2", s.Societies, s.Parties)
	}
	if s.AvgBagsPerEntry != 80 || s.AvgQtyPerEntry != 30 {
		t.Errorf("averages = %v bags, %v qty, want 80 and 30", s.AvgBagsPerEntry, s.AvgQtyPerEntry)
	}
}

func TestSummaryReportEmptyRangeHasZeroAverages(t *testing.T) {
	env := newTestEnv(t)
	env.seedBasic(t)

	report, err := env.reports.Generate(context.Background(), env.tc, &models.ReportRequest{
		ReportType: models.ReportSummary, FromDate: "2025-01-01", ToDate: "2025-01-31",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if report.Summary.Entries != 0 || report.Summary.AvgQtyPerEntry != 0 {
		t.Fatalf("empty summary = %+v, want all zero", report.Summary)
	}
}

func TestSocietyDayWiseReport(t *testing.T) {
	env := newTestEnv(t)
	district, society, season := env.seedBasic(t)
	ctx := context.Background()

	quiet, err := env.societies.Create(ctx, env.tc, &models.CreateSocietyRequest{
		DistrictID: district.ID, Name: "Quiet PACS",
	})
	if err != nil {
		t.Fatalf("create society: %v", err)
	}
	if _, err := env.seasons.SetTargets(ctx, env.tc, season.ID, &models.SetTargetsRequest{
		Targets: []models.TargetAssignment{
			{SocietyID: society.ID, TargetQuantity: 1000},
			{SocietyID: quiet.ID, TargetQuantity: 200},
		},
	}); err != nil {
		t.Fatalf("set targets: %v", err)
	}

	// One delivery before the reporting window, two inside it.
	env.entryOn(t, society, "T-0", "2025-11-05", "Ram Kumar", 10, 50)
	env.entryOn(t, society, "T-1", "2025-11-10", "Ram Kumar", 10, 100)
	env.entryOn(t, society, "T-2", "2025-11-12", "Mohan Lal", 10, 300)

	report, err := env.reports.Generate(ctx, env.tc, &models.ReportRequest{
		ReportType: models.ReportSocietyDayWise, FromDate: "2025-11-10", ToDate: "2025-11-15",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	dw := report.SocietyDayWise
	if dw == nil {
		t.Fatal("day-wise payload missing")
	}

	wantDates := []string{"2025-11-10", "2025-11-12"}
	if len(dw.Dates) != len(wantDates) || dw.Dates[0] != wantDates[0] || dw.Dates[1] != wantDates[1] {
		t.Fatalf("dates = %v, want %v", dw.Dates, wantDates)
	}
	// Every society appears, entries or not.
	if len(dw.Rows) != 2 {
		t.Fatalf("rows = %d, want 2 societies", len(dw.Rows))
	}

	var active, idle *models.SocietyDayWiseRow
	for i := range dw.Rows {
		switch dw.Rows[i].SocietyID {
		case society.ID:
			active = &dw.Rows[i]
		case quiet.ID:
			idle = &dw.Rows[i]
		}
	}
	if active == nil || idle == nil {
		t.Fatalf("rows = %+v, missing a society", dw.Rows)
	}

	if active.UpToCol == nil || active.UpToCol.Value != 50 || active.UpToCol.Date != "2025-11-09" {
		t.Errorf("up-to column = %+v, want 50 as of 2025-11-09", active.UpToCol)
	}
	if active.Days[0].Value != 100 || active.Days[1].Value != 300 {
		t.Errorf("day columns = %+v, want 100 and 300", active.Days)
	}
	if active.TotalReceived != 450 {
		t.Errorf("total received = %v, want 450 (50 pre-range + 400 in range)", active.TotalReceived)
	}
	if active.Variance != -550 {
		t.Errorf("variance = %v, want -550", active.Variance)
	}

	if idle.TotalReceived != 0 || idle.Variance != -200 {
		t.Errorf("idle row = %+v, want 0 received, -200 variance", idle)
	}
	if idle.Days[0].Value != 0 || idle.Days[1].Value != 0 {
		t.Errorf("idle day columns = %+v, want zeros aligned with dates", idle.Days)
	}

	total := dw.Total
	if total.SocietyName != "TOTAL" || total.Target != 1200 || total.TotalReceived != 450 || total.Variance != -750 {
		t.Errorf("total row = %+v, want TOTAL/1200/450/-750", total)
	}
	if total.Days[0].Value != 100 || total.Days[1].Value != 300 {
		t.Errorf("total day columns = %+v, want 100 and 300", total.Days)
	}
}

func TestSocietyDayWiseWithoutFromDateSkipsUpToColumn(t *testing.T) {
	env := newTestEnv(t)
	_, society, _ := env.seedBasic(t)

	env.entryOn(t, society, "T-1", "2025-11-10", "Ram Kumar", 10, 100)

	report, err := env.reports.Generate(context.Background(), env.tc, &models.ReportRequest{
		ReportType: models.ReportSocietyDayWise,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, row := range report.SocietyDayWise.Rows {
		if row.UpToCol != nil {
			t.Fatalf("row %+v has an up-to column without a from date", row)
		}
	}
}
