package services

import (
	"context"
	"testing"
	"time"

	"paddy-backend/internal/logger"
	"paddy-backend/internal/models"
	"paddy-backend/internal/timeutil"
)

type testEnv struct {
	store      *memStore
	cache      *nopCache
	seasons    *SeasonService
	districts  *DistrictService
	societies  *SocietyService
	parties    *PartyService
	entries    *EntryService
	dashboard  *DashboardService
	reports    *ReportService
	tc         models.TenantContext
	otherTC    models.TenantContext
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := newMemStore()
	cache := &nopCache{}
	log := logger.NewNop()

	seasonStore := memSeasons{store}
	districtStore := memDistricts{store}
	societyStore := memSocieties{store}
	partyStore := memParties{store}
	entryStore := memEntries{store}
	statsStore := memStats{store}

	parties := NewPartyService(partyStore, societyStore, log)

	return &testEnv{
		store:     store,
		cache:     cache,
		seasons:   NewSeasonService(seasonStore, cache, log),
		districts: NewDistrictService(districtStore, log),
		societies: NewSocietyService(societyStore, districtStore, log),
		parties:   parties,
		entries:   NewEntryService(entryStore, seasonStore, societyStore, parties, cache, log),
		dashboard: NewDashboardService(statsStore, seasonStore, entryStore, cache, log),
		reports:   NewReportService(statsStore, seasonStore, log),
		tc:        models.TenantContext{TenantID: 1, UserID: 10, Role: "admin"},
		otherTC:   models.TenantContext{TenantID: 2, UserID: 20, Role: "admin"},
	}
}

// seedBasic sets up one district, one society, and an active season for the
// primary tenant.
func (env *testEnv) seedBasic(t *testing.T) (*models.District, *models.Society, *models.Season) {
	t.Helper()
	ctx := context.Background()

	district, err := env.districts.Create(ctx, env.tc, &models.CreateDistrictRequest{
		Name: "Raipur", Code: "RPR", State: "Chhattisgarh",
	})
	if err != nil {
		t.Fatalf("create district: %v", err)
	}
	society, err := env.societies.Create(ctx, env.tc, &models.CreateSocietyRequest{
		DistrictID: district.ID, Name: "Abhanpur PACS",
	})
	if err != nil {
		t.Fatalf("create society: %v", err)
	}
	season, err := env.seasons.Create(ctx, env.tc, &models.CreateSeasonRequest{
		Name: "2025-26", Type: models.SeasonTypeKharif,
	})
	if err != nil {
		t.Fatalf("create season: %v", err)
	}
	if _, err := env.seasons.SetActive(ctx, env.tc, season.ID); err != nil {
		t.Fatalf("activate season: %v", err)
	}
	return district, society, season
}

// entryOn records an entry dated to the given YYYY-MM-DD day.
func (env *testEnv) entryOn(t *testing.T, society *models.Society, token, day, party string, bags int, qty float64) *models.GatePassEntry {
	t.Helper()
	entry, err := env.entries.Create(context.Background(), env.tc, &models.CreateEntryRequest{
		TokenNo:     token,
		Date:        day,
		SocietyID:   society.ID,
		PartyName:   party,
		VehicleType: models.VehicleTypeTractor,
		Bags:        bags,
		Quantity:    qty,
	})
	if err != nil {
		t.Fatalf("create entry %s: %v", token, err)
	}
	return entry
}

func day(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := timeutil.ParseDate(value)
	if err != nil {
		t.Fatalf("parse day %s: %v", value, err)
	}
	return d
}
