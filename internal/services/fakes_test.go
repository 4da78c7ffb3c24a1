package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"paddy-backend/internal/apperrors"
	"paddy-backend/internal/models"
	"paddy-backend/internal/query"
	"paddy-backend/internal/repositories"
	"paddy-backend/internal/timeutil"
)

// In-memory fakes backing the service tests. They mirror the SQL semantics
// the pgx repositories rely on: tenant scoping, unique keys, grouped sums.

type memStore struct {
	nextID    int
	seasons   []*models.Season
	districts []*models.District
	societies []*models.Society
	parties   []*models.Party
	entries   []*models.GatePassEntry
	targets   map[[2]int]float64 // (seasonID, societyID) -> target
	users     []*models.User

	// createPartyHook runs before every party insert, letting tests inject
	// a concurrent writer.
	createPartyHook func()
}

func newMemStore() *memStore {
	return &memStore{targets: map[[2]int]float64{}}
}

func (m *memStore) id() int {
	m.nextID++
	return m.nextID
}

// --- SeasonStore ---

type memSeasons struct{ *memStore }

func (m memSeasons) Create(_ context.Context, s *models.Season) error {
	s.ID = m.id()
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	m.memStore.seasons = append(m.memStore.seasons, s)
	return nil
}

func (m memSeasons) Get(_ context.Context, tenantID, id int) (*models.Season, error) {
	for _, s := range m.memStore.seasons {
		if s.ID == id && s.TenantID == tenantID {
			return s, nil
		}
	}
	return nil, apperrors.NotFound("season %d not found", id)
}

func (m memSeasons) GetActive(_ context.Context, tenantID int) (*models.Season, error) {
	for _, s := range m.memStore.seasons {
		if s.TenantID == tenantID && s.IsActive {
			return s, nil
		}
	}
	return nil, apperrors.NotFound("no active season")
}

func (m memSeasons) List(_ context.Context, tenantID int) ([]*models.Season, error) {
	var out []*models.Season
	for _, s := range m.memStore.seasons {
		if s.TenantID == tenantID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m memSeasons) Update(ctx context.Context, tenantID, id int, name, seasonType string) error {
	s, err := m.Get(ctx, tenantID, id)
	if err != nil {
		return err
	}
	s.Name = name
	s.Type = seasonType
	return nil
}

func (m memSeasons) Delete(ctx context.Context, tenantID, id int) error {
	for i, s := range m.memStore.seasons {
		if s.ID == id && s.TenantID == tenantID {
			m.memStore.seasons = append(m.memStore.seasons[:i], m.memStore.seasons[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("season %d not found", id)
}

func (m memSeasons) SetActive(ctx context.Context, tenantID, id int) error {
	target, err := m.Get(ctx, tenantID, id)
	if err != nil {
		return err
	}
	for _, s := range m.memStore.seasons {
		if s.TenantID == tenantID {
			s.IsActive = false
		}
	}
	target.IsActive = true
	return nil
}

func (m memSeasons) HasEntries(_ context.Context, tenantID, id int) (bool, error) {
	for _, e := range m.memStore.entries {
		if e.TenantID == tenantID && e.SeasonID == id {
			return true, nil
		}
	}
	return false, nil
}

func (m memSeasons) UpsertTargets(_ context.Context, seasonID int, targets []models.TargetAssignment) (int, error) {
	for _, t := range targets {
		m.targets[[2]int{seasonID, t.SocietyID}] = t.TargetQuantity
	}
	return len(targets), nil
}

func (m memSeasons) GetTargets(_ context.Context, tenantID, seasonID int) ([]models.SocietyTargetRow, error) {
	var out []models.SocietyTargetRow
	for _, soc := range m.memStore.societies {
		if soc.TenantID != tenantID {
			continue
		}
		row := models.SocietyTargetRow{
			SocietyID:      soc.ID,
			SocietyName:    soc.Name,
			SocietyCode:    soc.Code,
			DistrictID:     soc.DistrictID,
			TargetQuantity: m.targets[[2]int{seasonID, soc.ID}],
		}
		for _, d := range m.memStore.districts {
			if d.ID == soc.DistrictID {
				row.DistrictName = d.Name
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func (m memSeasons) SumTargets(_ context.Context, seasonID int) (float64, error) {
	sum := 0.0
	for key, v := range m.targets {
		if key[0] == seasonID {
			sum += v
		}
	}
	return sum, nil
}

// --- DistrictStore ---

type memDistricts struct{ *memStore }

func (m memDistricts) Create(_ context.Context, d *models.District) error {
	for _, existing := range m.districts {
		if existing.TenantID == d.TenantID && existing.Code == d.Code {
			return apperrors.Conflict("district code %q already exists", d.Code)
		}
	}
	d.ID = m.id()
	m.memStore.districts = append(m.memStore.districts, d)
	return nil
}

func (m memDistricts) Get(_ context.Context, tenantID, id int) (*models.District, error) {
	for _, d := range m.districts {
		if d.ID == id && d.TenantID == tenantID {
			return d, nil
		}
	}
	return nil, apperrors.NotFound("district %d not found", id)
}

func (m memDistricts) List(_ context.Context, tenantID int) ([]*models.District, error) {
	var out []*models.District
	for _, d := range m.districts {
		if d.TenantID == tenantID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m memDistricts) Update(ctx context.Context, tenantID, id int, name, state string) error {
	d, err := m.Get(ctx, tenantID, id)
	if err != nil {
		return err
	}
	d.Name = name
	d.State = state
	return nil
}

func (m memDistricts) Delete(_ context.Context, tenantID, id int) error {
	for i, d := range m.memStore.districts {
		if d.ID == id && d.TenantID == tenantID {
			m.memStore.districts = append(m.memStore.districts[:i], m.memStore.districts[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("district %d not found", id)
}

func (m memDistricts) CountSocieties(_ context.Context, id int) (int, error) {
	n := 0
	for _, s := range m.societies {
		if s.DistrictID == id {
			n++
		}
	}
	return n, nil
}

// --- SocietyStore ---

type memSocieties struct{ *memStore }

func (m memSocieties) Create(_ context.Context, s *models.Society) error {
	s.ID = m.id()
	m.memStore.societies = append(m.memStore.societies, s)
	return nil
}

func (m memSocieties) Get(_ context.Context, tenantID, id int) (*models.Society, error) {
	for _, s := range m.societies {
		if s.ID == id && s.TenantID == tenantID {
			return s, nil
		}
	}
	return nil, apperrors.NotFound("society %d not found", id)
}

func (m memSocieties) GetLite(ctx context.Context, tenantID, id int) (*models.SocietyLite, error) {
	s, err := m.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return &models.SocietyLite{ID: s.ID, Name: s.Name, DistrictID: s.DistrictID}, nil
}

func (m memSocieties) List(_ context.Context, tenantID, districtID int) ([]*models.Society, error) {
	var out []*models.Society
	for _, s := range m.societies {
		if s.TenantID == tenantID && (districtID == 0 || s.DistrictID == districtID) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m memSocieties) Update(ctx context.Context, tenantID, id int, req *models.UpdateSocietyRequest) error {
	s, err := m.Get(ctx, tenantID, id)
	if err != nil {
		return err
	}
	s.Name = req.Name
	s.Address = req.Address
	s.ContactPerson = req.ContactPerson
	s.ContactPhone = req.ContactPhone
	return nil
}

func (m memSocieties) Delete(_ context.Context, tenantID, id int) error {
	for i, s := range m.memStore.societies {
		if s.ID == id && s.TenantID == tenantID {
			m.memStore.societies = append(m.memStore.societies[:i], m.memStore.societies[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("society %d not found", id)
}

func (m memSocieties) NextCodeSeq(_ context.Context, districtID int) (int, error) {
	n := 0
	for _, s := range m.societies {
		if s.DistrictID == districtID {
			n++
		}
	}
	return n + 1, nil
}

func (m memSocieties) CountParties(_ context.Context, id int) (int, error) {
	n := 0
	for _, p := range m.parties {
		if p.SocietyID == id {
			n++
		}
	}
	return n, nil
}

func (m memSocieties) CountEntries(_ context.Context, id int) (int, error) {
	n := 0
	for _, e := range m.entries {
		if e.SocietyID == id {
			n++
		}
	}
	return n, nil
}

// --- PartyStore ---

type memParties struct{ *memStore }

func (m memParties) Create(_ context.Context, p *models.Party) error {
	if m.createPartyHook != nil {
		m.createPartyHook()
	}
	for _, existing := range m.parties {
		if existing.SocietyID == p.SocietyID && strings.EqualFold(existing.Name, p.Name) {
			return repositories.ErrDuplicateParty
		}
	}
	p.ID = m.id()
	m.memStore.parties = append(m.memStore.parties, p)
	return nil
}

func (m memParties) Get(_ context.Context, tenantID, id int) (*models.Party, error) {
	for _, p := range m.parties {
		if p.ID == id && p.TenantID == tenantID {
			return p, nil
		}
	}
	return nil, apperrors.NotFound("party %d not found", id)
}

func (m memParties) FindByName(_ context.Context, societyID int, name string) (*models.Party, error) {
	for _, p := range m.parties {
		if p.SocietyID == societyID && strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return p, nil
		}
	}
	return nil, apperrors.NotFound("party %q not found", name)
}

func (m memParties) List(_ context.Context, tenantID, societyID int, search string) ([]*models.Party, error) {
	var out []*models.Party
	for _, p := range m.parties {
		if p.TenantID != tenantID {
			continue
		}
		if societyID > 0 && p.SocietyID != societyID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(search)) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m memParties) Update(ctx context.Context, tenantID, id int, req *models.UpdatePartyRequest) error {
	p, err := m.Get(ctx, tenantID, id)
	if err != nil {
		return err
	}
	p.Name = req.Name
	p.FatherName = req.FatherName
	p.Phone = req.Phone
	p.Address = req.Address
	return nil
}

func (m memParties) Delete(_ context.Context, tenantID, id int) error {
	for i, p := range m.memStore.parties {
		if p.ID == id && p.TenantID == tenantID {
			m.memStore.parties = append(m.memStore.parties[:i], m.memStore.parties[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("party %d not found", id)
}

func (m memParties) CountEntries(_ context.Context, id int) (int, error) {
	n := 0
	for _, e := range m.entries {
		if e.PartyID == id {
			n++
		}
	}
	return n, nil
}

// --- EntryStore ---

type memEntries struct{ *memStore }

func (m memEntries) Create(_ context.Context, e *models.GatePassEntry) error {
	for _, existing := range m.entries {
		if existing.TenantID == e.TenantID && existing.TokenNo == e.TokenNo {
			return apperrors.Conflict("token %q already used", e.TokenNo)
		}
	}
	e.ID = m.id()
	e.CreatedAt = time.Now()
	m.memStore.entries = append(m.memStore.entries, e)
	return nil
}

func (m memEntries) Get(_ context.Context, tenantID, id int) (*models.GatePassEntry, error) {
	for _, e := range m.entries {
		if e.ID == id && e.TenantID == tenantID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, apperrors.NotFound("entry %d not found", id)
}

func (m memEntries) List(_ context.Context, tenantID int, f *models.EntryFilter) (*models.EntryPage, error) {
	page := &models.EntryPage{Entries: []models.EntryListItem{}, Page: 1, Limit: query.DefaultLimit}
	for _, e := range m.entries {
		if e.TenantID != tenantID {
			continue
		}
		if f.SocietyID > 0 && e.SocietyID != f.SocietyID {
			continue
		}
		if f.SeasonID > 0 && e.SeasonID != f.SeasonID {
			continue
		}
		page.Entries = append(page.Entries, models.EntryListItem{GatePassEntry: *e})
	}
	page.Total = len(page.Entries)
	return page, nil
}

func (m memEntries) Update(ctx context.Context, e *models.GatePassEntry) error {
	for i, existing := range m.entries {
		if existing.ID == e.ID && existing.TenantID == e.TenantID {
			cp := *e
			m.memStore.entries[i] = &cp
			return nil
		}
	}
	return apperrors.NotFound("entry %d not found", e.ID)
}

func (m memEntries) Delete(_ context.Context, tenantID, id int) error {
	for i, e := range m.memStore.entries {
		if e.ID == id && e.TenantID == tenantID {
			m.memStore.entries = append(m.memStore.entries[:i], m.memStore.entries[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("entry %d not found", id)
}

func (m memEntries) TokenExists(_ context.Context, tenantID int, token string, excludeID int) (bool, error) {
	for _, e := range m.entries {
		if e.TenantID == tenantID && e.TokenNo == token && e.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m memEntries) Recent(_ context.Context, tenantID, seasonID, n int) ([]*models.GatePassEntry, error) {
	var out []*models.GatePassEntry
	for i := len(m.entries) - 1; i >= 0 && len(out) < n; i-- {
		e := m.entries[i]
		if e.TenantID == tenantID && e.SeasonID == seasonID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

// --- StatsStore ---

type memStats struct{ *memStore }

func (m memStats) inRange(e *models.GatePassEntry, rng query.DateRange) bool {
	if !rng.From.IsZero() && e.Date.Before(rng.From) {
		return false
	}
	if !rng.To.IsZero() && e.Date.After(rng.To) {
		return false
	}
	return true
}

func (m memStats) SeasonTotals(_ context.Context, tenantID, seasonID int) (*models.SeasonTotals, error) {
	t := &models.SeasonTotals{}
	for _, e := range m.entries {
		if e.TenantID == tenantID && e.SeasonID == seasonID {
			t.Quantity += e.Quantity
			t.Entries++
		}
	}
	return t, nil
}

func (m memStats) SocietyStats(_ context.Context, tenantID, seasonID int) ([]models.SocietyStatRow, error) {
	var out []models.SocietyStatRow
	for _, soc := range m.societies {
		if soc.TenantID != tenantID {
			continue
		}
		row := models.SocietyStatRow{
			SocietyID:   soc.ID,
			SocietyName: soc.Name,
			DistrictID:  soc.DistrictID,
			Target:      m.targets[[2]int{seasonID, soc.ID}],
		}
		for _, d := range m.districts {
			if d.ID == soc.DistrictID {
				row.DistrictName = d.Name
			}
		}
		for _, e := range m.entries {
			if e.SocietyID == soc.ID && e.SeasonID == seasonID {
				row.Achieved += e.Quantity
				row.EntryCount++
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func (m memStats) TrendByDay(_ context.Context, tenantID, seasonID int, rng query.DateRange) ([]models.DayTotal, error) {
	sums := map[string]float64{}
	for _, e := range m.entries {
		if e.TenantID == tenantID && e.SeasonID == seasonID && m.inRange(e, rng) {
			sums[timeutil.DayKey(e.Date)] += e.Quantity
		}
	}
	var days []string
	for d := range sums {
		days = append(days, d)
	}
	sort.Strings(days)
	out := make([]models.DayTotal, 0, len(days))
	for _, d := range days {
		out = append(out, models.DayTotal{Date: d, Quantity: sums[d]})
	}
	return out, nil
}

func (m memStats) PerSocietyDaySums(_ context.Context, tenantID, seasonID int, rng query.DateRange, districtID int) ([]models.DaySum, error) {
	sums := map[[2]interface{}]float64{}
	for _, e := range m.entries {
		if e.TenantID != tenantID || e.SeasonID != seasonID || !m.inRange(e, rng) {
			continue
		}
		if districtID > 0 && e.DistrictID != districtID {
			continue
		}
		sums[[2]interface{}{e.SocietyID, timeutil.DayKey(e.Date)}] += e.Quantity
	}
	var out []models.DaySum
	for key, q := range sums {
		out = append(out, models.DaySum{SocietyID: key[0].(int), Date: key[1].(string), Quantity: q})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SocietyID != out[j].SocietyID {
			return out[i].SocietyID < out[j].SocietyID
		}
		return out[i].Date < out[j].Date
	})
	return out, nil
}

func (m memStats) PreRangeCumulative(_ context.Context, tenantID, seasonID int, before time.Time, districtID int) ([]models.SocietyCumulative, error) {
	sums := map[int]float64{}
	for _, e := range m.entries {
		if e.TenantID != tenantID || e.SeasonID != seasonID || !e.Date.Before(before) {
			continue
		}
		if districtID > 0 && e.DistrictID != districtID {
			continue
		}
		sums[e.SocietyID] += e.Quantity
	}
	var out []models.SocietyCumulative
	for id, q := range sums {
		out = append(out, models.SocietyCumulative{SocietyID: id, Quantity: q})
	}
	return out, nil
}

func (m memStats) SocietiesWithTargets(_ context.Context, tenantID, seasonID, districtID int) ([]models.SocietyWithTarget, error) {
	var out []models.SocietyWithTarget
	for _, soc := range m.societies {
		if soc.TenantID != tenantID {
			continue
		}
		if districtID > 0 && soc.DistrictID != districtID {
			continue
		}
		out = append(out, models.SocietyWithTarget{
			SocietyID:   soc.ID,
			SocietyName: soc.Name,
			Target:      m.targets[[2]int{seasonID, soc.ID}],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SocietyName < out[j].SocietyName })
	return out, nil
}

func (m memStats) reportEntries(tenantID int, req *models.ReportRequest, rng query.DateRange) []*models.GatePassEntry {
	var out []*models.GatePassEntry
	for _, e := range m.entries {
		if e.TenantID != tenantID || !m.inRange(e, rng) {
			continue
		}
		if req.SeasonID != nil && e.SeasonID != *req.SeasonID {
			continue
		}
		if req.SocietyID != nil && e.SocietyID != *req.SocietyID {
			continue
		}
		if req.DistrictID != nil && e.DistrictID != *req.DistrictID {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (m memStats) GroupedSums(_ context.Context, tenantID int, reportType string, req *models.ReportRequest, rng query.DateRange) ([]models.GroupAggRow, error) {
	rows := map[int]*models.GroupAggRow{}
	societySets := map[int]map[int]struct{}{}
	for _, e := range m.reportEntries(tenantID, req, rng) {
		var key int
		var name string
		switch reportType {
		case models.ReportSociety:
			key, name = e.SocietyID, e.SocietyName
		case models.ReportDistrict:
			key = e.DistrictID
			for _, d := range m.districts {
				if d.ID == e.DistrictID {
					name = d.Name
				}
			}
		case models.ReportParty:
			key, name = e.PartyID, e.PartyName
		}
		row, ok := rows[key]
		if !ok {
			row = &models.GroupAggRow{GroupID: key, Name: name}
			rows[key] = row
			societySets[key] = map[int]struct{}{}
		}
		row.Entries++
		row.Bags += e.Bags
		row.Quantity += e.Quantity
		societySets[key][e.SocietyID] = struct{}{}
	}
	var out []models.GroupAggRow
	for key, row := range rows {
		if reportType == models.ReportDistrict {
			row.Societies = len(societySets[key])
		}
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Quantity > out[j].Quantity })
	return out, nil
}

func (m memStats) SummaryAgg(_ context.Context, tenantID int, req *models.ReportRequest, rng query.DateRange) (*models.SummaryAgg, error) {
	agg := &models.SummaryAgg{}
	societies := map[int]struct{}{}
	districts := map[int]struct{}{}
	parties := map[int]struct{}{}
	vehicles := map[string]struct{}{}
	for _, e := range m.reportEntries(tenantID, req, rng) {
		agg.Entries++
		agg.Bags += e.Bags
		agg.Quantity += e.Quantity
		societies[e.SocietyID] = struct{}{}
		districts[e.DistrictID] = struct{}{}
		parties[e.PartyID] = struct{}{}
		if e.VehicleNo != "" {
			vehicles[e.VehicleNo] = struct{}{}
		}
	}
	agg.Societies = len(societies)
	agg.Districts = len(districts)
	agg.Parties = len(parties)
	agg.Vehicles = len(vehicles)
	return agg, nil
}

func (m memStats) DailyRows(_ context.Context, tenantID int, req *models.ReportRequest, rng query.DateRange) ([]models.DailyReportRow, error) {
	entries := m.reportEntries(tenantID, req, rng)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Date.Before(entries[j].Date) })
	var out []models.DailyReportRow
	for _, e := range entries {
		row := models.DailyReportRow{
			Date:        timeutil.DayKey(e.Date),
			TokenNo:     e.TokenNo,
			PartyName:   e.PartyName,
			SocietyName: e.SocietyName,
			VehicleType: e.VehicleType,
			VehicleNo:   e.VehicleNo,
			Bags:        e.Bags,
			Quantity:    e.Quantity,
		}
		if e.Bags > 0 {
			row.QtyPerBag = e.Quantity / float64(e.Bags)
		}
		for _, d := range m.districts {
			if d.ID == e.DistrictID {
				row.DistrictName = d.Name
			}
		}
		out = append(out, row)
	}
	return out, nil
}

// --- UserStore ---

type memUsers struct{ *memStore }

func (m memUsers) Get(_ context.Context, id int) (*models.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.NotFound("user %d not found", id)
}

func (m memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, apperrors.NotFound("user not found")
}

// --- StatsCache ---

type nopCache struct{ invalidations int }

func (c *nopCache) GetStats(context.Context, int, int) (*models.DashboardStats, bool) {
	return nil, false
}
func (c *nopCache) SetStats(context.Context, int, int, *models.DashboardStats) {}
func (c *nopCache) Invalidate(context.Context, int)                           { c.invalidations++ }
