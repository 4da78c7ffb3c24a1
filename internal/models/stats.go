package models

// Aggregate row shapes returned by the store layer. The aggregation engine
// turns these into dashboard and report payloads.

// SocietyStatRow is the per-society grouped aggregate behind the dashboard:
// society joined to its target and entry sums in a single query.
type SocietyStatRow struct {
	SocietyID    int
	SocietyName  string
	DistrictID   int
	DistrictName string
	Target       float64
	Achieved     float64
	EntryCount   int
}

// SeasonTotals carries the overall sums for a tenant+season.
type SeasonTotals struct {
	Quantity float64
	Entries  int
}

// DaySum is one (society, calendar day) quantity sum.
type DaySum struct {
	SocietyID int
	Date      string // YYYY-MM-DD in IST
	Quantity  float64
}

// DayTotal is one calendar day's quantity sum across the tenant+season.
type DayTotal struct {
	Date     string
	Quantity float64
}

// GroupAggRow is a grouped sum keyed by id+name; Societies is populated only
// for district grouping.
type GroupAggRow struct {
	GroupID   int
	Name      string
	Entries   int
	Bags      int
	Quantity  float64
	Societies int
}

// SocietyCumulative is a society's summed quantity strictly before a cutoff.
type SocietyCumulative struct {
	SocietyID int
	Quantity  float64
}

// SocietyWithTarget pairs a society with its target for the report spine:
// every society appears even with no entries in range.
type SocietyWithTarget struct {
	SocietyID   int
	SocietyName string
	Target      float64
}

// SummaryAgg is the single-row consolidated aggregate.
type SummaryAgg struct {
	Entries   int
	Bags      int
	Quantity  float64
	Societies int
	Districts int
	Parties   int
	Vehicles  int
}
