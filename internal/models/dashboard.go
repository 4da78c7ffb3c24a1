package models

// SocietyProgress is one society's standing against its seasonal target.
type SocietyProgress struct {
	SocietyID    int     `json:"society_id"`
	SocietyName  string  `json:"society_name"`
	DistrictID   int     `json:"district_id"`
	DistrictName string  `json:"district_name"`
	Target       float64 `json:"target"`
	Achieved     float64 `json:"achieved"`
	EntryCount   int     `json:"entry_count"`
	Remaining    float64 `json:"remaining"`
	Percentage   float64 `json:"percentage"`
}

// DistrictProgress rolls society rows up to their district.
type DistrictProgress struct {
	DistrictID   int     `json:"district_id"`
	DistrictName string  `json:"district_name"`
	Target       float64 `json:"target"`
	Achieved     float64 `json:"achieved"`
	EntryCount   int     `json:"entry_count"`
	SocietyCount int     `json:"society_count"`
	Remaining    float64 `json:"remaining"`
	Percentage   float64 `json:"percentage"`
}

type DashboardStats struct {
	SeasonID      int               `json:"season_id"`
	SeasonName    string            `json:"season_name"`
	TotalTarget   float64           `json:"total_target"`
	TotalAchieved float64           `json:"total_achieved"`
	TotalEntries  int               `json:"total_entries"`
	Percentage    float64           `json:"percentage"`
	Societies     []SocietyProgress `json:"societies"`
	Districts     []DistrictProgress `json:"districts"`
	RecentEntries []GatePassEntry   `json:"recent_entries"`
}

// ChartPoint is one bar of the target-vs-actual chart, keyed by society or
// district name depending on the requested grouping.
type ChartPoint struct {
	Name     string  `json:"name"`
	Target   float64 `json:"target"`
	Achieved float64 `json:"achieved"`
}

// TrendPoint is one day of the season trend with the running cumulative.
type TrendPoint struct {
	Date       string  `json:"date"` // YYYY-MM-DD
	Quantity   float64 `json:"quantity"`
	Cumulative float64 `json:"cumulative"`
}
