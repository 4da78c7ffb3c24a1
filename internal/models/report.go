package models

// Report types. The set is fixed; generateReport routes on it.
const (
	ReportDaily          = "daily"
	ReportSociety        = "society"
	ReportDistrict       = "district"
	ReportParty          = "party"
	ReportSummary        = "summary"
	ReportSocietyDayWise = "society-day-wise"
)

type ReportRequest struct {
	ReportType string `json:"report_type"`
	FromDate   string `json:"from_date"` // YYYY-MM-DD inclusive
	ToDate     string `json:"to_date"`   // YYYY-MM-DD inclusive
	SeasonID   *int   `json:"season_id,omitempty"`
	SocietyID  *int   `json:"society_id,omitempty"`
	DistrictID *int   `json:"district_id,omitempty"`
}

// Report is the generateReport result: exactly one of the typed payloads is
// set, matching Type.
type Report struct {
	Type           string                `json:"type"`
	GeneratedAt    string                `json:"generated_at"`
	Daily          *DailyReport          `json:"daily,omitempty"`
	Group          *GroupReport          `json:"group,omitempty"`
	Summary        *SummaryReport        `json:"summary,omitempty"`
	SocietyDayWise *SocietyDayWiseReport `json:"society_day_wise,omitempty"`
}

// DailyReport lists one row per entry in range plus a TOTAL row.
type DailyReport struct {
	Rows  []DailyReportRow `json:"rows"`
	Total DailyReportTotal `json:"total"`
}

type DailyReportRow struct {
	Date         string  `json:"date"`
	TokenNo      string  `json:"token_no"`
	PartyName    string  `json:"party_name"`
	SocietyName  string  `json:"society_name"`
	DistrictName string  `json:"district_name"`
	VehicleType  string  `json:"vehicle_type"`
	VehicleNo    string  `json:"vehicle_no,omitempty"`
	Bags         int     `json:"bags"`
	Quantity     float64 `json:"quantity"`
	QtyPerBag    float64 `json:"qty_per_bag"`
}

type DailyReportTotal struct {
	Entries  int     `json:"entries"`
	Bags     int     `json:"bags"`
	Quantity float64 `json:"quantity"`
}

// GroupReport serves the society, district, and party report types: grouped
// sums keyed by the grouping entity's name. Societies is only populated for
// the district grouping (distinct societies per district).
type GroupReport struct {
	GroupBy string           `json:"group_by"`
	Rows    []GroupReportRow `json:"rows"`
	Total   GroupReportRow   `json:"total"`
}

type GroupReportRow struct {
	Name           string  `json:"name"`
	Entries        int     `json:"entries"`
	Bags           int     `json:"bags"`
	Quantity       float64 `json:"quantity"`
	AvgQtyPerEntry float64 `json:"avg_qty_per_entry"`
	Societies      int     `json:"societies,omitempty"`
}

// SummaryReport is the single-row consolidated report.
type SummaryReport struct {
	Entries         int     `json:"entries"`
	Bags            int     `json:"bags"`
	Quantity        float64 `json:"quantity"`
	Societies       int     `json:"societies"`
	Districts       int     `json:"districts"`
	Parties         int     `json:"parties"`
	Vehicles        int     `json:"vehicles"`
	AvgBagsPerEntry float64 `json:"avg_bags_per_entry"`
	AvgQtyPerEntry  float64 `json:"avg_qty_per_entry"`
}

// DateColumn is one (date, value) pair of the day-wise report. Columns are an
// ordered slice rather than dynamically named fields.
type DateColumn struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// SocietyDayWiseRow carries one society's daily receipts across the range.
// UpToCol holds the cumulative received strictly before the range start, when
// non-zero anywhere in the report. TotalReceived = pre-range cumulative +
// sum of Days; Variance = TotalReceived - Target.
type SocietyDayWiseRow struct {
	SocietyID     int          `json:"society_id"`
	SocietyName   string       `json:"society_name"`
	Target        float64      `json:"target"`
	UpToCol       *DateColumn  `json:"up_to,omitempty"`
	Days          []DateColumn `json:"days"`
	TotalReceived float64      `json:"total_received"`
	Variance      float64      `json:"variance"`
}

// SocietyDayWiseReport is the dated-columns report: Dates lists the distinct
// in-range dates in ascending order, every row's Days aligns with it, and
// Total sums every numeric column across societies.
type SocietyDayWiseReport struct {
	Dates []string            `json:"dates"`
	Rows  []SocietyDayWiseRow `json:"rows"`
	Total SocietyDayWiseRow   `json:"total"`
}
