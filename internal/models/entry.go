package models

import (
	"regexp"
	"time"
)

// Vehicle types accepted on a gate pass entry.
const (
	VehicleTypeTruck       = "truck"
	VehicleTypeTractor     = "tractor"
	VehicleTypePickup      = "pickup"
	VehicleTypeBullockCart = "bullock_cart"
	VehicleTypeOther       = "other"
)

// ValidVehicleType reports whether vt is one of the accepted vehicle types.
func ValidVehicleType(vt string) bool {
	switch vt {
	case VehicleTypeTruck, VehicleTypeTractor, VehicleTypePickup, VehicleTypeBullockCart, VehicleTypeOther:
		return true
	}
	return false
}

// Indian registration plates: state code, RTO digits, optional series
// letters, serial number. Separators already stripped before matching.
var vehicleNoPattern = regexp.MustCompile(`^[A-Z]{2}[0-9]{1,2}[A-Z]{0,3}[0-9]{1,4}$`)

// ValidVehicleNo reports whether no is an acceptable registration number.
// The number is optional; an empty string passes.
func ValidVehicleNo(no string) bool {
	if no == "" {
		return true
	}
	return vehicleNoPattern.MatchString(no)
}

// GatePassEntry is one recorded paddy delivery: the ledger record.
// PartyName and SocietyName are denormalized at write time for search and
// reporting without joins; DistrictID is copied from the society for the
// same reason.
type GatePassEntry struct {
	ID              int       `json:"id"`
	TenantID        int       `json:"tenant_id"`
	TokenNo         string    `json:"token_no"` // unique per tenant
	Date            time.Time `json:"date"`
	PartyID         int       `json:"party_id"`
	PartyName       string    `json:"party_name"`
	SocietyID       int       `json:"society_id"`
	SocietyName     string    `json:"society_name"`
	DistrictID      int       `json:"district_id"`
	SeasonID        int       `json:"season_id"`
	VehicleType     string    `json:"vehicle_type"`
	VehicleNo       string    `json:"vehicle_no,omitempty"`
	Bags            int       `json:"bags"`
	Quantity        float64   `json:"quantity"` // quintals
	QtyPerBag       float64   `json:"qty_per_bag"` // derived, never stored
	CreatedByUserID int       `json:"created_by_user_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// EntryListItem is an entry joined with the reference names the list view
// renders alongside the denormalized party/society names.
type EntryListItem struct {
	GatePassEntry
	DistrictName string `json:"district_name"`
	SeasonName   string `json:"season_name"`
}

type CreateEntryRequest struct {
	TokenNo     string  `json:"token_no"`
	Date        string  `json:"date"` // YYYY-MM-DD, defaults to today
	SocietyID   int     `json:"society_id"`
	PartyName   string  `json:"party_name"`
	FatherName  string  `json:"father_name"`
	Phone       string  `json:"phone"`
	VehicleType string  `json:"vehicle_type"`
	VehicleNo   string  `json:"vehicle_no"`
	Bags        int     `json:"bags"`
	Quantity    float64 `json:"quantity"`
	SeasonID    *int    `json:"season_id,omitempty"` // defaults to the active season
}

// UpdateEntryRequest patches an entry in place. Nil fields are left
// untouched; party resolution is not re-run on update.
type UpdateEntryRequest struct {
	TokenNo     *string  `json:"token_no,omitempty"`
	Date        *string  `json:"date,omitempty"`
	VehicleType *string  `json:"vehicle_type,omitempty"`
	VehicleNo   *string  `json:"vehicle_no,omitempty"`
	Bags        *int     `json:"bags,omitempty"`
	Quantity    *float64 `json:"quantity,omitempty"`
}

// EntryFilter is the decoded query surface of listEntries. Zero values mean
// "not filtered".
type EntryFilter struct {
	SocietyID   int
	DistrictID  int
	SeasonID    int
	PartyID     int
	VehicleType string
	Search      string
	FromDate    string // YYYY-MM-DD inclusive
	ToDate      string // YYYY-MM-DD inclusive
	Page        int
	Limit       int
	SortBy      string
	SortOrder   string
}

// EntryPage is one page of the entry list plus the total match count.
type EntryPage struct {
	Entries []EntryListItem `json:"entries"`
	Total   int             `json:"total"`
	Page    int             `json:"page"`
	Limit   int             `json:"limit"`
}
