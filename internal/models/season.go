package models

import "time"

// Season types: the two yearly harvest procurement cycles.
const (
	SeasonTypeKharif = "kharif"
	SeasonTypeRabi   = "rabi"
)

type Season struct {
	ID        int       `json:"id"`
	TenantID  int       `json:"tenant_id"`
	Name      string    `json:"name"` // year label, e.g. "2025-26"
	Type      string    `json:"type"` // 'kharif' or 'rabi'
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateSeasonRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type UpdateSeasonRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// SocietyTarget is the procurement goal assigned to a society for a season.
type SocietyTarget struct {
	SeasonID       int     `json:"season_id"`
	SocietyID      int     `json:"society_id"`
	TargetQuantity float64 `json:"target_quantity"`
}

type SetTargetsRequest struct {
	Targets []TargetAssignment `json:"targets"`
}

type TargetAssignment struct {
	SocietyID      int     `json:"society_id"`
	TargetQuantity float64 `json:"target_quantity"`
}

// SocietyTargetRow is one row of getTargets: every society of the tenant with
// its target for the season, 0 when unset.
type SocietyTargetRow struct {
	SocietyID      int     `json:"society_id"`
	SocietyName    string  `json:"society_name"`
	SocietyCode    string  `json:"society_code"`
	DistrictID     int     `json:"district_id"`
	DistrictName   string  `json:"district_name"`
	TargetQuantity float64 `json:"target_quantity"`
}
