package models

import "time"

// Society is a procurement society (local cooperative) under a district.
type Society struct {
	ID            int       `json:"id"`
	TenantID      int       `json:"tenant_id"`
	DistrictID    int       `json:"district_id"`
	Name          string    `json:"name"`
	Code          string    `json:"code"` // PACS-<districtCode>-<seq>, unique per tenant
	Address       string    `json:"address"`
	ContactPerson string    `json:"contact_person"`
	ContactPhone  string    `json:"contact_phone"`
	DistrictName  string    `json:"district_name,omitempty"` // joined for list responses
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SocietyLite is the narrow projection the ledger writer loads during entry
// validation: just enough to denormalize name and district onto the entry.
type SocietyLite struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	DistrictID int    `json:"district_id"`
}

type CreateSocietyRequest struct {
	DistrictID    int    `json:"district_id"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	ContactPerson string `json:"contact_person"`
	ContactPhone  string `json:"contact_phone"`
}

type UpdateSocietyRequest struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	ContactPerson string `json:"contact_person"`
	ContactPhone  string `json:"contact_phone"`
}
