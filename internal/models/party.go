package models

import "time"

// Party is the counterpart (farmer/trader) delivering stock. Identity is the
// trimmed name matched case-insensitively within a society, not globally.
type Party struct {
	ID         int       `json:"id"`
	TenantID   int       `json:"tenant_id"`
	SocietyID  int       `json:"society_id"`
	Name       string    `json:"name"`
	FatherName string    `json:"father_name,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Address    string    `json:"address,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CreatePartyRequest struct {
	SocietyID  int    `json:"society_id"`
	Name       string `json:"name"`
	FatherName string `json:"father_name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
}

type UpdatePartyRequest struct {
	Name       string `json:"name"`
	FatherName string `json:"father_name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
}
