package models

import "time"

type District struct {
	ID        int       `json:"id"`
	TenantID  int       `json:"tenant_id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"` // unique per tenant
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateDistrictRequest struct {
	Name  string `json:"name"`
	Code  string `json:"code"`
	State string `json:"state"`
}

type UpdateDistrictRequest struct {
	Name  string `json:"name"`
	State string `json:"state"`
}
