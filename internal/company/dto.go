package company

import (
	"github.com/ntsfreight/client-portal/internal"
)

type CreateCompanyDTO struct {
	Name       string `json:"name"`
	MCNumber   string `json:"mc_number,omitempty"`
	DOTNumber  string `json:"dot_number,omitempty"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

func (d CreateCompanyDTO) Validate() error {
	if d.Name == "" {
		return internal.NewValidationFieldError("name", "name is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateCompanyDTO struct {
	Name       *string `json:"name,omitempty"`
	MCNumber   *string `json:"mc_number,omitempty"`
	DOTNumber  *string `json:"dot_number,omitempty"`
	Address    *string `json:"address,omitempty"`
	City       *string `json:"city,omitempty"`
	State      *string `json:"state,omitempty"`
	PostalCode *string `json:"postal_code,omitempty"`
	Phone      *string `json:"phone,omitempty"`
}

type AssignStaffDTO struct {
	StaffID   string `json:"staff_id"`
	CompanyID string `json:"company_id"`
}

func (d AssignStaffDTO) Validate() error {
	if d.StaffID == "" {
		return internal.NewValidationFieldError("staff_id", "staff_id is required", internal.ErrCodeValidationFailed)
	}
	if d.CompanyID == "" {
		return internal.NewValidationFieldError("company_id", "company_id is required", internal.ErrCodeValidationFailed)
	}
	return nil
}
