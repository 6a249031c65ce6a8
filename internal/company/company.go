package company

import (
	"context"
	"errors"
	"time"
)

type Company struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	MCNumber   string    `json:"mc_number,omitempty"`
	DOTNumber  string    `json:"dot_number,omitempty"`
	Address    string    `json:"address,omitempty"`
	City       string    `json:"city,omitempty"`
	State      string    `json:"state,omitempty"`
	PostalCode string    `json:"postal_code,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Assignment links a staff user to a company they may act on behalf of.
type Assignment struct {
	ID        string    `json:"id"`
	StaffID   string    `json:"staff_id"`
	CompanyID string    `json:"company_id"`
	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

var (
	ErrNotFound          = errors.New("company not found")
	ErrAssignmentExists  = errors.New("assignment already exists")
	ErrAssignmentMissing = errors.New("assignment not found")
)

// Repository defines the data access methods for companies and assignments.
type Repository interface {
	Create(company *Company) error
	GetByID(id string) (*Company, error)
	List(ids []string, limit, offset int) ([]*Company, error)
	ListAll(limit, offset int) ([]*Company, error)
	Update(company *Company) error
	Delete(id string) error

	CreateAssignment(assignment *Assignment) error
	DeleteAssignment(staffID, companyID string) error
	GetAssignedCompanyIDs(ctx context.Context, staffID string) ([]string, error)
}
