package user

import "time"

// Summary is the directory view of a portal user, shipper or staff.
type Summary struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	UserType  string    `json:"user_type"`
	Role      string    `json:"role,omitempty"`
	CompanyID string    `json:"company_id,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository defines the data access methods for the user directory
type Repository interface {
	ListShippers(limit, offset int) ([]*Summary, error)
	ListStaff(limit, offset int) ([]*Summary, error)
	SetActive(id string, active bool) (bool, error)
}
