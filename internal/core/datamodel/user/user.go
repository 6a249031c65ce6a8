package user

import "time"

// Shipper is the customer-side account row. Shippers belong to exactly one
// company and authenticate through the portal.
type Shipper struct {
	ID              string    `gorm:"primaryKey;column:id" json:"id"`
	Email           string    `gorm:"column:email;uniqueIndex;not null" json:"email"`
	PasswordHash    string    `gorm:"column:password_hash;not null" json:"-"`
	FirstName       string    `gorm:"column:first_name" json:"first_name"`
	LastName        string    `gorm:"column:last_name" json:"last_name"`
	CompanyID       *string   `gorm:"column:company_id" json:"company_id,omitempty"`
	ProfileComplete bool      `gorm:"column:profile_complete;default:false" json:"profile_complete"`
	IsActive        bool      `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Shipper) TableName() string {
	return "shippers"
}

// StaffUser is the internal sales/admin account row. The role column is
// free-form legacy text normalized at context-build time.
type StaffUser struct {
	ID           string    `gorm:"primaryKey;column:id" json:"id"`
	Email        string    `gorm:"column:email;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	FirstName    string    `gorm:"column:first_name" json:"first_name"`
	LastName     string    `gorm:"column:last_name" json:"last_name"`
	Role         string    `gorm:"column:role" json:"role"`
	TeamRole     string    `gorm:"column:team_role" json:"team_role,omitempty"`
	CompanyID    *string   `gorm:"column:company_id" json:"company_id,omitempty"`
	IsActive     bool      `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (StaffUser) TableName() string {
	return "staff_users"
}
