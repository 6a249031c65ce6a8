package company

import "time"

type Company struct {
	ID         string    `gorm:"primaryKey;column:id" json:"id"`
	Name       string    `gorm:"column:name;not null" json:"name"`
	MCNumber   string    `gorm:"column:mc_number" json:"mc_number,omitempty"`
	DOTNumber  string    `gorm:"column:dot_number" json:"dot_number,omitempty"`
	Address    string    `gorm:"column:address" json:"address,omitempty"`
	City       string    `gorm:"column:city" json:"city,omitempty"`
	State      string    `gorm:"column:state" json:"state,omitempty"`
	PostalCode string    `gorm:"column:postal_code" json:"postal_code,omitempty"`
	Phone      string    `gorm:"column:phone" json:"phone,omitempty"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Company) TableName() string {
	return "companies"
}

// CompanyAssignment relates a staff user to a company they may act on
// behalf of. Created and removed by admin action only.
type CompanyAssignment struct {
	ID        string    `gorm:"primaryKey;column:id" json:"id"`
	StaffID   string    `gorm:"column:staff_id;index;not null" json:"staff_id"`
	CompanyID string    `gorm:"column:company_id;index;not null" json:"company_id"`
	CreatedBy *string   `gorm:"column:created_by" json:"created_by,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (CompanyAssignment) TableName() string {
	return "company_assignments"
}
