package order

import "time"

type Order struct {
	ID        string    `gorm:"primaryKey;column:id" json:"id"`
	QuoteID   string    `gorm:"column:quote_id;uniqueIndex;not null" json:"quote_id"`
	CompanyID string    `gorm:"column:company_id;index;not null" json:"company_id"`
	Status    string    `gorm:"column:status;default:'created'" json:"status"`
	RateCents int64     `gorm:"column:rate_cents;not null" json:"rate_cents"`
	CreatedBy string    `gorm:"column:created_by;not null" json:"created_by"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}
