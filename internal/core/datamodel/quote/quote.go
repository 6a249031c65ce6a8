package quote

import "time"

type Quote struct {
	ID            string     `gorm:"primaryKey;column:id" json:"id"`
	CompanyID     string     `gorm:"column:company_id;index;not null" json:"company_id"`
	CreatedBy     string     `gorm:"column:created_by;not null" json:"created_by"`
	OriginCity    string     `gorm:"column:origin_city;not null" json:"origin_city"`
	OriginState   string     `gorm:"column:origin_state;not null" json:"origin_state"`
	OriginZip     string     `gorm:"column:origin_zip" json:"origin_zip,omitempty"`
	DestCity      string     `gorm:"column:dest_city;not null" json:"dest_city"`
	DestState     string     `gorm:"column:dest_state;not null" json:"dest_state"`
	DestZip       string     `gorm:"column:dest_zip" json:"dest_zip,omitempty"`
	EquipmentType string     `gorm:"column:equipment_type;not null" json:"equipment_type"`
	Commodity     string     `gorm:"column:commodity" json:"commodity,omitempty"`
	WeightLbs     int64      `gorm:"column:weight_lbs" json:"weight_lbs,omitempty"`
	PickupDate    time.Time  `gorm:"column:pickup_date" json:"pickup_date"`
	Status        string     `gorm:"column:status;default:'pending'" json:"status"`
	RateCents     *int64     `gorm:"column:rate_cents" json:"rate_cents,omitempty"`
	QuotedBy      *string    `gorm:"column:quoted_by" json:"quoted_by,omitempty"`
	QuotedAt      *time.Time `gorm:"column:quoted_at" json:"quoted_at,omitempty"`
	OrderID       *string    `gorm:"column:order_id" json:"order_id,omitempty"`
	CreatedAt     time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (Quote) TableName() string {
	return "quotes"
}
