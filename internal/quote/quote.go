package quote

import (
	"fmt"
	"time"
)

const (
	StatusPending   = "pending"
	StatusQuoted    = "quoted"
	StatusConverted = "converted"
	StatusDeclined  = "declined"
)

// EquipmentTypes accepted on quote submission.
var EquipmentTypes = []string{"dry_van", "reefer", "flatbed", "step_deck", "power_only", "ltl"}

type Quote struct {
	ID            string     `json:"id"`
	CompanyID     string     `json:"company_id"`
	CreatedBy     string     `json:"created_by"`
	OriginCity    string     `json:"origin_city"`
	OriginState   string     `json:"origin_state"`
	OriginZip     string     `json:"origin_zip,omitempty"`
	DestCity      string     `json:"dest_city"`
	DestState     string     `json:"dest_state"`
	DestZip       string     `json:"dest_zip,omitempty"`
	EquipmentType string     `json:"equipment_type"`
	Commodity     string     `json:"commodity,omitempty"`
	WeightLbs     int64      `json:"weight_lbs,omitempty"`
	PickupDate    time.Time  `json:"pickup_date"`
	Status        string     `json:"status"`
	RateCents     *int64     `json:"rate_cents,omitempty"`
	QuotedBy      *string    `json:"quoted_by,omitempty"`
	QuotedAt      *time.Time `json:"quoted_at,omitempty"`
	OrderID       *string    `json:"order_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (q *Quote) IsConverted() bool {
	return q.Status == StatusConverted
}

func (q *Quote) HasRate() bool {
	return q.RateCents != nil && *q.RateCents > 0
}

// Lane renders the origin/destination pair for logs and notifications.
func (q *Quote) Lane() string {
	return fmt.Sprintf("%s, %s -> %s, %s", q.OriginCity, q.OriginState, q.DestCity, q.DestState)
}

// Repository defines the data access methods for quotes
type Repository interface {
	Create(quote *Quote) error
	GetByID(id string) (*Quote, error)
	ListByCompanyIDs(companyIDs []string, limit, offset int) ([]*Quote, error)
	ListAll(limit, offset int) ([]*Quote, error)
	Update(quote *Quote) error
	Delete(id string) error
}
