package order

import "time"

const (
	StatusCreated   = "created"
	StatusBooked    = "booked"
	StatusInTransit = "in_transit"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// statusTransitions lists the statuses reachable from each status.
var statusTransitions = map[string][]string{
	StatusCreated:   {StatusBooked, StatusCancelled},
	StatusBooked:    {StatusInTransit, StatusCancelled},
	StatusInTransit: {StatusDelivered},
	StatusDelivered: {},
	StatusCancelled: {},
}

func CanTransition(from, to string) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

type Order struct {
	ID        string    `json:"id"`
	QuoteID   string    `json:"quote_id"`
	CompanyID string    `json:"company_id"`
	Status    string    `json:"status"`
	RateCents int64     `json:"rate_cents"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Repository defines the data access methods for orders
type Repository interface {
	Create(order *Order) error
	GetByID(id string) (*Order, error)
	ListByCompanyIDs(companyIDs []string, limit, offset int) ([]*Order, error)
	ListAll(limit, offset int) ([]*Order, error)
	UpdateStatus(id, status string) error
}
