package notification

import "time"

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository defines the data access methods for notifications
type Repository interface {
	Create(n *Notification) error
	ListByUserID(userID string, limit, offset int) ([]*Notification, error)
	MarkRead(id, userID string) error
	CountUnread(userID string) (int64, error)
}
