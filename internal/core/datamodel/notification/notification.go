package notification

import "time"

type Notification struct {
	ID        string    `gorm:"primaryKey;column:id" json:"id"`
	UserID    string    `gorm:"column:user_id;index;not null" json:"user_id"`
	Title     string    `gorm:"column:title;not null" json:"title"`
	Body      string    `gorm:"column:body" json:"body,omitempty"`
	Read      bool      `gorm:"column:read;default:false" json:"read"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
