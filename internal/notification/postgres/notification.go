package postgres

import (
	notificationDatamodel "github.com/ntsfreight/client-portal/internal/core/datamodel/notification"
	"github.com/ntsfreight/client-portal/internal/notification"
	"gorm.io/gorm"
)

// NotificationRepository implements the notification.Repository interface using GORM
type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) notification.Repository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(n *notification.Notification) error {
	return r.db.Create(&notificationDatamodel.Notification{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Body:      n.Body,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}).Error
}

func (r *NotificationRepository) ListByUserID(userID string, limit, offset int) ([]*notification.Notification, error) {
	var rows []notificationDatamodel.Notification
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	notifications := make([]*notification.Notification, 0, len(rows))
	for i := range rows {
		row := rows[i]
		notifications = append(notifications, &notification.Notification{
			ID:        row.ID,
			UserID:    row.UserID,
			Title:     row.Title,
			Body:      row.Body,
			Read:      row.Read,
			CreatedAt: row.CreatedAt,
		})
	}
	return notifications, nil
}

func (r *NotificationRepository) MarkRead(id, userID string) error {
	return r.db.Model(&notificationDatamodel.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true).Error
}

func (r *NotificationRepository) CountUnread(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&notificationDatamodel.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}
