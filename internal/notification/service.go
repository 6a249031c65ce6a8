package notification

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) Notify(userID, title, body string) (*Notification, error) {
	n := &Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(n); err != nil {
		s.logger.Error("failed to create notification", "error", err, "user_id", userID)
		return nil, err
	}
	return n, nil
}

// ListForUser returns the caller's own notifications, newest first.
func (s *Service) ListForUser(userID string, limit, offset int) ([]*Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.ListByUserID(userID, limit, offset)
}

// MarkRead only touches notifications owned by userID.
func (s *Service) MarkRead(id, userID string) error {
	return s.repo.MarkRead(id, userID)
}

func (s *Service) CountUnread(userID string) (int64, error) {
	return s.repo.CountUnread(userID)
}
