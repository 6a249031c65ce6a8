package user

import (
	"log/slog"

	"github.com/ntsfreight/client-portal/internal"
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

// List returns shippers, staff, or both depending on userType.
func (s *Service) List(userType string, limit, offset int) ([]*Summary, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	switch userType {
	case "shipper":
		return s.repo.ListShippers(limit, offset)
	case "staff":
		return s.repo.ListStaff(limit, offset)
	case "":
		shippers, err := s.repo.ListShippers(limit, offset)
		if err != nil {
			return nil, err
		}
		staff, err := s.repo.ListStaff(limit, offset)
		if err != nil {
			return nil, err
		}
		return append(shippers, staff...), nil
	}
	return nil, internal.NewValidationFieldError("user_type", "user_type must be shipper or staff", internal.ErrCodeValidationFailed)
}

// SetActive toggles a user account. Deactivated accounts fail the active
// check during record load, so existing tokens stop working immediately.
func (s *Service) SetActive(id string, active bool) error {
	found, err := s.repo.SetActive(id, active)
	if err != nil {
		s.logger.Error("failed to toggle user", "error", err, "user_id", id)
		return err
	}
	if !found {
		return internal.NewNotFoundError("User not found", internal.ErrCodeUserNotFound)
	}

	s.logger.Info("user active flag changed", "user_id", id, "active", active)
	return nil
}
