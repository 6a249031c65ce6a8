package order

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ntsfreight/client-portal/internal"
	"github.com/ntsfreight/client-portal/internal/accesscontrol"
	"github.com/ntsfreight/client-portal/internal/quote"
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

// CreateFromQuote implements quote.OrderCreator. The quote service owns the
// status transition; this only persists the order row.
func (s *Service) CreateFromQuote(ctx context.Context, q *quote.Quote, createdBy string) (string, error) {
	if q.RateCents == nil {
		return "", internal.ErrQuoteNotPriced
	}

	now := time.Now()
	o := &Order{
		ID:        uuid.NewString(),
		QuoteID:   q.ID,
		CompanyID: q.CompanyID,
		Status:    StatusCreated,
		RateCents: *q.RateCents,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(o); err != nil {
		s.logger.Error("failed to create order", "error", err, "quote_id", q.ID)
		return "", err
	}

	s.logger.Info("order created",
		"order_id", o.ID, "quote_id", q.ID, "company_id", q.CompanyID)
	return o.ID, nil
}

// GetForScope loads an order and verifies it is visible within the scope.
func (s *Service) GetForScope(scope accesscontrol.CompanyScope, id string) (*Order, error) {
	o, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !scope.Contains(o.CompanyID) {
		return nil, internal.ErrCompanyAccess
	}
	return o, nil
}

func (s *Service) ListForScope(scope accesscontrol.CompanyScope, limit, offset int) ([]*Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	if scope.All {
		return s.repo.ListAll(limit, offset)
	}
	if len(scope.CompanyIDs) == 0 {
		return []*Order{}, nil
	}
	return s.repo.ListByCompanyIDs(scope.CompanyIDs, limit, offset)
}

// UpdateStatus moves an order along the lifecycle. Invalid transitions,
// including any move out of a terminal status, are rejected.
func (s *Service) UpdateStatus(scope accesscontrol.CompanyScope, id, updatedBy string, dto UpdateStatusDTO) (*Order, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	o, err := s.GetForScope(scope, id)
	if err != nil {
		return nil, err
	}

	if !CanTransition(o.Status, dto.Status) {
		return nil, internal.NewConflictError("Invalid order status transition", internal.ErrCodeValidationFailed)
	}

	if err := s.repo.UpdateStatus(id, dto.Status); err != nil {
		s.logger.Error("failed to update order status",
			"error", err, "order_id", id, "status", dto.Status)
		return nil, err
	}

	o.Status = dto.Status
	o.UpdatedAt = time.Now()

	s.logger.Info("order status updated",
		"order_id", id, "status", dto.Status, "updated_by", updatedBy)
	return o, nil
}
