package quote

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ntsfreight/client-portal/internal"
	"github.com/ntsfreight/client-portal/internal/accesscontrol"
	"github.com/ntsfreight/client-portal/internal/core/events"
)

// OrderCreator turns a priced quote into an order. Implemented by the
// order service and injected at wiring time to avoid a package cycle.
type OrderCreator interface {
	CreateFromQuote(ctx context.Context, q *Quote, createdBy string) (string, error)
}

type Service struct {
	repo     Repository
	orders   OrderCreator
	eventBus *events.EventBus
	logger   *slog.Logger
}

func NewService(repo Repository, orders OrderCreator, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		orders:   orders,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Submit records a new quote request. Shippers always submit for their own
// company regardless of the company_id in the payload.
func (s *Service) Submit(ctx context.Context, user *accesscontrol.UserContext, dto SubmitQuoteDTO) (*Quote, error) {
	if user.UserType == accesscontrol.UserTypeShipper {
		if user.CompanyID == "" {
			return nil, internal.ErrCompanyAccess
		}
		dto.CompanyID = user.CompanyID
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	q := &Quote{
		ID:            uuid.NewString(),
		CompanyID:     dto.CompanyID,
		CreatedBy:     user.ID,
		OriginCity:    dto.OriginCity,
		OriginState:   dto.OriginState,
		OriginZip:     dto.OriginZip,
		DestCity:      dto.DestCity,
		DestState:     dto.DestState,
		DestZip:       dto.DestZip,
		EquipmentType: dto.EquipmentType,
		Commodity:     dto.Commodity,
		WeightLbs:     dto.WeightLbs,
		PickupDate:    dto.PickupDate,
		Status:        StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(q); err != nil {
		s.logger.Error("failed to create quote", "error", err, "company_id", q.CompanyID)
		return nil, err
	}

	s.logger.Info("quote submitted",
		"quote_id", q.ID, "company_id", q.CompanyID, "created_by", user.ID)

	if s.eventBus != nil {
		s.eventBus.Publish(ctx, events.NewQuoteSubmittedEvent(q.ID, q.CompanyID, user.ID, q.Lane()))
	}
	return q, nil
}

// GetForScope loads a quote and verifies it is visible within the scope.
func (s *Service) GetForScope(scope accesscontrol.CompanyScope, id string) (*Quote, error) {
	q, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !scope.Contains(q.CompanyID) {
		return nil, internal.ErrCompanyAccess
	}
	return q, nil
}

func (s *Service) ListForScope(scope accesscontrol.CompanyScope, limit, offset int) ([]*Quote, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	if scope.All {
		return s.repo.ListAll(limit, offset)
	}
	if len(scope.CompanyIDs) == 0 {
		return []*Quote{}, nil
	}
	return s.repo.ListByCompanyIDs(scope.CompanyIDs, limit, offset)
}

// Price attaches a rate to a pending quote. Re-pricing a quoted quote is
// allowed; converted and declined quotes are immutable.
func (s *Service) Price(ctx context.Context, quoteID, quotedBy string, dto PriceQuoteDTO) (*Quote, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	q, err := s.repo.GetByID(quoteID)
	if err != nil {
		return nil, err
	}
	if q.Status != StatusPending && q.Status != StatusQuoted {
		if q.IsConverted() {
			return nil, internal.ErrQuoteConverted
		}
		return nil, internal.NewConflictError("Quote is no longer open", internal.ErrCodeQuoteConverted)
	}

	now := time.Now()
	rate := dto.RateCents
	q.RateCents = &rate
	q.QuotedBy = &quotedBy
	q.QuotedAt = &now
	q.Status = StatusQuoted
	q.UpdatedAt = now

	if err := s.repo.Update(q); err != nil {
		s.logger.Error("failed to price quote", "error", err, "quote_id", quoteID)
		return nil, err
	}

	s.logger.Info("quote priced",
		"quote_id", q.ID, "rate_cents", rate, "quoted_by", quotedBy)

	if s.eventBus != nil {
		s.eventBus.Publish(ctx, events.NewQuotePricedEvent(q.ID, q.CompanyID, quotedBy, q.CreatedBy, rate))
	}
	return q, nil
}

// Convert creates an order from a priced quote. Conversion is one-shot:
// a quote that already carries an order cannot be converted again.
func (s *Service) Convert(ctx context.Context, quoteID, convertedBy string) (*Quote, error) {
	q, err := s.repo.GetByID(quoteID)
	if err != nil {
		return nil, err
	}
	if q.IsConverted() {
		return nil, internal.ErrQuoteConverted
	}
	if q.Status != StatusQuoted || !q.HasRate() {
		return nil, internal.ErrQuoteNotPriced
	}

	orderID, err := s.orders.CreateFromQuote(ctx, q, convertedBy)
	if err != nil {
		s.logger.Error("failed to create order from quote", "error", err, "quote_id", quoteID)
		return nil, err
	}

	q.OrderID = &orderID
	q.Status = StatusConverted
	q.UpdatedAt = time.Now()

	if err := s.repo.Update(q); err != nil {
		s.logger.Error("failed to mark quote converted",
			"error", err, "quote_id", quoteID, "order_id", orderID)
		return nil, err
	}

	s.logger.Info("quote converted",
		"quote_id", q.ID, "order_id", orderID, "converted_by", convertedBy)

	if s.eventBus != nil {
		s.eventBus.Publish(ctx, events.NewQuoteConvertedEvent(q.ID, orderID, q.CompanyID, convertedBy, q.CreatedBy, *q.RateCents))
	}
	return q, nil
}

// Decline closes a quote without converting it.
func (s *Service) Decline(quoteID, declinedBy string) (*Quote, error) {
	q, err := s.repo.GetByID(quoteID)
	if err != nil {
		return nil, err
	}
	if q.IsConverted() {
		return nil, internal.ErrQuoteConverted
	}

	q.Status = StatusDeclined
	q.UpdatedAt = time.Now()

	if err := s.repo.Update(q); err != nil {
		s.logger.Error("failed to decline quote", "error", err, "quote_id", quoteID)
		return nil, err
	}

	s.logger.Info("quote declined", "quote_id", q.ID, "declined_by", declinedBy)
	return q, nil
}
