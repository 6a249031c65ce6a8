package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ntsfreight/client-portal/internal/core/events"
)

// EventHandler turns quote lifecycle events into notifications for the
// shipper who submitted the quote.
type EventHandler struct {
	service *Service
	logger  *slog.Logger
}

func NewEventHandler(service *Service, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		service: service,
		logger:  logger,
	}
}

func (h *EventHandler) RegisterHandlers(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeQuoteSubmitted, h.handleQuoteSubmitted)
	bus.Subscribe(events.EventTypeQuotePriced, h.handleQuotePriced)
	bus.Subscribe(events.EventTypeQuoteConverted, h.handleQuoteConverted)
}

func (h *EventHandler) handleQuoteSubmitted(ctx context.Context, event events.Event) error {
	submitted, ok := event.(*events.QuoteSubmittedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}

	body := fmt.Sprintf("Your quote request for %s was received and is awaiting pricing.", submitted.Lane)
	_, err := h.service.Notify(submitted.CreatedBy, "Quote received", body)
	if err != nil {
		return fmt.Errorf("notify quote submitted: %w", err)
	}

	h.logger.Debug("quote submitted notification sent",
		"quote_id", submitted.QuoteID, "user_id", submitted.CreatedBy)
	return nil
}

func (h *EventHandler) handleQuotePriced(ctx context.Context, event events.Event) error {
	priced, ok := event.(*events.QuotePricedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}

	body := fmt.Sprintf("Your quote has been priced at $%.2f.", float64(priced.RateCents)/100)
	_, err := h.service.Notify(priced.CreatedBy, "Quote priced", body)
	if err != nil {
		return fmt.Errorf("notify quote priced: %w", err)
	}

	h.logger.Debug("quote priced notification sent",
		"quote_id", priced.QuoteID, "user_id", priced.CreatedBy)
	return nil
}

func (h *EventHandler) handleQuoteConverted(ctx context.Context, event events.Event) error {
	converted, ok := event.(*events.QuoteConvertedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}

	body := fmt.Sprintf("Your quote was booked as order %s.", converted.OrderID)
	_, err := h.service.Notify(converted.CreatedBy, "Order booked", body)
	if err != nil {
		return fmt.Errorf("notify quote converted: %w", err)
	}

	h.logger.Debug("quote converted notification sent",
		"quote_id", converted.QuoteID, "order_id", converted.OrderID)
	return nil
}
