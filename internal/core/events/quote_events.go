package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeQuoteSubmitted = "quote.submitted"
	EventTypeQuotePriced    = "quote.priced"
	EventTypeQuoteConverted = "quote.converted"
)

type QuoteSubmittedEvent struct {
	BaseEvent
	QuoteID   string `json:"quote_id"`
	CompanyID string `json:"company_id"`
	CreatedBy string `json:"created_by"`
	Lane      string `json:"lane"`
}

func NewQuoteSubmittedEvent(quoteID, companyID, createdBy, lane string) *QuoteSubmittedEvent {
	return &QuoteSubmittedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeQuoteSubmitted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"quote_id":   quoteID,
				"company_id": companyID,
				"created_by": createdBy,
				"lane":       lane,
			},
		},
		QuoteID:   quoteID,
		CompanyID: companyID,
		CreatedBy: createdBy,
		Lane:      lane,
	}
}

type QuotePricedEvent struct {
	BaseEvent
	QuoteID   string `json:"quote_id"`
	CompanyID string `json:"company_id"`
	QuotedBy  string `json:"quoted_by"`
	RateCents int64  `json:"rate_cents"`
	CreatedBy string `json:"created_by"`
}

func NewQuotePricedEvent(quoteID, companyID, quotedBy, createdBy string, rateCents int64) *QuotePricedEvent {
	return &QuotePricedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeQuotePriced,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"quote_id":   quoteID,
				"company_id": companyID,
				"quoted_by":  quotedBy,
				"created_by": createdBy,
				"rate_cents": rateCents,
			},
		},
		QuoteID:   quoteID,
		CompanyID: companyID,
		QuotedBy:  quotedBy,
		CreatedBy: createdBy,
		RateCents: rateCents,
	}
}

type QuoteConvertedEvent struct {
	BaseEvent
	QuoteID     string `json:"quote_id"`
	OrderID     string `json:"order_id"`
	CompanyID   string `json:"company_id"`
	ConvertedBy string `json:"converted_by"`
	RateCents   int64  `json:"rate_cents"`
	CreatedBy   string `json:"created_by"`
}

func NewQuoteConvertedEvent(quoteID, orderID, companyID, convertedBy, createdBy string, rateCents int64) *QuoteConvertedEvent {
	return &QuoteConvertedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeQuoteConverted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"quote_id":     quoteID,
				"order_id":     orderID,
				"company_id":   companyID,
				"converted_by": convertedBy,
				"created_by":   createdBy,
				"rate_cents":   rateCents,
			},
		},
		QuoteID:     quoteID,
		OrderID:     orderID,
		CompanyID:   companyID,
		ConvertedBy: convertedBy,
		CreatedBy:   createdBy,
		RateCents:   rateCents,
	}
}
