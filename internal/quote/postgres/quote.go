package postgres

import (
	"errors"

	"github.com/ntsfreight/client-portal/internal"
	quoteDatamodel "github.com/ntsfreight/client-portal/internal/core/datamodel/quote"
	"github.com/ntsfreight/client-portal/internal/quote"
	"gorm.io/gorm"
)

// QuoteRepository implements the quote.Repository interface using GORM
type QuoteRepository struct {
	db *gorm.DB
}

func NewQuoteRepository(db *gorm.DB) quote.Repository {
	return &QuoteRepository{db: db}
}

func (r *QuoteRepository) Create(q *quote.Quote) error {
	return r.db.Create(toRow(q)).Error
}

func (r *QuoteRepository) GetByID(id string) (*quote.Quote, error) {
	var row quoteDatamodel.Quote
	err := r.db.Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrQuoteNotFound
		}
		return nil, err
	}
	return fromRow(&row), nil
}

func (r *QuoteRepository) ListByCompanyIDs(companyIDs []string, limit, offset int) ([]*quote.Quote, error) {
	var rows []quoteDatamodel.Quote
	err := r.db.Where("company_id IN ?", companyIDs).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return fromRows(rows), nil
}

func (r *QuoteRepository) ListAll(limit, offset int) ([]*quote.Quote, error) {
	var rows []quoteDatamodel.Quote
	err := r.db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return fromRows(rows), nil
}

func (r *QuoteRepository) Update(q *quote.Quote) error {
	// Save writes all columns so rate and status transitions land atomically.
	result := r.db.Save(toRow(q))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return internal.ErrQuoteNotFound
	}
	return nil
}

func (r *QuoteRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&quoteDatamodel.Quote{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return internal.ErrQuoteNotFound
	}
	return nil
}

func toRow(q *quote.Quote) *quoteDatamodel.Quote {
	return &quoteDatamodel.Quote{
		ID:            q.ID,
		CompanyID:     q.CompanyID,
		CreatedBy:     q.CreatedBy,
		OriginCity:    q.OriginCity,
		OriginState:   q.OriginState,
		OriginZip:     q.OriginZip,
		DestCity:      q.DestCity,
		DestState:     q.DestState,
		DestZip:       q.DestZip,
		EquipmentType: q.EquipmentType,
		Commodity:     q.Commodity,
		WeightLbs:     q.WeightLbs,
		PickupDate:    q.PickupDate,
		Status:        q.Status,
		RateCents:     q.RateCents,
		QuotedBy:      q.QuotedBy,
		QuotedAt:      q.QuotedAt,
		OrderID:       q.OrderID,
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}
}

func fromRow(row *quoteDatamodel.Quote) *quote.Quote {
	return &quote.Quote{
		ID:            row.ID,
		CompanyID:     row.CompanyID,
		CreatedBy:     row.CreatedBy,
		OriginCity:    row.OriginCity,
		OriginState:   row.OriginState,
		OriginZip:     row.OriginZip,
		DestCity:      row.DestCity,
		DestState:     row.DestState,
		DestZip:       row.DestZip,
		EquipmentType: row.EquipmentType,
		Commodity:     row.Commodity,
		WeightLbs:     row.WeightLbs,
		PickupDate:    row.PickupDate,
		Status:        row.Status,
		RateCents:     row.RateCents,
		QuotedBy:      row.QuotedBy,
		QuotedAt:      row.QuotedAt,
		OrderID:       row.OrderID,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

func fromRows(rows []quoteDatamodel.Quote) []*quote.Quote {
	quotes := make([]*quote.Quote, 0, len(rows))
	for i := range rows {
		quotes = append(quotes, fromRow(&rows[i]))
	}
	return quotes
}
