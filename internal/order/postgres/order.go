package postgres

import (
	"errors"
	"time"

	"github.com/ntsfreight/client-portal/internal"
	orderDatamodel "github.com/ntsfreight/client-portal/internal/core/datamodel/order"
	"github.com/ntsfreight/client-portal/internal/order"
	"gorm.io/gorm"
)

// OrderRepository implements the order.Repository interface using GORM
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) order.Repository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(o *order.Order) error {
	return r.db.Create(toRow(o)).Error
}

func (r *OrderRepository) GetByID(id string) (*order.Order, error) {
	var row orderDatamodel.Order
	err := r.db.Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrOrderNotFound
		}
		return nil, err
	}
	return fromRow(&row), nil
}

func (r *OrderRepository) ListByCompanyIDs(companyIDs []string, limit, offset int) ([]*order.Order, error) {
	var rows []orderDatamodel.Order
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

func (r *OrderRepository) ListAll(limit, offset int) ([]*order.Order, error) {
	var rows []orderDatamodel.Order
	err := r.db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return fromRows(rows), nil
}

func (r *OrderRepository) UpdateStatus(id, status string) error {
	result := r.db.Model(&orderDatamodel.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return internal.ErrOrderNotFound
	}
	return nil
}

func toRow(o *order.Order) *orderDatamodel.Order {
	return &orderDatamodel.Order{
		ID:        o.ID,
		QuoteID:   o.QuoteID,
		CompanyID: o.CompanyID,
		Status:    o.Status,
		RateCents: o.RateCents,
		CreatedBy: o.CreatedBy,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func fromRow(row *orderDatamodel.Order) *order.Order {
	return &order.Order{
		ID:        row.ID,
		QuoteID:   row.QuoteID,
		CompanyID: row.CompanyID,
		Status:    row.Status,
		RateCents: row.RateCents,
		CreatedBy: row.CreatedBy,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func fromRows(rows []orderDatamodel.Order) []*order.Order {
	orders := make([]*order.Order, 0, len(rows))
	for i := range rows {
		orders = append(orders, fromRow(&rows[i]))
	}
	return orders
}
