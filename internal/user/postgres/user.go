package postgres

import (
	userDatamodel "github.com/ntsfreight/client-portal/internal/core/datamodel/user"
	"github.com/ntsfreight/client-portal/internal/user"
	"gorm.io/gorm"
)

// UserRepository implements the user.Repository interface using GORM
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) ListShippers(limit, offset int) ([]*user.Summary, error) {
	var rows []userDatamodel.Shipper
	err := r.db.Order("email ASC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]*user.Summary, 0, len(rows))
	for i := range rows {
		row := rows[i]
		summary := &user.Summary{
			ID:        row.ID,
			Email:     row.Email,
			FirstName: row.FirstName,
			LastName:  row.LastName,
			UserType:  "shipper",
			IsActive:  row.IsActive,
			CreatedAt: row.CreatedAt,
		}
		if row.CompanyID != nil {
			summary.CompanyID = *row.CompanyID
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (r *UserRepository) ListStaff(limit, offset int) ([]*user.Summary, error) {
	var rows []userDatamodel.StaffUser
	err := r.db.Order("email ASC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]*user.Summary, 0, len(rows))
	for i := range rows {
		row := rows[i]
		summary := &user.Summary{
			ID:        row.ID,
			Email:     row.Email,
			FirstName: row.FirstName,
			LastName:  row.LastName,
			UserType:  "staff",
			Role:      row.Role,
			IsActive:  row.IsActive,
			CreatedAt: row.CreatedAt,
		}
		if row.CompanyID != nil {
			summary.CompanyID = *row.CompanyID
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// SetActive flips is_active on whichever table holds the id. Returns false
// when neither table has a matching row.
func (r *UserRepository) SetActive(id string, active bool) (bool, error) {
	result := r.db.Model(&userDatamodel.Shipper{}).
		Where("id = ?", id).
		Update("is_active", active)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	result = r.db.Model(&userDatamodel.StaffUser{}).
		Where("id = ?", id).
		Update("is_active", active)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
