package postgres

import (
	"context"
	"errors"

	"github.com/ntsfreight/client-portal/internal/company"
	companyDatamodel "github.com/ntsfreight/client-portal/internal/core/datamodel/company"
	"gorm.io/gorm"
)

// CompanyRepository implements the company.Repository interface using GORM
type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) company.Repository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) Create(c *company.Company) error {
	return r.db.Create(toRow(c)).Error
}

func (r *CompanyRepository) GetByID(id string) (*company.Company, error) {
	var row companyDatamodel.Company
	err := r.db.Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, company.ErrNotFound
		}
		return nil, err
	}
	return fromRow(&row), nil
}

func (r *CompanyRepository) List(ids []string, limit, offset int) ([]*company.Company, error) {
	var rows []companyDatamodel.Company
	err := r.db.Where("id IN ?", ids).
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return fromRows(rows), nil
}

func (r *CompanyRepository) ListAll(limit, offset int) ([]*company.Company, error) {
	var rows []companyDatamodel.Company
	err := r.db.Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return fromRows(rows), nil
}

func (r *CompanyRepository) Update(c *company.Company) error {
	result := r.db.Model(&companyDatamodel.Company{}).
		Where("id = ?", c.ID).
		Updates(toRow(c))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return company.ErrNotFound
	}
	return nil
}

func (r *CompanyRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&companyDatamodel.Company{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return company.ErrNotFound
	}
	return nil
}

func (r *CompanyRepository) CreateAssignment(a *company.Assignment) error {
	row := &companyDatamodel.CompanyAssignment{
		ID:        a.ID,
		StaffID:   a.StaffID,
		CompanyID: a.CompanyID,
		CreatedAt: a.CreatedAt,
	}
	if a.CreatedBy != "" {
		createdBy := a.CreatedBy
		row.CreatedBy = &createdBy
	}
	return r.db.Create(row).Error
}

func (r *CompanyRepository) DeleteAssignment(staffID, companyID string) error {
	result := r.db.Where("staff_id = ? AND company_id = ?", staffID, companyID).
		Delete(&companyDatamodel.CompanyAssignment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return company.ErrAssignmentMissing
	}
	return nil
}

func (r *CompanyRepository) GetAssignedCompanyIDs(ctx context.Context, staffID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&companyDatamodel.CompanyAssignment{}).
		Where("staff_id = ?", staffID).
		Pluck("company_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func toRow(c *company.Company) *companyDatamodel.Company {
	return &companyDatamodel.Company{
		ID:         c.ID,
		Name:       c.Name,
		MCNumber:   c.MCNumber,
		DOTNumber:  c.DOTNumber,
		Address:    c.Address,
		City:       c.City,
		State:      c.State,
		PostalCode: c.PostalCode,
		Phone:      c.Phone,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func fromRow(row *companyDatamodel.Company) *company.Company {
	return &company.Company{
		ID:         row.ID,
		Name:       row.Name,
		MCNumber:   row.MCNumber,
		DOTNumber:  row.DOTNumber,
		Address:    row.Address,
		City:       row.City,
		State:      row.State,
		PostalCode: row.PostalCode,
		Phone:      row.Phone,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

func fromRows(rows []companyDatamodel.Company) []*company.Company {
	companies := make([]*company.Company, 0, len(rows))
	for i := range rows {
		companies = append(companies, fromRow(&rows[i]))
	}
	return companies
}
