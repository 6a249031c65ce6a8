package company

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ntsfreight/client-portal/internal/accesscontrol"
)

// Service handles company business logic. Listing honors the caller's
// company scope; management operations are gated upstream by the guard.
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

func (s *Service) Create(createdBy string, dto CreateCompanyDTO) (*Company, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	company := &Company{
		ID:         uuid.NewString(),
		Name:       dto.Name,
		MCNumber:   dto.MCNumber,
		DOTNumber:  dto.DOTNumber,
		Address:    dto.Address,
		City:       dto.City,
		State:      dto.State,
		PostalCode: dto.PostalCode,
		Phone:      dto.Phone,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(company); err != nil {
		s.logger.Error("failed to create company", "error", err, "created_by", createdBy)
		return nil, err
	}

	s.logger.Info("company created", "company_id", company.ID, "created_by", createdBy)
	return company, nil
}

func (s *Service) GetByID(id string) (*Company, error) {
	return s.repo.GetByID(id)
}

// ListForScope returns companies visible within the caller's scope.
func (s *Service) ListForScope(scope accesscontrol.CompanyScope, limit, offset int) ([]*Company, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	if scope.All {
		return s.repo.ListAll(limit, offset)
	}
	if len(scope.CompanyIDs) == 0 {
		return []*Company{}, nil
	}
	return s.repo.List(scope.CompanyIDs, limit, offset)
}

func (s *Service) Update(id string, dto UpdateCompanyDTO) (*Company, error) {
	company, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		company.Name = *dto.Name
	}
	if dto.MCNumber != nil {
		company.MCNumber = *dto.MCNumber
	}
	if dto.DOTNumber != nil {
		company.DOTNumber = *dto.DOTNumber
	}
	if dto.Address != nil {
		company.Address = *dto.Address
	}
	if dto.City != nil {
		company.City = *dto.City
	}
	if dto.State != nil {
		company.State = *dto.State
	}
	if dto.PostalCode != nil {
		company.PostalCode = *dto.PostalCode
	}
	if dto.Phone != nil {
		company.Phone = *dto.Phone
	}
	company.UpdatedAt = time.Now()

	if err := s.repo.Update(company); err != nil {
		s.logger.Error("failed to update company", "error", err, "company_id", id)
		return nil, err
	}
	return company, nil
}

func (s *Service) Delete(id string) error {
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete company", "error", err, "company_id", id)
		return err
	}
	s.logger.Info("company deleted", "company_id", id)
	return nil
}

// AssignStaff grants a staff user access to a company.
func (s *Service) AssignStaff(grantedBy string, dto AssignStaffDTO) (*Assignment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByID(dto.CompanyID); err != nil {
		return nil, err
	}

	assignment := &Assignment{
		ID:        uuid.NewString(),
		StaffID:   dto.StaffID,
		CompanyID: dto.CompanyID,
		CreatedBy: grantedBy,
		CreatedAt: time.Now(),
	}

	if err := s.repo.CreateAssignment(assignment); err != nil {
		s.logger.Error("failed to create assignment",
			"error", err, "staff_id", dto.StaffID, "company_id", dto.CompanyID)
		return nil, err
	}

	s.logger.Info("staff assigned to company",
		"staff_id", dto.StaffID, "company_id", dto.CompanyID, "granted_by", grantedBy)
	return assignment, nil
}

func (s *Service) UnassignStaff(staffID, companyID string) error {
	if err := s.repo.DeleteAssignment(staffID, companyID); err != nil {
		s.logger.Error("failed to remove assignment",
			"error", err, "staff_id", staffID, "company_id", companyID)
		return err
	}
	return nil
}

// GetAssignedCompanyIDs implements accesscontrol.AssignmentStore so the
// guard can scope staff requests.
func (s *Service) GetAssignedCompanyIDs(ctx context.Context, staffID string) ([]string, error) {
	return s.repo.GetAssignedCompanyIDs(ctx, staffID)
}
