package postgres

import (
	"context"
	"errors"

	"github.com/ntsfreight/client-portal/internal/accesscontrol"
	"github.com/ntsfreight/client-portal/internal/auth"
	userDatamodel "github.com/ntsfreight/client-portal/internal/core/datamodel/user"
	"gorm.io/gorm"
)

// Repository backs the auth service and the guard's record stores with the
// shippers and staff_users tables.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetCredentialsByEmail checks the shippers table first, then staff_users.
// The ordering matters: the guard resolves records the same way, so a
// duplicated email consistently resolves to the shipper account.
func (r *Repository) GetCredentialsByEmail(email string) (*auth.Credentials, error) {
	var shipper userDatamodel.Shipper
	err := r.db.Where("email = ?", email).First(&shipper).Error
	if err == nil {
		return &auth.Credentials{
			UserID:       shipper.ID,
			Email:        shipper.Email,
			PasswordHash: shipper.PasswordHash,
			UserType:     accesscontrol.UserTypeShipper,
			IsActive:     shipper.IsActive,
		}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var staff userDatamodel.StaffUser
	err = r.db.Where("email = ?", email).First(&staff).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &auth.Credentials{
		UserID:       staff.ID,
		Email:        staff.Email,
		PasswordHash: staff.PasswordHash,
		UserType:     accesscontrol.UserTypeStaff,
		IsActive:     staff.IsActive,
	}, nil
}

// GetShipperByID implements accesscontrol.ShipperStore. Inactive accounts
// resolve as absent so the guard rejects them with a 401.
func (r *Repository) GetShipperByID(ctx context.Context, id string) (*accesscontrol.ShipperRecord, error) {
	var shipper userDatamodel.Shipper
	err := r.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&shipper).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	record := &accesscontrol.ShipperRecord{
		ID:              shipper.ID,
		Email:           shipper.Email,
		FirstName:       shipper.FirstName,
		LastName:        shipper.LastName,
		ProfileComplete: shipper.ProfileComplete,
	}
	if shipper.CompanyID != nil {
		record.CompanyID = *shipper.CompanyID
	}
	return record, nil
}

// GetStaffByID implements accesscontrol.StaffStore.
func (r *Repository) GetStaffByID(ctx context.Context, id string) (*accesscontrol.StaffRecord, error) {
	var staff userDatamodel.StaffUser
	err := r.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&staff).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	record := &accesscontrol.StaffRecord{
		ID:        staff.ID,
		Email:     staff.Email,
		FirstName: staff.FirstName,
		LastName:  staff.LastName,
		Role:      staff.Role,
		TeamRole:  staff.TeamRole,
	}
	if staff.CompanyID != nil {
		record.CompanyID = *staff.CompanyID
	}
	return record, nil
}
