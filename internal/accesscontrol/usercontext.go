package accesscontrol

import (
	"context"
	"errors"
	"log/slog"
)

// UserType tags which stored record kind a context was built from.
type UserType string

const (
	UserTypeShipper UserType = "shipper"
	UserTypeStaff   UserType = "staff"
)

var ErrIncompleteRecord = errors.New("record is missing id or email")

// ShipperRecord is the stored shape of a customer-side user. Shippers belong
// to exactly one company.
type ShipperRecord struct {
	ID              string
	Email           string
	FirstName       string
	LastName        string
	CompanyID       string
	ProfileComplete bool
}

// StaffRecord is the stored shape of an internal sales/admin user. The role
// field is free-form legacy text and must be normalized before use.
type StaffRecord struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	Role      string
	TeamRole  string
	CompanyID string
}

// UserContext is the request-scoped answer to "who is calling and what can
// they do". It is built fresh from the stored record on every request and
// never cached across sessions.
type UserContext struct {
	ID              string       `json:"id"`
	Email           string       `json:"email"`
	FirstName       string       `json:"first_name,omitempty"`
	LastName        string       `json:"last_name,omitempty"`
	Role            Role         `json:"role"`
	UserType        UserType     `json:"user_type"`
	CompanyID       string       `json:"company_id,omitempty"`
	Permissions     []Permission `json:"permissions,omitempty"`
	ProfileComplete bool         `json:"profile_complete"`
	TeamRole        string       `json:"team_role,omitempty"`
}

func (uc *UserContext) HasPermission(permission Permission) bool {
	for _, p := range uc.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

func (uc *UserContext) HasAnyPermission(permissions []Permission) bool {
	for _, required := range permissions {
		if uc.HasPermission(required) {
			return true
		}
	}
	return false
}

func (uc *UserContext) HasAllPermissions(permissions []Permission) bool {
	for _, required := range permissions {
		if !uc.HasPermission(required) {
			return false
		}
	}
	return true
}

func (uc *UserContext) IsAdminTier() bool {
	return uc.Role.IsAdminTier()
}

// Normalizer collapses the two stored record kinds into one UserContext.
type Normalizer struct {
	logger *slog.Logger
}

func NewNormalizer(logger *slog.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// FromShipper builds a context for a customer-side record. Shippers always
// carry the shipper role regardless of any stored role text.
func (n *Normalizer) FromShipper(rec *ShipperRecord) (*UserContext, error) {
	if rec == nil || rec.ID == "" || rec.Email == "" {
		return nil, ErrIncompleteRecord
	}

	return &UserContext{
		ID:              rec.ID,
		Email:           rec.Email,
		FirstName:       rec.FirstName,
		LastName:        rec.LastName,
		Role:            RoleShipper,
		UserType:        UserTypeShipper,
		CompanyID:       rec.CompanyID,
		Permissions:     PermissionsForRole(RoleShipper),
		ProfileComplete: rec.ProfileComplete,
	}, nil
}

// FromStaff builds a context for an internal record, normalizing the legacy
// role string first.
func (n *Normalizer) FromStaff(rec *StaffRecord) (*UserContext, error) {
	if rec == nil || rec.ID == "" || rec.Email == "" {
		return nil, ErrIncompleteRecord
	}

	role := NormalizeLegacyRole(rec.Role, n.logger)

	return &UserContext{
		ID:              rec.ID,
		Email:           rec.Email,
		FirstName:       rec.FirstName,
		LastName:        rec.LastName,
		Role:            role,
		UserType:        UserTypeStaff,
		CompanyID:       rec.CompanyID,
		Permissions:     PermissionsForRole(role),
		ProfileComplete: true,
		TeamRole:        rec.TeamRole,
	}, nil
}

type ctxKey string

const contextUserKey ctxKey = "access_user"

func ContextWithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, contextUserKey, user)
}

func UserFromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(contextUserKey).(*UserContext)
	return user, ok
}
