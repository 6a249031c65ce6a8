package accesscontrol

import (
	"log/slog"
	"strings"
)

// Role is the closed set of organizational functions a portal user can hold.
type Role string

const (
	RoleShipper    Role = "shipper"
	RoleSalesRep   Role = "sales_rep"
	RoleManager    Role = "manager"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
	RoleSupport    Role = "support"
)

// Permission is a single fine-grained capability. Permissions are granted
// per role only; there are no per-user overrides.
type Permission string

const (
	PermViewQuotes   Permission = "view_quotes"
	PermCreateQuotes Permission = "create_quotes"
	PermEditQuotes   Permission = "edit_quotes"
	PermDeleteQuotes Permission = "delete_quotes"

	PermViewOrders   Permission = "view_orders"
	PermCreateOrders Permission = "create_orders"
	PermEditOrders   Permission = "edit_orders"
	PermDeleteOrders Permission = "delete_orders"

	PermViewCompanies   Permission = "view_companies"
	PermCreateCompanies Permission = "create_companies"
	PermEditCompanies   Permission = "edit_companies"
	PermDeleteCompanies Permission = "delete_companies"

	PermViewUsers   Permission = "view_users"
	PermCreateUsers Permission = "create_users"
	PermEditUsers   Permission = "edit_users"
	PermDeleteUsers Permission = "delete_users"

	PermViewReports   Permission = "view_reports"
	PermExportReports Permission = "export_reports"

	PermViewDocuments   Permission = "view_documents"
	PermUploadDocuments Permission = "upload_documents"
	PermDeleteDocuments Permission = "delete_documents"

	PermManageNotifications Permission = "manage_notifications"
	PermAccessAPI           Permission = "access_api"
	PermAccessSupport       Permission = "access_support"
	PermManageSystem        Permission = "manage_system"
)

// Permission sets are built by extension so that each staff tier is a strict
// superset of the tier below it. Support sits outside the ladder.
var (
	shipperPermissions = []Permission{
		PermViewQuotes, PermCreateQuotes, PermEditQuotes,
		PermViewOrders, PermCreateOrders,
		PermViewDocuments, PermUploadDocuments,
		PermAccessSupport,
	}

	salesRepPermissions = append(append([]Permission{}, shipperPermissions...),
		PermDeleteQuotes, PermEditOrders,
		PermViewCompanies, PermViewUsers, PermViewReports,
	)

	managerPermissions = append(append([]Permission{}, salesRepPermissions...),
		PermDeleteOrders, PermEditCompanies,
		PermCreateUsers, PermEditUsers, PermExportReports,
	)

	adminPermissions = append(append([]Permission{}, managerPermissions...),
		PermCreateCompanies, PermDeleteCompanies, PermDeleteUsers,
		PermDeleteDocuments, PermManageNotifications, PermAccessAPI,
	)

	superAdminPermissions = append(append([]Permission{}, adminPermissions...),
		PermManageSystem,
	)

	supportPermissions = []Permission{
		PermViewQuotes, PermViewOrders, PermViewUsers,
		PermViewDocuments, PermAccessSupport,
	}
)

var rolePermissions = map[Role][]Permission{
	RoleShipper:    shipperPermissions,
	RoleSalesRep:   salesRepPermissions,
	RoleManager:    managerPermissions,
	RoleAdmin:      adminPermissions,
	RoleSuperAdmin: superAdminPermissions,
	RoleSupport:    supportPermissions,
}

// AllPermissions is the full permission universe. super_admin holds exactly
// this set.
func AllPermissions() []Permission {
	return append([]Permission{}, superAdminPermissions...)
}

// PermissionsForRole returns a copy of the fixed permission set for a role.
// Unknown roles get no permissions.
func PermissionsForRole(role Role) []Permission {
	perms, ok := rolePermissions[role]
	if !ok {
		return []Permission{}
	}
	return append([]Permission{}, perms...)
}

func (r Role) Valid() bool {
	_, ok := rolePermissions[r]
	return ok
}

// IsAdminTier reports whether the role bypasses company scoping.
func (r Role) IsAdminTier() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// legacyRoleAliases maps role strings observed in historical staff records to
// canonical roles. The table is the single source of truth for aliasing; do
// not add fuzzy matching around it.
var legacyRoleAliases = map[string]Role{
	"broker":               RoleSalesRep,
	"sales":                RoleSalesRep,
	"salesrep":             RoleSalesRep,
	"sales-representative": RoleSalesRep,
	"sales_representative": RoleSalesRep,
	"superadmin":           RoleSuperAdmin,
	"super-admin":          RoleSuperAdmin,
	"owner":                RoleSuperAdmin,
	"administrator":        RoleAdmin,
	"customer":             RoleShipper,
	"client":               RoleShipper,
	"customer-service":     RoleSupport,
	"csr":                  RoleSupport,
}

// NormalizeLegacyRole maps a free-form stored role string to a canonical
// Role. Unrecognized strings degrade to sales_rep with a warning rather than
// failing the request; records with misspelled roles predate role
// validation and still need to log in.
func NormalizeLegacyRole(raw string, logger *slog.Logger) Role {
	normalized := strings.ToLower(strings.TrimSpace(raw))

	if role := Role(normalized); role.Valid() {
		return role
	}
	if role, ok := legacyRoleAliases[normalized]; ok {
		return role
	}

	if logger != nil {
		logger.Warn("unrecognized role string, defaulting to sales_rep", "role", raw)
	}
	return RoleSalesRep
}
