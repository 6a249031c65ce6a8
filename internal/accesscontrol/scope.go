package accesscontrol

// CompanyScope is the set of company records a caller may act on. All=true
// is the explicit "no filter" sentinel for admin-tier roles; an empty
// CompanyIDs list with All=false means no access at all.
type CompanyScope struct {
	All        bool
	CompanyIDs []string
}

func (s CompanyScope) Contains(companyID string) bool {
	if s.All {
		return true
	}
	for _, id := range s.CompanyIDs {
		if id == companyID {
			return true
		}
	}
	return false
}

func (s CompanyScope) Empty() bool {
	return !s.All && len(s.CompanyIDs) == 0
}

// ResolveCompanyScope computes which companies a user may access. Pure and
// total: every (role, userType, companyID, assignedIDs) combination has a
// defined result and there is no error path.
//
// Policy:
//   - admin / super_admin: unrestricted.
//   - shipper: exactly their own company, or nothing if none is set.
//     Assigned lists never apply to shippers.
//   - sales_rep / manager: the assigned company list; when the caller did
//     not supply one, fall back to the user's own company if set.
//   - everything else (including support): no access.
func ResolveCompanyScope(user *UserContext, assignedIDs []string) CompanyScope {
	if user == nil {
		return CompanyScope{}
	}

	switch user.Role {
	case RoleAdmin, RoleSuperAdmin:
		return CompanyScope{All: true}

	case RoleShipper:
		if user.CompanyID == "" {
			return CompanyScope{}
		}
		return CompanyScope{CompanyIDs: []string{user.CompanyID}}

	case RoleSalesRep, RoleManager:
		if assignedIDs != nil {
			return CompanyScope{CompanyIDs: append([]string{}, assignedIDs...)}
		}
		if user.CompanyID != "" {
			return CompanyScope{CompanyIDs: []string{user.CompanyID}}
		}
		return CompanyScope{}

	default:
		return CompanyScope{}
	}
}
