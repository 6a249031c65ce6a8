package accesscontrol

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ResolveCompanyScope", func() {
	staff := func(role Role, companyID string) *UserContext {
		return &UserContext{ID: "u1", Role: role, UserType: UserTypeStaff, CompanyID: companyID}
	}

	It("grants admin tiers everything regardless of assignments", func() {
		for _, role := range []Role{RoleAdmin, RoleSuperAdmin} {
			scope := ResolveCompanyScope(staff(role, ""), []string{"C1"})
			Expect(scope.All).To(BeTrue())
			Expect(scope.Contains("C-anything")).To(BeTrue())
		}
	})

	It("limits shippers to their own company and never the assigned list", func() {
		shipper := &UserContext{ID: "s1", Role: RoleShipper, UserType: UserTypeShipper, CompanyID: "C1"}
		scope := ResolveCompanyScope(shipper, []string{"C2", "C3"})
		Expect(scope.All).To(BeFalse())
		Expect(scope.CompanyIDs).To(Equal([]string{"C1"}))
	})

	It("gives shippers without a company no access", func() {
		shipper := &UserContext{ID: "s1", Role: RoleShipper, UserType: UserTypeShipper}
		Expect(ResolveCompanyScope(shipper, nil).Empty()).To(BeTrue())
	})

	It("uses the assigned list for sales reps and managers", func() {
		for _, role := range []Role{RoleSalesRep, RoleManager} {
			scope := ResolveCompanyScope(staff(role, "C9"), []string{"C1", "C2"})
			Expect(scope.CompanyIDs).To(ConsistOf("C1", "C2"))
			Expect(scope.Contains("C9")).To(BeFalse())
		}
	})

	It("falls back to the user's own company when no list was supplied", func() {
		scope := ResolveCompanyScope(staff(RoleManager, "C7"), nil)
		Expect(scope.CompanyIDs).To(Equal([]string{"C7"}))
	})

	It("treats an explicitly empty assigned list as no access", func() {
		scope := ResolveCompanyScope(staff(RoleSalesRep, "C7"), []string{})
		Expect(scope.Empty()).To(BeTrue())
	})

	It("denies support and unknown roles", func() {
		Expect(ResolveCompanyScope(staff(RoleSupport, "C1"), []string{"C1"}).Empty()).To(BeTrue())
		Expect(ResolveCompanyScope(staff(Role("dispatcher"), "C1"), nil).Empty()).To(BeTrue())
	})

	It("is total over nil users", func() {
		Expect(ResolveCompanyScope(nil, []string{"C1"}).Empty()).To(BeTrue())
	})

	It("copies the assigned list instead of aliasing it", func() {
		assigned := []string{"C1"}
		scope := ResolveCompanyScope(staff(RoleSalesRep, ""), assigned)
		assigned[0] = "C2"
		Expect(scope.CompanyIDs).To(Equal([]string{"C1"}))
	})
})
