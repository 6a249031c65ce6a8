package accesscontrol

import (
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Role permission table", func() {
	containsAll := func(set []Permission, subset []Permission) bool {
		lookup := make(map[Permission]bool, len(set))
		for _, p := range set {
			lookup[p] = true
		}
		for _, p := range subset {
			if !lookup[p] {
				return false
			}
		}
		return true
	}

	It("is deterministic per role", func() {
		for _, role := range []Role{RoleShipper, RoleSalesRep, RoleManager, RoleAdmin, RoleSuperAdmin, RoleSupport} {
			first := PermissionsForRole(role)
			second := PermissionsForRole(role)
			Expect(second).To(Equal(first))
			Expect(first).NotTo(BeEmpty())
		}
	})

	It("grows as supersets up the staff ladder", func() {
		Expect(containsAll(PermissionsForRole(RoleSalesRep), PermissionsForRole(RoleShipper))).To(BeTrue())
		Expect(containsAll(PermissionsForRole(RoleManager), PermissionsForRole(RoleSalesRep))).To(BeTrue())
		Expect(containsAll(PermissionsForRole(RoleAdmin), PermissionsForRole(RoleManager))).To(BeTrue())
		Expect(containsAll(PermissionsForRole(RoleSuperAdmin), PermissionsForRole(RoleAdmin))).To(BeTrue())
	})

	It("gives super_admin the full permission universe", func() {
		Expect(PermissionsForRole(RoleSuperAdmin)).To(ConsistOf(AllPermissions()))
	})

	It("excludes company and user management from shippers", func() {
		shipper := PermissionsForRole(RoleShipper)
		for _, denied := range []Permission{
			PermViewCompanies, PermCreateCompanies, PermEditCompanies, PermDeleteCompanies,
			PermViewUsers, PermCreateUsers, PermEditUsers, PermDeleteUsers,
		} {
			Expect(shipper).NotTo(ContainElement(denied))
		}
	})

	It("returns copies that callers cannot mutate", func() {
		perms := PermissionsForRole(RoleShipper)
		perms[0] = Permission("tampered")
		Expect(PermissionsForRole(RoleShipper)[0]).NotTo(Equal(Permission("tampered")))
	})

	It("returns an empty set for unknown roles", func() {
		Expect(PermissionsForRole(Role("dispatcher"))).To(BeEmpty())
	})
})

var _ = Describe("NormalizeLegacyRole", func() {
	var logger *slog.Logger

	BeforeEach(func() {
		logger = slog.Default()
	})

	It("passes canonical roles through unchanged", func() {
		Expect(NormalizeLegacyRole("shipper", logger)).To(Equal(RoleShipper))
		Expect(NormalizeLegacyRole("manager", logger)).To(Equal(RoleManager))
		Expect(NormalizeLegacyRole("support", logger)).To(Equal(RoleSupport))
	})

	It("maps legacy aliases to canonical roles", func() {
		Expect(NormalizeLegacyRole("broker", logger)).To(Equal(RoleSalesRep))
		Expect(NormalizeLegacyRole("superadmin", logger)).To(Equal(RoleSuperAdmin))
		Expect(NormalizeLegacyRole("administrator", logger)).To(Equal(RoleAdmin))
	})

	It("ignores case and surrounding whitespace", func() {
		Expect(NormalizeLegacyRole("  Broker ", logger)).To(Equal(RoleSalesRep))
		Expect(NormalizeLegacyRole("SUPER_ADMIN", logger)).To(Equal(RoleSuperAdmin))
	})

	It("defaults unrecognized strings to sales_rep without panicking", func() {
		Expect(NormalizeLegacyRole("wizard", logger)).To(Equal(RoleSalesRep))
		Expect(NormalizeLegacyRole("", logger)).To(Equal(RoleSalesRep))
		Expect(NormalizeLegacyRole("garbage", nil)).To(Equal(RoleSalesRep))
	})
})
