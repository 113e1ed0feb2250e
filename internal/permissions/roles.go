package permissions

// Role is a named bundle of permissions assigned to an administrative
// account. The enumeration is fixed; role strings arrive verbatim from the
// session layer and anything outside this set simply resolves to an empty
// permission set.
type Role string

const (
	RoleSuperAdmin     Role = "SUPER_ADMIN"
	RoleSystemAdmin    Role = "SYSTEM_ADMIN"
	RolePlatformAdmin  Role = "PLATFORM_ADMIN"
	RoleContentAdmin   Role = "CONTENT_ADMIN"
	RoleFinanceAdmin   Role = "FINANCE_ADMIN"
	RoleSupportAdmin   Role = "SUPPORT_ADMIN"
	RoleMarketingAdmin Role = "MARKETING_ADMIN"
	RoleAnalyticsAdmin Role = "ANALYTICS_ADMIN"
	RoleSecurityAdmin  Role = "SECURITY_ADMIN"
	RoleModerator      Role = "MODERATOR"
)

// AllRoles lists the fixed role enumeration.
var AllRoles = []Role{
	RoleSuperAdmin,
	RoleSystemAdmin,
	RolePlatformAdmin,
	RoleContentAdmin,
	RoleFinanceAdmin,
	RoleSupportAdmin,
	RoleMarketingAdmin,
	RoleAnalyticsAdmin,
	RoleSecurityAdmin,
	RoleModerator,
}

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

// rolePermissions assembles each role's grant from capability bundles.
// SUPER_ADMIN gets the whole universe; MODERATOR gets a hand-picked set
// rather than whole bundles.
func rolePermissions() map[Role][]Permission {
	return map[Role][]Permission{
		RoleSuperAdmin: Universe(),
		RoleSystemAdmin: union(
			Groups[GroupSystemManagement],
			Groups[GroupSecurity],
			Groups[GroupDatabaseManagement],
			Groups[GroupPerformanceMonitoring],
			Groups[GroupDevelopment],
		),
		RolePlatformAdmin: union(
			Groups[GroupUserManagement],
			Groups[GroupProductManagement],
			Groups[GroupOrderManagement],
			Groups[GroupContentManagement],
			Groups[GroupAnalyticsReports],
			Groups[GroupFinancialManagement],
			Groups[GroupMarketing],
			Groups[GroupSupport],
			Groups[GroupSiteDesign],
		),
		RoleContentAdmin: union(
			Groups[GroupContentManagement],
			Groups[GroupSiteDesign],
			Groups[GroupFileManagement],
			Groups[GroupCommunication],
		),
		RoleFinanceAdmin: union(
			Groups[GroupFinancialManagement],
			Groups[GroupAnalyticsReports],
			Groups[GroupOrderManagement],
		),
		RoleSupportAdmin: union(
			Groups[GroupSupport],
			Groups[GroupCommunication],
			Groups[GroupQualityControl],
		),
		RoleMarketingAdmin: union(
			Groups[GroupMarketing],
			Groups[GroupAnalyticsReports],
			Groups[GroupContentManagement],
		),
		RoleAnalyticsAdmin: union(
			Groups[GroupAnalyticsReports],
			Groups[GroupPerformanceMonitoring],
		),
		RoleSecurityAdmin: union(
			Groups[GroupSecurity],
			Groups[GroupSystemManagement],
			Groups[GroupPerformanceMonitoring],
		),
		RoleModerator: {
			ManageUsers,
			ManageProducts,
			ManageOrders,
			ManageContent,
			ManageSupport,
		},
	}
}

func union(sets ...[]Permission) []Permission {
	seen := make(map[Permission]struct{})
	var out []Permission
	for _, set := range sets {
		for _, p := range set {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}
