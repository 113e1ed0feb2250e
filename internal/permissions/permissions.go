package permissions

// Permission is a single named administrative capability. The set below is
// closed: the platform ships with exactly these capabilities and changing
// them means redeploying, not migrating data.
type Permission string

const (
	// User management
	ManageUsers     Permission = "manage_users"
	ManageSellers   Permission = "manage_sellers"
	ManageCouriers  Permission = "manage_couriers"
	ManageCustomers Permission = "manage_customers"
	ManageAdmins    Permission = "manage_admins"

	// Product management
	ManageProducts   Permission = "manage_products"
	ManageCategories Permission = "manage_categories"
	ManageInventory  Permission = "manage_inventory"
	ManagePricing    Permission = "manage_pricing"

	// Order management
	ManageOrders   Permission = "manage_orders"
	ManageRefunds  Permission = "manage_refunds"
	ManageShipping Permission = "manage_shipping"
	ManagePayments Permission = "manage_payments"

	// Content management
	ManageContent Permission = "manage_content"
	ManageBanners Permission = "manage_banners"
	ManagePages   Permission = "manage_pages"
	ManageBlog    Permission = "manage_blog"
	ManageNews    Permission = "manage_news"

	// System management
	ManageSettings      Permission = "manage_settings"
	ManageEmails        Permission = "manage_emails"
	ManageNotifications Permission = "manage_notifications"
	ManageLogs          Permission = "manage_logs"
	ManageBackups       Permission = "manage_backups"

	// Analytics and reports
	ViewAnalytics Permission = "view_analytics"
	ViewReports   Permission = "view_reports"
	ExportData    Permission = "export_data"
	ViewLogs      Permission = "view_logs"

	// Security
	ManageSecurity    Permission = "manage_security"
	ManageRoles       Permission = "manage_roles"
	ManagePermissions Permission = "manage_permissions"
	ViewAuditLogs     Permission = "view_audit_logs"

	// Financial management
	ManageFinances    Permission = "manage_finances"
	ManageCommissions Permission = "manage_commissions"
	ManageTaxes       Permission = "manage_taxes"
	ManagePayouts     Permission = "manage_payouts"

	// Marketing
	ManageMarketing      Permission = "manage_marketing"
	ManageCoupons        Permission = "manage_coupons"
	ManagePromotions     Permission = "manage_promotions"
	ManageEmailCampaigns Permission = "manage_email_campaigns"

	// Support
	ManageSupport Permission = "manage_support"
	ManageTickets Permission = "manage_tickets"
	ManageChat    Permission = "manage_chat"
	ManageFAQ     Permission = "manage_faq"

	// Advanced features
	ManageIntegrations Permission = "manage_integrations"
	ManageAPI          Permission = "manage_api"
	ManageWebhooks     Permission = "manage_webhooks"
	ManageCronJobs     Permission = "manage_cron_jobs"

	// Site design
	ManageTheme      Permission = "manage_theme"
	ManageLayout     Permission = "manage_layout"
	ManageNavigation Permission = "manage_navigation"
	ManageFooter     Permission = "manage_footer"
	ManageHeader     Permission = "manage_header"

	// Database management
	ManageDatabase   Permission = "manage_database"
	ManageMigrations Permission = "manage_migrations"
	ManageSeeds      Permission = "manage_seeds"
	ManageIndexes    Permission = "manage_indexes"

	// File management
	ManageFiles     Permission = "manage_files"
	ManageImages    Permission = "manage_images"
	ManageDocuments Permission = "manage_documents"
	ManageMedia     Permission = "manage_media"

	// Communication
	ManageMessages      Permission = "manage_messages"
	ManageAnnouncements Permission = "manage_announcements"
	ManageFeedback      Permission = "manage_feedback"
	ManageReviews       Permission = "manage_reviews"

	// Location management
	ManageLocations     Permission = "manage_locations"
	ManageZones         Permission = "manage_zones"
	ManageDeliveryAreas Permission = "manage_delivery_areas"
	ManageWarehouses    Permission = "manage_warehouses"

	// Quality control
	ManageQuality     Permission = "manage_quality"
	ManageInspections Permission = "manage_inspections"
	ManageComplaints  Permission = "manage_complaints"
	ManageDisputes    Permission = "manage_disputes"

	// Legal and compliance
	ManageLegal   Permission = "manage_legal"
	ManageTerms   Permission = "manage_terms"
	ManagePrivacy Permission = "manage_privacy"
	ManageCookies Permission = "manage_cookies"

	// Performance and monitoring
	ManagePerformance Permission = "manage_performance"
	ManageCache       Permission = "manage_cache"
	ManageCDN         Permission = "manage_cdn"
	ManageMonitoring  Permission = "manage_monitoring"

	// Development
	ManageDevelopment Permission = "manage_development"
	ManageFeatures    Permission = "manage_features"
	ManageExperiments Permission = "manage_experiments"
	ManageBeta        Permission = "manage_beta"

	// Top-level access markers
	SuperAdminAccess   Permission = "super_admin"
	SystemAdminAccess  Permission = "system_admin"
	PlatformAdminAccess Permission = "platform_admin"
)

// Group names. Groups exist for documentation and display only; at runtime
// they are just unioned into the role table.
const (
	GroupUserManagement        = "USER_MANAGEMENT"
	GroupProductManagement     = "PRODUCT_MANAGEMENT"
	GroupOrderManagement       = "ORDER_MANAGEMENT"
	GroupContentManagement     = "CONTENT_MANAGEMENT"
	GroupSystemManagement      = "SYSTEM_MANAGEMENT"
	GroupAnalyticsReports      = "ANALYTICS_REPORTS"
	GroupSecurity              = "SECURITY"
	GroupFinancialManagement   = "FINANCIAL_MANAGEMENT"
	GroupMarketing             = "MARKETING"
	GroupSupport               = "SUPPORT"
	GroupAdvancedFeatures      = "ADVANCED_FEATURES"
	GroupSiteDesign            = "SITE_DESIGN"
	GroupDatabaseManagement    = "DATABASE_MANAGEMENT"
	GroupFileManagement        = "FILE_MANAGEMENT"
	GroupCommunication         = "COMMUNICATION"
	GroupLocationManagement    = "LOCATION_MANAGEMENT"
	GroupQualityControl        = "QUALITY_CONTROL"
	GroupLegalCompliance       = "LEGAL_COMPLIANCE"
	GroupPerformanceMonitoring = "PERFORMANCE_MONITORING"
	GroupDevelopment           = "DEVELOPMENT"
	GroupSuperAdmin            = "SUPER_ADMIN"
)

// Groups maps every capability bundle to its member permissions.
var Groups = map[string][]Permission{
	GroupUserManagement:    {ManageUsers, ManageSellers, ManageCouriers, ManageCustomers, ManageAdmins},
	GroupProductManagement: {ManageProducts, ManageCategories, ManageInventory, ManagePricing},
	GroupOrderManagement:   {ManageOrders, ManageRefunds, ManageShipping, ManagePayments},
	GroupContentManagement: {ManageContent, ManageBanners, ManagePages, ManageBlog, ManageNews},
	GroupSystemManagement:  {ManageSettings, ManageEmails, ManageNotifications, ManageLogs, ManageBackups},
	GroupAnalyticsReports:  {ViewAnalytics, ViewReports, ExportData, ViewLogs},
	GroupSecurity:          {ManageSecurity, ManageRoles, ManagePermissions, ViewAuditLogs},
	GroupFinancialManagement: {ManageFinances, ManageCommissions, ManageTaxes, ManagePayouts},
	GroupMarketing:           {ManageMarketing, ManageCoupons, ManagePromotions, ManageEmailCampaigns},
	GroupSupport:             {ManageSupport, ManageTickets, ManageChat, ManageFAQ},
	GroupAdvancedFeatures:    {ManageIntegrations, ManageAPI, ManageWebhooks, ManageCronJobs},
	GroupSiteDesign:          {ManageTheme, ManageLayout, ManageNavigation, ManageFooter, ManageHeader},
	GroupDatabaseManagement:  {ManageDatabase, ManageMigrations, ManageSeeds, ManageIndexes},
	GroupFileManagement:      {ManageFiles, ManageImages, ManageDocuments, ManageMedia},
	GroupCommunication:       {ManageMessages, ManageAnnouncements, ManageFeedback, ManageReviews},
	GroupLocationManagement:  {ManageLocations, ManageZones, ManageDeliveryAreas, ManageWarehouses},
	GroupQualityControl:      {ManageQuality, ManageInspections, ManageComplaints, ManageDisputes},
	GroupLegalCompliance:     {ManageLegal, ManageTerms, ManagePrivacy, ManageCookies},
	GroupPerformanceMonitoring: {ManagePerformance, ManageCache, ManageCDN, ManageMonitoring},
	GroupDevelopment:           {ManageDevelopment, ManageFeatures, ManageExperiments, ManageBeta},
	GroupSuperAdmin:            {SuperAdminAccess, SystemAdminAccess, PlatformAdminAccess},
}

// groupOrder keeps group listings deterministic.
var groupOrder = []string{
	GroupUserManagement,
	GroupProductManagement,
	GroupOrderManagement,
	GroupContentManagement,
	GroupSystemManagement,
	GroupAnalyticsReports,
	GroupSecurity,
	GroupFinancialManagement,
	GroupMarketing,
	GroupSupport,
	GroupAdvancedFeatures,
	GroupSiteDesign,
	GroupDatabaseManagement,
	GroupFileManagement,
	GroupCommunication,
	GroupLocationManagement,
	GroupQualityControl,
	GroupLegalCompliance,
	GroupPerformanceMonitoring,
	GroupDevelopment,
	GroupSuperAdmin,
}

// Universe returns every permission in the closed set, in group order.
func Universe() []Permission {
	seen := make(map[Permission]struct{})
	var all []Permission
	for _, group := range groupOrder {
		for _, p := range Groups[group] {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			all = append(all, p)
		}
	}
	return all
}
