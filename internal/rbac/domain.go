package rbac

// Capability is a named permission token granting a session the right to
// invoke certain operations.
type Capability string

const (
	CapViewAll            Capability = "view_all"
	CapAnalytics          Capability = "analytics"
	CapManageAssets       Capability = "manage_assets"
	CapViewLogs           Capability = "view_logs"
	CapTrackAssets        Capability = "track_assets"
	CapViewCosts          Capability = "view_costs"
	CapRequestMaintenance Capability = "request_maintenance"
	CapViewAssets         Capability = "view_assets"
)

// View names one tab of the external presentation surface.
type View string

const (
	ViewAssets      View = "assets"
	ViewTrack       View = "track"
	ViewAnalytics   View = "analytics"
	ViewCosts       View = "costs"
	ViewLogs        View = "logs"
	ViewMaintenance View = "maintenance"
)

// Role names a bundle of capabilities assigned to a user at creation.
const (
	RoleExecutive  = "Executive"
	RoleFinance    = "Finance"
	RoleOperations = "Operations"
	RoleUser       = "User"
)
