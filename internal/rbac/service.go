package rbac

// The role to capability mapping is static process-wide configuration. It is
// never persisted; a session's capabilities are recomputed from its role on
// every check.
var rolePermissions = map[string][]Capability{
	RoleExecutive: {
		CapViewAll, CapAnalytics, CapManageAssets, CapViewLogs,
		CapTrackAssets, CapViewCosts, CapRequestMaintenance,
	},
	RoleFinance:    {CapManageAssets, CapViewCosts, CapRequestMaintenance},
	RoleOperations: {CapManageAssets, CapTrackAssets, CapRequestMaintenance},
	RoleUser:       {CapViewAssets, CapRequestMaintenance},
}

// viewOrder fixes the presentation order of tabs; a filtered result keeps
// this relative ordering.
var viewOrder = []struct {
	View     View
	Required Capability
}{
	{ViewAssets, CapViewAssets},
	{ViewTrack, CapTrackAssets},
	{ViewAnalytics, CapAnalytics},
	{ViewCosts, CapViewCosts},
	{ViewLogs, CapViewLogs},
	{ViewMaintenance, CapRequestMaintenance},
}

// Capabilities returns the capability set for a role. An unknown role yields
// an empty set; roles always originate from Auth, so hitting that path means
// the static table is misconfigured.
func Capabilities(role string) []Capability {
	caps, ok := rolePermissions[role]
	if !ok {
		return nil
	}
	out := make([]Capability, len(caps))
	copy(out, caps)
	return out
}

// Has reports whether the capability set contains cap.
func Has(caps []Capability, cap Capability) bool {
	for _, c := range caps {
		if c == cap {
			return true
		}
	}
	return false
}

// HasAny reports whether the capability set contains at least one of required.
func HasAny(caps []Capability, required ...Capability) bool {
	for _, r := range required {
		if Has(caps, r) {
			return true
		}
	}
	return false
}

// VisibleViews returns the ordered views a capability set may see. A view is
// visible iff its required capability is present or view_all is present. The
// asset view is always first regardless of capabilities, so every
// authenticated session has at least one usable view.
func VisibleViews(caps []Capability) []View {
	views := []View{ViewAssets}
	all := Has(caps, CapViewAll)
	for _, entry := range viewOrder {
		if entry.View == ViewAssets {
			continue
		}
		if all || Has(caps, entry.Required) {
			views = append(views, entry.View)
		}
	}
	return views
}
