package rbac_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/assetdesk/assetdesk/internal/rbac"
	_ "github.com/assetdesk/assetdesk/testing"
)

func TestCapabilitiesPerRole(t *testing.T) {
	cases := []struct {
		role string
		want []rbac.Capability
	}{
		{
			role: rbac.RoleExecutive,
			want: []rbac.Capability{
				rbac.CapViewAll, rbac.CapAnalytics, rbac.CapManageAssets, rbac.CapViewLogs,
				rbac.CapTrackAssets, rbac.CapViewCosts, rbac.CapRequestMaintenance,
			},
		},
		{
			role: rbac.RoleFinance,
			want: []rbac.Capability{rbac.CapManageAssets, rbac.CapViewCosts, rbac.CapRequestMaintenance},
		},
		{
			role: rbac.RoleOperations,
			want: []rbac.Capability{rbac.CapManageAssets, rbac.CapTrackAssets, rbac.CapRequestMaintenance},
		},
		{
			role: rbac.RoleUser,
			want: []rbac.Capability{rbac.CapViewAssets, rbac.CapRequestMaintenance},
		},
	}
	for _, tc := range cases {
		t.Run(tc.role, func(t *testing.T) {
			require.Equal(t, tc.want, rbac.Capabilities(tc.role))
		})
	}
}

func TestCapabilitiesUnknownRole(t *testing.T) {
	require.Empty(t, rbac.Capabilities("Contractor"))
	require.Empty(t, rbac.Capabilities(""))
}

func TestCapabilitiesReturnsCopy(t *testing.T) {
	caps := rbac.Capabilities(rbac.RoleUser)
	caps[0] = rbac.CapViewAll
	require.Equal(t, rbac.CapViewAssets, rbac.Capabilities(rbac.RoleUser)[0])
}

func TestHasAny(t *testing.T) {
	caps := rbac.Capabilities(rbac.RoleFinance)
	require.True(t, rbac.HasAny(caps, rbac.CapViewCosts))
	require.True(t, rbac.HasAny(caps, rbac.CapViewLogs, rbac.CapManageAssets))
	require.False(t, rbac.HasAny(caps, rbac.CapViewLogs, rbac.CapAnalytics))
	require.False(t, rbac.HasAny(nil, rbac.CapViewAssets))
}

func TestVisibleViewsExecutiveSeesEverything(t *testing.T) {
	views := rbac.VisibleViews(rbac.Capabilities(rbac.RoleExecutive))
	require.Equal(t, []rbac.View{
		rbac.ViewAssets, rbac.ViewTrack, rbac.ViewAnalytics,
		rbac.ViewCosts, rbac.ViewLogs, rbac.ViewMaintenance,
	}, views)
}

func TestVisibleViewsFiltered(t *testing.T) {
	views := rbac.VisibleViews(rbac.Capabilities(rbac.RoleFinance))
	require.Equal(t, []rbac.View{rbac.ViewAssets, rbac.ViewCosts, rbac.ViewMaintenance}, views)

	views = rbac.VisibleViews(rbac.Capabilities(rbac.RoleOperations))
	require.Equal(t, []rbac.View{rbac.ViewAssets, rbac.ViewTrack, rbac.ViewMaintenance}, views)
}

func TestVisibleViewsAssetsAlwaysFirst(t *testing.T) {
	// Even an empty capability set keeps the asset view.
	views := rbac.VisibleViews(nil)
	require.Equal(t, []rbac.View{rbac.ViewAssets}, views)

	views = rbac.VisibleViews(rbac.Capabilities(rbac.RoleUser))
	require.Equal(t, rbac.ViewAssets, views[0])
}
