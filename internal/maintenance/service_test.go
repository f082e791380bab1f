package maintenance_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/assetdesk/assetdesk/internal/asset"
	"github.com/assetdesk/assetdesk/internal/maintenance"
	"github.com/assetdesk/assetdesk/internal/rbac"
	"github.com/assetdesk/assetdesk/internal/shared"
	_ "github.com/assetdesk/assetdesk/testing"
)

type memoryAssetStore struct {
	assets []asset.Asset
}

func (s *memoryAssetStore) List(ctx context.Context) ([]asset.Asset, error) {
	return append([]asset.Asset(nil), s.assets...), nil
}

func (s *memoryAssetStore) SetStatus(ctx context.Context, id string, status asset.Status) (int64, error) {
	for i := range s.assets {
		if s.assets[i].ID == id {
			s.assets[i].Status = status
			return 1, nil
		}
	}
	return 0, nil
}

type recordedLog struct {
	assetID  string
	action   string
	username string
}

type memoryRecorder struct {
	records []recordedLog
}

func (r *memoryRecorder) Append(ctx context.Context, assetID, action, username string) error {
	r.records = append(r.records, recordedLog{assetID: assetID, action: action, username: username})
	return nil
}

type countingInvalidator struct {
	bumps int
}

func (c *countingInvalidator) Bump(ctx context.Context) error {
	c.bumps++
	return nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayPtr(y int, m time.Month, d int) *time.Time {
	t := day(y, m, d)
	return &t
}

func newMaintService(store *memoryAssetStore, log *memoryRecorder, cache maintenance.Invalidator) *maintenance.Service {
	return maintenance.NewService(store, store, log, cache, maintenance.Config{})
}

func TestDueSoonWindowBoundaries(t *testing.T) {
	today := day(2025, 6, 1)
	store := &memoryAssetStore{assets: []asset.Asset{
		{ID: "A001", Name: "On boundary", Status: asset.StatusActive, NextMaintenance: dayPtr(2025, 6, 8)},
		{ID: "A002", Name: "Past boundary", Status: asset.StatusActive, NextMaintenance: dayPtr(2025, 6, 9)},
		{ID: "A003", Name: "Already overdue", Status: asset.StatusMaintenance, NextMaintenance: dayPtr(2025, 5, 20)},
		{ID: "A004", Name: "No date", Status: asset.StatusActive},
	}}
	svc := newMaintService(store, &memoryRecorder{}, nil)

	due, err := svc.DueSoon(context.Background(), today)
	require.NoError(t, err)

	ids := make([]string, 0, len(due))
	for _, a := range due {
		ids = append(ids, a.ID)
	}
	// today+7 is included, today+8 is not. Status does not filter the
	// due list, so the asset already in maintenance still appears.
	require.Equal(t, []string{"A001", "A003"}, ids)
}

func TestComputeAlerts(t *testing.T) {
	today := day(2025, 6, 1)
	store := &memoryAssetStore{assets: []asset.Asset{
		// Overdue today, not in maintenance: overdue alert.
		{ID: "A001", Name: "Lathe", Status: asset.StatusActive, NextMaintenance: dayPtr(2025, 6, 1)},
		// Overdue but already in maintenance: suppressed.
		{ID: "A002", Name: "Press", Status: asset.StatusMaintenance, NextMaintenance: dayPtr(2025, 5, 1)},
		// Due in the future: no overdue alert.
		{ID: "A003", Name: "Crane", Status: asset.StatusActive, NextMaintenance: dayPtr(2025, 6, 2)},
		// Warranty on the 30-day boundary: alert.
		{ID: "A004", Name: "Truck", Status: asset.StatusActive, WarrantyExpiry: dayPtr(2025, 7, 1)},
		// Warranty one day past the boundary: no alert.
		{ID: "A005", Name: "Van", Status: asset.StatusActive, WarrantyExpiry: dayPtr(2025, 7, 2)},
	}}
	svc := newMaintService(store, &memoryRecorder{}, nil)

	alerts, err := svc.ComputeAlerts(context.Background(), today)
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	require.Equal(t, maintenance.AlertOverdueMaintenance, alerts[0].Kind)
	require.Equal(t, "A001", alerts[0].AssetID)
	require.Equal(t, maintenance.AlertWarrantyExpiring, alerts[1].Kind)
	require.Equal(t, "A004", alerts[1].AssetID)
}

func TestComputeAlertsBothKindsForOneAsset(t *testing.T) {
	today := day(2025, 6, 1)
	store := &memoryAssetStore{assets: []asset.Asset{
		{ID: "A001", Name: "Lathe", Status: asset.StatusActive,
			NextMaintenance: dayPtr(2025, 5, 15), WarrantyExpiry: dayPtr(2025, 6, 20)},
	}}
	svc := newMaintService(store, &memoryRecorder{}, nil)

	alerts, err := svc.ComputeAlerts(context.Background(), today)
	require.NoError(t, err)
	require.Len(t, alerts, 2)
}

func TestRequestMaintenance(t *testing.T) {
	store := &memoryAssetStore{assets: []asset.Asset{
		{ID: "A001", Name: "Lathe", Status: asset.StatusActive},
	}}
	log := &memoryRecorder{}
	cache := &countingInvalidator{}
	svc := newMaintService(store, log, cache)

	principal := shared.Principal{Username: "user", Role: rbac.RoleUser}
	require.NoError(t, svc.RequestMaintenance(context.Background(), principal, "A001"))

	require.Equal(t, asset.StatusMaintenance, store.assets[0].Status)
	require.Len(t, log.records, 1)
	require.Equal(t, "A001", log.records[0].assetID)
	require.Equal(t, "user", log.records[0].username)
	require.Equal(t, 1, cache.bumps)
}

func TestRequestMaintenanceWithoutInvalidator(t *testing.T) {
	store := &memoryAssetStore{assets: []asset.Asset{
		{ID: "A001", Name: "Lathe", Status: asset.StatusActive},
	}}
	svc := newMaintService(store, &memoryRecorder{}, nil)

	principal := shared.Principal{Username: "user", Role: rbac.RoleUser}
	require.NoError(t, svc.RequestMaintenance(context.Background(), principal, "A001"))
	require.Equal(t, asset.StatusMaintenance, store.assets[0].Status)
}

func TestRequestMaintenanceUnknownIDIsNoOp(t *testing.T) {
	store := &memoryAssetStore{}
	log := &memoryRecorder{}
	svc := newMaintService(store, log, nil)

	principal := shared.Principal{Username: "ops", Role: rbac.RoleOperations}
	require.NoError(t, svc.RequestMaintenance(context.Background(), principal, "A404"))
	// The request is recorded even when no row changed.
	require.Len(t, log.records, 1)
}

func TestRequestMaintenancePermission(t *testing.T) {
	store := &memoryAssetStore{assets: []asset.Asset{{ID: "A001", Status: asset.StatusActive}}}
	svc := newMaintService(store, &memoryRecorder{}, nil)

	err := svc.RequestMaintenance(context.Background(), shared.Principal{Username: "x", Role: "Contractor"}, "A001")
	require.ErrorIs(t, err, shared.ErrPermissionDenied)
	require.Equal(t, asset.StatusActive, store.assets[0].Status)
}
