package asset_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/assetdesk/assetdesk/internal/activity"
	"github.com/assetdesk/assetdesk/internal/asset"
	"github.com/assetdesk/assetdesk/internal/rbac"
	"github.com/assetdesk/assetdesk/internal/shared"
	_ "github.com/assetdesk/assetdesk/testing"
)

type memoryAssetRepo struct {
	assets map[string]asset.Asset
	order  []string
}

func newMemoryAssetRepo() *memoryAssetRepo {
	return &memoryAssetRepo{assets: make(map[string]asset.Asset)}
}

func (r *memoryAssetRepo) List(ctx context.Context) ([]asset.Asset, error) {
	out := make([]asset.Asset, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.assets[id])
	}
	return out, nil
}

func (r *memoryAssetRepo) Get(ctx context.Context, id string) (*asset.Asset, error) {
	a, ok := r.assets[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &a, nil
}

func (r *memoryAssetRepo) Upsert(ctx context.Context, a asset.Asset) error {
	if _, ok := r.assets[a.ID]; !ok {
		r.order = append(r.order, a.ID)
	}
	r.assets[a.ID] = a
	return nil
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

type stubEncoder struct {
	lastPayload string
}

func (e *stubEncoder) Encode(payload string) ([]byte, error) {
	e.lastPayload = payload
	return []byte("png"), nil
}

func executive() shared.Principal {
	return shared.Principal{Username: "admin", Role: rbac.RoleExecutive}
}

func TestUpsertInsertThenFullReplace(t *testing.T) {
	repo := newMemoryAssetRepo()
	log := &memoryRecorder{}
	cache := &countingInvalidator{}
	svc := asset.NewService(repo, log, cache, nil)

	first := asset.UpsertInput{
		ID:              "A001",
		Name:            "Drill Press",
		Location:        "Plant 2",
		Status:          "Active",
		NextMaintenance: datePtr(2025, 7, 10),
		Cost:            1500,
	}
	created, err := svc.Upsert(context.Background(), executive(), first)
	require.NoError(t, err)
	require.Equal(t, asset.StatusActive, created.Status)

	// Resubmitting the same id replaces every column; omitted dates become nil.
	second := asset.UpsertInput{
		ID:     "A001",
		Name:   "Drill Press Mk2",
		Status: "Retired",
		Cost:   900,
	}
	replaced, err := svc.Upsert(context.Background(), executive(), second)
	require.NoError(t, err)

	stored, err := repo.Get(context.Background(), "A001")
	require.NoError(t, err)
	require.Equal(t, *replaced, *stored)
	require.Equal(t, "Drill Press Mk2", stored.Name)
	require.Empty(t, stored.Location)
	require.Nil(t, stored.NextMaintenance)
	require.Equal(t, 900.0, stored.Cost)

	require.Len(t, log.records, 2)
	for _, rec := range log.records {
		require.Equal(t, activity.ActionAddedUpdated, rec.action)
		require.Equal(t, "admin", rec.username)
	}
	require.Equal(t, 2, cache.bumps)
}

func TestUpsertRequiresManageAssets(t *testing.T) {
	svc := asset.NewService(newMemoryAssetRepo(), &memoryRecorder{}, nil, nil)

	_, err := svc.Upsert(context.Background(), shared.Principal{Username: "user", Role: rbac.RoleUser}, asset.UpsertInput{
		ID:     "A001",
		Status: "Active",
	})
	require.ErrorIs(t, err, shared.ErrPermissionDenied)
}

func TestUpsertValidation(t *testing.T) {
	log := &memoryRecorder{}
	svc := asset.NewService(newMemoryAssetRepo(), log, nil, nil)

	_, err := svc.Upsert(context.Background(), executive(), asset.UpsertInput{Status: "Active"})
	require.True(t, shared.IsValidation(err))

	_, err = svc.Upsert(context.Background(), executive(), asset.UpsertInput{ID: "A001", Status: "Active", Cost: -1})
	require.True(t, shared.IsValidation(err))

	_, err = svc.Upsert(context.Background(), executive(), asset.UpsertInput{ID: "A001", Status: "Broken"})
	require.True(t, shared.IsValidation(err))

	require.Empty(t, log.records)
}

func TestUpsertNormalizesDecoratedStatus(t *testing.T) {
	repo := newMemoryAssetRepo()
	svc := asset.NewService(repo, &memoryRecorder{}, nil, nil)

	_, err := svc.Upsert(context.Background(), executive(), asset.UpsertInput{
		ID:     "A001",
		Status: "Maintenance \U0001F527",
	})
	require.NoError(t, err)

	stored, err := repo.Get(context.Background(), "A001")
	require.NoError(t, err)
	require.Equal(t, asset.StatusMaintenance, stored.Status)
}

func TestIdentifierReturnsPayloadAndImage(t *testing.T) {
	repo := newMemoryAssetRepo()
	log := &memoryRecorder{}
	enc := &stubEncoder{}
	svc := asset.NewService(repo, log, nil, enc)

	require.NoError(t, repo.Upsert(context.Background(), asset.Asset{
		ID: "A001", Name: "Drill Press", Location: "Plant 2", Status: asset.StatusActive, Cost: 1500,
	}))

	principal := shared.Principal{Username: "ops", Role: rbac.RoleOperations}
	payload, image, err := svc.Identifier(context.Background(), principal, "A001")
	require.NoError(t, err)
	require.Equal(t, []byte("png"), image)
	require.Equal(t, payload, enc.lastPayload)
	require.Contains(t, payload, "Asset ID: A001")
	require.Contains(t, payload, "Cost: ₹1500.00")

	require.Len(t, log.records, 1)
	require.Equal(t, activity.ActionTracked, log.records[0].action)
	require.Equal(t, "ops", log.records[0].username)
}

func TestIdentifierUnknownAsset(t *testing.T) {
	svc := asset.NewService(newMemoryAssetRepo(), &memoryRecorder{}, nil, &stubEncoder{})

	_, _, err := svc.Identifier(context.Background(), executive(), "A404")
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestIdentifierRequiresTrackAssets(t *testing.T) {
	svc := asset.NewService(newMemoryAssetRepo(), &memoryRecorder{}, nil, &stubEncoder{})

	_, _, err := svc.Identifier(context.Background(), shared.Principal{Username: "finance", Role: rbac.RoleFinance}, "A001")
	require.ErrorIs(t, err, shared.ErrPermissionDenied)
}
