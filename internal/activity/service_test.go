package activity_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/assetdesk/assetdesk/internal/activity"
	_ "github.com/assetdesk/assetdesk/testing"
)

type memoryLogRepo struct {
	entries []activity.Entry
	nextID  int64
}

func (r *memoryLogRepo) Insert(ctx context.Context, assetID, action, username, loggedAt string) (int64, error) {
	r.nextID++
	r.entries = append(r.entries, activity.Entry{
		LogID:    r.nextID,
		AssetID:  assetID,
		Action:   action,
		Username: username,
		LoggedAt: loggedAt,
	})
	return r.nextID, nil
}

func (r *memoryLogRepo) List(ctx context.Context) ([]activity.Entry, error) {
	return append([]activity.Entry(nil), r.entries...), nil
}

func TestAppendFormatsTimestamp(t *testing.T) {
	repo := &memoryLogRepo{}
	fixed := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	svc := activity.NewService(repo, func() time.Time { return fixed })

	require.NoError(t, svc.Append(context.Background(), "A001", activity.ActionTracked, "ops"))

	entries, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "2025-03-14 09:26:53", entries[0].LoggedAt)
	require.Equal(t, "A001", entries[0].AssetID)
	require.Equal(t, activity.ActionTracked, entries[0].Action)
	require.Equal(t, "ops", entries[0].Username)
}

func TestAppendAssignsMonotonicIDs(t *testing.T) {
	repo := &memoryLogRepo{}
	svc := activity.NewService(repo, nil)

	require.NoError(t, svc.Append(context.Background(), "A001", activity.ActionAddedUpdated, "admin"))
	require.NoError(t, svc.Append(context.Background(), "A002", activity.ActionAddedUpdated, "admin"))
	require.NoError(t, svc.Append(context.Background(), "A001", activity.ActionMaintenanceRequested, "user"))

	entries, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for i := 1; i < len(entries); i++ {
		require.Greater(t, entries[i].LogID, entries[i-1].LogID)
	}
}
