package redis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"covid-dashboard/db"
	"covid-dashboard/models"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot(page models.PageName) models.PageSnapshot {
	return models.PageSnapshot{
		Page:   page,
		Status: models.StatusReady,
		State:  models.PageViewState{ActiveTab: "general"},
		Raw:    json.RawMessage(`{"estado":{"RECUPERADO":95.1}}`),
	}
}

func TestRedisPageStateDAO_SaveAndGet(t *testing.T) {
	// Setup
	mockClient := db.NewMockRedisClient()
	dao := NewRedisPageStateDAO(mockClient, time.Minute)
	ctx := context.Background()

	// Act
	err := dao.SaveSnapshot(ctx, "session-1", testSnapshot(models.PageOverview))

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Verify data stored in mock Redis
	storedValue, err := mockClient.Get(ctx, "page_state_v1:session-1:general")
	if err != nil {
		t.Fatalf("Expected data to be stored, got error: %v", err)
	}
	assert.Contains(t, storedValue, `"RECUPERADO":95.1`)

	snap, err := dao.GetSnapshot(ctx, "session-1", models.PageOverview)
	require.NoError(t, err)
	assert.Equal(t, models.StatusReady, snap.Status)
	assert.Equal(t, "general", snap.State.ActiveTab)
	assert.JSONEq(t, `{"estado":{"RECUPERADO":95.1}}`, string(snap.Raw))
}

func TestRedisPageStateDAO_GetMissing(t *testing.T) {
	dao := NewRedisPageStateDAO(db.NewMockRedisClient(), time.Minute)

	_, err := dao.GetSnapshot(context.Background(), "nobody", models.PageTimeline)

	assert.True(t, errors.Is(err, ErrSnapshotNotFound))
}

func TestRedisPageStateDAO_GetCorrupt(t *testing.T) {
	mockClient := db.NewMockRedisClient()
	dao := NewRedisPageStateDAO(mockClient, time.Minute)
	ctx := context.Background()
	require.NoError(t, mockClient.Set(ctx, "page_state_v1:s:tiempo", "{not json", 0))

	_, err := dao.GetSnapshot(ctx, "s", models.PageTimeline)

	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrSnapshotNotFound))
}

func TestRedisPageStateDAO_DeleteOtherSnapshots(t *testing.T) {
	dao := NewRedisPageStateDAO(db.NewMockRedisClient(), time.Minute)
	ctx := context.Background()
	for _, p := range models.Pages {
		require.NoError(t, dao.SaveSnapshot(ctx, "s", testSnapshot(p)))
	}
	require.NoError(t, dao.SaveSnapshot(ctx, "other", testSnapshot(models.PageOverview)))

	require.NoError(t, dao.DeleteOtherSnapshots(ctx, "s", models.PageLocation))

	_, err := dao.GetSnapshot(ctx, "s", models.PageLocation)
	assert.NoError(t, err)
	_, err = dao.GetSnapshot(ctx, "s", models.PageOverview)
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
	_, err = dao.GetSnapshot(ctx, "s", models.PageTimeline)
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
	_, err = dao.GetSnapshot(ctx, "other", models.PageOverview)
	assert.NoError(t, err, "other sessions are untouched")
}

func TestRedisPageStateDAO_DeleteOtherSnapshots_Miniredis(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := db.NewGoRedisClient(context.Background(), goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	require.NoError(t, err)
	dao := NewRedisPageStateDAO(client, time.Minute)
	ctx := context.Background()
	require.NoError(t, dao.SaveSnapshot(ctx, "s", testSnapshot(models.PageOverview)))
	require.NoError(t, dao.SaveSnapshot(ctx, "s", testSnapshot(models.PageTimeline)))
	require.NoError(t, dao.SaveSnapshot(ctx, "other", testSnapshot(models.PageTimeline)))

	require.NoError(t, dao.DeleteOtherSnapshots(ctx, "s", models.PageTimeline))

	assert.Equal(t, []string{"page_state_v1:other:tiempo", "page_state_v1:s:tiempo"}, mr.Keys())
}

func TestRedisPageStateDAO_ExpiresWithMiniredis(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := db.NewGoRedisClient(context.Background(), goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	require.NoError(t, err)
	dao := NewRedisPageStateDAO(client, 30*time.Minute)
	ctx := context.Background()

	require.NoError(t, dao.SaveSnapshot(ctx, "s", testSnapshot(models.PageOverview)))
	assert.Equal(t, 30*time.Minute, mr.TTL("page_state_v1:s:general"))

	mr.FastForward(31 * time.Minute)
	_, err = dao.GetSnapshot(ctx, "s", models.PageOverview)
	assert.ErrorIs(t, err, ErrSnapshotNotFound)

	require.NoError(t, dao.DeleteSnapshot(ctx, "s", models.PageOverview))
}
