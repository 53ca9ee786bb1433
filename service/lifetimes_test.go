package services

import (
	"context"
	"testing"
	"time"

	"covid-dashboard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifetimes_MountCancelsPrevious(t *testing.T) {
	l := NewLifetimes()

	firstCtx, first := l.Mount(context.Background(), "s", models.PageOverview)
	_, second := l.Mount(context.Background(), "s", models.PageTimeline)

	assert.ErrorIs(t, firstCtx.Err(), context.Canceled)
	assert.False(t, l.Alive(first))
	assert.True(t, l.Alive(second))
	page, ok := l.Current("s")
	require.True(t, ok)
	assert.Equal(t, models.PageTimeline, page)
}

func TestLifetimes_SessionsAreIndependent(t *testing.T) {
	l := NewLifetimes()

	ctxA, a := l.Mount(context.Background(), "a", models.PageOverview)
	_, b := l.Mount(context.Background(), "b", models.PageOverview)

	assert.NoError(t, ctxA.Err())
	assert.True(t, l.Alive(a))
	assert.True(t, l.Alive(b))
}

func TestLifetimes_UnmountCancels(t *testing.T) {
	l := NewLifetimes()
	ctx, lease := l.Mount(context.Background(), "s", models.PageLocation)

	page, ok := l.Unmount("s")

	require.True(t, ok)
	assert.Equal(t, models.PageLocation, page)
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.False(t, l.Alive(lease))
	_, ok = l.Unmount("s")
	assert.False(t, ok)
}

func TestLifetimes_ReleaseKeepsPageMounted(t *testing.T) {
	l := NewLifetimes()
	_, lease := l.Mount(context.Background(), "s", models.PageLocation)

	l.Release(lease)

	assert.True(t, l.Alive(lease))
	assert.True(t, l.Touch(lease))
}

func TestLifetimes_AdoptReusesCurrentLifetime(t *testing.T) {
	l := NewLifetimes()
	_, lease := l.Mount(context.Background(), "s", models.PageOverview)

	adopted := l.Adopt("s", models.PageOverview)
	assert.Equal(t, lease, adopted)

	other := l.Adopt("s", models.PageTimeline)
	assert.False(t, l.Alive(lease))
	assert.True(t, l.Alive(other))
}

func TestLifetimes_Sweep(t *testing.T) {
	l := NewLifetimes()
	now := time.Date(2021, 7, 15, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	idle := l.Adopt("idle", models.PageOverview)
	_, loading := l.Mount(context.Background(), "loading", models.PageTimeline)
	now = now.Add(time.Hour)
	active := l.Adopt("active", models.PageLocation)

	sweeper := NewPageLifetimesSweeperService(l, 30*time.Minute)
	removed := sweeper.SweepIdleMounts()

	assert.Equal(t, 1, removed)
	assert.False(t, l.Alive(idle))
	assert.True(t, l.Alive(loading), "in-flight loads are never swept")
	assert.True(t, l.Alive(active))
}
