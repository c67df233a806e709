package usage

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreZeroFilledWithoutHistory(t *testing.T) {
	store := NewMemoryStore()

	snap, err := store.Resolve(context.Background(), "0xnew")
	require.NoError(t, err)
	assert.Zero(t, snap.Month.Count)
	assert.True(t, snap.Month.VolumeUSD.IsZero())
}

func TestMemoryStoreRollingWindows(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	current := now
	store := NewMemoryStore(WithClock(func() time.Time { return current }))
	ctx := context.Background()

	record := func(agoBack time.Duration, amount int64) {
		current = now.Add(-agoBack)
		require.NoError(t, store.Record(ctx, "0xactor", decimal.NewFromInt(amount)))
	}

	record(20*24*time.Hour, 100) // month only
	record(3*24*time.Hour, 50)   // week and month
	record(5*time.Hour, 25)      // day, week, month
	record(10*time.Minute, 10)   // all windows

	current = now
	snap, err := store.Resolve(ctx, "0xActor") // case-insensitive actor key
	require.NoError(t, err)

	assert.Equal(t, 1, snap.Hour.Count)
	assert.Equal(t, "10", snap.Hour.VolumeUSD.String())
	assert.Equal(t, 2, snap.Day.Count)
	assert.Equal(t, "35", snap.Day.VolumeUSD.String())
	assert.Equal(t, 3, snap.Week.Count)
	assert.Equal(t, "85", snap.Week.VolumeUSD.String())
	assert.Equal(t, 4, snap.Month.Count)
	assert.Equal(t, "185", snap.Month.VolumeUSD.String())
}

func TestMemoryStorePrunesExpiredEntries(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	current := now.Add(-40 * 24 * time.Hour)
	store := NewMemoryStore(WithClock(func() time.Time { return current }))
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, "0xactor", decimal.NewFromInt(500)))

	current = now
	require.NoError(t, store.Record(ctx, "0xactor", decimal.NewFromInt(5)))

	snap, err := store.Resolve(ctx, "0xactor")
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Month.Count)
	assert.Equal(t, "5", snap.Month.VolumeUSD.String())
}

func TestMemoryStoreIsolatesActors(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, "0xalice", decimal.NewFromInt(10)))

	snap, err := store.Resolve(ctx, "0xbob")
	require.NoError(t, err)
	assert.Zero(t, snap.Hour.Count)
}
