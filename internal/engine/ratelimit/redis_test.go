package ratelimit_test

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/rueidis"
	"github.com/threadguard/threadguard/internal/database/types/enum"
	"github.com/threadguard/threadguard/internal/engine/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisStore(t *testing.T) (*ratelimit.RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  []string{mr.Addr()},
		DisableCache: true,
	})
	require.NoError(t, err)
	t.Cleanup(client.Close)

	return ratelimit.NewRedisStore(client, time.Hour), mr
}

func TestRedisStoreIncrement(t *testing.T) {
	t.Parallel()

	store, _ := setupRedisStore(t)
	ctx := t.Context()
	windowStart := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	count, err := store.Increment(ctx, 1, enum.RateActionComment, windowStart)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = store.Increment(ctx, 1, enum.RateActionComment, windowStart)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// Separate keys stay independent
	count, err = store.Increment(ctx, 2, enum.RateActionComment, windowStart)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRedisStoreGet(t *testing.T) {
	t.Parallel()

	store, _ := setupRedisStore(t)
	ctx := t.Context()
	windowStart := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	// Unknown key reads as zero
	count, err := store.Get(ctx, 5, enum.RateActionVote, windowStart)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	_, err = store.Increment(ctx, 5, enum.RateActionVote, windowStart)
	require.NoError(t, err)

	count, err = store.Get(ctx, 5, enum.RateActionVote, windowStart)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRedisStoreExpiry(t *testing.T) {
	t.Parallel()

	store, mr := setupRedisStore(t)
	ctx := t.Context()
	windowStart := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	_, err := store.Increment(ctx, 3, enum.RateActionReport, windowStart)
	require.NoError(t, err)

	// Counters outlive their window by one extra window, then expire
	mr.FastForward(2*time.Hour + time.Second)

	count, err := store.Get(ctx, 3, enum.RateActionReport, windowStart)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
