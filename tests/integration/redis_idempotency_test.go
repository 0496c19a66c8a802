package integration

import (
	"context"
	"testing"
	"time"

	"github.com/propman/backend/internal/infrastructure/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisIdempotencyStore(t *testing.T) {
	url := NewTestRedis(t)
	ctx := context.Background()

	store, err := cache.NewRedisIdempotencyStore(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Ping(ctx))

	seen, err := store.IsProcessed(ctx, "POST /api/v1/properties:abc")
	require.NoError(t, err)
	assert.False(t, seen)

	first, err := store.MarkProcessed(ctx, "POST /api/v1/properties:abc", time.Minute)
	require.NoError(t, err)
	assert.True(t, first)

	second, err := store.MarkProcessed(ctx, "POST /api/v1/properties:abc", time.Minute)
	require.NoError(t, err)
	assert.False(t, second, "a key can only be claimed once")

	seen, err = store.IsProcessed(ctx, "POST /api/v1/properties:abc")
	require.NoError(t, err)
	assert.True(t, seen)

	require.NoError(t, store.Release(ctx, "POST /api/v1/properties:abc"))
	again, err := store.MarkProcessed(ctx, "POST /api/v1/properties:abc", time.Minute)
	require.NoError(t, err)
	assert.True(t, again, "a released key can be claimed again")
}

func TestRedisIdempotencyStore_KeysExpire(t *testing.T) {
	url := NewTestRedis(t)
	ctx := context.Background()

	store, err := cache.NewRedisIdempotencyStore(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	_, err = store.MarkProcessed(ctx, "short-lived", 200*time.Millisecond)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		seen, err := store.IsProcessed(ctx, "short-lived")
		return err == nil && !seen
	}, 5*time.Second, 100*time.Millisecond)
}

func TestRedisIdempotencyStore_BadURL(t *testing.T) {
	_, err := cache.NewRedisIdempotencyStore(context.Background(), "not a url")
	assert.Error(t, err)
}
