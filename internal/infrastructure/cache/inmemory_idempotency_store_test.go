package cache

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// steppingClock is a clock tests move forward by hand
type steppingClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *steppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *steppingClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestInMemoryIdempotencyStore_MarkProcessed(t *testing.T) {
	clock := &steppingClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	store := NewInMemoryIdempotencyStore(time.Hour, WithClock(clock))
	defer store.Close()
	ctx := context.Background()

	isNew, err := store.MarkProcessed(ctx, "key-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, isNew)

	isNew, err = store.MarkProcessed(ctx, "key-1", time.Minute)
	require.NoError(t, err)
	assert.False(t, isNew, "a live key is a duplicate")

	processed, err := store.IsProcessed(ctx, "key-1")
	require.NoError(t, err)
	assert.True(t, processed)

	clock.Advance(time.Minute)

	processed, err = store.IsProcessed(ctx, "key-1")
	require.NoError(t, err)
	assert.False(t, processed, "expired keys are forgotten")

	isNew, err = store.MarkProcessed(ctx, "key-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, isNew, "an expired key can be reused")
}

func TestInMemoryIdempotencyStore_Cleanup(t *testing.T) {
	clock := &steppingClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	store := NewInMemoryIdempotencyStore(time.Hour, WithClock(clock))
	defer store.Close()
	ctx := context.Background()

	_, _ = store.MarkProcessed(ctx, "short", time.Second)
	_, _ = store.MarkProcessed(ctx, "long", time.Hour)
	require.Equal(t, 2, store.Size())

	clock.Advance(time.Minute)
	store.cleanup()
	assert.Equal(t, 1, store.Size())
}

func TestInMemoryIdempotencyStore_ConcurrentDuplicates(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Hour)
	defer store.Close()

	var winners atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := store.MarkProcessed(context.Background(), "same", time.Hour); ok {
				winners.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), winners.Load())
}

func TestInMemoryIdempotencyStore_Release(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Hour)
	defer store.Close()
	ctx := context.Background()

	_, _ = store.MarkProcessed(ctx, "key-1", time.Hour)
	require.NoError(t, store.Release(ctx, "key-1"))
	require.NoError(t, store.Release(ctx, "never-set"))

	isNew, err := store.MarkProcessed(ctx, "key-1", time.Hour)
	require.NoError(t, err)
	assert.True(t, isNew, "a released key can be claimed again")
}

func TestInMemoryIdempotencyStore_CloseTwice(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Hour)
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
	assert.NoError(t, store.Ping(context.Background()))
}

func TestNewIdempotencyStore(t *testing.T) {
	t.Run("no url uses memory", func(t *testing.T) {
		store := NewIdempotencyStore(context.Background(), config.RedisConfig{}, zap.NewNop())
		defer store.Close()
		assert.IsType(t, &InMemoryIdempotencyStore{}, store)
	})

	t.Run("bad url falls back to memory", func(t *testing.T) {
		store := NewIdempotencyStore(context.Background(), config.RedisConfig{URL: "not-a-url"}, zap.NewNop())
		defer store.Close()
		assert.IsType(t, &InMemoryIdempotencyStore{}, store)
	})
}

func ExampleInMemoryIdempotencyStore() {
	store := NewInMemoryIdempotencyStore(time.Minute, WithClock(shared.FixedClock(time.Unix(0, 0))))
	defer store.Close()

	first, _ := store.MarkProcessed(context.Background(), "create-property-7f3a", time.Hour)
	second, _ := store.MarkProcessed(context.Background(), "create-property-7f3a", time.Hour)
	fmt.Println(first, second)
	// Output: true false
}
