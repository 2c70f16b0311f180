package ratelimiter_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/portfolio/pkg/ratelimiter"
)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var testConfig = ratelimiter.Config{
	Capacity:       3,
	RefillRate:     1,
	RefillInterval: time.Minute,
}

func newRedisStore(t *testing.T, clock *manualClock) *ratelimiter.RedisStore {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return ratelimiter.NewRedisStore(client,
		ratelimiter.WithKeyPrefix("test:"),
		ratelimiter.WithRedisNowFunc(clock.Now),
	)
}

func newMemoryStore(t *testing.T, clock *manualClock) ratelimiter.Store {
	t.Helper()

	store := ratelimiter.NewMemoryStore(
		ratelimiter.WithCleanupInterval(0),
		ratelimiter.WithNowFunc(clock.Now),
	)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

var storeFactories = map[string]func(*testing.T, *manualClock) ratelimiter.Store{
	"memory": newMemoryStore,
	"redis": func(t *testing.T, c *manualClock) ratelimiter.Store {
		return newRedisStore(t, c)
	},
}

func TestBucket_ConsumeAndRefill(t *testing.T) {
	t.Parallel()

	for name, newStore := range storeFactories {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			clock := newManualClock()
			store := newStore(t, clock)

			b, err := ratelimiter.NewBucket(store, testConfig)
			require.NoError(t, err)
			ctx := context.Background()

			for i := 2; i >= 0; i-- {
				res, err := b.Allow(ctx, "1.2.3.4")
				require.NoError(t, err)
				assert.True(t, res.Allowed())
				assert.Equal(t, i, res.Remaining)
				assert.Equal(t, 3, res.Limit)
			}

			res, err := b.Allow(ctx, "1.2.3.4")
			require.NoError(t, err)
			assert.False(t, res.Allowed())
			assert.Equal(t, clock.Now().Add(time.Minute).Unix(), res.ResetAt.Unix())

			// Denied requests take nothing: one refill allows exactly one more.
			clock.Advance(time.Minute)
			res, err = b.Allow(ctx, "1.2.3.4")
			require.NoError(t, err)
			assert.True(t, res.Allowed())
			assert.Equal(t, 0, res.Remaining)

			other, err := b.Allow(ctx, "5.6.7.8")
			require.NoError(t, err)
			assert.Equal(t, 2, other.Remaining)

			// Long idle periods refill up to capacity only.
			clock.Advance(24 * time.Hour)
			status, err := b.Status(ctx, "1.2.3.4")
			require.NoError(t, err)
			assert.Equal(t, 3, status.Remaining)

			require.NoError(t, b.Reset(ctx, "5.6.7.8"))
			other, err = b.Allow(ctx, "5.6.7.8")
			require.NoError(t, err)
			assert.Equal(t, 2, other.Remaining)
		})
	}
}

func TestBucket_AllowN(t *testing.T) {
	t.Parallel()

	b, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0)), testConfig)
	require.NoError(t, err)

	res, err := b.AllowN(context.Background(), "k", 4)
	require.NoError(t, err)
	assert.False(t, res.Allowed())
	assert.Positive(t, res.RetryAfter())

	res, err = b.AllowN(context.Background(), "k", 3)
	require.NoError(t, err)
	assert.True(t, res.Allowed())
	assert.Zero(t, res.RetryAfter())

	_, err = b.AllowN(context.Background(), "k", 0)
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidTokenCount)
	_, err = b.Allow(context.Background(), "")
	assert.ErrorIs(t, err, ratelimiter.ErrEmptyKey)
}

func TestNewBucket_InvalidConfig(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
	for _, cfg := range []ratelimiter.Config{
		{Capacity: 0, RefillRate: 1, RefillInterval: time.Second},
		{Capacity: 1, RefillRate: 0, RefillInterval: time.Second},
		{Capacity: 1, RefillRate: 1},
	} {
		_, err := ratelimiter.NewBucket(store, cfg)
		assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
	}
	_, err := ratelimiter.NewBucket(nil, testConfig)
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
}

func TestMemoryStore_RemoveStale(t *testing.T) {
	t.Parallel()

	clock := newManualClock()
	store := ratelimiter.NewMemoryStore(
		ratelimiter.WithCleanupInterval(time.Hour),
		ratelimiter.WithStaleAfter(10*time.Minute),
		ratelimiter.WithNowFunc(clock.Now),
	)
	defer store.Close()

	_, _, err := store.ConsumeTokens(context.Background(), "a", 1, testConfig)
	require.NoError(t, err)
	clock.Advance(5 * time.Minute)
	_, _, err = store.ConsumeTokens(context.Background(), "b", 1, testConfig)
	require.NoError(t, err)

	clock.Advance(6 * time.Minute)
	store.RemoveStale()
	assert.Equal(t, 1, store.Len())

	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}

func TestRedisStore_Unavailable(t *testing.T) {
	t.Parallel()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	store := ratelimiter.NewRedisStore(client)
	_, _, err = store.ConsumeTokens(context.Background(), "k", 1, testConfig)
	assert.ErrorIs(t, err, ratelimiter.ErrStoreUnavailable)
	assert.ErrorIs(t, store.Reset(context.Background(), "k"), ratelimiter.ErrStoreUnavailable)
}

func TestRedisStore_KeyExpires(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := ratelimiter.NewRedisStore(client)
	_, _, err := store.ConsumeTokens(context.Background(), "k", 1, testConfig)
	require.NoError(t, err)

	require.True(t, mr.Exists("ratelimit:k"))
	assert.Equal(t, 4*time.Minute, mr.TTL("ratelimit:k"))

	mr.FastForward(5 * time.Minute)
	assert.False(t, mr.Exists("ratelimit:k"))
}
