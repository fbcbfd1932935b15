package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jstittsworth/contrarian-dfs/internal/classifier"
	"github.com/jstittsworth/contrarian-dfs/internal/testutil"
	"github.com/jstittsworth/contrarian-dfs/pkg/utils"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheService_Disabled(t *testing.T) {
	cache := NewCacheService(nil)
	ctx := context.Background()

	assert.False(t, cache.Enabled())
	assert.NoError(t, cache.Set(ctx, "k", map[string]int{"a": 1}, time.Minute))

	var dest map[string]int
	assert.ErrorIs(t, cache.Get(ctx, "k", &dest), utils.ErrCacheMiss)
	assert.NoError(t, cache.Delete(ctx, "k"))
	assert.NoError(t, cache.Ping(ctx))

	var nilCache *CacheService
	assert.False(t, nilCache.Enabled())
	assert.ErrorIs(t, nilCache.Get(ctx, "k", &dest), utils.ErrCacheMiss)
}

func TestCacheService_BreakerOpensOnUnreachableRedis(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	cache := NewCacheService(client)
	ctx := context.Background()
	require.True(t, cache.Enabled())

	var dest string
	for i := 0; i < 3; i++ {
		err := cache.Get(ctx, "k", &dest)
		require.Error(t, err)
		assert.False(t, errors.Is(err, utils.ErrCacheMiss), "connection failures are not plain misses")
	}

	assert.Equal(t, gobreaker.StateOpen, cache.BreakerState())

	err := cache.Get(ctx, "k", &dest)
	assert.ErrorIs(t, err, utils.ErrCacheMiss, "an open breaker degrades to a miss")
}

func TestNewRedisClient(t *testing.T) {
	client, err := NewRedisClient(context.Background(), "")
	assert.NoError(t, err)
	assert.Nil(t, client)

	_, err = NewRedisClient(context.Background(), "not-a-url")
	assert.Error(t, err)
}

func TestClassifiedTableKey(t *testing.T) {
	assert.Equal(t, "players:classified:8-1700000000:0.5-0.5-50",
		ClassifiedTableKey("8-1700000000", classifier.DefaultWeights().Fingerprint()))
}

func TestCacheService_RoundTrip(t *testing.T) {
	client, mem := testutil.NewMemoryRedis()
	cache := NewCacheService(client)
	ctx := context.Background()

	require.True(t, cache.Enabled())
	require.NoError(t, cache.Ping(ctx))
	require.NoError(t, cache.Set(ctx, "k", map[string]int{"a": 1}, time.Minute))

	var dest map[string]int
	require.NoError(t, cache.Get(ctx, "k", &dest))
	assert.Equal(t, map[string]int{"a": 1}, dest)

	require.NoError(t, cache.Delete(ctx, "k"))
	assert.ErrorIs(t, cache.Get(ctx, "k", &dest), utils.ErrCacheMiss)
	assert.Equal(t, 1, mem.Hits())
	assert.Equal(t, 1, mem.Misses())
	assert.Equal(t, gobreaker.StateClosed, cache.BreakerState(), "misses do not trip the breaker")
}
