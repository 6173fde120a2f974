package cachesvc

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/darasa/core"
	testutil "github.com/trezcool/darasa/tests"
)

func newTestRedisCache(t *testing.T, ttl time.Duration) *redisCache {
	srv := miniredis.RunT(t)
	conf := &core.Config{Redis: core.RedisConfig{Address: srv.Addr(), SnapshotTTL: ttl}}
	return NewRedisCache(conf, testutil.NopLogger{})
}

func Test_redisCache_roundTrip(t *testing.T) {
	ctx := context.Background()
	cache := newTestRedisCache(t, time.Minute)

	_, ok := cache.GetSnapshot(ctx, "alice")
	assert.False(t, ok)

	emails := []string{"a@test.cd", "b@test.cd"}
	cache.SetSnapshot(ctx, "alice", emails)

	got, ok := cache.GetSnapshot(ctx, "alice")
	require.True(t, ok)
	assert.Equal(t, emails, got)

	// per-query keys do not collide
	_, ok = cache.GetSnapshot(ctx, "bob")
	assert.False(t, ok)
}

func Test_memoryCache_roundTrip(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()

	_, ok := cache.GetSnapshot(ctx, "alice")
	assert.False(t, ok)

	cache.SetSnapshot(ctx, "alice", []string{"a@test.cd"})
	got, ok := cache.GetSnapshot(ctx, "alice")
	require.True(t, ok)
	assert.Equal(t, []string{"a@test.cd"}, got)
}
