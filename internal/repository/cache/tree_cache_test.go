package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTreeCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryTreeCache(time.Minute)

	_, ok := c.Get(ctx, "tree")
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "tree", []byte(`[]`)))
	val, ok := c.Get(ctx, "tree")
	assert.True(t, ok)
	assert.Equal(t, []byte(`[]`), val)

	require.NoError(t, c.Delete(ctx, "tree"))
	_, ok = c.Get(ctx, "tree")
	assert.False(t, ok)
}

func TestMemoryTreeCacheExpires(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryTreeCache(20 * time.Millisecond)

	require.NoError(t, c.Set(ctx, "tree", []byte(`[]`)))
	time.Sleep(40 * time.Millisecond)

	_, ok := c.Get(ctx, "tree")
	assert.False(t, ok)
}

func TestNoopTreeCacheNeverHits(t *testing.T) {
	ctx := context.Background()
	c := NewNoopTreeCache()

	require.NoError(t, c.Set(ctx, "tree", []byte(`[]`)))
	_, ok := c.Get(ctx, "tree")
	assert.False(t, ok)
}

func TestRedisTreeCacheTreatsOutageAsMiss(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()
	c := NewRedisTreeCache(rdb, time.Minute)

	_, ok := c.Get(context.Background(), "tree")
	assert.False(t, ok)
	assert.Error(t, c.Set(context.Background(), "tree", []byte(`[]`)))
}
