package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

const DefaultTTL = 5 * time.Minute

// TreeCache holds serialized menu trees. Misses and backend failures both
// read as "not cached" so the caller falls back to the store.
type TreeCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type memoryTreeCache struct {
	cache *gocache.Cache
}

func NewMemoryTreeCache(ttl time.Duration) TreeCache {
	return &memoryTreeCache{cache: gocache.New(ttl, 2*ttl)}
}

func (c *memoryTreeCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if x, found := c.cache.Get(key); found {
		return x.([]byte), true
	}
	return nil, false
}

func (c *memoryTreeCache) Set(ctx context.Context, key string, value []byte) error {
	c.cache.Set(key, value, gocache.DefaultExpiration)
	return nil
}

func (c *memoryTreeCache) Delete(ctx context.Context, key string) error {
	c.cache.Delete(key)
	return nil
}

type redisTreeCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisTreeCache(rdb *redis.Client, ttl time.Duration) TreeCache {
	return &redisTreeCache{rdb: rdb, ttl: ttl, prefix: "menu-tree:"}
}

func (c *redisTreeCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

func (c *redisTreeCache) Set(ctx context.Context, key string, value []byte) error {
	return c.rdb.Set(ctx, c.prefix+key, value, c.ttl).Err()
}

func (c *redisTreeCache) Delete(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, c.prefix+key).Err()
}

type noopTreeCache struct{}

func NewNoopTreeCache() TreeCache {
	return noopTreeCache{}
}

func (noopTreeCache) Get(ctx context.Context, key string) ([]byte, bool)      { return nil, false }
func (noopTreeCache) Set(ctx context.Context, key string, value []byte) error { return nil }
func (noopTreeCache) Delete(ctx context.Context, key string) error            { return nil }
