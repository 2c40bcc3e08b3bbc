package cache

import (
	"context"
	"time"

	"github.com/coachportal/portalproxy/internal/config"
	goCache "github.com/patrickmn/go-cache"
)

// DefaultExpiration is used when no TTL is configured
const DefaultExpiration = time.Minute

const cleanupInterval = 10 * time.Minute

// InMemoryCache keeps subscription details in process using go-cache.
// When caching is disabled every read misses and every write is dropped.
type InMemoryCache struct {
	cache   *goCache.Cache
	enabled bool
	ttl     time.Duration
}

// NewInMemoryCache creates a cache configured from cfg.Cache
func NewInMemoryCache(cfg *config.Configuration) Cache {
	ttl := cfg.Cache.TTL
	if ttl <= 0 {
		ttl = DefaultExpiration
	}

	return &InMemoryCache{
		cache:   goCache.New(ttl, cleanupInterval),
		enabled: cfg.Cache.Enabled,
		ttl:     ttl,
	}
}

func (c *InMemoryCache) Get(ctx context.Context, key string) (interface{}, bool) {
	if !c.enabled {
		return nil, false
	}

	span := startSpan(ctx, "get", key)
	value, found := c.cache.Get(key)
	finishSpan(span, &found)

	return value, found
}

func (c *InMemoryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) {
	if !c.enabled {
		return
	}
	if expiration <= 0 {
		expiration = c.ttl
	}

	span := startSpan(ctx, "set", key)
	c.cache.Set(key, value, expiration)
	finishSpan(span, nil)
}

func (c *InMemoryCache) Delete(ctx context.Context, key string) {
	if !c.enabled {
		return
	}

	span := startSpan(ctx, "delete", key)
	c.cache.Delete(key)
	finishSpan(span, nil)
}

func (c *InMemoryCache) Flush(_ context.Context) {
	if !c.enabled {
		return
	}
	c.cache.Flush()
}
