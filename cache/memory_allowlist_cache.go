package cache

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// MemoryAllowlistCache implements AllowlistCache with an in-process
// ttlcache. Good enough for a single instance; use the redis variant when
// several replicas must share invalidations.
type MemoryAllowlistCache struct {
	cache *ttlcache.Cache[string, bool]
}

// NewMemoryAllowlistCache creates an in-memory cache with automatic
// expiry cleanup.
func NewMemoryAllowlistCache() *MemoryAllowlistCache {
	cache := ttlcache.New(
		ttlcache.WithDisableTouchOnHit[string, bool](),
	)
	go cache.Start()

	return &MemoryAllowlistCache{cache: cache}
}

// Get implements AllowlistCache.Get.
func (c *MemoryAllowlistCache) Get(_ context.Context, address string) (bool, bool) {
	item := c.cache.Get(address)
	if item == nil {
		return false, false
	}
	return item.Value(), true
}

// Set implements AllowlistCache.Set.
func (c *MemoryAllowlistCache) Set(_ context.Context, address string, allowed bool, ttl time.Duration) error {
	c.cache.Set(address, allowed, ttl)
	return nil
}

// Delete implements AllowlistCache.Delete.
func (c *MemoryAllowlistCache) Delete(_ context.Context, address string) error {
	c.cache.Delete(address)
	return nil
}

// Clear implements AllowlistCache.Clear.
func (c *MemoryAllowlistCache) Clear(_ context.Context) error {
	c.cache.DeleteAll()
	return nil
}

// Close stops the cleanup goroutine.
func (c *MemoryAllowlistCache) Close() error {
	c.cache.Stop()
	return nil
}
