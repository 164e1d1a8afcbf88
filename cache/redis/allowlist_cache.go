package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// AllowlistCache implements cache.AllowlistCache on Redis, for deployments
// where several instances must see allow-list edits at the same time.
type AllowlistCache struct {
	client *redis.Client
	prefix string
}

// NewAllowlistCache creates a new AllowlistCache. The prefix namespaces keys
// when the Redis instance is shared.
func NewAllowlistCache(client *redis.Client, prefix string) *AllowlistCache {
	return &AllowlistCache{client: client, prefix: prefix}
}

func (c *AllowlistCache) key(address string) string {
	return fmt.Sprintf("%s:allowip:%s", c.prefix, address)
}

// Get retrieves a cached verdict.
func (c *AllowlistCache) Get(ctx context.Context, address string) (bool, bool) {
	val, err := c.client.Get(ctx, c.key(address)).Result()
	if err != nil {
		// redis.Nil and transport errors both read as a miss; the caller
		// falls through to the repository either way.
		return false, false
	}
	return val == "1", true
}

// Set stores a verdict with a TTL.
func (c *AllowlistCache) Set(ctx context.Context, address string, allowed bool, ttl time.Duration) error {
	val := "0"
	if allowed {
		val = "1"
	}
	if err := c.client.Set(ctx, c.key(address), val, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache allow-list verdict: %w", err)
	}
	return nil
}

// Delete drops one address.
func (c *AllowlistCache) Delete(ctx context.Context, address string) error {
	return c.client.Del(ctx, c.key(address)).Err()
}

// Clear drops every cached verdict under the prefix.
func (c *AllowlistCache) Clear(ctx context.Context) error {
	var cursor uint64
	pattern := c.key("*")
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("failed to scan allow-list keys: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to delete allow-list keys: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// Close is a no-op; the shared client is owned by the caller.
func (c *AllowlistCache) Close() error { return nil }
