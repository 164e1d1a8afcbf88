package cache

import (
	"context"
	"io"
	"time"
)

// AllowlistCache is a read-through cache in front of the punch allow-list.
// The repository stays authoritative; entries here (including negative ones)
// only shave the per-punch database round-trip.
type AllowlistCache interface {
	io.Closer

	// Get returns the cached verdict for an address and whether it was
	// present at all.
	Get(ctx context.Context, address string) (allowed bool, found bool)

	// Set stores a verdict for an address with a TTL.
	Set(ctx context.Context, address string, allowed bool, ttl time.Duration) error

	// Delete drops one address, used when the allow-list is edited.
	Delete(ctx context.Context, address string) error

	// Clear drops everything.
	Clear(ctx context.Context) error
}
