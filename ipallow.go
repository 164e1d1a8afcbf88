package attend

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"go.workpoint.io/attend/cache"
	"go.workpoint.io/attend/domain"
)

// AllowlistService answers whether a client address may punch, with a cache
// in front of the repository. Matching is an exact string comparison against
// the stored addresses.
type AllowlistService struct {
	repo     domain.AllowedIPRepository
	cache    cache.AllowlistCache
	cacheTTL time.Duration
	now      func() time.Time
}

// NewAllowlistService creates an AllowlistService. cacheTTL bounds how stale
// a verdict may be after an allow-list edit on another instance.
func NewAllowlistService(repo domain.AllowedIPRepository, c cache.AllowlistCache,
	cacheTTL time.Duration, now func() time.Time,
) *AllowlistService {
	if now == nil {
		now = time.Now
	}
	return &AllowlistService{repo: repo, cache: c, cacheTTL: cacheTTL, now: now}
}

// IsAllowed checks the cache, then the repository. Negative verdicts are
// cached too; an unknown office guest retries constantly.
func (s *AllowlistService) IsAllowed(ctx context.Context, address string) (bool, error) {
	if allowed, found := s.cache.Get(ctx, address); found {
		return allowed, nil
	}
	allowed, err := s.repo.Exists(ctx, address)
	if err != nil {
		return false, fmt.Errorf("failed to check allow-list: %w", err)
	}
	if err := s.cache.Set(ctx, address, allowed, s.cacheTTL); err != nil {
		log.Warn().Err(err).Str("address", address).Msg("failed to cache allow-list verdict")
	}
	return allowed, nil
}

// Add puts an address on the allow-list and invalidates its cached verdict.
func (s *AllowlistService) Add(ctx context.Context, address, label string) error {
	ip := &domain.AllowedIP{
		ID:        uuid.NewString(),
		Address:   address,
		Label:     label,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Add(ctx, ip); err != nil {
		return fmt.Errorf("failed to add allow-list entry: %w", err)
	}
	if err := s.cache.Delete(ctx, address); err != nil {
		log.Warn().Err(err).Str("address", address).Msg("failed to invalidate allow-list cache")
	}
	return nil
}

// Remove takes an address off the allow-list and invalidates its cached
// verdict.
func (s *AllowlistService) Remove(ctx context.Context, address string) error {
	if err := s.repo.Remove(ctx, address); err != nil {
		return fmt.Errorf("failed to remove allow-list entry: %w", err)
	}
	if err := s.cache.Delete(ctx, address); err != nil {
		log.Warn().Err(err).Str("address", address).Msg("failed to invalidate allow-list cache")
	}
	return nil
}

// List returns every allow-list entry.
func (s *AllowlistService) List(ctx context.Context) ([]*domain.AllowedIP, error) {
	return s.repo.List(ctx)
}
