// Package cache provides a Redis-backed cache for rendered seat maps.
// Seat-map reads are unversioned display reads; serving a briefly stale
// map is safe because every write re-validates against version tokens.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SeatMapCache stores the JSON payload of GET seat-map responses keyed
// by screening id.  A nil Redis client disables the cache entirely:
// every method becomes a no-op and callers fall through to the store.
type SeatMapCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewSeatMapCache builds a cache around rdb (which may be nil).
func NewSeatMapCache(rdb *redis.Client, ttl time.Duration) *SeatMapCache {
	return &SeatMapCache{rdb: rdb, ttl: ttl}
}

func (c *SeatMapCache) key(screeningID uint64) string {
	return fmt.Sprintf("seatmap:%d", screeningID)
}

// Get returns the cached payload and true on a hit.  Errors and misses
// both report a miss; the caller never fails because of the cache.
func (c *SeatMapCache) Get(ctx context.Context, screeningID uint64) ([]byte, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	b, err := c.rdb.Get(ctx, c.key(screeningID)).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

// Set stores a payload for the configured TTL, best-effort.
func (c *SeatMapCache) Set(ctx context.Context, screeningID uint64, payload []byte) {
	if c == nil || c.rdb == nil {
		return
	}
	_ = c.rdb.Set(ctx, c.key(screeningID), payload, c.ttl).Err()
}

// Invalidate drops the cached map after a booking or cancellation
// committed, so the next read reflects the new seat states immediately
// instead of waiting out the TTL.
func (c *SeatMapCache) Invalidate(ctx context.Context, screeningID uint64) {
	if c == nil || c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, c.key(screeningID)).Err()
}
