package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const statsTTL = time.Minute

// StatsCache is a read-through cache for computed dashboard stats. Entries
// expire after a short TTL; stale-by-up-to-a-minute dashboards are acceptable.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatsCache creates a StatsCache wrapping the given Redis client. A ttl of
// zero or less falls back to the one-minute default.
func NewStatsCache(client *redis.Client, ttl time.Duration) *StatsCache {
	if ttl <= 0 {
		ttl = statsTTL
	}
	return &StatsCache{client: client, ttl: ttl}
}

// Get returns the cached payload for key and whether it was present.
func (c *StatsCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("stats cache get: %w", err)
	}
	return raw, true, nil
}

// Set stores the payload under key with the configured TTL.
func (c *StatsCache) Set(ctx context.Context, key string, value []byte) error {
	return c.client.Set(ctx, key, value, c.ttl).Err()
}
