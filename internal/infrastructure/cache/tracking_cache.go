package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"freightline/internal/config"
)

// TrackingCache keeps recently looked-up tracking views in Redis. Progress is
// time-derived, so the TTL stays short: a stale percentage is at most a few
// seconds behind what a fresh computation would return.
type TrackingCache struct {
	client *redis.Client
}

const (
	trackingCachePrefix = "cache:tracking:"
	trackingCacheTTL    = 5 * time.Second
)

func NewClient(cfg *config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func NewTrackingCache(client *redis.Client) *TrackingCache {
	return &TrackingCache{client: client}
}

// Get loads a cached view into dest. The boolean reports a cache hit.
func (c *TrackingCache) Get(ctx context.Context, trackingID string, dest interface{}) (bool, error) {
	data, err := c.client.Get(ctx, trackingCachePrefix+trackingID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil // Cache miss
		}
		return false, err
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *TrackingCache) Set(ctx context.Context, trackingID string, view interface{}) error {
	data, err := json.Marshal(view)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, trackingCachePrefix+trackingID, data, trackingCacheTTL).Err()
}

// Invalidate drops the cached view after a mutation so the next lookup
// reflects the new state immediately instead of waiting out the TTL.
func (c *TrackingCache) Invalidate(ctx context.Context, trackingID string) error {
	return c.client.Del(ctx, trackingCachePrefix+trackingID).Err()
}
