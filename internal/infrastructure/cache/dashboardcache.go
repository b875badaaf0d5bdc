// Package cache provides an optional Redis-backed cache for dashboard
// analytics responses. A nil cache is valid and disables caching entirely.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"millrace/internal/shared/config"
	"millrace/internal/shared/logger"
)

// DashboardCache caches serialized analytics payloads keyed by endpoint.
// Entries expire after the configured TTL and are flushed after every upload
// so dashboards never serve aggregates from before the latest batch.
type DashboardCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger logger.Interface
}

// NewDashboardCache connects to Redis and returns a cache. Returns nil when
// caching is disabled in configuration; callers treat a nil cache as a no-op.
func NewDashboardCache(cfg *config.RedisConfig, ttl time.Duration, log logger.Interface) (*DashboardCache, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &DashboardCache{
		client: client,
		prefix: "dashboard:",
		ttl:    ttl,
		logger: log,
	}, nil
}

// Get unmarshals the cached payload for key into dest. Returns false on a
// miss; cache errors are logged and reported as misses.
func (c *DashboardCache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil {
		return false
	}

	data, err := c.client.Get(ctx, c.buildKey(key)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warnw("cache read failed", "key", key, "error", err)
		}
		return false
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		c.logger.Warnw("cache entry corrupt, discarding", "key", key, "error", err)
		return false
	}
	return true
}

// Set stores value under key with the configured TTL. Failures are logged,
// never returned; the dashboard works without the cache.
func (c *DashboardCache) Set(ctx context.Context, key string, value interface{}) {
	if c == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warnw("cache marshal failed", "key", key, "error", err)
		return
	}

	if err := c.client.Set(ctx, c.buildKey(key), data, c.ttl).Err(); err != nil {
		c.logger.Warnw("cache write failed", "key", key, "error", err)
	}
}

// Invalidate removes every dashboard entry. Called after each processed
// upload batch.
func (c *DashboardCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}

	iter := c.client.Scan(ctx, 0, c.prefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warnw("cache scan failed during invalidation", "error", err)
		return
	}

	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warnw("cache invalidation failed", "error", err)
	}
}

// Close releases the Redis connection.
func (c *DashboardCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

func (c *DashboardCache) buildKey(key string) string {
	return c.prefix + key
}
