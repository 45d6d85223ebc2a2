package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ListingCache holds JSON payloads for the public category listings. Every
// failure degrades to a cache miss so the store stays the source of truth.
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewListingCache wraps the shared redis client. A nil client disables the cache.
func NewListingCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *ListingCache {
	return &ListingCache{client: client, ttl: ttl, logger: logger}
}

// Get loads a cached listing into dest, reporting whether it was present.
func (c *ListingCache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil || c.client == nil {
		return false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("listing cache get failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.logger.Warn("listing cache decode failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Set stores a listing under the configured TTL.
func (c *ListingCache) Set(ctx context.Context, key string, value any) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("listing cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate drops a cached listing.
func (c *ListingCache) Invalidate(ctx context.Context, key string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Warn("listing cache invalidate failed", zap.String("key", key), zap.Error(err))
	}
}
