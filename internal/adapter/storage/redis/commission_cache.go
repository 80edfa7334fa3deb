package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"marketplace-settlement/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// CommissionCache implements ports.CommissionCache using Redis. Configs are
// stored as JSON with a bounded TTL and invalidated explicitly on save, so a
// stale entry can outlive a config change by at most the TTL.
type CommissionCache struct {
	client *goredis.Client
	prefix string
}

// NewCommissionCache creates a new Redis-backed commission config cache.
func NewCommissionCache(client *goredis.Client) *CommissionCache {
	return &CommissionCache{
		client: client,
		prefix: "commission:config:",
	}
}

// Get retrieves a cached config. Returns nil, nil on miss.
func (c *CommissionCache) Get(ctx context.Context, restaurantID string) (*domain.CommissionConfig, error) {
	val, err := c.client.Get(ctx, c.prefix+restaurantID).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis commission get: %w", err)
	}

	cfg := &domain.CommissionConfig{}
	if err := json.Unmarshal(val, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal cached commission config: %w", err)
	}
	return cfg, nil
}

// Set stores a config with TTL.
func (c *CommissionCache) Set(ctx context.Context, cfg *domain.CommissionConfig, ttl time.Duration) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal commission config: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+cfg.RestaurantID, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis commission set: %w", err)
	}
	return nil
}

// Invalidate drops the cached config for a restaurant.
func (c *CommissionCache) Invalidate(ctx context.Context, restaurantID string) error {
	if err := c.client.Del(ctx, c.prefix+restaurantID).Err(); err != nil {
		return fmt.Errorf("redis commission invalidate: %w", err)
	}
	return nil
}
