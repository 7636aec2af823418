package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"happywrap-deck/models"

	"github.com/redis/go-redis/v9"
)

const catalogCacheKey = "catalog:items"

// CatalogCache keeps the resolved catalog in Redis
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// Ensure CatalogCache implements CatalogCacheInterface
var _ CatalogCacheInterface = (*CatalogCache)(nil)

// NewCatalogCache wraps an existing client
func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{client: client, ttl: ttl}
}

// NewCatalogCacheFromURL connects to redis://[user:pass@]host:port/db and pings it
func NewCatalogCacheFromURL(ctx context.Context, url string, ttl time.Duration) (*CatalogCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return NewCatalogCache(client, ttl), nil
}

// GetItems returns the cached catalog; found is false on a miss
func (c *CatalogCache) GetItems(ctx context.Context) ([]models.Item, bool, error) {
	val, err := c.client.Get(ctx, catalogCacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read catalog cache: %w", err)
	}

	var items []models.Item
	if err := json.Unmarshal(val, &items); err != nil {
		return nil, false, fmt.Errorf("failed to decode catalog cache: %w", err)
	}
	return items, true, nil
}

// SetItems stores the catalog with the configured TTL
func (c *CatalogCache) SetItems(ctx context.Context, items []models.Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode catalog cache: %w", err)
	}
	if err := c.client.Set(ctx, catalogCacheKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write catalog cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached catalog
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, catalogCacheKey).Err()
}

// Close releases the Redis connection pool
func (c *CatalogCache) Close() error {
	return c.client.Close()
}
