// Package rediscache is an optional owner-scoped read cache in front of the
// bookmark store. A cached list is invalidated on every mutation for that
// owner; the service runs fine without Redis configured.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pinbox/pinbox/internal/domain"
)

// DefaultTTL bounds how long a cached collection is served
// before falling back to the database.
const DefaultTTL = 5 * time.Minute

// Cache stores per-owner bookmark collections in Redis.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a cache with the given TTL (DefaultTTL when ttl <= 0).
func New(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

// GetList retrieves an owner's cached collection.
// The second return value is false on a miss.
func (c *Cache) GetList(ctx context.Context, userID string) ([]domain.Bookmark, bool, error) {
	data, err := c.client.Get(ctx, OwnerListKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get cached list: %w", err)
	}

	var items []domain.Bookmark
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached list: %w", err)
	}
	return items, true, nil
}

// SetList caches an owner's collection.
func (c *Cache) SetList(ctx context.Context, userID string, items []domain.Bookmark) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal list: %w", err)
	}
	if err := c.client.Set(ctx, OwnerListKey(userID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache list: %w", err)
	}
	return nil
}

// Invalidate drops an owner's cached collection.
func (c *Cache) Invalidate(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, OwnerListKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached list: %w", err)
	}
	return nil
}

// Flush removes every cached collection.
func (c *Cache) Flush(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, KeyPrefixOwnerList+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete cache key: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to flush cache: %w", err)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
