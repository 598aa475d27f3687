// Package cache holds the optional Redis-backed read caches. Every cache is
// nil-safe: a nil cache behaves as a permanent miss so Redis stays optional.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront-platform/internal/domain"
	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

// StoreCache caches store-by-slug lookups. Every storefront request resolves
// the tenant, so this is the hottest read in the system.
type StoreCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStoreCache(client *redis.Client) *StoreCache {
	return &StoreCache{
		client: client,
		ttl:    5 * time.Minute,
	}
}

func (c *StoreCache) Get(ctx context.Context, slug string) (*domain.Store, error) {
	if c == nil || c.client == nil {
		return nil, ErrCacheMiss
	}
	data, err := c.client.Get(ctx, storeKey(slug)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var store domain.Store
	if err := json.Unmarshal(data, &store); err != nil {
		return nil, fmt.Errorf("unmarshal store failed: %w", err)
	}
	return &store, nil
}

func (c *StoreCache) Set(ctx context.Context, store *domain.Store) error {
	if c == nil || c.client == nil {
		return nil
	}
	data, err := json.Marshal(store)
	if err != nil {
		return fmt.Errorf("marshal store failed: %w", err)
	}
	if err := c.client.Set(ctx, storeKey(store.Slug), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *StoreCache) Invalidate(ctx context.Context, slug string) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Del(ctx, storeKey(slug)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func storeKey(slug string) string {
	return fmt.Sprintf("store:%s", slug)
}
