package cache

import (
	"context"
	"errors"
	"testing"

	"storefront-platform/internal/domain"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) *StoreCache {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStoreCache(client)
}

func TestStoreCache_RoundTrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	store := &domain.Store{ID: "store-1", Slug: "acme", Name: "Acme"}
	if err := c.Set(ctx, store); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := c.Get(ctx, "acme")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != "store-1" || got.Name != "Acme" {
		t.Fatalf("unexpected store %+v", got)
	}
}

func TestStoreCache_MissAndInvalidate(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if _, err := c.Get(ctx, "nope"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected cache miss, got %v", err)
	}

	store := &domain.Store{ID: "store-1", Slug: "acme"}
	if err := c.Set(ctx, store); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := c.Invalidate(ctx, "acme"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, err := c.Get(ctx, "acme"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected cache miss after invalidate, got %v", err)
	}
}

func TestStoreCache_NilSafe(t *testing.T) {
	var c *StoreCache
	ctx := context.Background()

	if _, err := c.Get(ctx, "acme"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("nil cache should miss, got %v", err)
	}
	if err := c.Set(ctx, &domain.Store{Slug: "acme"}); err != nil {
		t.Fatalf("nil cache set should be a no-op, got %v", err)
	}
}
