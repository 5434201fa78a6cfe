package rasterCache_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/akolanti/DocDesk/internal/data/rasterCache"
	"github.com/akolanti/DocDesk/internal/data/redisStore"
)

func newTestCache(t *testing.T) *rasterCache.RedisCache {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return rasterCache.TestRasterCache(redisStore.NewTestStore(client))
}

func TestRedisCacheRoundTrip(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	image := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}

	cache.Set(ctx, "sess-1:g1:p1:z1.00", image)

	got, found := cache.Get(ctx, "sess-1:g1:p1:z1.00")
	if !found {
		t.Fatal("expected a cache hit")
	}
	if !bytes.Equal(got, image) {
		t.Errorf("cached bytes mismatch: got %v, expected %v", got, image)
	}
}

func TestRedisCacheMiss(t *testing.T) {
	cache := newTestCache(t)

	if _, found := cache.Get(context.Background(), "sess-1:g1:p9:z1.00"); found {
		t.Error("expected a miss for an unknown key")
	}
}

func TestRedisCacheKeysAreLoadScoped(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, "sess-1:g1:p1:z1.00", []byte("old doc"))

	//same session and page, later load generation: must not hit the old entry
	if _, found := cache.Get(ctx, "sess-1:g2:p1:z1.00"); found {
		t.Error("a replaced document must not serve its predecessor's images")
	}
}

func TestMemoryCache(t *testing.T) {
	cache := rasterCache.InitMemoryCache()
	ctx := context.Background()
	image := []byte("page image bytes")

	if _, found := cache.Get(ctx, "sess-1:g1:p1:z1.50"); found {
		t.Error("expected a miss before any set")
	}

	cache.Set(ctx, "sess-1:g1:p1:z1.50", image)

	got, found := cache.Get(ctx, "sess-1:g1:p1:z1.50")
	if !found {
		t.Fatal("expected a cache hit")
	}
	if !bytes.Equal(got, image) {
		t.Errorf("cached bytes mismatch: got %q, expected %q", got, image)
	}
}
