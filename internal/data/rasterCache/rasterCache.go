package rasterCache

import (
	"context"

	"github.com/akolanti/DocDesk/internal/config"
	"github.com/akolanti/DocDesk/pkg/logger_i"
	gocache "github.com/patrickmn/go-cache"
)

// Cache holds rendered page images for the rasterizing collaborator. The
// session controller never sees it - entries are keyed by a per-load document
// key, so a replaced session simply stops hitting its old entries and TTL
// expiry reclaims them.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, image []byte)
}

type MemoryCache struct {
	inner  *gocache.Cache
	logger *logger_i.Logger
}

func InitMemoryCache() *MemoryCache {
	return &MemoryCache{
		inner:  gocache.New(config.RasterCacheTTL, 2*config.RasterCacheTTL),
		logger: logger_i.NewLogger("InMem RasterCache"),
	}
}

func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, found := c.inner.Get(key)
	if !found {
		return nil, false
	}
	img, ok := val.([]byte)
	return img, ok
}

func (c *MemoryCache) Set(ctx context.Context, key string, image []byte) {
	c.inner.Set(key, image, gocache.DefaultExpiration)
}
