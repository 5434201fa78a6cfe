package rasterCache

import (
	"context"

	"github.com/akolanti/DocDesk/internal/config"
	"github.com/akolanti/DocDesk/internal/data/redisStore"
	"github.com/akolanti/DocDesk/pkg/logger_i"
)

type RedisCache struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

// GetRedisCache returns nil when redis is offline - the caller falls back to
// the in-memory cache, same deal as the job stores used to do.
func GetRedisCache(ctx context.Context) *RedisCache {
	store := redisStore.GetRedisStore(ctx, config.RedisRasterCache)
	if store == nil {
		return nil
	}
	return &RedisCache{
		store:  store,
		logger: logger_i.NewLogger("RasterCache"),
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.store.GetBytes(ctx, key)
	if c.store.IsNil(err) {
		return nil, false
	} else if err != nil {
		c.logger.Error("Failed reading cached page image", "key", key, "err", err)
		return nil, false
	}
	return val, true
}

func (c *RedisCache) Set(ctx context.Context, key string, image []byte) {
	if err := c.store.Set(ctx, key, image, config.RasterCacheTTL); err != nil {
		c.logger.Error("Failed caching page image", "key", key, "err", err)
	}
}

// TestRasterCache builds a cache over an externally wired store - test use only
func TestRasterCache(store *redisStore.Store) *RedisCache {
	return &RedisCache{
		store:  store,
		logger: logger_i.NewLogger("test rasterCache"),
	}
}
