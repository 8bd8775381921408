package questionsource

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const cacheKeyPrefix = "daily-challenge:bank:"

// Cache stores raw bank files.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// RedisCache is a Cache backed by Redis.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errCacheMiss
	}
	return b, err
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// CachedLoader serves bank files from a Cache and falls back to next.
// Cache failures are logged and otherwise ignored.
type CachedLoader struct {
	next   Loader
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedLoader(next Loader, cache Cache, ttl time.Duration, logger *zap.Logger) *CachedLoader {
	return &CachedLoader{next: next, cache: cache, ttl: ttl, logger: logger}
}

func (l *CachedLoader) Load(ctx context.Context, name string) ([]byte, error) {
	key := cacheKeyPrefix + name

	b, err := l.cache.Get(ctx, key)
	switch {
	case err == nil:
		l.logger.Debug("bank cache hit", zap.String("file", name))
		return b, nil
	case !errors.Is(err, errCacheMiss):
		l.logger.Warn("bank cache read failed", zap.String("file", name), zap.Error(err))
	}

	b, err = l.next.Load(ctx, name)
	if err != nil {
		return nil, err
	}

	if err := l.cache.Set(ctx, key, b, l.ttl); err != nil {
		l.logger.Warn("bank cache write failed", zap.String("file", name), zap.Error(err))
	}

	return b, nil
}

// Evict drops the cached copy of name. Source calls it for files it could
// not decode, so a fixed file is fetched again on the next load.
func (l *CachedLoader) Evict(ctx context.Context, name string) {
	if err := l.cache.Delete(ctx, cacheKeyPrefix+name); err != nil {
		l.logger.Warn("bank cache evict failed", zap.String("file", name), zap.Error(err))
		return
	}
	l.logger.Info("bank evicted from cache", zap.String("file", name))
}
