package services

import (
	"context"
	"time"

	"ridedispatch/pkg/cache"
)

// CacheService abstracts the Redis layer so repositories and services
// stay testable without a live instance.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
	Increment(ctx context.Context, key string) (int64, error)
	SetExpire(ctx context.Context, key string, expiration time.Duration) error
}

type cacheService struct {
	redis *cache.RedisCache
}

func NewCacheService(redis *cache.RedisCache) CacheService {
	return &cacheService{redis: redis}
}

func (c *cacheService) Get(ctx context.Context, key string, dest interface{}) error {
	return c.redis.Get(ctx, key, dest)
}

func (c *cacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.redis.Set(ctx, key, value, expiration)
}

func (c *cacheService) Delete(ctx context.Context, keys ...string) error {
	return c.redis.Delete(ctx, keys...)
}

func (c *cacheService) Exists(ctx context.Context, key string) (bool, error) {
	return c.redis.Exists(ctx, key)
}

func (c *cacheService) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	return c.redis.SetNX(ctx, key, value, expiration)
}

func (c *cacheService) Increment(ctx context.Context, key string) (int64, error) {
	return c.redis.Increment(ctx, key)
}

func (c *cacheService) SetExpire(ctx context.Context, key string, expiration time.Duration) error {
	return c.redis.SetExpire(ctx, key, expiration)
}
