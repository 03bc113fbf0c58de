package services

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/signit/go-signit-server/types"
)

// Cache is a string cache with per-entry expiry. Injected so tests can
// substitute an in-memory store for the redis backend.
type Cache interface {
	// Get returns the cached value or types.ErrNotFound on a miss
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// RedisCache implements Cache on the shared redis client
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	if client == nil {
		panic("redis client cannot be nil")
	}
	return &RedisCache{client: client}
}

func (rc *RedisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := rc.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", types.ErrNotFound
		}
		return "", err
	}
	return val, nil
}

func (rc *RedisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return rc.client.Set(ctx, key, value, ttl).Err()
}
