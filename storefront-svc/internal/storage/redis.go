package storage

import (
	"context"
	"errors"
	"time"

	"ninedelivery/storefront-svc/internal/kv"

	"github.com/redis/go-redis/v9"
)

// RedisBackend stores kv values as plain Redis strings. A zero TTL keeps keys
// until they are removed.
type RedisBackend struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisBackend(client *redis.Client, ttl time.Duration) *RedisBackend {
	return &RedisBackend{Client: client, TTL: ttl}
}

func (b *RedisBackend) Get(ctx context.Context, key string) (string, error) {
	value, err := b.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", kv.ErrNotFound
	}
	return value, err
}

func (b *RedisBackend) Set(ctx context.Context, key, value string) error {
	return b.Client.Set(ctx, key, value, b.TTL).Err()
}

func (b *RedisBackend) Del(ctx context.Context, key string) error {
	return b.Client.Del(ctx, key).Err()
}

var _ kv.Backend = (*RedisBackend)(nil)
