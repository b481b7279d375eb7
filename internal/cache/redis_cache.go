package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions holds both client tuning and operation level settings.
type RedisOptions struct {
	Addr            string
	Password        string
	DB              int
	PoolSize        int
	MaxRetries      int
	MinRetryBackoff time.Duration
	MaxRetryBackoff time.Duration
	OpTimeout       time.Duration // per call timeout; 100ms when zero
	KeyPrefix       string
}

// RedisCache stores values JSON encoded so any V round-trips.
type RedisCache[V any] struct {
	client    *redis.Client
	opTimeout time.Duration
	prefix    string
}

var _ Cache[string] = (*RedisCache[string])(nil)

func NewRedisCache[V any](opts *RedisOptions) *RedisCache[V] {
	timeout := opts.OpTimeout
	if timeout == 0 {
		timeout = 100 * time.Millisecond
	}
	client := redis.NewClient(&redis.Options{
		Addr:            opts.Addr,
		Password:        opts.Password,
		DB:              opts.DB,
		PoolSize:        opts.PoolSize,
		MaxRetries:      opts.MaxRetries,
		MinRetryBackoff: opts.MinRetryBackoff,
		MaxRetryBackoff: opts.MaxRetryBackoff,
	})
	return &RedisCache[V]{client: client, opTimeout: timeout, prefix: opts.KeyPrefix}
}

func (r *RedisCache[V]) key(k string) string {
	return r.prefix + k
}

// Ping verifies the server is reachable.
func (r *RedisCache[V]) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()
	return r.client.Ping(ctx).Err()
}

func (r *RedisCache[V]) Close() error {
	return r.client.Close()
}

func (r *RedisCache[V]) Get(ctx context.Context, key string) (V, error) {
	var zero V
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return zero, ErrCacheMiss
	}
	if err != nil {
		return zero, fmt.Errorf("cache: redis get %s: %w", key, err)
	}

	var val V
	if err := json.Unmarshal(data, &val); err != nil {
		return zero, fmt.Errorf("cache: decode %s: %w", key, err)
	}
	return val, nil
}

func (r *RedisCache[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", key, err)
	}
	if ttl < 0 {
		ttl = 0
	}

	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()
	return r.client.Set(ctx, r.key(key), data, ttl).Err()
}

func (r *RedisCache[V]) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()
	return r.client.Del(ctx, r.key(key)).Err()
}
