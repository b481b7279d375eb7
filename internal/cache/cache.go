package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	RedisBackend  = "redis"
	MemoryBackend = "memory"
)

var ErrCacheMiss = errors.New("cache: key not found")

// Cache is our generic cache interface.
type Cache[V any] interface {
	// Get returns the value or ErrCacheMiss.
	Get(ctx context.Context, key string) (V, error)
	// Set stores value under key. Zero ttl = no expiration.
	Set(ctx context.Context, key string, value V, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Close releases background resources.
	Close() error
}

// Options selects and tunes a backend.
type Options struct {
	Backend         string
	Redis           *RedisOptions
	Shards          int
	JanitorInterval time.Duration
}

// New builds the backend named in opts.
func New[V any](opts Options) (Cache[V], error) {
	switch opts.Backend {
	case RedisBackend:
		if opts.Redis == nil || opts.Redis.Addr == "" {
			return nil, errors.New("cache: redis backend requires an address")
		}
		return NewRedisCache[V](opts.Redis), nil
	case MemoryBackend, "":
		return NewMemoryCacheWithOptions[V](opts.Shards, opts.JanitorInterval), nil
	default:
		return nil, fmt.Errorf("cache: unknown backend %q", opts.Backend)
	}
}
