package cache

import (
	"context"
	"hash/fnv"
	"sync"
	"time"
)

const (
	defaultShards          = 32
	defaultJanitorInterval = time.Minute
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

func (e entry[V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

type bucket[V any] struct {
	mu      sync.Mutex
	entries map[string]entry[V]
}

// MemoryCache is an in-process sharded map with a background janitor.
type MemoryCache[V any] struct {
	buckets []*bucket[V]
	done    chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
	now     func() time.Time
}

var _ Cache[string] = (*MemoryCache[string])(nil)

func NewMemoryCache[V any]() *MemoryCache[V] {
	return NewMemoryCacheWithOptions[V](defaultShards, defaultJanitorInterval)
}

// NewMemoryCacheWithOptions allows customizing shard count and janitor interval.
// Non-positive values fall back to the defaults.
func NewMemoryCacheWithOptions[V any](shards int, janitorInterval time.Duration) *MemoryCache[V] {
	if shards <= 0 {
		shards = defaultShards
	}
	if janitorInterval <= 0 {
		janitorInterval = defaultJanitorInterval
	}

	mc := &MemoryCache[V]{
		buckets: make([]*bucket[V], shards),
		done:    make(chan struct{}),
		now:     time.Now,
	}
	for i := range mc.buckets {
		mc.buckets[i] = &bucket[V]{entries: make(map[string]entry[V])}
	}

	mc.wg.Add(1)
	go mc.janitor(janitorInterval)
	return mc
}

func (mc *MemoryCache[V]) bucketFor(key string) *bucket[V] {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return mc.buckets[h.Sum32()%uint32(len(mc.buckets))]
}

func (mc *MemoryCache[V]) Get(_ context.Context, key string) (V, error) {
	var zero V
	b := mc.bucketFor(key)

	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.entries[key]
	if !ok {
		return zero, ErrCacheMiss
	}
	if e.expired(mc.now()) {
		delete(b.entries, key)
		return zero, ErrCacheMiss
	}
	return e.value, nil
}

func (mc *MemoryCache[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	e := entry[V]{value: value}
	if ttl > 0 {
		e.expiresAt = mc.now().Add(ttl)
	}

	b := mc.bucketFor(key)
	b.mu.Lock()
	b.entries[key] = e
	b.mu.Unlock()
	return nil
}

func (mc *MemoryCache[V]) Delete(_ context.Context, key string) error {
	b := mc.bucketFor(key)
	b.mu.Lock()
	delete(b.entries, key)
	b.mu.Unlock()
	return nil
}

// Len counts live and not yet swept entries.
func (mc *MemoryCache[V]) Len() int {
	n := 0
	for _, b := range mc.buckets {
		b.mu.Lock()
		n += len(b.entries)
		b.mu.Unlock()
	}
	return n
}

// Close stops the janitor and waits for it to exit. Safe to call twice.
func (mc *MemoryCache[V]) Close() error {
	mc.once.Do(func() { close(mc.done) })
	mc.wg.Wait()
	return nil
}

func (mc *MemoryCache[V]) sweep() {
	now := mc.now()
	for _, b := range mc.buckets {
		b.mu.Lock()
		for k, e := range b.entries {
			if e.expired(now) {
				delete(b.entries, k)
			}
		}
		b.mu.Unlock()
	}
}

func (mc *MemoryCache[V]) janitor(interval time.Duration) {
	defer mc.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			mc.sweep()
		case <-mc.done:
			return
		}
	}
}
