package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestMemoryCache(t *testing.T) (*MemoryCache[string], *clock) {
	t.Helper()
	clk := &clock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	mc := NewMemoryCacheWithOptions[string](4, time.Hour)
	mc.now = clk.Now
	t.Cleanup(func() { _ = mc.Close() })
	return mc, clk
}

func TestMemoryCache_SetGetDelete(t *testing.T) {
	mc, _ := newTestMemoryCache(t)
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "a", "1", 0))
	v, err := mc.Get(ctx, "a")
	assert.NoError(t, err)
	assert.Equal(t, "1", v)

	require.NoError(t, mc.Set(ctx, "a", "2", 0))
	v, _ = mc.Get(ctx, "a")
	assert.Equal(t, "2", v)

	require.NoError(t, mc.Delete(ctx, "a"))
	_, err = mc.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrCacheMiss)

	assert.NoError(t, mc.Delete(ctx, "never-set"))
}

func TestMemoryCache_Expiry(t *testing.T) {
	mc, clk := newTestMemoryCache(t)
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "session", "x", time.Minute))
	require.NoError(t, mc.Set(ctx, "forever", "y", 0))

	clk.Advance(59 * time.Second)
	_, err := mc.Get(ctx, "session")
	assert.NoError(t, err)

	clk.Advance(2 * time.Second)
	_, err = mc.Get(ctx, "session")
	assert.ErrorIs(t, err, ErrCacheMiss)

	_, err = mc.Get(ctx, "forever")
	assert.NoError(t, err)
}

func TestMemoryCache_SweepRemovesExpired(t *testing.T) {
	mc, clk := newTestMemoryCache(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		require.NoError(t, mc.Set(ctx, fmt.Sprintf("k%d", i), "v", time.Second))
	}
	require.NoError(t, mc.Set(ctx, "keep", "v", 0))
	assert.Equal(t, 11, mc.Len())

	clk.Advance(2 * time.Second)
	mc.sweep()
	assert.Equal(t, 1, mc.Len())
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	mc, _ := newTestMemoryCache(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%5)
			_ = mc.Set(ctx, key, "v", 0)
			_, _ = mc.Get(ctx, key)
			_ = mc.Delete(ctx, key)
		}(i)
	}
	wg.Wait()
}

func TestMemoryCache_CloseStopsJanitor(t *testing.T) {
	defer goleak.VerifyNone(t)

	mc := NewMemoryCacheWithOptions[int](0, time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	assert.NoError(t, mc.Close())
	assert.NoError(t, mc.Close())
}
