// Package readthrough provides a small TTL read-through cache with a
// single in-flight fill. All callers inside one polling cycle observe the
// same value: a miss triggers exactly one upstream fetch and concurrent
// callers wait for it instead of issuing their own
package readthrough

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Fetch loads a fresh value from upstream
type Fetch[T any] func(ctx context.Context) (T, error)

// Cache is a single-slot TTL cache around one upstream read
type Cache[T any] struct {
	ttl   time.Duration
	fetch Fetch[T]
	now   func() time.Time

	group singleflight.Group

	mu  sync.Mutex
	val T
	at  time.Time
	has bool
}

// New constructs a cache with the given TTL and fetch function
func New[T any](ttl time.Duration, fetch Fetch[T]) *Cache[T] {
	return &Cache[T]{ttl: ttl, fetch: fetch, now: time.Now}
}

// WithClock overrides the clock, for tests
func (c *Cache[T]) WithClock(now func() time.Time) *Cache[T] {
	c.now = now
	return c
}

// Get returns the cached value when fresh, otherwise performs exactly one
// upstream fetch shared by all concurrent callers. Errors are not cached
func (c *Cache[T]) Get(ctx context.Context) (T, error) {
	if v, ok := c.fresh(); ok {
		return v, nil
	}

	out, err, _ := c.group.Do("fill", func() (any, error) {
		// a racer may have filled while we queued on the group
		if v, ok := c.fresh(); ok {
			return v, nil
		}
		v, err := c.fetch(ctx)
		if err != nil {
			return v, err
		}
		c.mu.Lock()
		c.val = v
		c.at = c.now()
		c.has = true
		c.mu.Unlock()
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out.(T), nil
}

// Invalidate drops the cached value so the next Get refetches
func (c *Cache[T]) Invalidate() {
	c.mu.Lock()
	c.has = false
	c.mu.Unlock()
}

func (c *Cache[T]) fresh() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.has && c.now().Sub(c.at) < c.ttl {
		return c.val, true
	}
	var zero T
	return zero, false
}
