package cache

import (
	"sync"
	"time"
)

// Cache is a typed key/value store whose entries expire after a TTL
type Cache[V any] interface {
	// Get returns the value and true if present and not expired
	Get(key string) (V, bool)

	// Set stores a value for ttl
	Set(key string, value V, ttl time.Duration)

	// Touch pushes the expiration of a live entry ttl into the future
	Touch(key string, ttl time.Duration) bool

	// GetOrSet returns the cached value or computes, stores and returns it.
	// compute runs under the cache lock and must not call back into the cache.
	GetOrSet(key string, ttl time.Duration, compute func() (V, error)) (V, error)

	Delete(key string)
	Clear()

	// Size counts entries, expired ones not yet swept included
	Size() int

	// Stop ends the cleanup goroutine, it is safe to call more than once
	Stop()
}

// EvictFunc is called with every entry removed by expiry, Delete or Clear
type EvictFunc[V any] func(key string, value V)

type cacheItem[V any] struct {
	value      V
	expiration time.Time
}

func (item *cacheItem[V]) isExpired(now time.Time) bool {
	return now.After(item.expiration)
}

// InMemoryCache is a thread-safe Cache held in a map
type InMemoryCache[V any] struct {
	items           map[string]*cacheItem[V]
	mu              sync.RWMutex
	cleanupInterval time.Duration
	onEvict         EvictFunc[V]
	now             func() time.Time
	stopCleanup     chan struct{}
	stopOnce        sync.Once
}

// Option configures an InMemoryCache
type Option[V any] func(*InMemoryCache[V])

// WithEvictFunc registers a callback for removed entries.
// It runs outside the cache lock.
func WithEvictFunc[V any](fn EvictFunc[V]) Option[V] {
	return func(c *InMemoryCache[V]) { c.onEvict = fn }
}

// WithClock replaces time.Now, for tests
func WithClock[V any](now func() time.Time) Option[V] {
	return func(c *InMemoryCache[V]) { c.now = now }
}

// NewInMemoryCache creates a cache that sweeps expired entries every cleanupInterval
func NewInMemoryCache[V any](cleanupInterval time.Duration, opts ...Option[V]) *InMemoryCache[V] {
	c := &InMemoryCache[V]{
		items:           make(map[string]*cacheItem[V]),
		cleanupInterval: cleanupInterval,
		now:             time.Now,
		stopCleanup:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	go c.startCleanup()

	return c
}

func (c *InMemoryCache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, found := c.items[key]
	if !found || item.isExpired(c.now()) {
		var zero V
		return zero, false
	}
	return item.value, true
}

func (c *InMemoryCache[V]) Set(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = &cacheItem[V]{value: value, expiration: c.now().Add(ttl)}
}

func (c *InMemoryCache[V]) Touch(key string, ttl time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	item, found := c.items[key]
	if !found || item.isExpired(now) {
		return false
	}
	item.expiration = now.Add(ttl)
	return true
}

func (c *InMemoryCache[V]) GetOrSet(key string, ttl time.Duration, compute func() (V, error)) (V, error) {
	c.mu.RLock()
	item, found := c.items[key]
	if found && !item.isExpired(c.now()) {
		c.mu.RUnlock()
		return item.value, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// another goroutine may have stored it meanwhile
	item, found = c.items[key]
	if found && !item.isExpired(c.now()) {
		return item.value, nil
	}

	value, err := compute()
	if err != nil {
		var zero V
		return zero, err
	}
	c.items[key] = &cacheItem[V]{value: value, expiration: c.now().Add(ttl)}
	return value, nil
}

func (c *InMemoryCache[V]) Delete(key string) {
	c.mu.Lock()
	item, found := c.items[key]
	delete(c.items, key)
	c.mu.Unlock()

	if found {
		c.evicted(map[string]*cacheItem[V]{key: item})
	}
}

func (c *InMemoryCache[V]) Clear() {
	c.mu.Lock()
	old := c.items
	c.items = make(map[string]*cacheItem[V])
	c.mu.Unlock()

	c.evicted(old)
}

func (c *InMemoryCache[V]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}

func (c *InMemoryCache[V]) Stop() {
	c.stopOnce.Do(func() { close(c.stopCleanup) })
}

func (c *InMemoryCache[V]) startCleanup() {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stopCleanup:
			return
		}
	}
}

// cleanup removes expired entries
func (c *InMemoryCache[V]) cleanup() {
	c.mu.Lock()
	now := c.now()
	expired := make(map[string]*cacheItem[V])
	for key, item := range c.items {
		if item.isExpired(now) {
			expired[key] = item
			delete(c.items, key)
		}
	}
	c.mu.Unlock()

	c.evicted(expired)
}

func (c *InMemoryCache[V]) evicted(items map[string]*cacheItem[V]) {
	if c.onEvict == nil {
		return
	}
	for key, item := range items {
		c.onEvict(key, item.value)
	}
}
