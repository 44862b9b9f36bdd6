package di

import (
	"context"
	"sync"
	"time"
)

// TTLCache is the in-process ports.Cache used for stored mind maps. Expired
// entries are dropped lazily on read and by a background sweep.
type TTLCache struct {
	mu    sync.RWMutex
	items map[string]cacheItem
	now   func() time.Time

	stopCh   chan struct{}
	stopOnce sync.Once
}

type cacheItem struct {
	value     interface{}
	expiresAt time.Time
}

// NewTTLCache creates a cache and starts its sweeper. A non-positive sweep
// interval disables the sweeper.
func NewTTLCache(sweepInterval time.Duration) *TTLCache {
	c := &TTLCache{
		items:  make(map[string]cacheItem),
		now:    time.Now,
		stopCh: make(chan struct{}),
	}
	if sweepInterval > 0 {
		go c.sweepLoop(sweepInterval)
	}
	return c
}

// Get retrieves a live value
func (c *TTLCache) Get(ctx context.Context, key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, exists := c.items[key]
	if !exists || !c.now().Before(item.expiresAt) {
		return nil, false
	}
	return item.value, true
}

// Set stores a value with a TTL in seconds
func (c *TTLCache) Set(ctx context.Context, key string, value interface{}, ttl int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = cacheItem{
		value:     value,
		expiresAt: c.now().Add(time.Duration(ttl) * time.Second),
	}
	return nil
}

func (c *TTLCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
	return nil
}

// Sweep removes expired entries and reports how many were dropped
func (c *TTLCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, item := range c.items {
		if !now.Before(item.expiresAt) {
			delete(c.items, key)
			removed++
		}
	}
	return removed
}

// Stop ends the sweeper; it is safe to call more than once
func (c *TTLCache) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

func (c *TTLCache) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.Sweep()
		}
	}
}
