package memory

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	expiresAt time.Time
	value     []byte
}

// Cache is an in-memory, TTL-bounded cache
type Cache struct {
	now  func() time.Time
	data map[string]entry

	mu sync.RWMutex
}

// NewCache creates a new in-memory cache
func NewCache() *Cache {
	return &Cache{
		now:  time.Now,
		data: make(map[string]entry),
	}
}

func (c *Cache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	e, ok := c.data[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}

	if !c.now().Before(e.expiresAt) {
		c.mu.Lock()

		// Re-check, the entry could have been refreshed
		if cur, ok := c.data[key]; ok && !c.now().Before(cur.expiresAt) {
			delete(c.data, key)
		}

		c.mu.Unlock()

		return nil, false, nil
	}

	out := make([]byte, len(e.value))
	copy(out, e.value)

	return out, true, nil
}

func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	elem := entry{
		expiresAt: c.now().Add(ttl),
		value:     make([]byte, len(value)),
	}

	copy(elem.value, value)

	c.mu.Lock()
	c.data[key] = elem // last write wins
	c.mu.Unlock()

	return nil
}

// Len returns the number of stored entries, expired ones included
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.data)
}
