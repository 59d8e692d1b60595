package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryCounter is an in-process Counter for tests and single-node
// development runs. Expired keys are dropped lazily on access.
type MemoryCounter struct {
	mu          sync.Mutex
	counts      map[string]int64
	expirations map[string]time.Time

	now func() time.Time
}

func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{
		counts:      make(map[string]int64),
		expirations: make(map[string]time.Time),
		now:         time.Now,
	}
}

func (c *MemoryCounter) Incr(ctx context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if expiry, ok := c.expirations[key]; ok && c.now().After(expiry) {
		delete(c.counts, key)
		delete(c.expirations, key)
	}

	c.counts[key]++
	return c.counts[key], nil
}

func (c *MemoryCounter) Expire(ctx context.Context, key string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.expirations[key] = c.now().Add(ttl)
	return nil
}
