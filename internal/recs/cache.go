package recs

import (
	"context"
	"sync"
	"time"
)

// ConditionCache stores resolved conditions keyed by rounded coordinates.
// Entries are never mutated in place, only replaced wholesale; an expired
// entry is a miss and gets dropped lazily.
type ConditionCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Put(ctx context.Context, key string, condition string, ttl time.Duration)
}

type memoryCacheEntry struct {
	condition string
	expiresAt time.Time
}

type memoryConditionCache struct {
	mu      sync.RWMutex
	entries map[string]memoryCacheEntry
	now     func() time.Time
}

// NewMemoryConditionCache returns a process-local ConditionCache. A coarse
// lock is enough here: racing readers and one writer may at worst cost one
// redundant provider call, never corruption.
func NewMemoryConditionCache() ConditionCache {
	return &memoryConditionCache{
		entries: map[string]memoryCacheEntry{},
		now:     time.Now,
	}
}

func (c *memoryConditionCache) Get(_ context.Context, key string) (string, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return "", false
	}
	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		if cur, ok := c.entries[key]; ok && c.now().After(cur.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return "", false
	}
	return e.condition, true
}

func (c *memoryConditionCache) Put(_ context.Context, key string, condition string, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = memoryCacheEntry{condition: condition, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
}
