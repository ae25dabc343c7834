package recs

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestMemoryConditionCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryConditionCache()

	if _, ok := c.Get(ctx, "40.71,-74.01"); ok {
		t.Fatalf("expected miss on empty cache")
	}

	c.Put(ctx, "40.71,-74.01", ConditionRain, time.Minute)
	got, ok := c.Get(ctx, "40.71,-74.01")
	if !ok || got != ConditionRain {
		t.Fatalf("Get=(%q,%v), want (%q,true)", got, ok, ConditionRain)
	}
}

func TestMemoryConditionCacheExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := &memoryConditionCache{
		entries: map[string]memoryCacheEntry{},
		now:     func() time.Time { return now },
	}

	c.Put(ctx, "k", ConditionSnow, 5*time.Minute)
	if got, ok := c.Get(ctx, "k"); !ok || got != ConditionSnow {
		t.Fatalf("expected live entry, got (%q,%v)", got, ok)
	}

	now = now.Add(5*time.Minute + time.Second)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatalf("expected expired entry to miss")
	}
	// Expired entry was dropped lazily.
	if _, present := c.entries["k"]; present {
		t.Fatalf("expired entry should have been evicted")
	}

	// Replacement after expiry, never in-place mutation.
	c.Put(ctx, "k", ConditionClear, time.Minute)
	if got, ok := c.Get(ctx, "k"); !ok || got != ConditionClear {
		t.Fatalf("expected replaced entry, got (%q,%v)", got, ok)
	}
}

func TestMemoryConditionCacheZeroTTLIsNoop(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryConditionCache()
	c.Put(ctx, "k", ConditionRain, 0)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatalf("zero ttl should not store")
	}
}

func TestMemoryConditionCacheConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryConditionCache()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Put(ctx, "shared", ConditionSunny, time.Minute)
				if got, ok := c.Get(ctx, "shared"); ok && got != ConditionSunny {
					t.Errorf("unexpected value %q", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}
