package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryCacheExpiryWithClock(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mc := NewMemoryCache(WithMemoryClock(func() time.Time { return now }))
	defer mc.Close()

	ctx := context.Background()
	if err := mc.Set(ctx, "k", "v", time.Hour); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got string
	if err := mc.Get(ctx, "k", &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "v" {
		t.Fatalf("expected v, got %q", got)
	}

	now = now.Add(61 * time.Minute)
	if err := mc.Get(ctx, "k", &got); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected cache miss after expiry, got %v", err)
	}
}

func TestMemoryCacheLRUEviction(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mc := NewMemoryCache(
		WithMemoryMaxSize(2),
		WithMemoryClock(func() time.Time { return now }),
	)
	defer mc.Close()

	ctx := context.Background()
	_ = mc.Set(ctx, "a", "1", time.Hour)
	now = now.Add(time.Second)
	_ = mc.Set(ctx, "b", "2", time.Hour)
	now = now.Add(time.Second)

	// touch "a" so "b" becomes the LRU victim
	var s string
	_ = mc.Get(ctx, "a", &s)
	now = now.Add(time.Second)

	_ = mc.Set(ctx, "c", "3", time.Hour)

	if err := mc.Get(ctx, "b", &s); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected b evicted, got %v", err)
	}
	if err := mc.Get(ctx, "a", &s); err != nil {
		t.Fatalf("expected a retained: %v", err)
	}
}
