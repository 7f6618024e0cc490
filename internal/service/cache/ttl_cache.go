package cache

import (
	"sync"
	"time"
)

type entry struct {
	v       any
	created time.Time
	ttl     time.Duration
}

// TTLStore is a mutex-guarded in-memory store with per-entry TTL and an
// injected time source. An entry is valid iff now - created < ttl; expired
// entries behave exactly like absent ones. There is no background sweep:
// expired entries are dropped lazily on lookup.
type TTLStore struct {
	mu  sync.RWMutex
	m   map[string]entry
	now func() time.Time
}

// NewTTLStore creates a store using the given time source. A nil clock falls
// back to time.Now.
func NewTTLStore(now func() time.Time) *TTLStore {
	if now == nil {
		now = time.Now
	}
	return &TTLStore{m: make(map[string]entry), now: now}
}

func (c *TTLStore) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if e.ttl > 0 && c.now().Sub(e.created) >= e.ttl {
		c.mu.Lock()
		// re-check: a fresh Set may have raced the lazy delete
		if cur, ok := c.m[key]; ok && cur.created.Equal(e.created) {
			delete(c.m, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return e.v, true
}

func (c *TTLStore) Set(key string, v any, ttl time.Duration) {
	c.mu.Lock()
	c.m[key] = entry{v: v, created: c.now(), ttl: ttl}
	c.mu.Unlock()
}

func (c *TTLStore) Delete(key string) {
	c.mu.Lock()
	delete(c.m, key)
	c.mu.Unlock()
}

func (c *TTLStore) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
