package reconcile

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// IndexCache holds built charge indices keyed by source name, with TTL expiry
// and stampede protection. A built index is immutable and read-only, so
// concurrent targeted audits can share one without contention.
type IndexCache struct {
	mu      sync.RWMutex
	entries map[string]*indexEntry
	sf      singleflight.Group
}

type indexEntry struct {
	index *ChargeIndex
	built time.Time
	ttl   time.Duration
}

// expired returns true once the entry has outlived its TTL. A zero TTL
// disables caching: the entry is always considered stale.
func (e *indexEntry) expired() bool {
	if e.ttl == 0 {
		return true
	}
	return time.Since(e.built) > e.ttl
}

// NewIndexCache creates an empty cache.
func NewIndexCache() *IndexCache {
	return &IndexCache{entries: make(map[string]*indexEntry)}
}

// Get returns the cached charge index for key, building it via load when
// missing or expired. Concurrent callers for the same key share a single
// build through singleflight.
func (c *IndexCache) Get(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]CustomerCharge, error)) (*ChargeIndex, error) {
	// Fast path: fresh entry already present.
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && !entry.expired() {
		return entry.index, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Double-check after winning the singleflight slot.
		c.mu.RLock()
		entry, ok := c.entries[key]
		c.mu.RUnlock()
		if ok && !entry.expired() {
			return entry.index, nil
		}

		charges, err := load(ctx)
		if err != nil {
			return nil, err
		}
		index := BuildChargeIndex(charges)

		c.mu.Lock()
		c.entries[key] = &indexEntry{index: index, built: time.Now(), ttl: ttl}
		c.mu.Unlock()
		return index, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*ChargeIndex), nil
}

// Invalidate drops the cached index for key, forcing the next Get to rebuild.
func (c *IndexCache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
