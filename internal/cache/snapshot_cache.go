package cache

import (
	"sync"
	"time"

	"github.com/guttosm/quotepulse/internal/domain/models"
	"github.com/jonboulle/clockwork"
)

// DefaultTTL is how long a snapshot stays fresh.
const DefaultTTL = 30 * time.Second

// Entry is one cached snapshot and the time it was stored.
type Entry struct {
	Snapshot   *models.Snapshot
	InsertedAt time.Time
}

// SnapshotCache is a TTL cache of snapshots keyed by request key.
//
// Entries are replaced, never mutated: Put swaps the pointer under the write
// lock, so concurrent readers see either the old or the new snapshot.
type SnapshotCache struct {
	mu      sync.RWMutex
	entries map[models.RequestKey]Entry
	ttl     time.Duration
	clock   clockwork.Clock
}

// New creates a cache. A nil clock means wall-clock time; ttl <= 0 means DefaultTTL.
func New(ttl time.Duration, clock clockwork.Clock) *SnapshotCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &SnapshotCache{
		entries: make(map[models.RequestKey]Entry),
		ttl:     ttl,
		clock:   clock,
	}
}

// Clock returns the clock used for expiry.
func (c *SnapshotCache) Clock() clockwork.Clock { return c.clock }

// TTL returns the configured time-to-live.
func (c *SnapshotCache) TTL() time.Duration { return c.ttl }

// Get returns the live snapshot for key. Expired entries are evicted.
func (c *SnapshotCache) Get(key models.RequestKey) (*models.Snapshot, bool) {
	now := c.clock.Now()

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.expired(e, now) {
		c.mu.Lock()
		// re-check: another writer may have refreshed the slot meanwhile
		if cur, ok := c.entries[key]; ok && c.expired(cur, now) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return e.Snapshot, true
}

// Put stores snap under key, replacing any prior entry.
func (c *SnapshotCache) Put(key models.RequestKey, snap *models.Snapshot) {
	e := Entry{Snapshot: snap, InsertedAt: c.clock.Now()}
	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
}

// Evict removes key.
func (c *SnapshotCache) Evict(key models.RequestKey) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Purge drops every expired entry and returns how many were removed.
func (c *SnapshotCache) Purge() int {
	now := c.clock.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k, e := range c.entries {
		if c.expired(e, now) {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

// Len returns the number of stored entries, live or not yet purged.
func (c *SnapshotCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *SnapshotCache) expired(e Entry, now time.Time) bool {
	return now.Sub(e.InsertedAt) >= c.ttl
}
