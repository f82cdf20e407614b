package cache

import (
	"sync"
	"time"

	"github.com/Nullybeats/tampamixtape/model"
)

// DefaultStatsTTL is how long a merged stats document stays fresh.
const DefaultStatsTTL = 15 * time.Minute

type entry struct {
	doc       *model.ArtistStats
	expiresAt time.Time
}

// StatsCache is a process-wide TTL cache for merged stats documents.
// Expiry is lazy: an entry is dropped when a read finds it stale. There is no
// size bound and no eviction besides the TTL.
type StatsCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry
}

// NewStatsCache creates a cache with the given TTL.
func NewStatsCache(ttl time.Duration) *StatsCache {
	return &StatsCache{
		ttl:     ttl,
		entries: make(map[string]entry),
	}
}

// Get returns the cached document for key, if present and fresh. The stored
// document itself is returned; callers must not mutate it.
func (c *StatsCache) Get(key string) (*model.ArtistStats, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return e.doc, true
}

// Set stores doc under key, replacing any prior entry.
func (c *StatsCache) Set(key string, doc *model.ArtistStats) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		doc:       doc,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Clear drops every entry.
func (c *StatsCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry)
}

// Len reports the number of entries, including ones past their TTL that no
// read has dropped yet.
func (c *StatsCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}
