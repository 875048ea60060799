// Package cache provides a small in-memory cache the viewer uses to avoid
// re-reading and re-decoding artifact files on every request.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/tablescrape/tablescrape/models"
)

// entry holds cached records with their creation timestamp.
type entry struct {
	records   []models.Record
	createdAt time.Time
}

// Cache is a capacity-bounded in-memory cache. It is safe for concurrent use.
type Cache struct {
	mu         sync.RWMutex
	store      map[string]*entry
	maxEntries int
	ttl        time.Duration
}

// New creates a Cache. A background goroutine runs every 5 minutes to evict
// entries older than the TTL.
func New(maxEntries int, ttl time.Duration) *Cache {
	c := &Cache{
		store:      make(map[string]*entry),
		maxEntries: maxEntries,
		ttl:        ttl,
	}

	go c.cleanupLoop()
	return c
}

// Key generates a cache key from the artifact's category, file name, and
// modification time, so a rewritten file never serves stale records.
func Key(category, name string, modTime time.Time) string {
	h := sha256.New()
	h.Write([]byte(category))
	h.Write([]byte("|"))
	h.Write([]byte(name))
	h.Write([]byte("|"))
	h.Write([]byte(fmt.Sprintf("%d", modTime.UnixNano())))
	return hex.EncodeToString(h.Sum(nil))
}

// Get retrieves cached records if present and younger than the TTL.
func (c *Cache) Get(key string) ([]models.Record, bool) {
	c.mu.RLock()
	e, ok := c.store[key]
	c.mu.RUnlock()

	if !ok || time.Since(e.createdAt) > c.ttl {
		return nil, false
	}
	return e.records, true
}

// Set stores records in the cache. If the cache is at capacity, a random
// entry is evicted to make room (map iteration is random in Go).
func (c *Cache) Set(key string, records []models.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.store) >= c.maxEntries {
		for k := range c.store {
			delete(c.store, k)
			break
		}
	}

	c.store[key] = &entry{records: records, createdAt: time.Now()}
}

// cleanupLoop evicts expired entries every 5 minutes.
func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-c.ttl)
		c.mu.Lock()
		for k, e := range c.store {
			if e.createdAt.Before(cutoff) {
				delete(c.store, k)
			}
		}
		c.mu.Unlock()
	}
}
