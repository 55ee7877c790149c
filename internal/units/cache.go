package units

import (
	"sync"

	"github.com/GriffinCanCode/AgentOS/units/internal/schema"
)

type cacheKey struct {
	from string
	to   string
}

type cacheEntry struct {
	generation uint64
	m          LinearMap
}

// Cache memoizes resolved maps per (from, to) pair. Entries are tagged with the
// schema context generation they were resolved under and are ignored once the
// context changes. Concurrent resolutions of the same pair may both compute;
// the first stored result wins.
type Cache struct {
	entries sync.Map
}

// NewCache creates an empty cache
func NewCache() *Cache {
	return &Cache{}
}

// Get returns the map for the pair if it was resolved under generation
func (c *Cache) Get(from, to schema.ItemKey, generation uint64) (LinearMap, bool) {
	val, ok := c.entries.Load(cacheKey{from: from.ID(), to: to.ID()})
	if !ok {
		return LinearMap{}, false
	}
	entry := val.(*cacheEntry)
	if entry.generation != generation {
		return LinearMap{}, false
	}
	return entry.m, true
}

// Put stores m unless a map for the same generation is already present, and
// returns the map that is cached afterwards.
func (c *Cache) Put(from, to schema.ItemKey, generation uint64, m LinearMap) LinearMap {
	key := cacheKey{from: from.ID(), to: to.ID()}
	entry := &cacheEntry{generation: generation, m: m}

	for {
		val, loaded := c.entries.LoadOrStore(key, entry)
		if !loaded {
			return m
		}
		existing := val.(*cacheEntry)
		if existing.generation >= generation {
			if existing.generation == generation {
				return existing.m
			}
			return m
		}
		if c.entries.CompareAndSwap(key, existing, entry) {
			return m
		}
	}
}

// Len returns the number of cached pairs, including stale ones
func (c *Cache) Len() int {
	n := 0
	c.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Purge drops every entry
func (c *Cache) Purge() {
	c.entries.Range(func(key, _ any) bool {
		c.entries.Delete(key)
		return true
	})
}
