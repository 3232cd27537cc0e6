package fzmatch

import (
	"container/list"
	"sync"
)

// Cache provides LRU caching of ranked results per query.
// It is safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	maxSize int
	items   map[string]*list.Element
	lru     *list.List
}

type cacheEntry struct {
	query   string
	results []Result
}

// NewCache creates an LRU cache holding at most maxSize queries.
func NewCache(maxSize int) *Cache {
	if maxSize <= 0 {
		maxSize = 100
	}
	return &Cache{
		maxSize: maxSize,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
	}
}

// Get retrieves cached results for a query, or nil on a miss.
// The returned slice is a copy; callers may mutate it freely.
func (c *Cache) Get(query string) []Result {
	// Misses are the common case; check them under the read lock.
	c.mu.RLock()
	_, ok := c.items[query]
	c.mu.RUnlock()
	if !ok {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Re-check: the entry may have been evicted between locks.
	elem, ok := c.items[query]
	if !ok {
		return nil
	}
	c.lru.MoveToFront(elem)

	entry := elem.Value.(*cacheEntry)
	return copyResults(entry.results)
}

// Set stores results for a query.
func (c *Cache) Set(query string, results []Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[query]; ok {
		c.lru.MoveToFront(elem)
		elem.Value.(*cacheEntry).results = copyResults(results)
		return
	}

	if c.lru.Len() >= c.maxSize {
		if oldest := c.lru.Back(); oldest != nil {
			c.lru.Remove(oldest)
			delete(c.items, oldest.Value.(*cacheEntry).query)
		}
	}

	c.items[query] = c.lru.PushFront(&cacheEntry{
		query:   query,
		results: copyResults(results),
	})
}

// Delete removes a specific query from the cache.
func (c *Cache) Delete(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[query]; ok {
		c.lru.Remove(elem)
		delete(c.items, query)
	}
}

// Clear removes all entries from the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element)
	c.lru.Init()
}

// Len returns the number of cached queries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lru.Len()
}

// copyResults deep-copies results so cached slices are never aliased by
// callers.
func copyResults(results []Result) []Result {
	copied := make([]Result, len(results))
	for i, r := range results {
		copied[i] = Result{Item: r.Item, Score: r.Score}
		if r.Positions != nil {
			copied[i].Positions = make([]int, len(r.Positions))
			copy(copied[i].Positions, r.Positions)
		}
	}
	return copied
}
