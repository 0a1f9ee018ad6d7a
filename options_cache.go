package formstate

import (
	"container/list"
	"sync"
)

// ProgramCache stores compiled expression programs keyed by engine-prefixed
// expression strings.
type ProgramCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

// WithProgramCache registers a program cache on the form. Share one cache
// across forms that reuse the same expressions.
func WithProgramCache(cache ProgramCache) Option {
	return func(cfg *formConfig) {
		cfg.programCache = cache
	}
}

type lruEntry struct {
	key   string
	value any
}

// LRUProgramCache is a bounded, goroutine safe ProgramCache.
type LRUProgramCache struct {
	capacity int
	items    map[string]*list.Element
	eviction *list.List
	mu       sync.Mutex
}

// NewLRUProgramCache creates a cache holding at most capacity programs.
// Non-positive capacities fall back to 128.
func NewLRUProgramCache(capacity int) *LRUProgramCache {
	if capacity <= 0 {
		capacity = 128
	}
	return &LRUProgramCache{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		eviction: list.New(),
	}
}

// Get returns the cached program and marks it as recently used.
func (c *LRUProgramCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	elem, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.eviction.MoveToFront(elem)
	return elem.Value.(*lruEntry).value, true
}

// Set stores value, evicting the least recently used entry when full.
func (c *LRUProgramCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.items[key]; ok {
		c.eviction.MoveToFront(elem)
		elem.Value.(*lruEntry).value = value
		return
	}
	c.items[key] = c.eviction.PushFront(&lruEntry{key: key, value: value})
	if c.eviction.Len() > c.capacity {
		oldest := c.eviction.Back()
		c.eviction.Remove(oldest)
		delete(c.items, oldest.Value.(*lruEntry).key)
	}
}

// Len reports the number of cached programs.
func (c *LRUProgramCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eviction.Len()
}
