package cache

import (
	"sync"
	"time"
)

// Entry represents a cached item with expiration
type Entry[V any] struct {
	Value      V
	Expiration time.Time
	added      time.Time
}

// expired checks if the entry has expired at now
func (e *Entry[V]) expired(now time.Time) bool {
	if e.Expiration.IsZero() {
		return false // Never expires
	}
	return now.After(e.Expiration)
}

// Cache is a thread-safe in-memory cache with TTL support
type Cache[V any] struct {
	mu       sync.RWMutex
	items    map[string]*Entry[V]
	maxItems int
	ttl      time.Duration
	now      func() time.Time

	stop     chan struct{}
	stopOnce sync.Once

	// Metrics
	hits   int64
	misses int64
}

// Config holds cache configuration
type Config struct {
	MaxItems int
	TTL      time.Duration

	// CleanupInterval is the period of the expiry sweep. Zero disables it.
	CleanupInterval time.Duration
}

// Stats holds cache statistics
type Stats struct {
	Items   int
	Hits    int64
	Misses  int64
	HitRate float64 // percent
}

// DefaultConfig returns default cache configuration
func DefaultConfig() Config {
	return Config{
		MaxItems:        256,
		TTL:             10 * time.Minute,
		CleanupInterval: time.Minute,
	}
}

// New creates a new cache instance. Close stops its cleanup goroutine.
func New[V any](cfg Config) *Cache[V] {
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = 256
	}
	if cfg.TTL < 0 {
		cfg.TTL = 0
	}

	c := &Cache[V]{
		items:    make(map[string]*Entry[V]),
		maxItems: cfg.MaxItems,
		ttl:      cfg.TTL,
		now:      time.Now,
		stop:     make(chan struct{}),
	}

	if cfg.CleanupInterval > 0 {
		go c.cleanupLoop(cfg.CleanupInterval)
	}

	return c
}

// Get retrieves a value from the cache
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	entry, exists := c.items[key]
	if !exists {
		c.misses++
		return zero, false
	}

	if entry.expired(c.now()) {
		delete(c.items, key)
		c.misses++
		return zero, false
	}

	c.hits++
	return entry.Value, true
}

// Set stores a value in the cache with the default TTL
func (c *Cache[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with a custom TTL. A TTL of zero never expires.
func (c *Cache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()

	// Evict if at capacity: remove the oldest insertion
	if _, replacing := c.items[key]; !replacing && len(c.items) >= c.maxItems {
		c.evictOldest()
	}

	var exp time.Time
	if ttl > 0 {
		exp = now.Add(ttl)
	}

	c.items[key] = &Entry[V]{
		Value:      value,
		Expiration: exp,
		added:      now,
	}
}

// Delete removes a value from the cache
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Clear removes all items from the cache
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*Entry[V])
}

// Size returns the number of items in the cache
func (c *Cache[V]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Stats returns cache statistics
func (c *Cache[V]) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Stats{Items: len(c.items), Hits: c.hits, Misses: c.misses}
	if total := s.Hits + s.Misses; total > 0 {
		s.HitRate = float64(s.Hits) / float64(total) * 100
	}
	return s
}

// Close stops the cleanup goroutine. The cache stays usable.
func (c *Cache[V]) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// evictOldest removes the oldest entry (must be called with lock held)
func (c *Cache[V]) evictOldest() {
	var oldestKey string
	var oldestTime time.Time

	for key, entry := range c.items {
		if oldestKey == "" || entry.added.Before(oldestTime) {
			oldestKey = key
			oldestTime = entry.added
		}
	}

	if oldestKey != "" {
		delete(c.items, oldestKey)
	}
}

// cleanupLoop periodically removes expired entries
func (c *Cache[V]) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stop:
			return
		}
	}
}

// cleanup removes all expired entries
func (c *Cache[V]) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, entry := range c.items {
		if entry.expired(now) {
			delete(c.items, key)
		}
	}
}

// GetOrSet gets a value or computes and stores it if not present.
// Errors from fn are returned and nothing is stored.
func (c *Cache[V]) GetOrSet(key string, fn func() (V, error)) (V, error) {
	// Try to get first
	if val, ok := c.Get(key); ok {
		return val, nil
	}

	// Compute the value
	val, err := fn()
	if err != nil {
		var zero V
		return zero, err
	}

	// Store and return
	c.Set(key, val)
	return val, nil
}
