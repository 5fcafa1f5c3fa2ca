// Package cache provides a small in-memory TTL cache used by the store for
// hot lookups (user records). Entries expire after DefaultTTL and a
// background janitor evicts them periodically.
package cache

import (
	"container/list"
	"sync"
	"time"
)

// Config holds the cache configuration.
type Config struct {
	// DefaultTTL is the lifetime of an entry after Set.
	DefaultTTL time.Duration
	// CleanupInterval is how often expired entries are evicted in the
	// background. Zero disables the janitor; expired entries are then only
	// dropped lazily on Get.
	CleanupInterval time.Duration
	// MaxItems bounds the cache size; the least recently set entry is
	// evicted when the bound is exceeded. Zero means unbounded.
	MaxItems int
	// OnEviction, if set, is called for each evicted or expired entry.
	OnEviction func(key string, value any)
}

type entry struct {
	key       string
	value     any
	expiresAt time.Time
}

// Cache is a concurrency-safe in-memory TTL cache.
type Cache struct {
	config Config

	mu    sync.Mutex
	items map[string]*list.Element
	order *list.List // front = most recently set

	stop chan struct{}
	once sync.Once
}

// New creates a new Cache and starts its janitor when CleanupInterval > 0.
func New(config Config) *Cache {
	c := &Cache{
		config: config,
		items:  make(map[string]*list.Element),
		order:  list.New(),
		stop:   make(chan struct{}),
	}
	if config.CleanupInterval > 0 {
		go c.janitor()
	}
	return c
}

// Get returns the value for key, or false when absent or expired.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	en := el.Value.(*entry)
	if time.Now().After(en.expiresAt) {
		c.removeLocked(el)
		return nil, false
	}
	return en.value, true
}

// Set stores value under key with the default TTL.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		en := el.Value.(*entry)
		en.value = value
		en.expiresAt = time.Now().Add(c.config.DefaultTTL)
		c.order.MoveToFront(el)
		return
	}

	el := c.order.PushFront(&entry{
		key:       key,
		value:     value,
		expiresAt: time.Now().Add(c.config.DefaultTTL),
	})
	c.items[key] = el

	if c.config.MaxItems > 0 && c.order.Len() > c.config.MaxItems {
		if oldest := c.order.Back(); oldest != nil {
			c.removeLocked(oldest)
		}
	}
}

// Delete removes key from the cache.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.removeLocked(el)
	}
}

// Len returns the number of entries, including not-yet-evicted expired ones.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Close stops the janitor goroutine.
func (c *Cache) Close() {
	c.once.Do(func() { close(c.stop) })
}

func (c *Cache) removeLocked(el *list.Element) {
	en := el.Value.(*entry)
	c.order.Remove(el)
	delete(c.items, en.key)
	if c.config.OnEviction != nil {
		c.config.OnEviction(en.key, en.value)
	}
}

func (c *Cache) janitor() {
	ticker := time.NewTicker(c.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.evictExpired()
		}
	}
}

func (c *Cache) evictExpired() {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()

	for el := c.order.Back(); el != nil; {
		prev := el.Prev()
		if en := el.Value.(*entry); now.After(en.expiresAt) {
			c.removeLocked(el)
		}
		el = prev
	}
}
