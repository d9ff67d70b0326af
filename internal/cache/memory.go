package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
	timer     *time.Timer
}

// MemoryCache is an in-process Cache. Every entry carries its own expiry and
// an eviction timer; Get also checks the expiry so a late timer never serves
// stale data.
type MemoryCache struct {
	mu         sync.Mutex
	entries    map[string]*memoryEntry
	defaultTTL time.Duration
	now        func() time.Time
	closed     bool
}

type MemoryOption func(*MemoryCache)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(c *MemoryCache) {
		c.now = now
	}
}

func NewMemoryCache(defaultTTL time.Duration, opts ...MemoryOption) *MemoryCache {
	c := &MemoryCache{
		entries:    make(map[string]*memoryEntry),
		defaultTTL: defaultTTL,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *MemoryCache) Get(_ context.Context, key string, value any) (bool, error) {
	c.mu.Lock()
	entry, ok := c.entries[key]
	if ok && !c.now().Before(entry.expiresAt) {
		c.removeLocked(key)
		ok = false
	}
	c.mu.Unlock()

	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(entry.data, value); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache data for key %s: %w", key, err)
	}

	return true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for key %s: %w", key, err)
	}

	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return fmt.Errorf("cache is closed")
	}

	c.removeLocked(key)

	entry := &memoryEntry{data: data, expiresAt: c.now().Add(ttl)}
	entry.timer = time.AfterFunc(ttl, func() { c.evict(key, entry) })
	c.entries[key] = entry

	return nil
}

func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	c.removeLocked(key)
	c.mu.Unlock()

	return nil
}

func (c *MemoryCache) DeletePrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			c.removeLocked(key)
		}
	}

	return nil
}

// Len counts stored entries, expired ones included until they are evicted.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

func (c *MemoryCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		c.removeLocked(key)
	}
	c.closed = true

	return nil
}

// evict runs on the timer goroutine. The entry is only removed if it has not
// been replaced in the meantime.
func (c *MemoryCache) evict(key string, entry *memoryEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if current, ok := c.entries[key]; ok && current == entry {
		delete(c.entries, key)
	}
}

func (c *MemoryCache) removeLocked(key string) {
	if entry, ok := c.entries[key]; ok {
		entry.timer.Stop()
		delete(c.entries, key)
	}
}
