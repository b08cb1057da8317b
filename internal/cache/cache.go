// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/luxboard/luxboard/internal/metrics"
)

// entry is a cache slot threaded into the recency list.
type entry struct {
	key       string
	data      interface{}
	expiresAt time.Time
	prev      *entry
	next      *entry
}

// Cache is a thread-safe in-memory cache with TTL expiry and LRU
// eviction at capacity. Lookups and inserts are O(1); the doubly
// linked recency list makes eviction O(1) as well.
type Cache struct {
	mu       sync.Mutex
	name     string
	capacity int
	ttl      time.Duration
	items    map[string]*entry

	// head.next is the most recently used, tail.prev the least.
	head *entry
	tail *entry

	stats Stats
}

// Stats is a point-in-time snapshot of cache counters. It is served
// verbatim by the admin performance endpoint.
type Stats struct {
	Hits        int64     `json:"hits"`
	Misses      int64     `json:"misses"`
	Evictions   int64     `json:"evictions"`
	TotalKeys   int64     `json:"total_keys"`
	LastCleanup time.Time `json:"last_cleanup"`
}

// New creates a cache named for metrics reporting. capacity bounds the
// entry count; ttl is the default lifetime of an entry.
func New(name string, capacity int, ttl time.Duration) *Cache {
	if capacity <= 0 {
		capacity = 256
	}
	if ttl <= 0 {
		ttl = time.Minute
	}

	c := &Cache{
		name:     name,
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*entry, capacity),
		head:     &entry{},
		tail:     &entry{},
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	c.stats.LastCleanup = time.Now()
	return c
}

// Get returns the cached value for key. Expired entries are removed
// and reported as misses.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		c.stats.Misses++
		metrics.RecordCacheMiss(c.name)
		return nil, false
	}

	if time.Now().After(e.expiresAt) {
		c.removeLocked(e)
		c.stats.Misses++
		c.stats.Evictions++
		metrics.RecordCacheMiss(c.name)
		metrics.RecordCacheEviction(c.name, "ttl")
		return nil, false
	}

	c.moveToFrontLocked(e)
	c.stats.Hits++
	metrics.RecordCacheHit(c.name)
	return e.data, true
}

// Set stores value under key with the default TTL.
func (c *Cache) Set(key string, value interface{}) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores value under key with an explicit TTL. When the
// cache is full the least recently used entry makes room.
func (c *Cache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok {
		e.data = value
		e.expiresAt = time.Now().Add(ttl)
		c.moveToFrontLocked(e)
		return
	}

	if len(c.items) >= c.capacity {
		if lru := c.tail.prev; lru != c.head {
			c.removeLocked(lru)
			c.stats.Evictions++
			metrics.RecordCacheEviction(c.name, "capacity")
		}
	}

	e := &entry{
		key:       key,
		data:      value,
		expiresAt: time.Now().Add(ttl),
	}
	c.items[key] = e
	c.pushFrontLocked(e)
	c.stats.TotalKeys = int64(len(c.items))
	metrics.UpdateCacheSize(c.name, len(c.items))
}

// Delete removes key if present.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok {
		c.removeLocked(e)
		c.stats.Evictions++
		metrics.RecordCacheEviction(c.name, "invalidated")
	}
}

// Clear drops every entry. Called when the analytics snapshot reloads
// so stale responses cannot outlive the data they were computed from.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	evicted := int64(len(c.items))
	c.items = make(map[string]*entry, c.capacity)
	c.head.next = c.tail
	c.tail.prev = c.head
	c.stats.Evictions += evicted
	c.stats.TotalKeys = 0
	metrics.UpdateCacheSize(c.name, 0)
}

// Len returns the current entry count.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// GetStats returns a copy of the current counters.
func (c *Cache) GetStats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// HitRate returns the hit percentage over the cache's lifetime.
func (c *Cache) HitRate() float64 {
	stats := c.GetStats()
	total := stats.Hits + stats.Misses
	if total == 0 {
		return 0.0
	}
	return float64(stats.Hits) / float64(total) * 100.0
}

// CleanupLoop sweeps expired entries every interval until ctx is
// cancelled. Expiry is otherwise lazy, so running the loop is optional
// but keeps memory tight between requests.
func (c *Cache) CleanupLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

func (c *Cache) cleanup() {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()

	var evicted int64
	for _, e := range c.items {
		if now.After(e.expiresAt) {
			c.removeLocked(e)
			evicted++
		}
	}
	if evicted > 0 {
		c.stats.Evictions += evicted
		for i := int64(0); i < evicted; i++ {
			metrics.RecordCacheEviction(c.name, "ttl")
		}
	}
	c.stats.TotalKeys = int64(len(c.items))
	c.stats.LastCleanup = now
	metrics.UpdateCacheSize(c.name, len(c.items))
}

func (c *Cache) pushFrontLocked(e *entry) {
	e.prev = c.head
	e.next = c.head.next
	c.head.next.prev = e
	c.head.next = e
}

func (c *Cache) moveToFrontLocked(e *entry) {
	e.prev.next = e.next
	e.next.prev = e.prev
	c.pushFrontLocked(e)
}

func (c *Cache) removeLocked(e *entry) {
	e.prev.next = e.next
	e.next.prev = e.prev
	delete(c.items, e.key)
	c.stats.TotalKeys = int64(len(c.items))
}

// GenerateKey builds a compact cache key from a method name and its
// parameters. Parameters are serialized and hashed so arbitrarily
// large request structs produce fixed-size keys.
func GenerateKey(method string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", method, params)
	}
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", method, hash[:16])
}
