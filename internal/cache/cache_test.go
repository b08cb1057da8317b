// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestCache_SetGet(t *testing.T) {
	c := New("test", 16, time.Minute)

	c.Set("trends:abc", []int{1, 2, 3})
	got, ok := c.Get("trends:abc")
	if !ok {
		t.Fatal("Get() miss for freshly set key")
	}
	if vals, ok := got.([]int); !ok || len(vals) != 3 {
		t.Errorf("Get() = %v, want [1 2 3]", got)
	}

	if _, ok := c.Get("never-set"); ok {
		t.Error("Get() hit for unknown key")
	}
}

func TestCache_Expiry(t *testing.T) {
	c := New("test", 16, time.Minute)

	c.SetWithTTL("volatile", "x", 10*time.Millisecond)
	if _, ok := c.Get("volatile"); !ok {
		t.Fatal("entry expired immediately")
	}

	time.Sleep(25 * time.Millisecond)
	if _, ok := c.Get("volatile"); ok {
		t.Error("Get() hit after TTL elapsed")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after expiry, want 0", c.Len())
	}
}

func TestCache_CapacityEvictsLRU(t *testing.T) {
	c := New("test", 3, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	// Touch a so b becomes the least recently used.
	if _, ok := c.Get("a"); !ok {
		t.Fatal("Get(a) miss")
	}

	c.Set("d", 4)

	if _, ok := c.Get("b"); ok {
		t.Error("LRU entry b survived eviction")
	}
	for _, key := range []string{"a", "c", "d"} {
		if _, ok := c.Get(key); !ok {
			t.Errorf("Get(%s) miss, want hit", key)
		}
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
}

func TestCache_SetExistingUpdates(t *testing.T) {
	c := New("test", 2, time.Minute)

	c.Set("k", 1)
	c.Set("k", 2)
	if c.Len() != 1 {
		t.Fatalf("Len() = %d after overwrite, want 1", c.Len())
	}
	got, _ := c.Get("k")
	if got != 2 {
		t.Errorf("Get(k) = %v, want 2", got)
	}
}

func TestCache_DeleteAndClear(t *testing.T) {
	c := New("test", 16, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("Get(a) hit after Delete")
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", c.Len())
	}
	if _, ok := c.Get("b"); ok {
		t.Error("Get(b) hit after Clear")
	}

	// Cache works again after Clear.
	c.Set("c", 3)
	if _, ok := c.Get("c"); !ok {
		t.Error("Get(c) miss after post-Clear Set")
	}
}

func TestCache_Stats(t *testing.T) {
	c := New("test", 16, time.Minute)

	c.Set("a", 1)
	c.Get("a")
	c.Get("a")
	c.Get("missing")

	stats := c.GetStats()
	if stats.Hits != 2 {
		t.Errorf("Hits = %d, want 2", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("Misses = %d, want 1", stats.Misses)
	}
	if rate := c.HitRate(); rate < 66.0 || rate > 67.0 {
		t.Errorf("HitRate() = %v, want ~66.7", rate)
	}
}

func TestCache_HitRateEmpty(t *testing.T) {
	c := New("test", 16, time.Minute)
	if rate := c.HitRate(); rate != 0 {
		t.Errorf("HitRate() on empty cache = %v, want 0", rate)
	}
}

func TestCache_Concurrent(t *testing.T) {
	c := New("test", 128, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				key := fmt.Sprintf("k%d", j%32)
				c.Set(key, n)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	if c.Len() > 128 {
		t.Errorf("Len() = %d, exceeds capacity", c.Len())
	}
}

func TestGenerateKey(t *testing.T) {
	type req struct {
		From  string
		To    string
		Limit int
	}

	k1 := GenerateKey("trends", req{"2024-03-01", "2024-03-31", 10})
	k2 := GenerateKey("trends", req{"2024-03-01", "2024-03-31", 10})
	k3 := GenerateKey("trends", req{"2024-03-01", "2024-03-31", 20})
	k4 := GenerateKey("funnel", req{"2024-03-01", "2024-03-31", 10})

	if k1 != k2 {
		t.Error("same method and params produced different keys")
	}
	if k1 == k3 {
		t.Error("different params produced the same key")
	}
	if k1 == k4 {
		t.Error("different methods produced the same key")
	}
	if len(k1) > 100 {
		t.Errorf("len(key) = %d, want compact hashed key", len(k1))
	}
}
