// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package cache

import (
	"sync"
	"time"
)

// dedupeEntry is a node in the dedupe recency list.
type dedupeEntry struct {
	id        string
	seenAt    time.Time
	expiresAt time.Time
	prev      *dedupeEntry
	next      *dedupeEntry
}

// EventDedupe remembers recently seen event ids inside a time window.
// The event pipeline checks it before applying an event so redelivered
// messages cannot double-count interactions, independent of the
// broker's own duplicate window. Capacity-bounded: when full, the
// least recently seen id is forgotten first.
type EventDedupe struct {
	mu       sync.Mutex
	capacity int
	window   time.Duration
	items    map[string]*dedupeEntry
	head     *dedupeEntry
	tail     *dedupeEntry

	hits   int64
	misses int64
}

// NewEventDedupe creates a dedupe cache holding up to capacity ids,
// each remembered for window.
func NewEventDedupe(capacity int, window time.Duration) *EventDedupe {
	if capacity <= 0 {
		capacity = 10000
	}
	if window <= 0 {
		window = 5 * time.Minute
	}

	d := &EventDedupe{
		capacity: capacity,
		window:   window,
		items:    make(map[string]*dedupeEntry, capacity),
		head:     &dedupeEntry{},
		tail:     &dedupeEntry{},
	}
	d.head.next = d.tail
	d.tail.prev = d.head
	return d
}

// Seen reports whether id was recorded inside the window and records
// it if not. The check and the insert are one atomic step so two
// concurrent deliveries of the same id cannot both pass.
func (d *EventDedupe) Seen(id string) bool {
	now := time.Now()

	d.mu.Lock()
	defer d.mu.Unlock()

	if e, ok := d.items[id]; ok {
		if now.Before(e.expiresAt) {
			d.hits++
			return true
		}
		d.removeLocked(e)
	}

	if len(d.items) >= d.capacity {
		if lru := d.tail.prev; lru != d.head {
			d.removeLocked(lru)
		}
	}

	e := &dedupeEntry{
		id:        id,
		seenAt:    now,
		expiresAt: now.Add(d.window),
	}
	d.items[id] = e
	d.pushFrontLocked(e)
	d.misses++
	return false
}

// FirstSeen returns when id was recorded, if it is still inside the
// window. Lookup does not refresh recency.
func (d *EventDedupe) FirstSeen(id string) (time.Time, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	e, ok := d.items[id]
	if !ok || time.Now().After(e.expiresAt) {
		return time.Time{}, false
	}
	return e.seenAt, true
}

// Len returns the number of remembered ids, including any not yet
// lazily expired.
func (d *EventDedupe) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.items)
}

// Counters returns lifetime duplicate hits and first-time misses.
func (d *EventDedupe) Counters() (hits, misses int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.hits, d.misses
}

func (d *EventDedupe) pushFrontLocked(e *dedupeEntry) {
	e.prev = d.head
	e.next = d.head.next
	d.head.next.prev = e
	d.head.next = e
}

func (d *EventDedupe) removeLocked(e *dedupeEntry) {
	e.prev.next = e.next
	e.next.prev = e.prev
	delete(d.items, e.id)
}
