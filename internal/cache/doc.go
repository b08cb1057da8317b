// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

// Package cache provides the in-memory caches Luxboard runs on.
//
// Cache is a bounded TTL response cache used in front of the analytics
// calculators. Entries expire after their TTL and the least recently
// used entry is evicted when capacity is reached, so a burst of
// distinct queries cannot grow memory without bound. The whole cache
// is cleared when the analytics snapshot reloads; keys therefore only
// need to distinguish requests, not data versions.
//
//	c := cache.New("analytics", 256, time.Minute)
//	key := cache.GenerateKey("trends", req)
//	if v, ok := c.Get(key); ok { ... }
//
// EventDedupe is a fixed-size LRU of recently seen event ids with a
// time window, used by the event pipeline as a second idempotency
// layer behind the broker's own duplicate detection.
//
// Both types are safe for concurrent use and report into the metrics
// package under their cache type name.
package cache
