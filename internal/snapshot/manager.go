// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package snapshot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/luxboard/luxboard/internal/analytics"
	"github.com/luxboard/luxboard/internal/logging"
	"github.com/luxboard/luxboard/internal/metrics"
)

// ErrNilLoader is returned when a manager is created without a loader.
var ErrNilLoader = errors.New("snapshot loader is nil")

// Loader materializes a fresh snapshot from the backing store.
type Loader interface {
	LoadSnapshot(ctx context.Context) (*analytics.Snapshot, error)
}

// Manager holds the current analytics snapshot. Reads never block on a
// reload: the new snapshot is built outside the lock and swapped in.
type Manager struct {
	loader Loader

	mu       sync.RWMutex
	current  *analytics.Snapshot
	version  int64
	loadedAt time.Time

	stale atomic.Bool

	hookMu sync.Mutex
	hooks  []func()
}

// NewManager creates a manager with no snapshot loaded. Call Reload (or
// let the RefreshService do it) before serving queries.
func NewManager(loader Loader) (*Manager, error) {
	if loader == nil {
		return nil, ErrNilLoader
	}
	return &Manager{loader: loader}, nil
}

// Get returns the current snapshot and its version. The snapshot is nil
// with version 0 before the first successful reload.
func (m *Manager) Get() (*analytics.Snapshot, int64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current, m.version
}

// Current returns the current snapshot or nil before the first load.
func (m *Manager) Current() *analytics.Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Version returns the version of the current snapshot.
func (m *Manager) Version() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.version
}

// LoadedAt returns when the current snapshot was swapped in.
func (m *Manager) LoadedAt() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loadedAt
}

// Reload builds a fresh snapshot and swaps it in. The old snapshot
// keeps serving reads until the swap; on error it stays in place.
func (m *Manager) Reload(ctx context.Context) error {
	start := time.Now()
	snap, err := m.loader.LoadSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	m.mu.Lock()
	m.current = snap
	m.version++
	version := m.version
	m.loadedAt = time.Now()
	m.mu.Unlock()

	m.stale.Store(false)
	duration := time.Since(start)
	metrics.RecordSnapshotBuild(version, duration, map[string]int{
		"scans":              len(snap.Scans),
		"clicks":             len(snap.Clicks),
		"projects":           len(snap.Projects),
		"ar_objects":         len(snap.Objects),
		"coordinate_systems": len(snap.CoordinateSystems),
		"light_configs":      len(snap.LightConfigs),
	})

	m.fireHooks()

	logging.Info().
		Int64("version", version).
		Dur("duration", duration).
		Int("scans", len(snap.Scans)).
		Int("clicks", len(snap.Clicks)).
		Int("projects", len(snap.Projects)).
		Msg("Snapshot reloaded")
	return nil
}

// MarkStale flags the snapshot for reload by the refresher. Safe to
// call from any goroutine, any number of times.
func (m *Manager) MarkStale() {
	m.stale.Store(true)
	metrics.MarkSnapshotStale(true)
}

// IsStale reports whether a reload has been requested since the last
// successful one.
func (m *Manager) IsStale() bool {
	return m.stale.Load()
}

// OnReload registers a hook fired after every successful reload. Used
// for cache invalidation.
func (m *Manager) OnReload(hook func()) {
	if hook == nil {
		return
	}
	m.hookMu.Lock()
	defer m.hookMu.Unlock()
	m.hooks = append(m.hooks, hook)
}

func (m *Manager) fireHooks() {
	m.hookMu.Lock()
	hooks := make([]func(), len(m.hooks))
	copy(hooks, m.hooks)
	m.hookMu.Unlock()

	for _, hook := range hooks {
		hook()
	}
}
