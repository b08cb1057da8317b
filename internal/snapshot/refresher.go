// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package snapshot

import (
	"context"
	"time"

	"github.com/luxboard/luxboard/internal/config"
	"github.com/luxboard/luxboard/internal/logging"
)

const (
	defaultRefreshInterval    = 15 * time.Minute
	defaultStaleCheckInterval = 5 * time.Second
)

// RefreshService keeps the snapshot current. It implements
// suture.Service: stale-flag polls collapse write bursts into one
// rebuild per check interval, and a full-interval reload bounds
// snapshot age when nothing writes.
type RefreshService struct {
	manager            *Manager
	refreshInterval    time.Duration
	staleCheckInterval time.Duration
}

// NewRefreshService creates the refresher from the snapshot
// configuration.
func NewRefreshService(manager *Manager, cfg *config.SnapshotConfig) *RefreshService {
	s := &RefreshService{
		manager:            manager,
		refreshInterval:    defaultRefreshInterval,
		staleCheckInterval: defaultStaleCheckInterval,
	}
	if cfg != nil {
		if cfg.RefreshInterval > 0 {
			s.refreshInterval = cfg.RefreshInterval
		}
		if cfg.StaleCheckInterval > 0 {
			s.staleCheckInterval = cfg.StaleCheckInterval
		}
	}
	return s
}

func (s *RefreshService) String() string { return "snapshot-refresher" }

// Serve implements suture.Service. A missing snapshot is loaded
// immediately so a restarted service heals itself; reload failures are
// logged and retried on the next trigger.
func (s *RefreshService) Serve(ctx context.Context) error {
	if s.manager.Current() == nil {
		s.reload(ctx, "initial")
	}

	refresh := time.NewTicker(s.refreshInterval)
	defer refresh.Stop()
	staleCheck := time.NewTicker(s.staleCheckInterval)
	defer staleCheck.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-refresh.C:
			s.reload(ctx, "interval")
		case <-staleCheck.C:
			if s.manager.IsStale() {
				s.reload(ctx, "stale")
			}
		}
	}
}

func (s *RefreshService) reload(ctx context.Context, trigger string) {
	if err := s.manager.Reload(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		logging.Error().Err(err).Str("trigger", trigger).Msg("Snapshot reload failed")
	}
}
