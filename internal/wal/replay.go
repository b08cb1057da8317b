// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package wal

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/luxboard/luxboard/internal/logging"
	"github.com/luxboard/luxboard/internal/metrics"
)

// PublishFunc hands a pending entry back to the broker.
type PublishFunc func(ctx context.Context, entry *Entry) error

// ReplayPending republishes every pending entry through publish and
// confirms the ones that go through. Entries that have exhausted their
// delivery attempts are dropped to the dead letter log. It returns the
// number of entries successfully republished.
//
// Run once at startup to recover events accepted before a crash, and on
// an interval by RetryService for entries the broker rejected.
func (w *BadgerWAL) ReplayPending(ctx context.Context, publish PublishFunc) (int, error) {
	start := time.Now()

	entries, err := w.GetPending(ctx, 0)
	if err != nil {
		return 0, err
	}

	el := logging.NewEventLogger()
	var replayed, failed, dropped int
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return replayed, err
		}
		if !w.TryClaimEntry(entry.ID) {
			continue
		}

		if w.cfg.MaxAttempts > 0 && entry.Attempts >= w.cfg.MaxAttempts {
			cause := errors.New("delivery attempts exhausted")
			if entry.LastError != "" {
				cause = errors.New(entry.LastError)
			}
			el.LogDLQEntry(entry.ID, cause, entry.Attempts)
			if err := w.DeleteEntry(ctx, entry.ID); err != nil {
				logging.Warn().Err(err).Str("entry_id", entry.ID).Msg("Failed to drop exhausted wal entry")
				w.ReleaseEntry(entry.ID)
			}
			dropped++
			continue
		}

		if err := publish(ctx, entry); err != nil {
			if uerr := w.UpdateAttempt(ctx, entry.ID, err); uerr != nil {
				logging.Warn().Err(uerr).Str("entry_id", entry.ID).Msg("Failed to record wal attempt")
			}
			w.ReleaseEntry(entry.ID)
			failed++
			continue
		}

		if err := w.Confirm(ctx, entry.ID); err != nil {
			logging.Warn().Err(err).Str("entry_id", entry.ID).Msg("Failed to confirm replayed wal entry")
			w.ReleaseEntry(entry.ID)
			continue
		}
		replayed++
	}

	metrics.RecordWALReplay(replayed, time.Since(start))
	if n, err := w.pendingCount(ctx); err == nil {
		metrics.UpdateWALPending(n)
	}

	if len(entries) > 0 {
		logging.Info().
			Int("pending", len(entries)).
			Int("replayed", replayed).
			Int("failed", failed).
			Int("dropped", dropped).
			Dur("duration", time.Since(start)).
			Msg("WAL replay pass finished")
	}
	return replayed, nil
}

// RetryService periodically replays pending entries until its context
// is cancelled. It runs under the supervision tree.
type RetryService struct {
	wal      *BadgerWAL
	publish  PublishFunc
	interval time.Duration
}

// NewRetryService builds a retry loop over w using its configured
// interval.
func NewRetryService(w *BadgerWAL, publish PublishFunc) *RetryService {
	interval := w.cfg.RetryInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &RetryService{wal: w, publish: publish, interval: interval}
}

func (s *RetryService) String() string { return "wal-retry" }

// Serve implements suture.Service.
func (s *RetryService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			_, err := s.wal.ReplayPending(ctx, s.publish)
			if err != nil && !errors.Is(err, context.Canceled) {
				logging.Warn().Err(err).Msg("WAL retry pass failed")
			}
		}
	}
}

func (w *BadgerWAL) pendingCount(ctx context.Context) (int64, error) {
	if err := w.guard(ctx); err != nil {
		return 0, err
	}

	var n int64
	err := w.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(pendingPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}
