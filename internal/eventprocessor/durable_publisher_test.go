// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package eventprocessor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/luxboard/luxboard/internal/config"
	"github.com/luxboard/luxboard/internal/wal"
)

type fakePublisher struct {
	mu     sync.Mutex
	events []*BeaconEvent
	err    error
}

func (f *fakePublisher) PublishEvent(ctx context.Context, event *BeaconEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

func (f *fakePublisher) published() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

func (f *fakePublisher) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func openDurableWAL(t *testing.T) *wal.BadgerWAL {
	t.Helper()
	w, err := wal.Open(&config.WALConfig{
		Path:          t.TempDir(),
		SyncWrites:    false,
		RetryInterval: time.Second,
		MaxAttempts:   3,
		EntryTTL:      time.Hour,
	})
	if err != nil {
		t.Fatalf("wal.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func TestNewDurablePublisher_NilPublisher(t *testing.T) {
	if _, err := NewDurablePublisher(nil, nil); !errors.Is(err, ErrNilPublisher) {
		t.Errorf("NewDurablePublisher(nil) error = %v, want ErrNilPublisher", err)
	}
}

func TestDurablePublisher_PublishAndConfirm(t *testing.T) {
	fake := &fakePublisher{}
	w := openDurableWAL(t)
	dp, err := NewDurablePublisher(fake, w)
	if err != nil {
		t.Fatalf("NewDurablePublisher() error = %v", err)
	}

	ev := NewScanEvent("lx-0101", "cs-301-a", "client-01", time.Now())
	if err := dp.PublishBeaconEvent(context.Background(), ev); err != nil {
		t.Fatalf("PublishBeaconEvent() error = %v", err)
	}

	if got := fake.published(); got != 1 {
		t.Errorf("published = %d, want 1", got)
	}
	stats, err := w.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.PendingEntries != 0 {
		t.Errorf("PendingEntries = %d, want 0", stats.PendingEntries)
	}
	if stats.ConfirmedEntries != 1 {
		t.Errorf("ConfirmedEntries = %d, want 1", stats.ConfirmedEntries)
	}
}

func TestDurablePublisher_PublishFailureLeavesPending(t *testing.T) {
	fake := &fakePublisher{err: errors.New("stream unavailable")}
	w := openDurableWAL(t)
	dp, err := NewDurablePublisher(fake, w)
	if err != nil {
		t.Fatalf("NewDurablePublisher() error = %v", err)
	}

	ev := NewClickEvent(9001, "amber", time.Now())
	// The event landed in the WAL, so a broker outage is not the
	// caller's problem.
	if err := dp.PublishBeaconEvent(context.Background(), ev); err != nil {
		t.Fatalf("PublishBeaconEvent() error = %v, want nil", err)
	}

	stats, err := w.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.PendingEntries != 1 {
		t.Fatalf("PendingEntries = %d, want 1", stats.PendingEntries)
	}

	fake.setErr(nil)
	replayed, err := w.ReplayPending(context.Background(), dp.ReplayFunc())
	if err != nil {
		t.Fatalf("ReplayPending() error = %v", err)
	}
	if replayed != 1 {
		t.Errorf("replayed = %d, want 1", replayed)
	}
	if got := fake.published(); got != 1 {
		t.Errorf("published = %d, want 1", got)
	}
	stats, err = w.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.PendingEntries != 0 {
		t.Errorf("PendingEntries after replay = %d, want 0", stats.PendingEntries)
	}
	if ev2 := fake.events[0]; ev2.EventID != ev.EventID || ev2.Kind != KindClick {
		t.Errorf("replayed event = %+v, want original click %s", ev2, ev.EventID)
	}
}

func TestDurablePublisher_NoWALPropagatesError(t *testing.T) {
	fake := &fakePublisher{err: errors.New("stream unavailable")}
	dp, err := NewDurablePublisher(fake, nil)
	if err != nil {
		t.Fatalf("NewDurablePublisher() error = %v", err)
	}

	ev := NewScanEvent("lx-0101", "", "client-01", time.Now())
	if err := dp.PublishBeaconEvent(context.Background(), ev); err == nil {
		t.Error("PublishBeaconEvent() error = nil, want publish error without WAL")
	}

	fake.setErr(nil)
	if err := dp.PublishBeaconEvent(context.Background(), ev); err != nil {
		t.Errorf("PublishBeaconEvent() error = %v, want nil", err)
	}
}

func TestDurablePublisher_NilEvent(t *testing.T) {
	dp, err := NewDurablePublisher(&fakePublisher{}, nil)
	if err != nil {
		t.Fatalf("NewDurablePublisher() error = %v", err)
	}
	if err := dp.PublishBeaconEvent(context.Background(), nil); err != nil {
		t.Errorf("PublishBeaconEvent(nil) error = %v, want nil", err)
	}
}
