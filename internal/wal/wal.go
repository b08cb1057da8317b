// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package wal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/luxboard/luxboard/internal/config"
	"github.com/luxboard/luxboard/internal/logging"
	"github.com/luxboard/luxboard/internal/metrics"
)

var (
	// ErrWALClosed is returned when an operation is attempted on a
	// closed log.
	ErrWALClosed = errors.New("wal is closed")

	// ErrNilEvent is returned when a nil event is written.
	ErrNilEvent = errors.New("event must not be nil")

	// ErrEmptyEntryID is returned when an operation names no entry.
	ErrEmptyEntryID = errors.New("entry id must not be empty")

	// ErrEntryNotFound is returned when the named entry does not exist
	// in the pending set.
	ErrEntryNotFound = errors.New("entry not found")
)

const (
	pendingPrefix   = "pending:"
	confirmedPrefix = "confirmed:"
)

// Entry is a single logged event awaiting broker confirmation.
type Entry struct {
	ID            string          `json:"id"`
	Payload       json.RawMessage `json:"payload"`
	CreatedAt     time.Time       `json:"created_at"`
	Attempts      int             `json:"attempts"`
	LastAttemptAt *time.Time      `json:"last_attempt_at,omitempty"`
	LastError     string          `json:"last_error,omitempty"`
	Confirmed     bool            `json:"confirmed"`
	ConfirmedAt   *time.Time      `json:"confirmed_at,omitempty"`
}

// UnmarshalPayload decodes the logged event into v.
func (e *Entry) UnmarshalPayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// Stats summarizes the state of the log.
type Stats struct {
	PendingEntries   int64      `json:"pending_entries"`
	ConfirmedEntries int64      `json:"confirmed_entries"`
	TotalWritten     int64      `json:"total_written"`
	TotalConfirmed   int64      `json:"total_confirmed"`
	OldestPending    *time.Time `json:"oldest_pending,omitempty"`
}

// WAL is the durability contract the event pipeline writes through.
type WAL interface {
	Write(ctx context.Context, event any) (string, error)
	Confirm(ctx context.Context, entryID string) error
	GetPending(ctx context.Context, limit int) ([]*Entry, error)
	UpdateAttempt(ctx context.Context, entryID string, attemptErr error) error
	DeleteEntry(ctx context.Context, entryID string) error
	Stats(ctx context.Context) (*Stats, error)
	Close() error
}

// BadgerWAL implements WAL on an embedded Badger store.
type BadgerWAL struct {
	db  *badger.DB
	cfg *config.WALConfig

	mu     sync.RWMutex
	closed bool

	// processing tracks entry IDs claimed by an in-flight replay so
	// concurrent passes never publish the same entry twice.
	processing sync.Map

	totalWritten   atomic.Int64
	totalConfirmed atomic.Int64
}

// Open opens (or creates) the log at cfg.Path.
func Open(cfg *config.WALConfig) (*BadgerWAL, error) {
	if cfg == nil {
		return nil, fmt.Errorf("wal config must not be nil")
	}

	// Entries are small JSON blobs; modest table sizes keep the
	// store's memory footprint down.
	opts := badger.DefaultOptions(cfg.Path).
		WithSyncWrites(cfg.SyncWrites).
		WithLogger(nil).
		WithMemTableSize(16 << 20).
		WithValueLogFileSize(64 << 20)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening wal store at %s: %w", cfg.Path, err)
	}

	logging.Info().
		Str("path", cfg.Path).
		Bool("sync_writes", cfg.SyncWrites).
		Dur("entry_ttl", cfg.EntryTTL).
		Msg("Write-ahead log opened")

	return &BadgerWAL{db: db, cfg: cfg}, nil
}

// Write persists event as a pending entry and returns its ID.
func (w *BadgerWAL) Write(ctx context.Context, event any) (string, error) {
	if err := w.guard(ctx); err != nil {
		return "", err
	}
	if event == nil {
		return "", ErrNilEvent
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("marshaling event: %w", err)
	}

	entry := Entry{
		ID:        uuid.New().String(),
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(&entry)
	if err != nil {
		return "", fmt.Errorf("marshaling entry: %w", err)
	}

	err = w.db.Update(func(txn *badger.Txn) error {
		return txn.Set(pendingKey(entry.ID), data)
	})
	if err != nil {
		return "", fmt.Errorf("writing entry %s: %w", entry.ID, err)
	}

	w.totalWritten.Add(1)
	metrics.RecordWALAppend()
	return entry.ID, nil
}

// Confirm moves a pending entry to the confirmed set, where it ages out
// after the configured TTL.
func (w *BadgerWAL) Confirm(ctx context.Context, entryID string) error {
	if err := w.guard(ctx); err != nil {
		return err
	}
	if entryID == "" {
		return ErrEmptyEntryID
	}

	err := w.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(pendingKey(entryID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrEntryNotFound
		}
		if err != nil {
			return err
		}

		var entry Entry
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		}); err != nil {
			return fmt.Errorf("decoding entry: %w", err)
		}

		now := time.Now().UTC()
		entry.Confirmed = true
		entry.ConfirmedAt = &now

		data, err := json.Marshal(&entry)
		if err != nil {
			return fmt.Errorf("encoding entry: %w", err)
		}

		confirmed := badger.NewEntry(confirmedKey(entryID), data)
		if w.cfg.EntryTTL > 0 {
			confirmed = confirmed.WithTTL(w.cfg.EntryTTL)
		}
		if err := txn.SetEntry(confirmed); err != nil {
			return err
		}
		return txn.Delete(pendingKey(entryID))
	})
	if err != nil {
		return err
	}

	w.processing.Delete(entryID)
	w.totalConfirmed.Add(1)
	metrics.RecordWALConfirm()
	return nil
}

// GetPending returns up to limit pending entries in key order. A limit
// of zero or less returns all of them. Undecodable entries are skipped.
func (w *BadgerWAL) GetPending(ctx context.Context, limit int) ([]*Entry, error) {
	if err := w.guard(ctx); err != nil {
		return nil, err
	}

	var entries []*Entry
	err := w.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(pendingPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if limit > 0 && len(entries) >= limit {
				break
			}
			var entry Entry
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &entry)
			})
			if err != nil {
				logging.Warn().
					Err(err).
					Str("key", string(it.Item().Key())).
					Msg("Skipping undecodable wal entry")
				continue
			}
			entries = append(entries, &entry)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning pending entries: %w", err)
	}
	return entries, nil
}

// UpdateAttempt records a failed delivery attempt against a pending
// entry.
func (w *BadgerWAL) UpdateAttempt(ctx context.Context, entryID string, attemptErr error) error {
	if err := w.guard(ctx); err != nil {
		return err
	}
	if entryID == "" {
		return ErrEmptyEntryID
	}

	return w.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(pendingKey(entryID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrEntryNotFound
		}
		if err != nil {
			return err
		}

		var entry Entry
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		}); err != nil {
			return fmt.Errorf("decoding entry: %w", err)
		}

		now := time.Now().UTC()
		entry.Attempts++
		entry.LastAttemptAt = &now
		if attemptErr != nil {
			entry.LastError = attemptErr.Error()
		}

		data, err := json.Marshal(&entry)
		if err != nil {
			return fmt.Errorf("encoding entry: %w", err)
		}
		return txn.Set(pendingKey(entryID), data)
	})
}

// DeleteEntry removes a pending entry without confirming it. Deleting
// an absent entry is not an error.
func (w *BadgerWAL) DeleteEntry(ctx context.Context, entryID string) error {
	if err := w.guard(ctx); err != nil {
		return err
	}
	if entryID == "" {
		return ErrEmptyEntryID
	}

	err := w.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(pendingKey(entryID))
	})
	if err != nil {
		return fmt.Errorf("deleting entry %s: %w", entryID, err)
	}
	w.processing.Delete(entryID)
	return nil
}

// Stats scans the store and reports its current state.
func (w *BadgerWAL) Stats(ctx context.Context) (*Stats, error) {
	if err := w.guard(ctx); err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalWritten:   w.totalWritten.Load(),
		TotalConfirmed: w.totalConfirmed.Load(),
	}
	err := w.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			key := it.Item().Key()
			switch {
			case bytes.HasPrefix(key, []byte(pendingPrefix)):
				stats.PendingEntries++
				if stats.OldestPending == nil {
					var entry Entry
					err := it.Item().Value(func(val []byte) error {
						return json.Unmarshal(val, &entry)
					})
					if err == nil {
						created := entry.CreatedAt
						stats.OldestPending = &created
					}
				}
			case bytes.HasPrefix(key, []byte(confirmedPrefix)):
				stats.ConfirmedEntries++
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning wal: %w", err)
	}
	return stats, nil
}

// TryClaimEntry marks an entry as being processed. It returns false
// when another goroutine already holds the claim.
func (w *BadgerWAL) TryClaimEntry(entryID string) bool {
	_, loaded := w.processing.LoadOrStore(entryID, struct{}{})
	return !loaded
}

// ReleaseEntry drops a processing claim without confirming the entry.
func (w *BadgerWAL) ReleaseEntry(entryID string) {
	w.processing.Delete(entryID)
}

// Close flushes and closes the underlying store.
func (w *BadgerWAL) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		done <- w.db.Close()
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("closing wal store: %w", err)
		}
		logging.Info().Msg("Write-ahead log closed")
		return nil
	case <-time.After(10 * time.Second):
		return fmt.Errorf("closing wal store: timed out")
	}
}

func (w *BadgerWAL) guard(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return ErrWALClosed
	}
	return nil
}

func pendingKey(entryID string) []byte {
	return []byte(pendingPrefix + entryID)
}

func confirmedKey(entryID string) []byte {
	return []byte(confirmedPrefix + entryID)
}
