// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package eventprocessor

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/luxboard/luxboard/internal/database"
	"github.com/luxboard/luxboard/internal/logging"
	"github.com/luxboard/luxboard/internal/metrics"
	"github.com/luxboard/luxboard/internal/models"
)

// EventStore persists batches of beacon interactions. Implemented by
// the DuckDB store; both methods return (inserted, duplicates).
type EventStore interface {
	InsertScansBatch(ctx context.Context, scans []models.Scan, source string) (int, int, error)
	InsertClicksBatch(ctx context.Context, clicks []models.Click, source string) (int, int, error)
}

// StaleMarker is notified after events reach the store, so the
// analytics snapshot can be refreshed.
type StaleMarker interface {
	MarkStale()
}

// BatcherStats holds runtime statistics for monitoring.
type BatcherStats struct {
	EventsReceived int64         // events handed to Append
	EventsFlushed  int64         // events written to the store
	ScansInserted  int64         // scan rows actually inserted
	ClicksInserted int64         // click rows actually inserted
	Duplicates     int64         // rows the store rejected as duplicates
	FlushCount     int64         // completed flush operations
	ErrorCount     int64         // failed flushes
	LastFlushTime  time.Time     // time of last successful flush
	LastError      string        // last flush error message
	BufferSize     int           // events currently buffered
	AvgFlushTime   time.Duration // mean flush duration
}

// Batcher buffers beacon events and writes them to the store in
// batches, when the buffer reaches the batch size or the flush interval
// elapses. On a failed flush the unwritten events stay buffered for the
// next attempt.
//
// Flushes are serialized so timer-based and size-triggered flushes
// never interleave inserts.
type Batcher struct {
	store  EventStore
	stale  StaleMarker
	config BatcherConfig

	mu     sync.Mutex
	buffer []*BeaconEvent

	flushMu sync.Mutex

	closed   atomic.Bool
	started  atomic.Bool
	stopChan chan struct{}
	doneChan chan struct{}
	flushWg  sync.WaitGroup

	eventsReceived atomic.Int64
	eventsFlushed  atomic.Int64
	scansInserted  atomic.Int64
	clicksInserted atomic.Int64
	duplicates     atomic.Int64
	flushCount     atomic.Int64
	errorCount     atomic.Int64
	lastFlushTime  atomic.Value // time.Time
	lastError      atomic.Value // string
	totalFlushTime atomic.Int64 // nanoseconds
}

// NewBatcher creates a batcher writing to store. The stale marker may
// be nil.
func NewBatcher(store EventStore, stale StaleMarker, cfg BatcherConfig) (*Batcher, error) {
	if store == nil {
		return nil, fmt.Errorf("store required")
	}
	if cfg.BatchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive")
	}
	if cfg.FlushInterval <= 0 {
		return nil, fmt.Errorf("flush interval must be positive")
	}

	b := &Batcher{
		store:    store,
		stale:    stale,
		config:   cfg,
		buffer:   make([]*BeaconEvent, 0, cfg.BatchSize),
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
	b.lastFlushTime.Store(time.Time{})
	b.lastError.Store("")
	return b, nil
}

// Start begins the periodic flush timer. Idempotent.
func (b *Batcher) Start(ctx context.Context) error {
	if b.closed.Load() {
		return fmt.Errorf("batcher is closed")
	}
	if b.started.Swap(true) {
		return nil
	}

	go b.flushLoop(ctx)
	return nil
}

// Append adds an event to the buffer. Reaching the batch size triggers
// an async flush.
func (b *Batcher) Append(ctx context.Context, event *BeaconEvent) error {
	if b.closed.Load() {
		return fmt.Errorf("batcher is closed")
	}

	b.mu.Lock()
	b.buffer = append(b.buffer, event)
	needsFlush := len(b.buffer) >= b.config.BatchSize
	b.mu.Unlock()
	b.eventsReceived.Add(1)

	if needsFlush {
		b.flushWg.Add(1)
		go func() {
			defer b.flushWg.Done()
			// The caller's context belongs to the message handler and
			// may be cancelled the moment the handler returns, while
			// the flush still has to reach the store.
			flushCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			b.doFlush(flushCtx)
		}()
	}
	return nil
}

// Flush writes all buffered events, waiting first for in-flight async
// flushes.
func (b *Batcher) Flush(ctx context.Context) error {
	b.flushWg.Wait()
	return b.doFlushSync(ctx)
}

// Close stops the batcher and flushes pending events. Idempotent.
func (b *Batcher) Close() error {
	if b.closed.Swap(true) {
		return nil
	}

	if b.started.Load() {
		close(b.stopChan)
		<-b.doneChan
	}
	b.flushWg.Wait()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return b.doFlushSync(ctx)
}

// Stats returns current runtime statistics.
func (b *Batcher) Stats() BatcherStats {
	b.mu.Lock()
	bufferSize := len(b.buffer)
	b.mu.Unlock()

	var avgFlushTime time.Duration
	if count := b.flushCount.Load(); count > 0 {
		avgFlushTime = time.Duration(b.totalFlushTime.Load() / count)
	}
	lastFlushTime, _ := b.lastFlushTime.Load().(time.Time)
	lastError, _ := b.lastError.Load().(string)

	return BatcherStats{
		EventsReceived: b.eventsReceived.Load(),
		EventsFlushed:  b.eventsFlushed.Load(),
		ScansInserted:  b.scansInserted.Load(),
		ClicksInserted: b.clicksInserted.Load(),
		Duplicates:     b.duplicates.Load(),
		FlushCount:     b.flushCount.Load(),
		ErrorCount:     b.errorCount.Load(),
		LastFlushTime:  lastFlushTime,
		LastError:      lastError,
		BufferSize:     bufferSize,
		AvgFlushTime:   avgFlushTime,
	}
}

func (b *Batcher) flushLoop(ctx context.Context) {
	defer close(b.doneChan)

	ticker := time.NewTicker(b.config.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-b.stopChan:
			return
		case <-ticker.C:
			// The supervisor context only controls shutdown; it must
			// not impose its deadline on an individual flush.
			flushCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			b.doFlush(flushCtx)
			cancel()
		}
	}
}

func (b *Batcher) doFlush(ctx context.Context) {
	if err := b.doFlushSync(ctx); err != nil {
		logging.Debug().Err(err).Msg("Async batch flush failed")
	}
}

// doFlushSync writes the buffer out in batch-sized chunks. On an error
// the unwritten tail is restored to the buffer for retry.
func (b *Batcher) doFlushSync(ctx context.Context) error {
	b.flushMu.Lock()
	defer b.flushMu.Unlock()

	b.mu.Lock()
	if len(b.buffer) == 0 {
		b.mu.Unlock()
		return nil
	}
	events := b.buffer
	b.buffer = make([]*BeaconEvent, 0, b.config.BatchSize)
	b.mu.Unlock()

	totalFlushed := 0
	totalStart := time.Now()

	for start := 0; start < len(events); start += b.config.BatchSize {
		end := start + b.config.BatchSize
		if end > len(events) {
			end = len(events)
		}
		chunk := events[start:end]

		chunkStart := time.Now()
		err := b.writeChunk(ctx, chunk)
		chunkElapsed := time.Since(chunkStart)

		if err != nil {
			unflushed := events[start:]
			b.mu.Lock()
			b.buffer = append(unflushed, b.buffer...)
			b.mu.Unlock()

			b.errorCount.Add(1)
			b.lastError.Store(err.Error())
			if totalFlushed > 0 {
				b.eventsFlushed.Add(int64(totalFlushed))
				b.flushCount.Add(1)
			}
			return fmt.Errorf("flush events (chunk %d-%d): %w", start, end, err)
		}

		totalFlushed += len(chunk)
		metrics.RecordNATSBatchFlush(chunkElapsed, len(chunk))
	}

	totalElapsed := time.Since(totalStart)
	logging.Debug().
		Int("count", totalFlushed).
		Dur("elapsed", totalElapsed).
		Msg("Flushed beacon events to store")

	b.eventsFlushed.Add(int64(totalFlushed))
	b.flushCount.Add(1)
	b.totalFlushTime.Add(totalElapsed.Nanoseconds())
	b.lastFlushTime.Store(time.Now())
	b.lastError.Store("")

	if b.stale != nil {
		b.stale.MarkStale()
	}
	return nil
}

// writeChunk splits a chunk into scan and click batches and writes
// both.
func (b *Batcher) writeChunk(ctx context.Context, chunk []*BeaconEvent) error {
	var scans []models.Scan
	var clicks []models.Click
	for _, event := range chunk {
		switch event.Kind {
		case KindScan:
			scans = append(scans, event.ToScan())
		case KindClick:
			clicks = append(clicks, event.ToClick())
		}
	}

	if len(scans) > 0 {
		inserted, dups, err := b.store.InsertScansBatch(ctx, scans, database.SourceEvent)
		if err != nil {
			return fmt.Errorf("insert scans: %w", err)
		}
		b.scansInserted.Add(int64(inserted))
		b.duplicates.Add(int64(dups))
	}
	if len(clicks) > 0 {
		inserted, dups, err := b.store.InsertClicksBatch(ctx, clicks, database.SourceEvent)
		if err != nil {
			return fmt.Errorf("insert clicks: %w", err)
		}
		b.clicksInserted.Add(int64(inserted))
		b.duplicates.Add(int64(dups))
	}
	return nil
}
