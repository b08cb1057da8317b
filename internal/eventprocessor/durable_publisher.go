// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package eventprocessor

import (
	"context"

	"github.com/luxboard/luxboard/internal/logging"
	"github.com/luxboard/luxboard/internal/wal"
)

// EventPublisher publishes a beacon event to the stream. Implemented by
// Publisher.
type EventPublisher interface {
	PublishEvent(ctx context.Context, event *BeaconEvent) error
}

// DurablePublisher wraps an EventPublisher with write-ahead logging.
// Accepted events survive broker outages and process crashes:
//
//  1. Write the event to the WAL.
//  2. Publish to NATS.
//  3. On success, confirm the WAL entry.
//  4. On failure, leave the entry pending; the WAL retry loop
//     republishes it.
//
// With a nil WAL the wrapper degrades to a plain publish.
type DurablePublisher struct {
	publisher EventPublisher
	wal       *wal.BadgerWAL
}

// NewDurablePublisher creates a durable publisher. w may be nil when
// the WAL is disabled.
func NewDurablePublisher(publisher EventPublisher, w *wal.BadgerWAL) (*DurablePublisher, error) {
	if publisher == nil {
		return nil, ErrNilPublisher
	}
	return &DurablePublisher{publisher: publisher, wal: w}, nil
}

// PublishBeaconEvent publishes the event with durability. When the
// publish fails but the event is safe in the WAL, it returns nil; the
// retry loop owns delivery from there.
func (p *DurablePublisher) PublishBeaconEvent(ctx context.Context, event *BeaconEvent) error {
	if event == nil {
		return nil
	}

	if p.wal == nil {
		return p.publisher.PublishEvent(ctx, event)
	}

	entryID, err := p.wal.Write(ctx, event)
	if err != nil {
		logging.Error().
			Str("event_id", event.EventID).
			Err(err).
			Msg("WAL write failed for beacon event")
		// Better to attempt delivery than to drop the event.
		return p.publisher.PublishEvent(ctx, event)
	}

	if err := p.publisher.PublishEvent(ctx, event); err != nil {
		logging.Warn().
			Str("event_id", event.EventID).
			Str("wal_entry_id", entryID).
			Err(err).
			Msg("Publish failed, event held in WAL for retry")
		return nil
	}

	if err := p.wal.Confirm(ctx, entryID); err != nil {
		logging.Warn().
			Str("wal_entry_id", entryID).
			Err(err).
			Msg("WAL confirm failed after publish")
	}
	return nil
}

// WAL returns the underlying write-ahead log, nil when disabled.
func (p *DurablePublisher) WAL() *wal.BadgerWAL {
	return p.wal
}

// ReplayFunc returns the publish callback the WAL replay and retry
// loops use to republish pending entries.
func (p *DurablePublisher) ReplayFunc() wal.PublishFunc {
	return func(ctx context.Context, entry *wal.Entry) error {
		var event BeaconEvent
		if err := entry.UnmarshalPayload(&event); err != nil {
			return err
		}
		return p.publisher.PublishEvent(ctx, &event)
	}
}
