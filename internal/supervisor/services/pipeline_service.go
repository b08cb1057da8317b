// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package services

import (
	"context"
	"fmt"
)

// EventConsumer matches the eventprocessor.Consumer lifecycle.
type EventConsumer interface {
	Start(ctx context.Context) error
	Stop()
}

// BatchWriter matches the eventprocessor.Batcher lifecycle. Close
// performs the final flush.
type BatchWriter interface {
	Start(ctx context.Context) error
	Close() error
}

// PipelineService runs the ingest pipeline (JetStream consumer feeding
// the batch writer) as one supervised unit.
type PipelineService struct {
	consumer EventConsumer
	batcher  BatchWriter
	name     string
}

// NewPipelineService creates the wrapper around an already-constructed
// consumer and batcher.
func NewPipelineService(consumer EventConsumer, batcher BatchWriter) *PipelineService {
	return &PipelineService{
		consumer: consumer,
		batcher:  batcher,
		name:     "ingest-pipeline",
	}
}

// Serve implements suture.Service.
//
// The batcher is deliberately started with a background context: its
// flush loop stops only on Close, so events buffered across a consumer
// restart keep flushing while suture brings the subscription back. A
// subscribe failure returns without closing the batcher for the same
// reason.
func (s *PipelineService) Serve(ctx context.Context) error {
	if err := s.batcher.Start(context.Background()); err != nil {
		return fmt.Errorf("start batcher: %w", err)
	}
	if err := s.consumer.Start(ctx); err != nil {
		return fmt.Errorf("start consumer: %w", err)
	}

	<-ctx.Done()

	// Stop the consumer before the final flush so no appends race it.
	s.consumer.Stop()
	if err := s.batcher.Close(); err != nil {
		return fmt.Errorf("close batcher: %w", err)
	}
	return ctx.Err()
}

// String implements fmt.Stringer so suture can name the service in logs.
func (s *PipelineService) String() string {
	return s.name
}
