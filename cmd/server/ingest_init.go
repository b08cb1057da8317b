// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package main

import (
	"context"
	"fmt"
	"sync"

	natsgo "github.com/nats-io/nats.go"

	"github.com/luxboard/luxboard/internal/api"
	"github.com/luxboard/luxboard/internal/config"
	"github.com/luxboard/luxboard/internal/database"
	"github.com/luxboard/luxboard/internal/eventprocessor"
	"github.com/luxboard/luxboard/internal/logging"
	"github.com/luxboard/luxboard/internal/snapshot"
	"github.com/luxboard/luxboard/internal/wal"
)

// IngestComponents holds the event ingest components for lifecycle
// management. The consumer and batcher are started and stopped by the
// supervised pipeline service; everything else is torn down by Shutdown
// after the supervisor tree has finished.
type IngestComponents struct {
	server     *eventprocessor.EmbeddedServer
	natsConn   *natsgo.Conn
	streamInit *eventprocessor.StreamInitializer
	publisher  *eventprocessor.Publisher
	durable    *eventprocessor.DurablePublisher
	wal        *wal.BadgerWAL
	subscriber *eventprocessor.Subscriber
	batcher    *eventprocessor.Batcher
	consumer   *eventprocessor.Consumer

	mu     sync.Mutex
	closed bool
}

// InitIngest initializes the event ingest path when ingest.enabled is
// true: the embedded NATS server, the JetStream stream, the publisher
// the API hands scan/click events to, the optional WAL behind it, and
// the subscriber-consumer-batcher pipeline that lands events in DuckDB.
//
// Returns nil, nil when ingest is disabled; the API then answers event
// submissions with 503.
func InitIngest(ctx context.Context, cfg *config.Config, db *database.DB, snapshots *snapshot.Manager) (*IngestComponents, error) {
	if !cfg.Ingest.Enabled {
		logging.Info().Msg("Event ingest disabled (LUXBOARD_INGEST_ENABLED=false)")
		return nil, nil
	}

	logging.Info().Msg("Initializing event ingest...")

	components := &IngestComponents{}

	// Step 1: Start the embedded NATS server
	server, err := eventprocessor.NewEmbeddedServer(&cfg.Ingest.NATS)
	if err != nil {
		return nil, fmt.Errorf("start embedded NATS server: %w", err)
	}
	components.server = server
	natsURL := server.ClientURL()
	logging.Info().Str("url", natsURL).Msg("Embedded NATS server started")

	// Step 2: Connect and build the JetStream context
	nc, js, err := eventprocessor.ConnectJetStream(natsURL)
	if err != nil {
		components.Shutdown(context.Background())
		return nil, err
	}
	components.natsConn = nc
	logging.Info().Msg("NATS connection established")

	// Step 3: Ensure the event stream exists
	streamInit, err := eventprocessor.NewStreamInitializer(js, &cfg.Ingest.Stream)
	if err != nil {
		components.Shutdown(context.Background())
		return nil, fmt.Errorf("create stream initializer: %w", err)
	}
	components.streamInit = streamInit

	stream, err := streamInit.EnsureStream(ctx)
	if err != nil {
		components.Shutdown(context.Background())
		return nil, fmt.Errorf("ensure stream exists: %w", err)
	}
	streamInfo := stream.CachedInfo()
	logging.Info().
		Str("name", streamInfo.Config.Name).
		Strs("subjects", streamInfo.Config.Subjects).
		Dur("max_age", streamInfo.Config.MaxAge).
		Msg("JetStream stream ready")

	// Step 4: Create the publisher with a circuit breaker so a sick
	// broker fails submissions fast instead of stacking up timeouts
	publisher, err := eventprocessor.NewPublisher(eventprocessor.DefaultPublisherConfig(natsURL), nil)
	if err != nil {
		components.Shutdown(context.Background())
		return nil, fmt.Errorf("create publisher: %w", err)
	}
	publisher.SetCircuitBreaker(eventprocessor.NewCircuitBreaker(
		eventprocessor.DefaultCircuitBreakerConfig("nats-publish")))
	components.publisher = publisher
	logging.Info().Msg("Event publisher created")

	// Step 5: Open the WAL if enabled
	if cfg.WAL.Enabled {
		w, err := wal.Open(&cfg.WAL)
		if err != nil {
			components.Shutdown(context.Background())
			return nil, fmt.Errorf("open WAL: %w", err)
		}
		components.wal = w
		logging.Info().Str("path", cfg.WAL.Path).Msg("WAL opened")
	}

	// Step 6: Wrap the publisher for durability. With a nil WAL the
	// durable publisher degrades to pass-through.
	durable, err := eventprocessor.NewDurablePublisher(publisher, components.wal)
	if err != nil {
		components.Shutdown(context.Background())
		return nil, fmt.Errorf("create durable publisher: %w", err)
	}
	components.durable = durable

	// Step 7: Replay entries parked by a previous run
	if components.wal != nil {
		replayed, err := components.wal.ReplayPending(ctx, durable.ReplayFunc())
		if err != nil {
			logging.Warn().Err(err).Msg("WAL replay incomplete, retry service will continue")
		}
		if replayed > 0 {
			logging.Info().Int("count", replayed).Msg("Replayed WAL entries from previous run")
		}
	}

	// Step 8: Create the JetStream subscriber for the consumer pipeline
	subCfg := eventprocessor.SubscriberConfigFrom(natsURL, &cfg.Ingest.Consumer, cfg.Ingest.Stream.Name)
	subscriber, err := eventprocessor.NewSubscriber(&subCfg, nil)
	if err != nil {
		components.Shutdown(context.Background())
		return nil, fmt.Errorf("create subscriber: %w", err)
	}
	components.subscriber = subscriber

	// Step 9: Create the batcher that lands events in DuckDB and marks
	// the snapshot stale after each flush
	batcher, err := eventprocessor.NewBatcher(db, snapshots, eventprocessor.BatcherConfigFrom(&cfg.Ingest.Consumer))
	if err != nil {
		components.Shutdown(context.Background())
		return nil, fmt.Errorf("create batcher: %w", err)
	}
	components.batcher = batcher

	// Step 10: Create the consumer that feeds the batcher
	consumer, err := eventprocessor.NewConsumer(subscriber, batcher, eventprocessor.ConsumerOptions{
		Topic: eventprocessor.SubjectWildcard,
	})
	if err != nil {
		components.Shutdown(context.Background())
		return nil, fmt.Errorf("create consumer: %w", err)
	}
	components.consumer = consumer

	logging.Info().
		Int("batch_size", cfg.Ingest.Consumer.BatchSize).
		Str("durable", cfg.Ingest.Consumer.DurableName).
		Msg("Event ingest initialized successfully")
	return components, nil
}

// EventPublisher returns the publisher the API submits events to, or a
// nil interface when ingest is disabled. Callers must receive the nil
// interface rather than a typed nil pointer so the handler's nil check
// works.
func (c *IngestComponents) EventPublisher() api.EventPublisher {
	if c == nil || c.durable == nil {
		return nil
	}
	return c.durable
}

// Shutdown stops the ingest components in dependency order. It runs the
// teardown exactly once, including when called from a failed InitIngest,
// and tolerates partially initialized components.
//
// Order matters: the subscriber goes first so no new messages arrive,
// then the publisher and WAL, and the broker connection and embedded
// server last.
func (c *IngestComponents) Shutdown(ctx context.Context) {
	if c == nil {
		return
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	logging.Info().Msg("Shutting down ingest components...")

	c.shutdownSubscriber()
	c.shutdownPublisher()
	c.shutdownWAL()
	c.shutdownConnection(ctx)

	logging.Info().Msg("Ingest shutdown complete")
}

func (c *IngestComponents) shutdownSubscriber() {
	if c.subscriber == nil {
		return
	}
	if err := c.subscriber.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing subscriber")
	}
	logging.Info().Msg("Subscriber closed")
}

func (c *IngestComponents) shutdownPublisher() {
	if c.publisher == nil {
		return
	}
	if err := c.publisher.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing publisher")
	}
	logging.Info().Msg("Publisher closed")
}

func (c *IngestComponents) shutdownWAL() {
	if c.wal == nil {
		return
	}
	if err := c.wal.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing WAL")
	}
	logging.Info().Msg("WAL closed")
}

// shutdownConnection closes the NATS connection and embedded server.
func (c *IngestComponents) shutdownConnection(ctx context.Context) {
	if c.natsConn != nil {
		c.natsConn.Close()
		logging.Info().Msg("NATS connection closed")
	}
	if c.server != nil {
		if err := c.server.Shutdown(ctx); err != nil {
			logging.Error().Err(err).Msg("Error shutting down NATS server")
		}
		logging.Info().Msg("Embedded NATS server stopped")
	}
}
