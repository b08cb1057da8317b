// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package eventprocessor

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"

	"github.com/luxboard/luxboard/internal/cache"
	"github.com/luxboard/luxboard/internal/logging"
	"github.com/luxboard/luxboard/internal/metrics"
)

// MessageSource is the subscription surface the consumer reads from.
// Implemented by Subscriber; narrowed for testing with channel fakes.
type MessageSource interface {
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
	Close() error
}

// ConsumerOptions tunes the beacon event consumer.
type ConsumerOptions struct {
	// Topic is the NATS subject pattern to consume.
	Topic string

	// DedupeWindow is how long event IDs are remembered. The broker's
	// duplicate window already drops repeats at publish time; this is
	// the second layer covering redeliveries.
	DedupeWindow time.Duration

	// DedupeCapacity bounds the dedupe cache.
	DedupeCapacity int
}

// DefaultConsumerOptions returns production defaults.
func DefaultConsumerOptions() ConsumerOptions {
	return ConsumerOptions{
		Topic:          SubjectWildcard,
		DedupeWindow:   5 * time.Minute,
		DedupeCapacity: 10000,
	}
}

// ConsumerStats holds runtime statistics for monitoring.
type ConsumerStats struct {
	MessagesReceived  int64
	MessagesProcessed int64
	ParseErrors       int64
	InvalidEvents     int64
	DuplicatesSkipped int64
	LastMessageTime   time.Time
}

// Consumer reads beacon events from the stream, deduplicates them, and
// feeds the batcher. Malformed and invalid messages are acked so the
// broker never redelivers them; failed appends are nacked for retry.
type Consumer struct {
	source  MessageSource
	batcher *Batcher
	opts    ConsumerOptions
	dedupe  *cache.EventDedupe

	el *logging.EventLogger

	running atomic.Bool
	stopCh  chan struct{}
	doneCh  chan struct{}

	messagesReceived  atomic.Int64
	messagesProcessed atomic.Int64
	parseErrors       atomic.Int64
	invalidEvents     atomic.Int64
	duplicatesSkipped atomic.Int64
	lastMessageTime   atomic.Value // time.Time
}

// NewConsumer creates a consumer reading from source into batcher.
func NewConsumer(source MessageSource, batcher *Batcher, opts ConsumerOptions) (*Consumer, error) {
	if source == nil {
		return nil, fmt.Errorf("message source required")
	}
	if batcher == nil {
		return nil, fmt.Errorf("batcher required")
	}
	if opts.Topic == "" {
		opts.Topic = SubjectWildcard
	}
	if opts.DedupeWindow <= 0 {
		opts.DedupeWindow = 5 * time.Minute
	}
	if opts.DedupeCapacity <= 0 {
		opts.DedupeCapacity = 10000
	}

	c := &Consumer{
		source:  source,
		batcher: batcher,
		opts:    opts,
		dedupe:  cache.NewEventDedupe(opts.DedupeCapacity, opts.DedupeWindow),
		el:      logging.NewEventLogger(),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	c.lastMessageTime.Store(time.Time{})
	return c, nil
}

// Start begins consuming. Returns immediately; consumption runs in a
// goroutine until Stop or context cancellation.
func (c *Consumer) Start(ctx context.Context) error {
	if c.running.Swap(true) {
		return nil
	}

	messages, err := c.source.Subscribe(ctx, c.opts.Topic)
	if err != nil {
		c.running.Store(false)
		return fmt.Errorf("subscribe to %s: %w", c.opts.Topic, err)
	}

	go c.consumeLoop(ctx, messages)

	c.el.LogSubscriptionStarted(c.opts.Topic, "")
	return nil
}

// Stop stops the consumer and waits for the loop to drain.
func (c *Consumer) Stop() {
	if !c.running.Swap(false) {
		return
	}
	close(c.stopCh)
	<-c.doneCh
	c.el.LogSubscriptionStopped(c.opts.Topic)
}

// IsRunning reports whether the consumer is active.
func (c *Consumer) IsRunning() bool {
	return c.running.Load()
}

// Stats returns current runtime statistics.
func (c *Consumer) Stats() ConsumerStats {
	lastTime, _ := c.lastMessageTime.Load().(time.Time)
	return ConsumerStats{
		MessagesReceived:  c.messagesReceived.Load(),
		MessagesProcessed: c.messagesProcessed.Load(),
		ParseErrors:       c.parseErrors.Load(),
		InvalidEvents:     c.invalidEvents.Load(),
		DuplicatesSkipped: c.duplicatesSkipped.Load(),
		LastMessageTime:   lastTime,
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, messages <-chan *message.Message) {
	defer func() {
		c.running.Store(false)
		close(c.doneCh)
	}()

	for {
		select {
		case <-ctx.Done():
			c.drainMessages(messages)
			return
		case <-c.stopCh:
			c.drainMessages(messages)
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			c.processMessage(ctx, msg)
		}
	}
}

// drainMessages processes already-buffered messages before shutdown so
// acked-but-unprocessed events are not lost.
func (c *Consumer) drainMessages(messages <-chan *message.Message) {
	drainTimeout := time.After(100 * time.Millisecond)
	drained := 0

	for {
		select {
		case <-drainTimeout:
			c.logDrained(drained)
			return
		case msg, ok := <-messages:
			if !ok {
				c.logDrained(drained)
				return
			}
			c.processMessage(context.Background(), msg)
			drained++
		default:
			c.logDrained(drained)
			return
		}
	}
}

func (c *Consumer) logDrained(count int) {
	if count > 0 {
		logging.Info().Int("count", count).Msg("Consumer drained messages during shutdown")
	}
}

func (c *Consumer) processMessage(ctx context.Context, msg *message.Message) {
	start := time.Now()
	c.messagesReceived.Add(1)
	c.lastMessageTime.Store(start)
	metrics.RecordNATSConsume()

	var event BeaconEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		c.parseErrors.Add(1)
		metrics.RecordNATSParseFailed()
		logging.Warn().
			Str("message_uuid", msg.UUID).
			Err(err).
			Msg("Failed to parse beacon event")
		msg.Ack()
		return
	}
	event.EnsureSchemaVersion()

	if err := event.Validate(); err != nil {
		c.invalidEvents.Add(1)
		logging.Warn().
			Str("event_id", event.EventID).
			Err(err).
			Msg("Dropping invalid beacon event")
		msg.Ack()
		return
	}

	if c.dedupe.Seen(event.EventID) {
		c.duplicatesSkipped.Add(1)
		metrics.RecordNATSDeduplicated()
		c.el.LogDuplicate(event.EventID)
		msg.Ack()
		return
	}

	if err := c.batcher.Append(ctx, &event); err != nil {
		c.el.LogEventFailed(event.EventID, err)
		msg.Nack()
		return
	}

	c.messagesProcessed.Add(1)
	metrics.RecordNATSProcessed()
	metrics.RecordNATSProcessingDuration(time.Since(start))
	msg.Ack()
}
