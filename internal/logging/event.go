// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// EventLogger provides structured logging for the beacon event
// pipeline: intake, routing, batching and dead-lettering of scan and
// click events.
type EventLogger struct {
	logger zerolog.Logger
}

// NewEventLogger returns an EventLogger tagged with the pipeline
// component name.
func NewEventLogger() *EventLogger {
	return &EventLogger{logger: WithComponent("eventprocessor")}
}

// NewEventLoggerWith returns an EventLogger over a specific base
// logger. Used by tests to capture output.
func NewEventLoggerWith(l zerolog.Logger) *EventLogger {
	return &EventLogger{logger: l.With().Str("component", "eventprocessor").Logger()}
}

// Debug logs at debug level with alternating key/value fields.
func (el *EventLogger) Debug(msg string, fields ...interface{}) {
	addFieldPairs(el.logger.Debug(), fields).Msg(msg)
}

// Info logs at info level with alternating key/value fields.
func (el *EventLogger) Info(msg string, fields ...interface{}) {
	addFieldPairs(el.logger.Info(), fields).Msg(msg)
}

// Warn logs at warn level with alternating key/value fields.
func (el *EventLogger) Warn(msg string, fields ...interface{}) {
	addFieldPairs(el.logger.Warn(), fields).Msg(msg)
}

// Error logs at error level with alternating key/value fields.
func (el *EventLogger) Error(msg string, err error, fields ...interface{}) {
	addFieldPairs(el.logger.Error().Err(err), fields).Msg(msg)
}

func (el *EventLogger) loggerWithContext(ctx context.Context) zerolog.Logger {
	lctx := el.logger.With()
	if id := CorrelationIDFromContext(ctx); id != "" {
		lctx = lctx.Str("correlation_id", id)
	}
	if id := RequestIDFromContext(ctx); id != "" {
		lctx = lctx.Str("request_id", id)
	}
	return lctx.Logger()
}

// InfoContext logs at info level with the context's ids attached.
func (el *EventLogger) InfoContext(ctx context.Context, msg string, fields ...interface{}) {
	l := el.loggerWithContext(ctx)
	addFieldPairs(l.Info(), fields).Msg(msg)
}

// ErrorContext logs at error level with the context's ids attached.
func (el *EventLogger) ErrorContext(ctx context.Context, msg string, err error, fields ...interface{}) {
	l := el.loggerWithContext(ctx)
	addFieldPairs(l.Error().Err(err), fields).Msg(msg)
}

// LogEventReceived records an event arriving from the broker.
func (el *EventLogger) LogEventReceived(ctx context.Context, eventID, kind, subject string) {
	l := el.loggerWithContext(ctx)
	l.Debug().
		Str("event_id", eventID).
		Str("kind", kind).
		Str("subject", subject).
		Msg("event received")
}

// LogEventProcessed records a successfully handled event.
func (el *EventLogger) LogEventProcessed(eventID string, durationMs int64) {
	el.logger.Debug().
		Str("event_id", eventID).
		Int64("duration_ms", durationMs).
		Msg("event processed")
}

// LogEventFailed records a handler failure for an event.
func (el *EventLogger) LogEventFailed(eventID string, err error) {
	el.logger.Error().
		Str("event_id", eventID).
		Err(err).
		Msg("event processing failed")
}

// LogDuplicate records an event dropped by idempotent delivery.
func (el *EventLogger) LogDuplicate(eventID string) {
	el.logger.Debug().
		Str("event_id", eventID).
		Msg("duplicate event dropped")
}

// LogDLQEntry records an event handed to the dead letter queue after
// exhausting its retries.
func (el *EventLogger) LogDLQEntry(eventID string, err error, retryCount int) {
	el.logger.Warn().
		Str("event_id", eventID).
		Err(err).
		Int("retry_count", retryCount).
		Msg("event moved to dead letter queue")
}

// LogBatchFlush records a write batch reaching the store.
func (el *EventLogger) LogBatchFlush(count int, durationMs int64) {
	el.logger.Info().
		Int("count", count).
		Int64("duration_ms", durationMs).
		Msg("batch flushed")
}

// LogEventPublished records an event handed to the broker.
func (el *EventLogger) LogEventPublished(eventID, subject string) {
	el.logger.Debug().
		Str("event_id", eventID).
		Str("subject", subject).
		Msg("event published")
}

// LogSubscriptionStarted records a consumer binding to a subject.
func (el *EventLogger) LogSubscriptionStarted(subject, queue string) {
	el.logger.Info().
		Str("subject", subject).
		Str("queue", queue).
		Msg("subscription started")
}

// LogSubscriptionStopped records a consumer leaving a subject.
func (el *EventLogger) LogSubscriptionStopped(subject string) {
	el.logger.Info().
		Str("subject", subject).
		Msg("subscription stopped")
}

// LogRouterStarted records the message router coming up.
func (el *EventLogger) LogRouterStarted() {
	el.logger.Info().Msg("event router started")
}

// LogRouterStopped records the message router shutting down.
func (el *EventLogger) LogRouterStopped() {
	el.logger.Info().Msg("event router stopped")
}
