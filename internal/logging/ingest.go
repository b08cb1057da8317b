// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package logging

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
)

// IngestLogger provides structured logging for the beacon intake path.
// Visitor codes are personal data in some deployments, so every method
// redacts them before they reach the log stream; identifiers coming
// off the wire are additionally sanitized against log injection.
type IngestLogger struct {
	logger zerolog.Logger
}

// NewIngestLogger returns an IngestLogger tagged with the intake
// component name.
func NewIngestLogger() *IngestLogger {
	return &IngestLogger{logger: WithComponent("ingest")}
}

// NewIngestLoggerWith returns an IngestLogger over a specific base
// logger. Used by tests to capture output.
func NewIngestLoggerWith(l zerolog.Logger) *IngestLogger {
	return &IngestLogger{logger: l.With().Str("component", "ingest").Logger()}
}

// RedactUserCode hides a visitor code, keeping a two-character prefix
// and the original length so distinct codes remain distinguishable in
// the logs without being recoverable.
func RedactUserCode(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	runes := []rune(code)
	if len(runes) <= 2 {
		return "**"
	}
	return string(runes[:2]) + "***(" + strconv.Itoa(len(runes)) + ")"
}

// SanitizeID strips control characters from a wire identifier and
// truncates it to 64 runes so malformed payloads cannot inject log
// lines or bloat events.
func SanitizeID(id string) string {
	id = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, id)
	runes := []rune(id)
	if len(runes) > 64 {
		return string(runes[:64])
	}
	return id
}

// LogScanAccepted records a scan event admitted into the pipeline.
func (il *IngestLogger) LogScanAccepted(eventID, lightID, coordinateID, userCode string) {
	il.logger.Debug().
		Str("event_id", eventID).
		Str("light_id", SanitizeID(lightID)).
		Str("coordinate_id", SanitizeID(coordinateID)).
		Str("user_code", RedactUserCode(userCode)).
		Msg("scan accepted")
}

// LogClickAccepted records a click event admitted into the pipeline.
func (il *IngestLogger) LogClickAccepted(eventID string, objectID int64, userCode string) {
	il.logger.Debug().
		Str("event_id", eventID).
		Int64("object_id", objectID).
		Str("user_code", RedactUserCode(userCode)).
		Msg("click accepted")
}

// LogEventRejected records an event turned away before entering the
// pipeline.
func (il *IngestLogger) LogEventRejected(kind, reason string) {
	il.logger.Warn().
		Str("kind", kind).
		Str("reason", reason).
		Msg("event rejected")
}

// LogPayloadInvalid records a payload that failed decoding or
// validation.
func (il *IngestLogger) LogPayloadInvalid(kind string, err error) {
	il.logger.Warn().
		Str("kind", kind).
		Err(err).
		Msg("invalid payload")
}

// LogSourceThrottled records a client hitting the intake rate limit.
func (il *IngestLogger) LogSourceThrottled(remote string) {
	il.logger.Warn().
		Str("remote", SanitizeID(remote)).
		Msg("source throttled")
}

// addFieldPairs attaches alternating key/value fields to an event.
// Pairs with a non-string key are skipped.
func addFieldPairs(e *zerolog.Event, fields []interface{}) *zerolog.Event {
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		e = e.Interface(key, fields[i+1])
	}
	return e
}
