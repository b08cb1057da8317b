// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

// Package logging provides structured logging for Luxboard built on
// zerolog.
//
// The package keeps a single global logger guarded by a mutex so
// that configuration may be swapped at runtime (for example when the
// config file is reloaded). All helpers proxy to that instance:
//
//	logging.Init(logging.Config{Level: "debug", Format: "console"})
//	logging.Info().Str("component", "api").Msg("listening")
//
// Request-scoped logging flows through context.Context. Handlers and
// consumers attach correlation and request identifiers once, then use
// Ctx to recover a logger that stamps them on every event:
//
//	ctx = logging.ContextWithCorrelationID(ctx, logging.GenerateCorrelationID())
//	logging.Ctx(ctx).Info().Msg("snapshot reload requested")
//
// The slog adapter bridges the global logger into log/slog for
// libraries that speak that interface, notably the supervision tree.
// EventLogger and IngestLogger wrap the globals with fixed component
// fields for the messaging pipeline and the beacon intake path; the
// intake logger additionally redacts user codes so raw visitor
// identifiers never reach the log stream.
package logging
