// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

// Package wal provides a write-ahead log for beacon events on their way
// to the NATS stream. Every accepted scan or click is persisted here
// before publication and confirmed once the broker acknowledges it, so
// a crash between HTTP accept and JetStream ack loses nothing.
//
// Entries live in a local Badger store under two key prefixes. Pending
// entries are replayed on startup and retried on an interval until they
// are confirmed or exhaust their delivery attempts; confirmed entries
// carry a TTL and age out on their own.
package wal
