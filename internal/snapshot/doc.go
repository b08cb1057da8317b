// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

// Package snapshot owns the current in-memory analytics snapshot.
//
// The Manager holds one immutable *analytics.Snapshot behind a mutex
// with a monotonically increasing version. Writers (importer, event
// batcher) call MarkStale after landing rows; the supervised
// RefreshService polls the stale flag and reloads, collapsing bursts of
// writes into one rebuild per check interval. A full reload also runs
// on a fixed interval so snapshot age stays bounded even without
// traffic. Registered invalidation hooks fire after every successful
// swap, which is how the response cache is cleared.
package snapshot
