// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

// Package importer bulk-loads the vendor beacon log exports into the
// store.
//
// The vendor tooling drops two CSV files, scandata.csv
// (light_id,coordinate_id,client_id,timestamp) and obj_click_log.csv
// (object_id,user_code,timestamp), plus an optional metadata.json with
// the reference entities (projects, AR objects, coordinate systems,
// light configs, light ownership). The importer streams the CSVs in
// batches through the store's idempotent batch inserts, so re-running
// an import over the same files only adds the rows that are new.
//
// Malformed rows are counted and skipped, never fatal: the exports come
// from a pipeline outside our control and a single bad line must not
// block the rest of the file. A header row is required; a file whose
// header does not match is rejected outright because it is probably the
// wrong file.
//
// Two modes:
//
//   - File: read the exports from configured local paths, optionally at
//     startup (import.on_start).
//   - Remote: RemoteService periodically fetches the same two files over
//     HTTP, rate limited and behind a circuit breaker, and feeds them
//     through the same import path.
//
// Every completed import marks the analytics snapshot stale so the
// refresher picks up the new rows.
package importer
