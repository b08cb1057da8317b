// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

/*
Package database provides the embedded DuckDB store backing the analytics
engine.

The store is the system's single durable home for beacon interactions and
reference entities:

  - scans / clicks: the append-only interaction log, written in batches by
    the importer and the event consumer, deduplicated on their natural keys
    so re-imports and redeliveries are harmless.
  - projects, project_scenes, project_coordinates, light_projects: campaign
    reference data and the light ownership table.
  - ar_objects, coordinate_systems, light_configs, light_config_scenes:
    the vendor-side placement records.

Reads follow a snapshot model: LoadSnapshot materializes every table into
model slices and hands them to analytics.NewSnapshot, which derives the
linkage indices exactly once. Computations never touch SQL; they run
against the immutable snapshot, so the store only has to be fast at bulk
insert and full-table scan, which is DuckDB's home turf.

A single DB value owns the connection pool, a prepared-statement cache and
the schema lifecycle (idempotent CREATE TABLE IF NOT EXISTS DDL plus
versioned migrations). Close checkpoints the WAL so the next open replays
nothing.
*/
package database
