// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

/*
schema.go - Database Schema Management

Tables:
  - scans: beacon detections (light, coordinate system, client, instant).
    Natural-key unique constraint makes re-imports and event redelivery
    idempotent; coordinate_id stores '' rather than NULL so the constraint
    actually fires for coordinate-less scans.
  - clicks: AR object interactions (object, user code, instant), same
    natural-key posture with '' for unattributed clicks.
  - projects + project_scenes + project_coordinates: campaign records and
    their scene-reference / coordinate-label lists. Scene references stay
    in the vendor's free-text "<sceneId>-<sceneName>" form; parsing is the
    snapshot's job, not the store's.
  - light_projects: the externally maintained light -> owning projects
    table (a light may belong to several projects).
  - ar_objects, coordinate_systems: placement records with their optional
    scene assignment.
  - light_configs + light_config_scenes: vendor-side beacon configuration.
    Coordinate labels are stored as a JSON array in a TEXT column; scene
    references get a join table because names may contain anything.

All DDL is CREATE TABLE IF NOT EXISTS so startup is idempotent. Schema
changes after the initial release go through versioned migrations in
migrations.go.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the core database tables.
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range db.getTableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}

	return nil
}

// getTableCreationQueries returns the table creation SQL statements.
func (db *DB) getTableCreationQueries() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS projects (
			id BIGINT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			start_date DATE,
			end_date DATE,
			latitude DOUBLE,
			longitude DOUBLE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS project_scenes (
			project_id BIGINT NOT NULL,
			position INTEGER NOT NULL,
			scene_ref TEXT NOT NULL,
			PRIMARY KEY (project_id, position)
		)`,

		`CREATE TABLE IF NOT EXISTS project_coordinates (
			project_id BIGINT NOT NULL,
			position INTEGER NOT NULL,
			coordinate_id TEXT NOT NULL,
			PRIMARY KEY (project_id, position)
		)`,

		`CREATE TABLE IF NOT EXISTS light_projects (
			light_id TEXT NOT NULL,
			project_id BIGINT NOT NULL,
			PRIMARY KEY (light_id, project_id)
		)`,

		`CREATE TABLE IF NOT EXISTS scans (
			id UUID PRIMARY KEY,
			light_id TEXT NOT NULL,
			coordinate_id TEXT NOT NULL DEFAULT '',
			client_id TEXT NOT NULL,
			scanned_at TIMESTAMP NOT NULL,
			source TEXT NOT NULL DEFAULT 'import',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (light_id, coordinate_id, client_id, scanned_at)
		)`,

		`CREATE TABLE IF NOT EXISTS clicks (
			id UUID PRIMARY KEY,
			object_id BIGINT NOT NULL,
			user_code TEXT NOT NULL DEFAULT '',
			clicked_at TIMESTAMP NOT NULL,
			source TEXT NOT NULL DEFAULT 'import',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (object_id, user_code, clicked_at)
		)`,

		`CREATE TABLE IF NOT EXISTS ar_objects (
			id BIGINT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			scene_id BIGINT,
			scene_name TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS coordinate_systems (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			scene_id BIGINT,
			scene_name TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS light_configs (
			light_id TEXT PRIMARY KEY,
			coordinates TEXT NOT NULL DEFAULT '[]',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS light_config_scenes (
			light_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			scene_ref TEXT NOT NULL,
			PRIMARY KEY (light_id, position)
		)`,
	}
}

// createIndexes creates indexes for the interaction tables. The reference
// tables are small enough that their primary keys suffice.
func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range db.getIndexQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create index: %s: %w", query, err)
		}
	}

	return nil
}

// getIndexQueries returns the index creation SQL statements.
func (db *DB) getIndexQueries() []string {
	return []string{
		`CREATE INDEX IF NOT EXISTS idx_scans_scanned_at ON scans(scanned_at)`,
		`CREATE INDEX IF NOT EXISTS idx_scans_light ON scans(light_id)`,
		`CREATE INDEX IF NOT EXISTS idx_scans_client ON scans(client_id)`,
		`CREATE INDEX IF NOT EXISTS idx_clicks_clicked_at ON clicks(clicked_at)`,
		`CREATE INDEX IF NOT EXISTS idx_clicks_object ON clicks(object_id)`,
		`CREATE INDEX IF NOT EXISTS idx_clicks_user ON clicks(user_code)`,
	}
}
