// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package database

import (
	"context"
	"testing"
	"time"

	"github.com/luxboard/luxboard/internal/config"
)

// setupTestDB creates an in-memory test database. The connection is
// closed via t.Cleanup when the test completes.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	cfg := &config.DatabaseConfig{
		Path:      ":memory:",
		MaxMemory: "1GB",
	}

	db, err := New(cfg, time.UTC)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})
	return db
}

func TestNew_SchemaCreated(t *testing.T) {
	db := setupTestDB(t)

	ctx := context.Background()
	tables := []string{
		"projects", "project_scenes", "project_coordinates", "light_projects",
		"scans", "clicks", "ar_objects", "coordinate_systems",
		"light_configs", "light_config_scenes", "schema_migrations",
	}
	for _, table := range tables {
		var count int64
		query := "SELECT COUNT(*) FROM " + table
		if err := db.conn.QueryRowContext(ctx, query).Scan(&count); err != nil {
			t.Errorf("table %s not queryable: %v", table, err)
		}
		if count != 0 {
			t.Errorf("table %s has %d rows on fresh database, want 0", table, count)
		}
	}
}

func TestNew_SchemaIdempotent(t *testing.T) {
	db := setupTestDB(t)

	// Re-running the DDL against an initialized database must not fail.
	if err := db.createTables(); err != nil {
		t.Fatalf("createTables() second run: %v", err)
	}
	if err := db.createIndexes(); err != nil {
		t.Fatalf("createIndexes() second run: %v", err)
	}
	if err := db.runVersionedMigrations(); err != nil {
		t.Fatalf("runVersionedMigrations() second run: %v", err)
	}
}

func TestPing(t *testing.T) {
	db := setupTestDB(t)

	if err := db.Ping(context.Background()); err != nil {
		t.Errorf("Ping() = %v, want nil", err)
	}
}

func TestCheckpoint(t *testing.T) {
	db := setupTestDB(t)

	if err := db.Checkpoint(context.Background()); err != nil {
		t.Errorf("Checkpoint() = %v, want nil", err)
	}
}

func TestGetCurrentSchemaVersion(t *testing.T) {
	db := setupTestDB(t)

	version, err := db.GetCurrentSchemaVersion()
	if err != nil {
		t.Fatalf("GetCurrentSchemaVersion() error: %v", err)
	}
	if version != 0 {
		t.Errorf("schema version = %d on fresh database, want 0", version)
	}
}

func TestLocation(t *testing.T) {
	db := setupTestDB(t)

	if db.Location() != time.UTC {
		t.Errorf("Location() = %v, want UTC", db.Location())
	}

	cfg := &config.DatabaseConfig{Path: ":memory:", MaxMemory: "1GB"}
	db2, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New() with nil location: %v", err)
	}
	defer func() {
		if err := db2.Close(); err != nil {
			t.Errorf("Close() = %v", err)
		}
	}()
	if db2.Location() != time.UTC {
		t.Errorf("Location() with nil = %v, want UTC fallback", db2.Location())
	}
}

func TestPlaceholderRows(t *testing.T) {
	tests := []struct {
		rows, cols int
		want       string
	}{
		{1, 1, "(?)"},
		{1, 3, "(?, ?, ?)"},
		{2, 2, "(?, ?), (?, ?)"},
		{3, 1, "(?), (?), (?)"},
	}
	for _, tt := range tests {
		if got := placeholderRows(tt.rows, tt.cols); got != tt.want {
			t.Errorf("placeholderRows(%d, %d) = %q, want %q", tt.rows, tt.cols, got, tt.want)
		}
	}
}
