// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package database

import (
	"context"
	"testing"
	"time"

	"github.com/luxboard/luxboard/internal/models"
)

func testScans(base time.Time) []models.Scan {
	return []models.Scan{
		{LightID: "lx-1", CoordinateID: "cs-1", ClientID: "client-a", Timestamp: base},
		{LightID: "lx-1", CoordinateID: "cs-1", ClientID: "client-b", Timestamp: base.Add(time.Minute)},
		{LightID: "lx-2", CoordinateID: "", ClientID: "client-a", Timestamp: base.Add(2 * time.Minute)},
	}
}

func TestInsertScansBatch(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 4, 18, 30, 0, 0, time.UTC)

	inserted, duplicates, err := db.InsertScansBatch(ctx, testScans(base), SourceImport)
	if err != nil {
		t.Fatalf("InsertScansBatch() error: %v", err)
	}
	if inserted != 3 || duplicates != 0 {
		t.Errorf("first insert = (%d, %d), want (3, 0)", inserted, duplicates)
	}

	// Re-inserting the same batch is a no-op.
	inserted, duplicates, err = db.InsertScansBatch(ctx, testScans(base), SourceImport)
	if err != nil {
		t.Fatalf("InsertScansBatch() repeat error: %v", err)
	}
	if inserted != 0 || duplicates != 3 {
		t.Errorf("repeat insert = (%d, %d), want (0, 3)", inserted, duplicates)
	}

	var count int64
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM scans`).Scan(&count); err != nil {
		t.Fatalf("count scans: %v", err)
	}
	if count != 3 {
		t.Errorf("scans table has %d rows, want 3", count)
	}
}

func TestInsertScansBatch_InBatchDuplicates(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 4, 18, 30, 0, 0, time.UTC)

	scans := testScans(base)
	scans = append(scans, scans[0])

	inserted, duplicates, err := db.InsertScansBatch(ctx, scans, SourceEvent)
	if err != nil {
		t.Fatalf("InsertScansBatch() error: %v", err)
	}
	if inserted != 3 || duplicates != 1 {
		t.Errorf("insert with in-batch dup = (%d, %d), want (3, 1)", inserted, duplicates)
	}
}

func TestInsertScansBatch_Empty(t *testing.T) {
	db := setupTestDB(t)

	inserted, duplicates, err := db.InsertScansBatch(context.Background(), nil, SourceImport)
	if err != nil {
		t.Fatalf("InsertScansBatch(nil) error: %v", err)
	}
	if inserted != 0 || duplicates != 0 {
		t.Errorf("empty insert = (%d, %d), want (0, 0)", inserted, duplicates)
	}
}

func TestInsertClicksBatch(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 4, 19, 0, 0, 0, time.UTC)

	clicks := []models.Click{
		{ObjectID: 9001, UserCode: "amber", Timestamp: base},
		{ObjectID: 9001, UserCode: "bastian", Timestamp: base.Add(time.Minute)},
		{ObjectID: 9002, UserCode: "", Timestamp: base.Add(2 * time.Minute)},
	}

	inserted, duplicates, err := db.InsertClicksBatch(ctx, clicks, SourceImport)
	if err != nil {
		t.Fatalf("InsertClicksBatch() error: %v", err)
	}
	if inserted != 3 || duplicates != 0 {
		t.Errorf("first insert = (%d, %d), want (3, 0)", inserted, duplicates)
	}

	inserted, duplicates, err = db.InsertClicksBatch(ctx, clicks, SourceEvent)
	if err != nil {
		t.Fatalf("InsertClicksBatch() repeat error: %v", err)
	}
	if inserted != 0 || duplicates != 3 {
		t.Errorf("repeat insert = (%d, %d), want (0, 3)", inserted, duplicates)
	}
}

func TestLastEventTimes(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	last, err := db.LastScanTime(ctx)
	if err != nil {
		t.Fatalf("LastScanTime() on empty store: %v", err)
	}
	if last != nil {
		t.Errorf("LastScanTime() = %v on empty store, want nil", last)
	}

	base := time.Date(2024, 3, 4, 18, 30, 0, 0, time.UTC)
	if _, _, err := db.InsertScansBatch(ctx, testScans(base), SourceImport); err != nil {
		t.Fatalf("InsertScansBatch() error: %v", err)
	}

	last, err = db.LastScanTime(ctx)
	if err != nil {
		t.Fatalf("LastScanTime() error: %v", err)
	}
	want := base.Add(2 * time.Minute)
	if last == nil || !last.Equal(want) {
		t.Errorf("LastScanTime() = %v, want %v", last, want)
	}

	lastClick, err := db.LastClickTime(ctx)
	if err != nil {
		t.Fatalf("LastClickTime() error: %v", err)
	}
	if lastClick != nil {
		t.Errorf("LastClickTime() = %v with no clicks, want nil", lastClick)
	}
}
