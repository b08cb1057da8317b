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

func TestLoadSnapshot_Empty(t *testing.T) {
	db := setupTestDB(t)

	snap, err := db.LoadSnapshot(context.Background())
	if err != nil {
		t.Fatalf("LoadSnapshot() on empty store: %v", err)
	}
	if snap == nil {
		t.Fatal("LoadSnapshot() returned nil snapshot")
	}
	if len(snap.Scans) != 0 || len(snap.Clicks) != 0 || len(snap.Projects) != 0 {
		t.Errorf("empty store produced %d scans, %d clicks, %d projects",
			len(snap.Scans), len(snap.Clicks), len(snap.Projects))
	}
}

func TestLoadSnapshot_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	projects := []models.Project{
		{
			ID: 1001, Name: "Harborfront Light Walk",
			SceneRefs:   []string{"301-Harbor Promenade"},
			Coordinates: []string{"cs-301-a"},
		},
		{
			ID: 1002, Name: "Museum Night Quarter",
			SceneRefs: []string{"301-Harbor Promenade", "303-Atrium"},
		},
	}
	if err := db.UpsertProjects(ctx, projects); err != nil {
		t.Fatalf("UpsertProjects() error: %v", err)
	}

	scene := int64(301)
	if err := db.UpsertArObjects(ctx, []models.ArObject{
		{ID: 9001, Name: "Lighthouse Totem", SceneID: &scene},
	}); err != nil {
		t.Fatalf("UpsertArObjects() error: %v", err)
	}

	if err := db.ReplaceLightProjects(ctx, map[string][]int64{
		"lx-0101": {1001},
	}); err != nil {
		t.Fatalf("ReplaceLightProjects() error: %v", err)
	}

	base := time.Date(2024, 3, 4, 18, 30, 0, 0, time.UTC)
	if _, _, err := db.InsertScansBatch(ctx, []models.Scan{
		{LightID: "lx-0101", CoordinateID: "cs-301-a", ClientID: "client-a", Timestamp: base},
	}, SourceImport); err != nil {
		t.Fatalf("InsertScansBatch() error: %v", err)
	}
	if _, _, err := db.InsertClicksBatch(ctx, []models.Click{
		{ObjectID: 9001, UserCode: "amber", Timestamp: base.Add(time.Minute)},
	}, SourceImport); err != nil {
		t.Fatalf("InsertClicksBatch() error: %v", err)
	}

	snap, err := db.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("LoadSnapshot() error: %v", err)
	}

	if len(snap.Projects) != 2 || len(snap.Scans) != 1 || len(snap.Clicks) != 1 || len(snap.Objects) != 1 {
		t.Fatalf("snapshot sizes = %d projects, %d scans, %d clicks, %d objects",
			len(snap.Projects), len(snap.Scans), len(snap.Clicks), len(snap.Objects))
	}

	if !snap.Scans[0].Timestamp.Equal(base) {
		t.Errorf("scan timestamp = %v, want %v", snap.Scans[0].Timestamp, base)
	}

	// Scene 301 is referenced by both campaigns; the derived linkage
	// must fan out to both.
	gotProjects := snap.Linkage.SceneToProjects[301]
	if len(gotProjects) != 2 {
		t.Errorf("scene 301 fan-out = %v, want both projects", gotProjects)
	}

	// The object inherits its projects through its scene.
	objProjects := snap.Linkage.ObjectToProjects[9001]
	if len(objProjects) != 2 {
		t.Errorf("object 9001 projects = %v, want both via scene 301", objProjects)
	}

	if snap.Linkage.LightToProjects["lx-0101"][0] != 1001 {
		t.Errorf("light ownership = %v", snap.Linkage.LightToProjects["lx-0101"])
	}

	if _, ok := snap.FirstClickByUser["amber"]; !ok {
		t.Error("first-click table missing user amber")
	}
}

func TestSeedDemoData(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.SeedDemoData(ctx); err != nil {
		t.Fatalf("SeedDemoData() error: %v", err)
	}

	stats, err := db.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats() error: %v", err)
	}
	if stats.Projects != 2 {
		t.Errorf("seeded projects = %d, want 2", stats.Projects)
	}
	if stats.Scans == 0 || stats.Clicks == 0 {
		t.Errorf("seeded interactions = (%d, %d), want non-zero", stats.Scans, stats.Clicks)
	}
	if stats.LastScanAt == nil {
		t.Error("LastScanAt = nil after seed")
	}

	// Seeding is idempotent for reference data and interactions alike.
	if err := db.SeedDemoData(ctx); err != nil {
		t.Fatalf("SeedDemoData() second run error: %v", err)
	}
	again, err := db.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats() after reseed: %v", err)
	}
	if again.Scans != stats.Scans || again.Clicks != stats.Clicks {
		t.Errorf("reseed changed counts: (%d, %d) -> (%d, %d)",
			stats.Scans, stats.Clicks, again.Scans, again.Clicks)
	}
}
