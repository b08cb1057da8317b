// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package database

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/luxboard/luxboard/internal/logging"
	"github.com/luxboard/luxboard/internal/models"
)

// SeedDemoData populates the store with a small, deterministic demo
// deployment: two campaigns sharing one scene, a handful of lights and
// AR objects, and thirty days of synthetic scans and clicks. Intended
// for demos and screenshot environments, never for production data.
func (db *DB) SeedDemoData(ctx context.Context) error {
	logging.Info().Msg("Seeding store with demo data")

	rng := rand.New(rand.NewSource(42))
	now := time.Now().In(db.loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, db.loc)

	start1 := dayStart.AddDate(0, 0, -45)
	end1 := dayStart.AddDate(0, 0, 15)
	start2 := dayStart.AddDate(0, 0, -20)

	projects := []models.Project{
		{
			ID: 1001, Name: "Harborfront Light Walk",
			StartDate: &start1, EndDate: &end1,
			SceneRefs:   []string{"301-Harbor Promenade", "302-Pier Pavilion"},
			Coordinates: []string{"cs-301-a", "cs-301-b", "cs-302-a"},
		},
		{
			ID: 1002, Name: "Museum Night Quarter",
			StartDate:   &start2,
			SceneRefs:   []string{"303-Atrium", "302-Pier Pavilion"},
			Coordinates: []string{"cs-303-a", "cs-302-a"},
		},
	}
	if err := db.UpsertProjects(ctx, projects); err != nil {
		return fmt.Errorf("failed to seed projects: %w", err)
	}

	scene301, scene302, scene303 := int64(301), int64(302), int64(303)
	systems := []models.CoordinateSystem{
		{ID: "cs-301-a", Name: "Promenade North", SceneID: &scene301, SceneName: "Harbor Promenade"},
		{ID: "cs-301-b", Name: "Promenade South", SceneID: &scene301, SceneName: "Harbor Promenade"},
		{ID: "cs-302-a", Name: "Pavilion Floor", SceneID: &scene302, SceneName: "Pier Pavilion"},
		{ID: "cs-303-a", Name: "Atrium Center", SceneID: &scene303, SceneName: "Atrium"},
	}
	if err := db.UpsertCoordinateSystems(ctx, systems); err != nil {
		return fmt.Errorf("failed to seed coordinate systems: %w", err)
	}

	objects := []models.ArObject{
		{ID: 9001, Name: "Lighthouse Totem", SceneID: &scene301, SceneName: "Harbor Promenade"},
		{ID: 9002, Name: "Gull Swarm", SceneID: &scene301, SceneName: "Harbor Promenade"},
		{ID: 9003, Name: "Tide Mirror", SceneID: &scene302, SceneName: "Pier Pavilion"},
		{ID: 9004, Name: "Night Fresco", SceneID: &scene303, SceneName: "Atrium"},
		{ID: 9005, Name: "Drifting Lantern"},
	}
	if err := db.UpsertArObjects(ctx, objects); err != nil {
		return fmt.Errorf("failed to seed objects: %w", err)
	}

	configs := []models.LightConfig{
		{LightID: "lx-0101", Coordinates: []string{"cs-301-a"}, SceneRefs: []string{"301-Harbor Promenade"}},
		{LightID: "lx-0102", Coordinates: []string{"cs-301-b"}, SceneRefs: []string{"301-Harbor Promenade"}},
		{LightID: "lx-0201", Coordinates: []string{"cs-302-a"}, SceneRefs: []string{"302-Pier Pavilion"}},
		{LightID: "lx-0301", Coordinates: []string{"cs-303-a"}, SceneRefs: []string{"303-Atrium"}},
	}
	if err := db.UpsertLightConfigs(ctx, configs); err != nil {
		return fmt.Errorf("failed to seed light configs: %w", err)
	}

	// lx-0201 sits in the shared scene and belongs to both campaigns.
	lightProjects := map[string][]int64{
		"lx-0101": {1001},
		"lx-0102": {1001},
		"lx-0201": {1001, 1002},
		"lx-0301": {1002},
	}
	if err := db.ReplaceLightProjects(ctx, lightProjects); err != nil {
		return fmt.Errorf("failed to seed light projects: %w", err)
	}

	scans, clicks := synthesizeInteractions(rng, dayStart)
	if _, _, err := db.InsertScansBatch(ctx, scans, SourceImport); err != nil {
		return fmt.Errorf("failed to seed scans: %w", err)
	}
	if _, _, err := db.InsertClicksBatch(ctx, clicks, SourceImport); err != nil {
		return fmt.Errorf("failed to seed clicks: %w", err)
	}

	logging.Info().
		Int("scans", len(scans)).
		Int("clicks", len(clicks)).
		Msg("Demo data seeded")
	return nil
}

// synthesizeInteractions produces thirty days of scans and clicks with an
// evening-heavy hour profile and a small recurring visitor population.
func synthesizeInteractions(rng *rand.Rand, dayStart time.Time) ([]models.Scan, []models.Click) {
	lights := []struct {
		id    string
		coord string
	}{
		{"lx-0101", "cs-301-a"},
		{"lx-0102", "cs-301-b"},
		{"lx-0201", "cs-302-a"},
		{"lx-0301", "cs-303-a"},
	}
	clients := []string{
		"client-01", "client-02", "client-03", "client-04",
		"client-05", "client-06", "client-07", "client-08",
	}
	users := []string{"amber", "bastian", "chiara", "dmitri", "elif", "freya"}
	objectIDs := []int64{9001, 9001, 9002, 9003, 9003, 9003, 9004, 9005}

	var scans []models.Scan
	var clicks []models.Click

	for day := 30; day >= 1; day-- {
		base := dayStart.AddDate(0, 0, -day)
		scansToday := 8 + rng.Intn(10)
		for i := 0; i < scansToday; i++ {
			light := lights[rng.Intn(len(lights))]
			scans = append(scans, models.Scan{
				LightID:      light.id,
				CoordinateID: light.coord,
				ClientID:     clients[rng.Intn(len(clients))],
				Timestamp:    base.Add(eveningOffset(rng)),
			})
		}

		clicksToday := 4 + rng.Intn(8)
		for i := 0; i < clicksToday; i++ {
			click := models.Click{
				ObjectID:  objectIDs[rng.Intn(len(objectIDs))],
				UserCode:  users[rng.Intn(len(users))],
				Timestamp: base.Add(eveningOffset(rng)),
			}
			// Leave a sliver of traffic unattributed, as real logs do.
			if rng.Intn(10) == 0 {
				click.UserCode = ""
			}
			clicks = append(clicks, click)
		}
	}

	return scans, clicks
}

// eveningOffset picks a time of day skewed toward the 17:00-23:00 window
// where AR beacon installations see most of their traffic.
func eveningOffset(rng *rand.Rand) time.Duration {
	hour := 17 + rng.Intn(6)
	if rng.Intn(4) == 0 {
		hour = 9 + rng.Intn(8)
	}
	return time.Duration(hour)*time.Hour +
		time.Duration(rng.Intn(60))*time.Minute +
		time.Duration(rng.Intn(60))*time.Second
}
