// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package analytics

import (
	"time"

	"github.com/luxboard/luxboard/internal/models"
)

// Fixtures run in UTC so calendar assertions do not depend on the host
// timezone.

func tstamp(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04:05", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(s string) *time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return &t
}

func scenePtr(id int64) *int64 {
	return &id
}

func rangeOver(start, end string) DateRange {
	return NewDateRange(*datePtr(start), *datePtr(end), time.UTC)
}

// demoSnapshot is the shared fixture most calculator tests run against.
//
// Layout: scene 7 ("Harbor Hall") is owned by projects 1 and 2, scene 12
// ("Annex") by project 1 only, scene 99 by the expired project 3. Objects
// 100/101 sit in scene 7, object 102 in scene 12, object 103 nowhere.
// Light L1 maps to projects 1+2, L2 to project 1, L3 to nothing. Scan s4
// carries no coordinate system and click c6 hits the sceneless object, so
// both stay unattributed; click c7 carries no user.
func demoSnapshot() *Snapshot {
	return NewSnapshot(SnapshotInput{
		Projects: []models.Project{
			{
				ID:        1,
				Name:      "Harbor Launch",
				StartDate: datePtr("2024-03-01"),
				EndDate:   datePtr("2024-03-31"),
				SceneRefs: []string{"7-Harbor Hall", "12-Annex"},
			},
			{
				ID:        2,
				Name:      "Spring Pilot",
				SceneRefs: []string{"7-Harbor Hall"},
			},
			{
				ID:        3,
				Name:      "Winter Archive",
				EndDate:   datePtr("2024-01-31"),
				SceneRefs: []string{"99-Vault"},
			},
		},
		Objects: []models.ArObject{
			{ID: 100, Name: "Compass Totem", SceneID: scenePtr(7), SceneName: "Harbor Hall"},
			{ID: 101, Name: "Tide Mural", SceneID: scenePtr(7), SceneName: "Harbor Hall"},
			{ID: 102, Name: "Annex Portal", SceneID: scenePtr(12), SceneName: "Annex"},
			{ID: 103},
		},
		CoordinateSystems: []models.CoordinateSystem{
			{ID: "cs-7a", Name: "hall-floor", SceneID: scenePtr(7), SceneName: "Harbor Hall"},
			{ID: "cs-12", Name: "annex-floor", SceneID: scenePtr(12), SceneName: "Annex"},
			{ID: "cs-x", Name: "unassigned"},
		},
		LightConfigs: []models.LightConfig{
			{LightID: "L1", Coordinates: []string{"hall-floor"}, SceneRefs: []string{"7-Harbor Hall"}},
			{LightID: "L2", Coordinates: []string{"annex-floor"}, SceneRefs: []string{"7-Harbor Hall", "12-Annex"}},
		},
		LightToProjects: map[string][]int64{
			"L1": {1, 2},
			"L2": {1},
		},
		Scans: []models.Scan{
			{LightID: "L1", CoordinateID: "cs-7a", ClientID: "ada", Timestamp: tstamp("2024-03-10 09:00:00")},
			{LightID: "L1", CoordinateID: "cs-7a", ClientID: "ben", Timestamp: tstamp("2024-03-10 09:30:00")},
			{LightID: "L2", CoordinateID: "cs-12", ClientID: "ada", Timestamp: tstamp("2024-03-12 14:00:00")},
			{LightID: "L3", ClientID: "cara", Timestamp: tstamp("2024-03-12 15:00:00")},
			{LightID: "L1", CoordinateID: "cs-7a", ClientID: "ada", Timestamp: tstamp("2024-02-01 08:00:00")},
		},
		Clicks: []models.Click{
			{ObjectID: 100, UserCode: "ada", Timestamp: tstamp("2024-03-10 09:05:00")},
			{ObjectID: 100, UserCode: "ada", Timestamp: tstamp("2024-03-10 09:07:00")},
			{ObjectID: 101, UserCode: "ben", Timestamp: tstamp("2024-03-10 10:00:00")},
			{ObjectID: 102, UserCode: "ada", Timestamp: tstamp("2024-03-12 14:30:00")},
			{ObjectID: 100, UserCode: "ben", Timestamp: tstamp("2024-03-12 16:00:00")},
			{ObjectID: 103, UserCode: "cara", Timestamp: tstamp("2024-03-12 16:30:00")},
			{ObjectID: 100, Timestamp: tstamp("2024-03-12 17:00:00")},
		},
		Location: time.UTC,
	})
}

// march is the full-month range covering every in-range fixture event.
func march() DateRange {
	return rangeOver("2024-03-01", "2024-03-31")
}
