// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package analytics

import (
	"reflect"
	"testing"
	"time"

	"github.com/luxboard/luxboard/internal/models"
)

func TestProjectCovers_WindowEdges(t *testing.T) {
	s := demoSnapshot()

	tests := []struct {
		name      string
		projectID int64
		at        time.Time
		want      bool
	}{
		{name: "inside window", projectID: 1, at: tstamp("2024-03-15 12:00:00"), want: true},
		{name: "start day midnight", projectID: 1, at: tstamp("2024-03-01 00:00:00"), want: true},
		{name: "last second of end day", projectID: 1, at: tstamp("2024-03-31 23:59:59"), want: true},
		{name: "midnight after end day", projectID: 1, at: tstamp("2024-04-01 00:00:00"), want: false},
		{name: "before start", projectID: 1, at: tstamp("2024-02-29 23:59:59"), want: false},
		{name: "no dates covers everything", projectID: 2, at: tstamp("1999-01-01 00:00:00"), want: true},
		{name: "open start bounded end inside", projectID: 3, at: tstamp("2024-01-31 12:00:00"), want: true},
		{name: "open start bounded end after", projectID: 3, at: tstamp("2024-02-01 00:00:00"), want: false},
		{name: "unknown project", projectID: 77, at: tstamp("2024-03-15 12:00:00"), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.ProjectCovers(tt.projectID, tt.at); got != tt.want {
				t.Errorf("ProjectCovers(%d, %v) = %v, want %v", tt.projectID, tt.at, got, tt.want)
			}
		})
	}
}

func TestScanProjects_FiltersByDateCoverage(t *testing.T) {
	s := demoSnapshot()

	// L1 belongs to projects 1 and 2, but project 1 only covers March.
	february := models.Scan{LightID: "L1", ClientID: "ada", Timestamp: tstamp("2024-02-01 08:00:00")}
	if got := s.ScanProjects(february); !reflect.DeepEqual(got, []int64{2}) {
		t.Errorf("ScanProjects(february) = %v, want [2]", got)
	}

	inWindow := models.Scan{LightID: "L1", ClientID: "ada", Timestamp: tstamp("2024-03-10 09:00:00")}
	if got := s.ScanProjects(inWindow); !reflect.DeepEqual(got, []int64{1, 2}) {
		t.Errorf("ScanProjects(inWindow) = %v, want [1 2]", got)
	}

	unowned := models.Scan{LightID: "L3", ClientID: "cara", Timestamp: tstamp("2024-03-12 15:00:00")}
	if got := s.ScanProjects(unowned); got != nil {
		t.Errorf("ScanProjects(unowned light) = %v, want nil", got)
	}
}

func TestClickProjects_FanOutAndOrphans(t *testing.T) {
	s := demoSnapshot()

	shared := models.Click{ObjectID: 100, UserCode: "ada", Timestamp: tstamp("2024-03-10 09:05:00")}
	if got := s.ClickProjects(shared); !reflect.DeepEqual(got, []int64{1, 2}) {
		t.Errorf("ClickProjects(shared scene) = %v, want [1 2]", got)
	}

	sceneless := models.Click{ObjectID: 103, UserCode: "cara", Timestamp: tstamp("2024-03-12 16:30:00")}
	if got := s.ClickProjects(sceneless); got != nil {
		t.Errorf("ClickProjects(sceneless object) = %v, want nil", got)
	}
}

func TestPartitionScans_FanOutDuplicatesAndOrphans(t *testing.T) {
	s := demoSnapshot()

	byProject, orphans := s.PartitionScans(march())

	if got := len(byProject[1]); got != 3 {
		t.Errorf("project 1 scans = %d, want 3", got)
	}
	if got := len(byProject[2]); got != 2 {
		t.Errorf("project 2 scans = %d, want 2", got)
	}
	if len(orphans) != 1 || orphans[0].LightID != "L3" {
		t.Errorf("orphans = %+v, want the single L3 scan", orphans)
	}
}

func TestPartitionClicks_FanOutDuplicatesAndOrphans(t *testing.T) {
	s := demoSnapshot()

	byProject, orphans := s.PartitionClicks(march())

	if got := len(byProject[1]); got != 6 {
		t.Errorf("project 1 clicks = %d, want 6", got)
	}
	if got := len(byProject[2]); got != 5 {
		t.Errorf("project 2 clicks = %d, want 5", got)
	}
	if len(orphans) != 1 || orphans[0].ObjectID != 103 {
		t.Errorf("orphans = %+v, want the single object-103 click", orphans)
	}
}

func TestSnapshot_SceneResolution(t *testing.T) {
	s := demoSnapshot()

	if sceneID, ok := s.ObjectScene(100); !ok || sceneID != 7 {
		t.Errorf("ObjectScene(100) = %d, %v, want 7, true", sceneID, ok)
	}
	if _, ok := s.ObjectScene(103); ok {
		t.Error("ObjectScene(103) should resolve nothing")
	}

	withCoord := models.Scan{LightID: "L1", CoordinateID: "cs-7a", Timestamp: tstamp("2024-03-10 09:00:00")}
	if sceneID, ok := s.ScanScene(withCoord); !ok || sceneID != 7 {
		t.Errorf("ScanScene(withCoord) = %d, %v, want 7, true", sceneID, ok)
	}

	noCoord := models.Scan{LightID: "L3", Timestamp: tstamp("2024-03-12 15:00:00")}
	if _, ok := s.ScanScene(noCoord); ok {
		t.Error("ScanScene without a coordinate system should resolve nothing")
	}

	scenelessCoord := models.Scan{LightID: "L1", CoordinateID: "cs-x", Timestamp: tstamp("2024-03-12 15:00:00")}
	if _, ok := s.ScanScene(scenelessCoord); ok {
		t.Error("ScanScene via a sceneless coordinate system should resolve nothing")
	}
}

func TestSnapshot_LightScenes(t *testing.T) {
	s := demoSnapshot()

	refs := s.LightScenes("L2")
	want := []SceneRef{{ID: 7, Name: "Harbor Hall"}, {ID: 12, Name: "Annex"}}
	if !reflect.DeepEqual(refs, want) {
		t.Errorf("LightScenes(L2) = %+v, want %+v", refs, want)
	}
	if got := s.LightScenes("L3"); got != nil {
		t.Errorf("LightScenes(L3) = %v, want nil", got)
	}
}

func TestSnapshot_PlaceholderLabels(t *testing.T) {
	s := demoSnapshot()

	if got := s.ObjectName(103); got != "Object 103" {
		t.Errorf("ObjectName(unnamed) = %q, want %q", got, "Object 103")
	}
	if got := s.ObjectName(999); got != "Object 999" {
		t.Errorf("ObjectName(unknown) = %q, want %q", got, "Object 999")
	}
	if got := s.SceneName(7); got != "Harbor Hall" {
		t.Errorf("SceneName(7) = %q, want %q", got, "Harbor Hall")
	}
	if got := s.SceneName(555); got != "Scene 555" {
		t.Errorf("SceneName(unknown) = %q, want %q", got, "Scene 555")
	}
	if got := s.ProjectName(3); got != "Winter Archive" {
		t.Errorf("ProjectName(3) = %q, want %q", got, "Winter Archive")
	}
	if got := s.ProjectName(77); got != "Project 77" {
		t.Errorf("ProjectName(unknown) = %q, want %q", got, "Project 77")
	}
}

func TestSnapshot_SceneNamePrecedence(t *testing.T) {
	// Project references name scenes first; other sources only fill gaps.
	s := NewSnapshot(SnapshotInput{
		Projects: []models.Project{{ID: 1, SceneRefs: []string{"7-Official"}}},
		Objects: []models.ArObject{
			{ID: 100, Name: "Totem", SceneID: scenePtr(7), SceneName: "Legacy"},
			{ID: 101, Name: "Mural", SceneID: scenePtr(8), SceneName: "Object Only"},
		},
		Location: time.UTC,
	})

	if got := s.SceneName(7); got != "Official" {
		t.Errorf("SceneName(7) = %q, want project ref name %q", got, "Official")
	}
	if got := s.SceneName(8); got != "Object Only" {
		t.Errorf("SceneName(8) = %q, want object-supplied name %q", got, "Object Only")
	}
}

func TestSnapshot_FirstClickByUser(t *testing.T) {
	s := demoSnapshot()

	if got := s.FirstClickByUser["ada"]; !got.Equal(tstamp("2024-03-10 09:05:00")) {
		t.Errorf("first click for ada = %v, want 2024-03-10 09:05:00", got)
	}
	if got := s.FirstClickByUser["cara"]; !got.Equal(tstamp("2024-03-12 16:30:00")) {
		t.Errorf("first click for cara = %v, want 2024-03-12 16:30:00", got)
	}
	if _, ok := s.FirstClickByUser[""]; ok {
		t.Error("unattributed clicks should not register a first click")
	}
}
