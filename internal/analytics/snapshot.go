// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package analytics

import (
	"fmt"
	"time"

	"github.com/luxboard/luxboard/internal/models"
)

// SnapshotInput carries the normalized records the loader materialized from
// the backing store. Slices are adopted, not copied: the loader hands
// ownership over and must not mutate them afterwards.
type SnapshotInput struct {
	Projects          []models.Project
	Scans             []models.Scan
	Clicks            []models.Click
	Objects           []models.ArObject
	CoordinateSystems []models.CoordinateSystem
	LightConfigs      []models.LightConfig

	// LightToProjects is the externally maintained light → owning projects
	// table.
	LightToProjects map[string][]int64

	// Location sets the calendar used for all day/week/month arithmetic.
	// Nil means time.Local.
	Location *time.Location
}

// Snapshot is the immutable input to every engine computation: the
// normalized records plus the linkage indices and first-click table derived
// once at construction. A snapshot is never modified after NewSnapshot
// returns, so concurrent computations need no synchronization.
type Snapshot struct {
	Projects          []models.Project
	Scans             []models.Scan
	Clicks            []models.Click
	Objects           []models.ArObject
	CoordinateSystems []models.CoordinateSystem
	LightConfigs      []models.LightConfig

	// Linkage holds the derived lookup tables (4.1).
	Linkage *Linkage

	// FirstClickByUser maps each user id to the timestamp of their earliest
	// click anywhere. It is the authoritative boundary for new vs.
	// returning classification.
	FirstClickByUser map[string]time.Time

	loc *time.Location

	projectsByID     map[int64]int
	objectsByID      map[int64]int
	coordSystemsByID map[string]int
	lightConfigsByID map[string]int
	sceneNames       map[int64]string
}

// NewSnapshot builds the derived indices over the loader's records:
// parsed scene linkage, per-entity lookup maps, scene display names, and
// the first-click-by-user table.
func NewSnapshot(in SnapshotInput) *Snapshot {
	s := &Snapshot{
		Projects:          in.Projects,
		Scans:             in.Scans,
		Clicks:            in.Clicks,
		Objects:           in.Objects,
		CoordinateSystems: in.CoordinateSystems,
		LightConfigs:      in.LightConfigs,
		loc:               orLocal(in.Location),
		projectsByID:      make(map[int64]int, len(in.Projects)),
		objectsByID:       make(map[int64]int, len(in.Objects)),
		coordSystemsByID:  make(map[string]int, len(in.CoordinateSystems)),
		lightConfigsByID:  make(map[string]int, len(in.LightConfigs)),
		sceneNames:        make(map[int64]string),
	}

	s.Linkage = buildLinkage(in.Projects, in.Objects, in.LightToProjects)

	for i, p := range in.Projects {
		s.projectsByID[p.ID] = i
	}
	for i, o := range in.Objects {
		s.objectsByID[o.ID] = i
	}
	for i, cs := range in.CoordinateSystems {
		s.coordSystemsByID[cs.ID] = i
	}
	for i, lc := range in.LightConfigs {
		s.lightConfigsByID[lc.LightID] = i
	}

	s.buildSceneNames()
	s.buildFirstClicks()

	return s
}

// buildSceneNames collects a display name per scene id from every source
// that can carry one. First writer wins, in source order: project scene
// references, light-config references, coordinate systems, AR objects.
func (s *Snapshot) buildSceneNames() {
	record := func(id int64, name string) {
		if name == "" {
			return
		}
		if _, ok := s.sceneNames[id]; !ok {
			s.sceneNames[id] = name
		}
	}
	for _, p := range s.Projects {
		for _, ref := range s.Linkage.ProjectScenes[p.ID] {
			record(ref.ID, ref.Name)
		}
	}
	for _, lc := range s.LightConfigs {
		for _, ref := range parseSceneRefs(lc.SceneRefs) {
			record(ref.ID, ref.Name)
		}
	}
	for _, cs := range s.CoordinateSystems {
		if cs.SceneID != nil {
			record(*cs.SceneID, cs.SceneName)
		}
	}
	for _, obj := range s.Objects {
		if obj.SceneID != nil {
			record(*obj.SceneID, obj.SceneName)
		}
	}
}

// buildFirstClicks records each user's earliest click anywhere.
// Unattributed clicks carry no user and are skipped.
func (s *Snapshot) buildFirstClicks() {
	s.FirstClickByUser = make(map[string]time.Time)
	for _, c := range s.Clicks {
		user := c.UserID()
		if user == "" {
			continue
		}
		first, ok := s.FirstClickByUser[user]
		if !ok || c.Timestamp.Before(first) {
			s.FirstClickByUser[user] = c.Timestamp
		}
	}
}

// Location returns the calendar location all day/week/month arithmetic
// uses.
func (s *Snapshot) Location() *time.Location {
	return s.loc
}

// ProjectByID returns the project record for id.
func (s *Snapshot) ProjectByID(id int64) (models.Project, bool) {
	i, ok := s.projectsByID[id]
	if !ok {
		return models.Project{}, false
	}
	return s.Projects[i], true
}

// ObjectByID returns the AR object record for id.
func (s *Snapshot) ObjectByID(id int64) (models.ArObject, bool) {
	i, ok := s.objectsByID[id]
	if !ok {
		return models.ArObject{}, false
	}
	return s.Objects[i], true
}

// CoordinateSystemByID returns the coordinate system record for id.
func (s *Snapshot) CoordinateSystemByID(id string) (models.CoordinateSystem, bool) {
	i, ok := s.coordSystemsByID[id]
	if !ok {
		return models.CoordinateSystem{}, false
	}
	return s.CoordinateSystems[i], true
}

// LightConfigByID returns the light configuration record for a light id.
func (s *Snapshot) LightConfigByID(lightID string) (models.LightConfig, bool) {
	i, ok := s.lightConfigsByID[lightID]
	if !ok {
		return models.LightConfig{}, false
	}
	return s.LightConfigs[i], true
}

// ObjectName returns the display name for an object id, falling back to a
// synthesized placeholder when the object is unknown or unnamed.
func (s *Snapshot) ObjectName(id int64) string {
	if obj, ok := s.ObjectByID(id); ok && obj.Name != "" {
		return obj.Name
	}
	return fmt.Sprintf("Object %d", id)
}

// SceneName returns the display name for a scene id, falling back to a
// synthesized placeholder when no source named the scene.
func (s *Snapshot) SceneName(id int64) string {
	if name, ok := s.sceneNames[id]; ok {
		return name
	}
	return fmt.Sprintf("Scene %d", id)
}

// ProjectName returns the display name for a project id, falling back to a
// synthesized placeholder for dangling references.
func (s *Snapshot) ProjectName(id int64) string {
	if p, ok := s.ProjectByID(id); ok && p.Name != "" {
		return p.Name
	}
	return fmt.Sprintf("Project %d", id)
}

// LightScenes returns the scenes a light's configuration references,
// parsed from its scene reference strings. Lights without a configuration,
// or whose references are all malformed, yield nothing.
func (s *Snapshot) LightScenes(lightID string) []SceneRef {
	lc, ok := s.LightConfigByID(lightID)
	if !ok {
		return nil
	}
	return parseSceneRefs(lc.SceneRefs)
}

// ObjectScene returns the scene id the object belongs to, if any.
func (s *Snapshot) ObjectScene(id int64) (int64, bool) {
	obj, ok := s.ObjectByID(id)
	if !ok || obj.SceneID == nil {
		return 0, false
	}
	return *obj.SceneID, true
}

// ScanScene resolves a scan to a scene through its coordinate system.
// Scans without a coordinate system, or whose coordinate system carries no
// scene, resolve to nothing.
func (s *Snapshot) ScanScene(sc models.Scan) (int64, bool) {
	if sc.CoordinateID == "" {
		return 0, false
	}
	cs, ok := s.CoordinateSystemByID(sc.CoordinateID)
	if !ok || cs.SceneID == nil {
		return 0, false
	}
	return *cs.SceneID, true
}

// ProjectCovers reports whether the project's date window contains t.
// The window spans start-of-day of the start date through end-of-day of the
// end date; an absent date leaves that side unbounded.
func (s *Snapshot) ProjectCovers(projectID int64, t time.Time) bool {
	p, ok := s.ProjectByID(projectID)
	if !ok {
		return false
	}
	if p.StartDate != nil && t.Before(dayStart(*p.StartDate, s.loc)) {
		return false
	}
	if p.EndDate != nil && !t.Before(dayStart(*p.EndDate, s.loc).AddDate(0, 0, 1)) {
		return false
	}
	return true
}

// ScanProjects resolves a scan to the projects it attributes to: the
// owners of its light, filtered to those whose date window covers the scan.
// An empty result marks the scan an orphan.
func (s *Snapshot) ScanProjects(sc models.Scan) []int64 {
	return s.coveredProjects(s.Linkage.LightToProjects[sc.LightID], sc.Timestamp)
}

// ClickProjects resolves a click to the projects it attributes to through
// the object → scene → project indirection, filtered by date coverage.
// An empty result marks the click an orphan. A click may attribute to
// several projects at once; that fan-out is intentional, so sums over
// projects may exceed the raw click count.
func (s *Snapshot) ClickProjects(c models.Click) []int64 {
	return s.coveredProjects(s.Linkage.ObjectToProjects[c.ObjectID], c.Timestamp)
}

func (s *Snapshot) coveredProjects(candidates []int64, t time.Time) []int64 {
	if len(candidates) == 0 {
		return nil
	}
	var out []int64
	for _, id := range candidates {
		if s.ProjectCovers(id, t) {
			out = append(out, id)
		}
	}
	return out
}

// PartitionScans splits the in-range scans into per-project groups plus
// the orphans no project claims. Fan-out duplicates a scan into every
// covering project's group.
func (s *Snapshot) PartitionScans(r DateRange) (map[int64][]models.Scan, []models.Scan) {
	byProject := make(map[int64][]models.Scan)
	var orphans []models.Scan
	for _, sc := range s.Scans {
		if !r.Contains(sc.Timestamp) {
			continue
		}
		owners := s.ScanProjects(sc)
		if len(owners) == 0 {
			orphans = append(orphans, sc)
			continue
		}
		for _, id := range owners {
			byProject[id] = append(byProject[id], sc)
		}
	}
	return byProject, orphans
}

// PartitionClicks splits the in-range clicks into per-project groups plus
// the orphans no project claims. Fan-out duplicates a click into every
// covering project's group.
func (s *Snapshot) PartitionClicks(r DateRange) (map[int64][]models.Click, []models.Click) {
	byProject := make(map[int64][]models.Click)
	var orphans []models.Click
	for _, c := range s.Clicks {
		if !r.Contains(c.Timestamp) {
			continue
		}
		owners := s.ClickProjects(c)
		if len(owners) == 0 {
			orphans = append(orphans, c)
			continue
		}
		for _, id := range owners {
			byProject[id] = append(byProject[id], c)
		}
	}
	return byProject, orphans
}
