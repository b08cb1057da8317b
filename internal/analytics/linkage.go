// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package analytics

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/luxboard/luxboard/internal/models"
)

// sceneRefPattern extracts the leading integer that identifies a scene in
// the vendor's free-text "<sceneId>-<sceneName>" reference format.
var sceneRefPattern = regexp.MustCompile(`^(\d+)`)

// SceneRef is a scene reference parsed from the vendor's free-text format.
type SceneRef struct {
	ID   int64
	Name string
}

// ParseSceneRef parses a scene reference string ("5-Lobby", or a bare "5").
// The scene id is the leading integer; everything after the first dash is
// the scene name. Returns ok=false for anything without a leading integer.
// Malformed references carry no scene and are skipped by callers, never
// treated as an error.
func ParseSceneRef(s string) (SceneRef, bool) {
	s = strings.TrimSpace(s)
	match := sceneRefPattern.FindString(s)
	if match == "" {
		return SceneRef{}, false
	}
	id, err := strconv.ParseInt(match, 10, 64)
	if err != nil {
		// Leading digits too large for an id; treat as malformed.
		return SceneRef{}, false
	}
	name := ""
	rest := s[len(match):]
	if strings.HasPrefix(rest, "-") {
		name = strings.TrimSpace(rest[1:])
	}
	return SceneRef{ID: id, Name: name}, true
}

// parseSceneRefs parses a list of reference strings, skipping malformed
// entries and deduplicating by scene id in order of first appearance.
func parseSceneRefs(refs []string) []SceneRef {
	var out []SceneRef
	seen := make(map[int64]struct{}, len(refs))
	for _, raw := range refs {
		ref, ok := ParseSceneRef(raw)
		if !ok {
			continue
		}
		if _, dup := seen[ref.ID]; dup {
			continue
		}
		seen[ref.ID] = struct{}{}
		out = append(out, ref)
	}
	return out
}

// Linkage holds the derived many-to-many lookup tables that tie scans and
// clicks back to owning projects. All project-id lists are deduplicated and
// ordered by first appearance, so fan-out attribution is deterministic.
type Linkage struct {
	// SceneToProjects maps a scene id to every project whose scene
	// references claim it. More than one project may claim the same scene;
	// that overlap is intentional fan-out, not a data defect.
	SceneToProjects map[int64][]int64

	// ObjectToProjects maps an AR object to the projects owning its scene.
	// Objects without a scene, or whose scene no project claims, are absent
	// from the map (unmapped, not mapped to an empty list).
	ObjectToProjects map[int64][]int64

	// LightToProjects maps a light beacon to its owning projects. This
	// table is supplied by the loader as part of the snapshot; the engine
	// consumes it as-is.
	LightToProjects map[string][]int64

	// ProjectScenes holds each project's parsed scene references.
	ProjectScenes map[int64][]SceneRef
}

// buildLinkage derives the lookup tables from the snapshot inputs.
// Malformed scene references contribute nothing; dangling ids resolve to
// empty attribution.
func buildLinkage(projects []models.Project, objects []models.ArObject, lightToProjects map[string][]int64) *Linkage {
	l := &Linkage{
		SceneToProjects:  make(map[int64][]int64),
		ObjectToProjects: make(map[int64][]int64),
		LightToProjects:  lightToProjects,
		ProjectScenes:    make(map[int64][]SceneRef, len(projects)),
	}
	if l.LightToProjects == nil {
		l.LightToProjects = make(map[string][]int64)
	}

	for _, p := range projects {
		refs := parseSceneRefs(p.SceneRefs)
		l.ProjectScenes[p.ID] = refs
		for _, ref := range refs {
			l.SceneToProjects[ref.ID] = appendUnique(l.SceneToProjects[ref.ID], p.ID)
		}
	}

	for _, obj := range objects {
		if obj.SceneID == nil {
			continue
		}
		owners, ok := l.SceneToProjects[*obj.SceneID]
		if !ok || len(owners) == 0 {
			continue
		}
		ids := make([]int64, len(owners))
		copy(ids, owners)
		l.ObjectToProjects[obj.ID] = ids
	}

	return l
}

// appendUnique appends id to ids unless already present, preserving first
// appearance order.
func appendUnique(ids []int64, id int64) []int64 {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
