// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package models

import (
	"strings"
	"time"
)

// Project represents a deployed AR campaign owning one or more scenes.
// Start/end dates are optional: an absent date leaves that side of the
// coverage window unbounded.
type Project struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`

	// Coverage window (day granularity, inclusive on both ends)
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`

	// Scene references in the vendor's free-text "<sceneId>-<sceneName>"
	// format (a bare id is also accepted). Parsed once at snapshot
	// construction; malformed entries are skipped.
	SceneRefs []string `json:"scene_refs,omitempty"`

	// Coordinate labels naming the coordinate systems deployed for this
	// project.
	Coordinates []string `json:"coordinates,omitempty"`

	// Optional site location
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// Scan is a single beacon detection event: a device (client) observed a
// physical light. CoordinateID is empty when the beacon reported no
// coordinate system.
type Scan struct {
	LightID      string    `json:"light_id"`
	CoordinateID string    `json:"coordinate_id,omitempty"`
	ClientID     string    `json:"client_id"`
	Timestamp    time.Time `json:"timestamp"`
}

// Click is a single AR-object interaction event. UserCode is the raw user
// code name as logged; it is empty for unattributed clicks.
type Click struct {
	ObjectID  int64     `json:"object_id"`
	UserCode  string    `json:"user_code,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// UserID returns the canonical user identifier for the click: the trimmed
// user code name, or "" when the click is unattributed.
func (c Click) UserID() string {
	return strings.TrimSpace(c.UserCode)
}

// ArObject is an AR object placed in a scene. SceneID is nil for objects
// not assigned to any scene.
type ArObject struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	SceneID   *int64 `json:"scene_id,omitempty"`
	SceneName string `json:"scene_name,omitempty"`
}

// CoordinateSystem is a spatial anchor grouping lights within a scene.
// SceneID is nil for coordinate systems not assigned to any scene.
type CoordinateSystem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SceneID   *int64 `json:"scene_id,omitempty"`
	SceneName string `json:"scene_name,omitempty"`
}

// LightConfig is the vendor-side configuration record for a light beacon,
// carrying the coordinate labels it serves and scene references in the same
// free-text format as Project.SceneRefs.
type LightConfig struct {
	LightID     string   `json:"light_id"`
	Coordinates []string `json:"coordinates,omitempty"`
	SceneRefs   []string `json:"scene_refs,omitempty"`
}
