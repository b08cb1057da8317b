// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package models

import (
	"time"
)

// UnattributedLabel names the catch-all bucket for events that resolve no
// scene or light through the available linkage.
const UnattributedLabel = "Unattributed"

// TrendPoint is one calendar bucket (day or month) of a trend series.
// Series are dense: a point is present for every bucket in range, counts
// default to zero.
type TrendPoint struct {
	Label  string    `json:"label"` // "2024-01-02" for days, "2024-01" for months
	Date   time.Time `json:"date"`  // bucket start (midnight / first of month)
	Scans  int       `json:"scans"`
	Clicks int       `json:"clicks"`
}

// DaypartRow is one hour-of-day slot of a dayparting distribution.
// All 24 slots are always present.
type DaypartRow struct {
	Hour   int `json:"hour"` // 0..23, local calendar hour
	Scans  int `json:"scans"`
	Clicks int `json:"clicks"`
}

// FunnelRow is the scan → click → activation funnel for one project.
//
// Rates are pointers so missing denominators serialize as null rather than
// 0 or NaN: ClickThroughRate is nil iff Scans == 0, ActivationRate is nil
// iff NewUsers == 0.
type FunnelRow struct {
	ProjectID   int64  `json:"project_id"`
	ProjectName string `json:"project_name"`

	Scans       int `json:"scans"`
	Clicks      int `json:"clicks"`
	NewUsers    int `json:"new_users"`
	ActiveUsers int `json:"active_users"`

	ClickThroughRate *float64 `json:"click_through_rate"`
	ActivationRate   *float64 `json:"activation_rate"`
}

// ClickRankingRow is one object in a most-clicked ranking.
type ClickRankingRow struct {
	ObjectID   int64  `json:"object_id"`
	ObjectName string `json:"object_name"`
	SceneID    *int64 `json:"scene_id,omitempty"`
	SceneName  string `json:"scene_name,omitempty"`
	Clicks     int    `json:"clicks"`
}

// SessionStep is one click inside a reconstructed session, with the object
// metadata resolved at reconstruction time.
type SessionStep struct {
	ObjectID   int64     `json:"object_id"`
	ObjectName string    `json:"object_name"`
	SceneID    *int64    `json:"scene_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Session is a maximal run of one user's clicks on one calendar day with no
// inter-click gap exceeding the configured timeout. IDs are synthetic,
// sequential, and deterministic for a given input.
type Session struct {
	ID     int    `json:"id"`
	UserID string `json:"user_id"`
	Day    string `json:"day"` // "2006-01-02" calendar day the session belongs to

	Steps     []SessionStep `json:"steps"`
	StartedAt time.Time     `json:"started_at"`
	EndedAt   time.Time     `json:"ended_at"`

	// DurationSeconds is EndedAt − StartedAt, floored at zero.
	DurationSeconds float64 `json:"duration_seconds"`

	// SceneIDs are the distinct scenes touched, in first-touch order.
	SceneIDs []int64 `json:"scene_ids,omitempty"`
}

// ObjectCount is an object/frequency pair used by session insights.
type ObjectCount struct {
	ObjectID   int64  `json:"object_id"`
	ObjectName string `json:"object_name"`
	Count      int    `json:"count"`
}

// TransitionCount is a consecutive object-to-object transition with its
// observed frequency.
type TransitionCount struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Count int    `json:"count"`
}

// PathCount is an ordered object-name path (truncated to the first five
// steps) with its observed frequency.
type PathCount struct {
	Path  []string `json:"path"`
	Count int      `json:"count"`
}

// SessionInsights aggregates statistics mined from a set of reconstructed
// sessions. Top lists are ordered by count descending, ties broken by first
// occurrence.
type SessionInsights struct {
	SessionCount int `json:"session_count"`

	TopEntryObjects []ObjectCount     `json:"top_entry_objects"` // top 5
	TopExitObjects  []ObjectCount     `json:"top_exit_objects"`  // top 5
	TopTransitions  []TransitionCount `json:"top_transitions"`   // top 8
	TopPaths        []PathCount       `json:"top_paths"`         // top 6

	AvgDurationSeconds    float64 `json:"avg_duration_seconds"`
	MedianDurationSeconds float64 `json:"median_duration_seconds"`
}

// CohortBucket is one calendar day of an acquisition series. A user counts
// at most once per bucket; new/returning classification always follows the
// user's global first-click day.
type CohortBucket struct {
	Date      string `json:"date"` // "2006-01-02"
	New       int    `json:"new"`
	Returning int    `json:"returning"`

	// CumulativeUsers is the running total of users first acquired within
	// the series range, up to and including this bucket. Populated on the
	// global series only.
	CumulativeUsers int `json:"cumulative_users,omitempty"`
}

// EntityCohortSeries is a per-project or per-scene acquisition series.
type EntityCohortSeries struct {
	EntityID   int64          `json:"entity_id"`
	EntityName string         `json:"entity_name"`
	Buckets    []CohortBucket `json:"buckets"`
}

// AcquisitionReport carries the three granularities of the acquisition
// tracker, all computed in a single pass over the click stream.
type AcquisitionReport struct {
	Global    []CohortBucket       `json:"global"`
	ByProject []EntityCohortSeries `json:"by_project"`
	ByScene   []EntityCohortSeries `json:"by_scene"`
}

// ObjectMarketingStats is the marketing metric sheet for a single AR
// object. Every CTR is clicks over the summed scan counts of all projects
// owning the object's scene for the matching window, nil when that
// denominator is zero.
type ObjectMarketingStats struct {
	ObjectID   int64  `json:"object_id"`
	ObjectName string `json:"object_name"`
	SceneID    *int64 `json:"scene_id,omitempty"`

	TotalClicks int `json:"total_clicks"`
	Clicks30d   int `json:"clicks_30d"`
	Clicks12m   int `json:"clicks_12m"`

	CTRTotal *float64 `json:"ctr_total"`
	CTR30d   *float64 `json:"ctr_30d"`
	CTR12m   *float64 `json:"ctr_12m"`

	// AvgDwellSeconds is the mean gap between consecutive same-object
	// session steps, nil when the object never repeats within a session.
	AvgDwellSeconds *float64 `json:"avg_dwell_seconds"`
}

// SceneComparisonRow compares one scene's activity within a range. The
// scans join path is coordinate-system → scene; the clicks join path is
// object → scene. SceneID is nil on the Unattributed row.
type SceneComparisonRow struct {
	SceneID   *int64 `json:"scene_id,omitempty"`
	SceneName string `json:"scene_name"`

	Scans          int `json:"scans"`
	Clicks         int `json:"clicks"`
	NewUsers       int `json:"new_users"`
	ReturningUsers int `json:"returning_users"`
	ActiveUsers    int `json:"active_users"`
}

// LightPerformanceRow tallies one light beacon's activity within a range.
// Clicks are attributed to the most recent scan preceding them for the same
// user, with unbounded lookback; LightID is "" on the Unattributed row.
type LightPerformanceRow struct {
	LightID string `json:"light_id"`
	Label   string `json:"label"`

	Scans          int `json:"scans"`
	Clicks         int `json:"clicks"`
	NewUsers       int `json:"new_users"`
	ReturningUsers int `json:"returning_users"`
	ActiveUsers    int `json:"active_users"`
}

// MergedPerformanceRow tallies one scene's activity using the light-config
// join path for scans (light → light-config scene references → scene) and
// the object join path for clicks. SceneID is nil on the Unattributed row.
type MergedPerformanceRow struct {
	SceneID   *int64 `json:"scene_id,omitempty"`
	SceneName string `json:"scene_name"`

	Scans          int `json:"scans"`
	Clicks         int `json:"clicks"`
	NewUsers       int `json:"new_users"`
	ReturningUsers int `json:"returning_users"`
	ActiveUsers    int `json:"active_users"`
}
