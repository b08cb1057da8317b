// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package analytics

import (
	"sort"
	"time"

	"github.com/luxboard/luxboard/internal/models"
)

// perfAccum gathers the per-entity tallies every performance view shares:
// raw scan and click counts for the range, the distinct users clicking in
// range, and each user's earliest attributed click ever. The last feeds
// the entity-scoped new-user rule: a user is new to an entity when their
// first click on it falls inside the range, even if they were already a
// returning user globally.
type perfAccum struct {
	scans     int
	clicks    int
	active    map[string]struct{}
	firstSeen map[string]time.Time
}

func newPerfAccum() *perfAccum {
	return &perfAccum{
		active:    make(map[string]struct{}),
		firstSeen: make(map[string]time.Time),
	}
}

func (a *perfAccum) addScan() {
	a.scans++
}

// addClick records one attributed click. firstSeen is fed from every click
// regardless of range so the new-user boundary stays stable; the click and
// active-user tallies only move for in-range clicks.
func (a *perfAccum) addClick(user string, ts time.Time, inRange bool) {
	if user != "" {
		first, ok := a.firstSeen[user]
		if !ok || ts.Before(first) {
			a.firstSeen[user] = ts
		}
	}
	if !inRange {
		return
	}
	a.clicks++
	if user != "" {
		a.active[user] = struct{}{}
	}
}

func (a *perfAccum) empty() bool {
	return a.scans == 0 && a.clicks == 0
}

// tally derives the user columns for the range. Returning is the active
// remainder after new users, clamped at zero.
func (a *perfAccum) tally(r DateRange) (newUsers, returningUsers, activeUsers int) {
	activeUsers = len(a.active)
	for user := range a.active {
		if first, ok := a.firstSeen[user]; ok && r.Contains(first) {
			newUsers++
		}
	}
	returningUsers = activeUsers - newUsers
	if returningUsers < 0 {
		returningUsers = 0
	}
	return newUsers, returningUsers, activeUsers
}

// CompareScenes breaks the range down per scene: scans resolve through
// their coordinate system, clicks through their object. Events that
// resolve to no scene pool into a trailing Unattributed row. Scenes that
// saw neither scans nor clicks are dropped.
func CompareScenes(s *Snapshot, r DateRange) []models.SceneComparisonRow {
	if r.IsEmpty() {
		return nil
	}

	accums := make(map[int64]*perfAccum)
	unattributed := newPerfAccum()
	bucket := func(sceneID int64, ok bool) *perfAccum {
		if !ok {
			return unattributed
		}
		a := accums[sceneID]
		if a == nil {
			a = newPerfAccum()
			accums[sceneID] = a
		}
		return a
	}

	for _, sc := range s.Scans {
		if !r.Contains(sc.Timestamp) {
			continue
		}
		sceneID, ok := s.ScanScene(sc)
		bucket(sceneID, ok).addScan()
	}
	for _, c := range s.Clicks {
		sceneID, ok := s.ObjectScene(c.ObjectID)
		bucket(sceneID, ok).addClick(c.UserID(), c.Timestamp, r.Contains(c.Timestamp))
	}

	rows := make([]models.SceneComparisonRow, 0, len(accums)+1)
	for sceneID, a := range accums {
		if a.empty() {
			continue
		}
		id := sceneID
		newUsers, returningUsers, activeUsers := a.tally(r)
		rows = append(rows, models.SceneComparisonRow{
			SceneID:        &id,
			SceneName:      s.SceneName(sceneID),
			Scans:          a.scans,
			Clicks:         a.clicks,
			NewUsers:       newUsers,
			ReturningUsers: returningUsers,
			ActiveUsers:    activeUsers,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Clicks != rows[j].Clicks {
			return rows[i].Clicks > rows[j].Clicks
		}
		if rows[i].Scans != rows[j].Scans {
			return rows[i].Scans > rows[j].Scans
		}
		return *rows[i].SceneID < *rows[j].SceneID
	})

	if !unattributed.empty() {
		newUsers, returningUsers, activeUsers := unattributed.tally(r)
		rows = append(rows, models.SceneComparisonRow{
			SceneName:      models.UnattributedLabel,
			Scans:          unattributed.scans,
			Clicks:         unattributed.clicks,
			NewUsers:       newUsers,
			ReturningUsers: returningUsers,
			ActiveUsers:    activeUsers,
		})
	}
	if len(rows) == 0 {
		return nil
	}
	return rows
}

// ComputeLightPerformance breaks the range down per light. Scans carry
// their light directly; clicks carry none, so each click joins to the
// latest scan at or before it whose device id matches the clicking user,
// with no limit on how far back that scan may lie. Clicks without a user,
// or whose user never scanned before the click, pool into a trailing
// Unattributed row.
//
// Each row's label is the scene the light resolves to through the
// coordinate systems its scans reference, falling back to the raw light id
// when no scan ever carried a scene-bearing coordinate system.
func ComputeLightPerformance(s *Snapshot, r DateRange) []models.LightPerformanceRow {
	if r.IsEmpty() {
		return nil
	}

	byClient := indexScansByClient(s.Scans)
	labels := s.lightSceneLabels()

	accums := make(map[string]*perfAccum)
	unattributed := newPerfAccum()
	bucket := func(lightID string) *perfAccum {
		a := accums[lightID]
		if a == nil {
			a = newPerfAccum()
			accums[lightID] = a
		}
		return a
	}

	for _, sc := range s.Scans {
		if !r.Contains(sc.Timestamp) {
			continue
		}
		bucket(sc.LightID).addScan()
	}
	for _, c := range s.Clicks {
		user := c.UserID()
		a := unattributed
		if user != "" {
			if sc, ok := latestScanBefore(byClient[user], c.Timestamp); ok {
				a = bucket(sc.LightID)
			}
		}
		a.addClick(user, c.Timestamp, r.Contains(c.Timestamp))
	}

	rows := make([]models.LightPerformanceRow, 0, len(accums)+1)
	for lightID, a := range accums {
		if a.empty() {
			continue
		}
		label := lightID
		if sceneID, ok := labels[lightID]; ok {
			label = s.SceneName(sceneID)
		}
		newUsers, returningUsers, activeUsers := a.tally(r)
		rows = append(rows, models.LightPerformanceRow{
			LightID:        lightID,
			Label:          label,
			Scans:          a.scans,
			Clicks:         a.clicks,
			NewUsers:       newUsers,
			ReturningUsers: returningUsers,
			ActiveUsers:    activeUsers,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Clicks != rows[j].Clicks {
			return rows[i].Clicks > rows[j].Clicks
		}
		if rows[i].Scans != rows[j].Scans {
			return rows[i].Scans > rows[j].Scans
		}
		return rows[i].LightID < rows[j].LightID
	})

	if !unattributed.empty() {
		newUsers, returningUsers, activeUsers := unattributed.tally(r)
		rows = append(rows, models.LightPerformanceRow{
			Label:          models.UnattributedLabel,
			Scans:          unattributed.scans,
			Clicks:         unattributed.clicks,
			NewUsers:       newUsers,
			ReturningUsers: returningUsers,
			ActiveUsers:    activeUsers,
		})
	}
	if len(rows) == 0 {
		return nil
	}
	return rows
}

// ComputeMergedPerformance breaks the range down per scene using the
// light-configuration mapping for the scan side: each scan fans out to
// every scene its light's configuration references, so scene scan totals
// may exceed the raw scan count. Clicks resolve through their object as
// in CompareScenes. Scans on unconfigured lights and clicks on sceneless
// objects pool into a trailing Unattributed row.
func ComputeMergedPerformance(s *Snapshot, r DateRange) []models.MergedPerformanceRow {
	if r.IsEmpty() {
		return nil
	}

	accums := make(map[int64]*perfAccum)
	unattributed := newPerfAccum()
	bucket := func(sceneID int64) *perfAccum {
		a := accums[sceneID]
		if a == nil {
			a = newPerfAccum()
			accums[sceneID] = a
		}
		return a
	}

	for _, sc := range s.Scans {
		if !r.Contains(sc.Timestamp) {
			continue
		}
		refs := s.LightScenes(sc.LightID)
		if len(refs) == 0 {
			unattributed.addScan()
			continue
		}
		for _, ref := range refs {
			bucket(ref.ID).addScan()
		}
	}
	for _, c := range s.Clicks {
		a := unattributed
		if sceneID, ok := s.ObjectScene(c.ObjectID); ok {
			a = bucket(sceneID)
		}
		a.addClick(c.UserID(), c.Timestamp, r.Contains(c.Timestamp))
	}

	rows := make([]models.MergedPerformanceRow, 0, len(accums)+1)
	for sceneID, a := range accums {
		if a.empty() {
			continue
		}
		id := sceneID
		newUsers, returningUsers, activeUsers := a.tally(r)
		rows = append(rows, models.MergedPerformanceRow{
			SceneID:        &id,
			SceneName:      s.SceneName(sceneID),
			Scans:          a.scans,
			Clicks:         a.clicks,
			NewUsers:       newUsers,
			ReturningUsers: returningUsers,
			ActiveUsers:    activeUsers,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Clicks != rows[j].Clicks {
			return rows[i].Clicks > rows[j].Clicks
		}
		if rows[i].Scans != rows[j].Scans {
			return rows[i].Scans > rows[j].Scans
		}
		return *rows[i].SceneID < *rows[j].SceneID
	})

	if !unattributed.empty() {
		newUsers, returningUsers, activeUsers := unattributed.tally(r)
		rows = append(rows, models.MergedPerformanceRow{
			SceneName:      models.UnattributedLabel,
			Scans:          unattributed.scans,
			Clicks:         unattributed.clicks,
			NewUsers:       newUsers,
			ReturningUsers: returningUsers,
			ActiveUsers:    activeUsers,
		})
	}
	if len(rows) == 0 {
		return nil
	}
	return rows
}

// lightSceneLabels resolves one display scene per light through the
// coordinate systems its scans reference. The earliest scene-bearing scan
// wins, with the coordinate id breaking timestamp ties, so the mapping is
// stable for a given snapshot.
func (s *Snapshot) lightSceneLabels() map[string]int64 {
	type pick struct {
		ts      time.Time
		coordID string
		sceneID int64
	}
	best := make(map[string]pick)
	for _, sc := range s.Scans {
		sceneID, ok := s.ScanScene(sc)
		if !ok {
			continue
		}
		cur, exists := best[sc.LightID]
		if !exists || sc.Timestamp.Before(cur.ts) ||
			(sc.Timestamp.Equal(cur.ts) && sc.CoordinateID < cur.coordID) {
			best[sc.LightID] = pick{ts: sc.Timestamp, coordID: sc.CoordinateID, sceneID: sceneID}
		}
	}
	labels := make(map[string]int64, len(best))
	for lightID, p := range best {
		labels[lightID] = p.sceneID
	}
	return labels
}

// indexScansByClient groups all scans by device id, each group ordered by
// timestamp, for the latest-scan-before-click join.
func indexScansByClient(scans []models.Scan) map[string][]models.Scan {
	idx := make(map[string][]models.Scan)
	for _, sc := range scans {
		idx[sc.ClientID] = append(idx[sc.ClientID], sc)
	}
	for _, group := range idx {
		sort.Slice(group, func(i, j int) bool {
			return group[i].Timestamp.Before(group[j].Timestamp)
		})
	}
	return idx
}

// latestScanBefore returns the last scan at or before t from a
// timestamp-ordered group.
func latestScanBefore(scans []models.Scan, t time.Time) (models.Scan, bool) {
	i := sort.Search(len(scans), func(i int) bool {
		return scans[i].Timestamp.After(t)
	})
	if i == 0 {
		return models.Scan{}, false
	}
	return scans[i-1], true
}
