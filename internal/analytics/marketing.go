// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package analytics

import (
	"time"

	"github.com/luxboard/luxboard/internal/models"
)

// ComputeObjectMarketing builds the marketing metric sheet for one AR
// object: click counts over all time, the trailing 30 days, and the
// trailing 12 calendar months from ref, each with a matching-window CTR.
//
// The CTR denominator is the summed in-window scan count of every project
// owning the object's scene (fan-out sums deliberately double-count shared
// lights). It is nil when the object has no scene, the scene has no owning
// projects, or the owners saw no scans in the window.
//
// Average dwell is the mean gap between consecutive same-object steps
// across all reconstructed sessions, nil when the object never repeats
// back-to-back within a session.
func ComputeObjectMarketing(s *Snapshot, objectID int64, ref time.Time, gapMinutes int) models.ObjectMarketingStats {
	stats := models.ObjectMarketingStats{
		ObjectID:   objectID,
		ObjectName: s.ObjectName(objectID),
	}

	total := AllTime(s.loc)
	last30 := TrailingDays(30, ref, s.loc)
	last12 := TrailingMonths(12, ref, s.loc)

	for _, c := range s.Clicks {
		if c.ObjectID != objectID {
			continue
		}
		if total.Contains(c.Timestamp) {
			stats.TotalClicks++
		}
		if last30.Contains(c.Timestamp) {
			stats.Clicks30d++
		}
		if last12.Contains(c.Timestamp) {
			stats.Clicks12m++
		}
	}

	var owners map[int64]struct{}
	if sceneID, ok := s.ObjectScene(objectID); ok {
		id := sceneID
		stats.SceneID = &id
		owners = make(map[int64]struct{})
		for _, projectID := range s.Linkage.SceneToProjects[sceneID] {
			owners[projectID] = struct{}{}
		}
	}

	var scansTotal, scans30, scans12 int
	if len(owners) > 0 {
		for _, sc := range s.Scans {
			for _, projectID := range s.ScanProjects(sc) {
				if _, owns := owners[projectID]; !owns {
					continue
				}
				if total.Contains(sc.Timestamp) {
					scansTotal++
				}
				if last30.Contains(sc.Timestamp) {
					scans30++
				}
				if last12.Contains(sc.Timestamp) {
					scans12++
				}
			}
		}
	}

	stats.CTRTotal = ratio(stats.TotalClicks, scansTotal)
	stats.CTR30d = ratio(stats.Clicks30d, scans30)
	stats.CTR12m = ratio(stats.Clicks12m, scans12)
	stats.AvgDwellSeconds = averageDwell(ReconstructSessions(s, total, gapMinutes), objectID)

	return stats
}

// averageDwell measures the mean gap between consecutive steps on the same
// object across all sessions.
func averageDwell(sessions []models.Session, objectID int64) *float64 {
	var gaps []float64
	for _, sess := range sessions {
		for i := 1; i < len(sess.Steps); i++ {
			if sess.Steps[i-1].ObjectID != objectID || sess.Steps[i].ObjectID != objectID {
				continue
			}
			gaps = append(gaps, sess.Steps[i].Timestamp.Sub(sess.Steps[i-1].Timestamp).Seconds())
		}
	}
	if len(gaps) == 0 {
		return nil
	}
	mean := average(gaps)
	return &mean
}
