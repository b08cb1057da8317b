// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package analytics

import (
	"sort"

	"github.com/luxboard/luxboard/internal/models"
)

// cohortAccum accumulates one acquisition series: dense per-day buckets
// plus a per-bucket user set so a user counts at most once per bucket no
// matter how many clicks they produce that day.
type cohortAccum struct {
	buckets []models.CohortBucket
	seen    []map[string]struct{}
}

func newCohortAccum(days []Bucket) *cohortAccum {
	a := &cohortAccum{
		buckets: make([]models.CohortBucket, len(days)),
		seen:    make([]map[string]struct{}, len(days)),
	}
	for i, d := range days {
		a.buckets[i] = models.CohortBucket{Date: d.Label}
		a.seen[i] = make(map[string]struct{})
	}
	return a
}

func (a *cohortAccum) add(bucket int, user string, isNew bool) {
	if _, dup := a.seen[bucket][user]; dup {
		return
	}
	a.seen[bucket][user] = struct{}{}
	if isNew {
		a.buckets[bucket].New++
	} else {
		a.buckets[bucket].Returning++
	}
}

// TrackAcquisition classifies every in-range click's user as new or
// returning and aggregates all three granularities in a single pass over
// the click stream.
//
// Classification is always against the user's global first-click day: a
// user is new on exactly that calendar day, returning on any later day,
// regardless of which project or scene is being measured. Per-project
// attribution fans out (a click may count toward several projects);
// per-scene attribution is the single scene of the clicked object, if any.
// Unattributed clicks (no user) never contribute.
//
// The global series carries a running cumulative total of users first
// acquired within the range. An empty range yields an empty report.
func TrackAcquisition(s *Snapshot, r DateRange) models.AcquisitionReport {
	days := DayBuckets(r)
	if days == nil {
		return models.AcquisitionReport{}
	}
	index := bucketIndex(days)

	global := newCohortAccum(days)
	byProject := make(map[int64]*cohortAccum)
	byScene := make(map[int64]*cohortAccum)

	for _, c := range s.Clicks {
		if !r.Contains(c.Timestamp) {
			continue
		}
		user := c.UserID()
		if user == "" {
			continue
		}
		bucket, ok := index[dayKey(c.Timestamp, s.loc)]
		if !ok {
			continue
		}
		isNew := sameDay(c.Timestamp, s.FirstClickByUser[user], s.loc)

		global.add(bucket, user, isNew)

		for _, projectID := range s.ClickProjects(c) {
			accum, exists := byProject[projectID]
			if !exists {
				accum = newCohortAccum(days)
				byProject[projectID] = accum
			}
			accum.add(bucket, user, isNew)
		}

		if sceneID, hasScene := s.ObjectScene(c.ObjectID); hasScene {
			accum, exists := byScene[sceneID]
			if !exists {
				accum = newCohortAccum(days)
				byScene[sceneID] = accum
			}
			accum.add(bucket, user, isNew)
		}
	}

	cumulative := 0
	for i := range global.buckets {
		cumulative += global.buckets[i].New
		global.buckets[i].CumulativeUsers = cumulative
	}

	report := models.AcquisitionReport{Global: global.buckets}
	report.ByProject = entitySeries(byProject, s.ProjectName)
	report.ByScene = entitySeries(byScene, s.SceneName)
	return report
}

// entitySeries orders per-entity accumulators by entity id so the report
// is deterministic for a given snapshot.
func entitySeries(accums map[int64]*cohortAccum, nameOf func(int64) string) []models.EntityCohortSeries {
	ids := make([]int64, 0, len(accums))
	for id := range accums {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	series := make([]models.EntityCohortSeries, 0, len(ids))
	for _, id := range ids {
		series = append(series, models.EntityCohortSeries{
			EntityID:   id,
			EntityName: nameOf(id),
			Buckets:    accums[id].buckets,
		})
	}
	return series
}
