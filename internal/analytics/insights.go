// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package analytics

import (
	"sort"
	"strconv"
	"strings"

	"github.com/luxboard/luxboard/internal/models"
)

// Insight mining limits. Paths longer than maxPathSteps are compared and
// reported by their first maxPathSteps object names only.
const (
	topEntryExitLimit  = 5
	topTransitionLimit = 8
	topPathLimit       = 6
	maxPathSteps       = 5
)

// pathSeparator joins object names into a path key. A control character
// keeps names containing dashes or arrows from colliding.
const pathSeparator = "\x1f"

// counter tallies occurrences per key while remembering each key's first
// appearance, so top-N ordering is count descending with ties broken by
// first occurrence.
type counter struct {
	counts    map[string]int
	firstSeen map[string]int
	order     int
}

func newCounter() *counter {
	return &counter{
		counts:    make(map[string]int),
		firstSeen: make(map[string]int),
	}
}

func (c *counter) add(key string) {
	if _, ok := c.firstSeen[key]; !ok {
		c.firstSeen[key] = c.order
		c.order++
	}
	c.counts[key]++
}

// top returns up to limit keys ordered by count descending, then first
// occurrence.
func (c *counter) top(limit int) []string {
	keys := make([]string, 0, len(c.counts))
	for k := range c.counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if c.counts[keys[i]] != c.counts[keys[j]] {
			return c.counts[keys[i]] > c.counts[keys[j]]
		}
		return c.firstSeen[keys[i]] < c.firstSeen[keys[j]]
	})
	if len(keys) > limit {
		keys = keys[:limit]
	}
	return keys
}

// MineSessionInsights aggregates entry/exit objects, transitions, common
// paths, and duration statistics over a set of reconstructed sessions.
// An empty session set yields zero-valued insights, never an error.
func MineSessionInsights(sessions []models.Session) models.SessionInsights {
	insights := models.SessionInsights{SessionCount: len(sessions)}
	if len(sessions) == 0 {
		return insights
	}

	entries := newCounter()
	exits := newCounter()
	transitions := newCounter()
	paths := newCounter()

	// Entry/exit keys carry the object id alongside the name so two
	// objects sharing a display name stay distinct in the ranking.
	entryMeta := make(map[string]models.ObjectCount)

	durations := make([]float64, 0, len(sessions))
	for _, sess := range sessions {
		durations = append(durations, sess.DurationSeconds)
		if len(sess.Steps) == 0 {
			continue
		}

		first := sess.Steps[0]
		last := sess.Steps[len(sess.Steps)-1]
		firstKey := objectKey(first)
		lastKey := objectKey(last)
		entries.add(firstKey)
		exits.add(lastKey)
		if _, ok := entryMeta[firstKey]; !ok {
			entryMeta[firstKey] = models.ObjectCount{ObjectID: first.ObjectID, ObjectName: first.ObjectName}
		}
		if _, ok := entryMeta[lastKey]; !ok {
			entryMeta[lastKey] = models.ObjectCount{ObjectID: last.ObjectID, ObjectName: last.ObjectName}
		}

		for i := 1; i < len(sess.Steps); i++ {
			transitions.add(sess.Steps[i-1].ObjectName + pathSeparator + sess.Steps[i].ObjectName)
		}

		names := make([]string, 0, maxPathSteps)
		for i, step := range sess.Steps {
			if i == maxPathSteps {
				break
			}
			names = append(names, step.ObjectName)
		}
		paths.add(strings.Join(names, pathSeparator))
	}

	for _, key := range entries.top(topEntryExitLimit) {
		item := entryMeta[key]
		item.Count = entries.counts[key]
		insights.TopEntryObjects = append(insights.TopEntryObjects, item)
	}
	for _, key := range exits.top(topEntryExitLimit) {
		item := entryMeta[key]
		item.Count = exits.counts[key]
		insights.TopExitObjects = append(insights.TopExitObjects, item)
	}
	for _, key := range transitions.top(topTransitionLimit) {
		parts := strings.SplitN(key, pathSeparator, 2)
		insights.TopTransitions = append(insights.TopTransitions, models.TransitionCount{
			From:  parts[0],
			To:    parts[1],
			Count: transitions.counts[key],
		})
	}
	for _, key := range paths.top(topPathLimit) {
		insights.TopPaths = append(insights.TopPaths, models.PathCount{
			Path:  strings.Split(key, pathSeparator),
			Count: paths.counts[key],
		})
	}

	insights.AvgDurationSeconds = average(durations)
	insights.MedianDurationSeconds = median(durations)
	return insights
}

func objectKey(step models.SessionStep) string {
	return step.ObjectName + pathSeparator + strconv.FormatInt(step.ObjectID, 10)
}
