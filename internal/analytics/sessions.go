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

// DefaultSessionGapMinutes is the inactivity timeout that closes a session
// when no explicit gap is configured.
const DefaultSessionGapMinutes = 10

// normalizeGap clamps the configured session gap to at least one minute,
// substituting the default for non-positive values.
func normalizeGap(minutes int) int {
	if minutes <= 0 {
		return DefaultSessionGapMinutes
	}
	return minutes
}

// ReconstructSessions partitions the in-range click stream into sessions.
//
// Clicks are grouped by (user, calendar day) first, so a session can never
// span midnight regardless of gap size. Within a group, clicks are sorted
// ascending by timestamp and a gap greater than gapMinutes closes the
// current session and opens the next. Unattributed clicks (no user) are
// excluded entirely.
//
// Session ids are synthetic sequence numbers and fully deterministic: groups
// are processed in (user, day) order and equal-timestamp clicks are ordered
// by object id, so any permutation of the same input yields the same sessions.
func ReconstructSessions(s *Snapshot, r DateRange, gapMinutes int) []models.Session {
	gap := time.Duration(normalizeGap(gapMinutes)) * time.Minute

	type groupKey struct {
		user string
		day  string
	}
	groups := make(map[groupKey][]models.Click)
	for _, c := range s.Clicks {
		if !r.Contains(c.Timestamp) {
			continue
		}
		user := c.UserID()
		if user == "" {
			continue
		}
		k := groupKey{user: user, day: dayKey(c.Timestamp, s.loc)}
		groups[k] = append(groups[k], c)
	}

	keys := make([]groupKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].user != keys[j].user {
			return keys[i].user < keys[j].user
		}
		return keys[i].day < keys[j].day
	})

	var sessions []models.Session
	nextID := 1
	for _, k := range keys {
		clicks := groups[k]
		sort.Slice(clicks, func(i, j int) bool {
			if !clicks[i].Timestamp.Equal(clicks[j].Timestamp) {
				return clicks[i].Timestamp.Before(clicks[j].Timestamp)
			}
			return clicks[i].ObjectID < clicks[j].ObjectID
		})

		start := 0
		for i := 1; i <= len(clicks); i++ {
			if i < len(clicks) && clicks[i].Timestamp.Sub(clicks[i-1].Timestamp) <= gap {
				continue
			}
			sessions = append(sessions, s.buildSession(nextID, k.user, k.day, clicks[start:i]))
			nextID++
			start = i
		}
	}
	return sessions
}

// buildSession finalizes one run of clicks into a session record,
// resolving object metadata into steps.
func (s *Snapshot) buildSession(id int, user, day string, clicks []models.Click) models.Session {
	steps := make([]models.SessionStep, len(clicks))
	var sceneIDs []int64
	seenScenes := make(map[int64]struct{})
	for i, c := range clicks {
		step := models.SessionStep{
			ObjectID:   c.ObjectID,
			ObjectName: s.ObjectName(c.ObjectID),
			Timestamp:  c.Timestamp,
		}
		if sceneID, ok := s.ObjectScene(c.ObjectID); ok {
			sid := sceneID
			step.SceneID = &sid
			if _, seen := seenScenes[sid]; !seen {
				seenScenes[sid] = struct{}{}
				sceneIDs = append(sceneIDs, sid)
			}
		}
		steps[i] = step
	}

	started := clicks[0].Timestamp
	ended := clicks[len(clicks)-1].Timestamp
	duration := ended.Sub(started).Seconds()
	if duration < 0 {
		duration = 0
	}

	return models.Session{
		ID:              id,
		UserID:          user,
		Day:             day,
		Steps:           steps,
		StartedAt:       started,
		EndedAt:         ended,
		DurationSeconds: duration,
		SceneIDs:        sceneIDs,
	}
}
