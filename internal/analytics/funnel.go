// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package analytics

import (
	"sort"

	"github.com/luxboard/luxboard/internal/models"
)

// ComputeProjectFunnel builds the scan → click → activation funnel per
// project over the range.
//
// Scans and clicks use the partition semantics: fan-out duplicates an
// event into every covering project, so column sums across rows may exceed
// raw event counts. Active users are the distinct in-range clickers per
// project. New users replay the in-range clicks chronologically with a
// per-project seen set: a user is new to a project only once, at their
// earliest in-range click for it, and only when that click falls on the
// user's global first-click day.
//
// Rows whose metrics are all zero are dropped. Rows are ordered by clicks
// descending, then scans descending, then project id for stability. An
// empty range yields no rows.
func ComputeProjectFunnel(s *Snapshot, r DateRange) []models.FunnelRow {
	if r.IsEmpty() {
		return nil
	}

	scansByProject, _ := s.PartitionScans(r)
	clicksByProject, _ := s.PartitionClicks(r)

	active := make(map[int64]map[string]struct{})
	for projectID, clicks := range clicksByProject {
		users := make(map[string]struct{})
		for _, c := range clicks {
			if user := c.UserID(); user != "" {
				users[user] = struct{}{}
			}
		}
		active[projectID] = users
	}

	newUsers := s.countProjectNewUsers(r)

	ids := make(map[int64]struct{})
	for id := range scansByProject {
		ids[id] = struct{}{}
	}
	for id := range clicksByProject {
		ids[id] = struct{}{}
	}
	for id := range newUsers {
		ids[id] = struct{}{}
	}

	rows := make([]models.FunnelRow, 0, len(ids))
	for id := range ids {
		row := models.FunnelRow{
			ProjectID:   id,
			ProjectName: s.ProjectName(id),
			Scans:       len(scansByProject[id]),
			Clicks:      len(clicksByProject[id]),
			NewUsers:    newUsers[id],
			ActiveUsers: len(active[id]),
		}
		if row.Scans == 0 && row.Clicks == 0 && row.NewUsers == 0 && row.ActiveUsers == 0 {
			continue
		}
		row.ClickThroughRate = ratio(row.Clicks, row.Scans)
		row.ActivationRate = ratio(row.ActiveUsers, row.NewUsers)
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Clicks != rows[j].Clicks {
			return rows[i].Clicks > rows[j].Clicks
		}
		if rows[i].Scans != rows[j].Scans {
			return rows[i].Scans > rows[j].Scans
		}
		return rows[i].ProjectID < rows[j].ProjectID
	})
	return rows
}

// countProjectNewUsers replays the in-range clicks in chronological order,
// attributing each user to a project at most once (at their earliest
// in-range click for that project) and counting them only when that click
// lands on the user's global first-click day.
func (s *Snapshot) countProjectNewUsers(r DateRange) map[int64]int {
	type attributed struct {
		click    models.Click
		user     string
		projects []int64
	}
	var stream []attributed
	for _, c := range s.Clicks {
		if !r.Contains(c.Timestamp) {
			continue
		}
		user := c.UserID()
		if user == "" {
			continue
		}
		projects := s.ClickProjects(c)
		if len(projects) == 0 {
			continue
		}
		stream = append(stream, attributed{click: c, user: user, projects: projects})
	}
	sort.Slice(stream, func(i, j int) bool {
		if !stream[i].click.Timestamp.Equal(stream[j].click.Timestamp) {
			return stream[i].click.Timestamp.Before(stream[j].click.Timestamp)
		}
		return stream[i].click.ObjectID < stream[j].click.ObjectID
	})

	seen := make(map[int64]map[string]struct{})
	counts := make(map[int64]int)
	for _, a := range stream {
		for _, projectID := range a.projects {
			users := seen[projectID]
			if users == nil {
				users = make(map[string]struct{})
				seen[projectID] = users
			}
			if _, dup := users[a.user]; dup {
				continue
			}
			users[a.user] = struct{}{}
			if sameDay(a.click.Timestamp, s.FirstClickByUser[a.user], s.loc) {
				counts[projectID]++
			}
		}
	}
	return counts
}
