// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package analytics

import (
	"sort"

	"github.com/luxboard/luxboard/internal/models"
)

// RankClicks counts in-range clicks per AR object and returns the top rows
// joined to object metadata, clicks descending. Objects missing from the
// metadata still rank, under a synthesized placeholder name. A limit <= 0
// returns every row; an empty range returns none.
func RankClicks(s *Snapshot, r DateRange, limit int) []models.ClickRankingRow {
	if r.IsEmpty() {
		return nil
	}

	counts := make(map[int64]int)
	for _, c := range s.Clicks {
		if r.Contains(c.Timestamp) {
			counts[c.ObjectID]++
		}
	}

	rows := make([]models.ClickRankingRow, 0, len(counts))
	for objectID, n := range counts {
		row := models.ClickRankingRow{
			ObjectID:   objectID,
			ObjectName: s.ObjectName(objectID),
			Clicks:     n,
		}
		if obj, ok := s.ObjectByID(objectID); ok && obj.SceneID != nil {
			sceneID := *obj.SceneID
			row.SceneID = &sceneID
			row.SceneName = s.SceneName(sceneID)
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Clicks != rows[j].Clicks {
			return rows[i].Clicks > rows[j].Clicks
		}
		return rows[i].ObjectID < rows[j].ObjectID
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}
