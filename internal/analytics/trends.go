// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package analytics

import (
	"time"

	"github.com/luxboard/luxboard/internal/models"
)

// ComputeTrends buckets scans and clicks into one dense calendar series.
// An empty range or an unknown interval yields an empty series.
func ComputeTrends(s *Snapshot, r DateRange, interval Interval) []models.TrendPoint {
	if !interval.Valid() {
		return nil
	}

	var seed, scans, clicks []Bucket
	switch interval {
	case IntervalMonth:
		seed = MonthBuckets(r)
		scans = CountByMonth(scanTimes(s), r)
		clicks = CountByMonth(clickTimes(s), r)
	default:
		seed = DayBuckets(r)
		scans = CountByDay(scanTimes(s), r)
		clicks = CountByDay(clickTimes(s), r)
	}
	if seed == nil {
		return nil
	}

	points := make([]models.TrendPoint, len(seed))
	for i, b := range seed {
		points[i] = models.TrendPoint{
			Label:  b.Label,
			Date:   b.Start,
			Scans:  scans[i].Count,
			Clicks: clicks[i].Count,
		}
	}
	return points
}

// ComputeDayparting distributes in-range scans and clicks over the 24
// local hours of the day. All 24 slots are returned even when empty; an
// empty range yields an empty result.
func ComputeDayparting(s *Snapshot, r DateRange) []models.DaypartRow {
	if r.IsEmpty() {
		return nil
	}

	rows := make([]models.DaypartRow, 24)
	for h := range rows {
		rows[h].Hour = h
	}
	for _, sc := range s.Scans {
		if r.Contains(sc.Timestamp) {
			rows[sc.Timestamp.In(s.loc).Hour()].Scans++
		}
	}
	for _, c := range s.Clicks {
		if r.Contains(c.Timestamp) {
			rows[c.Timestamp.In(s.loc).Hour()].Clicks++
		}
	}
	return rows
}

func scanTimes(s *Snapshot) []time.Time {
	times := make([]time.Time, len(s.Scans))
	for i, sc := range s.Scans {
		times[i] = sc.Timestamp
	}
	return times
}

func clickTimes(s *Snapshot) []time.Time {
	times := make([]time.Time, len(s.Clicks))
	for i, c := range s.Clicks {
		times[i] = c.Timestamp
	}
	return times
}
