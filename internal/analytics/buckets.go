// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package analytics

import (
	"time"
)

// Interval selects the calendar granularity of a bucket series.
type Interval string

const (
	// IntervalDay buckets events by calendar day.
	IntervalDay Interval = "day"
	// IntervalMonth buckets events by calendar month.
	IntervalMonth Interval = "month"
)

// Valid reports whether the interval is one the engine understands.
func (i Interval) Valid() bool {
	return i == IntervalDay || i == IntervalMonth
}

// Bucket is one calendar-aligned slot of a dense series. Start is the
// bucket's midnight (day) or first-of-month midnight (month).
type Bucket struct {
	Start time.Time `json:"start"`
	Label string    `json:"label"`
	Count int       `json:"count"`
}

// DayBuckets returns one zero-seeded bucket per calendar day in range.
// Dense output is a hard requirement for trend charts: a bucket exists for
// every day even when nothing happened. Empty ranges return nil.
func DayBuckets(r DateRange) []Bucket {
	days := r.Days()
	if len(days) == 0 {
		return nil
	}
	buckets := make([]Bucket, len(days))
	for i, d := range days {
		buckets[i] = Bucket{Start: d, Label: dayKey(d, r.Location())}
	}
	return buckets
}

// MonthBuckets returns one zero-seeded bucket per calendar month
// overlapping the range. Empty ranges return nil.
func MonthBuckets(r DateRange) []Bucket {
	months := r.Months()
	if len(months) == 0 {
		return nil
	}
	buckets := make([]Bucket, len(months))
	for i, m := range months {
		buckets[i] = Bucket{Start: m, Label: monthKey(m, r.Location())}
	}
	return buckets
}

// CountByDay accumulates the given timestamps into a dense per-day series
// over the range. Timestamps outside the range are ignored.
func CountByDay(times []time.Time, r DateRange) []Bucket {
	buckets := DayBuckets(r)
	if buckets == nil {
		return nil
	}
	index := bucketIndex(buckets)
	for _, t := range times {
		if !r.Contains(t) {
			continue
		}
		if i, ok := index[dayKey(t, r.Location())]; ok {
			buckets[i].Count++
		}
	}
	return buckets
}

// CountByMonth accumulates the given timestamps into a dense per-month
// series over the range. Timestamps outside the range are ignored.
func CountByMonth(times []time.Time, r DateRange) []Bucket {
	buckets := MonthBuckets(r)
	if buckets == nil {
		return nil
	}
	index := bucketIndex(buckets)
	for _, t := range times {
		if !r.Contains(t) {
			continue
		}
		if i, ok := index[monthKey(t, r.Location())]; ok {
			buckets[i].Count++
		}
	}
	return buckets
}

// bucketIndex maps bucket labels to their slice positions for O(1)
// accumulation.
func bucketIndex(buckets []Bucket) map[string]int {
	index := make(map[string]int, len(buckets))
	for i, b := range buckets {
		index[b.Label] = i
	}
	return index
}
