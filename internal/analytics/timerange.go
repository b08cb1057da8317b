// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package analytics

import (
	"time"
)

// dayFormat and monthFormat are the bucket label layouts used across the
// engine and in cache keys, so they must stay stable.
const (
	dayFormat   = "2006-01-02"
	monthFormat = "2006-01"
)

// DateRange is an inclusive day-granularity range. Start and End are
// normalized to local midnight of the first and last day; an inverted input
// (start day after end day) produces an empty range, which every
// computation treats as "return empty results", never an error.
type DateRange struct {
	Start time.Time
	End   time.Time

	loc *time.Location
}

// NewDateRange builds a range covering the calendar days of start through
// end, both inclusive, in the given location (nil means time.Local).
func NewDateRange(start, end time.Time, loc *time.Location) DateRange {
	loc = orLocal(loc)
	return DateRange{
		Start: dayStart(start, loc),
		End:   dayStart(end, loc),
		loc:   loc,
	}
}

// TrailingDays returns the range covering the last n calendar days ending
// at ref's day, inclusive of both endpoints. n <= 0 yields an empty range.
func TrailingDays(n int, ref time.Time, loc *time.Location) DateRange {
	loc = orLocal(loc)
	if n <= 0 {
		return emptyRange(loc)
	}
	end := dayStart(ref, loc)
	return DateRange{Start: end.AddDate(0, 0, -(n - 1)), End: end, loc: loc}
}

// TrailingMonths returns the range from the first day of the calendar month
// n-1 months before ref's month through ref's day. n <= 0 yields an empty
// range.
func TrailingMonths(n int, ref time.Time, loc *time.Location) DateRange {
	loc = orLocal(loc)
	if n <= 0 {
		return emptyRange(loc)
	}
	return DateRange{
		Start: monthStart(ref, loc).AddDate(0, -(n - 1), 0),
		End:   dayStart(ref, loc),
		loc:   loc,
	}
}

// Today returns the single-day range of ref's calendar day.
func Today(ref time.Time, loc *time.Location) DateRange {
	loc = orLocal(loc)
	d := dayStart(ref, loc)
	return DateRange{Start: d, End: d, loc: loc}
}

// Yesterday returns the single-day range of the day before ref's.
func Yesterday(ref time.Time, loc *time.Location) DateRange {
	loc = orLocal(loc)
	d := dayStart(ref, loc).AddDate(0, 0, -1)
	return DateRange{Start: d, End: d, loc: loc}
}

// ThisWeek returns the Monday-start week containing ref, through ref's day.
// The trailing edge is ref's day rather than Sunday so that "this week"
// never includes future days.
func ThisWeek(ref time.Time, loc *time.Location) DateRange {
	loc = orLocal(loc)
	return DateRange{Start: weekStart(ref, loc), End: dayStart(ref, loc), loc: loc}
}

// LastWeek returns the full Monday-to-Sunday week before the one
// containing ref.
func LastWeek(ref time.Time, loc *time.Location) DateRange {
	loc = orLocal(loc)
	start := weekStart(ref, loc).AddDate(0, 0, -7)
	return DateRange{Start: start, End: start.AddDate(0, 0, 6), loc: loc}
}

// ThisMonth returns the calendar month containing ref, through ref's day.
func ThisMonth(ref time.Time, loc *time.Location) DateRange {
	loc = orLocal(loc)
	return DateRange{Start: monthStart(ref, loc), End: dayStart(ref, loc), loc: loc}
}

// LastMonth returns the full calendar month before the one containing ref.
func LastMonth(ref time.Time, loc *time.Location) DateRange {
	loc = orLocal(loc)
	start := monthStart(ref, loc).AddDate(0, -1, 0)
	return DateRange{Start: start, End: start.AddDate(0, 1, -1), loc: loc}
}

// AllTime returns a range wide enough to contain every representable
// event. Used by totals that deliberately ignore date filtering.
func AllTime(loc *time.Location) DateRange {
	loc = orLocal(loc)
	return DateRange{
		Start: time.Date(1, time.January, 1, 0, 0, 0, 0, loc),
		End:   time.Date(9999, time.December, 31, 0, 0, 0, 0, loc),
		loc:   loc,
	}
}

// IsEmpty reports whether the range contains no days.
func (r DateRange) IsEmpty() bool {
	return r.Start.After(r.End)
}

// Contains reports whether t falls within the range, inclusive of both day
// endpoints. Always false for an empty range.
func (r DateRange) Contains(t time.Time) bool {
	if r.IsEmpty() {
		return false
	}
	return !t.Before(r.Start) && t.Before(r.End.AddDate(0, 0, 1))
}

// Location returns the calendar location the range was built in.
func (r DateRange) Location() *time.Location {
	return orLocal(r.loc)
}

// Days returns the midnight of every calendar day in range, in order.
// Empty ranges return nil.
func (r DateRange) Days() []time.Time {
	if r.IsEmpty() {
		return nil
	}
	var days []time.Time
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Months returns the first day of every calendar month overlapping the
// range, in order. Empty ranges return nil.
func (r DateRange) Months() []time.Time {
	if r.IsEmpty() {
		return nil
	}
	var months []time.Time
	last := monthStart(r.End, r.Location())
	for m := monthStart(r.Start, r.Location()); !m.After(last); m = m.AddDate(0, 1, 0) {
		months = append(months, m)
	}
	return months
}

func emptyRange(loc *time.Location) DateRange {
	ref := time.Date(1, time.January, 2, 0, 0, 0, 0, loc)
	return DateRange{Start: ref, End: ref.AddDate(0, 0, -1), loc: loc}
}

func orLocal(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}

// dayStart returns midnight of t's calendar day in loc.
func dayStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// monthStart returns midnight of the first day of t's calendar month.
func monthStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
}

// weekStart returns midnight of the Monday of t's week.
func weekStart(t time.Time, loc *time.Location) time.Time {
	d := dayStart(t, loc)
	// time.Weekday is Sunday-based; shift so Monday is 0.
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// dayKey returns the canonical "2006-01-02" label of t's calendar day.
func dayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dayFormat)
}

// monthKey returns the canonical "2006-01" label of t's calendar month.
func monthKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(monthFormat)
}

// sameDay reports whether a and b fall on the same calendar day in loc.
func sameDay(a, b time.Time, loc *time.Location) bool {
	return dayStart(a, loc).Equal(dayStart(b, loc))
}
