// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package importer

import (
	"time"

	"github.com/luxboard/luxboard/internal/models"
)

// Metric label values for the import source.
const (
	SourceFile   = "file"
	SourceRemote = "remote"
)

// ImportStats holds the counters of one import run. Rows counts every
// data row read (header excluded); Inserted and Duplicates come from the
// store, Malformed from the CSV readers.
type ImportStats struct {
	Source string

	ScanRows        int64
	ScansInserted   int64
	ScanDuplicates  int64
	ScansMalformed  int64
	ClickRows       int64
	ClicksInserted  int64
	ClickDuplicates int64
	ClicksMalformed int64

	MetadataLoaded bool

	StartTime time.Time
	EndTime   time.Time
}

// Duration returns how long the run has been going, or took.
func (s *ImportStats) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// TotalRows returns the number of data rows read across both files.
func (s *ImportStats) TotalRows() int64 {
	return s.ScanRows + s.ClickRows
}

// TotalMalformed returns the number of rows skipped across both files.
func (s *ImportStats) TotalMalformed() int64 {
	return s.ScansMalformed + s.ClicksMalformed
}

// RowsPerSecond returns the read rate of the run.
func (s *ImportStats) RowsPerSecond() float64 {
	seconds := s.Duration().Seconds()
	if seconds == 0 {
		return 0
	}
	return float64(s.TotalRows()) / seconds
}

// Summary converts the stats to the wire shape embedded in the status
// document.
func (s *ImportStats) Summary(running bool) *models.ImportSummary {
	summary := &models.ImportSummary{
		Source:          s.Source,
		ScanRows:        s.ScanRows,
		ScansInserted:   s.ScansInserted,
		ScanDuplicates:  s.ScanDuplicates,
		ScansMalformed:  s.ScansMalformed,
		ClickRows:       s.ClickRows,
		ClicksInserted:  s.ClicksInserted,
		ClickDuplicates: s.ClickDuplicates,
		ClicksMalformed: s.ClicksMalformed,
		MetadataLoaded:  s.MetadataLoaded,
		RowsPerSecond:   s.RowsPerSecond(),
		ElapsedSeconds:  s.Duration().Seconds(),
		StartTime:       s.StartTime,
	}

	switch {
	case running:
		summary.Status = "running"
	case s.EndTime.IsZero():
		summary.Status = "pending"
	default:
		summary.Status = "completed"
	}
	return summary
}
