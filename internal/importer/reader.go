// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/luxboard/luxboard/internal/models"
)

// Header rows required at the top of each vendor export.
var (
	scanHeader  = []string{"light_id", "coordinate_id", "client_id", "timestamp"}
	clickHeader = []string{"object_id", "user_code", "timestamp"}
)

// Skip reasons reported by the batch readers.
const (
	skipColumns   = "columns"
	skipField     = "field"
	skipTimestamp = "timestamp"
)

// vendorTimeLayout is the timestamp format the export tool writes.
// RFC 3339 is also accepted.
const vendorTimeLayout = "2006-01-02 15:04:05"

func parseTimestamp(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(vendorTimeLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

func newCSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	// Row lengths are checked per row so one bad line skips instead of
	// aborting the file.
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr
}

// expectHeader consumes the first row and matches it against the
// required column names. The exports sometimes carry a UTF-8 BOM.
func expectHeader(r *csv.Reader, want []string) error {
	row, err := r.Read()
	if err != nil {
		return fmt.Errorf("missing header row: %w", err)
	}
	row[0] = strings.TrimPrefix(row[0], "\uFEFF")
	if len(row) != len(want) {
		return fmt.Errorf("header has %d columns, want %d (%s)", len(row), len(want), strings.Join(want, ","))
	}
	for i, name := range want {
		if !strings.EqualFold(strings.TrimSpace(row[i]), name) {
			return fmt.Errorf("header column %d is %q, want %q", i+1, row[i], name)
		}
	}
	return nil
}

// ScanReader streams scan rows out of a scandata.csv export.
type ScanReader struct {
	r    *csv.Reader
	loc  *time.Location
	done bool
}

// NewScanReader wraps the export and validates its header.
func NewScanReader(r io.Reader, loc *time.Location) (*ScanReader, error) {
	cr := newCSVReader(r)
	if err := expectHeader(cr, scanHeader); err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ScanReader{r: cr, loc: loc}, nil
}

// ReadBatch reads up to limit rows. Malformed rows are counted by skip
// reason rather than returned. An empty batch means the file is
// exhausted.
func (r *ScanReader) ReadBatch(limit int) ([]models.Scan, map[string]int, error) {
	if r.done {
		return nil, nil, nil
	}

	var batch []models.Scan
	skipped := map[string]int{}
	for len(batch) < limit {
		row, err := r.r.Read()
		if errors.Is(err, io.EOF) {
			r.done = true
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				skipped[skipColumns]++
				continue
			}
			return batch, skipped, fmt.Errorf("read scan row: %w", err)
		}
		if len(row) != len(scanHeader) {
			skipped[skipColumns]++
			continue
		}

		lightID := strings.TrimSpace(row[0])
		clientID := strings.TrimSpace(row[2])
		if lightID == "" || clientID == "" {
			skipped[skipField]++
			continue
		}
		ts, err := parseTimestamp(strings.TrimSpace(row[3]), r.loc)
		if err != nil {
			skipped[skipTimestamp]++
			continue
		}

		batch = append(batch, models.Scan{
			LightID:      lightID,
			CoordinateID: strings.TrimSpace(row[1]),
			ClientID:     clientID,
			Timestamp:    ts,
		})
	}
	return batch, skipped, nil
}

// ClickReader streams click rows out of an obj_click_log.csv export.
type ClickReader struct {
	r    *csv.Reader
	loc  *time.Location
	done bool
}

// NewClickReader wraps the export and validates its header.
func NewClickReader(r io.Reader, loc *time.Location) (*ClickReader, error) {
	cr := newCSVReader(r)
	if err := expectHeader(cr, clickHeader); err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ClickReader{r: cr, loc: loc}, nil
}

// ReadBatch reads up to limit rows with the same skip posture as
// ScanReader.ReadBatch. An empty user_code is kept: unattributed clicks
// still count toward totals.
func (r *ClickReader) ReadBatch(limit int) ([]models.Click, map[string]int, error) {
	if r.done {
		return nil, nil, nil
	}

	var batch []models.Click
	skipped := map[string]int{}
	for len(batch) < limit {
		row, err := r.r.Read()
		if errors.Is(err, io.EOF) {
			r.done = true
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				skipped[skipColumns]++
				continue
			}
			return batch, skipped, fmt.Errorf("read click row: %w", err)
		}
		if len(row) != len(clickHeader) {
			skipped[skipColumns]++
			continue
		}

		objectID, err := strconv.ParseInt(strings.TrimSpace(row[0]), 10, 64)
		if err != nil || objectID <= 0 {
			skipped[skipField]++
			continue
		}
		ts, err := parseTimestamp(strings.TrimSpace(row[2]), r.loc)
		if err != nil {
			skipped[skipTimestamp]++
			continue
		}

		batch = append(batch, models.Click{
			ObjectID:  objectID,
			UserCode:  strings.TrimSpace(row[1]),
			Timestamp: ts,
		})
	}
	return batch, skipped, nil
}
