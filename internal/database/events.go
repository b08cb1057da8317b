// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package database

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/luxboard/luxboard/internal/logging"
	"github.com/luxboard/luxboard/internal/metrics"
	"github.com/luxboard/luxboard/internal/models"
)

// Write sources recorded on interaction rows.
const (
	SourceImport = "import"
	SourceEvent  = "event"
)

// InsertScansBatch inserts a batch of scans in a single multi-row
// statement inside one transaction. Rows whose natural key
// (light, coordinate, client, instant) already exists are skipped, so
// re-imports and event redeliveries are idempotent.
//
// Returns the number of rows actually inserted and the number skipped as
// duplicates (including duplicates within the batch itself).
func (db *DB) InsertScansBatch(ctx context.Context, scans []models.Scan, source string) (inserted, duplicates int, err error) {
	if len(scans) == 0 {
		return 0, 0, nil
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	// Collapse in-batch duplicates first: a multi-row insert must not
	// carry two rows with the same key.
	unique := scans[:0:0]
	seen := make(map[string]struct{}, len(scans))
	for _, s := range scans {
		key := s.LightID + "\x1f" + s.CoordinateID + "\x1f" + s.ClientID + "\x1f" + strconv.FormatInt(s.Timestamp.UnixNano(), 10)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, s)
	}

	args := make([]interface{}, 0, len(unique)*6)
	for _, s := range unique {
		args = append(args, uuid.New(), s.LightID, s.CoordinateID, s.ClientID, s.Timestamp.UTC(), source)
	}

	query := `INSERT INTO scans (id, light_id, coordinate_id, client_id, scanned_at, source) VALUES ` +
		placeholderRows(len(unique), 6) + ` ON CONFLICT DO NOTHING`

	start := time.Now()
	inserted, err = db.execBatch(ctx, query, args)
	metrics.RecordDBQuery("insert_batch", "scans", time.Since(start), err)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to insert scans batch: %w", err)
	}

	metrics.DBRowsLoaded.WithLabelValues("scans").Add(float64(inserted))
	return inserted, len(scans) - inserted, nil
}

// InsertClicksBatch inserts a batch of clicks with the same idempotent
// posture as InsertScansBatch, keyed on (object, user code, instant).
func (db *DB) InsertClicksBatch(ctx context.Context, clicks []models.Click, source string) (inserted, duplicates int, err error) {
	if len(clicks) == 0 {
		return 0, 0, nil
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	unique := clicks[:0:0]
	seen := make(map[string]struct{}, len(clicks))
	for _, c := range clicks {
		key := strconv.FormatInt(c.ObjectID, 10) + "\x1f" + c.UserCode + "\x1f" + strconv.FormatInt(c.Timestamp.UnixNano(), 10)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, c)
	}

	args := make([]interface{}, 0, len(unique)*5)
	for _, c := range unique {
		args = append(args, uuid.New(), c.ObjectID, c.UserCode, c.Timestamp.UTC(), source)
	}

	query := `INSERT INTO clicks (id, object_id, user_code, clicked_at, source) VALUES ` +
		placeholderRows(len(unique), 5) + ` ON CONFLICT DO NOTHING`

	start := time.Now()
	inserted, err = db.execBatch(ctx, query, args)
	metrics.RecordDBQuery("insert_batch", "clicks", time.Since(start), err)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to insert clicks batch: %w", err)
	}

	metrics.DBRowsLoaded.WithLabelValues("clicks").Add(float64(inserted))
	return inserted, len(clicks) - inserted, nil
}

// execBatch runs one batched insert statement in its own transaction and
// reports the number of affected rows.
func (db *DB) execBatch(ctx context.Context, query string, args []interface{}) (int, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logging.Error().Err(rbErr).AnErr("original_error", err).Msg("Transaction rollback failed")
		}
		return 0, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		// DuckDB reports affected rows; treat a failure here as zero
		// inserted but keep the commit.
		logging.Warn().Err(err).Msg("RowsAffected unavailable for batch insert")
		affected = 0
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return int(affected), nil
}

// placeholderRows builds the VALUES placeholder list for a multi-row
// insert: "(?, ?), (?, ?), ...".
func placeholderRows(rows, cols int) string {
	row := "(" + strings.TrimSuffix(strings.Repeat("?, ", cols), ", ") + ")"
	var sb strings.Builder
	sb.Grow(len(row)*rows + 2*rows)
	for i := 0; i < rows; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(row)
	}
	return sb.String()
}

// LastScanTime returns the timestamp of the most recent scan, or nil when
// the table is empty.
func (db *DB) LastScanTime(ctx context.Context) (*time.Time, error) {
	return db.lastEventTime(ctx, "scans", "scanned_at")
}

// LastClickTime returns the timestamp of the most recent click, or nil
// when the table is empty.
func (db *DB) LastClickTime(ctx context.Context) (*time.Time, error) {
	return db.lastEventTime(ctx, "clicks", "clicked_at")
}

func (db *DB) lastEventTime(ctx context.Context, table, column string) (*time.Time, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := fmt.Sprintf("SELECT MAX(%s) FROM %s", column, table)

	var last *time.Time
	if err := db.conn.QueryRowContext(ctx, query).Scan(&last); err != nil {
		return nil, fmt.Errorf("failed to query last %s time: %w", table, err)
	}
	if last == nil {
		return nil, nil
	}
	t := last.In(db.loc)
	return &t, nil
}
