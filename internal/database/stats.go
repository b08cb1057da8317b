// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/luxboard/luxboard/internal/metrics"
	"github.com/luxboard/luxboard/internal/models"
)

// GetStats returns row counts and high-water marks for the status
// endpoint.
func (db *DB) GetStats(ctx context.Context) (*models.StoreStats, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	stats := &models.StoreStats{}

	counts := []struct {
		query string
		dest  *int64
	}{
		{`SELECT COUNT(*) FROM scans`, &stats.Scans},
		{`SELECT COUNT(*) FROM clicks`, &stats.Clicks},
		{`SELECT COUNT(*) FROM projects`, &stats.Projects},
		{`SELECT COUNT(*) FROM ar_objects`, &stats.Objects},
		{`SELECT COUNT(*) FROM coordinate_systems`, &stats.CoordinateSystems},
		{`SELECT COUNT(*) FROM light_configs`, &stats.LightConfigs},
		{`SELECT COUNT(DISTINCT client_id) FROM scans`, &stats.UniqueClients},
		{`SELECT COUNT(DISTINCT user_code) FROM clicks WHERE user_code <> ''`, &stats.UniqueUsers},
	}
	for _, c := range counts {
		if err := db.conn.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			metrics.RecordDBQuery("stats", "all", time.Since(start), err)
			return nil, fmt.Errorf("failed to count rows: %s: %w", c.query, err)
		}
	}

	lastScan, err := db.LastScanTime(ctx)
	if err != nil {
		return nil, err
	}
	lastClick, err := db.LastClickTime(ctx)
	if err != nil {
		return nil, err
	}
	stats.LastScanAt = lastScan
	stats.LastClickAt = lastClick

	metrics.RecordDBQuery("stats", "all", time.Since(start), nil)
	return stats, nil
}
