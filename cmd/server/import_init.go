// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package main

import (
	"context"
	"fmt"

	"github.com/luxboard/luxboard/internal/config"
	"github.com/luxboard/luxboard/internal/database"
	"github.com/luxboard/luxboard/internal/importer"
	"github.com/luxboard/luxboard/internal/logging"
	"github.com/luxboard/luxboard/internal/snapshot"
	"github.com/luxboard/luxboard/internal/supervisor"
)

// initImport creates the vendor export importer, runs the on-start
// import when configured, and registers the periodic remote pull
// service with the supervisor tree.
//
// The importer is always created, even with no import paths configured,
// because the status endpoint reports its last summary. The on-start
// import is fatal on failure: the reload endpoint only rebuilds the
// snapshot, so a silently skipped import would go unnoticed until
// someone checks the numbers.
func initImport(ctx context.Context, cfg *config.Config, db *database.DB, snapshots *snapshot.Manager, tree *supervisor.SupervisorTree) (*importer.Importer, error) {
	imp := importer.NewImporter(&cfg.Import, db, snapshots, cfg.Location())

	if cfg.Import.OnStart {
		logging.Info().
			Str("scans", cfg.Import.ScansPath).
			Str("clicks", cfg.Import.ClicksPath).
			Str("metadata", cfg.Import.MetadataPath).
			Msg("Running on-start import")

		stats, err := imp.Run(ctx)
		if err != nil {
			return nil, fmt.Errorf("on-start import: %w", err)
		}
		logging.Info().
			Int64("scans_inserted", stats.ScansInserted).
			Int64("scan_duplicates", stats.ScanDuplicates).
			Int64("clicks_inserted", stats.ClicksInserted).
			Int64("click_duplicates", stats.ClickDuplicates).
			Dur("duration", stats.EndTime.Sub(stats.StartTime)).
			Msg("On-start import finished")
	}

	if cfg.Import.Remote.Enabled {
		fetcher := importer.NewRemoteFetcher(&cfg.Import.Remote)
		tree.AddMessagingService(importer.NewRemoteService(imp, fetcher, cfg.Import.Remote.Interval))
		logging.Info().
			Str("base_url", cfg.Import.Remote.BaseURL).
			Dur("interval", cfg.Import.Remote.Interval).
			Msg("Remote import service added to supervisor tree")
	}

	return imp, nil
}
