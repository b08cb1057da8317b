// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

// Package main is the entry point for the Luxboard server application.
//
// Luxboard is a self-hosted analytics platform for AR light-beacon
// installations. It ingests scan and click events, links them to the
// light / coordinate-system / scene / project hierarchy, and serves
// precomputed analytics (trends, funnels, sessions, cohorts) from an
// in-memory snapshot.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Load settings from environment variables and config files (Koanf v2)
//  2. Logging: zerolog with JSON/console output modes
//  3. Database: DuckDB event store with the beacon metadata schema
//  4. Importer: vendor export files (on-start and/or periodic remote pull)
//  5. Snapshot: initial in-memory analytics snapshot load
//  6. Ingest: embedded NATS JetStream server with publisher, WAL, and consumer pipeline
//  7. HTTP Server: REST API with Swagger documentation
//
// All long-running components are supervised by a Suture v4 tree; the
// ingest components that need ordered teardown (broker connection,
// publisher, WAL) are closed explicitly after the tree stops.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/luxboard/luxboard/docs" // generated swagger docs
	"github.com/luxboard/luxboard/internal/api"
	"github.com/luxboard/luxboard/internal/config"
	"github.com/luxboard/luxboard/internal/database"
	"github.com/luxboard/luxboard/internal/logging"
	"github.com/luxboard/luxboard/internal/metrics"
	"github.com/luxboard/luxboard/internal/snapshot"
	"github.com/luxboard/luxboard/internal/supervisor"
	"github.com/luxboard/luxboard/internal/supervisor/services"
	"github.com/luxboard/luxboard/internal/wal"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize zerolog with configuration
	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().Str("version", version).Msg("Starting Luxboard with supervisor tree")
	metrics.SetAppInfo(version)

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("timezone", cfg.Analytics.Timezone).
		Bool("ingest_enabled", cfg.Ingest.Enabled).
		Bool("wal_enabled", cfg.WAL.Enabled).
		Msg("Configuration loaded")

	// Hot-reload the log level when the config file changes. Everything
	// else requires a restart.
	if path := config.FindConfigFile(); path != "" {
		watchErr := config.WatchConfigFile(path, func() {
			fresh, reloadErr := config.LoadWithKoanf()
			if reloadErr != nil {
				logging.Warn().Err(reloadErr).Msg("Config reload failed, keeping current settings")
				return
			}
			logging.SetLevelString(fresh.Logging.Level)
			logging.Info().Str("level", fresh.Logging.Level).Msg("Log level reloaded from config file")
		})
		if watchErr != nil {
			logging.Warn().Err(watchErr).Str("path", path).Msg("Config file watching unavailable")
		}
	}

	if cfg.Server.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (LUXBOARD_DISABLE_RATE_LIMIT=true)")
		logging.Warn().Msg("This should only be used for isolated test environments!")
	}

	// Initialize database with the analytics timezone for bucket math
	db, err := database.New(&cfg.Database, cfg.Location())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	// Seed demo data if enabled (for local development and screenshots)
	if os.Getenv("LUXBOARD_SEED_DEMO") == "true" {
		logging.Info().Msg("Demo data seeding enabled (LUXBOARD_SEED_DEMO=true)")
		if err := db.SeedDemoData(context.Background()); err != nil {
			// Close database before fatal exit to ensure defer runs
			if closeErr := db.Close(); closeErr != nil {
				logging.Error().Err(closeErr).Msg("Error closing database")
			}
			logging.Fatal().Err(err).Msg("Failed to seed demo data")
		}
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snapshots, err := snapshot.NewManager(db)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create snapshot manager")
	}

	// Create structured logger for supervisor using our slog adapter
	// This bridges zerolog to slog for sutureslog compatibility
	slogLogger := logging.NewSlogLogger()

	tree, err := supervisor.NewSupervisorTree(slogLogger, supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	// Importer: on-start file import plus the optional remote pull service.
	// An on-start import failure is fatal because nothing re-runs it; the
	// admin reload endpoint only rebuilds the snapshot.
	imp, err := initImport(ctx, cfg, db, snapshots, tree)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize import")
	}

	// Load the initial snapshot so the API can answer from the start
	if err := snapshots.Reload(ctx); err != nil {
		logging.Fatal().Err(err).Msg("Failed to load initial snapshot")
	}
	logging.Info().Int64("snapshot_version", snapshots.Version()).Msg("Initial snapshot loaded")

	// Initialize event ingest (embedded NATS JetStream + consumer pipeline)
	ing, err := InitIngest(ctx, cfg, db, snapshots)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize event ingest")
	}

	handler := api.NewHandler(snapshots, db, ing.EventPublisher(), imp, cfg, version)

	// Drop cached responses whenever a fresh snapshot lands
	snapshots.OnReload(handler.ClearCache)

	middleware := api.NewMiddlewareFromConfig(&cfg.Server)
	router := api.NewRouter(handler, middleware)

	server := &http.Server{
		Addr:         cfg.ListenAddr(),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// === ADD SERVICES TO SUPERVISOR TREE ===

	// Data layer services
	tree.AddDataService(snapshot.NewRefreshService(snapshots, &cfg.Snapshot))
	logging.Info().
		Dur("refresh_interval", cfg.Snapshot.RefreshInterval).
		Msg("Snapshot refresher added to supervisor tree")

	if ing != nil && ing.wal != nil {
		tree.AddDataService(wal.NewRetryService(ing.wal, ing.durable.ReplayFunc()))
		logging.Info().Msg("WAL retry service added to supervisor tree")
	}

	// Messaging layer services
	if ing != nil {
		tree.AddMessagingService(services.NewPipelineService(ing.consumer, ing.batcher))
		logging.Info().Msg("Event pipeline added to supervisor tree")
	}

	// API layer services
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// Keep the uptime gauge current while the server runs
	startTime := time.Now()
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				metrics.UpdateUptime(startTime)
			}
		}
	}()

	// === START SUPERVISOR TREE ===

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// Wait for supervisor to finish (either from signal or error)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Wait for the error channel to close (supervisor finished)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	// Report any services that failed to stop within timeout
	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	// The pipeline service has already stopped the consumer and batcher;
	// close the broker-side components in order.
	ing.Shutdown(context.Background())

	logging.Info().Msg("Application stopped gracefully")
}
