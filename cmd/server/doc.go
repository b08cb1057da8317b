// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

/*
Package main is the entry point for the Luxboard server application.

Luxboard is a self-hosted analytics platform for AR light-beacon
installations. Visitors scan physical light beacons to localize inside a
venue and then interact with AR objects placed in the scene; Luxboard
ingests both event kinds, links them through the light, coordinate
system, scene, and project metadata, and answers analytics queries from
a precomputed in-memory snapshot.

# Application Architecture

The server implements a layered architecture with Suture v4 process
supervision:

	RootSupervisor ("luxboard")
	├── DataSupervisor ("data-layer")
	│   ├── Snapshot refresher (periodic + stale-triggered rebuilds)
	│   └── WAL retry loop (when wal.enabled)
	├── MessagingSupervisor ("messaging-layer")
	│   ├── Event pipeline (JetStream consumer + DuckDB batcher, when ingest.enabled)
	│   └── Remote import puller (when import.remote.enabled)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router)

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config files
 2. Logging: zerolog with JSON/console output modes
 3. Database: DuckDB event store with the beacon metadata schema
 4. Importer: vendor export files (on-start run when import.on_start)
 5. Snapshot: initial analytics snapshot load
 6. Ingest: embedded NATS JetStream server, publisher with circuit
    breaker, optional Badger WAL, and the consumer pipeline
 7. Supervisor Tree: Suture v4 process supervision
 8. HTTP Server: chi router with middleware stack

# Configuration

Configuration is loaded via Koanf v2 with layered sources (highest
priority wins):

	Priority: Environment variables > Config file > Defaults

The config file is discovered via LUXBOARD_CONFIG or the default search
paths (luxboard.yaml, /etc/luxboard/luxboard.yaml). Core environment
variables:

	# Server
	LUXBOARD_SERVER_HOST=0.0.0.0
	LUXBOARD_SERVER_PORT=5890
	LUXBOARD_LOG_LEVEL=info          # trace, debug, info, warn, error
	LUXBOARD_LOG_FORMAT=json         # json or console

	# Database
	LUXBOARD_DUCKDB_PATH=/data/luxboard.duckdb

	# Analytics
	LUXBOARD_TIMEZONE=UTC            # bucket boundaries and dayparting
	LUXBOARD_SESSION_GAP_MINUTES=10

	# Ingest (embedded NATS JetStream)
	LUXBOARD_INGEST_ENABLED=true
	LUXBOARD_NATS_STORE_DIR=/data/nats/jetstream
	LUXBOARD_CONSUMER_BATCH_SIZE=500

	# WAL (event durability across broker outages)
	LUXBOARD_WAL_ENABLED=true
	LUXBOARD_WAL_PATH=/data/wal

	# Import (vendor export files)
	LUXBOARD_IMPORT_ON_START=false
	LUXBOARD_IMPORT_SCANS_PATH=/data/import/scandata.csv
	LUXBOARD_IMPORT_CLICKS_PATH=/data/import/obj_click_log.csv
	LUXBOARD_IMPORT_METADATA_PATH=/data/import/metadata.json
	LUXBOARD_REMOTE_IMPORT_ENABLED=false
	LUXBOARD_REMOTE_IMPORT_BASE_URL=https://vendor.example.com/exports

# Operating Modes

Luxboard runs in three shapes depending on configuration:

	# Query-only: no live ingest, data arrives via import files
	export LUXBOARD_INGEST_ENABLED=false
	export LUXBOARD_IMPORT_ON_START=true
	./luxboard

	# Live ingest without durability (events lost if the broker dies mid-publish)
	export LUXBOARD_INGEST_ENABLED=true LUXBOARD_WAL_ENABLED=false
	./luxboard

	# Full pipeline: live ingest, WAL durability, periodic remote pulls
	export LUXBOARD_INGEST_ENABLED=true LUXBOARD_WAL_ENABLED=true
	export LUXBOARD_REMOTE_IMPORT_ENABLED=true
	export LUXBOARD_REMOTE_IMPORT_BASE_URL=https://vendor.example.com/exports
	./luxboard

# Signal Handling

The server handles graceful shutdown on SIGINT and SIGTERM:

 1. Stops accepting new HTTP connections
 2. Waits for in-flight requests (10s timeout)
 3. Stops the consumer pipeline and flushes the batcher
 4. Closes the publisher, WAL, and broker connection
 5. Shuts down the embedded NATS server
 6. Reports any services that failed to stop

# API Documentation

Swagger documentation is available at /swagger/index.html when the
server is running. Endpoints are organized into categories:

  - Core: Health checks, readiness probes, service status
  - Analytics: Trends, dayparting, funnel, ranking, sessions, cohorts,
    marketing, scene and light performance
  - Events: Live scan and click submission
  - Admin: Snapshot reload, performance statistics

Prometheus metrics are exposed at /metrics.

# See Also

  - internal/config: Configuration management
  - internal/supervisor: Process supervision
  - internal/api: HTTP handlers and routing
  - internal/eventprocessor: NATS JetStream ingest pipeline
  - internal/analytics: Snapshot query computations
*/
package main
