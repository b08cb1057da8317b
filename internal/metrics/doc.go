// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

// Package metrics defines Luxboard's Prometheus instrumentation.
//
// Every metric is a package-level promauto collector registered on the
// default registry, grouped by subsystem:
//
//	duckdb_*           store queries and bulk loads
//	api_*              HTTP endpoint latency, throughput, rate limiting
//	import_*           CSV and remote beacon log imports
//	cache_*            response cache efficiency per cache type
//	snapshot_*         in-memory snapshot builds and entity counts
//	nats_*             beacon event pipeline (publish, consume, batch)
//	wal_*              write-ahead log entries and replay
//	circuit_breaker_*  remote import breaker state
//	app_*              version and uptime
//
// Callers either touch collectors directly or go through the Record*
// helpers, which keep label conventions in one place:
//
//	defer func(start time.Time) {
//	    metrics.RecordDBQuery("insert", "scans", time.Since(start), err)
//	}(time.Now())
//
// The /metrics endpoint is wired in the api package via promhttp.
package metrics
