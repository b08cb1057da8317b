// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package metrics

import (
	"runtime"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Store metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	DBRowsLoaded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_rows_loaded_total",
			Help: "Total number of rows bulk-loaded into DuckDB",
		},
		[]string{"table"},
	)

	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Import metrics
	ImportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "import_duration_seconds",
			Help:    "Duration of beacon log imports in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"source"}, // "file", "remote"
	)

	ImportRecordsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "import_records_processed_total",
			Help: "Total number of beacon records imported",
		},
		[]string{"source", "kind"}, // kind: "scan", "click"
	)

	ImportRowsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "import_rows_skipped_total",
			Help: "Total number of malformed rows skipped during import",
		},
		[]string{"source", "reason"},
	)

	ImportErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "import_errors_total",
			Help: "Total number of import failures",
		},
		[]string{"source", "error_type"},
	)

	ImportLastSuccess = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "import_last_success_timestamp",
			Help: "Unix timestamp of the last successful import",
		},
		[]string{"source"},
	)

	// Cache metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache evictions",
		},
		[]string{"cache_type", "reason"}, // reason: "ttl", "capacity", "invalidated"
	)

	// Snapshot metrics
	SnapshotBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "snapshot_build_duration_seconds",
			Help:    "Duration of analytics snapshot builds in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	SnapshotVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "snapshot_version",
			Help: "Monotonic version of the current analytics snapshot",
		},
	)

	SnapshotEntities = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "snapshot_entities",
			Help: "Entity counts in the current analytics snapshot",
		},
		[]string{"entity"}, // "projects", "scans", "clicks", "objects", ...
	)

	SnapshotLastRefresh = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "snapshot_last_refresh_timestamp",
			Help: "Unix timestamp of the last snapshot refresh",
		},
	)

	SnapshotStale = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "snapshot_stale",
			Help: "Whether the current snapshot is marked stale (0 or 1)",
		},
	)

	// Engine metrics
	ComputationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "engine_computation_duration_seconds",
			Help:    "Duration of analytics engine computations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"computation"},
	)

	// Beacon event pipeline metrics
	NATSMessagesPublished = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nats_messages_published_total",
			Help: "Total number of events published to NATS",
		},
	)

	NATSMessagesConsumed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nats_messages_consumed_total",
			Help: "Total number of events consumed from NATS",
		},
	)

	NATSMessagesProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nats_messages_processed_total",
			Help: "Total number of events successfully processed",
		},
	)

	NATSMessagesDeduplicated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nats_messages_deduplicated_total",
			Help: "Total number of events skipped as duplicates",
		},
	)

	NATSMessagesParseFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nats_messages_parse_failed_total",
			Help: "Total number of events that failed to parse",
		},
	)

	NATSProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nats_processing_duration_seconds",
			Help:    "Duration of event processing in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	NATSBatchFlushDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nats_batch_flush_duration_seconds",
			Help:    "Duration of batch flush operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	NATSBatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nats_batch_size",
			Help:    "Number of events in each batch flush",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	NATSConsumerLag = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nats_consumer_lag",
			Help: "Number of pending events in the NATS consumer",
		},
	)

	// Write-ahead log metrics
	WALEntriesPending = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wal_entries_pending",
			Help: "Current number of unconfirmed WAL entries",
		},
	)

	WALEntriesAppended = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wal_entries_appended_total",
			Help: "Total number of entries appended to the WAL",
		},
	)

	WALEntriesConfirmed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wal_entries_confirmed_total",
			Help: "Total number of WAL entries confirmed durable",
		},
	)

	WALEntriesReplayed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wal_entries_replayed_total",
			Help: "Total number of WAL entries replayed after restart",
		},
	)

	WALReplayDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wal_replay_duration_seconds",
			Help:    "Duration of WAL replay on startup in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Circuit breaker metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breakers",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordDBQuery records a store query with its outcome.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

// RecordAPIRequest records one served API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordImportRun records an import run with its outcome. The error,
// when present, is bucketed into a coarse error type.
func RecordImportRun(source string, duration time.Duration, err error) {
	ImportDuration.WithLabelValues(source).Observe(duration.Seconds())
	if err != nil {
		errorType := "other"
		errorMsg := err.Error()
		switch {
		case strings.Contains(errorMsg, "open"), strings.Contains(errorMsg, "no such file"):
			errorType = "file"
		case strings.Contains(errorMsg, "parse"), strings.Contains(errorMsg, "csv"):
			errorType = "format"
		case strings.Contains(errorMsg, "database"), strings.Contains(errorMsg, "duckdb"):
			errorType = "database"
		case strings.Contains(errorMsg, "http"), strings.Contains(errorMsg, "remote"):
			errorType = "remote"
		}
		ImportErrors.WithLabelValues(source, errorType).Inc()
		return
	}
	ImportLastSuccess.WithLabelValues(source).Set(float64(time.Now().Unix()))
}

// RecordImportRecords counts imported records of one kind.
func RecordImportRecords(source, kind string, count int) {
	ImportRecordsProcessed.WithLabelValues(source, kind).Add(float64(count))
}

// RecordImportSkip counts malformed rows skipped during import.
func RecordImportSkip(source, reason string, count int) {
	ImportRowsSkipped.WithLabelValues(source, reason).Add(float64(count))
}

// RecordCacheHit records a hit for one cache type.
func RecordCacheHit(cacheType string) {
	CacheHits.WithLabelValues(cacheType).Inc()
}

// RecordCacheMiss records a miss for one cache type.
func RecordCacheMiss(cacheType string) {
	CacheMisses.WithLabelValues(cacheType).Inc()
}

// RecordCacheEviction records an eviction with its reason.
func RecordCacheEviction(cacheType, reason string) {
	CacheEvictions.WithLabelValues(cacheType, reason).Inc()
}

// UpdateCacheSize sets the entry count gauge for one cache type.
func UpdateCacheSize(cacheType string, size int) {
	CacheSize.WithLabelValues(cacheType).Set(float64(size))
}

// RecordSnapshotBuild records a completed snapshot build.
func RecordSnapshotBuild(version int64, duration time.Duration, entities map[string]int) {
	SnapshotBuildDuration.Observe(duration.Seconds())
	SnapshotVersion.Set(float64(version))
	SnapshotLastRefresh.Set(float64(time.Now().Unix()))
	SnapshotStale.Set(0)
	for entity, count := range entities {
		SnapshotEntities.WithLabelValues(entity).Set(float64(count))
	}
}

// MarkSnapshotStale flips the staleness gauge.
func MarkSnapshotStale(stale bool) {
	if stale {
		SnapshotStale.Set(1)
	} else {
		SnapshotStale.Set(0)
	}
}

// RecordComputation records one analytics engine computation.
func RecordComputation(name string, duration time.Duration) {
	ComputationDuration.WithLabelValues(name).Observe(duration.Seconds())
}

// RecordNATSPublish records an event published to the broker.
func RecordNATSPublish() {
	NATSMessagesPublished.Inc()
}

// RecordNATSConsume records an event consumed from the broker.
func RecordNATSConsume() {
	NATSMessagesConsumed.Inc()
}

// RecordNATSProcessed records an event handled successfully.
func RecordNATSProcessed() {
	NATSMessagesProcessed.Inc()
}

// RecordNATSDeduplicated records an event dropped as a duplicate.
func RecordNATSDeduplicated() {
	NATSMessagesDeduplicated.Inc()
}

// RecordNATSParseFailed records an event that failed to parse.
func RecordNATSParseFailed() {
	NATSMessagesParseFailed.Inc()
}

// RecordNATSProcessingDuration records one event's processing time.
func RecordNATSProcessingDuration(duration time.Duration) {
	NATSProcessingDuration.Observe(duration.Seconds())
}

// RecordNATSBatchFlush records a batch flush and its size.
func RecordNATSBatchFlush(duration time.Duration, batchSize int) {
	NATSBatchFlushDuration.Observe(duration.Seconds())
	NATSBatchSize.Observe(float64(batchSize))
}

// UpdateNATSConsumerLag sets the consumer lag gauge.
func UpdateNATSConsumerLag(lag int64) {
	NATSConsumerLag.Set(float64(lag))
}

// RecordWALAppend records an entry appended to the WAL.
func RecordWALAppend() {
	WALEntriesAppended.Inc()
	WALEntriesPending.Inc()
}

// RecordWALConfirm records an entry confirmed durable.
func RecordWALConfirm() {
	WALEntriesConfirmed.Inc()
	WALEntriesPending.Dec()
}

// RecordWALReplay records a completed startup replay.
func RecordWALReplay(count int, duration time.Duration) {
	WALEntriesReplayed.Add(float64(count))
	WALReplayDuration.Observe(duration.Seconds())
}

// UpdateWALPending sets the pending entry gauge from a store scan.
func UpdateWALPending(count int64) {
	WALEntriesPending.Set(float64(count))
}

// RecordBreakerRequest records a request result through a named
// breaker.
func RecordBreakerRequest(name, result string) {
	CircuitBreakerRequests.WithLabelValues(name, result).Inc()
}

// RecordBreakerTransition records a breaker state change and updates
// the state gauge. State names follow gobreaker's String() values.
func RecordBreakerTransition(name, from, to string) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
	CircuitBreakerState.WithLabelValues(name).Set(breakerStateValue(to))
}

func breakerStateValue(state string) float64 {
	switch state {
	case "closed":
		return 0
	case "half-open":
		return 1
	case "open":
		return 2
	default:
		return -1
	}
}

// SetAppInfo records the running version. Called once at startup.
func SetAppInfo(version string) {
	AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
}

// UpdateUptime sets the uptime gauge from the process start time.
func UpdateUptime(start time.Time) {
	AppUptime.Set(time.Since(start).Seconds())
}
