// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

/*
Package middleware provides transport-agnostic HTTP middleware shared by
the API router.

The middleware here is written against http.HandlerFunc (or plain
http.Handler for the performance monitor) so it composes with both chi
route groups and bare handlers in tests. Routing-aware middleware such
as CORS, rate limiting, and request ID propagation lives in the api
package next to the router that configures it.

Key Components:

  - Compression: gzip encoding for clients that send Accept-Encoding
  - PrometheusMetrics: request counters, duration histograms, and an
    active-request gauge via the metrics package
  - PerformanceMonitor: sliding window of request latencies with
    percentile summaries, served on the admin surface

Usage Example - Compression:

	import "github.com/luxboard/luxboard/internal/middleware"

	// Wrap a handler with gzip compression
	handler := middleware.Compression(analyticsHandler)

Usage Example - Performance Monitoring:

	perfMon := middleware.NewPerformanceMonitor(1000)

	// Install as chi-compatible middleware
	r.Use(perfMon.Middleware)

	// Serve aggregated percentiles
	stats := perfMon.GetStats()

Thread Safety:

All components are safe for concurrent use. Compression draws gzip
writers from a sync.Pool, the performance monitor guards its sample
window with a sync.RWMutex, and the Prometheus collectors are atomic.

See Also:

  - internal/api: router and routing-aware middleware
  - internal/metrics: Prometheus metric definitions
*/
package middleware
