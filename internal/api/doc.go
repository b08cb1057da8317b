// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

// Package api provides the HTTP surface of the service: a chi router,
// production middleware (CORS, rate limiting, security headers, request
// IDs, Prometheus instrumentation), and handlers for analytics queries,
// beacon event ingest, and operational endpoints.
//
// Every analytics endpoint follows the same cache-first flow: parse and
// validate query parameters, look up the response cache keyed on the
// snapshot version plus the parameters, compute against the immutable
// snapshot on a miss, and respond with the standard APIResponse
// envelope. Responses carry an FNV-1a ETag and short-lived public cache
// headers so dashboards polling the same window are cheap.
//
// Route map:
//
//	GET  /health, /health/live, /health/ready
//	GET  /metrics                   (Prometheus)
//	GET  /swagger/*                 (OpenAPI UI)
//	GET  /api/v1/status
//	GET  /api/v1/analytics/...      (ten query endpoints)
//	POST /api/v1/events/{kind}      (scan|click ingest)
//	POST /api/v1/admin/reload       (force snapshot reload)
//	GET  /api/v1/admin/performance  (latency percentiles, cache stats)
//
// Handlers never reach into the store for analytics data; they read the
// current snapshot from the snapshot manager, so query latency is
// independent of ingest load.
package api
