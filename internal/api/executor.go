// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package api

import (
	"net/http"
	"time"

	"github.com/luxboard/luxboard/internal/analytics"
	"github.com/luxboard/luxboard/internal/cache"
	"github.com/luxboard/luxboard/internal/metrics"
	"github.com/luxboard/luxboard/internal/models"
)

// AnalyticsQueryExecutor encapsulates the common pattern for analytics
// query handlers. It implements a cache-first execution flow:
//
//  1. Take the current snapshot and its version from the manager
//  2. Check the response cache keyed on (computation, version, params)
//  3. Run the computation against the snapshot on a miss
//  4. Cache the result for subsequent requests
//  5. Respond with the envelope including query time and version
//
// Because the snapshot version is part of the cache key, a reload
// naturally invalidates every cached response without coordination; the
// reload hook clearing the cache just reclaims the memory sooner.
type AnalyticsQueryExecutor struct {
	handler *Handler
}

// NewAnalyticsQueryExecutor creates an executor bound to a handler.
func NewAnalyticsQueryExecutor(h *Handler) *AnalyticsQueryExecutor {
	return &AnalyticsQueryExecutor{handler: h}
}

// ComputeFunc runs one analytics computation against a snapshot. The
// result must be JSON-serializable as it is cached and wrapped in an
// APIResponse. Computations are pure so there is no error path.
type ComputeFunc func(s *analytics.Snapshot) interface{}

// versionedKey pins cached responses to the snapshot they were computed
// from.
type versionedKey struct {
	Version int64       `json:"version"`
	Params  interface{} `json:"params"`
}

// Execute runs a computation with automatic caching.
//
// Cache hits return immediately with 0ms query time. Misses include the
// actual computation time in milliseconds and feed the per-computation
// duration histogram.
func (e *AnalyticsQueryExecutor) Execute(
	w http.ResponseWriter,
	r *http.Request,
	name string,
	params interface{},
	compute ComputeFunc,
) {
	if e.handler.snapshots == nil {
		respondError(w, http.StatusServiceUnavailable, "SERVICE_ERROR", "Snapshot manager not available", nil)
		return
	}

	snap, version := e.handler.snapshots.Get()
	if snap == nil {
		respondError(w, http.StatusServiceUnavailable, "SNAPSHOT_UNAVAILABLE",
			"No analytics snapshot loaded yet", nil)
		return
	}

	cacheKey := cache.GenerateKey(name, versionedKey{Version: version, Params: params})

	if e.handler.cache != nil {
		if cached, found := e.handler.cache.Get(cacheKey); found {
			respondJSON(w, http.StatusOK, &models.APIResponse{
				Status: "success",
				Data:   cached,
				Metadata: models.Metadata{
					Timestamp:       time.Now(),
					QueryTimeMS:     0,
					Cached:          true,
					SnapshotVersion: version,
				},
			})
			return
		}
	}

	start := time.Now()
	data := compute(snap)
	elapsed := time.Since(start)
	metrics.RecordComputation(name, elapsed)

	if e.handler.cache != nil {
		e.handler.cache.Set(cacheKey, data)
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:       time.Now(),
			QueryTimeMS:     elapsed.Milliseconds(),
			SnapshotVersion: version,
		},
	})
}
