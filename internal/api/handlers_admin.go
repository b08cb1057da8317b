// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package api

import (
	"net/http"
	"time"

	"github.com/luxboard/luxboard/internal/cache"
	"github.com/luxboard/luxboard/internal/logging"
	"github.com/luxboard/luxboard/internal/middleware"
	"github.com/luxboard/luxboard/internal/models"
)

// Health handles health check requests
//
// @Summary Get system health status
// @Description Returns health status including store connectivity, snapshot state, and uptime
// @Tags Core
// @Accept json
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthStatus} "Health status retrieved successfully"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	dbConnected := h.db != nil && h.db.Ping(r.Context()) == nil

	snapLoaded := false
	var snapVersion int64
	if h.snapshots != nil {
		snap, version := h.snapshots.Get()
		snapLoaded = snap != nil
		snapVersion = version
	}

	status := "healthy"
	if !dbConnected || !snapLoaded {
		status = "degraded"
	}

	health := models.HealthStatus{
		Status:            status,
		Version:           h.version,
		DatabaseConnected: dbConnected,
		SnapshotLoaded:    snapLoaded,
		SnapshotVersion:   snapVersion,
		Uptime:            time.Since(h.startTime).Seconds(),
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   health,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
//
// @Summary Kubernetes liveness probe
// @Description Returns 200 OK if the process is alive, regardless of external dependencies.
// @Tags Core
// @Accept json
// @Produce json
// @Success 200 {object} models.APIResponse "Service is alive"
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// Returns 200 OK only if the service can answer analytics queries
//
// @Summary Kubernetes readiness probe
// @Description Returns 200 OK only when the store is reachable and a snapshot is loaded. Returns 503 otherwise.
// @Tags Core
// @Accept json
// @Produce json
// @Success 200 {object} models.APIResponse "Service is ready"
// @Failure 503 {object} models.APIResponse "Service is not ready"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	dbConnected := h.db != nil && h.db.Ping(r.Context()) == nil
	snapLoaded := h.snapshots != nil && h.snapshots.Current() != nil
	ready := dbConnected && snapLoaded

	statusCode := http.StatusOK
	status := "ready"
	if !ready {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status: status,
		Data: map[string]interface{}{
			"database_connected": dbConnected,
			"snapshot_loaded":    snapLoaded,
			"ready_to_serve":     ready,
			"uptime":             time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// Status returns the full service status document: snapshot state,
// store record counts, and the most recent import outcome.
//
// @Summary Get service status
// @Description Returns snapshot version and age, store record counts, and the last import summary
// @Tags Core
// @Accept json
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.ServiceStatus} "Status retrieved successfully"
// @Failure 500 {object} models.APIResponse "Store stats unavailable"
// @Router /status [get]
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	status := models.ServiceStatus{
		Status:        "ok",
		Version:       h.version,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
	}

	snapLoaded := false
	if h.snapshots != nil {
		snap, version := h.snapshots.Get()
		snapLoaded = snap != nil
		status.SnapshotVersion = version
		status.SnapshotStale = h.snapshots.IsStale()
		if loadedAt := h.snapshots.LoadedAt(); !loadedAt.IsZero() {
			status.SnapshotAge = time.Since(loadedAt).Seconds()
		}
	}

	dbConnected := false
	if h.db != nil {
		stats, err := h.db.GetStats(r.Context())
		if err != nil {
			respondError(w, http.StatusInternalServerError, "DATABASE_ERROR",
				"Failed to collect store statistics", err)
			return
		}
		dbConnected = true
		status.Store = *stats
	}

	if !dbConnected || !snapLoaded {
		status.Status = "degraded"
	}

	if h.importer != nil {
		status.LastImport = h.importer.LastSummary()
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   status,
		Metadata: models.Metadata{
			Timestamp:       time.Now(),
			SnapshotVersion: status.SnapshotVersion,
		},
	})
}

// ReloadSnapshot forces an immediate snapshot rebuild from the store.
// The refresher keeps running on its own schedule; this endpoint exists
// for operators who just finished an import and want fresh numbers now.
//
// @Summary Force a snapshot reload
// @Description Rebuilds the analytics snapshot from the store immediately and returns the new version
// @Tags Admin
// @Accept json
// @Produce json
// @Success 200 {object} models.APIResponse "Snapshot reloaded"
// @Failure 500 {object} models.APIResponse "Reload failed"
// @Failure 503 {object} models.APIResponse "Snapshot manager unavailable"
// @Router /admin/reload [post]
func (h *Handler) ReloadSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	if h.snapshots == nil {
		respondError(w, http.StatusServiceUnavailable, "SERVICE_ERROR", "Snapshot manager not available", nil)
		return
	}

	start := time.Now()
	if err := h.snapshots.Reload(r.Context()); err != nil {
		respondError(w, http.StatusInternalServerError, "SERVICE_ERROR",
			"Snapshot reload failed", err)
		return
	}

	version := h.snapshots.Version()
	logging.Info().
		Int64("snapshot_version", version).
		Dur("duration", time.Since(start)).
		Msg("Snapshot reloaded via admin endpoint")

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"snapshot_version": version,
			"loaded_at":        h.snapshots.LoadedAt(),
			"duration_ms":      time.Since(start).Milliseconds(),
		},
		Metadata: models.Metadata{
			Timestamp:       time.Now(),
			SnapshotVersion: version,
		},
	})
}

// PerformanceStats reports per-endpoint latency percentiles from the
// sliding request window and response cache hit rates.
//
// @Summary Get API performance statistics
// @Description Returns per-endpoint latency percentiles and response cache statistics
// @Tags Admin
// @Accept json
// @Produce json
// @Success 200 {object} models.APIResponse "Performance statistics retrieved successfully"
// @Router /admin/performance [get]
func (h *Handler) PerformanceStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"endpoints": h.GetPerformanceStats(),
			"cache":     h.GetCacheStats(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// GetPerformanceStats returns aggregated request latency statistics.
func (h *Handler) GetPerformanceStats() []middleware.EndpointStats {
	if h.perfMon != nil {
		return h.perfMon.GetStats()
	}
	return nil
}

// GetCacheStats returns response cache counters. Zero-valued when
// caching is disabled.
func (h *Handler) GetCacheStats() cache.Stats {
	if h.cache != nil {
		return h.cache.GetStats()
	}
	return cache.Stats{}
}
