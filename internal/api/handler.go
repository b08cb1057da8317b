// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/luxboard/luxboard/internal/analytics"
	"github.com/luxboard/luxboard/internal/cache"
	"github.com/luxboard/luxboard/internal/config"
	"github.com/luxboard/luxboard/internal/eventprocessor"
	"github.com/luxboard/luxboard/internal/logging"
	"github.com/luxboard/luxboard/internal/middleware"
	"github.com/luxboard/luxboard/internal/models"
	"github.com/luxboard/luxboard/internal/snapshot"
)

// StoreReader is the slice of the store the HTTP layer needs: liveness
// and the status rollup. Analytics reads go through the snapshot
// manager instead.
type StoreReader interface {
	Ping(ctx context.Context) error
	GetStats(ctx context.Context) (*models.StoreStats, error)
}

// ImportStatus reports the state of the beacon log importer for the
// status endpoint.
type ImportStatus interface {
	LastSummary() *models.ImportSummary
	IsRunning() bool
}

// EventPublisher publishes beacon events into the ingest pipeline. This
// mirrors the durable publisher so the same instance serves both the
// HTTP ingest path and WAL replay.
type EventPublisher interface {
	PublishBeaconEvent(ctx context.Context, event *eventprocessor.BeaconEvent) error
}

// Handler contains the dependencies for the API handlers.
//
// Handler methods are split across files:
//   - handler.go: struct, constructor, shared range parsing (this file)
//   - response.go: envelope and error helpers
//   - executor.go: cache-first analytics execution
//   - handlers_analytics.go: the analytics query endpoints
//   - handlers_events.go: beacon event ingest
//   - handlers_admin.go: health, status, snapshot reload
type Handler struct {
	snapshots *snapshot.Manager
	db        StoreReader
	publisher EventPublisher
	importer  ImportStatus
	config    *config.Config
	cache     *cache.Cache
	perfMon   *middleware.PerformanceMonitor
	startTime time.Time
	version   string
}

// NewHandler creates an API handler. db, publisher, and importer may be
// nil; the affected endpoints then degrade to explicit error responses
// rather than panicking.
func NewHandler(snapshots *snapshot.Manager, db StoreReader, publisher EventPublisher, importer ImportStatus, cfg *config.Config, version string) *Handler {
	var responseCache *cache.Cache
	if cfg != nil && cfg.Cache.Enabled {
		responseCache = cache.New("api", cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}

	return &Handler{
		snapshots: snapshots,
		db:        db,
		publisher: publisher,
		importer:  importer,
		config:    cfg,
		cache:     responseCache,
		perfMon:   middleware.NewPerformanceMonitor(1000),
		startTime: time.Now(),
		version:   version,
	}
}

// Cache exposes the response cache so the snapshot manager can clear it
// after a reload. Nil when caching is disabled.
func (h *Handler) Cache() *cache.Cache {
	return h.cache
}

// ClearCache invalidates all cached analytics responses. Registered as
// a snapshot reload hook so clients never see results computed from a
// superseded snapshot version.
func (h *Handler) ClearCache() {
	if h.cache != nil {
		h.cache.Clear()
		logging.Debug().Msg("Analytics response cache cleared")
	}
}

// location returns the configured reporting timezone.
func (h *Handler) location() *time.Location {
	if h.config != nil {
		return h.config.Location()
	}
	return time.Local
}

// resolveRange turns the shared window parameters into a date range.
// Precedence: explicit start+end, then days, then months, then a
// trailing 30 days. The boolean reports whether the parameters were
// coherent (start and end must come paired).
func (h *Handler) resolveRange(start, end string, days, months int) (analytics.DateRange, bool) {
	loc := h.location()
	now := time.Now().In(loc)

	switch {
	case start != "" && end != "":
		from, err1 := time.ParseInLocation("2006-01-02", start, loc)
		to, err2 := time.ParseInLocation("2006-01-02", end, loc)
		if err1 != nil || err2 != nil {
			return analytics.DateRange{}, false
		}
		return analytics.NewDateRange(from, to, loc), true
	case start != "" || end != "":
		return analytics.DateRange{}, false
	case days > 0:
		return analytics.TrailingDays(days, now, loc), true
	case months > 0:
		return analytics.TrailingMonths(months, now, loc), true
	default:
		return analytics.TrailingDays(defaultWindowDays, now, loc), true
	}
}

// defaultWindowDays is the trailing window applied when a query names
// no range at all.
const defaultWindowDays = 30

// rangeOrRespond resolves the window parameters, writing a validation
// error and returning false when they are incoherent.
func (h *Handler) rangeOrRespond(w http.ResponseWriter, start, end string, days, months int) (analytics.DateRange, bool) {
	dateRange, ok := h.resolveRange(start, end, days, months)
	if !ok {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"start and end must be valid dates and given together", nil)
		return analytics.DateRange{}, false
	}
	return dateRange, true
}
