// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"

	"github.com/luxboard/luxboard/internal/models"
	"github.com/luxboard/luxboard/internal/snapshot"
)

// =====================================================
// Window and validation behavior
// =====================================================

func TestAnalyticsTrends_ExplicitRange(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec, envelope := doRequest(t, env.mux, http.MethodGet,
		"/api/v1/analytics/trends?start=2026-08-01&end=2026-08-31", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	if envelope.Status != "success" {
		t.Errorf("envelope status = %q, want success", envelope.Status)
	}
	if envelope.Metadata.SnapshotVersion < 1 {
		t.Errorf("snapshot_version = %d, want >= 1", envelope.Metadata.SnapshotVersion)
	}

	var points []models.TrendPoint
	if err := json.Unmarshal(envelope.Data, &points); err != nil {
		t.Fatalf("Failed to decode trend points: %v", err)
	}
	if len(points) != 31 {
		t.Fatalf("Expected 31 daily buckets for August, got %d", len(points))
	}

	totalScans, totalClicks := 0, 0
	for _, p := range points {
		totalScans += p.Scans
		totalClicks += p.Clicks
	}
	if totalScans != 3 {
		t.Errorf("Total scans = %d, want 3", totalScans)
	}
	if totalClicks != 3 {
		t.Errorf("Total clicks = %d, want 3", totalClicks)
	}
}

func TestAnalyticsTrends_MonthlyInterval(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec, envelope := doRequest(t, env.mux, http.MethodGet,
		"/api/v1/analytics/trends?interval=month&start=2026-07-01&end=2026-08-31", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", rec.Code)
	}

	var points []models.TrendPoint
	if err := json.Unmarshal(envelope.Data, &points); err != nil {
		t.Fatalf("Failed to decode trend points: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("Expected 2 monthly buckets, got %d", len(points))
	}
	if points[1].Label != "2026-08" {
		t.Errorf("Second bucket label = %q, want 2026-08", points[1].Label)
	}
	if points[1].Scans != 3 || points[1].Clicks != 3 {
		t.Errorf("August bucket = %d scans / %d clicks, want 3/3", points[1].Scans, points[1].Clicks)
	}
}

func TestAnalyticsTrends_CacheHit(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	path := "/api/v1/analytics/trends?start=2026-08-01&end=2026-08-31"

	_, first := doRequest(t, env.mux, http.MethodGet, path, nil)
	if first.Metadata.Cached {
		t.Error("First request should not be served from cache")
	}

	_, second := doRequest(t, env.mux, http.MethodGet, path, nil)
	if !second.Metadata.Cached {
		t.Error("Second identical request should be served from cache")
	}
	if second.Metadata.QueryTimeMS != 0 {
		t.Errorf("Cached query_time_ms = %d, want 0", second.Metadata.QueryTimeMS)
	}
}

func TestAnalyticsTrends_InvalidInterval(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec, envelope := doRequest(t, env.mux, http.MethodGet,
		"/api/v1/analytics/trends?interval=week", nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Status = %d, want 400", rec.Code)
	}
	if envelope.Error == nil || envelope.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("Expected VALIDATION_ERROR, got %+v", envelope.Error)
	}
}

func TestAnalytics_OneSidedRange(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec, envelope := doRequest(t, env.mux, http.MethodGet,
		"/api/v1/analytics/funnel?start=2026-08-01", nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Status = %d, want 400", rec.Code)
	}
	if envelope.Error == nil || envelope.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("Expected VALIDATION_ERROR, got %+v", envelope.Error)
	}
}

func TestAnalytics_MalformedDate(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec, _ := doRequest(t, env.mux, http.MethodGet,
		"/api/v1/analytics/dayparting?start=yesterday&end=2026-08-31", nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Status = %d, want 400", rec.Code)
	}
}

func TestAnalytics_SnapshotUnavailable(t *testing.T) {
	t.Parallel()

	// Manager constructed but never loaded.
	manager, err := snapshot.NewManager(&testLoader{})
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	cfg := testConfig()
	handler := NewHandler(manager, &fakeStore{}, &fakePublisher{}, &fakeImporter{}, cfg, "test")
	mux := NewRouter(handler, NewMiddlewareFromConfig(&cfg.Server)).SetupChi()

	rec, envelope := doRequest(t, mux, http.MethodGet, "/api/v1/analytics/trends?days=7", nil)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("Status = %d, want 503", rec.Code)
	}
	if envelope.Error == nil || envelope.Error.Code != "SNAPSHOT_UNAVAILABLE" {
		t.Errorf("Expected SNAPSHOT_UNAVAILABLE, got %+v", envelope.Error)
	}
}

// =====================================================
// Endpoint coverage
// =====================================================

func TestAnalyticsEndpoints_AllServe(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	endpoints := []string{
		"/api/v1/analytics/trends",
		"/api/v1/analytics/dayparting",
		"/api/v1/analytics/funnel",
		"/api/v1/analytics/clicks/ranking",
		"/api/v1/analytics/sessions/insights",
		"/api/v1/analytics/cohorts",
		"/api/v1/analytics/objects/11/marketing",
		"/api/v1/analytics/scenes/comparison",
		"/api/v1/analytics/lights/performance",
		"/api/v1/analytics/performance/merged",
	}

	for _, path := range endpoints {
		t.Run(path, func(t *testing.T) {
			rec, envelope := doRequest(t, env.mux, http.MethodGet, path, nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("Status = %d, want 200; body: %s", rec.Code, rec.Body.String())
			}
			if envelope.Status != "success" {
				t.Errorf("envelope status = %q, want success", envelope.Status)
			}
			if rec.Header().Get("ETag") == "" {
				t.Error("Expected ETag header on analytics response")
			}
		})
	}
}

func TestAnalyticsClickRanking(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec, envelope := doRequest(t, env.mux, http.MethodGet,
		"/api/v1/analytics/clicks/ranking?limit=1&start=2026-08-01&end=2026-08-31", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", rec.Code)
	}

	var rows []models.ClickRankingRow
	if err := json.Unmarshal(envelope.Data, &rows); err != nil {
		t.Fatalf("Failed to decode ranking rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row with limit=1, got %d", len(rows))
	}
	if rows[0].ObjectID != 11 {
		t.Errorf("Top object = %d, want 11 (has two clicks)", rows[0].ObjectID)
	}
	if rows[0].Clicks != 2 {
		t.Errorf("Top object clicks = %d, want 2", rows[0].Clicks)
	}
	if rows[0].ObjectName != "Lighthouse Hologram" {
		t.Errorf("Top object name = %q, want Lighthouse Hologram", rows[0].ObjectName)
	}
}

func TestAnalyticsClickRanking_LimitValidation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	tests := []struct {
		name  string
		limit string
	}{
		{"limit zero", "0"},
		{"limit negative", "-1"},
		{"limit above maximum", "2000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, envelope := doRequest(t, env.mux, http.MethodGet,
				"/api/v1/analytics/clicks/ranking?limit="+tt.limit, nil)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("Status = %d, want 400", rec.Code)
			}
			if envelope.Error == nil || envelope.Error.Code != "VALIDATION_ERROR" {
				t.Errorf("Expected VALIDATION_ERROR, got %+v", envelope.Error)
			}
		})
	}
}

func TestAnalyticsSessionInsights_GapValidation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	for _, gap := range []string{"0", "2000"} {
		rec, _ := doRequest(t, env.mux, http.MethodGet,
			"/api/v1/analytics/sessions/insights?gap="+gap, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("gap=%s: status = %d, want 400", gap, rec.Code)
		}
	}

	rec, _ := doRequest(t, env.mux, http.MethodGet,
		"/api/v1/analytics/sessions/insights?gap=30&start=2026-08-01&end=2026-08-31", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("gap=30: status = %d, want 200", rec.Code)
	}
}

func TestAnalyticsCohorts_Granularity(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	for _, granularity := range []string{"", "global", "project", "scene"} {
		path := "/api/v1/analytics/cohorts?start=2026-08-01&end=2026-08-31"
		if granularity != "" {
			path += "&granularity=" + granularity
		}
		rec, _ := doRequest(t, env.mux, http.MethodGet, path, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("granularity=%q: status = %d, want 200", granularity, rec.Code)
		}
	}

	rec, envelope := doRequest(t, env.mux, http.MethodGet,
		"/api/v1/analytics/cohorts?granularity=hourly", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("granularity=hourly: status = %d, want 400", rec.Code)
	}
	if envelope.Error == nil || envelope.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("Expected VALIDATION_ERROR, got %+v", envelope.Error)
	}
}

func TestAnalyticsObjectMarketing_BadID(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec, envelope := doRequest(t, env.mux, http.MethodGet,
		"/api/v1/analytics/objects/abc/marketing", nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Status = %d, want 400", rec.Code)
	}
	if envelope.Error == nil || envelope.Error.Message != "Object id must be an integer" {
		t.Errorf("Unexpected error: %+v", envelope.Error)
	}
}

func TestAnalyticsHandlers_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	// Direct handler invocation: the in-handler guard must reject
	// non-GET methods even without the router in front.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analytics/trends", nil)
	rec := httptest.NewRecorder()
	env.handler.AnalyticsTrends(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Status = %d, want 405", rec.Code)
	}
}

// =====================================================
// Benchmarks
// =====================================================

func BenchmarkAnalyticsTrends(b *testing.B) {
	env := newTestEnv(b)
	path := "/api/v1/analytics/trends?start=2026-08-01&end=2026-08-31"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		env.mux.ServeHTTP(rec, req)
	}
}

func BenchmarkAnalyticsClickRanking(b *testing.B) {
	env := newTestEnv(b)
	path := "/api/v1/analytics/clicks/ranking?limit=10&start=2026-08-01&end=2026-08-31"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		env.mux.ServeHTTP(rec, req)
	}
}
