// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/luxboard/luxboard/internal/analytics"
	"github.com/luxboard/luxboard/internal/config"
	"github.com/luxboard/luxboard/internal/eventprocessor"
	"github.com/luxboard/luxboard/internal/models"
	"github.com/luxboard/luxboard/internal/snapshot"
)

// =====================================================
// Shared test fixtures
// =====================================================

func fixtureDate(day, hour, minute int) time.Time {
	return time.Date(2026, time.August, day, hour, minute, 0, 0, time.UTC)
}

// fixtureInput builds a small venue: one project (Harbor Festival)
// owning scene 100, one light, two AR objects, two scanning devices,
// and two clicking visitors across two days.
func fixtureInput() analytics.SnapshotInput {
	scene := int64(100)
	return analytics.SnapshotInput{
		Projects: []models.Project{
			{ID: 1, Name: "Harbor Festival", SceneRefs: []string{"100-Harbor"}, Coordinates: []string{"north-pier"}},
		},
		Objects: []models.ArObject{
			{ID: 11, Name: "Lighthouse Hologram", SceneID: &scene},
			{ID: 12, Name: "Gull Swarm", SceneID: &scene},
		},
		CoordinateSystems: []models.CoordinateSystem{
			{ID: "cs-1", Name: "north-pier", SceneID: &scene},
		},
		LightConfigs: []models.LightConfig{
			{LightID: "L-001", Coordinates: []string{"north-pier"}, SceneRefs: []string{"100-Harbor"}},
		},
		LightToProjects: map[string][]int64{"L-001": {1}},
		Scans: []models.Scan{
			{LightID: "L-001", CoordinateID: "cs-1", ClientID: "c-1", Timestamp: fixtureDate(10, 9, 0)},
			{LightID: "L-001", CoordinateID: "cs-1", ClientID: "c-1", Timestamp: fixtureDate(10, 9, 5)},
			{LightID: "L-001", CoordinateID: "cs-1", ClientID: "c-2", Timestamp: fixtureDate(11, 14, 0)},
		},
		Clicks: []models.Click{
			{ObjectID: 11, UserCode: "alice", Timestamp: fixtureDate(10, 9, 2)},
			{ObjectID: 12, UserCode: "alice", Timestamp: fixtureDate(10, 9, 10)},
			{ObjectID: 11, UserCode: "bob", Timestamp: fixtureDate(11, 14, 5)},
		},
		Location: time.UTC,
	}
}

// testLoader serves the fixture snapshot and counts loads. Set err to
// make the next reload fail.
type testLoader struct {
	mu    sync.Mutex
	err   error
	loads int
}

func (l *testLoader) LoadSnapshot(ctx context.Context) (*analytics.Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loads++
	if l.err != nil {
		return nil, l.err
	}
	return analytics.NewSnapshot(fixtureInput()), nil
}

func (l *testLoader) setErr(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.err = err
}

type fakeStore struct {
	pingErr  error
	statsErr error
	stats    models.StoreStats
}

func (f *fakeStore) Ping(ctx context.Context) error { return f.pingErr }

func (f *fakeStore) GetStats(ctx context.Context) (*models.StoreStats, error) {
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	s := f.stats
	return &s, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	err    error
	events []*eventprocessor.BeaconEvent
}

func (f *fakePublisher) PublishBeaconEvent(ctx context.Context, event *eventprocessor.BeaconEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

func (f *fakePublisher) published() []*eventprocessor.BeaconEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*eventprocessor.BeaconEvent, len(f.events))
	copy(out, f.events)
	return out
}

type fakeImporter struct {
	summary *models.ImportSummary
	running bool
}

func (f *fakeImporter) LastSummary() *models.ImportSummary { return f.summary }
func (f *fakeImporter) IsRunning() bool                    { return f.running }

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     1000,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: true,
		},
		Analytics: config.AnalyticsConfig{
			Timezone:          "UTC",
			SessionGapMinutes: 10,
		},
		Cache: config.CacheConfig{
			Enabled:    true,
			TTL:        time.Minute,
			MaxEntries: 256,
		},
	}
}

// testEnv bundles a fully wired handler and router over fakes.
type testEnv struct {
	handler   *Handler
	loader    *testLoader
	manager   *snapshot.Manager
	store     *fakeStore
	publisher *fakePublisher
	importer  *fakeImporter
	mux       http.Handler
}

// newLoadedManager builds a snapshot manager and performs the initial
// load, leaving it at version 1.
func newLoadedManager(loader *testLoader) (*snapshot.Manager, error) {
	manager, err := snapshot.NewManager(loader)
	if err != nil {
		return nil, err
	}
	if err := manager.Reload(context.Background()); err != nil {
		return nil, err
	}
	return manager, nil
}

func newTestEnv(tb testing.TB) *testEnv {
	tb.Helper()

	loader := &testLoader{}
	manager, err := newLoadedManager(loader)
	if err != nil {
		tb.Fatalf("Failed to load initial snapshot: %v", err)
	}

	store := &fakeStore{stats: models.StoreStats{
		Scans: 3, Clicks: 3, Projects: 1, Objects: 2,
		CoordinateSystems: 1, LightConfigs: 1,
		UniqueClients: 2, UniqueUsers: 2,
	}}
	publisher := &fakePublisher{}
	importer := &fakeImporter{summary: &models.ImportSummary{Status: "completed", Source: "file"}}

	cfg := testConfig()
	handler := NewHandler(manager, store, publisher, importer, cfg, "test")
	mw := NewMiddlewareFromConfig(&cfg.Server)
	mux := NewRouter(handler, mw).SetupChi()

	return &testEnv{
		handler:   handler,
		loader:    loader,
		manager:   manager,
		store:     store,
		publisher: publisher,
		importer:  importer,
		mux:       mux,
	}
}

// testEnvelope mirrors the APIResponse wire shape for assertions.
type testEnvelope struct {
	Status   string          `json:"status"`
	Data     json.RawMessage `json:"data"`
	Metadata struct {
		Timestamp       time.Time `json:"timestamp"`
		QueryTimeMS     int64     `json:"query_time_ms"`
		Cached          bool      `json:"cached"`
		SnapshotVersion int64     `json:"snapshot_version"`
	} `json:"metadata"`
	Error *struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Details map[string]interface{} `json:"details"`
	} `json:"error"`
}

func doRequest(t *testing.T, mux http.Handler, method, path string, body io.Reader) (*httptest.ResponseRecorder, testEnvelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var envelope testEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("Response body is not a valid envelope: %v\nbody: %s", err, rec.Body.String())
	}
	return rec, envelope
}

// =====================================================
// Handler construction and range resolution
// =====================================================

func TestNewHandler(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	if env.handler.cache == nil {
		t.Error("Expected cache to be initialized when enabled")
	}
	if env.handler.perfMon == nil {
		t.Error("Expected performance monitor to be initialized")
	}
	if env.handler.startTime.IsZero() {
		t.Error("Expected start time to be set")
	}
	if env.handler.version != "test" {
		t.Errorf("version = %q, want test", env.handler.version)
	}
}

func TestNewHandler_CacheDisabled(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Cache.Enabled = false

	handler := NewHandler(nil, nil, nil, nil, cfg, "test")

	if handler.cache != nil {
		t.Error("Expected no cache when disabled")
	}
	if handler.Cache() != nil {
		t.Error("Cache() should return nil when disabled")
	}
}

func TestClearCache(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.handler.cache.Set("key", "value")

	env.handler.ClearCache()

	if _, found := env.handler.cache.Get("key"); found {
		t.Error("Cache should be cleared")
	}
}

func TestClearCache_NilCache(t *testing.T) {
	t.Parallel()

	handler := &Handler{}
	// Must not panic
	handler.ClearCache()
}

func TestResolveRange(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	tests := []struct {
		name      string
		start     string
		end       string
		days      int
		months    int
		wantOK    bool
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:  "explicit pair",
			start: "2026-08-01", end: "2026-08-31",
			wantOK:    true,
			wantStart: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		},
		{name: "start without end", start: "2026-08-01", wantOK: false},
		{name: "end without start", end: "2026-08-31", wantOK: false},
		{name: "unparseable start", start: "yesterday", end: "2026-08-31", wantOK: false},
		{name: "days window", days: 7, wantOK: true},
		{name: "months window", months: 3, wantOK: true},
		{name: "no parameters defaults", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := env.handler.resolveRange(tt.start, tt.end, tt.days, tt.months)
			if ok != tt.wantOK {
				t.Fatalf("resolveRange ok = %v, want %v", ok, tt.wantOK)
			}
			if !tt.wantOK {
				return
			}
			if !tt.wantStart.IsZero() && !r.Start.Equal(tt.wantStart) {
				t.Errorf("Start = %v, want %v", r.Start, tt.wantStart)
			}
			if !tt.wantEnd.IsZero() && !r.End.Equal(tt.wantEnd) {
				t.Errorf("End = %v, want %v", r.End, tt.wantEnd)
			}
		})
	}
}

func TestResolveRange_ExplicitBeatsDays(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	r, ok := env.handler.resolveRange("2026-08-01", "2026-08-02", 365, 12)
	if !ok {
		t.Fatal("resolveRange failed for explicit pair")
	}
	want := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	if !r.Start.Equal(want) {
		t.Errorf("Start = %v, want %v (explicit dates must win over days)", r.Start, want)
	}
}

func TestGetPerformanceStats_NilMonitor(t *testing.T) {
	t.Parallel()

	handler := &Handler{}
	if stats := handler.GetPerformanceStats(); stats != nil {
		t.Error("Expected nil stats for nil monitor")
	}
}

func TestGetCacheStats_NilCache(t *testing.T) {
	t.Parallel()

	handler := &Handler{}
	stats := handler.GetCacheStats()
	if stats.Hits != 0 || stats.Misses != 0 {
		t.Errorf("Expected zero stats for nil cache, got %+v", stats)
	}
}
