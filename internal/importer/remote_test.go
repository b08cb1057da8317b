// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package importer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/luxboard/luxboard/internal/config"
)

func newExportServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/" + ScanLogFilename:
			_, _ = w.Write([]byte(testScanLog))
		case "/" + ClickLogFilename:
			_, _ = w.Write([]byte(testClickLog))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func remoteConfig(baseURL string) *config.RemoteImportConfig {
	return &config.RemoteImportConfig{
		Enabled:    true,
		BaseURL:    baseURL,
		Interval:   time.Hour,
		RatePerSec: 100,
		Timeout:    5 * time.Second,
	}
}

func TestRemoteFetcher_Fetch(t *testing.T) {
	srv := newExportServer(t)
	fetcher := NewRemoteFetcher(remoteConfig(srv.URL))

	body, err := fetcher.Fetch(context.Background(), ScanLogFilename)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(body) != testScanLog {
		t.Errorf("Fetch() = %q, want scan log body", body)
	}
}

func TestRemoteFetcher_FetchMissingFile(t *testing.T) {
	srv := newExportServer(t)
	fetcher := NewRemoteFetcher(remoteConfig(srv.URL))

	_, err := fetcher.Fetch(context.Background(), "nope.csv")
	if err == nil {
		t.Fatal("Fetch() error = nil, want status error")
	}
	if !strings.Contains(err.Error(), "unexpected status 404") {
		t.Errorf("Fetch() error = %v, want unexpected status 404", err)
	}
}

func TestRemoteFetcher_BreakerOpensAfterFailures(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	fetcher := NewRemoteFetcher(remoteConfig(srv.URL))

	for i := 0; i < 3; i++ {
		if _, err := fetcher.Fetch(context.Background(), ScanLogFilename); err == nil {
			t.Fatalf("Fetch() attempt %d error = nil, want failure", i+1)
		}
	}

	_, err := fetcher.Fetch(context.Background(), ScanLogFilename)
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("Fetch() error = %v, want ErrOpenState", err)
	}
	if got := hits.Load(); got != 3 {
		t.Errorf("upstream hits = %d, want 3 (open breaker must not call upstream)", got)
	}
}

func TestRemoteService_PullImportsBothFiles(t *testing.T) {
	srv := newExportServer(t)
	store := newFakeRecordStore()
	marker := &fakeMarker{}
	imp := NewImporter(&config.ImportConfig{}, store, marker, time.UTC)
	svc := NewRemoteService(imp, NewRemoteFetcher(remoteConfig(srv.URL)), time.Hour)

	svc.pull(context.Background())

	scans, clicks := store.counts()
	if scans != 3 || clicks != 2 {
		t.Errorf("store counts = %d scans, %d clicks, want 3/2", scans, clicks)
	}
	if got := imp.GetStats().Source; got != SourceRemote {
		t.Errorf("stats source = %q, want %q", got, SourceRemote)
	}
	if marker.calls != 1 {
		t.Errorf("marker.calls = %d, want 1", marker.calls)
	}
}

func TestRemoteService_PartialFetchStillImports(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/"+ClickLogFilename {
			_, _ = w.Write([]byte(testClickLog))
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	store := newFakeRecordStore()
	imp := NewImporter(&config.ImportConfig{}, store, &fakeMarker{}, time.UTC)
	svc := NewRemoteService(imp, NewRemoteFetcher(remoteConfig(srv.URL)), time.Hour)

	svc.pull(context.Background())

	scans, clicks := store.counts()
	if scans != 0 || clicks != 2 {
		t.Errorf("store counts = %d scans, %d clicks, want 0/2", scans, clicks)
	}
}

func TestRemoteService_ServeStopsOnCancel(t *testing.T) {
	srv := newExportServer(t)
	store := newFakeRecordStore()
	imp := NewImporter(&config.ImportConfig{}, store, &fakeMarker{}, time.UTC)
	svc := NewRemoteService(imp, NewRemoteFetcher(remoteConfig(srv.URL)), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	deadline := time.Now().Add(5 * time.Second)
	for {
		if scans, clicks := store.counts(); scans == 3 && clicks == 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("initial pull did not land in store")
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() returned %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}
}
