// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package importer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/luxboard/luxboard/internal/config"
	"github.com/luxboard/luxboard/internal/logging"
	"github.com/luxboard/luxboard/internal/metrics"
)

// Vendor export filenames on the upstream endpoint.
const (
	ScanLogFilename  = "scandata.csv"
	ClickLogFilename = "obj_click_log.csv"
)

const (
	remoteBreakerName = "remote-import"

	// maxErrorBodySize limits how much of an error response body is
	// read for diagnostics.
	maxErrorBodySize = 64 * 1024
)

// RemoteFetcher downloads beacon log exports from the upstream vendor
// endpoint. Requests are rate limited client-side and guarded by a
// circuit breaker so a dead upstream does not burn the request budget.
type RemoteFetcher struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
	limiter *rate.Limiter
}

// NewRemoteFetcher creates a fetcher from the remote import
// configuration.
func NewRemoteFetcher(cfg *config.RemoteImportConfig) *RemoteFetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	perSec := cfg.RatePerSec
	if perSec <= 0 {
		perSec = 1
	}

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        remoteBreakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("from", from.String()).Str("to", to.String()).Msg("Remote import breaker state changed")
			metrics.RecordBreakerTransition(name, from.String(), to.String())
		},
	})

	return &RemoteFetcher{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		breaker: breaker,
		limiter: rate.NewLimiter(rate.Limit(perSec), 1),
	}
}

// Fetch downloads one file from the upstream endpoint.
func (f *RemoteFetcher) Fetch(ctx context.Context, filename string) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := f.breaker.Execute(func() ([]byte, error) {
		return f.get(ctx, filename)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.RecordBreakerRequest(remoteBreakerName, "rejected")
		} else {
			metrics.RecordBreakerRequest(remoteBreakerName, "failure")
		}
		return nil, fmt.Errorf("fetch %s: %w", filename, err)
	}

	metrics.RecordBreakerRequest(remoteBreakerName, "success")
	return body, nil
}

func (f *RemoteFetcher) get(ctx context.Context, filename string) ([]byte, error) {
	reqURL := f.baseURL + "/" + filename
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	return io.ReadAll(resp.Body)
}

// RemoteService periodically pulls the vendor exports and feeds them
// through the importer. It implements suture.Service.
type RemoteService struct {
	importer *Importer
	fetcher  *RemoteFetcher
	interval time.Duration
}

// NewRemoteService creates the periodic pull service.
func NewRemoteService(imp *Importer, fetcher *RemoteFetcher, interval time.Duration) *RemoteService {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &RemoteService{importer: imp, fetcher: fetcher, interval: interval}
}

func (s *RemoteService) String() string { return "remote-import" }

// Serve implements suture.Service. The first pull happens immediately,
// then one per interval. Pull failures are logged and retried on the
// next tick rather than crashing the service.
func (s *RemoteService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.pull(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.pull(ctx)
		}
	}
}

func (s *RemoteService) pull(ctx context.Context) {
	scans, err := s.fetcher.Fetch(ctx, ScanLogFilename)
	if err != nil {
		logging.Warn().Err(err).Str("file", ScanLogFilename).Msg("Remote import fetch failed")
	}
	clicks, err := s.fetcher.Fetch(ctx, ClickLogFilename)
	if err != nil {
		logging.Warn().Err(err).Str("file", ClickLogFilename).Msg("Remote import fetch failed")
	}
	if scans == nil && clicks == nil {
		return
	}

	var scanR, clickR io.Reader
	if scans != nil {
		scanR = bytes.NewReader(scans)
	}
	if clicks != nil {
		clickR = bytes.NewReader(clicks)
	}

	stats, err := s.importer.RunFromReaders(ctx, SourceRemote, scanR, clickR)
	switch {
	case errors.Is(err, ErrImportInProgress):
		logging.Debug().Msg("Remote import skipped, another import is running")
	case err != nil:
		logging.Warn().Err(err).Msg("Remote import failed")
	default:
		logging.Debug().
			Int64("scans_inserted", stats.ScansInserted).
			Int64("clicks_inserted", stats.ClicksInserted).
			Msg("Remote import pull completed")
	}
}
