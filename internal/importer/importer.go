// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/luxboard/luxboard/internal/config"
	"github.com/luxboard/luxboard/internal/database"
	"github.com/luxboard/luxboard/internal/logging"
	"github.com/luxboard/luxboard/internal/metrics"
	"github.com/luxboard/luxboard/internal/models"
)

var (
	// ErrImportInProgress is returned when a run is started while
	// another is active.
	ErrImportInProgress = errors.New("import already in progress")

	// ErrImportCanceled is returned when Stop interrupts a run.
	ErrImportCanceled = errors.New("import canceled")
)

const defaultBatchSize = 1000

// RecordStore is the slice of the database the importer writes through.
type RecordStore interface {
	InsertScansBatch(ctx context.Context, scans []models.Scan, source string) (inserted, duplicates int, err error)
	InsertClicksBatch(ctx context.Context, clicks []models.Click, source string) (inserted, duplicates int, err error)
	UpsertProjects(ctx context.Context, projects []models.Project) error
	UpsertArObjects(ctx context.Context, objects []models.ArObject) error
	UpsertCoordinateSystems(ctx context.Context, systems []models.CoordinateSystem) error
	UpsertLightConfigs(ctx context.Context, configs []models.LightConfig) error
	ReplaceLightProjects(ctx context.Context, table map[string][]int64) error
}

// SnapshotMarker flags the analytics snapshot for reload after new rows
// land.
type SnapshotMarker interface {
	MarkStale()
}

// Importer loads beacon log exports into the store.
type Importer struct {
	cfg    *config.ImportConfig
	store  RecordStore
	marker SnapshotMarker
	loc    *time.Location

	mu       sync.RWMutex
	running  bool
	stats    *ImportStats
	stopChan chan struct{}
}

// NewImporter creates an importer. The marker may be nil when no
// snapshot manager exists yet (startup import before the first load).
func NewImporter(cfg *config.ImportConfig, store RecordStore, marker SnapshotMarker, loc *time.Location) *Importer {
	if loc == nil {
		loc = time.UTC
	}
	return &Importer{
		cfg:      cfg,
		store:    store,
		marker:   marker,
		loc:      loc,
		stopChan: make(chan struct{}),
	}
}

// Run performs a file import from the configured paths. An empty path
// skips that file; the optional metadata document is applied first so
// reference rows exist before interactions referencing them.
func (i *Importer) Run(ctx context.Context) (*ImportStats, error) {
	md, err := LoadMetadata(i.cfg.MetadataPath)
	if err != nil {
		return nil, err
	}

	var scans, clicks io.Reader
	if i.cfg.ScansPath != "" {
		f, err := os.Open(i.cfg.ScansPath)
		if err != nil {
			return nil, fmt.Errorf("open scan log: %w", err)
		}
		defer closeQuietly(f, "scan log")
		scans = f
	}
	if i.cfg.ClicksPath != "" {
		f, err := os.Open(i.cfg.ClicksPath)
		if err != nil {
			return nil, fmt.Errorf("open click log: %w", err)
		}
		defer closeQuietly(f, "click log")
		clicks = f
	}

	return i.run(ctx, SourceFile, scans, clicks, md)
}

// RunFromReaders imports from already-open streams. Used by the remote
// fetcher; nil readers skip that file.
func (i *Importer) RunFromReaders(ctx context.Context, source string, scans, clicks io.Reader) (*ImportStats, error) {
	return i.run(ctx, source, scans, clicks, nil)
}

func (i *Importer) run(ctx context.Context, source string, scans, clicks io.Reader, md *Metadata) (*ImportStats, error) {
	i.mu.Lock()
	if i.running {
		i.mu.Unlock()
		return nil, ErrImportInProgress
	}
	i.running = true
	i.stats = &ImportStats{Source: source, StartTime: time.Now()}
	i.mu.Unlock()

	defer func() {
		i.mu.Lock()
		i.running = false
		i.stats.EndTime = time.Now()
		i.mu.Unlock()
	}()

	start := time.Now()
	err := i.importAll(ctx, source, scans, clicks, md)
	metrics.RecordImportRun(source, time.Since(start), err)
	if err != nil {
		return i.GetStats(), err
	}

	if i.marker != nil {
		i.marker.MarkStale()
	}

	stats := i.GetStats()
	logging.Info().
		Str("source", source).
		Int64("scan_rows", stats.ScanRows).
		Int64("scans_inserted", stats.ScansInserted).
		Int64("click_rows", stats.ClickRows).
		Int64("clicks_inserted", stats.ClicksInserted).
		Int64("malformed", stats.TotalMalformed()).
		Dur("duration", stats.Duration()).
		Msg("Import completed")

	return stats, nil
}

func (i *Importer) importAll(ctx context.Context, source string, scans, clicks io.Reader, md *Metadata) error {
	if md != nil && !md.Empty() {
		if err := i.applyMetadata(ctx, md); err != nil {
			return fmt.Errorf("apply metadata: %w", err)
		}
		i.mu.Lock()
		i.stats.MetadataLoaded = true
		i.mu.Unlock()
	}

	if scans != nil {
		if err := i.importScans(ctx, source, scans); err != nil {
			return err
		}
	}
	if clicks != nil {
		if err := i.importClicks(ctx, source, clicks); err != nil {
			return err
		}
	}
	return nil
}

func (i *Importer) importScans(ctx context.Context, source string, r io.Reader) error {
	reader, err := NewScanReader(r, i.loc)
	if err != nil {
		return fmt.Errorf("scan log: %w", err)
	}

	for {
		if err := i.checkInterrupt(ctx); err != nil {
			return err
		}

		batch, skipped, err := reader.ReadBatch(i.batchSize())
		if err != nil {
			return fmt.Errorf("scan log: %w", err)
		}
		malformed := i.recordSkips(source, skipped)
		if len(batch) == 0 && malformed == 0 {
			return nil
		}

		inserted, duplicates, err := i.store.InsertScansBatch(ctx, batch, database.SourceImport)
		if err != nil {
			return fmt.Errorf("insert scans: %w", err)
		}
		metrics.RecordImportRecords(source, "scan", inserted)

		i.mu.Lock()
		i.stats.ScanRows += int64(len(batch)) + malformed
		i.stats.ScansInserted += int64(inserted)
		i.stats.ScanDuplicates += int64(duplicates)
		i.stats.ScansMalformed += malformed
		i.mu.Unlock()
	}
}

func (i *Importer) importClicks(ctx context.Context, source string, r io.Reader) error {
	reader, err := NewClickReader(r, i.loc)
	if err != nil {
		return fmt.Errorf("click log: %w", err)
	}

	for {
		if err := i.checkInterrupt(ctx); err != nil {
			return err
		}

		batch, skipped, err := reader.ReadBatch(i.batchSize())
		if err != nil {
			return fmt.Errorf("click log: %w", err)
		}
		malformed := i.recordSkips(source, skipped)
		if len(batch) == 0 && malformed == 0 {
			return nil
		}

		inserted, duplicates, err := i.store.InsertClicksBatch(ctx, batch, database.SourceImport)
		if err != nil {
			return fmt.Errorf("insert clicks: %w", err)
		}
		metrics.RecordImportRecords(source, "click", inserted)

		i.mu.Lock()
		i.stats.ClickRows += int64(len(batch)) + malformed
		i.stats.ClicksInserted += int64(inserted)
		i.stats.ClickDuplicates += int64(duplicates)
		i.stats.ClicksMalformed += malformed
		i.mu.Unlock()
	}
}

func (i *Importer) applyMetadata(ctx context.Context, md *Metadata) error {
	if len(md.Projects) > 0 {
		if err := i.store.UpsertProjects(ctx, md.Projects); err != nil {
			return err
		}
	}
	if len(md.ArObjects) > 0 {
		if err := i.store.UpsertArObjects(ctx, md.ArObjects); err != nil {
			return err
		}
	}
	if len(md.CoordinateSystems) > 0 {
		if err := i.store.UpsertCoordinateSystems(ctx, md.CoordinateSystems); err != nil {
			return err
		}
	}
	if len(md.LightConfigs) > 0 {
		if err := i.store.UpsertLightConfigs(ctx, md.LightConfigs); err != nil {
			return err
		}
	}
	if md.LightProjects != nil {
		if err := i.store.ReplaceLightProjects(ctx, md.LightProjects); err != nil {
			return err
		}
	}

	logging.Info().
		Int("projects", len(md.Projects)).
		Int("ar_objects", len(md.ArObjects)).
		Int("coordinate_systems", len(md.CoordinateSystems)).
		Int("light_configs", len(md.LightConfigs)).
		Int("light_projects", len(md.LightProjects)).
		Msg("Import metadata applied")
	return nil
}

func (i *Importer) checkInterrupt(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-i.stopChan:
		return ErrImportCanceled
	default:
		return nil
	}
}

func (i *Importer) recordSkips(source string, skipped map[string]int) int64 {
	var total int64
	for reason, n := range skipped {
		metrics.RecordImportSkip(source, reason, n)
		total += int64(n)
	}
	if total > 0 {
		logging.Warn().Str("source", source).Int64("rows", total).Msg("Skipped malformed import rows")
	}
	return total
}

func (i *Importer) batchSize() int {
	if i.cfg.BatchSize > 0 {
		return i.cfg.BatchSize
	}
	return defaultBatchSize
}

// Stop interrupts a running import.
func (i *Importer) Stop() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if !i.running {
		return errors.New("no import in progress")
	}
	close(i.stopChan)
	i.stopChan = make(chan struct{})
	return nil
}

// GetStats returns a copy of the current run's statistics.
func (i *Importer) GetStats() *ImportStats {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if i.stats == nil {
		return &ImportStats{}
	}
	stats := *i.stats
	return &stats
}

// IsRunning reports whether an import is in progress.
func (i *Importer) IsRunning() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.running
}

// LastSummary returns the wire summary of the most recent run, or nil
// when no run has happened.
func (i *Importer) LastSummary() *models.ImportSummary {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if i.stats == nil {
		return nil
	}
	stats := *i.stats
	return stats.Summary(i.running)
}

func closeQuietly(c io.Closer, what string) {
	if err := c.Close(); err != nil {
		logging.Warn().Err(err).Str("file", what).Msg("Close failed after import")
	}
}
