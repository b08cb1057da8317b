// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package importer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/luxboard/luxboard/internal/config"
	"github.com/luxboard/luxboard/internal/models"
)

// fakeRecordStore keeps inserted rows in memory and deduplicates on the
// same natural keys as the real store.
type fakeRecordStore struct {
	mu         sync.Mutex
	scans      []models.Scan
	clicks     []models.Click
	seenScans  map[string]bool
	seenClicks map[string]bool
	scanErr    error
	clickErr   error

	projects      []models.Project
	arObjects     []models.ArObject
	coordSystems  []models.CoordinateSystem
	lightConfigs  []models.LightConfig
	lightProjects map[string][]int64
}

func newFakeRecordStore() *fakeRecordStore {
	return &fakeRecordStore{
		seenScans:  map[string]bool{},
		seenClicks: map[string]bool{},
	}
}

func (s *fakeRecordStore) InsertScansBatch(_ context.Context, scans []models.Scan, _ string) (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scanErr != nil {
		return 0, 0, s.scanErr
	}
	var inserted, duplicates int
	for _, sc := range scans {
		key := sc.LightID + "|" + sc.ClientID + "|" + sc.Timestamp.UTC().Format(time.RFC3339)
		if s.seenScans[key] {
			duplicates++
			continue
		}
		s.seenScans[key] = true
		s.scans = append(s.scans, sc)
		inserted++
	}
	return inserted, duplicates, nil
}

func (s *fakeRecordStore) InsertClicksBatch(_ context.Context, clicks []models.Click, _ string) (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clickErr != nil {
		return 0, 0, s.clickErr
	}
	var inserted, duplicates int
	for _, c := range clicks {
		key := strconv.FormatInt(c.ObjectID, 10) + "|" + c.UserCode + "|" + c.Timestamp.UTC().Format(time.RFC3339)
		if s.seenClicks[key] {
			duplicates++
			continue
		}
		s.seenClicks[key] = true
		s.clicks = append(s.clicks, c)
		inserted++
	}
	return inserted, duplicates, nil
}

func (s *fakeRecordStore) UpsertProjects(_ context.Context, projects []models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = append(s.projects, projects...)
	return nil
}

func (s *fakeRecordStore) UpsertArObjects(_ context.Context, objects []models.ArObject) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.arObjects = append(s.arObjects, objects...)
	return nil
}

func (s *fakeRecordStore) UpsertCoordinateSystems(_ context.Context, systems []models.CoordinateSystem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coordSystems = append(s.coordSystems, systems...)
	return nil
}

func (s *fakeRecordStore) UpsertLightConfigs(_ context.Context, configs []models.LightConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lightConfigs = append(s.lightConfigs, configs...)
	return nil
}

func (s *fakeRecordStore) ReplaceLightProjects(_ context.Context, table map[string][]int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lightProjects = table
	return nil
}

func (s *fakeRecordStore) counts() (scans, clicks int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.scans), len(s.clicks)
}

type fakeMarker struct {
	calls int
}

func (m *fakeMarker) MarkStale() { m.calls++ }

func writeImportFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const (
	testScanLog = "light_id,coordinate_id,client_id,timestamp\n" +
		"lx-0101,cs-301-a,client-01,2026-03-14 09:30:00\n" +
		"lx-0101,cs-301-a,client-02,2026-03-14 09:31:00\n" +
		"lx-0102,cs-301-b,client-01,2026-03-14 09:32:00\n" +
		"lx-0102,cs-301-b,client-01,whenever\n"

	testClickLog = "object_id,user_code,timestamp\n" +
		"9001,amber,2026-03-14 09:30:30\n" +
		"9002,,2026-03-14 09:31:30\n"

	testMetadata = `{
		"projects": [{"id": 301, "name": "Atrium Spring"}],
		"ar_objects": [{"id": 9001, "name": "Lobby Fox", "scene_id": 301, "scene_name": "Atrium"}],
		"coordinate_systems": [{"id": "cs-301-a", "name": "Atrium North"}],
		"light_configs": [{"light_id": "lx-0101", "coordinates": ["cs-301-a"], "scene_refs": ["301-Atrium"]}],
		"light_projects": {"lx-0101": [301]}
	}`
)

func TestImporter_Run(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.ImportConfig{
		ScansPath:    writeImportFile(t, dir, "scandata.csv", testScanLog),
		ClicksPath:   writeImportFile(t, dir, "obj_click_log.csv", testClickLog),
		MetadataPath: writeImportFile(t, dir, "metadata.json", testMetadata),
		BatchSize:    2,
	}
	store := newFakeRecordStore()
	marker := &fakeMarker{}
	imp := NewImporter(cfg, store, marker, time.UTC)

	stats, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if stats.Source != SourceFile {
		t.Errorf("Source = %q, want %q", stats.Source, SourceFile)
	}
	if stats.ScanRows != 4 || stats.ScansInserted != 3 || stats.ScansMalformed != 1 {
		t.Errorf("scan stats = rows %d inserted %d malformed %d, want 4/3/1",
			stats.ScanRows, stats.ScansInserted, stats.ScansMalformed)
	}
	if stats.ClickRows != 2 || stats.ClicksInserted != 2 {
		t.Errorf("click stats = rows %d inserted %d, want 2/2", stats.ClickRows, stats.ClicksInserted)
	}
	if !stats.MetadataLoaded {
		t.Error("MetadataLoaded = false, want true")
	}

	scans, clicks := store.counts()
	if scans != 3 || clicks != 2 {
		t.Errorf("store counts = %d scans, %d clicks, want 3/2", scans, clicks)
	}
	if marker.calls != 1 {
		t.Errorf("marker.calls = %d, want 1", marker.calls)
	}
}

func TestImporter_Run_AppliesMetadata(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.ImportConfig{
		MetadataPath: writeImportFile(t, dir, "metadata.json", testMetadata),
	}
	store := newFakeRecordStore()
	imp := NewImporter(cfg, store, &fakeMarker{}, time.UTC)

	if _, err := imp.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(store.projects) != 1 || store.projects[0].ID != 301 {
		t.Errorf("projects = %+v, want one project with id 301", store.projects)
	}
	if len(store.arObjects) != 1 || store.arObjects[0].ID != 9001 {
		t.Errorf("arObjects = %+v, want one object with id 9001", store.arObjects)
	}
	if len(store.coordSystems) != 1 || store.coordSystems[0].ID != "cs-301-a" {
		t.Errorf("coordSystems = %+v, want one system cs-301-a", store.coordSystems)
	}
	if len(store.lightConfigs) != 1 || store.lightConfigs[0].LightID != "lx-0101" {
		t.Errorf("lightConfigs = %+v, want one config lx-0101", store.lightConfigs)
	}
	if got := store.lightProjects["lx-0101"]; len(got) != 1 || got[0] != 301 {
		t.Errorf("lightProjects[lx-0101] = %v, want [301]", got)
	}
}

func TestImporter_Run_MissingMetadataFileOK(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.ImportConfig{
		ScansPath:    writeImportFile(t, dir, "scandata.csv", testScanLog),
		MetadataPath: filepath.Join(dir, "does-not-exist.json"),
	}
	store := newFakeRecordStore()
	imp := NewImporter(cfg, store, &fakeMarker{}, time.UTC)

	stats, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stats.MetadataLoaded {
		t.Error("MetadataLoaded = true, want false")
	}
	if len(store.projects) != 0 {
		t.Errorf("projects = %+v, want none", store.projects)
	}
	if stats.ScansInserted != 3 {
		t.Errorf("ScansInserted = %d, want 3", stats.ScansInserted)
	}
}

func TestImporter_Run_EmptyPathsSkipFiles(t *testing.T) {
	store := newFakeRecordStore()
	marker := &fakeMarker{}
	imp := NewImporter(&config.ImportConfig{}, store, marker, time.UTC)

	stats, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stats.TotalRows() != 0 {
		t.Errorf("TotalRows() = %d, want 0", stats.TotalRows())
	}
	if marker.calls != 1 {
		t.Errorf("marker.calls = %d, want 1", marker.calls)
	}
}

func TestImporter_Run_ClicksOnly(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.ImportConfig{
		ClicksPath: writeImportFile(t, dir, "obj_click_log.csv", testClickLog),
	}
	store := newFakeRecordStore()
	imp := NewImporter(cfg, store, &fakeMarker{}, time.UTC)

	stats, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	scans, clicks := store.counts()
	if scans != 0 || clicks != 2 {
		t.Errorf("store counts = %d scans, %d clicks, want 0/2", scans, clicks)
	}
	if stats.ClicksInserted != 2 {
		t.Errorf("ClicksInserted = %d, want 2", stats.ClicksInserted)
	}
}

func TestImporter_Run_CountsDuplicates(t *testing.T) {
	dir := t.TempDir()
	dupLog := "light_id,coordinate_id,client_id,timestamp\n" +
		"lx-0101,cs-301-a,client-01,2026-03-14 09:30:00\n" +
		"lx-0101,cs-301-a,client-01,2026-03-14 09:30:00\n"
	cfg := &config.ImportConfig{
		ScansPath: writeImportFile(t, dir, "scandata.csv", dupLog),
	}
	store := newFakeRecordStore()
	imp := NewImporter(cfg, store, &fakeMarker{}, time.UTC)

	stats, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stats.ScanRows != 2 || stats.ScansInserted != 1 || stats.ScanDuplicates != 1 {
		t.Errorf("scan stats = rows %d inserted %d duplicates %d, want 2/1/1",
			stats.ScanRows, stats.ScansInserted, stats.ScanDuplicates)
	}
}

func TestImporter_Run_StoreErrorPropagates(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.ImportConfig{
		ScansPath: writeImportFile(t, dir, "scandata.csv", testScanLog),
	}
	store := newFakeRecordStore()
	store.scanErr = errors.New("disk full")
	marker := &fakeMarker{}
	imp := NewImporter(cfg, store, marker, time.UTC)

	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatal("Run() error = nil, want insert failure")
	}
	if marker.calls != 0 {
		t.Errorf("marker.calls = %d, want 0 after failed run", marker.calls)
	}
}

func TestImporter_Run_RejectsConcurrentRuns(t *testing.T) {
	imp := NewImporter(&config.ImportConfig{}, newFakeRecordStore(), nil, time.UTC)
	imp.mu.Lock()
	imp.running = true
	imp.mu.Unlock()

	_, err := imp.Run(context.Background())
	if !errors.Is(err, ErrImportInProgress) {
		t.Errorf("Run() error = %v, want ErrImportInProgress", err)
	}
}

func TestImporter_Run_CanceledContext(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.ImportConfig{
		ScansPath: writeImportFile(t, dir, "scandata.csv", testScanLog),
	}
	imp := NewImporter(cfg, newFakeRecordStore(), nil, time.UTC)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := imp.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestImporter_Stop_NotRunning(t *testing.T) {
	imp := NewImporter(&config.ImportConfig{}, newFakeRecordStore(), nil, time.UTC)
	if err := imp.Stop(); err == nil {
		t.Error("Stop() error = nil, want error when idle")
	}
}

func TestImporter_LastSummary(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.ImportConfig{
		ScansPath: writeImportFile(t, dir, "scandata.csv", testScanLog),
	}
	imp := NewImporter(cfg, newFakeRecordStore(), &fakeMarker{}, time.UTC)

	if got := imp.LastSummary(); got != nil {
		t.Errorf("LastSummary() before any run = %+v, want nil", got)
	}

	if _, err := imp.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	summary := imp.LastSummary()
	if summary == nil {
		t.Fatal("LastSummary() = nil after run")
	}
	if summary.Status != "completed" {
		t.Errorf("Status = %q, want %q", summary.Status, "completed")
	}
	if summary.Source != SourceFile {
		t.Errorf("Source = %q, want %q", summary.Source, SourceFile)
	}
	if summary.ScansInserted != 3 {
		t.Errorf("ScansInserted = %d, want 3", summary.ScansInserted)
	}
}

func TestImportStats_Derived(t *testing.T) {
	stats := &ImportStats{
		ScanRows:        100,
		ScansMalformed:  5,
		ClickRows:       50,
		ClicksMalformed: 2,
		StartTime:       time.Now().Add(-2 * time.Second),
		EndTime:         time.Now(),
	}

	if got := stats.TotalRows(); got != 150 {
		t.Errorf("TotalRows() = %d, want 150", got)
	}
	if got := stats.TotalMalformed(); got != 7 {
		t.Errorf("TotalMalformed() = %d, want 7", got)
	}
	if rps := stats.RowsPerSecond(); rps <= 0 {
		t.Errorf("RowsPerSecond() = %f, want > 0", rps)
	}
}
