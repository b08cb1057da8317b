// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package models

import "time"

// StoreStats summarizes the durable store for the status endpoint.
type StoreStats struct {
	Scans             int64 `json:"scans"`
	Clicks            int64 `json:"clicks"`
	Projects          int64 `json:"projects"`
	Objects           int64 `json:"objects"`
	CoordinateSystems int64 `json:"coordinate_systems"`
	LightConfigs      int64 `json:"light_configs"`

	UniqueClients int64 `json:"unique_clients"`
	UniqueUsers   int64 `json:"unique_users"`

	LastScanAt  *time.Time `json:"last_scan_at,omitempty"`
	LastClickAt *time.Time `json:"last_click_at,omitempty"`
}

// ImportSummary is the outcome of the most recent beacon log import.
type ImportSummary struct {
	Status          string    `json:"status"`
	Source          string    `json:"source"`
	ScanRows        int64     `json:"scan_rows"`
	ScansInserted   int64     `json:"scans_inserted"`
	ScanDuplicates  int64     `json:"scan_duplicates"`
	ScansMalformed  int64     `json:"scans_malformed"`
	ClickRows       int64     `json:"click_rows"`
	ClicksInserted  int64     `json:"clicks_inserted"`
	ClickDuplicates int64     `json:"click_duplicates"`
	ClicksMalformed int64     `json:"clicks_malformed"`
	MetadataLoaded  bool      `json:"metadata_loaded"`
	RowsPerSecond   float64   `json:"rows_per_second"`
	ElapsedSeconds  float64   `json:"elapsed_seconds"`
	StartTime       time.Time `json:"start_time"`
}

// HealthStatus is the health check document served by /health.
type HealthStatus struct {
	Status            string  `json:"status"`
	Version           string  `json:"version"`
	DatabaseConnected bool    `json:"database_connected"`
	SnapshotLoaded    bool    `json:"snapshot_loaded"`
	SnapshotVersion   int64   `json:"snapshot_version,omitempty"`
	Uptime            float64 `json:"uptime_seconds"`
}

// ServiceStatus is the full status document served by /api/v1/status.
type ServiceStatus struct {
	Status          string         `json:"status"`
	Version         string         `json:"version"`
	UptimeSeconds   int64          `json:"uptime_seconds"`
	SnapshotVersion int64          `json:"snapshot_version"`
	SnapshotAge     float64        `json:"snapshot_age_seconds"`
	SnapshotStale   bool           `json:"snapshot_stale"`
	Store           StoreStats     `json:"store"`
	LastImport      *ImportSummary `json:"last_import,omitempty"`
}
