// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package config

import (
	"net"
	"strconv"
	"time"
)

// Config is the root configuration for the Luxboard server.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Analytics AnalyticsConfig `koanf:"analytics"`
	Ingest    IngestConfig    `koanf:"ingest"`
	WAL       WALConfig       `koanf:"wal"`
	Import    ImportConfig    `koanf:"import"`
	Snapshot  SnapshotConfig  `koanf:"snapshot"`
	Cache     CacheConfig     `koanf:"cache"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"` // read/write timeout for the HTTP server

	// CORSOrigins lists allowed origins. "*" permits any origin and is
	// the default for single-box deployments behind a reverse proxy.
	CORSOrigins []string `koanf:"cors_origins"`

	RateLimitReqs     int           `koanf:"rate_limit_requests"` // requests per window per client IP
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// DatabaseConfig configures the embedded DuckDB store.
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	Threads   int    `koanf:"threads"`    // 0 = use runtime.NumCPU()
	MaxMemory string `koanf:"max_memory"` // DuckDB memory_limit, e.g. "2GB"
}

// AnalyticsConfig configures calendar and session semantics shared by
// every calculator.
type AnalyticsConfig struct {
	// Timezone is the IANA zone all calendar bucketing happens in.
	Timezone string `koanf:"timezone"`

	// SessionGapMinutes is the maximum idle gap between two clicks of
	// the same visitor before a new session starts.
	SessionGapMinutes int `koanf:"session_gap_minutes"`

	// RankingLimit is the default row cap for ranking endpoints when a
	// request does not carry an explicit limit. 0 means unlimited.
	RankingLimit int `koanf:"ranking_limit"`
}

// IngestConfig configures the live beacon event intake pipeline.
type IngestConfig struct {
	// Enabled toggles the whole pipeline. When false the server runs
	// from imported data only.
	Enabled bool `koanf:"enabled"`

	NATS     NATSConfig     `koanf:"nats"`
	Stream   StreamConfig   `koanf:"stream"`
	Consumer ConsumerConfig `koanf:"consumer"`
}

// NATSConfig configures the embedded NATS JetStream server.
type NATSConfig struct {
	Host      string `koanf:"host"`
	Port      int    `koanf:"port"`
	StoreDir  string `koanf:"store_dir"`
	MaxMemory int64  `koanf:"max_memory"` // JetStream memory limit in bytes
	MaxStore  int64  `koanf:"max_store"`  // JetStream disk limit in bytes
}

// StreamConfig configures the beacon event stream.
type StreamConfig struct {
	Name     string        `koanf:"name"`
	Subjects []string      `koanf:"subjects"`
	MaxAge   time.Duration `koanf:"max_age"` // retention window, 0 keeps events until limits apply
}

// ConsumerConfig configures the event consumer that batches beacon
// events into the store.
type ConsumerConfig struct {
	BatchSize        int           `koanf:"batch_size"`
	FlushInterval    time.Duration `koanf:"flush_interval"`
	DurableName      string        `koanf:"durable_name"`
	QueueGroup       string        `koanf:"queue_group"`
	SubscribersCount int           `koanf:"subscribers_count"`
}

// WALConfig configures the write-ahead log that protects in-flight
// events across restarts.
type WALConfig struct {
	Enabled       bool          `koanf:"enabled"`
	Path          string        `koanf:"path"`
	SyncWrites    bool          `koanf:"sync_writes"`
	RetryInterval time.Duration `koanf:"retry_interval"` // how often pending entries are retried
	MaxAttempts   int           `koanf:"max_attempts"`   // delivery attempts before an entry is dropped
	EntryTTL      time.Duration `koanf:"entry_ttl"`      // confirmed entries expire after this
}

// ImportConfig configures bulk loading of beacon logs.
type ImportConfig struct {
	// ScansPath and ClicksPath are the CSV exports read by the file
	// importer.
	ScansPath  string `koanf:"scans_path"`
	ClicksPath string `koanf:"clicks_path"`

	// MetadataPath is an optional JSON document carrying the reference
	// entities (projects, AR objects, coordinate systems, light configs
	// and the light-to-project table). A missing file is not an error.
	MetadataPath string `koanf:"metadata_path"`

	// OnStart runs a file import during startup before the API serves.
	OnStart bool `koanf:"on_start"`

	BatchSize int `koanf:"batch_size"`

	Remote RemoteImportConfig `koanf:"remote"`
}

// RemoteImportConfig configures periodic pulls from an upstream beacon
// log endpoint.
type RemoteImportConfig struct {
	Enabled    bool          `koanf:"enabled"`
	BaseURL    string        `koanf:"base_url"`
	Interval   time.Duration `koanf:"interval"`
	RatePerSec float64       `koanf:"rate_per_sec"` // client-side request rate limit
	Timeout    time.Duration `koanf:"timeout"`
}

// SnapshotConfig configures the in-memory analytics snapshot refresh
// cycle.
type SnapshotConfig struct {
	RefreshInterval    time.Duration `koanf:"refresh_interval"`
	StaleCheckInterval time.Duration `koanf:"stale_check_interval"`
}

// CacheConfig configures the response cache in front of the
// calculators.
type CacheConfig struct {
	Enabled    bool          `koanf:"enabled"`
	TTL        time.Duration `koanf:"ttl"`
	MaxEntries int           `koanf:"max_entries"`
}

// LoggingConfig configures the global logger.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Location resolves the configured analytics timezone. Validate has
// already checked the name, so failures fall back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Analytics.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// NATSURL returns the client URL of the embedded broker.
func (c *Config) NATSURL() string {
	return "nats://" + net.JoinHostPort(c.Ingest.NATS.Host, strconv.Itoa(c.Ingest.NATS.Port))
}

// ListenAddr returns the HTTP server's host:port.
func (c *Config) ListenAddr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}
