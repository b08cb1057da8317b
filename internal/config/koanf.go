// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths searched for a config file, in
// priority order. The first file found wins.
var DefaultConfigPaths = []string{
	"luxboard.yaml",
	"luxboard.yml",
	"/etc/luxboard/luxboard.yaml",
	"/etc/luxboard/luxboard.yml",
}

// ConfigPathEnvVar overrides the config file search.
const ConfigPathEnvVar = "LUXBOARD_CONFIG"

// EnvPrefix is the prefix shared by every Luxboard environment
// variable.
const EnvPrefix = "LUXBOARD_"

// defaultConfig returns the built-in defaults. They describe a
// single-box deployment with the embedded broker and store under
// /data.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            5890,
			Timeout:         30 * time.Second,
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: 1 * time.Minute,
		},
		Database: DatabaseConfig{
			Path:      "/data/luxboard.duckdb",
			Threads:   0, // 0 = use runtime.NumCPU()
			MaxMemory: "2GB",
		},
		Analytics: AnalyticsConfig{
			Timezone:          "UTC",
			SessionGapMinutes: 10,
			RankingLimit:      10,
		},
		Ingest: IngestConfig{
			Enabled: true,
			NATS: NATSConfig{
				Host:      "127.0.0.1",
				Port:      4222,
				StoreDir:  "/data/nats/jetstream",
				MaxMemory: 1 << 30,  // 1GB
				MaxStore:  10 << 30, // 10GB
			},
			Stream: StreamConfig{
				Name:     "INTERACTIONS",
				Subjects: []string{"interaction.>"},
				MaxAge:   7 * 24 * time.Hour,
			},
			Consumer: ConsumerConfig{
				BatchSize:        500,
				FlushInterval:    5 * time.Second,
				DurableName:      "luxboard-ingest",
				QueueGroup:       "ingesters",
				SubscribersCount: 2,
			},
		},
		WAL: WALConfig{
			Enabled:       true,
			Path:          "/data/wal",
			SyncWrites:    true,
			RetryInterval: 30 * time.Second,
			MaxAttempts:   10,
			EntryTTL:      24 * time.Hour,
		},
		Import: ImportConfig{
			ScansPath:    "/data/import/scandata.csv",
			ClicksPath:   "/data/import/obj_click_log.csv",
			MetadataPath: "/data/import/metadata.json",
			OnStart:      false,
			BatchSize:    1000,
			Remote: RemoteImportConfig{
				Enabled:    false,
				BaseURL:    "",
				Interval:   15 * time.Minute,
				RatePerSec: 5,
				Timeout:    30 * time.Second,
			},
		},
		Snapshot: SnapshotConfig{
			RefreshInterval:    5 * time.Minute,
			StaleCheckInterval: 30 * time.Second,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        60 * time.Second,
			MaxEntries: 256,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration with layered sources:
//
//  1. Defaults: built-in defaults for a single-box deployment
//  2. Config file: optional YAML file, if one exists
//  3. Environment variables: LUXBOARD_* overrides any setting
//
// The returned Config has passed Validate.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := FindConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	envProvider := env.Provider(EnvPrefix, ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// FindConfigFile returns the first config file that exists, checking
// the LUXBOARD_CONFIG override before the default search paths.
func FindConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths lists config paths parsed as comma-separated
// slices when they arrive through the environment.
var sliceConfigPaths = []string{
	"server.cors_origins",
	"ingest.stream.subjects",
}

// processSliceFields converts comma-separated strings into slices for
// the known slice fields. Environment variables always arrive as
// strings; YAML values are already slices and pass through.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}
		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps LUXBOARD_* variable names (prefix stripped,
// lowercased) to dotted config paths. The table is explicit so that
// multi-word leaf keys resolve unambiguously and unknown variables
// are dropped instead of landing somewhere surprising.
var envMappings = map[string]string{
	// Server
	"server_host":         "server.host",
	"server_port":         "server.port",
	"server_timeout":      "server.timeout",
	"cors_origins":        "server.cors_origins",
	"rate_limit_requests": "server.rate_limit_requests",
	"rate_limit_window":   "server.rate_limit_window",
	"disable_rate_limit":  "server.rate_limit_disabled",

	// Database
	"duckdb_path":       "database.path",
	"duckdb_threads":    "database.threads",
	"duckdb_max_memory": "database.max_memory",

	// Analytics
	"timezone":            "analytics.timezone",
	"session_gap_minutes": "analytics.session_gap_minutes",
	"ranking_limit":       "analytics.ranking_limit",

	// Ingest / NATS
	"ingest_enabled":          "ingest.enabled",
	"nats_host":               "ingest.nats.host",
	"nats_port":               "ingest.nats.port",
	"nats_store_dir":          "ingest.nats.store_dir",
	"nats_max_memory":         "ingest.nats.max_memory",
	"nats_max_store":          "ingest.nats.max_store",
	"stream_name":             "ingest.stream.name",
	"stream_subjects":         "ingest.stream.subjects",
	"stream_max_age":          "ingest.stream.max_age",
	"consumer_batch_size":     "ingest.consumer.batch_size",
	"consumer_flush_interval": "ingest.consumer.flush_interval",
	"consumer_durable_name":   "ingest.consumer.durable_name",
	"consumer_queue_group":    "ingest.consumer.queue_group",
	"consumer_subscribers":    "ingest.consumer.subscribers_count",

	// WAL
	"wal_enabled":        "wal.enabled",
	"wal_path":           "wal.path",
	"wal_sync_writes":    "wal.sync_writes",
	"wal_retry_interval": "wal.retry_interval",
	"wal_max_attempts":   "wal.max_attempts",
	"wal_entry_ttl":      "wal.entry_ttl",

	// Import
	"import_scans_path":      "import.scans_path",
	"import_clicks_path":     "import.clicks_path",
	"import_metadata_path":   "import.metadata_path",
	"import_on_start":        "import.on_start",
	"import_batch_size":      "import.batch_size",
	"remote_import_enabled":  "import.remote.enabled",
	"remote_import_base_url": "import.remote.base_url",
	"remote_import_interval": "import.remote.interval",
	"remote_import_rate":     "import.remote.rate_per_sec",
	"remote_import_timeout":  "import.remote.timeout",

	// Snapshot
	"snapshot_refresh_interval": "snapshot.refresh_interval",
	"snapshot_stale_check":      "snapshot.stale_check_interval",

	// Cache
	"cache_enabled":     "cache.enabled",
	"cache_ttl":         "cache.ttl",
	"cache_max_entries": "cache.max_entries",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable name to its config
// path. Variables without a mapping return "" and are skipped.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}

// WatchConfigFile invokes callback whenever the config file changes.
// The caller decides what to re-read; Luxboard uses this to hot-swap
// the log level without a restart.
func WatchConfigFile(path string, callback func()) error {
	provider := file.Provider(path)
	return provider.Watch(func(event interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
}
