// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks the configuration for invalid or inconsistent
// values. The first failure is returned with the offending field
// named.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateDatabase,
		c.validateAnalytics,
		c.validateIngest,
		c.validateWAL,
		c.validateImport,
		c.validateSnapshot,
		c.validateCache,
		c.validateLogging,
	}
	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be 1-65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %v", c.Server.Timeout)
	}
	return c.validateRateLimits()
}

func (c *Config) validateRateLimits() error {
	if c.Server.RateLimitDisabled {
		return nil
	}
	if c.Server.RateLimitReqs < 1 {
		return fmt.Errorf("server.rate_limit_requests must be at least 1, got %d", c.Server.RateLimitReqs)
	}
	if c.Server.RateLimitWindow < time.Second {
		return fmt.Errorf("server.rate_limit_window must be at least 1s, got %v", c.Server.RateLimitWindow)
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("database.path must not be empty")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("database.threads must not be negative, got %d", c.Database.Threads)
	}
	return nil
}

func (c *Config) validateAnalytics() error {
	if _, err := time.LoadLocation(c.Analytics.Timezone); err != nil {
		return fmt.Errorf("analytics.timezone %q is not a valid IANA zone: %w", c.Analytics.Timezone, err)
	}
	if c.Analytics.SessionGapMinutes < 1 {
		return fmt.Errorf("analytics.session_gap_minutes must be at least 1, got %d", c.Analytics.SessionGapMinutes)
	}
	if c.Analytics.RankingLimit < 0 {
		return fmt.Errorf("analytics.ranking_limit must not be negative, got %d", c.Analytics.RankingLimit)
	}
	return nil
}

func (c *Config) validateIngest() error {
	if !c.Ingest.Enabled {
		return nil
	}
	if c.Ingest.NATS.Port < 1 || c.Ingest.NATS.Port > 65535 {
		return fmt.Errorf("ingest.nats.port must be 1-65535, got %d", c.Ingest.NATS.Port)
	}
	if strings.TrimSpace(c.Ingest.NATS.StoreDir) == "" {
		return fmt.Errorf("ingest.nats.store_dir must not be empty")
	}
	if c.Ingest.NATS.MaxMemory < 0 || c.Ingest.NATS.MaxStore < 0 {
		return fmt.Errorf("ingest.nats limits must not be negative")
	}
	return c.validateIngestStream()
}

func (c *Config) validateIngestStream() error {
	if strings.TrimSpace(c.Ingest.Stream.Name) == "" {
		return fmt.Errorf("ingest.stream.name must not be empty")
	}
	if len(c.Ingest.Stream.Subjects) == 0 {
		return fmt.Errorf("ingest.stream.subjects must not be empty")
	}
	if c.Ingest.Stream.MaxAge < 0 {
		return fmt.Errorf("ingest.stream.max_age must not be negative, got %v", c.Ingest.Stream.MaxAge)
	}
	return c.validateIngestConsumer()
}

func (c *Config) validateIngestConsumer() error {
	if c.Ingest.Consumer.BatchSize < 1 {
		return fmt.Errorf("ingest.consumer.batch_size must be at least 1, got %d", c.Ingest.Consumer.BatchSize)
	}
	if c.Ingest.Consumer.FlushInterval <= 0 {
		return fmt.Errorf("ingest.consumer.flush_interval must be positive, got %v", c.Ingest.Consumer.FlushInterval)
	}
	if c.Ingest.Consumer.SubscribersCount < 1 {
		return fmt.Errorf("ingest.consumer.subscribers_count must be at least 1, got %d", c.Ingest.Consumer.SubscribersCount)
	}
	return nil
}

func (c *Config) validateWAL() error {
	if !c.WAL.Enabled {
		return nil
	}
	if strings.TrimSpace(c.WAL.Path) == "" {
		return fmt.Errorf("wal.path must not be empty")
	}
	if c.WAL.RetryInterval <= 0 {
		return fmt.Errorf("wal.retry_interval must be positive, got %v", c.WAL.RetryInterval)
	}
	if c.WAL.MaxAttempts < 1 {
		return fmt.Errorf("wal.max_attempts must be at least 1, got %d", c.WAL.MaxAttempts)
	}
	if c.WAL.EntryTTL <= 0 {
		return fmt.Errorf("wal.entry_ttl must be positive, got %v", c.WAL.EntryTTL)
	}
	return nil
}

func (c *Config) validateImport() error {
	if c.Import.BatchSize < 1 {
		return fmt.Errorf("import.batch_size must be at least 1, got %d", c.Import.BatchSize)
	}
	if c.Import.OnStart {
		if strings.TrimSpace(c.Import.ScansPath) == "" && strings.TrimSpace(c.Import.ClicksPath) == "" {
			return fmt.Errorf("import.on_start requires import.scans_path or import.clicks_path")
		}
	}
	return c.validateRemoteImport()
}

func (c *Config) validateRemoteImport() error {
	if !c.Import.Remote.Enabled {
		return nil
	}
	if err := validateHTTPURL(c.Import.Remote.BaseURL, "import.remote.base_url"); err != nil {
		return err
	}
	if c.Import.Remote.Interval <= 0 {
		return fmt.Errorf("import.remote.interval must be positive, got %v", c.Import.Remote.Interval)
	}
	if c.Import.Remote.RatePerSec <= 0 {
		return fmt.Errorf("import.remote.rate_per_sec must be positive, got %v", c.Import.Remote.RatePerSec)
	}
	if c.Import.Remote.Timeout <= 0 {
		return fmt.Errorf("import.remote.timeout must be positive, got %v", c.Import.Remote.Timeout)
	}
	return nil
}

func (c *Config) validateSnapshot() error {
	if c.Snapshot.RefreshInterval <= 0 {
		return fmt.Errorf("snapshot.refresh_interval must be positive, got %v", c.Snapshot.RefreshInterval)
	}
	if c.Snapshot.StaleCheckInterval <= 0 {
		return fmt.Errorf("snapshot.stale_check_interval must be positive, got %v", c.Snapshot.StaleCheckInterval)
	}
	return nil
}

func (c *Config) validateCache() error {
	if !c.Cache.Enabled {
		return nil
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive, got %v", c.Cache.TTL)
	}
	if c.Cache.MaxEntries < 1 {
		return fmt.Errorf("cache.max_entries must be at least 1, got %d", c.Cache.MaxEntries)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "":
	default:
		return fmt.Errorf("logging.level %q is not a known level", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console", "":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
