// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package config

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaultConfig().Validate() = %v, want nil", err)
	}
}

func TestValidate_Server(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"zero timeout", func(c *Config) { c.Server.Timeout = 0 }, "server.timeout"},
		{"zero rate limit", func(c *Config) { c.Server.RateLimitReqs = 0 }, "rate_limit_requests"},
		{"tiny rate window", func(c *Config) { c.Server.RateLimitWindow = time.Millisecond }, "rate_limit_window"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_DisabledRateLimitSkipsChecks(t *testing.T) {
	cfg := defaultConfig()
	cfg.Server.RateLimitDisabled = true
	cfg.Server.RateLimitReqs = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil when rate limiting disabled", err)
	}
}

func TestValidate_Analytics(t *testing.T) {
	cfg := defaultConfig()
	cfg.Analytics.Timezone = "Mars/Olympus"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() = nil for bogus timezone")
	}

	cfg = defaultConfig()
	cfg.Analytics.Timezone = "Europe/Berlin"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v for Europe/Berlin", err)
	}

	cfg = defaultConfig()
	cfg.Analytics.SessionGapMinutes = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() = nil for zero session gap")
	}

	cfg = defaultConfig()
	cfg.Analytics.RankingLimit = -1
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() = nil for negative ranking limit")
	}
}

func TestValidate_Ingest(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad nats port", func(c *Config) { c.Ingest.NATS.Port = -1 }},
		{"empty store dir", func(c *Config) { c.Ingest.NATS.StoreDir = " " }},
		{"empty stream name", func(c *Config) { c.Ingest.Stream.Name = "" }},
		{"no subjects", func(c *Config) { c.Ingest.Stream.Subjects = nil }},
		{"negative max age", func(c *Config) { c.Ingest.Stream.MaxAge = -time.Hour }},
		{"zero batch", func(c *Config) { c.Ingest.Consumer.BatchSize = 0 }},
		{"zero flush", func(c *Config) { c.Ingest.Consumer.FlushInterval = 0 }},
		{"zero subscribers", func(c *Config) { c.Ingest.Consumer.SubscribersCount = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}

			// The same config is fine once the pipeline is off.
			cfg.Ingest.Enabled = false
			if err := cfg.Validate(); err != nil {
				t.Errorf("Validate() with ingest disabled = %v, want nil", err)
			}
		})
	}
}

func TestValidate_WAL(t *testing.T) {
	cfg := defaultConfig()
	cfg.WAL.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() = nil for empty wal.path")
	}

	cfg.WAL.Enabled = false
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() with wal disabled = %v, want nil", err)
	}
}

func TestValidate_Import(t *testing.T) {
	cfg := defaultConfig()
	cfg.Import.BatchSize = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() = nil for zero import batch size")
	}

	cfg = defaultConfig()
	cfg.Import.OnStart = true
	cfg.Import.ScansPath = ""
	cfg.Import.ClicksPath = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() = nil for on_start without paths")
	}

	cfg = defaultConfig()
	cfg.Import.Remote.Enabled = true
	cfg.Import.Remote.BaseURL = "ftp://example.com"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() = nil for non-http remote base url")
	}

	cfg = defaultConfig()
	cfg.Import.Remote.Enabled = true
	cfg.Import.Remote.BaseURL = "https://beacons.example.com"
	cfg.Import.Remote.RatePerSec = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() = nil for zero remote rate")
	}
}

func TestValidate_Logging(t *testing.T) {
	cfg := defaultConfig()
	cfg.Logging.Level = "loud"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() = nil for unknown log level")
	}

	cfg = defaultConfig()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() = nil for unknown log format")
	}

	cfg = defaultConfig()
	cfg.Logging.Level = ""
	cfg.Logging.Format = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v for empty logging values, want nil", err)
	}
}

func TestValidateHTTPURL(t *testing.T) {
	tests := []struct {
		url   string
		valid bool
	}{
		{"https://beacons.example.com", true},
		{"http://10.0.0.5:8080", true},
		{"https://beacons.example.com/api/v2", true},
		{"ftp://example.com", false},
		{"https://", false},
		{"https://example.com?key=1", false},
		{"not a url at all\x7f://", false},
	}
	for _, tt := range tests {
		err := validateHTTPURL(tt.url, "test.url")
		if tt.valid && err != nil {
			t.Errorf("validateHTTPURL(%q) = %v, want nil", tt.url, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("validateHTTPURL(%q) = nil, want error", tt.url)
		}
	}
}

func TestLocation(t *testing.T) {
	cfg := defaultConfig()
	if got := cfg.Location(); got != time.UTC {
		t.Errorf("Location() = %v, want UTC", got)
	}

	cfg.Analytics.Timezone = "Europe/Berlin"
	if got := cfg.Location().String(); got != "Europe/Berlin" {
		t.Errorf("Location() = %v, want Europe/Berlin", got)
	}

	cfg.Analytics.Timezone = "Nowhere/Nonsense"
	if got := cfg.Location(); got != time.UTC {
		t.Errorf("Location() fallback = %v, want UTC", got)
	}
}

func TestAddresses(t *testing.T) {
	cfg := defaultConfig()
	if got := cfg.NATSURL(); got != "nats://127.0.0.1:4222" {
		t.Errorf("NATSURL() = %q, want nats://127.0.0.1:4222", got)
	}
	if got := cfg.ListenAddr(); got != "0.0.0.0:5890" {
		t.Errorf("ListenAddr() = %q, want 0.0.0.0:5890", got)
	}
}
