// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

// Package config loads and validates Luxboard's configuration.
//
// Configuration is layered with koanf. Later layers override earlier
// ones:
//
//  1. Built-in defaults (defaultConfig)
//  2. An optional YAML file, discovered via LUXBOARD_CONFIG or the
//     DefaultConfigPaths search list
//  3. LUXBOARD_* environment variables
//
// Every environment variable maps to a dotted config path through an
// explicit table, for example LUXBOARD_SERVER_PORT sets server.port
// and LUXBOARD_SESSION_GAP_MINUTES sets analytics.session_gap_minutes.
// Unknown LUXBOARD_* variables are ignored rather than unmarshaled, so
// unrelated environment noise cannot reach the config struct.
//
// LoadWithKoanf returns a validated *Config or an error naming the
// first offending field:
//
//	cfg, err := config.LoadWithKoanf()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("configuration invalid")
//	}
//
// The zero Config is not usable; always go through LoadWithKoanf or,
// in tests, defaultConfig plus explicit overrides.
package config
