// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

/*
Package models defines data structures for the Luxboard application.

This package contains all data models used throughout the application: the
normalized beacon-domain records loaded from the backing store, the derived
result rows produced by the analytics engine, and the API response envelope.
It serves as the single source of truth for data structure definitions.

Model Categories:

1. Domain Records (inputs to the analytics engine):
  - Project: campaign with date range, scene references, coordinate labels
  - Scan: a device detecting a physical light beacon
  - Click: a user tapping an AR object surfaced after a scan
  - ArObject, CoordinateSystem, LightConfig: linkage entities

2. Result Rows (outputs of the analytics engine):
  - TrendPoint, DaypartRow: time-bucketed series
  - FunnelRow, ClickRankingRow: project funnels and object rankings
  - Session, SessionInsights: reconstructed click sessions and mined statistics
  - AcquisitionReport, CohortBucket: new/returning user series
  - SceneComparisonRow, LightPerformanceRow, MergedPerformanceRow,
    ObjectMarketingStats: attribution and performance metrics

3. API Models:
  - APIResponse: standardized response wrapper
  - APIError: structured error details

All domain records are read-only inputs: the engine never mutates them, only
derives new aggregate structures.
*/
package models
