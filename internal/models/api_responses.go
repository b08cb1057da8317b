// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package models

import (
	"time"
)

// APIResponse represents a standardized API response wrapper used by all HTTP
// endpoints. It provides consistent structure for both successful and error
// responses, with metadata for observability and caching information.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": [{"project_id": 3, "scans": 120, "clicks": 48, ...}],
//	  "metadata": {
//	    "timestamp": "2026-08-01T12:00:00Z",
//	    "query_time_ms": 4,
//	    "snapshot_version": 17
//	  }
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "VALIDATION_ERROR",
//	    "message": "Invalid date range",
//	    "details": {"field": "start"}
//	  },
//	  "metadata": {"timestamp": "2026-08-01T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability and cache tracking.
//
// QueryTimeMS is the engine computation time in milliseconds (0 when the
// response was served from cache). SnapshotVersion identifies the snapshot
// the result was computed from, so a dashboard can detect staleness across
// polls.
type Metadata struct {
	Timestamp       time.Time `json:"timestamp"`
	QueryTimeMS     int64     `json:"query_time_ms,omitempty"`
	Cached          bool      `json:"cached,omitempty"`
	SnapshotVersion int64     `json:"snapshot_version,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Common error codes:
//   - VALIDATION_ERROR: invalid input parameters
//   - SNAPSHOT_UNAVAILABLE: no snapshot has been loaded yet
//   - NOT_FOUND: resource doesn't exist
//   - INGEST_ERROR: event could not be accepted
//   - RATE_LIMIT_EXCEEDED: too many requests
//   - INTERNAL_ERROR: unexpected server failure
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error implements the error interface so an *APIError can travel through
// error returns inside the API layer.
func (e *APIError) Error() string {
	return e.Code + ": " + e.Message
}
