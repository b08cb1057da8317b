// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package api

import "time"

// Request structs carry validated query parameters and bodies for the
// API endpoints. Validation tags follow go-playground/validator v10
// syntax; translation to the error envelope happens in validateRequest.

// TrendsRequest holds the query parameters for /analytics/trends.
//
// The date window resolves with the precedence start+end > days >
// months > trailing 30 days. Start and End are calendar dates in the
// configured timezone, both inclusive.
type TrendsRequest struct {
	Interval string `validate:"omitempty,oneof=day month"`
	Start    string `validate:"omitempty,datetime=2006-01-02,required_with=End"`
	End      string `validate:"omitempty,datetime=2006-01-02,required_with=Start"`
	Days     int    `validate:"omitempty,min=1,max=3650"`
	Months   int    `validate:"omitempty,min=1,max=120"`
}

// RangeRequest holds the shared date-window parameters used by the
// analytics endpoints that take no extra knobs (dayparting, funnel,
// scene comparison, light performance, merged performance).
type RangeRequest struct {
	Start  string `validate:"omitempty,datetime=2006-01-02,required_with=End"`
	End    string `validate:"omitempty,datetime=2006-01-02,required_with=Start"`
	Days   int    `validate:"omitempty,min=1,max=3650"`
	Months int    `validate:"omitempty,min=1,max=120"`
}

// RankingRequest holds the query parameters for /analytics/clicks/ranking.
type RankingRequest struct {
	Limit  int    `validate:"min=1,max=1000"`
	Start  string `validate:"omitempty,datetime=2006-01-02,required_with=End"`
	End    string `validate:"omitempty,datetime=2006-01-02,required_with=Start"`
	Days   int    `validate:"omitempty,min=1,max=3650"`
	Months int    `validate:"omitempty,min=1,max=120"`
}

// SessionInsightsRequest holds the query parameters for
// /analytics/sessions/insights. Gap is the session inactivity timeout
// in minutes.
type SessionInsightsRequest struct {
	Gap    int    `validate:"min=1,max=1440"`
	Start  string `validate:"omitempty,datetime=2006-01-02,required_with=End"`
	End    string `validate:"omitempty,datetime=2006-01-02,required_with=Start"`
	Days   int    `validate:"omitempty,min=1,max=3650"`
	Months int    `validate:"omitempty,min=1,max=120"`
}

// CohortsRequest holds the query parameters for /analytics/cohorts.
// Granularity selects which series of the acquisition report to return.
type CohortsRequest struct {
	Granularity string `validate:"omitempty,oneof=global project scene"`
	Start       string `validate:"omitempty,datetime=2006-01-02,required_with=End"`
	End         string `validate:"omitempty,datetime=2006-01-02,required_with=Start"`
	Days        int    `validate:"omitempty,min=1,max=3650"`
	Months      int    `validate:"omitempty,min=1,max=120"`
}

// MarketingRequest holds the validated parameters for
// /analytics/objects/{id}/marketing. ObjectID comes from the URL path;
// Gap feeds the dwell-time session reconstruction.
type MarketingRequest struct {
	ObjectID int64 `validate:"required,gt=0"`
	Gap      int   `validate:"min=1,max=1440"`
}

// ScanEventRequest is the body for POST /events/scan. A zero Timestamp
// defaults to the ingest time.
type ScanEventRequest struct {
	LightID      string    `json:"light_id" validate:"required,min=1,max=128"`
	CoordinateID string    `json:"coordinate_id" validate:"omitempty,max=128"`
	ClientID     string    `json:"client_id" validate:"required,min=1,max=128"`
	Timestamp    time.Time `json:"timestamp"`
}

// ClickEventRequest is the body for POST /events/click. UserCode may be
// empty for unattributed clicks.
type ClickEventRequest struct {
	ObjectID  int64     `json:"object_id" validate:"required,gt=0"`
	UserCode  string    `json:"user_code" validate:"omitempty,usercode"`
	Timestamp time.Time `json:"timestamp"`
}
