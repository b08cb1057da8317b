// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/luxboard/luxboard/internal/analytics"
)

// This file contains the analytics query endpoints. Every handler reads
// the current snapshot through the executor's cache-first flow; none of
// them touch the store directly.
//
// Analytics Endpoints (10 total):
//   - AnalyticsTrends: daily or monthly scan+click buckets
//   - AnalyticsDayparting: hour-of-day activity distribution
//   - AnalyticsFunnel: per-project scan -> click -> attributed funnel
//   - AnalyticsClickRanking: top AR objects by click count
//   - AnalyticsSessionInsights: entry/exit/transition/path mining
//   - AnalyticsCohorts: new vs returning acquisition series
//   - AnalyticsObjectMarketing: per-object CTR and dwell sheet
//   - AnalyticsSceneComparison: per-scene tallies with Unattributed
//   - AnalyticsLightPerformance: per-light tallies with click attribution
//   - AnalyticsMergedPerformance: per-light-config rollup
//
// All endpoints share the window parameters (start+end | days | months,
// default trailing 30 days) and respond from cache when the same
// parameters hit the same snapshot version.

// AnalyticsTrends returns scan and click counts bucketed by calendar
// day or month. When a months window is requested without an explicit
// interval the buckets default to monthly.
//
// @Summary Get interaction trends
// @Description Returns scan and click counts bucketed by calendar day or month over the selected window (default trailing 30 days)
// @Tags Analytics
// @Accept json
// @Produce json
// @Param interval query string false "Bucket interval (day or month)"
// @Param start query string false "Window start date (YYYY-MM-DD, requires end)"
// @Param end query string false "Window end date (YYYY-MM-DD, requires start)"
// @Param days query int false "Trailing window in days (1-3650)"
// @Param months query int false "Trailing window in months (1-120)"
// @Success 200 {object} models.APIResponse{data=[]models.TrendPoint} "Trend buckets retrieved successfully"
// @Failure 400 {object} models.APIResponse "Invalid query parameters"
// @Failure 503 {object} models.APIResponse "Snapshot not loaded"
// @Router /analytics/trends [get]
func (h *Handler) AnalyticsTrends(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	req := TrendsRequest{
		Interval: r.URL.Query().Get("interval"),
		Start:    r.URL.Query().Get("start"),
		End:      r.URL.Query().Get("end"),
		Days:     getIntParam(r, "days", 0),
		Months:   getIntParam(r, "months", 0),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	dateRange, ok := h.rangeOrRespond(w, req.Start, req.End, req.Days, req.Months)
	if !ok {
		return
	}

	interval := analytics.Interval(req.Interval)
	if req.Interval == "" {
		interval = analytics.IntervalDay
		if req.Months > 0 {
			interval = analytics.IntervalMonth
		}
	}

	executor := NewAnalyticsQueryExecutor(h)
	executor.Execute(w, r, "AnalyticsTrends", req, func(s *analytics.Snapshot) interface{} {
		return analytics.ComputeTrends(s, dateRange, interval)
	})
}

// AnalyticsDayparting returns scan and click counts distributed over
// the 24 hours of the day for the selected window.
//
// @Summary Get hour-of-day activity distribution
// @Description Returns scan and click counts per hour of day (0-23) in the configured timezone
// @Tags Analytics
// @Accept json
// @Produce json
// @Param start query string false "Window start date (YYYY-MM-DD, requires end)"
// @Param end query string false "Window end date (YYYY-MM-DD, requires start)"
// @Param days query int false "Trailing window in days (1-3650)"
// @Param months query int false "Trailing window in months (1-120)"
// @Success 200 {object} models.APIResponse{data=[]models.DaypartRow} "Dayparting rows retrieved successfully"
// @Failure 400 {object} models.APIResponse "Invalid query parameters"
// @Failure 503 {object} models.APIResponse "Snapshot not loaded"
// @Router /analytics/dayparting [get]
func (h *Handler) AnalyticsDayparting(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	req := RangeRequest{
		Start:  r.URL.Query().Get("start"),
		End:    r.URL.Query().Get("end"),
		Days:   getIntParam(r, "days", 0),
		Months: getIntParam(r, "months", 0),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	dateRange, ok := h.rangeOrRespond(w, req.Start, req.End, req.Days, req.Months)
	if !ok {
		return
	}

	executor := NewAnalyticsQueryExecutor(h)
	executor.Execute(w, r, "AnalyticsDayparting", req, func(s *analytics.Snapshot) interface{} {
		return analytics.ComputeDayparting(s, dateRange)
	})
}

// AnalyticsFunnel returns one funnel row per project covering the
// window: scans, clicks, attributed clicks, and conversion rates.
//
// @Summary Get per-project conversion funnel
// @Description Returns scans, clicks, attributed clicks, and conversion rates per project for the selected window
// @Tags Analytics
// @Accept json
// @Produce json
// @Param start query string false "Window start date (YYYY-MM-DD, requires end)"
// @Param end query string false "Window end date (YYYY-MM-DD, requires start)"
// @Param days query int false "Trailing window in days (1-3650)"
// @Param months query int false "Trailing window in months (1-120)"
// @Success 200 {object} models.APIResponse{data=[]models.FunnelRow} "Funnel rows retrieved successfully"
// @Failure 400 {object} models.APIResponse "Invalid query parameters"
// @Failure 503 {object} models.APIResponse "Snapshot not loaded"
// @Router /analytics/funnel [get]
func (h *Handler) AnalyticsFunnel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	req := RangeRequest{
		Start:  r.URL.Query().Get("start"),
		End:    r.URL.Query().Get("end"),
		Days:   getIntParam(r, "days", 0),
		Months: getIntParam(r, "months", 0),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	dateRange, ok := h.rangeOrRespond(w, req.Start, req.End, req.Days, req.Months)
	if !ok {
		return
	}

	executor := NewAnalyticsQueryExecutor(h)
	executor.Execute(w, r, "AnalyticsFunnel", req, func(s *analytics.Snapshot) interface{} {
		return analytics.ComputeProjectFunnel(s, dateRange)
	})
}

// AnalyticsClickRanking returns AR objects ordered by click count in
// the window, truncated to limit.
//
// @Summary Get top AR objects by clicks
// @Description Returns AR objects ranked by click count in the selected window
// @Tags Analytics
// @Accept json
// @Produce json
// @Param limit query int false "Number of objects to return (1-1000)" default(10)
// @Param start query string false "Window start date (YYYY-MM-DD, requires end)"
// @Param end query string false "Window end date (YYYY-MM-DD, requires start)"
// @Param days query int false "Trailing window in days (1-3650)"
// @Param months query int false "Trailing window in months (1-120)"
// @Success 200 {object} models.APIResponse{data=[]models.ClickRankingRow} "Ranking retrieved successfully"
// @Failure 400 {object} models.APIResponse "Invalid query parameters"
// @Failure 503 {object} models.APIResponse "Snapshot not loaded"
// @Router /analytics/clicks/ranking [get]
func (h *Handler) AnalyticsClickRanking(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	req := RankingRequest{
		Limit:  getIntParam(r, "limit", 10),
		Start:  r.URL.Query().Get("start"),
		End:    r.URL.Query().Get("end"),
		Days:   getIntParam(r, "days", 0),
		Months: getIntParam(r, "months", 0),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	dateRange, ok := h.rangeOrRespond(w, req.Start, req.End, req.Days, req.Months)
	if !ok {
		return
	}

	executor := NewAnalyticsQueryExecutor(h)
	executor.Execute(w, r, "AnalyticsClickRanking", req, func(s *analytics.Snapshot) interface{} {
		return analytics.RankClicks(s, dateRange, req.Limit)
	})
}

// AnalyticsSessionInsights reconstructs click sessions for the window
// and mines them for entry/exit objects, transitions, and top paths.
//
// @Summary Get session insights
// @Description Reconstructs click sessions and returns entry/exit objects, transition pairs, and most common paths
// @Tags Analytics
// @Accept json
// @Produce json
// @Param gap query int false "Session inactivity timeout in minutes (1-1440)" default(10)
// @Param start query string false "Window start date (YYYY-MM-DD, requires end)"
// @Param end query string false "Window end date (YYYY-MM-DD, requires start)"
// @Param days query int false "Trailing window in days (1-3650)"
// @Param months query int false "Trailing window in months (1-120)"
// @Success 200 {object} models.APIResponse{data=models.SessionInsights} "Session insights retrieved successfully"
// @Failure 400 {object} models.APIResponse "Invalid query parameters"
// @Failure 503 {object} models.APIResponse "Snapshot not loaded"
// @Router /analytics/sessions/insights [get]
func (h *Handler) AnalyticsSessionInsights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	req := SessionInsightsRequest{
		Gap:    getIntParam(r, "gap", analytics.DefaultSessionGapMinutes),
		Start:  r.URL.Query().Get("start"),
		End:    r.URL.Query().Get("end"),
		Days:   getIntParam(r, "days", 0),
		Months: getIntParam(r, "months", 0),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	dateRange, ok := h.rangeOrRespond(w, req.Start, req.End, req.Days, req.Months)
	if !ok {
		return
	}

	executor := NewAnalyticsQueryExecutor(h)
	executor.Execute(w, r, "AnalyticsSessionInsights", req, func(s *analytics.Snapshot) interface{} {
		sessions := analytics.ReconstructSessions(s, dateRange, req.Gap)
		return analytics.MineSessionInsights(sessions)
	})
}

// AnalyticsCohorts classifies clicking users as new or returning
// relative to their first-ever click and returns the acquisition series
// for the requested granularity.
//
// @Summary Get new vs returning user cohorts
// @Description Classifies users by first-ever click and returns the acquisition series globally, per project, or per scene
// @Tags Analytics
// @Accept json
// @Produce json
// @Param granularity query string false "Series granularity (global, project, or scene)" default(global)
// @Param start query string false "Window start date (YYYY-MM-DD, requires end)"
// @Param end query string false "Window end date (YYYY-MM-DD, requires start)"
// @Param days query int false "Trailing window in days (1-3650)"
// @Param months query int false "Trailing window in months (1-120)"
// @Success 200 {object} models.APIResponse{data=[]models.CohortBucket} "Cohort series retrieved successfully"
// @Failure 400 {object} models.APIResponse "Invalid query parameters"
// @Failure 503 {object} models.APIResponse "Snapshot not loaded"
// @Router /analytics/cohorts [get]
func (h *Handler) AnalyticsCohorts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	req := CohortsRequest{
		Granularity: r.URL.Query().Get("granularity"),
		Start:       r.URL.Query().Get("start"),
		End:         r.URL.Query().Get("end"),
		Days:        getIntParam(r, "days", 0),
		Months:      getIntParam(r, "months", 0),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	dateRange, ok := h.rangeOrRespond(w, req.Start, req.End, req.Days, req.Months)
	if !ok {
		return
	}

	executor := NewAnalyticsQueryExecutor(h)
	executor.Execute(w, r, "AnalyticsCohorts", req, func(s *analytics.Snapshot) interface{} {
		report := analytics.TrackAcquisition(s, dateRange)
		switch req.Granularity {
		case "project":
			return report.ByProject
		case "scene":
			return report.ByScene
		default:
			return report.Global
		}
	})
}

// AnalyticsObjectMarketing returns the marketing sheet for one AR
// object: total/30-day/12-month clicks, CTRs against owning projects'
// scan volume, and average dwell time between repeat interactions.
//
// The windows are anchored to the current time rather than a query
// range, so the sheet always reflects "now".
//
// @Summary Get marketing metrics for an AR object
// @Description Returns total, 30-day, and 12-month clicks, click-through rates against owning projects' scan volume, and average dwell time
// @Tags Analytics
// @Accept json
// @Produce json
// @Param id path int true "AR object ID"
// @Param gap query int false "Session inactivity timeout in minutes for dwell computation (1-1440)" default(10)
// @Success 200 {object} models.APIResponse{data=models.ObjectMarketingStats} "Marketing metrics retrieved successfully"
// @Failure 400 {object} models.APIResponse "Invalid object id"
// @Failure 503 {object} models.APIResponse "Snapshot not loaded"
// @Router /analytics/objects/{id}/marketing [get]
func (h *Handler) AnalyticsObjectMarketing(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	objectID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Object id must be an integer", nil)
		return
	}

	req := MarketingRequest{
		ObjectID: objectID,
		Gap:      getIntParam(r, "gap", analytics.DefaultSessionGapMinutes),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	ref := time.Now().In(h.location())

	executor := NewAnalyticsQueryExecutor(h)
	executor.Execute(w, r, "AnalyticsObjectMarketing", req, func(s *analytics.Snapshot) interface{} {
		return analytics.ComputeObjectMarketing(s, req.ObjectID, ref, req.Gap)
	})
}

// AnalyticsSceneComparison returns per-scene scan/click/user tallies
// for the window, including the Unattributed bucket for events that
// resolve no scene.
//
// @Summary Compare scenes
// @Description Returns scan, click, and unique-user tallies per scene, with an Unattributed bucket for events that resolve no scene
// @Tags Analytics
// @Accept json
// @Produce json
// @Param start query string false "Window start date (YYYY-MM-DD, requires end)"
// @Param end query string false "Window end date (YYYY-MM-DD, requires start)"
// @Param days query int false "Trailing window in days (1-3650)"
// @Param months query int false "Trailing window in months (1-120)"
// @Success 200 {object} models.APIResponse{data=[]models.SceneComparisonRow} "Scene comparison retrieved successfully"
// @Failure 400 {object} models.APIResponse "Invalid query parameters"
// @Failure 503 {object} models.APIResponse "Snapshot not loaded"
// @Router /analytics/scenes/comparison [get]
func (h *Handler) AnalyticsSceneComparison(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	req := RangeRequest{
		Start:  r.URL.Query().Get("start"),
		End:    r.URL.Query().Get("end"),
		Days:   getIntParam(r, "days", 0),
		Months: getIntParam(r, "months", 0),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	dateRange, ok := h.rangeOrRespond(w, req.Start, req.End, req.Days, req.Months)
	if !ok {
		return
	}

	executor := NewAnalyticsQueryExecutor(h)
	executor.Execute(w, r, "AnalyticsSceneComparison", req, func(s *analytics.Snapshot) interface{} {
		return analytics.CompareScenes(s, dateRange)
	})
}

// AnalyticsLightPerformance returns per-light tallies for the window.
// Clicks are attributed to a light through the latest preceding scan of
// the same user.
//
// @Summary Get per-light performance
// @Description Returns scan and click tallies per light beacon, attributing each click to the user's latest preceding scan
// @Tags Analytics
// @Accept json
// @Produce json
// @Param start query string false "Window start date (YYYY-MM-DD, requires end)"
// @Param end query string false "Window end date (YYYY-MM-DD, requires start)"
// @Param days query int false "Trailing window in days (1-3650)"
// @Param months query int false "Trailing window in months (1-120)"
// @Success 200 {object} models.APIResponse{data=[]models.LightPerformanceRow} "Light performance retrieved successfully"
// @Failure 400 {object} models.APIResponse "Invalid query parameters"
// @Failure 503 {object} models.APIResponse "Snapshot not loaded"
// @Router /analytics/lights/performance [get]
func (h *Handler) AnalyticsLightPerformance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	req := RangeRequest{
		Start:  r.URL.Query().Get("start"),
		End:    r.URL.Query().Get("end"),
		Days:   getIntParam(r, "days", 0),
		Months: getIntParam(r, "months", 0),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	dateRange, ok := h.rangeOrRespond(w, req.Start, req.End, req.Days, req.Months)
	if !ok {
		return
	}

	executor := NewAnalyticsQueryExecutor(h)
	executor.Execute(w, r, "AnalyticsLightPerformance", req, func(s *analytics.Snapshot) interface{} {
		return analytics.ComputeLightPerformance(s, dateRange)
	})
}

// AnalyticsMergedPerformance returns the per-light-config rollup
// joining scan volume and click volume through the config's scene.
//
// @Summary Get merged per-configuration performance
// @Description Returns the per-light-configuration rollup joining scan volume and click volume through the configuration's scene
// @Tags Analytics
// @Accept json
// @Produce json
// @Param start query string false "Window start date (YYYY-MM-DD, requires end)"
// @Param end query string false "Window end date (YYYY-MM-DD, requires start)"
// @Param days query int false "Trailing window in days (1-3650)"
// @Param months query int false "Trailing window in months (1-120)"
// @Success 200 {object} models.APIResponse{data=[]models.MergedPerformanceRow} "Merged performance retrieved successfully"
// @Failure 400 {object} models.APIResponse "Invalid query parameters"
// @Failure 503 {object} models.APIResponse "Snapshot not loaded"
// @Router /analytics/performance/merged [get]
func (h *Handler) AnalyticsMergedPerformance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	req := RangeRequest{
		Start:  r.URL.Query().Get("start"),
		End:    r.URL.Query().Get("end"),
		Days:   getIntParam(r, "days", 0),
		Months: getIntParam(r, "months", 0),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	dateRange, ok := h.rangeOrRespond(w, req.Start, req.End, req.Days, req.Months)
	if !ok {
		return
	}

	executor := NewAnalyticsQueryExecutor(h)
	executor.Execute(w, r, "AnalyticsMergedPerformance", req, func(s *analytics.Snapshot) interface{} {
		return analytics.ComputeMergedPerformance(s, dateRange)
	})
}
