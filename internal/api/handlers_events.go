// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/luxboard/luxboard/internal/eventprocessor"
	"github.com/luxboard/luxboard/internal/logging"
	"github.com/luxboard/luxboard/internal/models"
)

// maxEventBodyBytes caps ingest request bodies. Beacon events are a few
// hundred bytes; anything near the cap is malformed or hostile.
const maxEventBodyBytes = 1 << 20

// IngestEvent accepts a single beacon event and hands it to the durable
// publisher. The write path is WAL-first, so a 202 means the event
// survives a broker outage or process crash.
//
// @Summary Ingest a beacon event
// @Description Accepts one scan or click event and queues it durably for processing. A zero timestamp defaults to the ingest time.
// @Tags Events
// @Accept json
// @Produce json
// @Param kind path string true "Event kind" Enums(scan, click)
// @Success 202 {object} models.APIResponse "Event accepted"
// @Failure 400 {object} models.APIResponse "Invalid kind or body"
// @Failure 503 {object} models.APIResponse "Ingest pipeline unavailable"
// @Router /events/{kind} [post]
func (h *Handler) IngestEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	if h.publisher == nil {
		respondError(w, http.StatusServiceUnavailable, "SERVICE_ERROR", "Event ingest not available", nil)
		return
	}

	kind := chi.URLParam(r, "kind")
	if kind != eventprocessor.KindScan && kind != eventprocessor.KindClick {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"Event kind must be scan or click", nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxEventBodyBytes)

	var event *eventprocessor.BeaconEvent
	switch kind {
	case eventprocessor.KindScan:
		var req ScanEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_JSON", "Request body is not valid JSON", err)
			return
		}
		if apiErr := validateRequest(&req); apiErr != nil {
			respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
			return
		}
		event = eventprocessor.NewScanEvent(req.LightID, req.CoordinateID, req.ClientID, req.Timestamp)

	case eventprocessor.KindClick:
		var req ClickEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_JSON", "Request body is not valid JSON", err)
			return
		}
		if apiErr := validateRequest(&req); apiErr != nil {
			respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
			return
		}
		event = eventprocessor.NewClickEvent(req.ObjectID, req.UserCode, req.Timestamp)
	}

	if err := h.publisher.PublishBeaconEvent(r.Context(), event); err != nil {
		respondError(w, http.StatusInternalServerError, "INGEST_ERROR",
			"Event could not be accepted", err)
		return
	}

	logging.Debug().
		Str("event_id", event.EventID).
		Str("kind", event.Kind).
		Msg("Beacon event accepted")

	respondJSON(w, http.StatusAccepted, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"event_id": event.EventID,
			"kind":     event.Kind,
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
