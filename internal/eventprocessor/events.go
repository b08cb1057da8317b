// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package eventprocessor

import (
	"time"

	"github.com/google/uuid"

	"github.com/luxboard/luxboard/internal/models"
)

// SchemaVersion is the current event schema version. Increment on
// breaking changes to BeaconEvent.
const SchemaVersion = 1

// Event kinds.
const (
	KindScan  = "scan"
	KindClick = "click"
)

// NATS subjects. Every event is published on interaction.<kind>.
const (
	SubjectPrefix   = "interaction."
	SubjectWildcard = "interaction.>"
	SubjectScan     = SubjectPrefix + KindScan
	SubjectClick    = SubjectPrefix + KindClick
)

// BeaconEvent is the canonical wire format for a single beacon
// interaction. Scan fields are set for kind "scan", click fields for
// kind "click"; the rest stay zero.
type BeaconEvent struct {
	SchemaVersion int       `json:"schema_version,omitempty"`
	EventID       string    `json:"event_id"`
	Kind          string    `json:"kind"`
	Timestamp     time.Time `json:"timestamp"`

	// Scan fields. CoordinateID is empty when the device did not
	// resolve a coordinate system.
	LightID      string `json:"light_id,omitempty"`
	CoordinateID string `json:"coordinate_id,omitempty"`
	ClientID     string `json:"client_id,omitempty"`

	// Click fields. UserCode is empty for unattributed clicks.
	ObjectID int64  `json:"object_id,omitempty"`
	UserCode string `json:"user_code,omitempty"`
}

// NewScanEvent creates a scan event with a fresh ID. A zero timestamp
// defaults to the current time.
func NewScanEvent(lightID, coordinateID, clientID string, at time.Time) *BeaconEvent {
	if at.IsZero() {
		at = time.Now().UTC()
	}
	return &BeaconEvent{
		SchemaVersion: SchemaVersion,
		EventID:       uuid.New().String(),
		Kind:          KindScan,
		Timestamp:     at,
		LightID:       lightID,
		CoordinateID:  coordinateID,
		ClientID:      clientID,
	}
}

// NewClickEvent creates a click event with a fresh ID. A zero timestamp
// defaults to the current time.
func NewClickEvent(objectID int64, userCode string, at time.Time) *BeaconEvent {
	if at.IsZero() {
		at = time.Now().UTC()
	}
	return &BeaconEvent{
		SchemaVersion: SchemaVersion,
		EventID:       uuid.New().String(),
		Kind:          KindClick,
		Timestamp:     at,
		ObjectID:      objectID,
		UserCode:      userCode,
	}
}

// GetSchemaVersion returns the schema version, defaulting to 1 for
// events written before versioning.
func (e *BeaconEvent) GetSchemaVersion() int {
	if e.SchemaVersion == 0 {
		return 1
	}
	return e.SchemaVersion
}

// EnsureSchemaVersion stamps the current version on events that carry
// none.
func (e *BeaconEvent) EnsureSchemaVersion() {
	if e.SchemaVersion == 0 {
		e.SchemaVersion = SchemaVersion
	}
}

// Subject returns the NATS subject for this event.
func (e *BeaconEvent) Subject() string {
	return SubjectPrefix + e.Kind
}

// Validate checks required fields for the event's kind.
func (e *BeaconEvent) Validate() error {
	if e.EventID == "" {
		return &ValidationError{Field: "event_id", Message: "required"}
	}
	if e.Timestamp.IsZero() {
		return &ValidationError{Field: "timestamp", Message: "required"}
	}
	switch e.Kind {
	case KindScan:
		if e.LightID == "" {
			return &ValidationError{Field: "light_id", Message: "required"}
		}
		if e.ClientID == "" {
			return &ValidationError{Field: "client_id", Message: "required"}
		}
	case KindClick:
		if e.ObjectID <= 0 {
			return &ValidationError{Field: "object_id", Message: "must be positive"}
		}
	default:
		return &ValidationError{Field: "kind", Message: "must be scan or click"}
	}
	return nil
}

// ToScan converts the event to a store scan record. Only meaningful for
// kind "scan".
func (e *BeaconEvent) ToScan() models.Scan {
	return models.Scan{
		LightID:      e.LightID,
		CoordinateID: e.CoordinateID,
		ClientID:     e.ClientID,
		Timestamp:    e.Timestamp,
	}
}

// ToClick converts the event to a store click record. Only meaningful
// for kind "click".
func (e *BeaconEvent) ToClick() models.Click {
	return models.Click{
		ObjectID:  e.ObjectID,
		UserCode:  e.UserCode,
		Timestamp: e.Timestamp,
	}
}

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
