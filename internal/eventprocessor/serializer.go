// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package eventprocessor

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Serializer handles event encoding and decoding for NATS messages.
type Serializer struct{}

// NewSerializer creates a new serializer.
func NewSerializer() *Serializer {
	return &Serializer{}
}

// Marshal validates and converts an event to JSON bytes.
func (s *Serializer) Marshal(event *BeaconEvent) ([]byte, error) {
	if err := event.Validate(); err != nil {
		return nil, fmt.Errorf("validate event: %w", err)
	}

	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return data, nil
}

// Unmarshal converts JSON bytes to an event.
func (s *Serializer) Unmarshal(data []byte) (*BeaconEvent, error) {
	var event BeaconEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("unmarshal event: %w", err)
	}
	return &event, nil
}

// SerializeEvent marshals an event to JSON.
func SerializeEvent(event *BeaconEvent) ([]byte, error) {
	return NewSerializer().Marshal(event)
}

// DeserializeEvent unmarshals JSON to an event.
func DeserializeEvent(data []byte) (*BeaconEvent, error) {
	return NewSerializer().Unmarshal(data)
}
