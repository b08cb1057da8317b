// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package eventprocessor

import "errors"

// ErrPublisherClosed is returned when publishing through a closed
// publisher.
var ErrPublisherClosed = errors.New("publisher is closed")

// ErrNilPublisher is returned when a component requires a publisher and
// none was given.
var ErrNilPublisher = errors.New("publisher cannot be nil")

// ErrInvalidConfig is returned when configuration is invalid.
var ErrInvalidConfig = errors.New("invalid configuration")
