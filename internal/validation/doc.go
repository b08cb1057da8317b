// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

// Package validation wraps go-playground/validator v10 behind a
// thread-safe singleton with Luxboard's custom rules and error
// translation.
//
// Request structs declare their constraints with validate tags and
// hand themselves to ValidateStruct:
//
//	type TrendsRequest struct {
//	    From        string `validate:"omitempty,datetime=2006-01-02"`
//	    To          string `validate:"omitempty,datetime=2006-01-02"`
//	    Granularity string `validate:"omitempty,oneof=day month"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    // respond 400 with apiErr.Code / apiErr.Message
//	}
//
// Beyond the built-in tags, the package registers:
//
//	usercode - printable visitor code, at most 64 runes, no control
//	           characters. Used on beacon event payloads.
//
// Validation failures come back as *RequestValidationError, which
// renders either a single translated message or a combined list, and
// converts to the API error envelope via ToAPIError.
package validation
