// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func TestGenerateCorrelationID(t *testing.T) {
	id := GenerateCorrelationID()
	if len(id) != 8 {
		t.Fatalf("len(GenerateCorrelationID()) = %d, want 8", len(id))
	}
	if id == GenerateCorrelationID() {
		t.Error("two generated correlation ids are equal")
	}
}

func TestGenerateRequestID(t *testing.T) {
	id := GenerateRequestID()
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("GenerateRequestID() = %q, not a uuid: %v", id, err)
	}
}

func TestContextIDRoundTrip(t *testing.T) {
	ctx := context.Background()
	if got := CorrelationIDFromContext(ctx); got != "" {
		t.Errorf("CorrelationIDFromContext(empty) = %q, want \"\"", got)
	}
	if got := RequestIDFromContext(ctx); got != "" {
		t.Errorf("RequestIDFromContext(empty) = %q, want \"\"", got)
	}

	ctx = ContextWithCorrelationID(ctx, "corr-1234")
	ctx = ContextWithRequestID(ctx, "req-5678")

	if got := CorrelationIDFromContext(ctx); got != "corr-1234" {
		t.Errorf("CorrelationIDFromContext() = %q, want corr-1234", got)
	}
	if got := RequestIDFromContext(ctx); got != "req-5678" {
		t.Errorf("RequestIDFromContext() = %q, want req-5678", got)
	}
}

func TestCtx_StampsIDs(t *testing.T) {
	restoreGlobals(t)

	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	ctx := ContextWithCorrelationID(context.Background(), "corr-abcd")
	ctx = ContextWithRequestID(ctx, "req-efgh")

	Ctx(ctx).Info().Msg("stamped")

	out := buf.String()
	if !strings.Contains(out, `"correlation_id":"corr-abcd"`) {
		t.Errorf("output = %q, want correlation_id", out)
	}
	if !strings.Contains(out, `"request_id":"req-efgh"`) {
		t.Errorf("output = %q, want request_id", out)
	}
}

func TestCtx_NoIDsNoFields(t *testing.T) {
	restoreGlobals(t)

	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	Ctx(context.Background()).Info().Msg("bare")

	out := buf.String()
	if strings.Contains(out, "correlation_id") || strings.Contains(out, "request_id") {
		t.Errorf("output = %q, want no id fields", out)
	}
}

func TestLoggerFromContext_Fallback(t *testing.T) {
	restoreGlobals(t)

	var global bytes.Buffer
	SetLogger(NewTestLogger(&global))
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	l := LoggerFromContext(context.Background())
	l.Info().Msg("fallback")
	if !strings.Contains(global.String(), "fallback") {
		t.Errorf("fallback logger did not write to global output: %q", global.String())
	}
}

func TestContextWithLogger_TakesPrecedence(t *testing.T) {
	restoreGlobals(t)

	var global, scoped bytes.Buffer
	SetLogger(NewTestLogger(&global))
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	ctx := ContextWithLogger(context.Background(), NewTestLogger(&scoped))
	Ctx(ctx).Info().Msg("scoped event")

	if global.Len() != 0 {
		t.Errorf("global received scoped event: %q", global.String())
	}
	if !strings.Contains(scoped.String(), "scoped event") {
		t.Errorf("scoped output = %q, want event", scoped.String())
	}
}

func TestCtxWith_ExtraField(t *testing.T) {
	restoreGlobals(t)

	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	CtxWith(context.Background(), "stage", "reload").Info().Msg("field")
	if !strings.Contains(buf.String(), `"stage":"reload"`) {
		t.Errorf("output = %q, want stage field", buf.String())
	}
}

func TestWithComponentAndService(t *testing.T) {
	restoreGlobals(t)

	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	componentLogger := WithComponent("snapshot")
	componentLogger.Info().Msg("a")
	serviceLogger := WithService("api-server")
	serviceLogger.Info().Msg("b")

	out := buf.String()
	if !strings.Contains(out, `"component":"snapshot"`) {
		t.Errorf("output = %q, want component field", out)
	}
	if !strings.Contains(out, `"service":"api-server"`) {
		t.Errorf("output = %q, want service field", out)
	}
}
