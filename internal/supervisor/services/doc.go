// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

// Package services adapts components with Start/Stop lifecycles to
// suture's blocking Serve contract.
//
// Two wrappers exist: HTTPServerService for the chi HTTP server and
// PipelineService for the ingest pipeline (JetStream consumer plus
// batch writer). Services whose natural shape is already a blocking
// loop (snapshot refresher, WAL retry, remote importer) implement
// suture.Service in their own packages and need no wrapper.
//
// Both wrappers accept narrow interfaces rather than the concrete
// types so their shutdown ordering can be tested with doubles.
package services
