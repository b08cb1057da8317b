// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

// Package eventprocessor implements the live beacon event pipeline.
//
// Events enter over HTTP as scans (a device detected a light beacon) or
// clicks (a user tapped an AR object), are persisted to the write-ahead
// log, published to an embedded NATS JetStream stream on subject
// interaction.<kind>, and consumed back into the DuckDB store in
// batches. The snapshot is marked stale after every flush so the
// analytics engine picks the new events up on the next refresh.
//
// Pipeline stages:
//
//	BeaconEvent      canonical event, validated on receipt
//	DurablePublisher WAL write -> publish -> WAL confirm
//	Publisher        watermill-nats JetStream publisher with Nats-Msg-Id
//	                 deduplication behind a circuit breaker
//	Subscriber       durable queue-group JetStream subscriber
//	Consumer         dedupe + batch buffer feeding the store
//
// The embedded NATS server makes the pipeline self-contained; no
// external broker is required for single-instance deployments.
package eventprocessor
