// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

// Package testinfra provides container-backed infrastructure for
// integration tests.
//
// The package uses testcontainers-go to run a real NATS server with
// JetStream enabled, so the publish and consume paths are verified
// against the same broker behavior the embedded server provides in
// production: durable consumers, redelivery, and Nats-Msg-Id
// deduplication.
//
// # NATS Container
//
//	func TestPipeline(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//
//	    ctx := context.Background()
//	    server, err := testinfra.NewNATSContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer server.Terminate(ctx)
//
//	    nc, js, err := eventprocessor.ConnectJetStream(server.URL)
//	    // ...
//	}
//
// # CI Considerations
//
// These tests require Docker and build only with the integration tag:
//
//	go test -tags integration ./internal/testinfra/...
//
// They skip gracefully when no Docker daemon is reachable. The first
// run may download the server image; subsequent runs use the cached
// image.
package testinfra
