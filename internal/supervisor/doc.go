// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

// Package supervisor provides process supervision using suture v4.
//
// Long-running services are arranged in a three-layer tree for failure
// isolation:
//
//	root ("luxboard")
//	├── data-layer
//	│   ├── snapshot refresher
//	│   └── WAL retry loop          (when wal.enabled)
//	├── messaging-layer
//	│   ├── ingest pipeline         (when ingest.enabled)
//	│   └── remote importer         (when import.remote.enabled)
//	└── api-layer
//	    └── HTTP server
//
// A crash in one layer restarts only that layer's service: the API keeps
// answering from the last loaded snapshot while the ingest pipeline is
// brought back up. Supervisor events are logged through a sutureslog
// handler bridged to the service logger.
//
// Services implement suture.Service directly where their lifecycle is a
// blocking loop (snapshot.RefreshService, wal.RetryService,
// importer.RemoteService); components with a Start/Stop lifecycle are
// adapted by the wrappers in the services subpackage.
package supervisor
