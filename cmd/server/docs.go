// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

// Package main provides the Luxboard HTTP server
//
// Luxboard API serves interaction analytics for AR light-beacon
// installations: scan and click ingest plus precomputed trend, funnel,
// session, and cohort queries.
//
// @title Luxboard API
// @version 1.0
// @description Interaction analytics platform for AR light-beacon installations
// @description
// @description ## Data Model
// @description
// @description Lights are physical beacons mounted in a venue. Each light belongs to a
// @description coordinate system, coordinate systems belong to scenes, and scenes are
// @description licensed to projects. Visitors scan lights to localize, then click AR
// @description objects placed in the scene.
// @description
// @description ## Query Windows
// @description
// @description Analytics endpoints share the window parameters: either `start`+`end`
// @description (calendar dates), or a trailing `days` / `months` count. Without any of
// @description them the window defaults to the trailing 30 days. All bucket boundaries
// @description use the server's configured timezone.
// @description
// @description ## Rate Limiting
// @description
// @description Default rate limit: 100 requests per minute per IP address, with separate
// @description buckets for analytics, ingest, and admin routes.
// @description
// @description ## Error Responses
// @description
// @description All error responses follow this format:
// @description ```json
// @description {
// @description   "status": "error",
// @description   "data": null,
// @description   "error": {
// @description     "code": "ERROR_CODE",
// @description     "message": "Human-readable error message",
// @description     "details": {}
// @description   },
// @description   "metadata": {
// @description     "timestamp": "2026-08-23T12:34:56Z"
// @description   }
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/luxboard/luxboard/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:5890
// @BasePath /api/v1
// @schemes http https
//
// @tag.name Core
// @tag.description Health checks, readiness probes, and service status
//
// @tag.name Analytics
// @tag.description Snapshot-backed analytics queries over scan and click history
//
// @tag.name Events
// @tag.description Live scan and click event submission into the ingest pipeline
//
// @tag.name Admin
// @tag.description Administrative operations (snapshot reload, performance statistics)
package main
