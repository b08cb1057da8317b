// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

/*
Package analytics implements the aggregation engine over beacon interaction
logs: scan events (a device detecting a light beacon) and click events (a
user tapping an AR object).

The engine is purely functional. Every public computation takes an immutable
*Snapshot plus plain parameters (a DateRange, limits, a session gap) and
returns freshly allocated result rows; nothing is mutated and no state
persists between calls. Repeating a call with the same snapshot and
parameters returns an identical result, which is what makes caching by
(snapshot version, parameters) sound.

Components, leaves first:

  - Linkage: many-to-many lookup tables tying lights, coordinate systems,
    scenes, and AR objects to owning projects, parsed from free-text scene
    references at snapshot construction.
  - DateRange / bucket helpers: calendar-aligned day and month series,
    Monday-start weeks, dense (zero-seeded) bucket generation.
  - Session reconstruction: per (user, calendar day) gap-timeout
    segmentation plus insight mining (entries, exits, transitions, paths,
    durations).
  - Acquisition tracking: new vs. returning user classification against the
    user's global first-click day, at global, per-project, and per-scene
    granularity.
  - Funnel and attribution calculators: project funnels, click rankings,
    object marketing metrics, scene/light performance comparisons.

Error posture: the engine never fails for data-shape reasons. Malformed
linkage input is skipped, empty or inverted ranges yield empty results, and
zero denominators yield nil rates instead of NaN.
*/
package analytics
