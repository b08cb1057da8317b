// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	json "github.com/goccy/go-json"

	"github.com/luxboard/luxboard/internal/analytics"
	"github.com/luxboard/luxboard/internal/logging"
	"github.com/luxboard/luxboard/internal/metrics"
	"github.com/luxboard/luxboard/internal/models"
)

// scanFunc is a function that scans a single row into a result type.
type scanFunc[T any] func(*sql.Rows) (T, error)

// queryAndScan executes a query and scans all rows using the provided
// scan function.
func queryAndScan[T any](ctx context.Context, db *sql.DB, query string, args []interface{}, scan scanFunc[T]) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// LoadSnapshot materializes every table into model slices and builds the
// immutable analytics snapshot over them. Linkage indices and the
// first-click table are derived once, inside analytics.NewSnapshot.
func (db *DB) LoadSnapshot(ctx context.Context) (*analytics.Snapshot, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()

	projects, err := db.loadProjects(ctx)
	if err != nil {
		return nil, err
	}
	scans, err := db.loadScans(ctx)
	if err != nil {
		return nil, err
	}
	clicks, err := db.loadClicks(ctx)
	if err != nil {
		return nil, err
	}
	objects, err := db.loadArObjects(ctx)
	if err != nil {
		return nil, err
	}
	systems, err := db.loadCoordinateSystems(ctx)
	if err != nil {
		return nil, err
	}
	configs, err := db.loadLightConfigs(ctx)
	if err != nil {
		return nil, err
	}
	lightProjects, err := db.loadLightProjects(ctx)
	if err != nil {
		return nil, err
	}

	snap := analytics.NewSnapshot(analytics.SnapshotInput{
		Projects:          projects,
		Scans:             scans,
		Clicks:            clicks,
		Objects:           objects,
		CoordinateSystems: systems,
		LightConfigs:      configs,
		LightToProjects:   lightProjects,
		Location:          db.loc,
	})

	logging.Debug().
		Int("projects", len(projects)).
		Int("scans", len(scans)).
		Int("clicks", len(clicks)).
		Int("objects", len(objects)).
		Dur("elapsed", time.Since(start)).
		Msg("Snapshot materialized from store")

	return snap, nil
}

// loadProjects reads campaign rows and attaches their ordered scene
// references and coordinate labels.
func (db *DB) loadProjects(ctx context.Context) ([]models.Project, error) {
	start := time.Now()
	projects, err := queryAndScan(ctx, db.conn,
		`SELECT id, name, start_date, end_date, latitude, longitude FROM projects ORDER BY id`, nil,
		func(rows *sql.Rows) (models.Project, error) {
			var p models.Project
			var startDate, endDate *time.Time
			if err := rows.Scan(&p.ID, &p.Name, &startDate, &endDate, &p.Latitude, &p.Longitude); err != nil {
				return p, err
			}
			p.StartDate = db.localDate(startDate)
			p.EndDate = db.localDate(endDate)
			return p, nil
		})
	metrics.RecordDBQuery("load", "projects", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	sceneRefs, err := db.loadChildValues(ctx, "project_scenes", "project_id", "scene_ref")
	if err != nil {
		return nil, err
	}
	coords, err := db.loadChildValues(ctx, "project_coordinates", "project_id", "coordinate_id")
	if err != nil {
		return nil, err
	}
	for i := range projects {
		key := fmt.Sprintf("%d", projects[i].ID)
		projects[i].SceneRefs = sceneRefs[key]
		projects[i].Coordinates = coords[key]
	}

	metrics.DBRowsLoaded.WithLabelValues("projects").Add(float64(len(projects)))
	return projects, nil
}

func (db *DB) loadScans(ctx context.Context) ([]models.Scan, error) {
	start := time.Now()
	scans, err := queryAndScan(ctx, db.conn,
		`SELECT light_id, coordinate_id, client_id, scanned_at FROM scans ORDER BY scanned_at`, nil,
		func(rows *sql.Rows) (models.Scan, error) {
			var s models.Scan
			if err := rows.Scan(&s.LightID, &s.CoordinateID, &s.ClientID, &s.Timestamp); err != nil {
				return s, err
			}
			s.Timestamp = s.Timestamp.In(db.loc)
			return s, nil
		})
	metrics.RecordDBQuery("load", "scans", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to load scans: %w", err)
	}
	metrics.DBRowsLoaded.WithLabelValues("scans").Add(float64(len(scans)))
	return scans, nil
}

func (db *DB) loadClicks(ctx context.Context) ([]models.Click, error) {
	start := time.Now()
	clicks, err := queryAndScan(ctx, db.conn,
		`SELECT object_id, user_code, clicked_at FROM clicks ORDER BY clicked_at`, nil,
		func(rows *sql.Rows) (models.Click, error) {
			var c models.Click
			if err := rows.Scan(&c.ObjectID, &c.UserCode, &c.Timestamp); err != nil {
				return c, err
			}
			c.Timestamp = c.Timestamp.In(db.loc)
			return c, nil
		})
	metrics.RecordDBQuery("load", "clicks", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to load clicks: %w", err)
	}
	metrics.DBRowsLoaded.WithLabelValues("clicks").Add(float64(len(clicks)))
	return clicks, nil
}

func (db *DB) loadArObjects(ctx context.Context) ([]models.ArObject, error) {
	start := time.Now()
	objects, err := queryAndScan(ctx, db.conn,
		`SELECT id, name, scene_id, scene_name FROM ar_objects ORDER BY id`, nil,
		func(rows *sql.Rows) (models.ArObject, error) {
			var o models.ArObject
			err := rows.Scan(&o.ID, &o.Name, &o.SceneID, &o.SceneName)
			return o, err
		})
	metrics.RecordDBQuery("load", "ar_objects", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to load ar_objects: %w", err)
	}
	metrics.DBRowsLoaded.WithLabelValues("ar_objects").Add(float64(len(objects)))
	return objects, nil
}

func (db *DB) loadCoordinateSystems(ctx context.Context) ([]models.CoordinateSystem, error) {
	start := time.Now()
	systems, err := queryAndScan(ctx, db.conn,
		`SELECT id, name, scene_id, scene_name FROM coordinate_systems ORDER BY id`, nil,
		func(rows *sql.Rows) (models.CoordinateSystem, error) {
			var cs models.CoordinateSystem
			err := rows.Scan(&cs.ID, &cs.Name, &cs.SceneID, &cs.SceneName)
			return cs, err
		})
	metrics.RecordDBQuery("load", "coordinate_systems", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to load coordinate_systems: %w", err)
	}
	metrics.DBRowsLoaded.WithLabelValues("coordinate_systems").Add(float64(len(systems)))
	return systems, nil
}

func (db *DB) loadLightConfigs(ctx context.Context) ([]models.LightConfig, error) {
	start := time.Now()
	configs, err := queryAndScan(ctx, db.conn,
		`SELECT light_id, coordinates FROM light_configs ORDER BY light_id`, nil,
		func(rows *sql.Rows) (models.LightConfig, error) {
			var lc models.LightConfig
			var coords string
			if err := rows.Scan(&lc.LightID, &coords); err != nil {
				return lc, err
			}
			if coords != "" {
				if err := json.Unmarshal([]byte(coords), &lc.Coordinates); err != nil {
					// A corrupt list degrades that light's coordinate
					// labels, nothing else.
					logging.Warn().Str("light_id", lc.LightID).Err(err).Msg("Undecodable coordinate list")
				}
			}
			return lc, nil
		})
	metrics.RecordDBQuery("load", "light_configs", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to load light_configs: %w", err)
	}

	sceneRefs, err := db.loadChildValues(ctx, "light_config_scenes", "light_id", "scene_ref")
	if err != nil {
		return nil, err
	}
	for i := range configs {
		configs[i].SceneRefs = sceneRefs[configs[i].LightID]
	}

	metrics.DBRowsLoaded.WithLabelValues("light_configs").Add(float64(len(configs)))
	return configs, nil
}

func (db *DB) loadLightProjects(ctx context.Context) (map[string][]int64, error) {
	start := time.Now()

	type pair struct {
		lightID   string
		projectID int64
	}
	pairs, err := queryAndScan(ctx, db.conn,
		`SELECT light_id, project_id FROM light_projects ORDER BY light_id, project_id`, nil,
		func(rows *sql.Rows) (pair, error) {
			var p pair
			err := rows.Scan(&p.lightID, &p.projectID)
			return p, err
		})
	metrics.RecordDBQuery("load", "light_projects", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to load light_projects: %w", err)
	}

	table := make(map[string][]int64)
	for _, p := range pairs {
		table[p.lightID] = append(table[p.lightID], p.projectID)
	}
	return table, nil
}

// loadChildValues reads an ordered child-value table into parent -> values.
// Parent keys are stringified so one helper serves both int64 and string
// keyed parents.
func (db *DB) loadChildValues(ctx context.Context, table, parentCol, valueCol string) (map[string][]string, error) {
	query := fmt.Sprintf("SELECT CAST(%s AS VARCHAR), %s FROM %s ORDER BY %s, position",
		parentCol, valueCol, table, parentCol)

	type childRow struct {
		parent string
		value  string
	}
	rows, err := queryAndScan(ctx, db.conn, query, nil,
		func(rows *sql.Rows) (childRow, error) {
			var r childRow
			err := rows.Scan(&r.parent, &r.value)
			return r, err
		})
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", table, err)
	}

	out := make(map[string][]string)
	for _, r := range rows {
		out[r.parent] = append(out[r.parent], r.value)
	}
	return out, nil
}

// localDate re-anchors a DATE column value to midnight in the store's
// calendar location.
func (db *DB) localDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	y, m, d := t.Date()
	local := time.Date(y, m, d, 0, 0, 0, 0, db.loc)
	return &local
}
