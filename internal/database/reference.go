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

	"github.com/luxboard/luxboard/internal/logging"
	"github.com/luxboard/luxboard/internal/metrics"
	"github.com/luxboard/luxboard/internal/models"
)

// UpsertProjects writes campaign records and their scene-reference and
// coordinate lists. Existing rows with the same id are overwritten; rows
// for ids not in the batch are left alone, so entities referenced by old
// interactions never vanish just because an export omitted them.
func (db *DB) UpsertProjects(ctx context.Context, projects []models.Project) error {
	if len(projects) == 0 {
		return nil
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	err := db.inTx(ctx, func(tx *sql.Tx) error {
		args := make([]interface{}, 0, len(projects)*6)
		for _, p := range dedupeProjects(projects) {
			args = append(args, p.ID, p.Name, dateArg(p.StartDate), dateArg(p.EndDate), p.Latitude, p.Longitude)
		}
		query := `INSERT OR REPLACE INTO projects (id, name, start_date, end_date, latitude, longitude) VALUES ` +
			placeholderRows(len(args)/6, 6)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to upsert projects: %w", err)
		}

		for _, p := range projects {
			if err := replaceChildRows(ctx, tx, "project_scenes", "project_id", "scene_ref", p.ID, p.SceneRefs); err != nil {
				return err
			}
			if err := replaceChildRows(ctx, tx, "project_coordinates", "project_id", "coordinate_id", p.ID, p.Coordinates); err != nil {
				return err
			}
		}
		return nil
	})
	metrics.RecordDBQuery("upsert", "projects", time.Since(start), err)
	return err
}

// UpsertArObjects writes AR object placement records.
func (db *DB) UpsertArObjects(ctx context.Context, objects []models.ArObject) error {
	if len(objects) == 0 {
		return nil
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	seen := make(map[int64]struct{}, len(objects))
	args := make([]interface{}, 0, len(objects)*4)
	rows := 0
	for i := len(objects) - 1; i >= 0; i-- {
		o := objects[i]
		if _, dup := seen[o.ID]; dup {
			continue
		}
		seen[o.ID] = struct{}{}
		args = append(args, o.ID, o.Name, o.SceneID, o.SceneName)
		rows++
	}

	query := `INSERT OR REPLACE INTO ar_objects (id, name, scene_id, scene_name) VALUES ` +
		placeholderRows(rows, 4)

	start := time.Now()
	_, err := db.conn.ExecContext(ctx, query, args...)
	metrics.RecordDBQuery("upsert", "ar_objects", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to upsert ar_objects: %w", err)
	}
	return nil
}

// UpsertCoordinateSystems writes coordinate system records.
func (db *DB) UpsertCoordinateSystems(ctx context.Context, systems []models.CoordinateSystem) error {
	if len(systems) == 0 {
		return nil
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	seen := make(map[string]struct{}, len(systems))
	args := make([]interface{}, 0, len(systems)*4)
	rows := 0
	for i := len(systems) - 1; i >= 0; i-- {
		cs := systems[i]
		if _, dup := seen[cs.ID]; dup {
			continue
		}
		seen[cs.ID] = struct{}{}
		args = append(args, cs.ID, cs.Name, cs.SceneID, cs.SceneName)
		rows++
	}

	query := `INSERT OR REPLACE INTO coordinate_systems (id, name, scene_id, scene_name) VALUES ` +
		placeholderRows(rows, 4)

	start := time.Now()
	_, err := db.conn.ExecContext(ctx, query, args...)
	metrics.RecordDBQuery("upsert", "coordinate_systems", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to upsert coordinate_systems: %w", err)
	}
	return nil
}

// UpsertLightConfigs writes vendor-side beacon configuration records.
// Coordinate labels are stored as a JSON array; scene references go to
// the light_config_scenes join table.
func (db *DB) UpsertLightConfigs(ctx context.Context, configs []models.LightConfig) error {
	if len(configs) == 0 {
		return nil
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	err := db.inTx(ctx, func(tx *sql.Tx) error {
		seen := make(map[string]struct{}, len(configs))
		args := make([]interface{}, 0, len(configs)*2)
		rows := 0
		for i := len(configs) - 1; i >= 0; i-- {
			lc := configs[i]
			if _, dup := seen[lc.LightID]; dup {
				continue
			}
			seen[lc.LightID] = struct{}{}

			coords, err := json.Marshal(orEmpty(lc.Coordinates))
			if err != nil {
				return fmt.Errorf("failed to encode coordinates for light %s: %w", lc.LightID, err)
			}
			args = append(args, lc.LightID, string(coords))
			rows++
		}

		query := `INSERT OR REPLACE INTO light_configs (light_id, coordinates) VALUES ` +
			placeholderRows(rows, 2)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to upsert light_configs: %w", err)
		}

		for _, lc := range configs {
			if err := replaceChildRows(ctx, tx, "light_config_scenes", "light_id", "scene_ref", lc.LightID, lc.SceneRefs); err != nil {
				return err
			}
		}
		return nil
	})
	metrics.RecordDBQuery("upsert", "light_configs", time.Since(start), err)
	return err
}

// ReplaceLightProjects replaces the whole light -> owning projects table.
// Unlike the entity upserts this is a full swap: the mapping is
// maintained as one authoritative document and partial updates would
// leave stale ownership rows behind.
func (db *DB) ReplaceLightProjects(ctx context.Context, table map[string][]int64) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	err := db.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM light_projects`); err != nil {
			return fmt.Errorf("failed to clear light_projects: %w", err)
		}

		rows := 0
		args := make([]interface{}, 0, len(table)*2)
		for lightID, projectIDs := range table {
			seen := make(map[int64]struct{}, len(projectIDs))
			for _, pid := range projectIDs {
				if _, dup := seen[pid]; dup {
					continue
				}
				seen[pid] = struct{}{}
				args = append(args, lightID, pid)
				rows++
			}
		}
		if rows == 0 {
			return nil
		}

		query := `INSERT INTO light_projects (light_id, project_id) VALUES ` + placeholderRows(rows, 2)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert light_projects: %w", err)
		}
		return nil
	})
	metrics.RecordDBQuery("replace", "light_projects", time.Since(start), err)
	return err
}

// inTx runs fn inside a transaction, committing on success and rolling
// back on error.
func (db *DB) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logging.Error().Err(rbErr).AnErr("original_error", err).Msg("Transaction rollback failed")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// replaceChildRows swaps the ordered child rows of one parent: delete
// what is there, insert the new list with positions.
func replaceChildRows(ctx context.Context, tx *sql.Tx, table, parentCol, valueCol string, parentID interface{}, values []string) error {
	delQuery := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", table, parentCol)
	if _, err := tx.ExecContext(ctx, delQuery, parentID); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}
	if len(values) == 0 {
		return nil
	}

	args := make([]interface{}, 0, len(values)*3)
	for i, v := range values {
		args = append(args, parentID, i, v)
	}
	insQuery := fmt.Sprintf("INSERT INTO %s (%s, position, %s) VALUES %s",
		table, parentCol, valueCol, placeholderRows(len(values), 3))
	if _, err := tx.ExecContext(ctx, insQuery, args...); err != nil {
		return fmt.Errorf("failed to insert %s: %w", table, err)
	}
	return nil
}

// dedupeProjects keeps the last occurrence of each project id so a
// multi-row INSERT OR REPLACE never carries conflicting keys.
func dedupeProjects(projects []models.Project) []models.Project {
	seen := make(map[int64]struct{}, len(projects))
	out := make([]models.Project, 0, len(projects))
	for i := len(projects) - 1; i >= 0; i-- {
		p := projects[i]
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}

// dateArg converts an optional day-granularity date to a driver value.
func dateArg(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format("2006-01-02")
}

// orEmpty substitutes an empty slice for nil so JSON encoding yields []
// rather than null.
func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
