// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package importer

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/luxboard/luxboard/internal/models"
)

// Metadata is the optional reference document accompanying the CSV
// exports. Absent collections leave the corresponding tables untouched.
type Metadata struct {
	Projects          []models.Project          `json:"projects"`
	ArObjects         []models.ArObject         `json:"ar_objects"`
	CoordinateSystems []models.CoordinateSystem `json:"coordinate_systems"`
	LightConfigs      []models.LightConfig      `json:"light_configs"`

	// LightProjects maps a light id to the project ids it belongs to.
	// When present it replaces the ownership table wholesale.
	LightProjects map[string][]int64 `json:"light_projects"`
}

// Empty reports whether the document carries nothing to apply.
func (m *Metadata) Empty() bool {
	return len(m.Projects) == 0 &&
		len(m.ArObjects) == 0 &&
		len(m.CoordinateSystems) == 0 &&
		len(m.LightConfigs) == 0 &&
		m.LightProjects == nil
}

// ReadMetadata decodes a metadata document.
func ReadMetadata(r io.Reader) (*Metadata, error) {
	var md Metadata
	if err := json.NewDecoder(r).Decode(&md); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	return &md, nil
}

// LoadMetadata reads the metadata file at path. A missing file returns
// nil without error: the exports ship without one on most installs.
func LoadMetadata(path string) (*Metadata, error) {
	if path == "" {
		return nil, nil
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open metadata: %w", err)
	}
	defer f.Close()

	md, err := ReadMetadata(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return md, nil
}
