// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest reads and writes the YAML run summary placed next to
// the generated packets.
package manifest

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/gradepack/pkg/types"
)

// FileName is the manifest's name inside the outputs directory.
const FileName = "manifest.yaml"

// Write marshals the run record to path.
func Write(path string, rec types.RunRecord) error {
	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// Read loads a run record from path.
func Read(path string) (types.RunRecord, error) {
	var rec types.RunRecord
	data, err := os.ReadFile(path)
	if err != nil {
		return rec, fmt.Errorf("reading manifest: %w", err)
	}
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return rec, fmt.Errorf("parsing manifest: %w", err)
	}
	return rec, nil
}
