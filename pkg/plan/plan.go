// Package plan loads floor-plan project files.
package plan

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads a floor plan from a YAML file.
func Load(path string) (*FloorPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan file: %w", err)
	}

	var p FloorPlan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing plan YAML: %w", err)
	}

	return &p, nil
}

// LoadProject loads a floor plan from a project directory.
// It looks for plan.yaml in the given directory.
func LoadProject(projectDir string) (*FloorPlan, error) {
	planPath := filepath.Join(projectDir, "plan.yaml")
	return Load(planPath)
}
