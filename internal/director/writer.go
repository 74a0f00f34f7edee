package director

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// WritePlan writes a plan to a YAML file, creating the directory if needed
func WritePlan(plan *Plan, path string) error {
	data, err := yaml.Marshal(plan)
	if err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// ReadPlan reads a plan from a YAML file
func ReadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("decode plan %s: %w", path, err)
	}

	return &plan, nil
}
