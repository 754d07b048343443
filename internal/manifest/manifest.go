// Package manifest tracks the scenario fixtures (F11) against a small
// YAML manifest, mirroring the teacher's example-manifest discipline: a
// fixture silently drifting out of sync with its recorded expectation is
// caught the same way an undocumented example would be.
package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Outcome is what a scenario is expected to do when run.
type Outcome string

const (
	OutcomeOK    Outcome = "ok"
	OutcomeError Outcome = "error"
)

// Scenario is one manifest entry: a named fixture file, spec.md §8's
// scenario it exercises, and its expected result.
type Scenario struct {
	Name      string  `yaml:"name"`
	File      string  `yaml:"file"`
	Outcome   Outcome `yaml:"outcome"`
	ErrorCode string  `yaml:"error_code,omitempty"`
}

// Manifest is the full scenario fixture list.
type Manifest struct {
	Schema    string     `yaml:"schema"`
	Scenarios []Scenario `yaml:"scenarios"`
}

// SchemaVersion is the manifest schema this package reads and writes.
const SchemaVersion = "kore.scenario/v1"

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("validate manifest: %w", err)
	}
	return &m, nil
}

// Validate checks the manifest is well formed: a recognized schema, no
// duplicate names, and an error_code present exactly when Outcome is
// OutcomeError.
func (m *Manifest) Validate() error {
	if m.Schema != SchemaVersion {
		return fmt.Errorf("unsupported schema: %s (expected %s)", m.Schema, SchemaVersion)
	}
	seen := make(map[string]bool)
	for _, s := range m.Scenarios {
		if seen[s.Name] {
			return fmt.Errorf("duplicate scenario name: %s", s.Name)
		}
		seen[s.Name] = true
		switch s.Outcome {
		case OutcomeOK:
			if s.ErrorCode != "" {
				return fmt.Errorf("scenario %s: error_code set on an ok outcome", s.Name)
			}
		case OutcomeError:
			if s.ErrorCode == "" {
				return fmt.Errorf("scenario %s: error outcome missing error_code", s.Name)
			}
		default:
			return fmt.Errorf("scenario %s: unknown outcome %q", s.Name, s.Outcome)
		}
	}
	return nil
}
