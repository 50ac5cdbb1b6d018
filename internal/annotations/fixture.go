// Completion: 100% - YAML fixture provider complete
package annotations

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FixtureProvider serves annotations from a YAML file of the form:
//
//	procedures:
//	  compute:
//	    - {start: 8, length: 12, slot: 3}
//	  render:
//	    - {start: 4, length: 20, slot: 2}
//	    - {start: 30, length: 16, slot: 4}
//
// Record order within a procedure follows file order.
type FixtureProvider struct {
	table map[string][]Record
}

type fixtureFile struct {
	Procedures map[string][]Record `yaml:"procedures"`
}

// NewFixtureProvider loads a fixture file. A missing or malformed file
// is a startup configuration error.
func NewFixtureProvider(path string) (*FixtureProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("annotation fixture: %w", err)
	}
	var f fixtureFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("annotation fixture %s: %w", path, err)
	}
	return &FixtureProvider{table: f.Procedures}, nil
}

// ParallelAnnotations returns the records for the given procedure, in
// file order.
func (p *FixtureProvider) ParallelAnnotations(procedure string) []Record {
	return p.table[procedure]
}
