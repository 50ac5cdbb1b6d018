// Completion: 100% - Parallel annotation records and providers complete
package annotations

import (
	"fmt"
	"strings"
)

// annotations.go - Declared-parallel loop annotations
//
// The host front end marks loop induction variables as
// parallel-across-iterations. Discovery of those marks is external to
// the compiler core: a Provider hands back, per procedure, the ordered
// records naming the bytecode range and local-variable slot of each
// marked variable. The provider implementation is chosen once at
// process start and injected into every compilation.

// Record is one parallel-loop annotation of a procedure: the marked
// local-variable slot and the bytecode range it is live across.
type Record struct {
	Start     uint32 `yaml:"start"`
	Length    uint32 `yaml:"length"`
	SlotIndex uint32 `yaml:"slot"`
}

// Contains reports whether the record's bytecode range [Start,
// Start+Length) contains the given offset.
func (r Record) Contains(bci int64) bool {
	return bci >= int64(r.Start) && bci < int64(r.Start)+int64(r.Length)
}

// Provider supplies the parallel annotations of a procedure. Must be
// deterministic and side-effect free; called once per procedure per
// compilation.
type Provider interface {
	ParallelAnnotations(procedure string) []Record
}

// noneProvider reports no annotations for any procedure.
type noneProvider struct{}

func (noneProvider) ParallelAnnotations(string) []Record { return nil }

// StaticProvider serves a fixed procedure->records table. Useful for
// tests and for fixtures that carry their annotations inline.
type StaticProvider map[string][]Record

// ParallelAnnotations returns the records for the given procedure.
func (p StaticProvider) ParallelAnnotations(procedure string) []Record {
	return p[procedure]
}

// Load resolves a provider from its configuration setting. Supported
// forms:
//
//	none                no annotations
//	fixture:<path>      YAML fixture file (see NewFixtureProvider)
//
// An unknown setting is a startup configuration error; the caller must
// treat it as fatal before any compilation proceeds.
func Load(setting string) (Provider, error) {
	name, arg, _ := strings.Cut(setting, ":")
	switch name {
	case "", "none":
		return noneProvider{}, nil
	case "fixture":
		if arg == "" {
			return nil, fmt.Errorf("annotation provider %q requires a file path", name)
		}
		return NewFixtureProvider(arg)
	default:
		return nil, fmt.Errorf("annotation provider implementation %q not found", name)
	}
}
