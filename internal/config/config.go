// Completion: 100% - Process configuration complete
package config

import (
	"fmt"
	"os"

	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v3"
)

// config.go - Process-wide compiler settings
//
// Settings are read once at startup from the environment and optionally
// overridden by a YAML file; after that they are treated as immutable
// by every compilation. The annotation provider named here is resolved
// exactly once, and failure to resolve it is fatal before any
// compilation proceeds.

// Settings holds the process-wide configuration.
type Settings struct {
	// ReverseLoops flips the outer-first loop processing order.
	ReverseLoops bool `yaml:"reverse_loops"`
	// Debug enables verbose diagnostics.
	Debug bool `yaml:"debug"`
	// AnnotationProvider names the annotation-discovery implementation,
	// e.g. "none" or "fixture:annotations.yaml".
	AnnotationProvider string `yaml:"annotation_provider"`
	// Target is the device target builtin lowering is checked against.
	Target string `yaml:"target"`
}

// FromEnv reads the settings from the environment.
func FromEnv() Settings {
	return Settings{
		ReverseLoops:       env.Bool("TORNADO_LOOPS_REVERSE"),
		Debug:              env.Bool("TORNADO_DEBUG"),
		AnnotationProvider: env.Str("TORNADO_ANNOTATION_PROVIDER", "none"),
		Target:             env.Str("TORNADO_TARGET", "opencl"),
	}
}

// ApplyFile overlays settings from a YAML file. Fields absent from the
// file keep their current values.
func (s *Settings) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config file: %w", err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}
	return nil
}
