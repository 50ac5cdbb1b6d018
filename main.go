// Completion: 100% - Compiler driver entry point
package main

import (
	"fmt"
	"os"

	"github.com/jnorthrup/TornadoVM/internal/annotations"
	"github.com/jnorthrup/TornadoVM/internal/cli"
	"github.com/jnorthrup/TornadoVM/internal/config"
)

// main.go - tornadoc driver
//
// The annotation-discovery implementation is resolved exactly once,
// before any compilation; a setting that names an implementation that
// cannot be loaded aborts the process here rather than surfacing later
// inside a compilation.

func main() {
	settings := config.FromEnv()
	if _, err := annotations.Load(settings.AnnotationProvider); err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
		os.Exit(1)
	}
	os.Exit(cli.Execute())
}
