// Completion: 100% - Phase error model complete
package phases

import (
	"fmt"
	"strings"
)

// errors.go - Failure kinds of the retargeting phases
//
// A Bailout is recoverable and procedure-scoped: the procedure falls
// back to unmodified sequential compilation. Everything else raised in
// the phases is fatal for the compilation unit and propagates as a
// plain error.

// ErrorLevel indicates the severity of a diagnostic
type ErrorLevel int

const (
	LevelWarning ErrorLevel = iota
	LevelError
	LevelFatal
)

func (l ErrorLevel) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal error"
	default:
		return "unknown"
	}
}

// Bailout is the recoverable per-procedure failure of the parallel-loop
// rewriter. The graph may hold partial rewrites from loops processed
// earlier in the same pass; the caller discards it and recompiles the
// procedure sequentially.
type Bailout struct {
	Procedure string
	LoopIndex int // dimension counter value when the rewrite failed
	Reason    string
}

// Error implements the error interface
func (b *Bailout) Error() string {
	return fmt.Sprintf("failed to parallelize %s: %s", b.Procedure, b.Reason)
}

// Format returns the user-facing diagnostic, matching the message the
// runtime prints before falling back to the device-sequential path.
func (b *Bailout) Format() string {
	var sb strings.Builder
	sb.WriteString("Failed to parallelize because of ")
	sb.WriteString(b.Reason)
	sb.WriteString(". \nSequential code will run on the device!")
	return sb.String()
}
