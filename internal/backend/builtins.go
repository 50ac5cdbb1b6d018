// Completion: 100% - Per-target builtin lowering tables complete
package backend

import (
	"fmt"
	"sort"

	"github.com/jnorthrup/TornadoVM/internal/graph"
	"github.com/jnorthrup/TornadoVM/internal/intrinsics"
)

// builtins.go - Intrinsic-to-builtin lowering
//
// During code generation a live intrinsic node is translated into
// exactly one device builtin call. Each target carries a table mapping
// operations to builtin names; a missing entry is a capability gap of
// that backend and surfaces as an UnsupportedOperationError, fatal for
// the compilation unit.

// Call is one lowered builtin invocation.
type Call struct {
	Builtin string
	X, Y    graph.NodeID
	Kind    graph.Kind
}

// String renders the call for dumps and diagnostics.
func (c Call) String() string {
	return fmt.Sprintf("%s(v%d, v%d) %s", c.Builtin, c.X, c.Y, c.Kind)
}

// UnsupportedOperationError reports an intrinsic with no builtin on the
// selected target. Fatal for the current compilation unit.
type UnsupportedOperationError struct {
	Op     intrinsics.Operation
	Target Target
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("math operation %s not supported yet on target %s", e.Op, e.Target)
}

// Table maps intrinsic operations to one target's builtin names.
type Table struct {
	target   Target
	builtins map[intrinsics.Operation]string
}

// Target returns the device target the table lowers for.
func (t *Table) Target() Target {
	return t.target
}

// Supports reports whether the target has a builtin for the operation.
func (t *Table) Supports(op intrinsics.Operation) bool {
	_, ok := t.builtins[op]
	return ok
}

// Builtin returns the builtin name for an operation, if any.
func (t *Table) Builtin(op intrinsics.Operation) (string, bool) {
	name, ok := t.builtins[op]
	return name, ok
}

// Lower translates a live intrinsic node into its builtin call.
func (t *Table) Lower(g *graph.Graph, id graph.NodeID) (Call, error) {
	n := g.Node(id)
	if n.Op != graph.OpFPIntrinsic {
		return Call{}, fmt.Errorf("node v%d is not an intrinsic", id)
	}
	op := intrinsics.NodeOperation(g, id)
	name, ok := t.builtins[op]
	if !ok {
		return Call{}, &UnsupportedOperationError{Op: op, Target: t.target}
	}
	return Call{Builtin: name, X: n.Inputs[0], Y: n.Inputs[1], Kind: n.Kind}, nil
}

// Coverage returns the supported operations in name order.
func (t *Table) Coverage() []intrinsics.Operation {
	ops := make([]intrinsics.Operation, 0, len(t.builtins))
	for op := range t.builtins {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i].String() < ops[j].String() })
	return ops
}

// TableFor returns the builtin table of a device target.
func TableFor(t Target) (*Table, error) {
	switch t {
	case TargetOpenCL:
		return &Table{target: t, builtins: openclBuiltins}, nil
	case TargetPTX:
		return &Table{target: t, builtins: ptxBuiltins}, nil
	case TargetSPIRV:
		return &Table{target: t, builtins: spirvBuiltins}, nil
	default:
		return nil, fmt.Errorf("no builtin table for target %s", t)
	}
}

// OpenCL C math library: broad coverage.
var openclBuiltins = map[intrinsics.Operation]string{
	intrinsics.ATAN2:     "atan2",
	intrinsics.ATAN2PI:   "atan2pi",
	intrinsics.COPYSIGN:  "copysign",
	intrinsics.FDIM:      "fdim",
	intrinsics.FMAX:      "fmax",
	intrinsics.FMIN:      "fmin",
	intrinsics.FMOD:      "fmod",
	intrinsics.HYPOT:     "hypot",
	intrinsics.LDEXP:     "ldexp",
	intrinsics.MAXMAG:    "maxmag",
	intrinsics.MINMAG:    "minmag",
	intrinsics.NEXTAFTER: "nextafter",
	intrinsics.POW:       "pow",
	intrinsics.POWN:      "pown",
	intrinsics.POWR:      "powr",
	intrinsics.REMAINDER: "remainder",
	intrinsics.ROOTN:     "rootn",
}

// PTX device intrinsics: the common subset only.
var ptxBuiltins = map[intrinsics.Operation]string{
	intrinsics.ATAN2:     "atan2",
	intrinsics.COPYSIGN:  "copysign",
	intrinsics.FMAX:      "max",
	intrinsics.FMIN:      "min",
	intrinsics.FMOD:      "fmod",
	intrinsics.POW:       "pow",
	intrinsics.REMAINDER: "remainder",
}

// SPIR-V OpenCL extended instruction set.
var spirvBuiltins = map[intrinsics.Operation]string{
	intrinsics.ATAN2: "atan2",
	intrinsics.FMAX:  "fmax",
	intrinsics.FMIN:  "fmin",
	intrinsics.FMOD:  "fmod",
	intrinsics.HYPOT: "hypot",
	intrinsics.POW:   "pow",
}
