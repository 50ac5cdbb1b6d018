// Completion: 100% - FP binary intrinsic nodes with constant folding
package intrinsics

import (
	"fmt"
	"math"
	"strings"

	"github.com/jnorthrup/TornadoVM/internal/graph"
)

// fpbinary.go - Binary floating-point builtin operations as IR nodes
//
// A call to a recognized two-argument math builtin becomes an
// OpFPIntrinsic node carrying one of the operations below. Construction
// folds the node away when both operands are constants and the
// operation has a folding rule for the operand kind; canonicalization
// re-attempts the same fold after operand substitution. Live nodes are
// lowered to exactly one device builtin call per backend.

// Operation is a binary floating-point builtin.
type Operation int

const (
	ATAN2 Operation = iota
	ATAN2PI
	COPYSIGN
	FDIM
	FMA
	FMAX
	FMIN
	FMOD
	FRACT
	FREXP
	HYPOT
	LDEXP
	MAD
	MAXMAG
	MINMAG
	MODF
	NEXTAFTER
	POW
	POWN
	POWR
	REMAINDER
	REMQUO
	ROOTN
	SINCOS
	numOperations
)

var operationNames = [...]string{
	ATAN2:     "ATAN2",
	ATAN2PI:   "ATAN2PI",
	COPYSIGN:  "COPYSIGN",
	FDIM:      "FDIM",
	FMA:       "FMA",
	FMAX:      "FMAX",
	FMIN:      "FMIN",
	FMOD:      "FMOD",
	FRACT:     "FRACT",
	FREXP:     "FREXP",
	HYPOT:     "HYPOT",
	LDEXP:     "LDEXP",
	MAD:       "MAD",
	MAXMAG:    "MAXMAG",
	MINMAG:    "MINMAG",
	MODF:      "MODF",
	NEXTAFTER: "NEXTAFTER",
	POW:       "POW",
	POWN:      "POWN",
	POWR:      "POWR",
	REMAINDER: "REMAINDER",
	REMQUO:    "REMQUO",
	ROOTN:     "ROOTN",
	SINCOS:    "SINCOS",
}

// String returns the operation name.
func (op Operation) String() string {
	if op < 0 || op >= numOperations {
		return "UNKNOWN"
	}
	return operationNames[op]
}

// ParseOperation parses an operation name, case-insensitively.
func ParseOperation(s string) (Operation, error) {
	want := strings.ToUpper(s)
	for op, name := range operationNames {
		if name == want {
			return Operation(op), nil
		}
	}
	return 0, fmt.Errorf("unknown intrinsic operation: %s", s)
}

// Operations returns every operation in declaration order.
func Operations() []Operation {
	ops := make([]Operation, numOperations)
	for i := range ops {
		ops[i] = Operation(i)
	}
	return ops
}

// Create builds an intrinsic node for op over x and y at the given
// numeric kind, or returns a folded constant when both operands are
// constants and the operation has a folding rule for that kind. kind
// must be KindFloat32 or KindFloat64.
func Create(g *graph.Graph, x, y graph.NodeID, op Operation, kind graph.Kind) (graph.NodeID, error) {
	if kind != graph.KindFloat32 && kind != graph.KindFloat64 {
		return graph.InvalidNode, fmt.Errorf("intrinsic %s: unsupported result kind %s", op, kind)
	}
	if c, ok := tryConstantFold(g, x, y, op, kind); ok {
		return c, nil
	}
	id := g.NewNode(graph.OpFPIntrinsic, kind, graph.InvalidBlock, x, y)
	g.Node(id).AuxInt = int64(op)
	return id, nil
}

// NodeOperation returns the operation of a live intrinsic node.
func NodeOperation(g *graph.Graph, id graph.NodeID) Operation {
	return Operation(g.Node(id).AuxInt)
}

// IsIntrinsic reports whether the node is a live intrinsic.
func IsIntrinsic(g *graph.Graph, id graph.NodeID) bool {
	return g.Node(id).Op == graph.OpFPIntrinsic
}

// Canonicalize re-attempts the constant fold of a live intrinsic node,
// typically after constant propagation substituted its operands. On
// success every use of the node is redirected to the folded constant
// and the constant's ID is returned; otherwise the node's own ID is
// returned unchanged.
func Canonicalize(g *graph.Graph, id graph.NodeID) graph.NodeID {
	n := g.Node(id)
	if n.Op != graph.OpFPIntrinsic {
		return id
	}
	c, ok := tryConstantFold(g, n.Inputs[0], n.Inputs[1], Operation(n.AuxInt), n.Kind)
	if !ok {
		return id
	}
	g.ReplaceUsesWhere(id, c, func(graph.NodeID) bool { return true })
	return c
}

// tryConstantFold computes the operation at the stated precision when
// both operands are constants of it. Operations outside the fold tables
// never fold and always stay live.
func tryConstantFold(g *graph.Graph, x, y graph.NodeID, op Operation, kind graph.Kind) (graph.NodeID, bool) {
	if x == graph.InvalidNode || y == graph.InvalidNode {
		return graph.InvalidNode, false
	}
	nx, ny := g.Node(x), g.Node(y)
	if !nx.IsConstant() || !ny.IsConstant() {
		return graph.InvalidNode, false
	}
	switch kind {
	case graph.KindFloat64:
		v, ok := compute64(nx.Float64Value(), ny.Float64Value(), op)
		if !ok {
			return graph.InvalidNode, false
		}
		return g.Float64Const(v), true
	case graph.KindFloat32:
		v, ok := compute32(nx.Float32Value(), ny.Float32Value(), op)
		if !ok {
			return graph.InvalidNode, false
		}
		return g.Float32Const(v), true
	}
	return graph.InvalidNode, false
}

// compute64 is the float64 folding table.
func compute64(x, y float64, op Operation) (float64, bool) {
	switch op {
	case ATAN2:
		return math.Atan2(x, y), true
	case FMIN:
		return math.Min(x, y), true
	case FMAX:
		return math.Max(x, y), true
	case POW:
		return math.Pow(x, y), true
	default:
		return 0, false
	}
}

// compute32 is the float32 folding table. POW has no float32 rule.
func compute32(x, y float32, op Operation) (float32, bool) {
	switch op {
	case ATAN2:
		return float32(math.Atan2(float64(x), float64(y))), true
	case FMIN:
		return float32(math.Min(float64(x), float64(y))), true
	case FMAX:
		return float32(math.Max(float64(x), float64(y))), true
	default:
		return 0, false
	}
}
