// Completion: 100% - IR node representation complete
package graph

import "fmt"

// node.go - SSA value nodes
//
// Every value in a procedure's IR is a Node stored in the owning Graph's
// arena and identified by a dense NodeID. Nodes reference their inputs
// by NodeID; the graph maintains the reverse (def-use) index so that
// use-redirection during rewriting never has to walk the whole arena.

// NodeID identifies a node inside its owning graph. IDs are dense,
// assigned in creation order, and never reused.
type NodeID int

// InvalidNode is the zero-meaning NodeID (absent input, dead local slot).
const InvalidNode NodeID = -1

// Op is the operation a node performs.
type Op int

const (
	OpInvalid Op = iota
	OpConst
	OpParam
	OpPhi
	OpAdd
	OpSub
	OpMul
	OpIntegerLessThan
	OpFrameState
	OpParallelOffset
	OpParallelStride
	OpParallelRange
	OpFPIntrinsic
)

// String returns the string representation of an Op.
func (op Op) String() string {
	switch op {
	case OpConst:
		return "Const"
	case OpParam:
		return "Param"
	case OpPhi:
		return "Phi"
	case OpAdd:
		return "Add"
	case OpSub:
		return "Sub"
	case OpMul:
		return "Mul"
	case OpIntegerLessThan:
		return "IntegerLessThan"
	case OpFrameState:
		return "FrameState"
	case OpParallelOffset:
		return "ParallelOffset"
	case OpParallelStride:
		return "ParallelStride"
	case OpParallelRange:
		return "ParallelRange"
	case OpFPIntrinsic:
		return "FPIntrinsic"
	default:
		return "Invalid"
	}
}

// Kind is the numeric kind of a node's result.
type Kind int

const (
	KindVoid Kind = iota
	KindInt
	KindFloat32
	KindFloat64
)

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat32:
		return "f32"
	case KindFloat64:
		return "f64"
	default:
		return "void"
	}
}

// Node is a single SSA value.
//
// The aux fields are op-dependent:
//   - OpConst:          AuxInt (KindInt) or AuxFloat (KindFloat32/64)
//   - OpParam:          AuxInt = parameter index
//   - OpFrameState:     AuxInt = bytecode offset, Method = owning procedure,
//     inputs = live locals indexed by slot (InvalidNode for dead slots)
//   - OpParallelOffset/Stride/Range: AuxInt = dimension index
//   - OpFPIntrinsic:    AuxInt = intrinsic operation code
type Node struct {
	ID       NodeID
	Op       Op
	Kind     Kind
	Inputs   []NodeID
	Block    BlockID
	AuxInt   int64
	AuxFloat float64
	Method   string
}

// IsConstant reports whether the node is a compile-time constant.
func (n *Node) IsConstant() bool {
	return n.Op == OpConst
}

// IntValue returns the integer value of an OpConst node of KindInt.
func (n *Node) IntValue() int64 {
	return n.AuxInt
}

// Float64Value returns the value of an OpConst node of KindFloat64.
func (n *Node) Float64Value() float64 {
	return n.AuxFloat
}

// Float32Value returns the value of an OpConst node of KindFloat32.
func (n *Node) Float32Value() float32 {
	return float32(n.AuxFloat)
}

// BCI returns the bytecode offset of a frame-capture site.
func (n *Node) BCI() int64 {
	return n.AuxInt
}

// LocalAt returns the live value bound to the given local slot at a
// frame-capture site, or InvalidNode if the slot is dead or out of range.
func (n *Node) LocalAt(slot int) NodeID {
	if n.Op != OpFrameState || slot < 0 || slot >= len(n.Inputs) {
		return InvalidNode
	}
	return n.Inputs[slot]
}

func (n *Node) String() string {
	return fmt.Sprintf("v%d(%s)", n.ID, n.Op)
}
