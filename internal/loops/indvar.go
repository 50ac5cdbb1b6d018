// Completion: 100% - Basic induction-variable detection complete
package loops

import "github.com/jnorthrup/TornadoVM/internal/graph"

// indvar.go - Basic induction variables
//
// Look for loop-header phis that satisfy the recurrence
//
//	phi = Phi(init, nxt)
//	nxt = phi + stride
//
// Only the additive shape is recognized; anything else is not a basic
// induction variable and is left alone.

// InductionVariable is one basic induction variable of a loop.
type InductionVariable struct {
	Value  graph.NodeID // the loop-header phi
	Init   graph.NodeID // loop-entry value
	Stride graph.NodeID // per-iteration increment

	constInit   bool
	constStride bool
}

// IsConstantInit reports whether the initial value is a compile-time
// integer constant.
func (iv *InductionVariable) IsConstantInit() bool {
	return iv.constInit
}

// IsConstantStride reports whether the stride is a compile-time integer
// constant.
func (iv *InductionVariable) IsConstantStride() bool {
	return iv.constStride
}

// ConstantInit returns the constant initial value. Only meaningful when
// IsConstantInit is true.
func (iv *InductionVariable) ConstantInit(g *graph.Graph) int64 {
	return g.Node(iv.Init).IntValue()
}

// ConstantStride returns the constant stride. Only meaningful when
// IsConstantStride is true.
func (iv *InductionVariable) ConstantStride(g *graph.Graph) int64 {
	return g.Node(iv.Stride).IntValue()
}

// detectInductionVariables fills l.IVs from the phis in the loop header.
func detectInductionVariables(g *graph.Graph, l *Loop) {
	header := g.Block(l.Header)
	for _, id := range header.Nodes {
		n := g.Node(id)
		if n.Op != graph.OpPhi || len(n.Inputs) != 2 {
			continue
		}
		init, back := n.Inputs[0], n.Inputs[1]
		if back == graph.InvalidNode {
			continue
		}
		nxt := g.Node(back)
		if nxt.Op != graph.OpAdd {
			continue
		}
		var stride graph.NodeID
		switch {
		case nxt.Inputs[0] == id:
			stride = nxt.Inputs[1]
		case nxt.Inputs[1] == id:
			stride = nxt.Inputs[0]
		default:
			continue // not a self-recurrence
		}
		iv := &InductionVariable{
			Value:       id,
			Init:        init,
			Stride:      stride,
			constInit:   isIntConst(g, init),
			constStride: isIntConst(g, stride),
		}
		l.IVs = append(l.IVs, iv)
	}
}

func isIntConst(g *graph.Graph, id graph.NodeID) bool {
	if id == graph.InvalidNode {
		return false
	}
	n := g.Node(id)
	return n.Op == graph.OpConst && n.Kind == graph.KindInt
}
