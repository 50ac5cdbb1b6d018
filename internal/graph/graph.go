// Completion: 100% - Arena graph with def-use index complete
package graph

// graph.go - Procedure IR graphs
//
// A Graph owns one procedure's SSA nodes and its block-level control
// flow. Nodes live in a flat arena addressed by NodeID; cross-node
// references are plain IDs rather than pointers, and a def-use index is
// maintained next to the arena so "replace uses matching a predicate"
// is an index-guided rewrite instead of a whole-graph walk.

// BlockID identifies a basic block inside its owning graph.
type BlockID int

// InvalidBlock marks a node not placed in any block.
const InvalidBlock BlockID = -1

// Block is a basic block of the control-flow graph.
type Block struct {
	ID    BlockID
	Preds []BlockID
	Succs []BlockID
	Nodes []NodeID // nodes placed in this block, in placement order
}

// Graph is one procedure's IR: node arena, def-use index and CFG.
type Graph struct {
	name    string
	inlined []string
	nodes   []*Node
	users   [][]NodeID // users[def] = nodes that read def, in creation order
	blocks  []*Block
}

// New creates an empty graph for the named procedure.
func New(name string) *Graph {
	return &Graph{name: name}
}

// Name returns the identity of the root procedure.
func (g *Graph) Name() string {
	return g.name
}

// RecordInlined records a callee inlined into this graph.
func (g *Graph) RecordInlined(procedure string) {
	g.inlined = append(g.inlined, procedure)
}

// InlinedProcedures returns the identities of all inlined callees, in
// the order they were inlined.
func (g *Graph) InlinedProcedures() []string {
	return g.inlined
}

// NewBlock appends a basic block to the CFG.
func (g *Graph) NewBlock() BlockID {
	id := BlockID(len(g.blocks))
	g.blocks = append(g.blocks, &Block{ID: id})
	return id
}

// AddEdge adds a control-flow edge from one block to another.
func (g *Graph) AddEdge(from, to BlockID) {
	g.blocks[from].Succs = append(g.blocks[from].Succs, to)
	g.blocks[to].Preds = append(g.blocks[to].Preds, from)
}

// Block returns the block with the given ID.
func (g *Graph) Block(id BlockID) *Block {
	return g.blocks[id]
}

// NumBlocks returns the number of basic blocks.
func (g *Graph) NumBlocks() int {
	return len(g.blocks)
}

// NumNodes returns the number of nodes in the arena.
func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

// Node returns the node with the given ID.
func (g *Graph) Node(id NodeID) *Node {
	return g.nodes[id]
}

// add registers a node in the arena and wires its use edges.
func (g *Graph) add(n *Node) NodeID {
	n.ID = NodeID(len(g.nodes))
	g.nodes = append(g.nodes, n)
	g.users = append(g.users, nil)
	for _, in := range n.Inputs {
		if in != InvalidNode {
			g.users[in] = append(g.users[in], n.ID)
		}
	}
	if n.Block != InvalidBlock {
		b := g.blocks[n.Block]
		b.Nodes = append(b.Nodes, n.ID)
	}
	return n.ID
}

// NewNode creates a node with the given operation, result kind and
// inputs, placed in the given block (InvalidBlock for floating nodes
// such as constants).
func (g *Graph) NewNode(op Op, kind Kind, block BlockID, inputs ...NodeID) NodeID {
	return g.add(&Node{Op: op, Kind: kind, Block: block, Inputs: inputs})
}

// IntConst creates (or returns) an integer constant node.
func (g *Graph) IntConst(v int64) NodeID {
	id := g.add(&Node{Op: OpConst, Kind: KindInt, Block: InvalidBlock})
	g.nodes[id].AuxInt = v
	return id
}

// Float64Const creates a 64-bit floating point constant node.
func (g *Graph) Float64Const(v float64) NodeID {
	id := g.add(&Node{Op: OpConst, Kind: KindFloat64, Block: InvalidBlock})
	g.nodes[id].AuxFloat = v
	return id
}

// Float32Const creates a 32-bit floating point constant node.
func (g *Graph) Float32Const(v float32) NodeID {
	id := g.add(&Node{Op: OpConst, Kind: KindFloat32, Block: InvalidBlock})
	g.nodes[id].AuxFloat = float64(v)
	return id
}

// Param creates a procedure parameter node.
func (g *Graph) Param(index int, kind Kind) NodeID {
	id := g.add(&Node{Op: OpParam, Kind: kind, Block: InvalidBlock})
	g.nodes[id].AuxInt = int64(index)
	return id
}

// FrameState creates a frame-capture site for the given procedure at the
// given bytecode offset. locals is indexed by local-variable slot; use
// InvalidNode for slots with no live value.
func (g *Graph) FrameState(procedure string, bci int64, locals ...NodeID) NodeID {
	id := g.add(&Node{Op: OpFrameState, Kind: KindVoid, Block: InvalidBlock, Inputs: locals})
	g.nodes[id].AuxInt = bci
	g.nodes[id].Method = procedure
	return id
}

// Users returns the nodes reading the given node, in creation order.
// The returned slice is the live index; callers must not mutate it.
func (g *Graph) Users(id NodeID) []NodeID {
	return g.users[id]
}

// UsersWithOp returns the users of a node that have the given Op,
// preserving use order.
func (g *Graph) UsersWithOp(id NodeID, op Op) []NodeID {
	var out []NodeID
	for _, u := range g.users[id] {
		if g.nodes[u].Op == op {
			out = append(out, u)
		}
	}
	return out
}

// ReplaceUsesWhere redirects every input edge old->user to point at new
// instead, for each user accepted by the predicate. The def-use index is
// updated on both sides. FrameState inputs are left alone: frame-capture
// sites record the original locals, not rewritten values.
func (g *Graph) ReplaceUsesWhere(old, repl NodeID, pred func(user NodeID) bool) {
	remaining := g.users[old][:0]
	for _, u := range g.users[old] {
		n := g.nodes[u]
		if n.Op == OpFrameState || !pred(u) {
			remaining = append(remaining, u)
			continue
		}
		for i, in := range n.Inputs {
			if in == old {
				n.Inputs[i] = repl
			}
		}
		g.users[repl] = append(g.users[repl], u)
	}
	g.users[old] = remaining
}

// SetInput rewires one input edge of a node, keeping the def-use index
// consistent. Used by the builder to patch loop back edges after the
// increment node exists.
func (g *Graph) SetInput(id NodeID, index int, in NodeID) {
	n := g.nodes[id]
	old := n.Inputs[index]
	if old == in {
		return
	}
	if old != InvalidNode {
		uses := g.users[old]
		for i, u := range uses {
			if u == id {
				g.users[old] = append(uses[:i], uses[i+1:]...)
				break
			}
		}
	}
	n.Inputs[index] = in
	if in != InvalidNode {
		g.users[in] = append(g.users[in], id)
	}
}

// CopyWithInputs clones a node, keeping the same inputs, kind and aux
// data. The clone receives a fresh ID and its own use edges.
func (g *Graph) CopyWithInputs(id NodeID) NodeID {
	src := g.nodes[id]
	inputs := make([]NodeID, len(src.Inputs))
	copy(inputs, src.Inputs)
	clone := &Node{
		Op:       src.Op,
		Kind:     src.Kind,
		Block:    src.Block,
		Inputs:   inputs,
		AuxInt:   src.AuxInt,
		AuxFloat: src.AuxFloat,
		Method:   src.Method,
	}
	return g.add(clone)
}

// SingleBackValueOrThis returns the loop-back input of a two-input phi,
// or the phi itself when the shape is anything else.
func (g *Graph) SingleBackValueOrThis(phi NodeID) NodeID {
	n := g.nodes[phi]
	if n.Op == OpPhi && len(n.Inputs) == 2 {
		return n.Inputs[1]
	}
	return phi
}
