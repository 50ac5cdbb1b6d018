// Completion: 100% - Counted-loop graph builder complete
package graph

// builder.go - Structured construction of procedure graphs
//
// The builder assembles the canonical counted-loop shape the analyzer
// and rewriter expect:
//
//	header:
//	  phi = Phi(init, increment)
//	  if phi < bound goto body else exit
//	body:
//	  increment = phi + stride
//	  ... (nested loops end here) ...
//	  goto header
//
// BeginLoop leaves the insertion point inside the body so nested loops
// and body computations land in the right place; EndLoop closes the back
// edge from wherever the body chain finished.

// Builder incrementally constructs a procedure Graph.
type Builder struct {
	g   *Graph
	cur BlockID
}

// CountedLoop holds the handles of one loop built by BeginLoop.
type CountedLoop struct {
	Phi       NodeID
	Compare   NodeID
	Increment NodeID
	Header    BlockID
	Body      BlockID
	Exit      BlockID
}

// NewBuilder creates a builder with an entry block ready for insertion.
func NewBuilder(name string) *Builder {
	g := New(name)
	entry := g.NewBlock()
	return &Builder{g: g, cur: entry}
}

// Graph returns the graph under construction.
func (b *Builder) Graph() *Graph {
	return b.g
}

// Current returns the current insertion block.
func (b *Builder) Current() BlockID {
	return b.cur
}

// SetCurrent moves the insertion point to the given block.
func (b *Builder) SetCurrent(block BlockID) {
	b.cur = block
}

// IntConst creates an integer constant.
func (b *Builder) IntConst(v int64) NodeID {
	return b.g.IntConst(v)
}

// Param creates an integer procedure parameter.
func (b *Builder) Param(index int) NodeID {
	return b.g.Param(index, KindInt)
}

// BeginLoop opens a counted loop bounded by phi < bound and moves the
// insertion point into the loop body. The matching EndLoop call closes
// the back edge.
func (b *Builder) BeginLoop(init, stride, bound NodeID) CountedLoop {
	g := b.g
	header := g.NewBlock()
	body := g.NewBlock()
	exit := g.NewBlock()
	g.AddEdge(b.cur, header)
	g.AddEdge(header, body)
	g.AddEdge(header, exit)

	phi := g.NewNode(OpPhi, KindInt, header, init, InvalidNode)
	cmp := g.NewNode(OpIntegerLessThan, KindInt, header, phi, bound)
	inc := g.NewNode(OpAdd, KindInt, body, phi, stride)
	g.SetInput(phi, 1, inc)

	b.cur = body
	return CountedLoop{Phi: phi, Compare: cmp, Increment: inc, Header: header, Body: body, Exit: exit}
}

// EndLoop closes the loop's back edge from the current block and moves
// the insertion point to the loop exit.
func (b *Builder) EndLoop(l CountedLoop) {
	b.g.AddEdge(b.cur, l.Header)
	b.cur = l.Exit
}

// CaptureFrame records a frame-capture site for the given procedure at
// the given bytecode offset.
func (b *Builder) CaptureFrame(procedure string, bci int64, locals ...NodeID) NodeID {
	return b.g.FrameState(procedure, bci, locals...)
}
