// Completion: 100% - Natural-loop discovery complete
package loops

import (
	"sort"

	"github.com/jnorthrup/TornadoVM/internal/graph"
)

// loops.go - Natural loops over a procedure CFG
//
// A natural loop is the maximal single-entry block set of one back edge:
// an edge tail->header where the header dominates the tail. Loops with
// the same header are merged. Discovery runs once per rewrite pass.

// Loop is one natural loop of a procedure graph.
type Loop struct {
	Header  graph.BlockID
	Blocks  []graph.BlockID // loop body including the header, sorted
	Depth   int             // nesting depth, outermost = 1
	IVs     []*InductionVariable
	counted bool
}

// IsCounted reports whether the loop has a statically recognizable trip
// structure: at least one basic induction variable bounded by an
// integer strictly-less-than comparison.
func (l *Loop) IsCounted() bool {
	return l.counted
}

// contains reports whether the loop body includes the given block.
func (l *Loop) contains(b graph.BlockID) bool {
	for _, x := range l.Blocks {
		if x == b {
			return true
		}
	}
	return false
}

// Analysis holds the loop facts of one procedure graph.
type Analysis struct {
	g     *graph.Graph
	loops []*Loop
}

// Analyze discovers the natural loops of a graph and their basic
// induction variables.
func Analyze(g *graph.Graph) *Analysis {
	a := &Analysis{g: g}
	if g.NumBlocks() == 0 {
		return a
	}
	dom := buildDomTree(g)

	byHeader := make(map[graph.BlockID]*Loop)
	var headers []graph.BlockID
	for b := 0; b < g.NumBlocks(); b++ {
		tail := graph.BlockID(b)
		if dom.rpoN[tail] < 0 {
			continue // unreachable
		}
		for _, h := range g.Block(tail).Succs {
			if !dom.dominates(h, tail) {
				continue
			}
			l, ok := byHeader[h]
			if !ok {
				l = &Loop{Header: h}
				byHeader[h] = l
				headers = append(headers, h)
			}
			collectBody(g, l, tail)
		}
	}

	for _, h := range headers {
		l := byHeader[h]
		sort.Slice(l.Blocks, func(i, j int) bool { return l.Blocks[i] < l.Blocks[j] })
		a.loops = append(a.loops, l)
	}

	// Nesting depth: a loop is inside every other loop whose body
	// contains its header.
	for _, l := range a.loops {
		l.Depth = 1
		for _, outer := range a.loops {
			if outer != l && outer.contains(l.Header) {
				l.Depth++
			}
		}
	}

	// Outer-first, then graph-declared (header ID) order.
	sort.SliceStable(a.loops, func(i, j int) bool {
		if a.loops[i].Depth != a.loops[j].Depth {
			return a.loops[i].Depth < a.loops[j].Depth
		}
		return a.loops[i].Header < a.loops[j].Header
	})

	for _, l := range a.loops {
		detectInductionVariables(g, l)
	}
	return a
}

// collectBody walks predecessors from the back-edge tail up to the
// header, adding every block on the way to the loop body.
func collectBody(g *graph.Graph, l *Loop, tail graph.BlockID) {
	if !l.contains(l.Header) {
		l.Blocks = append(l.Blocks, l.Header)
	}
	if l.contains(tail) {
		return
	}
	l.Blocks = append(l.Blocks, tail)
	stack := []graph.BlockID{tail}
	for len(stack) > 0 {
		b := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, p := range g.Block(b).Preds {
			if !l.contains(p) {
				l.Blocks = append(l.Blocks, p)
				stack = append(stack, p)
			}
		}
	}
}

// OuterFirst returns the loops outermost-first in graph-declared order.
// The returned slice is a copy; callers may reverse it freely.
func (a *Analysis) OuterFirst() []*Loop {
	out := make([]*Loop, len(a.loops))
	copy(out, a.loops)
	return out
}

// DetectCountedLoops marks every loop whose trip structure is statically
// recognizable. Induction variables are already in place after Analyze;
// this only derives the per-loop counted flag.
func (a *Analysis) DetectCountedLoops() {
	for _, l := range a.loops {
		l.counted = false
		for _, iv := range l.IVs {
			if len(a.g.UsersWithOp(iv.Value, graph.OpIntegerLessThan)) > 0 {
				l.counted = true
				break
			}
		}
	}
}
