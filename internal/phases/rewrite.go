// Completion: 100% - Parallel-loop rewrite complete
package phases

import (
	"log/slog"

	"github.com/jnorthrup/TornadoVM/internal/annotations"
	"github.com/jnorthrup/TornadoVM/internal/graph"
	"github.com/jnorthrup/TornadoVM/internal/loops"
)

// rewrite.go - Induction variables to explicit parallel ranges
//
// Every annotated induction variable with constant init and stride
// becomes one Offset/Stride/Range triple keyed by a dense dimension
// index. The phi's entry edge moves to the Offset node, the increment's
// stride operand moves to the Stride node, and the bound operand of the
// first strictly-less-than comparison moves to the Range node; the
// downstream scheduler substitutes a per-work-item coordinate for
// Offset + work_item * Stride, bounded by Range. A loop that cannot be
// rewritten bails the whole procedure out; earlier loops of the same
// pass stay rewritten (the caller discards the graph on Bailout).

// Rewriter performs the parallel-loop rewrite on one procedure graph.
type Rewriter struct {
	g         *graph.Graph
	annotated map[graph.NodeID]annotations.Record
	reverse   bool
	log       *slog.Logger

	nextDim int
	ranges  []graph.NodeID
}

// NewRewriter creates a rewriter over a graph and its annotated-node
// map. reverse flips the outer-first loop processing order.
func NewRewriter(g *graph.Graph, annotated map[graph.NodeID]annotations.Record, reverse bool, log *slog.Logger) *Rewriter {
	if log == nil {
		log = slog.Default()
	}
	return &Rewriter{g: g, annotated: annotated, reverse: reverse, log: log}
}

// Dimensions returns the number of parallel dimensions materialized so
// far.
func (r *Rewriter) Dimensions() int {
	return r.nextDim
}

// RangeNodes returns the ParallelRange node of each dimension, indexed
// by dimension.
func (r *Rewriter) RangeNodes() []graph.NodeID {
	return r.ranges
}

// Run discovers the graph's loops and rewrites every annotated
// induction variable. Returns a *Bailout when a loop cannot be
// parallelized; the graph may then hold partial rewrites from earlier
// loops.
func (r *Rewriter) Run() error {
	analysis := loops.Analyze(r.g)
	analysis.DetectCountedLoops()

	list := analysis.OuterFirst()
	if r.reverse {
		for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
			list[i], list[j] = list[j], list[i]
		}
	}

	for _, loop := range list {
		for _, iv := range loop.IVs {
			if _, ok := r.annotated[iv.Value]; !ok {
				continue
			}
			conditions := r.g.UsersWithOp(iv.Value, graph.OpIntegerLessThan)
			if len(conditions) == 0 {
				return &Bailout{Procedure: r.g.Name(), LoopIndex: r.nextDim, Reason: "a parallel loop without a bound check"}
			}
			lessThan := conditions[0]
			maxIterations := r.g.Node(lessThan).Inputs[1]
			if err := r.replace(iv, lessThan, maxIterations); err != nil {
				return err
			}
		}
	}
	return nil
}

// replace materializes one dimension's Offset/Stride/Range triple and
// redirects the loop edges onto it.
func (r *Rewriter) replace(iv *loops.InductionVariable, lessThan, maxIterations graph.NodeID) error {
	if !iv.IsConstantInit() || !iv.IsConstantStride() {
		return &Bailout{Procedure: r.g.Name(), LoopIndex: r.nextDim, Reason: "non-constant loop strides"}
	}
	g := r.g
	dim := r.nextDim

	newInit := g.IntConst(iv.ConstantInit(g))
	newStride := g.IntConst(iv.ConstantStride(g))

	offset := g.NewNode(graph.OpParallelOffset, graph.KindInt, graph.InvalidBlock, newInit)
	g.Node(offset).AuxInt = int64(dim)
	stride := g.NewNode(graph.OpParallelStride, graph.KindInt, graph.InvalidBlock, newStride)
	g.Node(stride).AuxInt = int64(dim)
	rng := g.NewNode(graph.OpParallelRange, graph.KindInt, graph.InvalidBlock, maxIterations, offset, stride)
	g.Node(rng).AuxInt = int64(dim)

	phi := iv.Value
	oldStride := g.SingleBackValueOrThis(phi)

	// A shared increment feeds consumers beyond the loop phi; give them
	// a duplicate so their value is untouched by the redirection below.
	if len(g.Users(oldStride)) > 1 {
		duplicate := g.CopyWithInputs(oldStride)
		g.ReplaceUsesWhere(oldStride, duplicate, func(u graph.NodeID) bool { return u != phi })
	}

	g.ReplaceUsesWhere(iv.Init, offset, func(u graph.NodeID) bool { return u == phi })
	g.ReplaceUsesWhere(iv.Stride, stride, func(u graph.NodeID) bool { return u == oldStride })
	// only replace this node in the loop condition
	g.ReplaceUsesWhere(maxIterations, rng, func(u graph.NodeID) bool { return u == lessThan })

	r.ranges = append(r.ranges, rng)
	r.nextDim++
	r.log.Debug("parallel range materialized",
		"procedure", g.Name(),
		"dimension", dim,
		"init", iv.ConstantInit(g),
		"stride", iv.ConstantStride(g))
	return nil
}

// DimensionSize computes the number of work items of a ParallelRange
// node when its bound, offset and stride are all compile-time constants
// with a positive stride. The result equals the number of distinct
// values the original induction variable would have taken.
func DimensionSize(g *graph.Graph, rangeNode graph.NodeID) (int64, bool) {
	n := g.Node(rangeNode)
	if n.Op != graph.OpParallelRange {
		return 0, false
	}
	bound := g.Node(n.Inputs[0])
	offset := g.Node(n.Inputs[1])
	stride := g.Node(n.Inputs[2])
	if !bound.IsConstant() {
		return 0, false
	}
	init := g.Node(offset.Inputs[0]).IntValue()
	step := g.Node(stride.Inputs[0]).IntValue()
	if step <= 0 {
		return 0, false
	}
	size := (bound.IntValue() - init + step - 1) / step
	if size < 0 {
		size = 0
	}
	return size, true
}
