// Completion: 100% - Deterministic IR dump complete
package graph

import (
	"fmt"
	"strings"
)

// Dump renders the graph as deterministic text: blocks in ID order, then
// floating nodes in ID order. The output is stable across runs for the
// same construction sequence, which is what the golden tests rely on.
func (g *Graph) Dump() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "procedure %s\n", g.name)
	for _, callee := range g.inlined {
		fmt.Fprintf(&sb, "  inlined %s\n", callee)
	}
	placed := make(map[NodeID]bool)
	for _, b := range g.blocks {
		fmt.Fprintf(&sb, "b%d:", b.ID)
		if len(b.Preds) > 0 {
			fmt.Fprintf(&sb, " preds=%s", blockList(b.Preds))
		}
		if len(b.Succs) > 0 {
			fmt.Fprintf(&sb, " succs=%s", blockList(b.Succs))
		}
		sb.WriteByte('\n')
		for _, id := range b.Nodes {
			placed[id] = true
			fmt.Fprintf(&sb, "  %s\n", g.describe(id))
		}
	}
	floating := false
	for _, n := range g.nodes {
		if placed[n.ID] {
			continue
		}
		if !floating {
			sb.WriteString("floating:\n")
			floating = true
		}
		fmt.Fprintf(&sb, "  %s\n", g.describe(n.ID))
	}
	return sb.String()
}

// describe renders one node as a single line.
func (g *Graph) describe(id NodeID) string {
	n := g.nodes[id]
	var sb strings.Builder
	fmt.Fprintf(&sb, "v%d = %s", n.ID, n.Op)
	switch n.Op {
	case OpConst:
		if n.Kind == KindInt {
			fmt.Fprintf(&sb, "<%s %d>", n.Kind, n.AuxInt)
		} else {
			fmt.Fprintf(&sb, "<%s %g>", n.Kind, n.AuxFloat)
		}
	case OpParam:
		fmt.Fprintf(&sb, "<%s #%d>", n.Kind, n.AuxInt)
	case OpFrameState:
		fmt.Fprintf(&sb, "<%s@%d>", n.Method, n.AuxInt)
	case OpParallelOffset, OpParallelStride, OpParallelRange:
		fmt.Fprintf(&sb, "<dim %d>", n.AuxInt)
	case OpFPIntrinsic:
		fmt.Fprintf(&sb, "<%s op=%d>", n.Kind, n.AuxInt)
	}
	for _, in := range n.Inputs {
		if in == InvalidNode {
			sb.WriteString(" _")
		} else {
			fmt.Fprintf(&sb, " v%d", in)
		}
	}
	return sb.String()
}

func blockList(ids []BlockID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("b%d", id)
	}
	return strings.Join(parts, ",")
}
