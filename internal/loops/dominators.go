// Completion: 100% - Dominator computation complete
package loops

import "github.com/jnorthrup/TornadoVM/internal/graph"

// dominators.go - Iterative dominator-tree construction
//
// Cooper/Harvey/Kennedy style: intersect immediate dominators over the
// reverse postorder until a fixed point. Procedure CFGs here are small,
// so the simple O(n^2) worst case is irrelevant.

type domTree struct {
	idom []graph.BlockID // immediate dominator per block, entry maps to itself
	rpo  []graph.BlockID // reverse postorder from the entry block
	rpoN []int           // rpo number per block, -1 if unreachable
}

func buildDomTree(g *graph.Graph) *domTree {
	n := g.NumBlocks()
	t := &domTree{
		idom: make([]graph.BlockID, n),
		rpoN: make([]int, n),
	}
	for i := range t.idom {
		t.idom[i] = graph.InvalidBlock
		t.rpoN[i] = -1
	}
	if n == 0 {
		return t
	}

	// Postorder DFS from the entry block, then reverse.
	visited := make([]bool, n)
	var post []graph.BlockID
	var dfs func(b graph.BlockID)
	dfs = func(b graph.BlockID) {
		visited[b] = true
		for _, s := range g.Block(b).Succs {
			if !visited[s] {
				dfs(s)
			}
		}
		post = append(post, b)
	}
	dfs(0)
	for i := len(post) - 1; i >= 0; i-- {
		t.rpo = append(t.rpo, post[i])
	}
	for i, b := range t.rpo {
		t.rpoN[b] = i
	}

	t.idom[0] = 0
	changed := true
	for changed {
		changed = false
		for _, b := range t.rpo[1:] {
			var newIdom graph.BlockID = graph.InvalidBlock
			for _, p := range g.Block(b).Preds {
				if t.rpoN[p] < 0 || t.idom[p] == graph.InvalidBlock {
					continue // unreachable or not yet processed
				}
				if newIdom == graph.InvalidBlock {
					newIdom = p
				} else {
					newIdom = t.intersect(p, newIdom)
				}
			}
			if newIdom != graph.InvalidBlock && t.idom[b] != newIdom {
				t.idom[b] = newIdom
				changed = true
			}
		}
	}
	return t
}

func (t *domTree) intersect(a, b graph.BlockID) graph.BlockID {
	for a != b {
		for t.rpoN[a] > t.rpoN[b] {
			a = t.idom[a]
		}
		for t.rpoN[b] > t.rpoN[a] {
			b = t.idom[b]
		}
	}
	return a
}

// dominates reports whether block a dominates block b.
func (t *domTree) dominates(a, b graph.BlockID) bool {
	for {
		if a == b {
			return true
		}
		if b == 0 || t.idom[b] == graph.InvalidBlock {
			return false
		}
		next := t.idom[b]
		if next == b {
			return false
		}
		b = next
	}
}
