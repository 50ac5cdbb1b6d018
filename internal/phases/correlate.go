// Completion: 100% - Annotation correlation complete
package phases

import (
	"github.com/jnorthrup/TornadoVM/internal/annotations"
	"github.com/jnorthrup/TornadoVM/internal/graph"
)

// correlate.go - From annotation records to IR value nodes
//
// The provider names marked variables by (procedure, bytecode range,
// local slot). Frame-capture sites are the bridge to the IR: a site
// whose owning procedure has records and whose offset falls inside a
// record's range binds the record's slot to a concrete value node.
// The first site to claim a node wins; later matches are ignored.

// ResolveAnnotations builds the annotated-node map of a graph: every
// value node marked parallel, keyed to the record that marked it. Pure
// with respect to the graph.
func ResolveAnnotations(g *graph.Graph, provider annotations.Provider) map[graph.NodeID]annotations.Record {
	byProcedure := make(map[string][]annotations.Record)
	byProcedure[g.Name()] = provider.ParallelAnnotations(g.Name())
	for _, inlinee := range g.InlinedProcedures() {
		records := provider.ParallelAnnotations(inlinee)
		if len(records) > 0 {
			byProcedure[inlinee] = records
		}
	}

	annotated := make(map[graph.NodeID]annotations.Record)
	for id := 0; id < g.NumNodes(); id++ {
		fs := g.Node(graph.NodeID(id))
		if fs.Op != graph.OpFrameState {
			continue
		}
		records, ok := byProcedure[fs.Method]
		if !ok {
			continue
		}
		for _, record := range records {
			if !record.Contains(fs.BCI()) {
				continue
			}
			local := fs.LocalAt(int(record.SlotIndex))
			if local == graph.InvalidNode {
				continue
			}
			if _, claimed := annotated[local]; !claimed {
				annotated[local] = record
			}
		}
	}
	return annotated
}
