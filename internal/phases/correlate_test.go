package phases

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jnorthrup/TornadoVM/internal/annotations"
	"github.com/jnorthrup/TornadoVM/internal/graph"
)

func TestResolveAnnotationsMatchesOffsetRange(t *testing.T) {
	b := graph.NewBuilder("compute")
	g := b.Graph()
	l := b.BeginLoop(b.IntConst(0), b.IntConst(1), b.Param(0))
	b.CaptureFrame("compute", 10, graph.InvalidNode, graph.InvalidNode, graph.InvalidNode, l.Phi)
	b.EndLoop(l)

	provider := annotations.StaticProvider{
		"compute": {{Start: 8, Length: 12, SlotIndex: 3}},
	}
	annotated := ResolveAnnotations(g, provider)
	require.Len(t, annotated, 1)
	record, ok := annotated[l.Phi]
	require.True(t, ok)
	assert.Equal(t, uint32(3), record.SlotIndex)
}

func TestResolveAnnotationsOutsideOffsetRange(t *testing.T) {
	b := graph.NewBuilder("compute")
	g := b.Graph()
	l := b.BeginLoop(b.IntConst(0), b.IntConst(1), b.Param(0))
	b.CaptureFrame("compute", 25, graph.InvalidNode, graph.InvalidNode, graph.InvalidNode, l.Phi)
	b.EndLoop(l)

	provider := annotations.StaticProvider{
		"compute": {{Start: 8, Length: 12, SlotIndex: 3}},
	}
	assert.Empty(t, ResolveAnnotations(g, provider))
}

func TestResolveAnnotationsFirstSiteWins(t *testing.T) {
	b := graph.NewBuilder("compute")
	g := b.Graph()
	l := b.BeginLoop(b.IntConst(0), b.IntConst(1), b.Param(0))
	// Two capture sites both in range; the first one claims the node.
	b.CaptureFrame("compute", 10, graph.InvalidNode, l.Phi)
	b.CaptureFrame("compute", 14, graph.InvalidNode, l.Phi)
	b.EndLoop(l)

	provider := annotations.StaticProvider{
		"compute": {
			{Start: 8, Length: 12, SlotIndex: 1},
			{Start: 12, Length: 8, SlotIndex: 1},
		},
	}
	annotated := ResolveAnnotations(g, provider)
	require.Len(t, annotated, 1)
	// The first record of the first matching site stays bound.
	assert.Equal(t, uint32(1), annotated[l.Phi].SlotIndex)
	assert.Equal(t, uint32(8), annotated[l.Phi].Start)
}

func TestResolveAnnotationsInlinedCallee(t *testing.T) {
	b := graph.NewBuilder("root")
	g := b.Graph()
	g.RecordInlined("callee")
	l := b.BeginLoop(b.IntConst(0), b.IntConst(1), b.Param(0))
	b.CaptureFrame("callee", 4, l.Phi)
	b.EndLoop(l)

	provider := annotations.StaticProvider{
		"callee": {{Start: 0, Length: 8, SlotIndex: 0}},
	}
	annotated := ResolveAnnotations(g, provider)
	require.Len(t, annotated, 1)
	_, ok := annotated[l.Phi]
	assert.True(t, ok)
}

func TestResolveAnnotationsDeadSlotIgnored(t *testing.T) {
	b := graph.NewBuilder("compute")
	g := b.Graph()
	l := b.BeginLoop(b.IntConst(0), b.IntConst(1), b.Param(0))
	// Slot 3 is dead at this site.
	b.CaptureFrame("compute", 10, graph.InvalidNode, l.Phi, graph.InvalidNode, graph.InvalidNode)
	b.EndLoop(l)

	provider := annotations.StaticProvider{
		"compute": {{Start: 8, Length: 12, SlotIndex: 3}},
	}
	assert.Empty(t, ResolveAnnotations(g, provider))
}
