package loops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jnorthrup/TornadoVM/internal/graph"
)

func TestSiblingLoopsDeclaredOrder(t *testing.T) {
	b := graph.NewBuilder("p")
	l1 := b.BeginLoop(b.IntConst(0), b.IntConst(1), b.Param(0))
	b.EndLoop(l1)
	l2 := b.BeginLoop(b.IntConst(0), b.IntConst(1), b.Param(1))
	b.EndLoop(l2)

	a := Analyze(b.Graph())
	list := a.OuterFirst()
	require.Len(t, list, 2)
	assert.Equal(t, l1.Header, list[0].Header)
	assert.Equal(t, l2.Header, list[1].Header)
	assert.Equal(t, 1, list[0].Depth)
	assert.Equal(t, 1, list[1].Depth)
}

func TestNestedLoopsOuterFirst(t *testing.T) {
	b := graph.NewBuilder("p")
	outer := b.BeginLoop(b.IntConst(0), b.IntConst(1), b.Param(0))
	inner := b.BeginLoop(b.IntConst(0), b.IntConst(1), b.Param(1))
	b.EndLoop(inner)
	b.EndLoop(outer)

	a := Analyze(b.Graph())
	list := a.OuterFirst()
	require.Len(t, list, 2)
	assert.Equal(t, outer.Header, list[0].Header)
	assert.Equal(t, inner.Header, list[1].Header)
	assert.Equal(t, 1, list[0].Depth)
	assert.Equal(t, 2, list[1].Depth)
	// The outer loop body contains the whole inner loop.
	assert.Contains(t, list[0].Blocks, inner.Header)
	assert.Contains(t, list[0].Blocks, inner.Body)
}

func TestInductionVariableFacts(t *testing.T) {
	b := graph.NewBuilder("p")
	g := b.Graph()
	l := b.BeginLoop(b.IntConst(4), b.IntConst(2), b.Param(0))
	b.EndLoop(l)

	a := Analyze(g)
	list := a.OuterFirst()
	require.Len(t, list, 1)
	require.Len(t, list[0].IVs, 1)

	iv := list[0].IVs[0]
	assert.Equal(t, l.Phi, iv.Value)
	require.True(t, iv.IsConstantInit())
	require.True(t, iv.IsConstantStride())
	assert.Equal(t, int64(4), iv.ConstantInit(g))
	assert.Equal(t, int64(2), iv.ConstantStride(g))
}

func TestNonConstantStrideFact(t *testing.T) {
	b := graph.NewBuilder("p")
	l := b.BeginLoop(b.IntConst(0), b.Param(1), b.Param(0))
	b.EndLoop(l)

	a := Analyze(b.Graph())
	list := a.OuterFirst()
	require.Len(t, list, 1)
	require.Len(t, list[0].IVs, 1)
	assert.True(t, list[0].IVs[0].IsConstantInit())
	assert.False(t, list[0].IVs[0].IsConstantStride())
}

func TestDetectCountedLoops(t *testing.T) {
	b := graph.NewBuilder("p")
	l := b.BeginLoop(b.IntConst(0), b.IntConst(1), b.Param(0))
	b.EndLoop(l)

	a := Analyze(b.Graph())
	a.DetectCountedLoops()
	require.Len(t, a.OuterFirst(), 1)
	assert.True(t, a.OuterFirst()[0].IsCounted())
}

func TestUncountedLoop(t *testing.T) {
	// A loop whose phi recurrence is not additive: phi = Phi(init, phi*2).
	g := graph.New("p")
	entry := g.NewBlock()
	header := g.NewBlock()
	body := g.NewBlock()
	exit := g.NewBlock()
	g.AddEdge(entry, header)
	g.AddEdge(header, body)
	g.AddEdge(header, exit)
	g.AddEdge(body, header)

	init := g.IntConst(1)
	phi := g.NewNode(graph.OpPhi, graph.KindInt, header, init, graph.InvalidNode)
	dbl := g.NewNode(graph.OpMul, graph.KindInt, body, phi, g.IntConst(2))
	g.SetInput(phi, 1, dbl)

	a := Analyze(g)
	list := a.OuterFirst()
	require.Len(t, list, 1)
	assert.Empty(t, list[0].IVs)
	a.DetectCountedLoops()
	assert.False(t, list[0].IsCounted())
}
