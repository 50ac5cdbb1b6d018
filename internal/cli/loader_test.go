package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jnorthrup/TornadoVM/internal/graph"
	"github.com/jnorthrup/TornadoVM/internal/loops"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "proc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadProcedureSimple(t *testing.T) {
	g, provider, err := LoadProcedure("testdata/compute.yaml")
	require.NoError(t, err)
	assert.Equal(t, "compute", g.Name())
	require.Len(t, provider.ParallelAnnotations("compute"), 1)

	a := loops.Analyze(g)
	require.Len(t, a.OuterFirst(), 1)
	require.Len(t, a.OuterFirst()[0].IVs, 1)
	assert.True(t, a.OuterFirst()[0].IVs[0].IsConstantStride())
}

func TestLoadProcedureNestedLoops(t *testing.T) {
	path := writeFixture(t, `
procedure: mm
params: 2
loops:
  - {init: 0, stride: 1, bound: {param: 0}, slot: 2, bci: 4}
  - {init: 0, stride: 1, bound: {param: 1}, slot: 3, bci: 12, nest: true}
`)
	g, _, err := LoadProcedure(path)
	require.NoError(t, err)

	a := loops.Analyze(g)
	list := a.OuterFirst()
	require.Len(t, list, 2)
	assert.Equal(t, 1, list[0].Depth)
	assert.Equal(t, 2, list[1].Depth)
}

func TestLoadProcedureSharedParam(t *testing.T) {
	path := writeFixture(t, `
procedure: p
params: 1
loops:
  - {init: 0, stride: 1, bound: {param: 0}, slot: 1, bci: 0}
  - {init: 0, stride: 1, bound: {param: 0}, slot: 1, bci: 20}
`)
	g, _, err := LoadProcedure(path)
	require.NoError(t, err)

	// Both loops bound by the same Param node.
	params := 0
	for id := 0; id < g.NumNodes(); id++ {
		if g.Node(graph.NodeID(id)).Op == graph.OpParam {
			params++
		}
	}
	assert.Equal(t, 1, params)
}

func TestLoadProcedureRejectsBadParam(t *testing.T) {
	path := writeFixture(t, `
procedure: p
params: 1
loops:
  - {init: 0, stride: 1, bound: {param: 5}, slot: 1, bci: 0}
`)
	_, _, err := LoadProcedure(path)
	require.Error(t, err)
}

func TestLoadProcedureRequiresName(t *testing.T) {
	path := writeFixture(t, "params: 1\n")
	_, _, err := LoadProcedure(path)
	require.Error(t, err)
}
