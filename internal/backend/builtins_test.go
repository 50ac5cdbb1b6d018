package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jnorthrup/TornadoVM/internal/graph"
	"github.com/jnorthrup/TornadoVM/internal/intrinsics"
)

func liveIntrinsic(t *testing.T, op intrinsics.Operation) (*graph.Graph, graph.NodeID) {
	t.Helper()
	g := graph.New("p")
	x := g.Param(0, graph.KindFloat64)
	y := g.Param(1, graph.KindFloat64)
	id, err := intrinsics.Create(g, x, y, op, graph.KindFloat64)
	require.NoError(t, err)
	require.Equal(t, graph.OpFPIntrinsic, g.Node(id).Op)
	return g, id
}

func TestParseTarget(t *testing.T) {
	for name, want := range map[string]Target{
		"opencl": TargetOpenCL,
		"CUDA":   TargetPTX,
		"spir-v": TargetSPIRV,
	} {
		got, err := ParseTarget(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseTarget("metal")
	require.Error(t, err)
}

func TestLowerSupportedOperation(t *testing.T) {
	g, id := liveIntrinsic(t, intrinsics.ATAN2)
	table, err := TableFor(TargetOpenCL)
	require.NoError(t, err)

	call, err := table.Lower(g, id)
	require.NoError(t, err)
	assert.Equal(t, "atan2", call.Builtin)
	assert.Equal(t, graph.KindFloat64, call.Kind)
	assert.Equal(t, g.Node(id).Inputs[0], call.X)
	assert.Equal(t, g.Node(id).Inputs[1], call.Y)
}

func TestLowerUnsupportedOperationIsFatal(t *testing.T) {
	// SINCOS has no builtin on any target table.
	g, id := liveIntrinsic(t, intrinsics.SINCOS)
	table, err := TableFor(TargetSPIRV)
	require.NoError(t, err)

	_, err = table.Lower(g, id)
	require.Error(t, err)
	unsupported, ok := err.(*UnsupportedOperationError)
	require.True(t, ok)
	assert.Equal(t, intrinsics.SINCOS, unsupported.Op)
	assert.Contains(t, err.Error(), "not supported yet")
	assert.Contains(t, err.Error(), "spirv")
}

func TestCapabilityGapsDifferPerTarget(t *testing.T) {
	opencl, err := TableFor(TargetOpenCL)
	require.NoError(t, err)
	ptx, err := TableFor(TargetPTX)
	require.NoError(t, err)

	assert.True(t, opencl.Supports(intrinsics.HYPOT))
	assert.False(t, ptx.Supports(intrinsics.HYPOT))
}

func TestEveryTargetLowersTheFoldableSet(t *testing.T) {
	for _, target := range Targets() {
		table, err := TableFor(target)
		require.NoError(t, err)
		for _, op := range []intrinsics.Operation{intrinsics.ATAN2, intrinsics.FMIN, intrinsics.FMAX, intrinsics.POW} {
			assert.True(t, table.Supports(op), "%s should lower %s", target, op)
		}
	}
}

func TestCoverageSorted(t *testing.T) {
	table, err := TableFor(TargetOpenCL)
	require.NoError(t, err)
	ops := table.Coverage()
	require.NotEmpty(t, ops)
	for i := 1; i < len(ops); i++ {
		assert.Less(t, ops[i-1].String(), ops[i].String())
	}
}
