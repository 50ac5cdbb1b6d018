package cli

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with the given args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func golden(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestRewriteCommandGolden(t *testing.T) {
	out, err := run(t, "rewrite", "testdata/compute.yaml")
	require.NoError(t, err)
	golden(t).Assert(t, "rewrite_compute", []byte(out))
}

func TestRewriteCommandBailoutGolden(t *testing.T) {
	out, err := run(t, "rewrite", "testdata/bailout.yaml")
	require.NoError(t, err)
	golden(t).Assert(t, "rewrite_bailout", []byte(out))
}

func TestRewriteCommandMissingFixture(t *testing.T) {
	_, err := run(t, "rewrite", "testdata/absent.yaml")
	require.Error(t, err)
}

func TestTargetsCommandListsBuiltins(t *testing.T) {
	out, err := run(t, "targets")
	require.NoError(t, err)
	assert.Contains(t, out, "opencl:")
	assert.Contains(t, out, "ptx:")
	assert.Contains(t, out, "spirv:")
	assert.Contains(t, out, "ATAN2")
	assert.Contains(t, out, "-> atan2")
}

func TestFoldCommandFoldsConstants(t *testing.T) {
	out, err := run(t, "fold", "pow", "2", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "POW folds to 1024")
}

func TestFoldCommandFloat32Min(t *testing.T) {
	out, err := run(t, "fold", "fmin", "3", "5", "--kind", "f32")
	require.NoError(t, err)
	assert.Contains(t, out, "FMIN folds to 3")
}

func TestFoldCommandLiveNodeLowers(t *testing.T) {
	out, err := run(t, "fold", "hypot", "3", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "HYPOT stays live")
	assert.Contains(t, out, "builtin hypot")
}

func TestFoldCommandUnsupportedOperation(t *testing.T) {
	_, err := run(t, "fold", "sincos", "1", "2", "--target", "ptx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported yet")
}

func TestFoldCommandUnknownOperation(t *testing.T) {
	_, err := run(t, "fold", "cbrt2", "1", "2")
	require.Error(t, err)
}
