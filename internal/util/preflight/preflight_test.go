package preflight

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_AllCommandsPass(t *testing.T) {
	t.Parallel()

	results, err := Run(context.Background(), t.TempDir(), []string{"true", "true"})

	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.NoError(t, r.Err)
	}
}

func TestRun_StopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	results, err := Run(context.Background(), t.TempDir(), []string{"true", "false", "true"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), `preflight gate failed at "false"`)
	require.Len(t, results, 2, "the command after the failure must not run")
	assert.Error(t, results[1].Err)
}

func TestRun_MissingBinary(t *testing.T) {
	t.Parallel()

	_, err := Run(context.Background(), t.TempDir(), []string{"definitely-not-a-real-tool --version"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found in PATH")
}

func TestRun_SkipsBlankLines(t *testing.T) {
	t.Parallel()

	results, err := Run(context.Background(), t.TempDir(), []string{"", "true"})

	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestDefaultCommands(t *testing.T) {
	t.Parallel()

	commands := DefaultCommands()
	require.Len(t, commands, 2)
	assert.Contains(t, commands[0], "flake8")
	assert.Contains(t, commands[1], "pytest")
}
