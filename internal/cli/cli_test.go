package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shuymn/phantom/internal/model"
	"github.com/shuymn/phantom/internal/multiplexer"
)

// TestRootCommandStructure verifies all subcommands are registered on
// the root command.
func TestRootCommandStructure(t *testing.T) {
	root := NewRootCommand()

	expected := []string{"create", "attach", "list", "where", "delete", "shell", "exec", "version"}
	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, name := range expected {
		assert.Contains(t, names, name)
	}
}

// TestSplitExecArgs verifies the name/command split for the exec
// command in both direct and --fzf modes.
func TestSplitExecArgs(t *testing.T) {
	name, command, err := splitExecArgs([]string{"feature-x", "git", "status"}, false)
	require.NoError(t, err)
	assert.Equal(t, "feature-x", name)
	assert.Equal(t, []string{"git", "status"}, command)

	name, command, err = splitExecArgs([]string{"npm", "test"}, true)
	require.NoError(t, err)
	assert.Empty(t, name)
	assert.Equal(t, []string{"npm", "test"}, command)

	_, _, err = splitExecArgs([]string{"feature-x"}, false)
	require.Error(t, err)

	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.ExitValidationError, cliErr.Code)
}

// TestPlacementResolve verifies the placement flag group: none selected,
// environment gating, mutual exclusion, and the configured default
// direction for the bare flags.
func TestPlacementResolve(t *testing.T) {
	tmuxEnv := []string{"TMUX=/tmp/tmux-1000/default,123,0"}

	none := &placementFlags{}
	pl, err := none.resolve(tmuxEnv, "")
	require.NoError(t, err)
	assert.Nil(t, pl)

	outside := &placementFlags{tmux: true}
	_, err = outside.resolve([]string{"TERM=xterm"}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tmux session")

	inside := &placementFlags{tmux: true}
	pl, err = inside.resolve(tmuxEnv, "")
	require.NoError(t, err)
	require.NotNil(t, pl)
	assert.Equal(t, "tmux", pl.mux)
	assert.Equal(t, multiplexer.DirectionNew, pl.direction)

	configured := &placementFlags{tmux: true}
	pl, err = configured.resolve(tmuxEnv, "vertical")
	require.NoError(t, err)
	assert.Equal(t, multiplexer.DirectionVertical, pl.direction)

	explicit := &placementFlags{tmuxHorizontal: true}
	pl, err = explicit.resolve(tmuxEnv, "vertical")
	require.NoError(t, err)
	assert.Equal(t, multiplexer.DirectionHorizontal, pl.direction)

	both := &placementFlags{tmux: true, kitty: true}
	_, err = both.resolve(tmuxEnv, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only one")
}

// TestShortHEAD verifies commit abbreviation for the list output.
func TestShortHEAD(t *testing.T) {
	assert.Equal(t, "abcdef12", shortHEAD("abcdef1234567890"))
	assert.Equal(t, "abc", shortHEAD("abc"))
}
