package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValidateName verifies the path-safe name rules: alphanumerics,
// dots, underscores and hyphens are fine, separators and empty names
// are rejected as validation failures.
func TestValidateName(t *testing.T) {
	valid := []string{"feature-x", "a", "fix_123", "v1.2.3", "A-b.c_d"}
	for _, name := range valid {
		assert.NoError(t, ValidateName(name), "name %q should be valid", name)
	}

	invalid := []string{"", "feature/x", "../escape", ".hidden", "-lead", "has space", "tab\there"}
	for _, name := range invalid {
		err := ValidateName(name)
		require.Error(t, err, "name %q should be invalid", name)

		var cliErr *CLIError
		require.ErrorAs(t, err, &cliErr)
		assert.Equal(t, ExitValidationError, cliErr.Code)
	}
}

// TestWorktreeName verifies the name is derived from the path's base.
func TestWorktreeName(t *testing.T) {
	wt := Worktree{Path: "/repo/.git/phantom/worktrees/feature-x"}
	assert.Equal(t, "feature-x", wt.Name())
}

// TestWorktreeIsDetached verifies the detached sentinel.
func TestWorktreeIsDetached(t *testing.T) {
	assert.True(t, Worktree{Branch: DetachedBranch}.IsDetached())
	assert.False(t, Worktree{Branch: "main"}.IsDetached())
	assert.False(t, Worktree{}.IsDetached())
}

// TestCLIError verifies message composition and error unwrapping.
func TestCLIError(t *testing.T) {
	underlying := errors.New("boom")
	err := WrapCLIError(ExitNotFound, "worktree 'x' not found", underlying)

	assert.Equal(t, "worktree 'x' not found: boom", err.Error())
	assert.ErrorIs(t, err, underlying)

	plain := NewCLIError(ExitGeneralError, "something failed")
	assert.Equal(t, "something failed", plain.Error())
	assert.Nil(t, errors.Unwrap(plain))
}

// TestExitError verifies the child-exit-code carrier.
func TestExitError(t *testing.T) {
	err := &ExitError{Code: 143}
	assert.Equal(t, "exit status 143", err.Error())
}
