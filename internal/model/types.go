package model

import (
	"fmt"
	"path/filepath"
	"regexp"
)

// DetachedBranch is the sentinel branch value assigned to a worktree
// whose HEAD is detached. Call sites treat it the same as "no branch".
const DetachedBranch = "(detached)"

// Worktree holds metadata about a single Git worktree entry as parsed
// from `git worktree list --porcelain` output.
//
// Example porcelain output for a single worktree block:
//
//	worktree /path/to/feature-x
//	HEAD abc123def456
//	branch refs/heads/feature-x
//
// Records are never persisted; every listing re-queries Git.
type Worktree struct {
	// Path is the absolute filesystem path to the worktree directory.
	Path string

	// Branch is the short branch name (e.g., "feature-x", with the
	// refs/heads/ prefix stripped). Set to DetachedBranch when the
	// worktree is in a detached HEAD state.
	Branch string

	// HEAD is the commit SHA that the worktree currently points to.
	HEAD string

	// IsLocked indicates the worktree carries a "locked" marker.
	IsLocked bool

	// IsPrunable indicates the worktree carries a "prunable" marker.
	IsPrunable bool
}

// Name returns the worktree's name, which is the base name of its
// on-disk path. The path is a pure function of repository root and
// worktree name, so the derivation is lossless for managed worktrees.
func (w Worktree) Name() string {
	return filepath.Base(w.Path)
}

// IsDetached reports whether the worktree is in a detached HEAD state.
func (w Worktree) IsDetached() bool {
	return w.Branch == DetachedBranch
}

// nameRegex validates worktree names: path-safe characters only
// (alphanumerics, dots, underscores, hyphens), starting with an
// alphanumeric. This keeps resolve(root, name) injective — no
// separators, no traversal.
var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// ValidateName checks whether the given name is usable as a worktree name.
// An empty name is the canonical validation failure; anything containing
// path separators or other unsafe characters is rejected as well.
func ValidateName(name string) error {
	if name == "" {
		return NewCLIError(ExitValidationError, "worktree name must not be empty")
	}
	if !nameRegex.MatchString(name) {
		return NewCLIError(ExitValidationError,
			fmt.Sprintf("invalid worktree name %q: only alphanumeric characters, dots, underscores and hyphens are allowed", name))
	}
	return nil
}
