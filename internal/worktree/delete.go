package worktree

import (
	"fmt"
	"strings"

	"github.com/shuymn/phantom/internal/gitexec"
	"github.com/shuymn/phantom/internal/model"
)

// DeleteResult describes a successful worktree deletion.
type DeleteResult struct {
	// Message is the composed user-facing success message. When the
	// worktree had uncommitted changes and was force-deleted, it is
	// prefixed with a warning line naming the changed-file count.
	Message string

	// Branch is the branch that was (best-effort) deleted alongside
	// the worktree.
	Branch string

	// HadUncommittedChanges reports whether the worktree was dirty.
	HadUncommittedChanges bool

	// ChangedFiles is the number of changed files found by the status
	// query, zero when clean.
	ChangedFiles int
}

// Delete removes the named worktree and, best-effort, its branch.
//
// The sequence is: validate the name, check existence, query dirty
// status, refuse if dirty without force, remove the worktree (plain
// first, then a forced retry), delete the branch.
//
// The plain-then-forced removal keeps whatever safety Git applies to
// locked worktrees or stray lockfiles, escalating only when needed.
// Branch deletion failures (branch missing, checked out elsewhere) are
// swallowed: the worktree removal already succeeded and that is what
// the result reports.
func (m *Manager) Delete(name string, force bool) (*DeleteResult, error) {
	if err := model.ValidateName(name); err != nil {
		return nil, err
	}

	path := m.PathFor(name)
	if !pathExists(path) {
		return nil, model.NewCLIError(model.ExitNotFound,
			fmt.Sprintf("worktree '%s' not found", name))
	}

	changed := m.changedFileCount(path)
	if changed > 0 && !force {
		return nil, model.NewCLIError(model.ExitValidationError,
			fmt.Sprintf("worktree '%s' has uncommitted changes (%d files), use --force to delete anyway", name, changed))
	}

	// Resolve the branch before the directory disappears. An empty or
	// failed answer (detached HEAD) falls back to the worktree name.
	branch := m.branchIn(path)
	if branch == "" {
		branch = name
	}

	if _, err := gitexec.RunIn(m.repo.Root, "worktree", "remove", path); err != nil {
		if _, err := gitexec.RunIn(m.repo.Root, "worktree", "remove", "--force", path); err != nil {
			return nil, model.WrapCLIError(model.ExitGeneralError,
				fmt.Sprintf("failed to remove worktree '%s'", name), err)
		}
	}

	m.deleteBranch(branch)

	msg := fmt.Sprintf("Deleted worktree '%s' and its branch '%s'", name, branch)
	if changed > 0 {
		msg = fmt.Sprintf("Warning: Worktree '%s' had uncommitted changes (%d files)\n%s", name, changed, msg)
	}

	return &DeleteResult{
		Message:               msg,
		Branch:                branch,
		HadUncommittedChanges: changed > 0,
		ChangedFiles:          changed,
	}, nil
}

// changedFileCount counts uncommitted changes in the worktree at path
// by counting lines of `git status --porcelain` output. A failing status
// query is treated as clean: a broken status check must not block
// deletion.
func (m *Manager) changedFileCount(path string) int {
	res, err := gitexec.RunIn(path, "status", "--porcelain")
	if err != nil || res.Stdout == "" {
		return 0
	}

	count := 0
	for _, line := range strings.Split(res.Stdout, "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count
}

// branchIn returns the branch checked out in the worktree at path,
// or "" for a detached HEAD or a failed query.
func (m *Manager) branchIn(path string) string {
	res, err := gitexec.RunIn(path, "branch", "--show-current")
	if err != nil {
		return ""
	}
	return res.Stdout
}

// deleteBranch removes a branch, ignoring failures. This is an explicit
// policy: after the worktree itself is gone, a branch that is missing or
// checked out elsewhere must not turn the deletion into a failure.
func (m *Manager) deleteBranch(branch string) {
	_, _ = gitexec.RunIn(m.repo.Root, "branch", "-D", branch)
}
