package worktree

import (
	"fmt"
	"os"

	"github.com/shuymn/phantom/internal/gitexec"
	"github.com/shuymn/phantom/internal/model"
)

// CreateResult describes a successfully created worktree.
type CreateResult struct {
	// Name is the worktree name.
	Name string

	// Path is the absolute path of the new worktree directory.
	Path string

	// Branch is the branch checked out in the new worktree.
	Branch string
}

// Create makes a new worktree named name, on a new branch of the same
// name rooted at the current HEAD.
//
// The container directory is created on demand. If a worktree with the
// same name already exists the call fails with a conflict — it never
// overwrites or merges. Directory creation, branch creation and worktree
// registration are all delegated to Git; no independent bookkeeping
// happens here.
func (m *Manager) Create(name string) (*CreateResult, error) {
	return m.add(name, name, true)
}

// Attach makes a new worktree checking out the existing branch of the
// same name. Unlike Create it does not create a branch; a missing branch
// is a not-found failure.
func (m *Manager) Attach(branch string) (*CreateResult, error) {
	if err := model.ValidateName(branch); err != nil {
		return nil, err
	}
	if !m.branchExists(branch) {
		return nil, model.NewCLIError(model.ExitNotFound,
			fmt.Sprintf("branch '%s' not found", branch))
	}
	return m.add(branch, branch, false)
}

func (m *Manager) add(name, branch string, newBranch bool) (*CreateResult, error) {
	if err := model.ValidateName(name); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError, "failed to create worktrees directory", err)
	}

	path := m.PathFor(name)
	if pathExists(path) {
		return nil, model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("worktree '%s' already exists", name))
	}

	args := []string{"worktree", "add", path}
	if newBranch {
		args = append(args, "-b", branch, "HEAD")
	} else {
		args = append(args, branch)
	}
	if _, err := gitexec.RunIn(m.repo.Root, args...); err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to create worktree '%s'", name), err)
	}

	return &CreateResult{Name: name, Path: path, Branch: branch}, nil
}

// branchExists checks whether a local branch exists. The --quiet flag
// keeps rev-parse silent on a missing ref, so the probe never trips the
// executor's stderr policy; existence is signalled by a non-empty SHA.
func (m *Manager) branchExists(branch string) bool {
	res, err := gitexec.RunIn(m.repo.Root, "rev-parse", "--verify", "--quiet", "refs/heads/"+branch)
	return err == nil && res.Stdout != ""
}
