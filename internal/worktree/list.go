package worktree

import (
	"path/filepath"
	"strings"

	"github.com/shuymn/phantom/internal/gitexec"
	"github.com/shuymn/phantom/internal/model"
)

// List returns all worktrees Git knows about for the repository,
// including the main working tree. It runs `git worktree list
// --porcelain` and parses the machine-readable output.
func (m *Manager) List() ([]model.Worktree, error) {
	res, err := gitexec.RunIn(m.repo.Root, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, err
	}
	return parsePorcelain(res.Stdout), nil
}

// Managed returns only the worktrees that live under the manager's
// container directory, i.e. those created by this tool. Zero managed
// worktrees yields an empty slice, not an error.
func (m *Manager) Managed() ([]model.Worktree, error) {
	all, err := m.List()
	if err != nil {
		return nil, err
	}

	managed := make([]model.Worktree, 0, len(all))
	for _, wt := range all {
		if filepath.Dir(wt.Path) == m.dir {
			managed = append(managed, wt)
		}
	}
	return managed, nil
}

// Names returns the names of all managed worktrees. This is the listing
// mode consumed by shell completion.
func (m *Manager) Names() ([]string, error) {
	managed, err := m.Managed()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(managed))
	for _, wt := range managed {
		names = append(names, wt.Name())
	}
	return names, nil
}

// parsePorcelain parses `git worktree list --porcelain` output.
//
// The output is a sequence of line groups. A line beginning with the
// "worktree" marker starts a new record, flushing any pending one.
// Subsequent lines set fields on the current record: the HEAD commit,
// the branch (with the refs/heads/ prefix stripped), a "detached"
// marker (branch becomes the detached sentinel), and "locked"/
// "prunable" boolean markers. Blank lines are skippable delimiters —
// they never terminate a group on their own. The final pending record
// is flushed at end of input.
func parsePorcelain(output string) []model.Worktree {
	var worktrees []model.Worktree
	var current *model.Worktree

	flush := func() {
		if current != nil {
			worktrees = append(worktrees, *current)
			current = nil
		}
	}

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}

		// The key is the first word; markers like "detached" have no value.
		key, value, _ := strings.Cut(line, " ")
		switch key {
		case "worktree":
			flush()
			current = &model.Worktree{Path: value}
		case "HEAD":
			if current != nil {
				current.HEAD = value
			}
		case "branch":
			if current != nil {
				current.Branch = strings.TrimPrefix(value, "refs/heads/")
			}
		case "detached":
			if current != nil {
				current.Branch = model.DetachedBranch
			}
		case "locked":
			if current != nil {
				current.IsLocked = true
			}
		case "prunable":
			if current != nil {
				current.IsPrunable = true
			}
		}
	}
	flush()

	return worktrees
}
