package worktree

import (
	"github.com/shuymn/phantom/internal/model"
)

// Current determines which managed worktree contains cwd, if any.
//
// It asks Git for the top-level root of the working tree containing cwd
// (for a linked worktree this is the worktree's own root) and matches it
// against the listing. The determination is best-effort: any Git failure,
// a root that matches no record, a match on the main repository root, or
// a match on a detached-HEAD worktree all report "not in a worktree".
// Callers rely on the false case meaning "do not treat as current";
// detached worktrees are deliberately indistinguishable from that.
func (m *Manager) Current(cwd string) (model.Worktree, bool) {
	top, err := Toplevel(cwd)
	if err != nil || top == "" {
		return model.Worktree{}, false
	}

	worktrees, err := m.List()
	if err != nil {
		return model.Worktree{}, false
	}

	for _, wt := range worktrees {
		if wt.Path != top {
			continue
		}
		if wt.Path == m.repo.Root || wt.IsDetached() {
			return model.Worktree{}, false
		}
		return wt, true
	}
	return model.Worktree{}, false
}
