package worktree

import (
	"path/filepath"

	"github.com/shuymn/phantom/internal/gitexec"
	"github.com/shuymn/phantom/internal/model"
)

// Repo identifies the Git repository a command operates on. It is
// discovered once per invocation and threaded through the Manager.
type Repo struct {
	// Root is the absolute path to the main repository's working tree.
	Root string

	// GitDir is the absolute path to the common .git directory. For a
	// process running inside a linked worktree this still points at the
	// main repository's metadata, which is where managed worktrees live.
	GitDir string
}

// Discover locates the repository containing cwd.
//
// It uses `git rev-parse --git-common-dir` rather than --show-toplevel
// because the common dir resolves to the main repository's .git directory
// even when invoked from inside a linked worktree, so every command works
// the same regardless of where it is run.
func Discover(cwd string) (Repo, error) {
	res, err := gitexec.RunIn(cwd, "rev-parse", "--git-common-dir")
	if err != nil {
		return Repo{}, model.WrapCLIError(model.ExitGeneralError, "not inside a Git repository", err)
	}

	gitDir := res.Stdout
	if !filepath.IsAbs(gitDir) {
		// Git reports the common dir relative to cwd (often just ".git").
		gitDir = filepath.Join(cwd, gitDir)
	}
	gitDir = filepath.Clean(gitDir)

	root := gitDir
	if filepath.Base(gitDir) == ".git" {
		root = filepath.Dir(gitDir)
	}

	return Repo{Root: root, GitDir: gitDir}, nil
}

// Toplevel returns the root of the working tree containing dir. For a
// linked worktree this is the worktree's own root, not the main
// repository's — which is exactly what current-worktree detection needs.
func Toplevel(dir string) (string, error) {
	res, err := gitexec.RunIn(dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return res.Stdout, nil
}
