package worktree

import (
	"os"
	"path/filepath"
)

// DefaultNamespace is the subdirectory of the common .git directory under
// which managed worktrees are stored, yielding the default layout
// <repoRoot>/.git/phantom/worktrees/<name>.
const DefaultNamespace = "phantom"

// Options configures a Manager.
type Options struct {
	// Namespace names the metadata subdirectory holding managed
	// worktrees. Empty means DefaultNamespace.
	Namespace string

	// WorktreesDir overrides the worktree container directory. A relative
	// path is resolved against the repository root. Empty selects the
	// default <gitDir>/<namespace>/worktrees location.
	WorktreesDir string
}

// Manager provides worktree lifecycle operations for a single repository.
// It holds only the resolved paths; all mutable state belongs to Git.
type Manager struct {
	repo      Repo
	namespace string
	dir       string
}

// NewManager creates a Manager for the given repository.
func NewManager(repo Repo, opts Options) *Manager {
	ns := opts.Namespace
	if ns == "" {
		ns = DefaultNamespace
	}

	dir := opts.WorktreesDir
	switch {
	case dir == "":
		dir = filepath.Join(repo.GitDir, ns, "worktrees")
	case !filepath.IsAbs(dir):
		dir = filepath.Join(repo.Root, dir)
	}

	return &Manager{repo: repo, namespace: ns, dir: filepath.Clean(dir)}
}

// Root returns the main repository's working tree root.
func (m *Manager) Root() string {
	return m.repo.Root
}

// Dir returns the container directory under which managed worktrees live.
func (m *Manager) Dir() string {
	return m.dir
}

// PathFor returns the canonical on-disk path for a named worktree.
// It is a pure function of the manager's base directory and the name:
// distinct names always map to distinct paths.
func (m *Manager) PathFor(name string) string {
	return filepath.Join(m.dir, name)
}

// Has reports whether a worktree directory exists for the given name.
// A missing path is reported as false, never as an error.
func (m *Manager) Has(name string) bool {
	return pathExists(m.PathFor(name))
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
