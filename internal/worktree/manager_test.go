package worktree

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shuymn/phantom/internal/model"
)

// setupTestRepo creates a temporary directory with an initialized Git
// repository containing a single commit. Worktree commands require at
// least one commit to exist, because a worktree needs a branch and a
// branch needs a commit to point to.
//
// The function uses t.TempDir() which automatically cleans up after the
// test, and configures a local user identity so `git commit` works in
// CI environments without a global git config.
func setupTestRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	runTestGit(t, dir, "init", "-b", "main")
	runTestGit(t, dir, "config", "user.email", "test@example.com")
	runTestGit(t, dir, "config", "user.name", "Test User")

	err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("# Test Repo\n"), 0o644)
	require.NoError(t, err, "failed to create initial file")
	runTestGit(t, dir, "add", ".")
	runTestGit(t, dir, "commit", "-m", "initial commit")

	return dir
}

// runTestGit runs a git command in the specified directory and fails the
// test immediately on a non-zero exit.
func runTestGit(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v failed: %s", args, string(output))
	return string(output)
}

// newTestManager discovers the repo and builds a Manager with defaults.
func newTestManager(t *testing.T, dir string) *Manager {
	t.Helper()

	repo, err := Discover(dir)
	require.NoError(t, err)
	return NewManager(repo, Options{})
}

// TestDiscover verifies repository discovery resolves the root and the
// common .git directory, including from a subdirectory.
func TestDiscover(t *testing.T) {
	dir := setupTestRepo(t)

	repo, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, repo.Root)
	assert.Equal(t, filepath.Join(dir, ".git"), repo.GitDir)

	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	fromSub, err := Discover(sub)
	require.NoError(t, err)
	assert.Equal(t, dir, fromSub.Root)
}

// TestDiscoverOutsideRepo verifies discovery fails outside a repository.
func TestDiscoverOutsideRepo(t *testing.T) {
	_, err := Discover(t.TempDir())
	require.Error(t, err)
}

// TestDiscoverFromWorktree verifies the common dir points at the main
// repository even when discovery starts inside a linked worktree, so
// managed worktrees resolve to the same place everywhere.
func TestDiscoverFromWorktree(t *testing.T) {
	dir := setupTestRepo(t)
	m := newTestManager(t, dir)

	result, err := m.Create("inner")
	require.NoError(t, err)

	repo, err := Discover(result.Path)
	require.NoError(t, err)
	assert.Equal(t, dir, repo.Root)
	assert.Equal(t, filepath.Join(dir, ".git"), repo.GitDir)
}

// TestCreate verifies worktree creation: the container directory is
// created recursively, the worktree appears on disk, and a new branch
// named after the worktree is checked out in it.
func TestCreate(t *testing.T) {
	dir := setupTestRepo(t)
	m := newTestManager(t, dir)

	// The namespace directory must not exist yet; Create bootstraps it.
	_, statErr := os.Stat(m.Dir())
	require.True(t, os.IsNotExist(statErr))

	result, err := m.Create("feature-x")
	require.NoError(t, err)
	assert.Equal(t, "feature-x", result.Name)
	assert.Equal(t, m.PathFor("feature-x"), result.Path)
	assert.Equal(t, "feature-x", result.Branch)

	_, statErr = os.Stat(result.Path)
	assert.NoError(t, statErr, "worktree directory should exist after Create")

	branch := strings.TrimSpace(runTestGit(t, result.Path, "branch", "--show-current"))
	assert.Equal(t, "feature-x", branch)
}

// TestCreateConflict verifies creating a worktree that already exists
// fails with a conflict and does not touch the existing directory.
func TestCreateConflict(t *testing.T) {
	dir := setupTestRepo(t)
	m := newTestManager(t, dir)

	first, err := m.Create("feature-x")
	require.NoError(t, err)

	marker := filepath.Join(first.Path, "marker.txt")
	require.NoError(t, os.WriteFile(marker, []byte("keep"), 0o644))

	_, err = m.Create("feature-x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.ExitGeneralError, cliErr.Code)

	content, readErr := os.ReadFile(marker)
	require.NoError(t, readErr)
	assert.Equal(t, "keep", string(content), "conflicting create must not mutate the filesystem")
}

// TestCreateEmptyName verifies the fail-fast validation on empty names.
func TestCreateEmptyName(t *testing.T) {
	dir := setupTestRepo(t)
	m := newTestManager(t, dir)

	_, err := m.Create("")
	require.Error(t, err)

	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.ExitValidationError, cliErr.Code)
}

// TestAttach verifies attaching a worktree to an existing branch, and
// the not-found failure for a missing branch.
func TestAttach(t *testing.T) {
	dir := setupTestRepo(t)
	m := newTestManager(t, dir)

	runTestGit(t, dir, "branch", "existing")

	result, err := m.Attach("existing")
	require.NoError(t, err)

	branch := strings.TrimSpace(runTestGit(t, result.Path, "branch", "--show-current"))
	assert.Equal(t, "existing", branch)

	_, err = m.Attach("missing")
	require.Error(t, err)

	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.ExitNotFound, cliErr.Code)
}

// TestListAndManaged verifies the porcelain listing through a real git
// invocation: the full listing includes the main worktree, the managed
// listing only the entries under the container directory.
func TestListAndManaged(t *testing.T) {
	dir := setupTestRepo(t)
	m := newTestManager(t, dir)

	_, err := m.Create("wt-1")
	require.NoError(t, err)
	_, err = m.Create("wt-2")
	require.NoError(t, err)

	all, err := m.List()
	require.NoError(t, err)
	assert.Len(t, all, 3, "main worktree + 2 managed")

	managed, err := m.Managed()
	require.NoError(t, err)
	require.Len(t, managed, 2)
	for _, wt := range managed {
		assert.NotEmpty(t, wt.HEAD)
		assert.Contains(t, []string{"wt-1", "wt-2"}, wt.Name())
		assert.Equal(t, wt.Name(), wt.Branch)
	}

	names, err := m.Names()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"wt-1", "wt-2"}, names)
}

// TestManagedEmpty verifies zero managed worktrees yields an empty
// result, not an error.
func TestManagedEmpty(t *testing.T) {
	dir := setupTestRepo(t)
	m := newTestManager(t, dir)

	managed, err := m.Managed()
	require.NoError(t, err)
	assert.Empty(t, managed)
}

// TestCurrent verifies current-worktree detection: a managed worktree
// resolves to its record, the main repository and plain directories
// report not-in-a-worktree.
func TestCurrent(t *testing.T) {
	dir := setupTestRepo(t)
	m := newTestManager(t, dir)

	result, err := m.Create("feature-x")
	require.NoError(t, err)

	wt, ok := m.Current(result.Path)
	require.True(t, ok)
	assert.Equal(t, "feature-x", wt.Name())

	_, ok = m.Current(dir)
	assert.False(t, ok, "the main repository root is not a managed worktree")

	_, ok = m.Current(t.TempDir())
	assert.False(t, ok, "detection failures report not-in-a-worktree")
}

// TestCurrentDetached verifies a detached-HEAD worktree is reported the
// same as not being in a worktree at all.
func TestCurrentDetached(t *testing.T) {
	dir := setupTestRepo(t)
	m := newTestManager(t, dir)

	result, err := m.Create("feature-x")
	require.NoError(t, err)
	runTestGit(t, result.Path, "checkout", "--detach")

	_, ok := m.Current(result.Path)
	assert.False(t, ok)
}

// TestDeleteClean verifies deleting a clean worktree without force:
// the directory, the git registration and the branch all go away, and
// the message has no warning line.
func TestDeleteClean(t *testing.T) {
	dir := setupTestRepo(t)
	m := newTestManager(t, dir)

	result, err := m.Create("to-remove")
	require.NoError(t, err)

	deletion, err := m.Delete("to-remove", false)
	require.NoError(t, err)
	assert.Equal(t, "Deleted worktree 'to-remove' and its branch 'to-remove'", deletion.Message)
	assert.False(t, deletion.HadUncommittedChanges)
	assert.Zero(t, deletion.ChangedFiles)

	_, statErr := os.Stat(result.Path)
	assert.True(t, os.IsNotExist(statErr))

	branches := runTestGit(t, dir, "branch", "--list", "to-remove")
	assert.Empty(t, strings.TrimSpace(branches), "branch should be deleted with the worktree")
}

// TestDeleteNotFound verifies deleting a nonexistent worktree reports
// not-found and performs no git mutation.
func TestDeleteNotFound(t *testing.T) {
	dir := setupTestRepo(t)
	m := newTestManager(t, dir)

	_, err := m.Delete("ghost", false)
	require.Error(t, err)

	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.ExitNotFound, cliErr.Code)
}

// TestDeleteDirtyWithoutForce verifies the refusal on uncommitted
// changes, including the exact changed-file count in the message.
func TestDeleteDirtyWithoutForce(t *testing.T) {
	dir := setupTestRepo(t)
	m := newTestManager(t, dir)

	result, err := m.Create("dirty")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(result.Path, "a.txt"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(result.Path, "b.txt"), []byte("b"), 0o644))

	_, err = m.Delete("dirty", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "(2 files)")
	assert.Contains(t, err.Error(), "--force")

	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.ExitValidationError, cliErr.Code)

	// The refusal must leave the worktree untouched.
	_, statErr := os.Stat(result.Path)
	assert.NoError(t, statErr)
}

// TestDeleteDirtyWithForce verifies forced deletion of a dirty worktree
// succeeds with the warning line prefixed to the standard message.
func TestDeleteDirtyWithForce(t *testing.T) {
	dir := setupTestRepo(t)
	m := newTestManager(t, dir)

	result, err := m.Create("dirty")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(result.Path, "a.txt"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(result.Path, "b.txt"), []byte("b"), 0o644))

	deletion, err := m.Delete("dirty", true)
	require.NoError(t, err)
	assert.True(t, deletion.HadUncommittedChanges)
	assert.Equal(t, 2, deletion.ChangedFiles)
	assert.True(t, strings.HasPrefix(deletion.Message,
		"Warning: Worktree 'dirty' had uncommitted changes (2 files)"))
	assert.Contains(t, deletion.Message, "Deleted worktree 'dirty' and its branch 'dirty'")

	_, statErr := os.Stat(result.Path)
	assert.True(t, os.IsNotExist(statErr))
}

// TestDeleteLockedWorktree verifies the both-attempts-fail path: git
// refuses to remove a locked worktree even with a single --force, so
// the deletion reports failure and the branch-delete step is never
// reached.
func TestDeleteLockedWorktree(t *testing.T) {
	dir := setupTestRepo(t)
	m := newTestManager(t, dir)

	result, err := m.Create("locked-wt")
	require.NoError(t, err)
	runTestGit(t, dir, "worktree", "lock", result.Path)

	_, err = m.Delete("locked-wt", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to remove worktree 'locked-wt'")

	// The worktree and its branch must both survive the failed deletion.
	_, statErr := os.Stat(result.Path)
	assert.NoError(t, statErr)
	branches := runTestGit(t, dir, "branch", "--list", "locked-wt")
	assert.NotEmpty(t, strings.TrimSpace(branches))
}
