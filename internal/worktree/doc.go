// Package worktree implements the Git worktree lifecycle: discovery of the
// repository, deterministic path resolution, porcelain-format listing,
// current-worktree detection, creation and deletion.
//
// Design decisions:
//   - We shell out to `git` (via internal/gitexec) rather than using a Go
//     Git library because worktree operations require full Git CLI
//     compatibility, and in-process implementations lag behind on them.
//   - Managed worktrees live under <git-common-dir>/<namespace>/worktrees,
//     so a worktree's on-disk path is a pure function of repository root
//     and worktree name. The base directory can be relocated via
//     configuration, but never per-worktree.
//   - All state of record belongs to Git. This package performs no
//     bookkeeping of its own beyond creating the container directory.
package worktree
