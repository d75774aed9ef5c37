// Package model defines the domain types and value objects for the
// phantom CLI.
//
// This package contains pure data structures with no external dependencies.
// The Worktree record is a transient view over Git-owned state, reconstructed
// from `git worktree list --porcelain` on every listing call — there are no
// persistent state files.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
