// Package main is the entry point for the phantom CLI.
//
// This binary manages ephemeral Git worktrees under the repository's
// metadata directory. It delegates all functionality to the internal/cli
// package, which defines cobra commands.
package main

import (
	"github.com/shuymn/phantom/internal/cli"
)

// version, commit, and date are set at build time via ldflags. They
// provide binary identification for the --version flag output.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Inject build-time version info into the CLI package. This
	// decouples the build system from the CLI framework, keeping
	// main.go minimal.
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	rootCmd := cli.NewRootCommand()
	cli.Execute(rootCmd)
}
