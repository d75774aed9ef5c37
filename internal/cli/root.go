// Package cli implements the cobra-based CLI commands for phantom.
//
// Each subcommand (create, attach, list, where, delete, shell, exec) is
// defined in its own file within this package. This file defines the root
// command that serves as the parent for all subcommands and handles the
// global flags and exit-code translation.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/shuymn/phantom/internal/model"
)

// verbose enables debug logging output. It is bound to a persistent flag
// on the root command, which makes it available to every subcommand.
var verbose bool

// Version, Commit and Date are set at build time via ldflags. They are
// injected from the main package to display version information.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
// This is the entry point for the entire CLI application.
//
// The root command itself does not perform any action — it provides help
// text, the global flags, and shell completion for the subcommands.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "phantom",
		Short: "Ephemeral Git worktree manager",
		Long: `phantom manages isolated Git worktrees under your repository's metadata
directory, so you can work on several branches at once without stashing
or switching.

Worktrees are created under .git/phantom/worktrees, entered with an
interactive shell or a one-off command, and placed into tmux or kitty
panes when you are inside a multiplexer.`,

		// SilenceUsage prevents cobra from printing usage on every error.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically;
		// Execute formats them and picks the exit code.
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetReportTimestamp(false)
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(NewCreateCommand())
	rootCmd.AddCommand(NewAttachCommand())
	rootCmd.AddCommand(NewListCommand())
	rootCmd.AddCommand(NewWhereCommand())
	rootCmd.AddCommand(NewDeleteCommand())
	rootCmd.AddCommand(NewShellCommand())
	rootCmd.AddCommand(NewExecCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// Structured failures carry their own exit codes: CLIError maps its code
// and prints the message, ExitError propagates a child process's exit
// code without printing anything (the child already owned the terminal).
// Anything else is a general failure.
func Execute(rootCmd *cobra.Command) {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	var exitErr *model.ExitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.Code)
	}

	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		fmt.Fprintf(os.Stderr, "Error: %s\n", cliErr.Error())
		os.Exit(int(cliErr.Code))
	}

	fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
	os.Exit(int(model.ExitGeneralError))
}
