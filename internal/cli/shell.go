package cli

import (
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/shuymn/phantom/internal/launcher"
	"github.com/shuymn/phantom/internal/model"
	"github.com/shuymn/phantom/internal/multiplexer"
	"github.com/shuymn/phantom/internal/picker"
)

// shellFlags holds the flag values for the shell command.
type shellFlags struct {
	placement placementFlags
	fzf       bool
}

// NewShellCommand creates the "shell" cobra command.
func NewShellCommand() *cobra.Command {
	flags := &shellFlags{}

	cmd := &cobra.Command{
		Use:   "shell [name]",
		Short: "Open an interactive shell in a worktree",
		Long: `Open your shell ($SHELL, falling back to /bin/sh) inside a worktree.
The shell's environment carries PHANTOM_NAME and PHANTOM_PATH identifying
the active worktree. The worktree can be chosen interactively with --fzf,
and the shell can be placed into a tmux/kitty pane instead of the current
terminal.

Examples:
  phantom shell feature-x
  phantom shell --fzf
  phantom shell feature-x --tmux-horizontal`,

		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: worktreeNameCompletion,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(args, flags)
		},
	}

	flags.placement.register(cmd)
	cmd.Flags().BoolVar(&flags.fzf, "fzf", false, "Select the worktree interactively")

	return cmd
}

func runShell(args []string, flags *shellFlags) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	pl, err := flags.placement.resolve(os.Environ(), s.cfg.DefaultMultiplexerDirection)
	if err != nil {
		return err
	}

	name, err := s.targetName(args, flags.fzf, "Select a worktree to open a shell in")
	if err != nil {
		return err
	}
	if name == "" {
		// Interactive selection aborted: cancel quietly.
		return nil
	}

	path, err := s.requirePath(name)
	if err != nil {
		return err
	}

	if pl != nil {
		return spawnShellPane(pl, name, path)
	}
	return enterShell(name, path, launcher.WorktreeEnv(os.Environ(), name, path))
}

// targetName resolves the worktree name from the positional argument or
// the interactive picker. Exactly one source must be used. An aborted
// picker yields "" with a nil error.
func (s *session) targetName(args []string, fzf bool, title string) (string, error) {
	if len(args) > 0 && fzf {
		return "", model.NewCLIError(model.ExitValidationError,
			"cannot use both a worktree name and --fzf")
	}
	if len(args) > 0 {
		return args[0], nil
	}
	if !fzf {
		return "", model.NewCLIError(model.ExitValidationError,
			"a worktree name or --fzf is required")
	}

	name, err := s.pickName(title)
	if errors.Is(err, picker.ErrNoSelection) {
		return "", nil
	}
	return name, err
}

// requirePath maps a worktree name to its path, failing with not-found
// when no such worktree exists.
func (s *session) requirePath(name string) (string, error) {
	if err := model.ValidateName(name); err != nil {
		return "", err
	}
	if !s.mgr.Has(name) {
		return "", model.NewCLIError(model.ExitNotFound, "worktree '"+name+"' not found")
	}
	return s.mgr.PathFor(name), nil
}

// enterShell runs the user's shell in the worktree, blocking until it
// exits, and propagates the shell's exit code.
func enterShell(name, path string, env []string) error {
	shell := launcher.ShellCommand(env)
	log.Debug("entering worktree", "name", name, "shell", shell)

	outcome, err := launcher.Run(launcher.Spec{
		Command: shell,
		Dir:     path,
		Env:     env,
	})
	if err != nil {
		return err
	}
	if outcome.ExitCode != 0 {
		return &model.ExitError{Code: outcome.ExitCode}
	}
	return nil
}

// spawnShellPane opens `phantom shell <name>` in a multiplexer pane, so
// the new pane gets the same entry behavior as a direct shell.
func spawnShellPane(pl *placement, name, path string) error {
	exe, err := os.Executable()
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to locate the phantom binary", err)
	}
	return pl.spawn(multiplexer.Spec{
		Command: exe,
		Args:    []string{"shell", name},
		Dir:     path,
		Env: map[string]string{
			launcher.EnvWorktreeName: name,
			launcher.EnvWorktreePath: path,
		},
		Title: name,
	})
}
