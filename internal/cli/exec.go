package cli

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/shuymn/phantom/internal/launcher"
	"github.com/shuymn/phantom/internal/model"
	"github.com/shuymn/phantom/internal/multiplexer"
)

// execFlags holds the flag values for the exec command.
type execFlags struct {
	placement placementFlags
	fzf       bool
}

// NewExecCommand creates the "exec" cobra command.
func NewExecCommand() *cobra.Command {
	flags := &execFlags{}

	cmd := &cobra.Command{
		Use:   "exec [name] <command> [args...]",
		Short: "Run a command in a worktree",
		Long: `Run an arbitrary command inside a worktree, with PHANTOM_NAME and
PHANTOM_PATH injected into its environment. The command's exit code (or
128+signal when it is killed) becomes phantom's exit code.

With --fzf the worktree is chosen interactively and every argument is
part of the command.

Examples:
  phantom exec feature-x git status
  phantom exec --fzf npm test
  phantom exec feature-x --tmux npm run dev`,

		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: worktreeNameCompletion,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(args, flags)
		},
	}

	// Stop flag parsing at the first positional argument so flags of the
	// executed command are passed through untouched.
	cmd.Flags().SetInterspersed(false)

	flags.placement.register(cmd)
	cmd.Flags().BoolVar(&flags.fzf, "fzf", false, "Select the worktree interactively")

	return cmd
}

func runExec(args []string, flags *execFlags) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	pl, err := flags.placement.resolve(os.Environ(), s.cfg.DefaultMultiplexerDirection)
	if err != nil {
		return err
	}

	name, command, err := splitExecArgs(args, flags.fzf)
	if err != nil {
		return err
	}
	if name == "" && flags.fzf {
		picked, err := s.targetName(nil, true, "Select a worktree to run the command in")
		if err != nil {
			return err
		}
		if picked == "" {
			return nil
		}
		name = picked
	}

	path, err := s.requirePath(name)
	if err != nil {
		return err
	}

	if pl != nil {
		return pl.spawn(multiplexer.Spec{
			Command: command[0],
			Args:    command[1:],
			Dir:     path,
			Env: map[string]string{
				launcher.EnvWorktreeName: name,
				launcher.EnvWorktreePath: path,
			},
			Title: name,
		})
	}

	log.Debug("executing in worktree", "name", name, "command", command[0])
	outcome, err := launcher.Run(launcher.Spec{
		Command: command[0],
		Args:    command[1:],
		Dir:     path,
		Env:     launcher.WorktreeEnv(os.Environ(), name, path),
	})
	if err != nil {
		return err
	}
	if outcome.ExitCode != 0 {
		return &model.ExitError{Code: outcome.ExitCode}
	}
	return nil
}

// splitExecArgs separates the worktree name from the command argument
// vector. With fzf the whole vector is the command and the name comes
// from the picker (returned empty here).
func splitExecArgs(args []string, fzf bool) (name string, command []string, err error) {
	if fzf {
		if len(args) < 1 {
			return "", nil, model.NewCLIError(model.ExitValidationError, "a command is required")
		}
		return "", args, nil
	}
	if len(args) < 2 {
		return "", nil, model.NewCLIError(model.ExitValidationError,
			"a worktree name and a command are required")
	}
	return args[0], args[1:], nil
}
