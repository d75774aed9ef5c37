package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/shuymn/phantom/internal/launcher"
	"github.com/shuymn/phantom/internal/model"
)

// deleteFlags holds the flag values for the delete command.
type deleteFlags struct {
	current bool
	fzf     bool
	force   bool
}

// NewDeleteCommand creates the "delete" cobra command.
func NewDeleteCommand() *cobra.Command {
	flags := &deleteFlags{}

	cmd := &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a worktree and its branch",
		Long: `Delete a worktree and, best-effort, the branch checked out in it.

A worktree with uncommitted changes is refused unless --force is given;
the refusal names the number of changed files. Pre-delete commands from
phantom.config.json run inside the worktree before it is removed.

Examples:
  phantom delete feature-x
  phantom delete feature-x --force
  phantom delete --current
  phantom delete --fzf`,

		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: worktreeNameCompletion,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.current, "current", false, "Delete the worktree containing the current directory")
	cmd.Flags().BoolVar(&flags.fzf, "fzf", false, "Select the worktree interactively")
	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Delete even with uncommitted changes")

	return cmd
}

func runDelete(args []string, flags *deleteFlags) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	name, err := s.deleteTarget(args, flags)
	if err != nil {
		return err
	}
	if name == "" {
		return nil
	}

	// Pre-delete hooks run inside the doomed worktree while it still
	// exists. A failing hook aborts the deletion unless forced.
	if s.mgr.Has(name) && len(s.cfg.PreDelete.Commands) > 0 {
		path := s.mgr.PathFor(name)
		env := launcher.WorktreeEnv(os.Environ(), name, path)
		if err := runHookCommands(s.cfg.PreDelete.Commands, path, env); err != nil {
			if !flags.force {
				return err
			}
			log.Warn("pre-delete command failed, continuing because of --force", "error", err)
		}
	}

	result, err := s.mgr.Delete(name, flags.force)
	if err != nil {
		return err
	}

	fmt.Println(result.Message)
	return nil
}

// deleteTarget resolves which worktree to delete from the positional
// argument, --current, or --fzf. Exactly one source must be used.
func (s *session) deleteTarget(args []string, flags *deleteFlags) (string, error) {
	sources := 0
	if len(args) > 0 {
		sources++
	}
	if flags.current {
		sources++
	}
	if flags.fzf {
		sources++
	}
	if sources != 1 {
		return "", model.NewCLIError(model.ExitValidationError,
			"exactly one of a worktree name, --current or --fzf is required")
	}

	switch {
	case len(args) > 0:
		return args[0], nil
	case flags.current:
		wt, ok := s.mgr.Current(s.cwd)
		if !ok {
			return "", model.NewCLIError(model.ExitValidationError, "not inside a worktree")
		}
		return wt.Name(), nil
	default:
		return s.targetName(nil, true, "Select a worktree to delete")
	}
}
