package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shuymn/phantom/internal/model"
)

// whereFlags holds the flag values for the where command.
type whereFlags struct {
	current bool
}

// NewWhereCommand creates the "where" cobra command.
func NewWhereCommand() *cobra.Command {
	flags := &whereFlags{}

	cmd := &cobra.Command{
		Use:   "where [name]",
		Short: "Print the path of a worktree",
		Long: `Print the absolute path of a worktree, for use in command substitution:

  cd $(phantom where feature-x)

--current prints the path of the worktree containing the current
directory, and fails when run outside a managed worktree.`,

		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: worktreeNameCompletion,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhere(args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.current, "current", false, "Print the current worktree's path")

	return cmd
}

func runWhere(args []string, flags *whereFlags) error {
	if len(args) > 0 && flags.current {
		return model.NewCLIError(model.ExitValidationError,
			"cannot use both a worktree name and --current")
	}
	if len(args) == 0 && !flags.current {
		return model.NewCLIError(model.ExitValidationError,
			"a worktree name or --current is required")
	}

	s, err := newSession()
	if err != nil {
		return err
	}

	if flags.current {
		wt, ok := s.mgr.Current(s.cwd)
		if !ok {
			return model.NewCLIError(model.ExitValidationError, "not inside a worktree")
		}
		fmt.Println(wt.Path)
		return nil
	}

	path, err := s.requirePath(args[0])
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}
