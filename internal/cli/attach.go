package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/shuymn/phantom/internal/config"
	"github.com/shuymn/phantom/internal/launcher"
)

// attachFlags holds the flag values for the attach command.
type attachFlags struct {
	shell   bool
	execCmd string
}

// NewAttachCommand creates the "attach" cobra command — the create
// variant that checks out an existing branch instead of creating one.
func NewAttachCommand() *cobra.Command {
	flags := &attachFlags{}

	cmd := &cobra.Command{
		Use:   "attach <branch>",
		Short: "Create a worktree for an existing branch",
		Long: `Create a worktree checking out an existing local branch. The worktree
is named after the branch. Post-create actions from the configuration
run the same way as for create.

Examples:
  phantom attach feature-x
  phantom attach feature-x --shell`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runAttach(args[0], flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.shell, "shell", "s", false, "Open a shell in the new worktree")
	cmd.Flags().StringVarP(&flags.execCmd, "exec", "x", "", "Run a command in the new worktree")

	return cmd
}

func runAttach(branch string, flags *attachFlags) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	result, err := s.mgr.Attach(branch)
	if err != nil {
		return err
	}

	env := launcher.WorktreeEnv(os.Environ(), result.Name, result.Path)

	if _, err := config.CopyFiles(s.mgr.Root(), result.Path, s.cfg.PostCreate.CopyFiles); err != nil {
		return err
	}

	fmt.Printf("Created worktree '%s' at %s\n", result.Name, result.Path)

	if err := runHookCommands(s.cfg.PostCreate.Commands, result.Path, env); err != nil {
		log.Warn("post-create command failed", "error", err)
	}

	switch {
	case flags.shell:
		return enterShell(result.Name, result.Path, env)
	case flags.execCmd != "":
		return runHookCommands([]string{flags.execCmd}, result.Path, env)
	}
	return nil
}
