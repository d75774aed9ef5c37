package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/shuymn/phantom/internal/config"
	"github.com/shuymn/phantom/internal/launcher"
)

// createFlags holds the flag values for the create command.
type createFlags struct {
	placement placementFlags
	shell     bool
	execCmd   string
	copyFiles []string
}

// NewCreateCommand creates the "create" cobra command.
func NewCreateCommand() *cobra.Command {
	flags := &createFlags{}

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new worktree on a new branch",
		Long: `Create a new worktree under the repository's worktree directory,
on a new branch named after the worktree, rooted at the current HEAD.

Post-create actions from phantom.config.json (copied files, commands)
run inside the new worktree. The worktree can be entered immediately
with --shell or --exec, or placed into a tmux/kitty pane.

Examples:
  phantom create feature-x
  phantom create feature-x --shell
  phantom create feature-x --exec "code ."
  phantom create feature-x --tmux-vertical
  phantom create feature-x --copy-file .env`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(args[0], flags)
		},
	}

	flags.placement.register(cmd)
	cmd.Flags().BoolVarP(&flags.shell, "shell", "s", false, "Open a shell in the new worktree")
	cmd.Flags().StringVarP(&flags.execCmd, "exec", "x", "", "Run a command in the new worktree")
	cmd.Flags().StringArrayVar(&flags.copyFiles, "copy-file", nil, "Copy a file from the current worktree (repeatable)")

	return cmd
}

// runCreate orchestrates worktree creation: the Git worktree itself,
// the post-create hooks, and the optional entry into the new worktree.
func runCreate(name string, flags *createFlags) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	pl, err := flags.placement.resolve(os.Environ(), s.cfg.DefaultMultiplexerDirection)
	if err != nil {
		return err
	}

	result, err := s.mgr.Create(name)
	if err != nil {
		return err
	}
	log.Debug("worktree created", "name", result.Name, "path", result.Path)

	env := launcher.WorktreeEnv(os.Environ(), result.Name, result.Path)

	// Post-create bootstrap: configured files first, then --copy-file
	// additions, then the configured commands.
	files := append(append([]string{}, s.cfg.PostCreate.CopyFiles...), flags.copyFiles...)
	copied, err := config.CopyFiles(s.mgr.Root(), result.Path, files)
	if err != nil {
		return err
	}
	for _, f := range copied {
		log.Debug("copied file", "file", f)
	}

	fmt.Printf("Created worktree '%s' at %s\n", result.Name, result.Path)

	if err := runHookCommands(s.cfg.PostCreate.Commands, result.Path, env); err != nil {
		// The worktree exists at this point; a broken hook is reported
		// but does not roll the creation back.
		log.Warn("post-create command failed", "error", err)
	}

	switch {
	case pl != nil:
		return spawnShellPane(pl, result.Name, result.Path)
	case flags.shell:
		return enterShell(result.Name, result.Path, env)
	case flags.execCmd != "":
		return runHookCommands([]string{flags.execCmd}, result.Path, env)
	}
	return nil
}
