package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shuymn/phantom/internal/model"
	"github.com/shuymn/phantom/internal/picker"
)

// listFlags holds the flag values for the list command.
type listFlags struct {
	names bool
	fzf   bool
}

// NewListCommand creates the "list" cobra command.
func NewListCommand() *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List worktrees",
		Long: `List the managed worktrees with their branch and HEAD commit.
The worktree containing the current directory is marked with *.

--names prints bare names, one per line, for scripting and shell
completion. --fzf opens the interactive picker and prints the chosen
name.

Examples:
  phantom list
  phantom list --names
  phantom list --fzf`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(flags)
		},
	}

	cmd.Flags().BoolVar(&flags.names, "names", false, "Print worktree names only")
	cmd.Flags().BoolVar(&flags.fzf, "fzf", false, "Select a worktree interactively and print its name")

	return cmd
}

func runList(flags *listFlags) error {
	if flags.names && flags.fzf {
		return model.NewCLIError(model.ExitValidationError, "cannot use both --names and --fzf")
	}

	s, err := newSession()
	if err != nil {
		return err
	}

	worktrees, err := s.mgr.Managed()
	if err != nil {
		return err
	}

	if flags.fzf {
		names := make([]string, 0, len(worktrees))
		for _, wt := range worktrees {
			names = append(names, wt.Name())
		}
		name, err := picker.Pick(names, "Select a worktree")
		if errors.Is(err, picker.ErrNoSelection) {
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Println(name)
		return nil
	}

	if len(worktrees) == 0 {
		if !flags.names {
			fmt.Println("No worktrees found")
		}
		return nil
	}

	if flags.names {
		for _, wt := range worktrees {
			fmt.Println(wt.Name())
		}
		return nil
	}

	current, inWorktree := s.mgr.Current(s.cwd)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, wt := range worktrees {
		marker := " "
		if inWorktree && wt.Path == current.Path {
			marker = "*"
		}

		var notes []string
		if wt.IsLocked {
			notes = append(notes, "locked")
		}
		if wt.IsPrunable {
			notes = append(notes, "prunable")
		}
		note := ""
		if len(notes) > 0 {
			note = "(" + strings.Join(notes, ", ") + ")"
		}

		fmt.Fprintf(w, "%s %s\t%s\t%s\t%s\n", marker, wt.Name(), wt.Branch, shortHEAD(wt.HEAD), note)
	}
	return w.Flush()
}

// shortHEAD abbreviates a commit SHA for display.
func shortHEAD(head string) string {
	if len(head) > 8 {
		return head[:8]
	}
	return head
}
