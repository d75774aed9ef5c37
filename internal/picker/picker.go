// Package picker provides interactive, filterable selection of a
// worktree. It is a thin wrapper over charmbracelet/huh's select field;
// the "no selection" outcome (user aborted) is a distinct signal so
// callers can cancel quietly instead of reporting an error.
package picker

import (
	"errors"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/shuymn/phantom/internal/model"
)

// ErrNoSelection is returned when the user aborts the picker without
// choosing a worktree.
var ErrNoSelection = errors.New("no worktree selected")

// Pick presents a filterable list of worktree names and returns the
// chosen one. It fails with a validation error when no worktrees exist
// or when the process has no terminal to run the picker on.
func Pick(names []string, title string) (string, error) {
	if len(names) == 0 {
		return "", model.NewCLIError(model.ExitValidationError, "no worktrees found")
	}
	if !interactive() {
		return "", model.NewCLIError(model.ExitValidationError,
			"interactive selection requires a terminal")
	}

	var selected string
	sel := huh.NewSelect[string]().
		Title(title).
		Options(huh.NewOptions(names...)...).
		Filtering(true).
		Value(&selected)

	if err := huh.NewForm(huh.NewGroup(sel)).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrNoSelection
		}
		return "", model.WrapCLIError(model.ExitGeneralError, "selection failed", err)
	}
	return selected, nil
}

func interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
