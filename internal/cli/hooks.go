package cli

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/shuymn/phantom/internal/launcher"
	"github.com/shuymn/phantom/internal/model"
)

// runHookCommands executes configured hook command lines sequentially in
// dir, each through `sh -c` with the worktree environment. The child
// inherits the terminal, so hook output is visible as it happens. The
// first failing command stops the run and is returned as an error.
func runHookCommands(commands []string, dir string, env []string) error {
	for _, command := range commands {
		log.Debug("running hook command", "command", command, "dir", dir)
		outcome, err := launcher.Run(launcher.Spec{
			Command: "/bin/sh",
			Args:    []string{"-c", command},
			Dir:     dir,
			Env:     env,
		})
		if err != nil {
			return err
		}
		if outcome.ExitCode != 0 {
			return model.NewCLIError(model.ExitGeneralError,
				fmt.Sprintf("hook command failed with exit code %d: %s", outcome.ExitCode, command))
		}
	}
	return nil
}
