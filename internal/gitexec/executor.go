// Package gitexec runs the git binary and normalizes its outcomes.
//
// All higher-level worktree operations go through Run/RunIn. Commands are
// always invoked with an argument vector — never an unparsed shell string —
// so worktree names and paths cannot be interpreted by a shell.
//
// Error policy: git subcommands frequently exit non-zero for valid,
// non-error conditions (diff-style queries in particular). A non-zero exit
// is therefore only treated as a hard failure when git wrote something to
// stderr; a silent non-zero exit is returned as a soft success with the
// captured output. Getting this asymmetry backward causes either false
// failures or silently swallowed real errors, so it is covered by tests.
package gitexec

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/shuymn/phantom/internal/model"
)

// Result holds the captured output of a git invocation, trimmed of
// trailing whitespace.
type Result struct {
	Stdout string
	Stderr string
}

// Run executes git with the given arguments in the current directory.
func Run(args ...string) (Result, error) {
	return RunIn("", args...)
}

// RunIn executes git with the given arguments, with dir as the working
// directory (empty means the process's current directory).
//
// On a zero exit it returns the trimmed stdout/stderr. On a non-zero exit
// it applies the stderr policy described in the package comment: non-empty
// stderr surfaces as a CLIError carrying git's own message, empty stderr
// is returned as a soft success.
func RunIn(dir string, args ...string) (Result, error) {
	// #nosec G204 — args are constructed internally, not from user input
	cmd := exec.Command("git", args...)
	cmd.Dir = dir

	// Capture stdout and stderr separately: the error policy depends on
	// whether the stderr channel is empty.
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{
		Stdout: strings.TrimRight(stdout.String(), " \t\r\n"),
		Stderr: strings.TrimRight(stderr.String(), " \t\r\n"),
	}
	if err == nil {
		return res, nil
	}

	if _, ok := err.(*exec.ExitError); ok {
		if res.Stderr == "" {
			// Silent non-zero exit: a valid condition for diff-like
			// queries, not an error.
			return res, nil
		}
		return res, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("git %s failed: %s", strings.Join(args, " "), res.Stderr), err)
	}

	// git could not be started at all (not installed, not executable).
	return res, model.WrapCLIError(model.ExitGeneralError, "failed to run git", err)
}
