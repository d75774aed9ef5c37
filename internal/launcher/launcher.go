// Package launcher spawns interactive processes inside a worktree.
//
// A launch is a single blocking call: spawn the child, let it inherit the
// controlling terminal, and await its termination. The result is a tagged
// outcome of either a normal exit code or a signal death reported with the
// conventional 128+signal code. There is no internal cancellation or
// timeout — interrupting the parent interrupts the foreground child via
// normal process-group signal propagation.
//
// The environment is an explicit input rather than ambient process state,
// so launches can be tested with a synthetic environment.
package launcher

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/shuymn/phantom/internal/model"
)

// Environment variables injected into every process entered through a
// worktree, identifying the active worktree on top of the parent's
// full environment.
const (
	EnvWorktreeName = "PHANTOM_NAME"
	EnvWorktreePath = "PHANTOM_PATH"
)

// Spec describes a process to launch.
type Spec struct {
	// Command is the program to run; Args are its arguments.
	Command string
	Args    []string

	// Dir is the working directory for the child.
	Dir string

	// Env is the complete environment for the child, typically built
	// with WorktreeEnv. Nil inherits the parent's environment as-is.
	Env []string

	// Stdin, Stdout and Stderr override the child's standard streams.
	// Nil values inherit the parent's streams, which is how interactive
	// shells get the controlling terminal.
	Stdin          io.Reader
	Stdout, Stderr io.Writer
}

// Outcome is the tagged termination result of a launched process.
type Outcome struct {
	// ExitCode is the child's exit code; for a signal death it is
	// 128+signal (e.g. 143 for SIGTERM).
	ExitCode int

	// Signaled reports whether the child was terminated by a signal.
	Signaled bool

	// Signal is the terminating signal when Signaled is set.
	Signal syscall.Signal
}

// Run spawns the process described by spec and blocks until it
// terminates. A child that ran and exited non-zero (or died from a
// signal) is a valid Outcome, not an error; errors are reserved for
// failures to start the process at all.
func Run(spec Spec) (Outcome, error) {
	// #nosec G204 — the command comes from the user's own CLI input
	cmd := exec.Command(spec.Command, spec.Args...)
	cmd.Dir = spec.Dir
	cmd.Env = spec.Env

	cmd.Stdin = os.Stdin
	if spec.Stdin != nil {
		cmd.Stdin = spec.Stdin
	}
	cmd.Stdout = os.Stdout
	if spec.Stdout != nil {
		cmd.Stdout = spec.Stdout
	}
	cmd.Stderr = os.Stderr
	if spec.Stderr != nil {
		cmd.Stderr = spec.Stderr
	}

	err := cmd.Run()
	if err == nil {
		return Outcome{ExitCode: 0}, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
			sig := status.Signal()
			return Outcome{ExitCode: 128 + int(sig), Signaled: true, Signal: sig}, nil
		}
		return Outcome{ExitCode: exitErr.ExitCode()}, nil
	}

	return Outcome{}, model.WrapCLIError(model.ExitGeneralError,
		"failed to start '"+spec.Command+"'", err)
}

// WorktreeEnv returns base extended with the worktree identification
// variables. Existing values for the two keys are replaced rather than
// shadowed.
func WorktreeEnv(base []string, name, path string) []string {
	env := make([]string, 0, len(base)+2)
	for _, kv := range base {
		if strings.HasPrefix(kv, EnvWorktreeName+"=") || strings.HasPrefix(kv, EnvWorktreePath+"=") {
			continue
		}
		env = append(env, kv)
	}
	return append(env, EnvWorktreeName+"="+name, EnvWorktreePath+"="+path)
}

// ShellCommand returns the user's shell from the given environment,
// falling back to /bin/sh when SHELL is unset or empty.
func ShellCommand(env []string) string {
	for _, kv := range env {
		if v, ok := strings.CutPrefix(kv, "SHELL="); ok && v != "" {
			return v
		}
	}
	return "/bin/sh"
}
