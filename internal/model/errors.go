package model

import "fmt"

// ExitCode defines the standard CLI exit codes. These codes allow
// scripts and CI systems to programmatically determine the outcome
// of a command.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error: a Git failure,
	// a name collision on create, or any other non-categorized problem.
	ExitGeneralError ExitCode = 1

	// ExitNotFound indicates the named worktree does not exist.
	ExitNotFound ExitCode = 2

	// ExitValidationError indicates missing or contradictory arguments,
	// including a dirty-state refusal when deleting without --force.
	ExitValidationError ExitCode = 3
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

// ExitError carries the bare exit code of a completed child process.
// Unlike CLIError it produces no error output: the child already wrote
// its own diagnostics to the inherited terminal. Signal terminations are
// reported with the conventional 128+signal code (e.g. 143 for SIGTERM).
type ExitError struct {
	// Code is the child's exit code, or 128+signal for signal deaths.
	Code int
}

// Error satisfies the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}
