// Package errors provides sentinel errors and custom error types for svn-rebase.
// Every fatal condition carries a stable process exit code; use ExitCode to map
// any error chain to it. Use errors.Is() and errors.As() to check for specific types.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Exit codes reported by the svn-rebase binary. Automation may branch on them.
const (
	ExitOK               = 0
	ExitParseFailure     = 1
	ExitLocalChanges     = 2
	ExitStaleWorkingCopy = 3
	ExitPlanExists       = 4
	ExitPlanMissing      = 5
	ExitStepFailed       = 6
)

// Sentinel errors for common conditions
var (
	// ErrNoHistory indicates the branch has no commits to replay. It is a
	// terminal success, not a failure.
	ErrNoHistory = errors.New("no commits to this branch in svn log")

	// ErrPlanNotFound indicates that no plan file exists at the plan path
	ErrPlanNotFound = errors.New("plan file not found")

	// ErrPlanLocked indicates that another process holds the plan file lock
	ErrPlanLocked = errors.New("plan file is locked by another process")

	// ErrLocalChanges indicates the working copy has local modifications
	ErrLocalChanges = errors.New("local changes in working copy")

	// ErrStaleWorkingCopy indicates the working copy is older than the history to replay
	ErrStaleWorkingCopy = errors.New("working copy is out of date")

	// ErrPlanExists indicates a plan is already persisted at the plan path
	ErrPlanExists = errors.New("plan file already exists")
)

// QueryParseError represents a report (svn xml output or plan file) that could not
// be obtained or decoded.
type QueryParseError struct {
	Source string
	Err    error
}

func (e *QueryParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Source, e.Err)
}

func (e *QueryParseError) Unwrap() error {
	return e.Err
}

// NewQueryParseError creates a new QueryParseError
func NewQueryParseError(source string, err error) *QueryParseError {
	return &QueryParseError{Source: source, Err: err}
}

// PreconditionError represents a check that failed before any mutating action
type PreconditionError struct {
	Code    int
	Message string
	Err     error
}

func (e *PreconditionError) Error() string {
	return e.Message
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

// NewLocalChangesError creates the error for a working copy with local modifications
func NewLocalChangesError() *PreconditionError {
	return &PreconditionError{
		Code:    ExitLocalChanges,
		Message: "There are local changes in the working copy. Make sure that `svn status` does not show anything, and run again.",
		Err:     ErrLocalChanges,
	}
}

// NewStaleWorkingCopyError creates the error for a working copy older than the last changeset
func NewStaleWorkingCopyError(wcRevision, lastRevision int, url string) *PreconditionError {
	return &PreconditionError{
		Code: ExitStaleWorkingCopy,
		Message: fmt.Sprintf("Revision of the working copy (%d) is lower than the last changeset (%d) for the url (%s). Perform `svn update`, and run again.",
			wcRevision, lastRevision, url),
		Err: ErrStaleWorkingCopy,
	}
}

// NewPlanExistsError creates the error for a plan file that is already present
func NewPlanExistsError(path string) *PreconditionError {
	return &PreconditionError{
		Code: ExitPlanExists,
		Message: fmt.Sprintf("The plan file %s already exists. If you like that plan, run again with --continue, otherwise delete the file, and run again.",
			path),
		Err: ErrPlanExists,
	}
}

// NewPlanMissingError creates the error for --continue without a plan file
func NewPlanMissingError(path string) *PreconditionError {
	return &PreconditionError{
		Code: ExitPlanMissing,
		Message: fmt.Sprintf("The plan file %s does not exist. You can specify a different filename using --plan option, or run without --continue to create a plan.",
			path),
		Err: ErrPlanNotFound,
	}
}

// StepExecutionError represents a plan step whose command exited non-zero
type StepExecutionError struct {
	Index    int
	Comment  string
	Command  string
	ExitCode int
	Output   []string
	Err      error
}

func (e *StepExecutionError) Error() string {
	msg := fmt.Sprintf("Non-zero exit code %d. User intervention required. Once you fix the problem, run again with --continue", e.ExitCode)
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *StepExecutionError) Unwrap() error {
	return e.Err
}

// OutputText returns the captured output joined by newlines
func (e *StepExecutionError) OutputText() string {
	return strings.Join(e.Output, "\n")
}

// SvnCommandError represents an error from an svn query execution
type SvnCommandError struct {
	Args   []string
	Stdout string
	Stderr string
	Err    error
}

func (e *SvnCommandError) Error() string {
	msg := "svn command failed"
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(": %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *SvnCommandError) Unwrap() error {
	return e.Err
}

// NewSvnCommandError creates a new SvnCommandError
func NewSvnCommandError(args []string, stdout, stderr string, err error) *SvnCommandError {
	return &SvnCommandError{
		Args:   args,
		Stdout: stdout,
		Stderr: stderr,
		Err:    err,
	}
}

// ExitCode maps an error chain to the process exit code for it.
// A nil error and ErrNoHistory both map to ExitOK.
func ExitCode(err error) int {
	if err == nil || errors.Is(err, ErrNoHistory) {
		return ExitOK
	}

	var stepErr *StepExecutionError
	if errors.As(err, &stepErr) {
		return ExitStepFailed
	}

	var preErr *PreconditionError
	if errors.As(err, &preErr) {
		return preErr.Code
	}

	return ExitParseFailure
}
