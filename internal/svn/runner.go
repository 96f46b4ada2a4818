package svn

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"

	rebaseerrors "svnrebase.dev/svnrebase/internal/errors"
)

// ExitCodeNotStarted is reported for a step whose command could not be started
const ExitCodeNotStarted = 127

// CommandRunner handles execution of svn commands.
// Unlike queries against a local git repository, svn commands may contact a
// remote server for an unbounded time, so no default timeout is applied.
type CommandRunner struct {
	binary     string
	workingDir string
}

// NewCommandRunner creates a new CommandRunner. An empty binary means "svn" on PATH.
func NewCommandRunner(binary, workingDir string) *CommandRunner {
	if binary == "" {
		binary = "svn"
	}
	return &CommandRunner{binary: binary, workingDir: workingDir}
}

// Binary returns the svn executable used by this runner
func (r *CommandRunner) Binary() string {
	return r.binary
}

// query executes a read-only svn command and returns its stdout
func (r *CommandRunner) query(ctx context.Context, args ...string) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	cmd := exec.CommandContext(ctx, r.binary, args...)
	if r.workingDir != "" {
		cmd.Dir = r.workingDir
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, rebaseerrors.NewSvnCommandError(args, stdout.String(), stderr.String(), err)
	}
	return stdout.Bytes(), nil
}

// Run executes a plan command line and returns its exit code and combined output lines.
// The command is split with shell quoting rules; a leading "svn" is replaced by the
// configured binary. The returned error is non-nil only when the command could not
// be started, in which case the exit code is ExitCodeNotStarted.
//
// A started command is never killed by the runner, even when ctx is canceled: an
// interrupted svn commit must not be left half-done by us. The terminal delivers
// the operator's interrupt to svn directly.
func (r *CommandRunner) Run(ctx context.Context, command string) (int, []string, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return ExitCodeNotStarted, nil, err
		}
	}

	args, err := shellquote.Split(command)
	if err != nil {
		return ExitCodeNotStarted, nil, fmt.Errorf("invalid command %q: %w", command, err)
	}
	if len(args) == 0 {
		return ExitCodeNotStarted, nil, fmt.Errorf("empty command")
	}
	if args[0] == "svn" {
		args[0] = r.binary
	}

	//nolint:gosec // plan commands are built by svn-rebase or edited by the operator
	cmd := exec.Command(args[0], args[1:]...)
	if r.workingDir != "" {
		cmd.Dir = r.workingDir
	}
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	err = cmd.Run()
	lines := splitLines(output.String())
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), lines, nil
		}
		return ExitCodeNotStarted, lines, err
	}
	return 0, lines, nil
}

func splitLines(output string) []string {
	output = strings.TrimRight(output, "\n")
	if output == "" {
		return []string{}
	}
	return strings.Split(output, "\n")
}
