// Package testhelpers provides testing utilities for the svn-rebase CLI,
// including a scene system, a fake svn binary, and custom assertions.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Must is a generic helper function that panics if err is not nil,
// otherwise returns the value. This is useful for test setup code
// where errors are not expected and should halt execution immediately.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// ExpectExitCode asserts the exit code and shows the output when it differs
func ExpectExitCode(t *testing.T, expected, actual int, output string) {
	t.Helper()
	require.Equal(t, expected, actual, "unexpected exit code, output:\n%s", output)
}

// ExpectSubcommands asserts the svn subcommands, in order, that were invoked
// since the last reset. Only the first word of each invocation is compared.
func ExpectSubcommands(t *testing.T, svn *FakeSvn, expected []string) {
	t.Helper()

	var actual []string
	for _, call := range svn.Calls() {
		actual = append(actual, strings.SplitN(call, " ", 2)[0])
	}
	require.Equal(t, expected, actual, "svn invocations do not match: %v", svn.Calls())
}
