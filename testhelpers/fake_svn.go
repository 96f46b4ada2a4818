package testhelpers

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const fakeSvnScript = `#!/bin/sh
dir="$(dirname "$0")"
printf '%s\n' "$*" >> "$dir/calls.log"
case "$1" in
info) cat "$dir/info.xml" ;;
status) cat "$dir/status.xml" ;;
log)
	if [ "$3" = "-v" ]; then
		cat "$dir/rev-$5.xml" 2>/dev/null || exit 1
	else
		cat "$dir/log.xml"
	fi
	;;
*)
	if [ -f "$dir/fail-$1" ]; then
		cat "$dir/fail-$1"
		exit 1
	fi
	echo "fake svn $1 ok"
	;;
esac
`

// FakeSvn is a shell script standing in for the svn binary. It serves XML
// fixtures for queries, succeeds for every other command unless told to fail,
// and records each invocation.
type FakeSvn struct {
	t   *testing.T
	Dir string
	// Path is the script to point SVN_REBASE_SVN at
	Path string
}

// NewFakeSvn writes the script into a fresh temp directory
func NewFakeSvn(t *testing.T) *FakeSvn {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake svn needs a POSIX shell")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "svn")
	//nolint:gosec // the fake must be executable
	require.NoError(t, os.WriteFile(path, []byte(fakeSvnScript), 0755))

	f := &FakeSvn{t: t, Dir: dir, Path: path}
	f.SetStatus(StatusXML())
	return f
}

func (f *FakeSvn) write(name, content string) {
	f.t.Helper()
	require.NoError(f.t, os.WriteFile(filepath.Join(f.Dir, name), []byte(content), 0644))
}

// SetInfo sets the `svn info --xml` report
func (f *FakeSvn) SetInfo(xml string) { f.write("info.xml", xml) }

// SetStatus sets the `svn status --xml` report
func (f *FakeSvn) SetStatus(xml string) { f.write("status.xml", xml) }

// SetLog sets the `svn log --xml --stop-on-copy` report
func (f *FakeSvn) SetLog(xml string) { f.write("log.xml", xml) }

// SetRevision sets the `svn log --xml -v -r N` report for one revision
func (f *FakeSvn) SetRevision(revision int, xml string) {
	f.write("rev-"+strconv.Itoa(revision)+".xml", xml)
}

// FailSubcommand makes every invocation of subcommand print output and exit 1
func (f *FakeSvn) FailSubcommand(subcommand, output string) {
	f.write("fail-"+subcommand, output+"\n")
}

// HealSubcommand undoes FailSubcommand
func (f *FakeSvn) HealSubcommand(subcommand string) {
	f.t.Helper()
	require.NoError(f.t, os.Remove(filepath.Join(f.Dir, "fail-"+subcommand)))
}

// Calls returns the recorded argument lists, one line per invocation
func (f *FakeSvn) Calls() []string {
	f.t.Helper()
	data, err := os.ReadFile(filepath.Join(f.Dir, "calls.log"))
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(f.t, err)
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

// ResetCalls forgets the recorded invocations
func (f *FakeSvn) ResetCalls() {
	f.t.Helper()
	err := os.Remove(filepath.Join(f.Dir, "calls.log"))
	if err != nil && !os.IsNotExist(err) {
		require.NoError(f.t, err)
	}
}
