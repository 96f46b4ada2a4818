package cli_test

import (
	"testing"

	"svnrebase.dev/svnrebase/testhelpers"
)

func TestMain(m *testing.M) {
	testhelpers.TestMain(m, nil)
}

// getBinary returns the path to the pre-built svn-rebase binary.
func getBinary(t *testing.T) string {
	t.Helper()
	binaryPath := testhelpers.GetSharedBinaryPath()
	if binaryPath == "" {
		if err := testhelpers.GetBinaryError(); err != nil {
			t.Fatalf("failed to build svn-rebase binary: %v", err)
		}
		t.Fatal("svn-rebase binary not built")
	}
	return binaryPath
}
