package testhelpers

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Repository layout served by BranchSceneSetup
const (
	RepoRoot  = "https://svn.example.com/repo"
	BranchURL = RepoRoot + "/branches/feature"
	TrunkURL  = RepoRoot + "/trunk"
)

// Scene represents a test scene: an empty working copy directory, an isolated
// home directory and a fake svn binary.
type Scene struct {
	t    *testing.T
	Dir  string
	Home string
	Svn  *FakeSvn
}

// SceneSetup is a function type for setting up a scene.
type SceneSetup func(*Scene) error

// NewScene creates a new test scene. It is safe for parallel tests: nothing
// global is changed and all directories are removed by t.Cleanup().
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	scene := &Scene{
		t:    t,
		Dir:  t.TempDir(),
		Home: t.TempDir(),
		Svn:  NewFakeSvn(t),
	}

	// Run custom setup if provided
	if setup != nil {
		require.NoError(t, setup(scene), "scene setup failed")
	}
	return scene
}

// BranchSceneSetup serves a branch copied from trunk in r9 with two commits,
// r10 by alice and r11 by bob, and a working copy at r20.
func BranchSceneSetup(scene *Scene) error {
	scene.Svn.SetInfo(InfoXML(BranchURL, RepoRoot, 20))
	scene.Svn.SetLog(LogXML(
		LogFixture{Revision: 11, Author: "bob", Date: "2024-03-02T10:00:00.000000Z", Message: "Second change"},
		LogFixture{Revision: 10, Author: "alice", Date: "2024-03-01T09:00:00.000000Z", Message: "First change"},
	))
	scene.Svn.SetRevision(10, CopyRevisionXML(10, "/branches/feature", "/trunk"))
	return nil
}

// PlanPath returns the default plan file location of the scene
func (s *Scene) PlanPath() string {
	return filepath.Join(s.Dir, ".svn_rebase.plan")
}

// Env returns the environment for running the binary against the fake svn
func (s *Scene) Env(extra ...string) []string {
	var env []string
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "SVN_REBASE_") || strings.HasPrefix(kv, "DEBUG=") || strings.HasPrefix(kv, "HOME=") || strings.HasPrefix(kv, "PWD=") {
			continue
		}
		env = append(env, kv)
	}
	env = append(env,
		"HOME="+s.Home,
		"SVN_REBASE_SVN="+s.Svn.Path,
		"SVN_REBASE_NO_INTERACTIVE=1",
	)
	return append(env, extra...)
}

// Run runs the binary in the working copy and returns its combined output and exit code
func (s *Scene) Run(binaryPath string, args ...string) (string, int) {
	return s.RunWithEnv(binaryPath, nil, args...)
}

// RunWithEnv is Run with additional environment variables
func (s *Scene) RunWithEnv(binaryPath string, env []string, args ...string) (string, int) {
	s.t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = s.Dir
	cmd.Env = s.Env(env...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		require.True(s.t, errors.As(err, &exitErr), "failed to run %s: %v", binaryPath, err)
		return string(output), exitErr.ExitCode()
	}
	return string(output), 0
}
