package plan

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
)

// lockPath returns the lock file for the plan. It lives in the temp directory,
// keyed by the plan's absolute path, so it never shows up in `svn status`.
func (s *Store) lockPath() string {
	abs, err := filepath.Abs(s.path)
	if err != nil {
		abs = s.path
	}
	sum := sha256.Sum256([]byte(abs))
	return filepath.Join(os.TempDir(), "svn-rebase-"+hex.EncodeToString(sum[:8])+".lock")
}
