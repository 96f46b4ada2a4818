//go:build unix

package plan

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	rebaseerrors "svnrebase.dev/svnrebase/internal/errors"
)

// Lock takes an exclusive advisory lock for the plan path. It fails with
// ErrPlanLocked when another process holds it. The returned function releases it.
func (s *Store) Lock() (func() error, error) {
	//nolint:gosec // lock file path is derived from a hash
	f, err := os.OpenFile(s.lockPath(), os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open plan lock: %w", err)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		_ = f.Close()
		if errors.Is(err, unix.EWOULDBLOCK) {
			return nil, fmt.Errorf("%w: %s", rebaseerrors.ErrPlanLocked, s.path)
		}
		return nil, fmt.Errorf("failed to lock plan: %w", err)
	}

	return func() error {
		_ = unix.Flock(int(f.Fd()), unix.LOCK_UN)
		return f.Close()
	}, nil
}
