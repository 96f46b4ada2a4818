//go:build !unix

package plan

// Lock is a no-op where flock is unavailable. Running two executions against
// the same plan file concurrently remains the caller's responsibility.
func (s *Store) Lock() (func() error, error) {
	return func() error { return nil }, nil
}
