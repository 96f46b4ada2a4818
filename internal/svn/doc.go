// Package svn provides low-level Subversion operations.
//
// It wraps svn command execution and provides a Go-friendly interface for:
//   - Working copy queries (status, info) decoded from svn's xml reports
//   - History queries (branch log bounded at the copy, single revision detail)
//   - Building shell-safe svn command lines and running them
//
// This package should be the only place where svn commands are executed.
package svn
