// Package config manages svn-rebase configuration.
//
// It handles:
//   - Working-copy configuration (.svn-rebase.yaml)
//   - Global user configuration (~/.svn-rebase/config.yaml)
//   - Environment overrides (SVN_REBASE_*)
package config
