package tui

import (
	"os"
	"path/filepath"
	"strings"
)

// GetLogFilePath expands a configured log file path.
// An empty value disables file logging. A leading "~/" is resolved against the
// home directory, and "default" selects ~/.svn-rebase/logs/svn-rebase.log.
func GetLogFilePath(configured string) string {
	if configured == "" {
		return ""
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if we can't get home dir
		homeDir = "."
	}

	if configured == "default" {
		return filepath.Join(homeDir, ".svn-rebase", "logs", "svn-rebase.log")
	}
	if rest, ok := strings.CutPrefix(configured, "~/"); ok {
		return filepath.Join(homeDir, rest)
	}
	return configured
}
