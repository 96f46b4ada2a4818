package svn

import (
	"fmt"
	"strconv"

	"github.com/kballard/go-shellquote"
)

// Commit messages used for the branch bookkeeping commits
const (
	RemoveMessage = "Making sure that target branch does not exist before rebasing"
	CopyMessage   = "Creating target branch for rebasing"
)

// PegURL returns url pinned to a peg revision
func PegURL(url string, revision int) string {
	return fmt.Sprintf("%s@%d", url, revision)
}

// RemoveCommand removes url from the repository
func RemoveCommand(url string) string {
	return shellquote.Join("svn", "remove", "-m", RemoveMessage, url)
}

// CopyCommand creates target as a copy of source
func CopyCommand(source, target string) string {
	return shellquote.Join("svn", "copy", "-m", CopyMessage, source, target)
}

// SwitchCommand points the working copy at url
func SwitchCommand(url string) string {
	return shellquote.Join("svn", "switch", url)
}

// MergeRangeCommand merges revisions first through last of source
func MergeRangeCommand(first, last int, source string) string {
	return shellquote.Join("svn", "merge", "-r", strconv.Itoa(first)+":"+strconv.Itoa(last), source)
}

// MergeChangeCommand merges the single revision of source
func MergeChangeCommand(revision int, source string) string {
	return shellquote.Join("svn", "merge", "-c", strconv.Itoa(revision), source)
}

// CommitCommand commits the working copy with message
func CommitCommand(message string) string {
	return shellquote.Join("svn", "commit", "-m", message)
}
