package rebase

import (
	"context"
	"fmt"

	rebaseerrors "svnrebase.dev/svnrebase/internal/errors"
	"svnrebase.dev/svnrebase/internal/svn"
)

// Changeset is one historical commit on the branch
type Changeset struct {
	Revision int
	Author   string
	Date     string
	Message  string
}

// History is the branch's changesets, oldest first
type History []Changeset

// NewHistory converts an `svn log --stop-on-copy` report, which lists newest
// first, into an oldest-first history
func NewHistory(entries []svn.LogEntry) History {
	history := make(History, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		history = append(history, Changeset{
			Revision: e.Revision,
			Author:   e.Author,
			Date:     e.Date,
			Message:  e.Message,
		})
	}
	return history
}

// LoadHistory queries the log of url back to its creation
func LoadHistory(ctx context.Context, q Querier, url string) (History, error) {
	entries, err := q.BranchLog(ctx, url)
	if err != nil {
		return nil, err
	}
	return NewHistory(entries), nil
}

// Empty reports whether there is nothing to replay
func (h History) Empty() bool {
	return len(h) == 0
}

// First returns the oldest changeset. The history must not be empty.
func (h History) First() Changeset {
	return h[0]
}

// Last returns the newest changeset. The history must not be empty.
func (h History) Last() Changeset {
	return h[len(h)-1]
}

// UniqueAuthors returns each author once, in order of first appearance
func (h History) UniqueAuthors() []string {
	seen := make(map[string]bool, len(h))
	var authors []string
	for _, c := range h {
		if !seen[c.Author] {
			seen[c.Author] = true
			authors = append(authors, c.Author)
		}
	}
	return authors
}

// CopySource returns the repository path the branch was copied from in revision
func CopySource(ctx context.Context, q Querier, revision int) (string, error) {
	entry, err := q.RevisionLog(ctx, revision)
	if err != nil {
		return "", err
	}
	from, ok := entry.CopyFromPath()
	if !ok {
		return "", rebaseerrors.NewQueryParseError(
			fmt.Sprintf("svn log -r %d", revision),
			fmt.Errorf("revision %d has no copy source", revision))
	}
	return from, nil
}
