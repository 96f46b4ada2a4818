package svn

import (
	"context"
	"fmt"
	"strconv"

	rebaseerrors "svnrebase.dev/svnrebase/internal/errors"
)

// Client answers working copy and history queries using svn's xml reports.
// Any failure, whether running svn or decoding its report, is a QueryParseError.
type Client struct {
	runner *CommandRunner
}

// NewClient creates a new Client
func NewClient(runner *CommandRunner) *Client {
	return &Client{runner: runner}
}

// Status returns the locally modified paths of the working copy
func (c *Client) Status(ctx context.Context) (*Status, error) {
	data, err := c.runner.query(ctx, "status", "--xml")
	if err != nil {
		return nil, rebaseerrors.NewQueryParseError("svn status", err)
	}
	status, err := ParseStatus(data)
	if err != nil {
		return nil, rebaseerrors.NewQueryParseError("svn status", err)
	}
	return status, nil
}

// Info returns the url, revision and repository root of the working copy
func (c *Client) Info(ctx context.Context) (*WorkingCopyInfo, error) {
	data, err := c.runner.query(ctx, "info", "--xml")
	if err != nil {
		return nil, rebaseerrors.NewQueryParseError("svn info", err)
	}
	info, err := ParseInfo(data)
	if err != nil {
		return nil, rebaseerrors.NewQueryParseError("svn info", err)
	}
	return info, nil
}

// BranchLog returns the log of url back to the copy that created it, newest first
func (c *Client) BranchLog(ctx context.Context, url string) ([]LogEntry, error) {
	data, err := c.runner.query(ctx, "log", "--xml", "--stop-on-copy", url)
	if err != nil {
		return nil, rebaseerrors.NewQueryParseError("svn log "+url, err)
	}
	entries, err := ParseLog(data)
	if err != nil {
		return nil, rebaseerrors.NewQueryParseError("svn log "+url, err)
	}
	return entries, nil
}

// RevisionLog returns a single revision including its changed paths
func (c *Client) RevisionLog(ctx context.Context, revision int) (*LogEntry, error) {
	source := fmt.Sprintf("svn log -r %d", revision)
	data, err := c.runner.query(ctx, "log", "--xml", "-v", "-r", strconv.Itoa(revision))
	if err != nil {
		return nil, rebaseerrors.NewQueryParseError(source, err)
	}
	entries, err := ParseLog(data)
	if err != nil {
		return nil, rebaseerrors.NewQueryParseError(source, err)
	}
	if len(entries) == 0 {
		return nil, rebaseerrors.NewQueryParseError(source, fmt.Errorf("no log entry for revision %d", revision))
	}
	return &entries[0], nil
}
