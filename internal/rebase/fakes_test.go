package rebase_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"svnrebase.dev/svnrebase/internal/plan"
	"svnrebase.dev/svnrebase/internal/svn"
	"svnrebase.dev/svnrebase/internal/tui"
)

const (
	repoRoot  = "https://svn.example.com/repo"
	branchURL = repoRoot + "/branches/feature"
	trunkURL  = repoRoot + "/trunk"
)

// fakeQuerier serves canned svn reports
type fakeQuerier struct {
	info      *svn.WorkingCopyInfo
	infoErr   error
	status    *svn.Status
	statusErr error
	log       []svn.LogEntry // newest first, like svn
	logErr    error
	revisions map[int]*svn.LogEntry
	revErr    error
	calls     []string
}

func newFakeQuerier() *fakeQuerier {
	return &fakeQuerier{
		info:   &svn.WorkingCopyInfo{URL: branchURL, Revision: 20, RepositoryRoot: repoRoot},
		status: &svn.Status{},
		log: []svn.LogEntry{
			{Revision: 11, Author: "bob", Date: "2024-03-02", Message: "second"},
			{Revision: 10, Author: "alice", Date: "2024-03-01", Message: "first"},
		},
		revisions: map[int]*svn.LogEntry{
			10: {Revision: 10, Paths: []svn.ChangedPath{{Path: "/branches/feature", CopyFromPath: "/trunk", CopyFromRevision: 9}}},
		},
	}
}

func (q *fakeQuerier) Status(context.Context) (*svn.Status, error) {
	q.calls = append(q.calls, "status")
	return q.status, q.statusErr
}

func (q *fakeQuerier) Info(context.Context) (*svn.WorkingCopyInfo, error) {
	q.calls = append(q.calls, "info")
	return q.info, q.infoErr
}

func (q *fakeQuerier) BranchLog(_ context.Context, url string) ([]svn.LogEntry, error) {
	q.calls = append(q.calls, "log "+url)
	return q.log, q.logErr
}

func (q *fakeQuerier) RevisionLog(_ context.Context, revision int) (*svn.LogEntry, error) {
	q.calls = append(q.calls, fmt.Sprintf("log -r %d", revision))
	if q.revErr != nil {
		return nil, q.revErr
	}
	entry, ok := q.revisions[revision]
	if !ok {
		return &svn.LogEntry{Revision: revision}, nil
	}
	return entry, nil
}

// runResult is the canned outcome of one command
type runResult struct {
	code   int
	output []string
	err    error
}

// fakeRunner records commands and returns canned results by call index
type fakeRunner struct {
	results  map[int]runResult
	commands []string
	// before is called with the call index before the command "runs"
	before func(i int, command string)
}

func (r *fakeRunner) Run(_ context.Context, command string) (int, []string, error) {
	i := len(r.commands)
	r.commands = append(r.commands, command)
	if r.before != nil {
		r.before(i, command)
	}
	if res, ok := r.results[i]; ok {
		return res.code, res.output, res.err
	}
	return 0, []string{"ran " + command}, nil
}

// failingSaveStore fails every Save after the first allowed ones
type failingSaveStore struct {
	*plan.Store
	allowed int
}

func (s *failingSaveStore) Save(p plan.Plan) error {
	if s.allowed <= 0 {
		return errors.New("disk full")
	}
	s.allowed--
	return s.Store.Save(p)
}

// recordingReporter collects progress events
type recordingReporter struct {
	events []string
}

func (r *recordingReporter) StepStarted(i int, _ string) {
	r.events = append(r.events, fmt.Sprintf("started %d", i))
}

func (r *recordingReporter) StepCompleted(i int) {
	r.events = append(r.events, fmt.Sprintf("completed %d", i))
}

func (r *recordingReporter) StepFailed(i int, _ error) {
	r.events = append(r.events, fmt.Sprintf("failed %d", i))
}

func newTestSplog(t *testing.T) (*tui.Splog, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	splog, err := tui.NewSplogWithConfig(&buf, "")
	require.NoError(t, err)
	return splog, &buf
}

func newTestStore(t *testing.T) *plan.Store {
	t.Helper()
	return plan.NewStore(filepath.Join(t.TempDir(), ".svn_rebase.plan"))
}
