package rebase_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/kballard/go-shellquote"
	"github.com/stretchr/testify/require"

	rebaseerrors "svnrebase.dev/svnrebase/internal/errors"
	"svnrebase.dev/svnrebase/internal/plan"
	"svnrebase.dev/svnrebase/internal/rebase"
	"svnrebase.dev/svnrebase/internal/svn"
)

var testWC = svn.WorkingCopyInfo{URL: branchURL, Revision: 20, RepositoryRoot: repoRoot}

func twoChangesets() rebase.History {
	return rebase.History{
		{Revision: 10, Author: "alice", Date: "2024-03-01", Message: "first"},
		{Revision: 11, Author: "bob", Date: "2024-03-02", Message: "second"},
	}
}

func makeHistory(n int) rebase.History {
	history := make(rebase.History, n)
	for i := range history {
		history[i] = rebase.Changeset{
			Revision: 100 + i,
			Author:   fmt.Sprintf("dev%d", i%3),
			Date:     fmt.Sprintf("2024-01-%02d", i+1),
			Message:  fmt.Sprintf("change %d", i),
		}
	}
	return history
}

// commitMessage extracts the -m argument of a commit command
func commitMessage(t *testing.T, command string) string {
	t.Helper()
	args, err := shellquote.Split(command)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(args), 4)
	require.Equal(t, []string{"svn", "commit", "-m"}, args[:3])
	return args[3]
}

func TestNewPlan_PerChangesetInPlace(t *testing.T) {
	p := rebase.NewPlan(testWC, twoChangesets(), trunkURL, rebase.BuildOptions{})
	ctx := branchURL + "@11"

	require.Equal(t, []plan.Step{
		{Comment: "Make sure that the " + branchURL + " does not exist.", Command: svn.RemoveCommand(branchURL)},
		{Comment: "Copying " + trunkURL + " to " + branchURL + ".", Command: svn.CopyCommand(trunkURL, branchURL)},
		{Comment: "Switching current working copy to latest version of " + branchURL + " which now has same content as " + trunkURL, Command: svn.SwitchCommand(branchURL)},
		{Comment: "Merge changeset 10.", Command: svn.MergeChangeCommand(10, ctx)},
		{Comment: "Commit changeset.", Command: svn.CommitCommand("Remerge of revision 10 " + ctx + " by alice at 2024-03-01 -- first")},
		{Comment: "Merge changeset 11.", Command: svn.MergeChangeCommand(11, ctx)},
		{Comment: "Commit changeset.", Command: svn.CommitCommand("Remerge of revision 11 " + ctx + " by bob at 2024-03-02 -- second")},
	}, p.Steps)
	require.Equal(t, 7, p.Len())
	require.Equal(t, "svn merge -c 10 "+ctx, p.Steps[3].Command)
}

func TestNewPlan_PerChangesetMessagesNameLastRevision(t *testing.T) {
	history := makeHistory(3)
	p := rebase.NewPlan(testWC, history, trunkURL, rebase.BuildOptions{})

	for i, c := range history {
		message := commitMessage(t, p.Steps[3+2*i+1].Command)
		require.True(t, strings.HasPrefix(message, fmt.Sprintf("Remerge of revision %d %s@102 by", c.Revision, branchURL)),
			"message %q must reference the last revision", message)
	}
}

func TestNewPlan_SingleCommit(t *testing.T) {
	history := rebase.History{
		{Revision: 10, Author: "bob", Date: "2024-03-01", Message: "a"},
		{Revision: 11, Author: "alice", Date: "2024-03-02", Message: "b"},
		{Revision: 12, Author: "bob", Date: "2024-03-03", Message: "c"},
		{Revision: 13, Author: "carol", Date: "2024-03-04", Message: "d"},
	}
	p := rebase.NewPlan(testWC, history, trunkURL, rebase.BuildOptions{SingleCommit: true})

	require.Equal(t, 5, p.Len())
	require.Equal(t, plan.Step{
		Comment: "Merge all changesets at once.",
		Command: "svn merge -r 10:13 " + branchURL + "@13",
	}, p.Steps[3])
	require.Equal(t, "Commit changeset.", p.Steps[4].Comment)
	require.Equal(t,
		"Remerge of revisions 10:13 "+branchURL+"@13 by bob and alice and carol since 2024-03-01 to 2024-03-04.",
		commitMessage(t, p.Steps[4].Command))
}

func TestNewPlan_NewURLKeepsOldBranch(t *testing.T) {
	newURL := repoRoot + "/branches/feature-rebased"
	p := rebase.NewPlan(testWC, twoChangesets(), trunkURL, rebase.BuildOptions{NewURL: newURL})

	require.Equal(t, 6, p.Len())
	require.Equal(t, svn.CopyCommand(trunkURL, newURL), p.Steps[0].Command)
	require.Equal(t, svn.SwitchCommand(newURL), p.Steps[1].Command)
	// merges still read from the original branch
	require.Equal(t, svn.MergeChangeCommand(10, branchURL+"@11"), p.Steps[2].Command)
	for _, step := range p.Steps {
		require.False(t, strings.HasPrefix(step.Command, "svn remove"), "no remove step expected")
	}
}

func TestNewPlan_NewURLEqualToCurrentStillRemoves(t *testing.T) {
	p := rebase.NewPlan(testWC, twoChangesets(), trunkURL, rebase.BuildOptions{NewURL: branchURL})
	require.Equal(t, 7, p.Len())
	require.Equal(t, svn.RemoveCommand(branchURL), p.Steps[0].Command)
}

func TestNewPlan_StepCountLaw(t *testing.T) {
	for _, n := range []int{1, 2, 5, 17} {
		for _, single := range []bool{false, true} {
			for _, inPlace := range []bool{true, false} {
				name := fmt.Sprintf("n=%d single=%v inPlace=%v", n, single, inPlace)
				t.Run(name, func(t *testing.T) {
					opts := rebase.BuildOptions{SingleCommit: single}
					if !inPlace {
						opts.NewURL = repoRoot + "/branches/other"
					}
					p := rebase.NewPlan(testWC, makeHistory(n), trunkURL, opts)

					want := 2
					if inPlace {
						want++
					}
					if single {
						want += 2
					} else {
						want += 2 * n
					}
					require.Equal(t, want, p.Len())
				})
			}
		}
	}
}

func TestNewPlan_Deterministic(t *testing.T) {
	history := makeHistory(9)
	for _, single := range []bool{false, true} {
		a, err := plan.Marshal(rebase.NewPlan(testWC, history, trunkURL, rebase.BuildOptions{SingleCommit: single}))
		require.NoError(t, err)
		b, err := plan.Marshal(rebase.NewPlan(testWC, history, trunkURL, rebase.BuildOptions{SingleCommit: single}))
		require.NoError(t, err)
		require.Equal(t, a, b)
	}
}

func TestNewPlan_MessagesAreShellSafe(t *testing.T) {
	history := rebase.History{{Revision: 10, Author: "o'brien", Date: "d", Message: "rm -rf $HOME; `reboot` && echo \"hi\"\nline two"}}
	p := rebase.NewPlan(testWC, history, trunkURL, rebase.BuildOptions{})

	require.Equal(t,
		"Remerge of revision 10 "+branchURL+"@10 by o'brien at d -- rm -rf $HOME; `reboot` && echo \"hi\"\nline two",
		commitMessage(t, p.Steps[4].Command))
}

func TestPreparePlan(t *testing.T) {
	ctx := context.Background()

	t.Run("builds, logs and saves the plan", func(t *testing.T) {
		q := newFakeQuerier()
		store := newTestStore(t)
		splog, out := newTestSplog(t)

		p, err := rebase.PreparePlan(ctx, rebase.PrepareOptions{Querier: q, Store: store, Splog: splog})
		require.NoError(t, err)
		require.Equal(t, 7, p.Len())

		saved, err := store.Load()
		require.NoError(t, err)
		require.Equal(t, p, saved)

		logged := out.String()
		require.Contains(t, logged, "The URL of this branch is "+branchURL+" and revision of working copy is 20.")
		require.Contains(t, logged, "First commit was at revision 10 and the last was at 11.")
		require.Contains(t, logged, "The branch originated from "+trunkURL+".")
		require.Contains(t, logged, "# Merge changeset 10.")
		require.Contains(t, logged, p.Steps[6].Command)
		require.Contains(t, logged, "Plan saved to "+store.Path())
		require.Equal(t, []string{"info", "status", "log " + branchURL, "log -r 10"}, q.calls)
	})

	t.Run("existing plan is refused before any query", func(t *testing.T) {
		q := newFakeQuerier()
		store := newTestStore(t)
		require.NoError(t, store.Save(plan.New(plan.Step{Comment: "keep", Command: "svn keep"})))
		splog, _ := newTestSplog(t)

		_, err := rebase.PreparePlan(ctx, rebase.PrepareOptions{Querier: q, Store: store, Splog: splog})
		require.Equal(t, rebaseerrors.ExitPlanExists, rebaseerrors.ExitCode(err))
		require.Empty(t, q.calls)

		kept, err := store.Load()
		require.NoError(t, err)
		require.Equal(t, "svn keep", kept.Steps[0].Command)
	})

	t.Run("local changes", func(t *testing.T) {
		q := newFakeQuerier()
		q.status = &svn.Status{Entries: []svn.StatusEntry{{Path: "a.c", Item: "modified"}}}
		store := newTestStore(t)
		splog, _ := newTestSplog(t)

		_, err := rebase.PreparePlan(ctx, rebase.PrepareOptions{Querier: q, Store: store, Splog: splog})
		require.Equal(t, rebaseerrors.ExitLocalChanges, rebaseerrors.ExitCode(err))
		require.False(t, store.Exists())
	})

	t.Run("empty history is a terminal success without a plan", func(t *testing.T) {
		q := newFakeQuerier()
		q.log = nil
		store := newTestStore(t)
		splog, out := newTestSplog(t)

		p, err := rebase.PreparePlan(ctx, rebase.PrepareOptions{Querier: q, Store: store, Splog: splog})
		require.ErrorIs(t, err, rebaseerrors.ErrNoHistory)
		require.Equal(t, rebaseerrors.ExitOK, rebaseerrors.ExitCode(err))
		require.True(t, p.IsEmpty())
		require.False(t, store.Exists())
		_, statErr := os.Stat(store.Path())
		require.True(t, os.IsNotExist(statErr))
		require.Contains(t, out.String(), "There are no commits to this branch in svn log.")
	})

	t.Run("stale working copy", func(t *testing.T) {
		q := newFakeQuerier()
		q.info = &svn.WorkingCopyInfo{URL: branchURL, Revision: 10, RepositoryRoot: repoRoot}
		store := newTestStore(t)
		splog, _ := newTestSplog(t)

		_, err := rebase.PreparePlan(ctx, rebase.PrepareOptions{Querier: q, Store: store, Splog: splog})
		require.Equal(t, rebaseerrors.ExitStaleWorkingCopy, rebaseerrors.ExitCode(err))
		require.Contains(t, err.Error(), "(10)")
		require.Contains(t, err.Error(), "(11)")
		require.False(t, store.Exists())
	})

	t.Run("working copy at the last revision is not stale", func(t *testing.T) {
		q := newFakeQuerier()
		q.info = &svn.WorkingCopyInfo{URL: branchURL, Revision: 11, RepositoryRoot: repoRoot}
		splog, _ := newTestSplog(t)

		_, err := rebase.PreparePlan(ctx, rebase.PrepareOptions{Querier: q, Store: newTestStore(t), Splog: splog})
		require.NoError(t, err)
	})

	t.Run("query parse failures are fatal", func(t *testing.T) {
		parseErr := rebaseerrors.NewQueryParseError("svn info", errors.New("EOF"))
		cases := map[string]func(q *fakeQuerier){
			"info":   func(q *fakeQuerier) { q.infoErr = parseErr },
			"status": func(q *fakeQuerier) { q.statusErr = parseErr },
			"log":    func(q *fakeQuerier) { q.logErr = parseErr },
			"rev":    func(q *fakeQuerier) { q.revErr = parseErr },
		}
		for name, breakIt := range cases {
			t.Run(name, func(t *testing.T) {
				q := newFakeQuerier()
				breakIt(q)
				store := newTestStore(t)
				splog, _ := newTestSplog(t)

				_, err := rebase.PreparePlan(ctx, rebase.PrepareOptions{Querier: q, Store: store, Splog: splog})
				require.Equal(t, rebaseerrors.ExitParseFailure, rebaseerrors.ExitCode(err))
				require.False(t, store.Exists())
			})
		}
	})

	t.Run("source url override", func(t *testing.T) {
		q := newFakeQuerier()
		store := newTestStore(t)
		splog, out := newTestSplog(t)
		source := repoRoot + "/tags/1.0"

		p, err := rebase.PreparePlan(ctx, rebase.PrepareOptions{
			Querier: q, Store: store, Splog: splog,
			Build: rebase.BuildOptions{SourceURL: source},
		})
		require.NoError(t, err)
		require.Equal(t, svn.CopyCommand(source, branchURL), p.Steps[1].Command)
		require.Contains(t, out.String(), "Due to --source-url option, we will use "+source)
	})

	t.Run("missing copy source needs an override", func(t *testing.T) {
		q := newFakeQuerier()
		q.revisions = map[int]*svn.LogEntry{}
		splog, _ := newTestSplog(t)

		_, err := rebase.PreparePlan(ctx, rebase.PrepareOptions{Querier: q, Store: newTestStore(t), Splog: splog})
		require.Equal(t, rebaseerrors.ExitParseFailure, rebaseerrors.ExitCode(err))

		splog, out := newTestSplog(t)
		p, err := rebase.PreparePlan(ctx, rebase.PrepareOptions{
			Querier: q, Store: newTestStore(t), Splog: splog,
			Build: rebase.BuildOptions{SourceURL: trunkURL},
		})
		require.NoError(t, err)
		require.Equal(t, svn.CopyCommand(trunkURL, branchURL), p.Steps[1].Command)
		require.Contains(t, out.String(), "⚠️  Ignoring copy source lookup failure because --source-url is set")
	})

	t.Run("single commit and new url", func(t *testing.T) {
		q := newFakeQuerier()
		splog, out := newTestSplog(t)
		newURL := repoRoot + "/branches/rebased"

		p, err := rebase.PreparePlan(ctx, rebase.PrepareOptions{
			Querier: q, Store: newTestStore(t), Splog: splog,
			Build: rebase.BuildOptions{SingleCommit: true, NewURL: newURL, Message: "ignored"},
		})
		require.NoError(t, err)
		require.Equal(t, 4, p.Len())
		require.Contains(t, out.String(), "Due to --new-url option")
		require.Contains(t, out.String(), "Due to --single-commit option")
		for _, step := range p.Steps {
			require.NotContains(t, step.Command, "ignored")
		}
	})
}
