package rebase

import (
	"context"
	"fmt"
	"strings"

	rebaseerrors "svnrebase.dev/svnrebase/internal/errors"
	"svnrebase.dev/svnrebase/internal/plan"
	"svnrebase.dev/svnrebase/internal/svn"
	"svnrebase.dev/svnrebase/internal/tui"
)

// BuildOptions contains the user's choices for a new plan
type BuildOptions struct {
	SourceURL    string // overrides the branch's copy source
	NewURL       string // create a new branch instead of replacing the current one
	Message      string // accepted for compatibility; does not affect the plan
	SingleCommit bool   // merge the whole range as one commit
}

// PrepareOptions contains the collaborators and options for PreparePlan
type PrepareOptions struct {
	Querier Querier
	Store   PlanStore
	Splog   *tui.Splog
	Build   BuildOptions
}

// PreparePlan checks the working copy, builds the plan and persists it.
// An empty branch history returns ErrNoHistory and writes nothing.
func PreparePlan(ctx context.Context, opts PrepareOptions) (plan.Plan, error) {
	splog := opts.Splog
	store := opts.Store

	unlock, err := store.Lock()
	if err != nil {
		return plan.Plan{}, err
	}
	defer func() { _ = unlock() }()

	if store.Exists() {
		return plan.Plan{}, rebaseerrors.NewPlanExistsError(store.Path())
	}

	wc, err := opts.Querier.Info(ctx)
	if err != nil {
		return plan.Plan{}, err
	}
	splog.Info("The URL of this branch is %s and revision of working copy is %d.", wc.URL, wc.Revision)

	status, err := opts.Querier.Status(ctx)
	if err != nil {
		return plan.Plan{}, err
	}
	if status.HasLocalChanges() {
		return plan.Plan{}, rebaseerrors.NewLocalChangesError()
	}
	splog.Info("There are no local changes in the working copy.")

	history, err := LoadHistory(ctx, opts.Querier, wc.URL)
	if err != nil {
		return plan.Plan{}, err
	}
	if history.Empty() {
		splog.Info("There are no commits to this branch in svn log.")
		return plan.Plan{}, rebaseerrors.ErrNoHistory
	}

	first, last := history.First(), history.Last()
	splog.Info("First commit was at revision %d and the last was at %d.", first.Revision, last.Revision)
	if wc.Revision < last.Revision {
		return plan.Plan{}, rebaseerrors.NewStaleWorkingCopyError(wc.Revision, last.Revision, wc.URL)
	}

	sourceURL, err := resolveSourceURL(ctx, opts.Querier, wc, first, opts.Build.SourceURL, splog)
	if err != nil {
		return plan.Plan{}, err
	}

	if opts.Build.NewURL != "" {
		splog.Info("Due to --new-url option, we will use %s as a name for the new rebased branch.", opts.Build.NewURL)
	} else {
		splog.Info("We will delete %s and then recreate it again the new rebased branch. You can use --new-url to specify the name of new branch, if you want to keep the old branch intact.", wc.URL)
	}
	if opts.Build.SingleCommit {
		splog.Info("Due to --single-commit option whole range of changes will be committed as a single commit.")
	} else {
		splog.Info("All changesets will be recreated one-by-one. You can use --single-commit option to merge them all together.")
	}

	p := NewPlan(*wc, history, sourceURL, opts.Build)

	splog.Info("The following plan will be saved to %s :", store.Path())
	for _, step := range p.Steps {
		splog.Info("# %s", step.Comment)
		splog.Info("%s", step.Command)
	}

	if err := store.Save(p); err != nil {
		return plan.Plan{}, err
	}
	splog.Important("Plan saved to %s. Run with --continue to execute the plan.", store.Path())
	return p, nil
}

// resolveSourceURL finds where the branch was copied from. An explicit source
// URL wins; the copy source is then only consulted for the log message.
func resolveSourceURL(ctx context.Context, q Querier, wc *svn.WorkingCopyInfo, first Changeset, override string, splog *tui.Splog) (string, error) {
	relative, err := CopySource(ctx, q, first.Revision)
	if err != nil {
		if override == "" {
			return "", err
		}
		splog.Warn("Ignoring copy source lookup failure because --source-url is set: %v", err)
	} else {
		splog.Info("The branch originated from %s.", wc.RepositoryRoot+relative)
	}

	if override != "" {
		splog.Info("Due to --source-url option, we will use %s as a source for the rebased branch.", override)
		return override, nil
	}
	return wc.RepositoryRoot + relative, nil
}

// NewPlan builds the steps that recreate history on top of sourceURL.
// It is deterministic: the same inputs always produce the same plan.
// history must not be empty.
func NewPlan(wc svn.WorkingCopyInfo, history History, sourceURL string, opts BuildOptions) plan.Plan {
	targetURL := wc.URL
	if opts.NewURL != "" {
		targetURL = opts.NewURL
	}

	first, last := history.First(), history.Last()
	var steps []plan.Step

	// Replacing in place assumes the branch exists; it is not checked with svn ls.
	if targetURL == wc.URL {
		steps = append(steps, plan.Step{
			Comment: fmt.Sprintf("Make sure that the %s does not exist.", targetURL),
			Command: svn.RemoveCommand(targetURL),
		})
	}
	steps = append(steps,
		plan.Step{
			Comment: fmt.Sprintf("Copying %s to %s.", sourceURL, targetURL),
			Command: svn.CopyCommand(sourceURL, targetURL),
		},
		plan.Step{
			Comment: fmt.Sprintf("Switching current working copy to latest version of %s which now has same content as %s", targetURL, sourceURL),
			Command: svn.SwitchCommand(targetURL),
		},
	)

	// Every merge reads from the original branch pinned at its last revision,
	// which stays addressable after the branch itself is removed.
	mergeSource := svn.PegURL(wc.URL, last.Revision)

	if opts.SingleCommit {
		message := fmt.Sprintf("Remerge of revisions %d:%d %s by %s since %s to %s.",
			first.Revision, last.Revision, mergeSource,
			strings.Join(history.UniqueAuthors(), " and "), first.Date, last.Date)
		steps = append(steps,
			plan.Step{
				Comment: "Merge all changesets at once.",
				Command: svn.MergeRangeCommand(first.Revision, last.Revision, mergeSource),
			},
			plan.Step{
				Comment: "Commit changeset.",
				Command: svn.CommitCommand(message),
			},
		)
		return plan.New(steps...)
	}

	for _, c := range history {
		// The branch context names the last revision for every changeset.
		message := fmt.Sprintf("Remerge of revision %d %s by %s at %s -- %s",
			c.Revision, mergeSource, c.Author, c.Date, c.Message)
		steps = append(steps,
			plan.Step{
				Comment: fmt.Sprintf("Merge changeset %d.", c.Revision),
				Command: svn.MergeChangeCommand(c.Revision, mergeSource),
			},
			plan.Step{
				Comment: "Commit changeset.",
				Command: svn.CommitCommand(message),
			},
		)
	}
	return plan.New(steps...)
}
