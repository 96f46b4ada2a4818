package rebase

import (
	"context"

	"svnrebase.dev/svnrebase/internal/plan"
	"svnrebase.dev/svnrebase/internal/svn"
)

// Querier answers the repository questions needed to build a plan
type Querier interface {
	Status(ctx context.Context) (*svn.Status, error)
	Info(ctx context.Context) (*svn.WorkingCopyInfo, error)
	BranchLog(ctx context.Context, url string) ([]svn.LogEntry, error)
	RevisionLog(ctx context.Context, revision int) (*svn.LogEntry, error)
}

// Runner runs one plan command and reports its exit code and output lines.
// A non-nil error means the command could not be started.
type Runner interface {
	Run(ctx context.Context, command string) (int, []string, error)
}

// PlanStore persists the plan between invocations
type PlanStore interface {
	Path() string
	Exists() bool
	Save(p plan.Plan) error
	Load() (plan.Plan, error)
	Remove() error
	Lock() (func() error, error)
}

// ProgressReporter receives step events while a plan executes
type ProgressReporter interface {
	StepStarted(stepIndex int, description string)
	StepCompleted(stepIndex int)
	StepFailed(stepIndex int, err error)
}
