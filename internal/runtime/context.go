package runtime

import (
	"fmt"
	"io"
	"path/filepath"

	"svnrebase.dev/svnrebase/internal/config"
	"svnrebase.dev/svnrebase/internal/plan"
	"svnrebase.dev/svnrebase/internal/svn"
	"svnrebase.dev/svnrebase/internal/tui"
)

// Context provides access to the collaborators a command needs
type Context struct {
	Settings   *config.Settings
	Splog      *tui.Splog
	Runner     *svn.CommandRunner
	Client     *svn.Client
	Store      *plan.Store
	WorkingDir string
}

// NewContext wires the collaborators for a working copy directory.
// Console output goes to out; the caller must Close the context.
func NewContext(workingDir string, settings *config.Settings, out io.Writer) (*Context, error) {
	splog, err := tui.NewSplogWithConfig(out, tui.GetLogFilePath(settings.LogFile))
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	splog.SetImportantOnly(settings.Quiet)

	runner := svn.NewCommandRunner(settings.SvnBinary, workingDir)
	splog.Debug("svn-rebase run %s in %s using %s", splog.RunID(), workingDir, settings.SvnBinary)

	return &Context{
		Settings:   settings,
		Splog:      splog,
		Runner:     runner,
		Client:     svn.NewClient(runner),
		Store:      plan.NewStore(ResolvePlanPath(workingDir, settings.PlanPath)),
		WorkingDir: workingDir,
	}, nil
}

// ResolvePlanPath makes a relative plan path relative to the working copy
func ResolvePlanPath(workingDir, planPath string) string {
	if filepath.IsAbs(planPath) {
		return planPath
	}
	return filepath.Join(workingDir, planPath)
}

// Close releases the log file
func (c *Context) Close() error {
	return c.Splog.Close()
}
