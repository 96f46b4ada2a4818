package cli

import (
	"context"
	"errors"

	rebaseerrors "svnrebase.dev/svnrebase/internal/errors"
	"svnrebase.dev/svnrebase/internal/rebase"
	"svnrebase.dev/svnrebase/internal/runtime"
	"svnrebase.dev/svnrebase/internal/tui"
)

// runContinue executes the saved plan. On a terminal it shows the progress view
// while the executor runs; console logging is held back until the view exits.
func runContinue(cmdCtx context.Context, ctx *runtime.Context) error {
	opts := rebase.ExecuteOptions{
		Store:  ctx.Store,
		Runner: ctx.Runner,
		Splog:  ctx.Splog,
	}

	if ctx.Settings.NoInteractive || !tui.IsTTY() {
		return rebase.NewExecutor(opts).Execute(cmdCtx)
	}

	p, unlock, err := rebase.NewExecutor(opts).LoadPlan()
	if err != nil {
		return err
	}
	defer func() { _ = unlock() }()

	reporter := tui.NewChannelProgressReporter(p.Len())
	opts.Reporter = reporter
	executor := rebase.NewExecutor(opts)

	stepDescriptions := make([]string, len(p.Steps))
	for i, step := range p.Steps {
		stepDescriptions[i] = step.Comment
	}

	runCtx, cancel := context.WithCancel(cmdCtx)
	defer cancel()

	splog := ctx.Splog
	splog.SetQuiet(true)

	// Start TUI in a goroutine
	tuiDone := make(chan error, 1)
	go func() {
		tuiDone <- tui.RunPlanProgressTUI(stepDescriptions, reporter.Updates(), cancel)
	}()

	runErr := executor.Run(runCtx, p)

	// Close reporter to signal TUI to finish
	reporter.Close()
	if err := <-tuiDone; err != nil {
		splog.Debug("TUI error: %v", err)
	}
	splog.SetQuiet(false)

	var stepErr *rebaseerrors.StepExecutionError
	if errors.As(runErr, &stepErr) {
		splog.Important("%s", tui.ColorRed(stepErr.Command))
		if output := stepErr.OutputText(); output != "" {
			splog.Info("%s", output)
		}
	}
	if errors.Is(runErr, rebase.ErrInterrupted) {
		splog.Important("%s", tui.ColorYellow("Interrupted. Run again with --continue to resume."))
	}
	return runErr
}
