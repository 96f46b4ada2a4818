package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"svnrebase.dev/svnrebase/internal/cli"
	rebaseerrors "svnrebase.dev/svnrebase/internal/errors"
	"svnrebase.dev/svnrebase/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := cli.NewRootCmd(version, commit, date)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil && !errors.Is(err, rebaseerrors.ErrNoHistory) {
		tui.NewSplog().Error("%s", err.Error())
	}
	os.Exit(rebaseerrors.ExitCode(err))
}
