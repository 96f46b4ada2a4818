// Package common provides shared helper functions for CLI commands.
package common

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"svnrebase.dev/svnrebase/internal/config"
	"svnrebase.dev/svnrebase/internal/runtime"
)

// Run is a helper that provides a runtime context to a command's execution function.
// Settings come from config files and environment, then from flags the user set.
func Run(cmd *cobra.Command, fn func(ctx *runtime.Context) error) error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	settings, err := config.Load(dir)
	if err != nil {
		return err
	}
	if err := ApplyFlags(cmd, settings); err != nil {
		return err
	}

	ctx, err := runtime.NewContext(dir, settings, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer func() { _ = ctx.Close() }()

	if err := fn(ctx); err != nil {
		// Console reporting happens in main; this keeps the failure in the file log.
		ctx.Splog.Debug("command failed: %v", err)
		return err
	}
	return nil
}

// ApplyFlags overrides settings with the flags that were set on the command line
func ApplyFlags(cmd *cobra.Command, settings *config.Settings) error {
	flags := cmd.Flags()

	if flags.Changed("plan") {
		plan, err := flags.GetString("plan")
		if err != nil {
			return err
		}
		settings.PlanPath = plan
	}
	if flags.Changed("quiet") {
		quiet, err := flags.GetBool("quiet")
		if err != nil {
			return err
		}
		settings.Quiet = quiet
	}
	if flags.Changed("no-interactive") {
		noInteractive, err := flags.GetBool("no-interactive")
		if err != nil {
			return err
		}
		settings.NoInteractive = noInteractive
	}
	if flags.Lookup("single-commit") != nil && flags.Changed("single-commit") {
		single, err := flags.GetBool("single-commit")
		if err != nil {
			return err
		}
		settings.SingleCommit = single
	}
	return nil
}
