// Package cli wires the svn-rebase commands.
package cli

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"svnrebase.dev/svnrebase/internal/cli/common"
	"svnrebase.dev/svnrebase/internal/config"
	"svnrebase.dev/svnrebase/internal/rebase"
	"svnrebase.dev/svnrebase/internal/runtime"
)

type rootFlags struct {
	sourceURL    string
	newURL       string
	message      string
	plan         string
	cont         bool
	singleCommit bool
	quiet        bool
	noInteract   bool
}

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	f := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "svn-rebase",
		Short: "Recreate a Subversion branch on top of a newer source",
		Long: `svn-rebase recreates the current Subversion branch on top of its source.

Run it inside an up-to-date working copy of the branch. The first run checks the
working copy, reads the branch history and writes a plan of svn commands to the
plan file without changing anything. Review or edit the plan, then run again with
--continue to execute it. If a step fails, fix the problem and run --continue
again; completed steps are never repeated.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateURLFlag("source-url", f.sourceURL); err != nil {
				return err
			}
			if err := validateURLFlag("new-url", f.newURL); err != nil {
				return err
			}
			return common.Run(cmd, func(ctx *runtime.Context) error {
				if f.cont {
					return runContinue(cmd.Context(), ctx)
				}
				_, err := rebase.PreparePlan(cmd.Context(), rebase.PrepareOptions{
					Querier: ctx.Client,
					Store:   ctx.Store,
					Splog:   ctx.Splog,
					Build: rebase.BuildOptions{
						SourceURL:    f.sourceURL,
						NewURL:       f.newURL,
						Message:      f.message,
						SingleCommit: ctx.Settings.SingleCommit,
					},
				})
				return err
			})
		},
	}

	rootCmd.Flags().StringVar(&f.sourceURL, "source-url", "", "Use this URL as the source of the rebased branch instead of the one it was copied from")
	rootCmd.Flags().StringVar(&f.newURL, "new-url", "", "Create the rebased branch at this URL and keep the current branch intact")
	rootCmd.Flags().StringVar(&f.message, "message", "", "Accepted for compatibility; commit messages are generated from the history")
	rootCmd.Flags().BoolVar(&f.cont, "continue", false, "Execute the saved plan, resuming after the last completed step")
	rootCmd.Flags().BoolVar(&f.singleCommit, "single-commit", false, "Merge all changesets at once and commit them as a single commit")

	rootCmd.PersistentFlags().StringVar(&f.plan, "plan", config.DefaultPlanFile, "Path of the plan file")
	rootCmd.PersistentFlags().BoolVarP(&f.quiet, "quiet", "q", false, "Only print commands, failures and important messages")
	rootCmd.PersistentFlags().BoolVar(&f.noInteract, "no-interactive", false, "Disable the progress view and confirmation prompts")

	registerCompletions(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newAbortCmd())

	return rootCmd
}

// validateURLFlag rejects values svn would read as a working copy path.
// Repository-relative URLs (^/trunk) are passed through to svn.
func validateURLFlag(name, value string) error {
	if value == "" || strings.HasPrefix(value, "^/") {
		return nil
	}
	u, err := url.Parse(value)
	if err != nil || u.Scheme == "" || (u.Host == "" && u.Scheme != "file") {
		return fmt.Errorf("--%s must be a repository URL, got %q", name, value)
	}
	return nil
}
