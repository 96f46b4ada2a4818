package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"svnrebase.dev/svnrebase/internal/cli/common"
	rebaseerrors "svnrebase.dev/svnrebase/internal/errors"
	"svnrebase.dev/svnrebase/internal/runtime"
	"svnrebase.dev/svnrebase/internal/tui"
)

// newAbortCmd creates the abort command
func newAbortCmd() *cobra.Command {
	var (
		force bool
	)

	cmd := &cobra.Command{
		Use:   "abort",
		Short: "Discard the saved plan",
		Long: `Discards the saved plan so a new one can be created.

Steps that already ran are not undone: the repository keeps whatever the last
completed step left behind. Use svn to inspect and repair it before planning again.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return common.Run(cmd, func(ctx *runtime.Context) error {
				store := ctx.Store

				unlock, err := store.Lock()
				if err != nil {
					return err
				}
				defer func() { _ = unlock() }()

				if !store.Exists() {
					return rebaseerrors.NewPlanMissingError(store.Path())
				}

				if !force {
					if ctx.Settings.NoInteractive {
						return fmt.Errorf("refusing to delete %s without confirmation; use --force", store.Path())
					}
					confirmed, err := tui.PromptConfirm(fmt.Sprintf("Delete the plan %s?", store.Path()), false)
					if err != nil {
						return fmt.Errorf("%w; use --force to abort without a prompt", err)
					}
					if !confirmed {
						ctx.Splog.Info("Plan kept.")
						return nil
					}
				}

				if err := store.Remove(); err != nil {
					return err
				}
				ctx.Splog.Important("Removed plan file %s. Steps that already ran were not undone.", store.Path())
				return nil
			})
		},
	}

	// Add flags
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Do not prompt for confirmation; abort immediately.")

	return cmd
}
