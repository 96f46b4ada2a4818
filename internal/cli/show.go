package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"svnrebase.dev/svnrebase/internal/cli/common"
	rebaseerrors "svnrebase.dev/svnrebase/internal/errors"
	"svnrebase.dev/svnrebase/internal/runtime"
	"svnrebase.dev/svnrebase/internal/tui"
)

// newShowCmd creates the show command
func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "show",
		Short:        "Print the remaining steps of the saved plan",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return common.Run(cmd, func(ctx *runtime.Context) error {
				p, err := ctx.Store.Load()
				if errors.Is(err, rebaseerrors.ErrPlanNotFound) {
					return rebaseerrors.NewPlanMissingError(ctx.Store.Path())
				}
				if err != nil {
					return err
				}

				var b strings.Builder
				fmt.Fprintf(&b, "%d remaining steps in %s:\n", p.Len(), ctx.Store.Path())
				for i, step := range p.Steps {
					fmt.Fprintf(&b, "%s\n", tui.ColorDim(fmt.Sprintf("# %d. %s", i+1, step.Comment)))
					fmt.Fprintf(&b, "%s\n", tui.ColorCyan(step.Command))
				}
				ctx.Splog.Page(b.String())
				if !p.IsEmpty() {
					ctx.Splog.Tip("Run svn-rebase --continue to execute these steps.")
				}
				return nil
			})
		},
	}

	return cmd
}
