package cli

import (
	"github.com/spf13/cobra"
)

// registerCompletions adds flag completions to the root command
func registerCompletions(rootCmd *cobra.Command) {
	_ = rootCmd.RegisterFlagCompletionFunc("plan", completePlanFiles)
	_ = rootCmd.RegisterFlagCompletionFunc("source-url", noCompletion)
	_ = rootCmd.RegisterFlagCompletionFunc("new-url", noCompletion)
	_ = rootCmd.RegisterFlagCompletionFunc("message", noCompletion)
}

// completePlanFiles is a helper for RegisterFlagCompletionFunc that offers plan files.
func completePlanFiles(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{"plan"}, cobra.ShellCompDirectiveFilterFileExt
}

func noCompletion(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return nil, cobra.ShellCompDirectiveNoFileComp
}
