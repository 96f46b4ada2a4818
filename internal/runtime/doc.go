// Package runtime provides the execution context for svn-rebase commands.
//
// It encapsulates shared dependencies and configuration needed by commands,
// such as the resolved settings, the logger, the svn client and the plan store.
package runtime
