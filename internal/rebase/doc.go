// Package rebase turns a branch's svn history into a durable plan and executes it.
//
// It is the core of svn-rebase, responsible for:
//   - Normalizing the branch log into an oldest-first history
//   - Building the ordered plan (remove, copy, switch, merges and commits)
//   - Executing the plan step by step, checkpointing the remaining steps after
//     each success so an interrupted or failed run can be continued
//
// The package depends on svn only through the Querier and Runner interfaces,
// so it can be exercised with in-memory fakes.
package rebase
