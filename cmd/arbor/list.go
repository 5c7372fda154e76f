package main

import (
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List worktrees",
	Long: `List every worktree git reports for this repository, followed by
the entries under the sibling worktrees directory with their current
branch. Read-only.

Examples:
  arbor list`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	mgr, rep, err := newManager(cmd)
	if err != nil {
		return fail(cmd, rep, err)
	}
	if err := mgr.List(cmd.Context()); err != nil {
		return fail(cmd, rep, err)
	}
	return nil
}
