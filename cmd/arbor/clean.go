package main

import (
	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove all worktrees",
	Long: `Remove every worktree git reports other than the parent repository
and prune stale bookkeeping. Asks for confirmation first.

Examples:
  arbor clean`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func runClean(cmd *cobra.Command, args []string) error {
	mgr, rep, err := newManager(cmd)
	if err != nil {
		return fail(cmd, rep, err)
	}
	if err := mgr.Clean(cmd.Context()); err != nil {
		return fail(cmd, rep, err)
	}
	return nil
}
