package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a worktree",
	Long: `Deregister the named worktree and delete its directory, then ask
whether to delete the worktree/<name> branch as well.

Examples:
  arbor remove feat-a`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRemove,
}

func runRemove(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("remove requires a worktree name")
	}

	mgr, rep, err := newManager(cmd)
	if err != nil {
		return fail(cmd, rep, err)
	}
	if err := mgr.Remove(cmd.Context(), args[0]); err != nil {
		return fail(cmd, rep, err)
	}
	return nil
}
