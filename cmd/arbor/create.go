package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create <name> [base-revision]",
	Short: "Create a new worktree",
	Long: `Create a named worktree in the sibling worktrees directory.

The worktree checks out a new branch worktree/<name> at base-revision
(the current HEAD when omitted). It receives a snapshot of the parent's
.env (or .env.example), agent local settings, and secrets baseline, and
its locked dependencies are installed when the resolver is available.

Examples:
  # Branch from the current HEAD
  arbor create feat-a

  # Branch from an explicit revision
  arbor create feat-b main~2`,
	Args: cobra.MaximumNArgs(2),
	RunE: runCreate,
}

func runCreate(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("create requires a worktree name")
	}

	mgr, rep, err := newManager(cmd)
	if err != nil {
		return fail(cmd, rep, err)
	}

	base := ""
	if len(args) == 2 {
		base = args[1]
	}
	if err := mgr.Create(cmd.Context(), args[0], base); err != nil {
		return fail(cmd, rep, err)
	}
	return nil
}
