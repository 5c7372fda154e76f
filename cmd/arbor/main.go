// Package main implements the arbor CLI for managing parallel
// development worktrees.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arbolabs/arbor/internal/config"
	"github.com/arbolabs/arbor/internal/deps"
	"github.com/arbolabs/arbor/internal/execx"
	"github.com/arbolabs/arbor/internal/logging"
	"github.com/arbolabs/arbor/internal/propagate"
	"github.com/arbolabs/arbor/internal/repo"
	"github.com/arbolabs/arbor/internal/report"
	"github.com/arbolabs/arbor/internal/vcs"
	"github.com/arbolabs/arbor/internal/worktree"
)

var (
	verbose bool
	noColor bool

	// version information
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arbor",
	Short: "Manage parallel development worktrees",
	Long: `arbor provisions isolated git worktrees for concurrent development
sessions. Each worktree is a full checkout of a dedicated branch under a
"worktrees" directory next to the repository root, pre-seeded with the
parent's environment files and with its dependencies installed.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug diagnostics on stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colorized output")
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(cleanCmd)
}

// newManager wires the components for one invocation. Configuration
// problems fall back to defaults; preflight failures are returned for
// the caller to report.
func newManager(cmd *cobra.Command) (*worktree.Manager, *report.Reporter, error) {
	cfg, cfgErr := config.Load("")
	if cfgErr != nil {
		cfg = config.Default()
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	rep := report.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg.Output.Color && !noColor)
	if cfgErr != nil {
		rep.Warning("ignoring user config, using defaults: %v", cfgErr)
	}

	log, err := logging.New(&cfg.Logging)
	if err != nil {
		return nil, rep, err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, rep, fmt.Errorf("resolving working directory: %w", err)
	}
	rc, err := repo.Discover(cwd)
	if err != nil {
		return nil, rep, err
	}

	runner := execx.NewRunner(log.Named("exec"))
	adapter := vcs.NewAdapter(runner, rc.Root, log.Named("vcs"))
	prop := propagate.New(log.Named("propagate"))
	mat := deps.New(deps.Config{
		Bin:     cfg.Resolver.Bin,
		Args:    cfg.Resolver.Args,
		Timeout: cfg.Resolver.Timeout.Duration(),
	}, runner, log.Named("deps"))
	prompt := report.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

	return worktree.NewManager(rc, adapter, prop, mat, rep, prompt, log), rep, nil
}

// fail reports err through the reporter exactly once and keeps cobra
// from printing it again or dumping usage on a runtime failure.
func fail(cmd *cobra.Command, rep *report.Reporter, err error) error {
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	rep.Error("%v", err)
	return err
}
