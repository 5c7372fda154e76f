// Package deps materializes the locked dependency set inside a new
// worktree by running the host dependency resolver.
//
// The resolver is optional to the tool's contract: a missing binary or a
// non-zero exit both surface as a warning with a remediation hint, never
// as an error, and never as silent success.
package deps

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/arbolabs/arbor/internal/execx"
)

// Config selects the resolver invocation.
type Config struct {
	// Bin is the resolver binary looked up on PATH.
	Bin string
	// Args are passed to Bin inside the worktree.
	Args []string
	// Timeout bounds a single resolver run. Zero means no limit.
	Timeout time.Duration
}

// Materializer runs the resolver inside worktrees.
type Materializer struct {
	cfg      Config
	runner   execx.Runner
	lookPath func(string) (string, error)
	log      *zap.Logger
}

// New creates a Materializer.
func New(cfg Config, runner execx.Runner, log *zap.Logger) *Materializer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Materializer{cfg: cfg, runner: runner, lookPath: execx.LookPath, log: log}
}

// Install runs the resolver inside dir. The returned warning is empty on
// success; otherwise it explains what to run manually.
func (m *Materializer) Install(ctx context.Context, dir string) (warning string) {
	invocation := strings.TrimSpace(m.cfg.Bin + " " + strings.Join(m.cfg.Args, " "))

	if _, err := m.lookPath(m.cfg.Bin); err != nil {
		return fmt.Sprintf("%s not found on PATH; run %q in the worktree once it is installed",
			m.cfg.Bin, invocation)
	}

	if m.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.cfg.Timeout)
		defer cancel()
	}

	m.log.Debug("materializing dependencies", zap.String("dir", dir), zap.String("cmd", invocation))
	if _, err := m.runner.Run(ctx, dir, m.cfg.Bin, m.cfg.Args...); err != nil {
		m.log.Debug("resolver failed", zap.Error(err))
		return fmt.Sprintf("dependency install failed (%v); run %q manually in the worktree",
			err, invocation)
	}
	return ""
}
