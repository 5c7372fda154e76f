// Package propagate snapshots a fixed set of uncommitted parent-repository
// files into a freshly created worktree so it is immediately usable.
//
// The set is enumerated, never discovered: the real environment file (or
// the committed example under the real name), the agent local-settings
// file, and the secrets-detection baseline. Copies are one-time snapshots;
// nothing is synchronized afterwards and contents are never transformed.
package propagate

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

const (
	// EnvFile holds the real, uncommitted environment variables.
	EnvFile = ".env"
	// EnvExampleFile is the committed template copied under EnvFile's
	// name when the real file is absent.
	EnvExampleFile = ".env.example"
)

// AgentSettingsPath and SecretsBaselinePath are optional per-user files
// replicated into each worktree but never committed.
var (
	AgentSettingsPath   = filepath.Join(".claude", "settings.local.json")
	SecretsBaselinePath = ".secrets.baseline"
)

// Result records what a propagation pass copied and warned about.
type Result struct {
	// Copied lists relative paths written into the worktree.
	Copied []string
	// Warnings are non-fatal conditions the caller must surface.
	Warnings []string
}

// Propagator copies the enumerated file set from a parent repository root
// into a worktree.
type Propagator struct {
	log *zap.Logger
}

// New creates a Propagator.
func New(log *zap.Logger) *Propagator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Propagator{log: log}
}

// Apply runs the propagation rules in order, each independently. IO
// problems never fail the pass; they demote to warnings so a worktree
// ends clearly flagged rather than silently broken.
func (p *Propagator) Apply(root, worktreePath string) *Result {
	res := &Result{}

	// Env file: prefer the real one, fall back to the example, warn when
	// neither exists.
	switch {
	case fileExists(filepath.Join(root, EnvFile)):
		p.copy(res, root, worktreePath, EnvFile, EnvFile)
	case fileExists(filepath.Join(root, EnvExampleFile)):
		if p.copy(res, root, worktreePath, EnvExampleFile, EnvFile) {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("%s created from %s; update it with real values", EnvFile, EnvExampleFile))
		}
	default:
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("no %s or %s in parent repository; create %s manually", EnvFile, EnvExampleFile, EnvFile))
	}

	// Optional files: missing sources are silent.
	for _, rel := range []string{AgentSettingsPath, SecretsBaselinePath} {
		if fileExists(filepath.Join(root, rel)) {
			p.copy(res, root, worktreePath, rel, rel)
		}
	}

	return res
}

// copy snapshots one file, preserving its mode, and records the outcome.
func (p *Propagator) copy(res *Result, root, worktreePath, srcRel, dstRel string) bool {
	src := filepath.Join(root, srcRel)
	dst := filepath.Join(worktreePath, dstRel)

	if err := copyFile(src, dst); err != nil {
		p.log.Debug("propagation copy failed", zap.String("src", src), zap.Error(err))
		res.Warnings = append(res.Warnings, fmt.Sprintf("could not copy %s: %v", srcRel, err))
		return false
	}

	res.Copied = append(res.Copied, dstRel)
	return true
}

func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	content, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dst, content, info.Mode().Perm())
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
