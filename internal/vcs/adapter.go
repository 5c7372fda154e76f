// Package vcs issues all mutating operations against the version-control
// system. No other arbor component writes git state.
//
// The adapter shells out to the host git binary through execx.Runner so
// tests can substitute a fake. It surfaces failures to its caller and
// never retries; the only sanctioned fallback is the raw directory
// removal inside RemoveWorktree.
package vcs

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/arbolabs/arbor/internal/execx"
)

// Worktree is one entry reported by `git worktree list`.
type Worktree struct {
	Path     string
	Branch   string
	Head     string
	Detached bool
}

// Adapter runs git commands rooted at the parent repository.
type Adapter struct {
	runner execx.Runner
	root   string
	log    *zap.Logger

	// removeAll is swappable in tests of the degraded-removal path.
	removeAll func(string) error
}

// NewAdapter creates an Adapter whose commands run in root.
func NewAdapter(runner execx.Runner, root string, log *zap.Logger) *Adapter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Adapter{runner: runner, root: root, log: log, removeAll: os.RemoveAll}
}

func (a *Adapter) git(ctx context.Context, args ...string) ([]byte, error) {
	return a.runner.Run(ctx, a.root, "git", args...)
}

// CreateWorktree creates branch at base and materializes it in a new
// working directory at path. Git rejects the call if the branch or path
// already exists, or base is unknown; that rejection is passed through
// untouched so racing invocations surface it instead of masking it.
func (a *Adapter) CreateWorktree(ctx context.Context, path, branch, base string) error {
	if _, err := a.git(ctx, "worktree", "add", "-b", branch, path, base); err != nil {
		return fmt.Errorf("creating worktree at %s: %w", path, err)
	}
	return nil
}

// ListWorktrees enumerates every working directory git considers active
// for this repository, including the parent.
func (a *Adapter) ListWorktrees(ctx context.Context) ([]Worktree, error) {
	out, err := a.git(ctx, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("listing worktrees: %w", err)
	}
	return parsePorcelain(string(out)), nil
}

// RemoveWorktree deregisters path and deletes its contents. When git no
// longer knows the path, it falls back to removing the directory
// recursively; degraded reports that the fallback ran.
func (a *Adapter) RemoveWorktree(ctx context.Context, path string) (degraded bool, err error) {
	_, gitErr := a.git(ctx, "worktree", "remove", "--force", path)
	if gitErr == nil {
		return false, nil
	}
	a.log.Debug("git worktree remove failed, falling back to rm -rf",
		zap.String("path", path), zap.Error(gitErr))

	if err := a.removeAll(path); err != nil {
		return true, fmt.Errorf("removing worktree directory %s: %w", path, err)
	}
	return true, nil
}

// Prune drops git bookkeeping for working directories that no longer
// exist on disk.
func (a *Adapter) Prune(ctx context.Context) error {
	if _, err := a.git(ctx, "worktree", "prune"); err != nil {
		return fmt.Errorf("pruning worktrees: %w", err)
	}
	return nil
}

// DeleteBranch deletes branch unconditionally. Callers demote any failure
// (including an absent branch) to a warning.
func (a *Adapter) DeleteBranch(ctx context.Context, branch string) error {
	if _, err := a.git(ctx, "branch", "-D", branch); err != nil {
		return fmt.Errorf("deleting branch %s: %w", branch, err)
	}
	return nil
}
