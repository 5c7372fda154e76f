// Package worktree implements the four arbor operations over a
// repository context: create, list, remove, clean.
//
// The manager owns ordering and error policy. Fatal problems abort the
// subcommand immediately; propagation and dependency problems demote to
// warnings so a worktree always ends either clearly failed or usable,
// never silently broken. Nothing here ever writes into the parent
// repository root.
package worktree

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/arbolabs/arbor/internal/propagate"
	"github.com/arbolabs/arbor/internal/repo"
	"github.com/arbolabs/arbor/internal/report"
	"github.com/arbolabs/arbor/internal/vcs"
)

// VCS is the slice of the version-control adapter the manager needs.
type VCS interface {
	CreateWorktree(ctx context.Context, path, branch, base string) error
	ListWorktrees(ctx context.Context) ([]vcs.Worktree, error)
	RemoveWorktree(ctx context.Context, path string) (degraded bool, err error)
	Prune(ctx context.Context) error
	DeleteBranch(ctx context.Context, branch string) error
}

// Propagator snapshots parent files into a new worktree.
type Propagator interface {
	Apply(root, worktreePath string) *propagate.Result
}

// Materializer installs the locked dependency set into a worktree.
type Materializer interface {
	Install(ctx context.Context, dir string) (warning string)
}

// Prompter asks the user yes/no questions.
type Prompter interface {
	Confirm(question string) (bool, error)
}

// Manager composes the repository context, VCS adapter, propagator, and
// materializer into the user-visible operations.
type Manager struct {
	repo   *repo.Context
	vcs    VCS
	prop   Propagator
	deps   Materializer
	rep    *report.Reporter
	prompt Prompter
	log    *zap.Logger
}

// NewManager creates a Manager.
func NewManager(rc *repo.Context, v VCS, prop Propagator, deps Materializer,
	rep *report.Reporter, prompt Prompter, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{repo: rc, vcs: v, prop: prop, deps: deps, rep: rep, prompt: prompt, log: log}
}

// Create provisions a new worktree named name from base (current HEAD
// when base is empty): branch and directory first, then propagated
// files, then dependencies. The success banner prints only after all
// three were attempted.
func (m *Manager) Create(ctx context.Context, name, base string) error {
	wt, err := m.repo.ResolveNew(name)
	if err != nil {
		return err
	}
	rev, err := m.repo.ResolveRevision(base)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(m.repo.SiblingDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", m.repo.SiblingDir, err)
	}

	m.rep.Info("Creating worktree %s (branch %s, base %s)", wt.Name, wt.Branch, shortHash(rev))
	if err := m.vcs.CreateWorktree(ctx, wt.Path, wt.Branch, rev); err != nil {
		// Partial state, if any, is left for the user to inspect.
		return err
	}

	res := m.prop.Apply(m.repo.Root, wt.Path)
	for _, f := range res.Copied {
		m.rep.Info("Copied %s", f)
	}
	for _, w := range res.Warnings {
		m.rep.Warning("%s", w)
	}

	if warning := m.deps.Install(ctx, wt.Path); warning != "" {
		m.rep.Warning("%s", warning)
	} else {
		m.rep.Info("Dependencies installed")
	}

	m.rep.Success("Worktree %s is ready", wt.Name)
	m.rep.Plain("")
	m.rep.Plain("  cd %s", wt.Path)
	m.rep.Plain("  branch: %s", wt.Branch)
	m.rep.Plain("")
	m.rep.Plain("Note: all worktrees share the parent's services (database, cache).")
	return nil
}

// List prints every worktree git knows about, then the entries under the
// sibling directory with their current branch. Read-only.
func (m *Manager) List(ctx context.Context) error {
	wts, err := m.vcs.ListWorktrees(ctx)
	if err != nil {
		return err
	}

	m.rep.Info("Worktrees registered with git:")
	byPath := make(map[string]vcs.Worktree, len(wts))
	for _, wt := range wts {
		branch := wt.Branch
		if branch == "" {
			branch = "(detached)"
		}
		m.rep.Plain("  %s  %s", wt.Path, branch)
		byPath[canonical(wt.Path)] = wt
	}

	entries, err := os.ReadDir(m.repo.SiblingDir)
	if errors.Is(err, fs.ErrNotExist) {
		m.rep.Info("No managed worktrees under %s", m.repo.SiblingDir)
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", m.repo.SiblingDir, err)
	}

	m.rep.Plain("")
	m.rep.Info("Managed worktrees in %s:", m.repo.SiblingDir)
	if len(entries) == 0 {
		m.rep.Plain("  (none)")
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(m.repo.SiblingDir, entry.Name())
		branch := "(unknown)"
		if wt, ok := byPath[canonical(path)]; ok && wt.Branch != "" {
			branch = wt.Branch
		}
		m.rep.Plain("  %s  %s", entry.Name(), branch)
	}
	return nil
}

// Remove deregisters and deletes the named worktree, then offers to
// delete its branch.
func (m *Manager) Remove(ctx context.Context, name string) error {
	wt, err := m.repo.ResolveExisting(name)
	if err != nil {
		return err
	}

	degraded, err := m.vcs.RemoveWorktree(ctx, wt.Path)
	if err != nil {
		return err
	}
	if degraded {
		m.rep.Warning("git no longer tracked %s; removed the directory directly", wt.Path)
	}
	m.rep.Success("Removed worktree %s", wt.Name)

	ok, err := m.prompt.Confirm(fmt.Sprintf("Delete branch %s as well?", wt.Branch))
	if err != nil {
		return err
	}
	if !ok {
		m.rep.Info("Keeping branch %s", wt.Branch)
		return nil
	}
	if err := m.vcs.DeleteBranch(ctx, wt.Branch); err != nil {
		m.rep.Warning("could not delete branch %s: %v", wt.Branch, err)
		return nil
	}
	m.rep.Success("Deleted branch %s", wt.Branch)
	return nil
}

// Clean removes every worktree git reports other than the parent
// repository, then prunes stale bookkeeping. Requires confirmation.
func (m *Manager) Clean(ctx context.Context) error {
	wts, err := m.vcs.ListWorktrees(ctx)
	if err != nil {
		return err
	}

	root := canonical(m.repo.Root)
	var targets []vcs.Worktree
	for _, wt := range wts {
		if canonical(wt.Path) == root {
			continue
		}
		targets = append(targets, wt)
	}

	if len(targets) == 0 {
		m.rep.Info("No worktrees to clean")
		return nil
	}

	m.rep.Warning("This removes %d worktree(s):", len(targets))
	for _, wt := range targets {
		m.rep.Plain("  %s", wt.Path)
	}
	ok, err := m.prompt.Confirm("Remove all of them?")
	if err != nil {
		return err
	}
	if !ok {
		m.rep.Info("Aborted; nothing removed")
		return nil
	}

	for _, wt := range targets {
		degraded, err := m.vcs.RemoveWorktree(ctx, wt.Path)
		if err != nil {
			m.rep.Warning("could not remove %s: %v", wt.Path, err)
			continue
		}
		if degraded {
			m.rep.Warning("git no longer tracked %s; removed the directory directly", wt.Path)
		}
		m.rep.Info("Removed %s", wt.Path)
	}

	if err := m.vcs.Prune(ctx); err != nil {
		m.rep.Warning("could not prune worktree bookkeeping: %v", err)
	}
	m.rep.Success("Clean complete")
	return nil
}

// canonical resolves symlinks for path comparison; porcelain output and
// the sibling directory may reach the same tree through different links.
func canonical(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return filepath.Clean(resolved)
	}
	return filepath.Clean(path)
}

func shortHash(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}
