// Package repo locates the enclosing git repository and derives the paths
// and branch names of managed worktrees.
//
// Everything here is read-only: the package opens the repository with
// go-git to resolve its canonical root and revisions, but never mutates
// version-control state. Mutations belong to internal/vcs.
package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

const (
	// SiblingDirName is the fixed directory alongside the repository root
	// that holds all managed worktrees.
	SiblingDirName = "worktrees"

	// BranchPrefix is prepended to every managed worktree branch.
	BranchPrefix = "worktree/"
)

var (
	ErrNotARepository  = errors.New("not inside a git repository")
	ErrMissingName     = errors.New("worktree name is required")
	ErrInvalidName     = errors.New("invalid worktree name")
	ErrNameCollision   = errors.New("worktree path already exists")
	ErrNotFound        = errors.New("worktree does not exist")
	ErrUnknownRevision = errors.New("unknown base revision")
)

// Context describes the repository arbor operates on. It is established
// once per invocation and immutable afterwards.
type Context struct {
	// Root is the canonical absolute path of the repository root.
	Root string
	// SiblingDir holds all managed worktrees, alongside Root.
	SiblingDir string

	repo *git.Repository
}

// Managed is a worktree derived from a user-supplied name.
type Managed struct {
	Name   string
	Path   string
	Branch string
}

// Discover opens the repository enclosing dir and resolves its canonical
// root. Returns ErrNotARepository when dir is not inside a working tree.
func Discover(dir string) (*Context, error) {
	r, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotARepository, dir)
	}

	wt, err := r.Worktree()
	if err != nil {
		// Bare repositories have no working tree to manage siblings of.
		return nil, fmt.Errorf("%w: %s", ErrNotARepository, dir)
	}

	root := wt.Filesystem.Root()
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	root, err = filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving repository root: %w", err)
	}

	return &Context{
		Root:       root,
		SiblingDir: filepath.Join(filepath.Dir(root), SiblingDirName),
		repo:       r,
	}, nil
}

// Head returns the hash of the parent repository's current HEAD.
func (c *Context) Head() (string, error) {
	head, err := c.repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolving HEAD: %w", err)
	}
	return head.Hash().String(), nil
}

// ResolveRevision validates rev and returns its hash. An empty rev means
// the current HEAD. Returns ErrUnknownRevision for anything git cannot
// resolve.
func (c *Context) ResolveRevision(rev string) (string, error) {
	if rev == "" {
		return c.Head()
	}
	h, err := c.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownRevision, rev)
	}
	return h.String(), nil
}

// Resolve maps name to its worktree path and branch name without touching
// the filesystem.
func (c *Context) Resolve(name string) (Managed, error) {
	if name == "" {
		return Managed{}, ErrMissingName
	}
	if err := validateName(name); err != nil {
		return Managed{}, err
	}
	return Managed{
		Name:   name,
		Path:   filepath.Join(c.SiblingDir, name),
		Branch: BranchPrefix + name,
	}, nil
}

// ResolveNew resolves name for creation. Returns ErrNameCollision when the
// derived path already exists on disk.
func (c *Context) ResolveNew(name string) (Managed, error) {
	m, err := c.Resolve(name)
	if err != nil {
		return Managed{}, err
	}
	if _, err := os.Stat(m.Path); err == nil {
		return Managed{}, fmt.Errorf("%w: %s", ErrNameCollision, m.Path)
	}
	return m, nil
}

// ResolveExisting resolves name for removal. Returns ErrNotFound when the
// derived path is absent.
func (c *Context) ResolveExisting(name string) (Managed, error) {
	m, err := c.Resolve(name)
	if err != nil {
		return Managed{}, err
	}
	if _, err := os.Stat(m.Path); err != nil {
		return Managed{}, fmt.Errorf("%w: %s", ErrNotFound, m.Path)
	}
	return m, nil
}

// validateName enforces that a name is usable both as a single path
// segment and as the tail of a branch name.
func validateName(name string) error {
	if name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if strings.HasPrefix(name, "-") || strings.HasSuffix(name, ".lock") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if strings.Contains(name, "..") || strings.Contains(name, "@{") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	for _, r := range name {
		switch {
		case r <= 0x20 || r == 0x7f:
			return fmt.Errorf("%w: %q", ErrInvalidName, name)
		case strings.ContainsRune(`/\~^:?*[`, r):
			return fmt.Errorf("%w: %q", ErrInvalidName, name)
		}
	}
	return nil
}
