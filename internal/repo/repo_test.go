package repo

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initSandboxRepo creates a git repository with one commit under a fresh
// temp directory and returns the repo path and the commit hash.
func initSandboxRepo(t *testing.T) (string, string) {
	t.Helper()

	base := t.TempDir()
	dir := filepath.Join(base, "parent")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	r, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("sandbox\n"), 0o644))
	wt, err := r.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("README.md")
	require.NoError(t, err)

	hash, err := wt.Commit("initial commit", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	return dir, hash.String()
}

func TestDiscover_InsideRepository(t *testing.T) {
	dir, _ := initSandboxRepo(t)

	ctx, err := Discover(dir)
	require.NoError(t, err)

	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Equal(t, resolved, ctx.Root)
	assert.Equal(t, filepath.Join(filepath.Dir(resolved), SiblingDirName), ctx.SiblingDir)
}

func TestDiscover_FromSubdirectory(t *testing.T) {
	dir, _ := initSandboxRepo(t)
	sub := filepath.Join(dir, "internal", "deep")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	ctx, err := Discover(sub)
	require.NoError(t, err)

	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Equal(t, resolved, ctx.Root)
}

func TestDiscover_OutsideRepository(t *testing.T) {
	_, err := Discover(t.TempDir())
	assert.ErrorIs(t, err, ErrNotARepository)
}

func TestContext_HeadAndResolveRevision(t *testing.T) {
	dir, head := initSandboxRepo(t)
	ctx, err := Discover(dir)
	require.NoError(t, err)

	got, err := ctx.Head()
	require.NoError(t, err)
	assert.Equal(t, head, got)

	// Empty revision defaults to HEAD.
	got, err = ctx.ResolveRevision("")
	require.NoError(t, err)
	assert.Equal(t, head, got)

	// Explicit hash resolves to itself.
	got, err = ctx.ResolveRevision(head)
	require.NoError(t, err)
	assert.Equal(t, head, got)

	_, err = ctx.ResolveRevision("no-such-ref")
	assert.ErrorIs(t, err, ErrUnknownRevision)
}

func TestContext_Resolve(t *testing.T) {
	dir, _ := initSandboxRepo(t)
	ctx, err := Discover(dir)
	require.NoError(t, err)

	m, err := ctx.Resolve("feat-a")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(ctx.SiblingDir, "feat-a"), m.Path)
	assert.Equal(t, "worktree/feat-a", m.Branch)

	_, err = ctx.Resolve("")
	assert.ErrorIs(t, err, ErrMissingName)
}

func TestContext_ResolveRejectsUnsafeNames(t *testing.T) {
	dir, _ := initSandboxRepo(t)
	ctx, err := Discover(dir)
	require.NoError(t, err)

	for _, name := range []string{
		"..", "a/b", `a\b`, "has space", "-flag", "tilde~1", "colon:x",
		"star*", "quest?", "caret^", "br[a]", "ref@{1}", "x.lock",
	} {
		_, err := ctx.Resolve(name)
		assert.ErrorIs(t, err, ErrInvalidName, "name %q", name)
	}

	// Names that must stay valid.
	for _, name := range []string{"feat-a", "feat_b", "v1.2", "UPPER", "a"} {
		_, err := ctx.Resolve(name)
		assert.NoError(t, err, "name %q", name)
	}
}

func TestContext_ResolveNewAndExisting(t *testing.T) {
	dir, _ := initSandboxRepo(t)
	ctx, err := Discover(dir)
	require.NoError(t, err)

	// Nothing on disk yet: new succeeds, existing fails.
	_, err = ctx.ResolveNew("feat-a")
	require.NoError(t, err)
	_, err = ctx.ResolveExisting("feat-a")
	assert.ErrorIs(t, err, ErrNotFound)

	// Materialize the path: new collides, existing succeeds.
	require.NoError(t, os.MkdirAll(filepath.Join(ctx.SiblingDir, "feat-a"), 0o755))
	_, err = ctx.ResolveNew("feat-a")
	assert.ErrorIs(t, err, ErrNameCollision)
	m, err := ctx.ResolveExisting("feat-a")
	require.NoError(t, err)
	assert.Equal(t, "worktree/feat-a", m.Branch)
}
