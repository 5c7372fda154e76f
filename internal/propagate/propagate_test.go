package propagate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (root, wt string) {
	t.Helper()
	base := t.TempDir()
	root = filepath.Join(base, "parent")
	wt = filepath.Join(base, "worktrees", "feat-a")
	require.NoError(t, os.MkdirAll(root, 0o755))
	require.NoError(t, os.MkdirAll(wt, 0o755))
	return root, wt
}

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestApply_RealEnvCopiedVerbatim(t *testing.T) {
	root, wt := setup(t)
	write(t, filepath.Join(root, EnvFile), "KEY=1\n")
	write(t, filepath.Join(root, EnvExampleFile), "KEY=example\n")

	res := New(nil).Apply(root, wt)

	got, err := os.ReadFile(filepath.Join(wt, EnvFile))
	require.NoError(t, err)
	assert.Equal(t, "KEY=1\n", string(got))
	assert.Contains(t, res.Copied, EnvFile)
	assert.Empty(t, res.Warnings)
}

func TestApply_ExampleFallbackWarns(t *testing.T) {
	root, wt := setup(t)
	write(t, filepath.Join(root, EnvExampleFile), "KEY=example\n")

	res := New(nil).Apply(root, wt)

	got, err := os.ReadFile(filepath.Join(wt, EnvFile))
	require.NoError(t, err)
	assert.Equal(t, "KEY=example\n", string(got))

	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "update it")

	// The example keeps its own name only in the parent.
	_, err = os.Stat(filepath.Join(wt, EnvExampleFile))
	assert.True(t, os.IsNotExist(err))
}

func TestApply_NoEnvAtAllWarnsAndWritesNothing(t *testing.T) {
	root, wt := setup(t)

	res := New(nil).Apply(root, wt)

	_, err := os.Stat(filepath.Join(wt, EnvFile))
	assert.True(t, os.IsNotExist(err))
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "manually")
}

func TestApply_OptionalFilesCopiedWhenPresent(t *testing.T) {
	root, wt := setup(t)
	write(t, filepath.Join(root, EnvFile), "KEY=1\n")
	write(t, filepath.Join(root, AgentSettingsPath), `{"permissions":{}}`)
	write(t, filepath.Join(root, SecretsBaselinePath), `{"version":"1.4.0"}`)

	res := New(nil).Apply(root, wt)

	assert.ElementsMatch(t, []string{EnvFile, AgentSettingsPath, SecretsBaselinePath}, res.Copied)
	assert.Empty(t, res.Warnings)

	settings, err := os.ReadFile(filepath.Join(wt, AgentSettingsPath))
	require.NoError(t, err)
	assert.Equal(t, `{"permissions":{}}`, string(settings))
}

func TestApply_OptionalFilesSilentWhenMissing(t *testing.T) {
	root, wt := setup(t)
	write(t, filepath.Join(root, EnvFile), "KEY=1\n")

	res := New(nil).Apply(root, wt)

	assert.Equal(t, []string{EnvFile}, res.Copied)
	assert.Empty(t, res.Warnings)
}

func TestApply_PreservesFileMode(t *testing.T) {
	root, wt := setup(t)
	envPath := filepath.Join(root, EnvFile)
	write(t, envPath, "KEY=1\n")
	require.NoError(t, os.Chmod(envPath, 0o600))

	New(nil).Apply(root, wt)

	info, err := os.Stat(filepath.Join(wt, EnvFile))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
