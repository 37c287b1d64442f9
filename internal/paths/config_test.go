package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("schemas: []\n"), 0o600))
}

func TestUserConfig(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	require.Equal(t, "/home/tester/.config/filterql/config.yaml", UserConfig())
}

func TestResolveConfig_Explicit(t *testing.T) {
	dir := t.TempDir()
	explicit := filepath.Join(dir, "custom.yaml")

	path, found := ResolveConfig(explicit, dir)
	require.Equal(t, explicit, path)
	require.False(t, found, "explicit path is returned even when missing")

	writeFile(t, explicit)
	path, found = ResolveConfig(explicit, dir)
	require.Equal(t, explicit, path)
	require.True(t, found)
}

func TestResolveConfig_LocalBeforeUser(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeFile(t, filepath.Join(home, ".config", "filterql", "config.yaml"))

	project := t.TempDir()
	path, found := ResolveConfig("", project)
	require.True(t, found)
	require.Equal(t, filepath.Join(home, ".config", "filterql", "config.yaml"), path)

	local := filepath.Join(project, LocalConfig)
	writeFile(t, local)
	path, found = ResolveConfig("", project)
	require.True(t, found)
	require.Equal(t, local, path)
}

func TestResolveConfig_NothingFound(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, found := ResolveConfig("", t.TempDir())
	require.False(t, found)
	require.Equal(t, filepath.Join(home, ".config", "filterql", "config.yaml"), path)
}

func TestResolveConfig_IgnoresDirectories(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	project := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(project, LocalConfig), 0o750))

	_, found := ResolveConfig("", project)
	require.False(t, found)
}
