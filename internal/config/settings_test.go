package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: 7\nmax_depth: 50\nlog_level: debug\njournal: runs.db\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("FUNQY_MAX_BRANCHES=128\n"), 0o644))
	t.Setenv(EnvMaxDepth, "75")
	t.Setenv(EnvMaxBranches, "")
	os.Unsetenv(EnvMaxBranches)

	s, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, s.Seed)
	assert.Equal(t, uint64(7), *s.Seed)
	assert.Equal(t, 75, s.MaxDepth)
	assert.Equal(t, 128, s.MaxBranches)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, "runs.db", s.Journal)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("max_depth: [1"), 0o644))
	_, err := Load(bad)
	assert.Error(t, err)

	level := filepath.Join(dir, "level.yaml")
	require.NoError(t, os.WriteFile(level, []byte("log_level: loud\n"), 0o644))
	_, err = Load(level)
	assert.ErrorContains(t, err, "log level")

	t.Setenv(EnvSeed, "not-a-number")
	_, err = Load("")
	assert.Error(t, err)
}

func TestSourceExt(t *testing.T) {
	assert.True(t, HasSourceExt("gates.fqy"))
	assert.True(t, HasSourceExt("dir/gates.funqy"))
	assert.False(t, HasSourceExt("gates.go"))
	assert.Equal(t, "gates", TrimSourceExt("gates.fqy"))
	assert.Equal(t, "gates.txt", TrimSourceExt("gates.txt"))
}
