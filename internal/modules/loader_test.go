package modules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStdModules(t *testing.T) {
	assert.Equal(t, []string{"std/bool", "std/gates"}, StdModules())

	l := NewLoader()
	prog, path, err := l.Load("std/gates", "")
	require.NoError(t, err)
	assert.Equal(t, "std/gates", path)
	assert.NotEmpty(t, prog.Statements)

	again, _, err := l.Load("std/gates.fqy", "/elsewhere")
	require.NoError(t, err)
	assert.Same(t, prog, again)
	assert.True(t, l.LoadedModules["std/gates"].IsVirtual)

	_, _, err = l.Load("std/missing", "")
	assert.ErrorContains(t, err, "std/gates")
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib.fqy"), []byte("data Bool = F | T\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "pkg"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pkg", "pkg.fqy"), []byte("data Color = R | G\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.fqy"), []byte("let = \n"), 0o644))

	l := NewLoader()

	_, path, err := l.Load("./lib", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "lib.fqy"), path)

	_, path, err = l.Load("./lib.fqy", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "lib.fqy"), path)
	assert.Len(t, l.LoadedModules, 1)

	_, path, err = l.Load("./pkg", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "pkg", "pkg.fqy"), path)
	assert.Equal(t, "pkg", l.LoadedModules[path].Name)

	_, _, err = l.Load("./nope", dir)
	assert.ErrorContains(t, err, "module not found")

	_, _, err = l.Load("./broken", dir)
	assert.Error(t, err)
}
