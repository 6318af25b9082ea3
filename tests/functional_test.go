package tests

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/funvibe/funqy/internal/config"
	"github.com/funvibe/funqy/pkg/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFunctional runs every testdata program that has a .want file through
// the command line entry point and compares stdout followed by stderr.
func TestFunctional(t *testing.T) {
	dataDir, err := filepath.Abs("testdata")
	require.NoError(t, err)

	var testFiles []string
	err = filepath.Walk(dataDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !config.HasSourceExt(path) {
			return nil
		}
		if _, err := os.Stat(config.TrimSourceExt(path) + ".want"); err == nil {
			testFiles = append(testFiles, path)
		}
		return nil
	})
	require.NoError(t, err)
	if len(testFiles) == 0 {
		t.Skip("No test files with .want found")
	}

	// settings and .env files in the caller's directory must not leak in
	t.Chdir(t.TempDir())

	for _, testFile := range testFiles {
		testName := config.TrimSourceExt(filepath.Base(testFile))
		t.Run(testName, func(t *testing.T) {
			wantBytes, err := os.ReadFile(config.TrimSourceExt(testFile) + ".want")
			require.NoError(t, err)

			var stdout, stderr bytes.Buffer
			cli.Main([]string{"run", "-seed", "1", testFile}, &stdout, &stderr)

			// Normalize paths in stderr so diagnostics read file:line:col
			stderrStr := strings.ReplaceAll(stderr.String(), filepath.Dir(testFile)+string(filepath.Separator), "")

			got := strings.TrimSpace(stdout.String())
			if s := strings.TrimSpace(stderrStr); s != "" {
				if got != "" {
					got += "\n"
				}
				got += s
			}
			want := strings.TrimSpace(strings.ReplaceAll(string(wantBytes), "\r\n", "\n"))
			assert.Equal(t, want, got)
		})
	}
}
