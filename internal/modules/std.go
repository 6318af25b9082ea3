package modules

import (
	"embed"
	"io/fs"
	"sort"
	"strings"

	"github.com/funvibe/funqy/internal/config"
)

//go:embed std/*.fqy
var stdFS embed.FS

// StdModules lists the import paths of the embedded standard library.
func StdModules() []string {
	entries, err := fs.ReadDir(stdFS, "std")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), config.SourceFileExt) {
			names = append(names, config.StdPrefix+config.TrimSourceExt(e.Name()))
		}
	}
	sort.Strings(names)
	return names
}

// StdSource returns the source of a standard library module.
func StdSource(path string) (string, bool) {
	data, err := stdFS.ReadFile(config.StdPrefix + config.TrimSourceExt(strings.TrimPrefix(path, config.StdPrefix)) + config.SourceFileExt)
	if err != nil {
		return "", false
	}
	return string(data), true
}
