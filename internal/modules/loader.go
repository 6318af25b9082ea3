package modules

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/funvibe/funqy/internal/ast"
	"github.com/funvibe/funqy/internal/config"
	"github.com/funvibe/funqy/internal/parser"
	"github.com/funvibe/funqy/internal/utils"
)

// Loader resolves import paths, parses each file once and caches the result.
type Loader struct {
	LoadedModules map[string]*Module // Cache of loaded modules by canonical path
}

func NewLoader() *Loader {
	return &Loader{
		LoadedModules: make(map[string]*Module),
	}
}

// Load resolves path against baseDir and returns the parsed program with its
// canonical path. Paths under std/ come from the embedded standard library;
// paths starting with a dot are relative to baseDir.
func (l *Loader) Load(path, baseDir string) (*ast.Program, string, error) {
	mod, err := l.GetModule(path, baseDir)
	if err != nil {
		return nil, "", err
	}
	return mod.Program, mod.Path, nil
}

func (l *Loader) GetModule(path, baseDir string) (*Module, error) {
	if utils.IsStdImport(path) {
		return l.loadStd(path)
	}

	resolved := utils.ResolveImportPath(baseDir, path)
	absPath, err := filepath.Abs(resolved)
	if err != nil {
		return nil, err
	}
	absPath, err = resolveFile(absPath)
	if err != nil {
		return nil, err
	}

	// Check cache
	if mod, ok := l.LoadedModules[absPath]; ok {
		return mod, nil
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, err
	}
	prog, err := parser.ParseSource(string(data), absPath)
	if err != nil {
		return nil, err
	}
	mod := newModule(absPath, string(data), prog, false)
	l.LoadedModules[absPath] = mod
	return mod, nil
}

func (l *Loader) loadStd(path string) (*Module, error) {
	key := config.StdPrefix + config.TrimSourceExt(path[len(config.StdPrefix):])
	if mod, ok := l.LoadedModules[key]; ok {
		return mod, nil
	}
	src, ok := StdSource(key)
	if !ok {
		return nil, fmt.Errorf("unknown standard module %s (available: %v)", key, StdModules())
	}
	prog, err := parser.ParseSource(src, key+config.SourceFileExt)
	if err != nil {
		return nil, err
	}
	mod := newModule(key, src, prog, true)
	l.LoadedModules[key] = mod
	return mod, nil
}

// resolveFile finds the source file for path: the path itself, the path with a
// source extension, or for a directory the file named like the directory
// (e.g. mylib/mylib.fqy).
func resolveFile(path string) (string, error) {
	if info, err := os.Stat(path); err == nil {
		if !info.IsDir() {
			return path, nil
		}
		for _, ext := range config.SourceFileExtensions {
			main := filepath.Join(path, filepath.Base(path)+ext)
			if _, err := os.Stat(main); err == nil {
				return main, nil
			}
		}
		return "", fmt.Errorf("directory %s has no %s%s", path, filepath.Base(path), config.SourceFileExt)
	}
	for _, ext := range config.SourceFileExtensions {
		if _, err := os.Stat(path + ext); err == nil {
			return path + ext, nil
		}
	}
	return "", fmt.Errorf("module not found: %s", path)
}
