package config

import (
	"path/filepath"
	"strings"
)

// Version is reported by `funqy version`.
const Version = "0.3.0"

const SourceFileExt = ".fqy"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".fqy", ".funqy"}

// StdPrefix marks imports served from the embedded standard library.
const StdPrefix = "std/"

// DefaultSettingsFile is looked up in the working directory when no -config is given.
const DefaultSettingsFile = "funqy.yaml"

// Environment variables read by Load
const (
	EnvSeed        = "FUNQY_SEED"
	EnvMaxDepth    = "FUNQY_MAX_DEPTH"
	EnvMaxSteps    = "FUNQY_MAX_STEPS"
	EnvMaxBranches = "FUNQY_MAX_BRANCHES"
	EnvLogLevel    = "FUNQY_LOG_LEVEL"
	EnvLogPretty   = "FUNQY_LOG_PRETTY"
	EnvJournal     = "FUNQY_JOURNAL"
	EnvHistory     = "FUNQY_HISTORY"
)

// HasSourceExt reports whether path ends in a recognized source extension.
func HasSourceExt(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range SourceFileExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// TrimSourceExt removes a recognized source extension from name.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext)
		}
	}
	return name
}
