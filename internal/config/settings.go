package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Settings holds interpreter configuration.
type Settings struct {
	// Seed for measurement; nil picks a fresh seed per run.
	Seed        *uint64 `yaml:"seed,omitempty"`
	MaxDepth    int     `yaml:"max_depth"`
	MaxSteps    int     `yaml:"max_steps"`
	MaxBranches int     `yaml:"max_branches"`
	LogLevel    string  `yaml:"log_level"`
	LogPretty   bool    `yaml:"log_pretty"`
	Journal     string  `yaml:"journal"`
	History     string  `yaml:"history"`
}

// Defaults returns the built-in settings.
func Defaults() *Settings {
	return &Settings{
		MaxDepth:    10000,
		MaxSteps:    0,
		MaxBranches: 1 << 16,
		LogLevel:    "warn",
	}
}

// Load reads configuration in order: defaults, the YAML settings file (if it
// exists), a .env file (if it exists), then FUNQY_* environment variables.
func Load(path string) (*Settings, error) {
	s := Defaults()

	if path == "" {
		path = DefaultSettingsFile
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	// Load .env file if it exists
	_ = godotenv.Load()

	if err := s.applyEnv(); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) applyEnv() error {
	if value := os.Getenv(EnvSeed); value != "" {
		seed, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		s.Seed = &seed
	}
	s.MaxDepth = getEnvAsInt(EnvMaxDepth, s.MaxDepth)
	s.MaxSteps = getEnvAsInt(EnvMaxSteps, s.MaxSteps)
	s.MaxBranches = getEnvAsInt(EnvMaxBranches, s.MaxBranches)
	s.LogLevel = getEnv(EnvLogLevel, s.LogLevel)
	s.LogPretty = getEnvAsBool(EnvLogPretty, s.LogPretty)
	s.Journal = getEnv(EnvJournal, s.Journal)
	s.History = getEnv(EnvHistory, s.History)
	return nil
}

// Validate checks ranges and enumerations.
func (s *Settings) Validate() error {
	if s.MaxDepth < 0 || s.MaxSteps < 0 || s.MaxBranches < 0 {
		return fmt.Errorf("limits must not be negative")
	}
	switch strings.ToLower(s.LogLevel) {
	case "debug", "info", "warn", "error", "disabled":
	default:
		return fmt.Errorf("unknown log level %q", s.LogLevel)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
