// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

const appDir = "cuaderno"

// Environment variables that override the data paths.
const (
	EnvDBPath  = "CUADERNO_DB"
	EnvLogPath = "CUADERNO_LOG"
)

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultDBPath returns the default path for the SQLite database.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), appDir, "cuaderno.db")
}

// DefaultLogPath returns the default path for the rotating log file.
func DefaultLogPath() string {
	return filepath.Join(XDGDataHome(), appDir, "cuaderno.log")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appDir, "config.toml")
}

// ResolvePath picks the environment value, then the config value, then the
// fallback. Environment references inside the chosen value are expanded.
func ResolvePath(envKey string, fileValue *string, fallback string) string {
	if v := os.Getenv(envKey); v != "" {
		return os.ExpandEnv(v)
	}
	if fileValue != nil && *fileValue != "" {
		return os.ExpandEnv(*fileValue)
	}
	return fallback
}
