// Package fs locates redline data on the local filesystem.
package fs

import (
	"os"
	"path/filepath"
)

const appName = "redline"

// DefaultDataDir returns the default directory for review sessions.
// Uses XDG_DATA_HOME if set, otherwise falls back to ~/.local/share/redline,
// or system temp directory if home is unavailable.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(home, ".local", "share", appName)
}

// DefaultCacheDir returns the default cache directory for redline.
// Uses XDG_CACHE_HOME if set, otherwise falls back to ~/.cache/redline,
// or system temp directory if home is unavailable.
func DefaultCacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(home, ".cache", appName)
}
