// Package xdg resolves XDG Base Directory paths for the judge.
package xdg

import (
	"os"
	"path/filepath"
)

// CacheHome returns $XDG_CACHE_HOME, defaulting to ~/.cache. Without a home
// directory the system temp dir is used.
func CacheHome() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".cache")
	}
	return filepath.Join(home, ".cache")
}

// ConfigHome returns $XDG_CONFIG_HOME, defaulting to ~/.config.
func ConfigHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config")
	}
	return filepath.Join(home, ".config")
}

// AppCacheDir returns the application-specific cache directory.
func AppCacheDir(app string, elem ...string) string {
	return filepath.Join(append([]string{CacheHome(), app}, elem...)...)
}

// AppConfigDir returns the application-specific config directory.
func AppConfigDir(app string) string {
	return filepath.Join(ConfigHome(), app)
}

// EnsureDir creates the directory if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
