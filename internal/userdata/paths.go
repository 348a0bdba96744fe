package userdata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/armature-labs/armature/internal/branding"
)

// Directory name constants under the home dot-directory.
const (
	LogsDirName  = "logs"
	CacheDirName = "cache"
)

// Permission constants.
const (
	DirPermNormal  os.FileMode = 0755
	FilePermNormal os.FileMode = 0644
)

// Root returns the path to the dot-directory (~/.armature).
func Root() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, branding.HomeDir()), nil
}

// LogsDir returns the path to the instruction-log directory.
// It checks the ARMATURE_LOGS environment variable first,
// then falls back to ~/.armature/logs.
func LogsDir() (string, error) {
	if v := os.Getenv(branding.EnvVar("LOGS")); v != "" {
		return v, nil
	}
	root, err := Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, LogsDirName), nil
}

// CacheDir returns the path to the cache directory (registry index,
// version-check cache). It checks the ARMATURE_CACHE environment variable
// first, then falls back to ~/.armature/cache.
func CacheDir() (string, error) {
	if v := os.Getenv(branding.EnvVar("CACHE")); v != "" {
		return v, nil
	}
	root, err := Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, CacheDirName), nil
}
