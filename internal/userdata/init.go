package userdata

import (
	"fmt"
	"io"
	"os"

	"github.com/armature-labs/armature/internal/platform"
)

// Init creates the user-scoped directory tree, printing progress to w.
// Existing directories are skipped with a message. Safe to call from any
// command; it is a no-op once everything exists.
func Init(w io.Writer) error {
	root, err := Root()
	if err != nil {
		return err
	}
	if err := ensureDir(w, root, DirPermNormal); err != nil {
		return err
	}

	logs, err := LogsDir()
	if err != nil {
		return err
	}
	if err := ensureDir(w, logs, DirPermNormal); err != nil {
		return err
	}

	cache, err := CacheDir()
	if err != nil {
		return err
	}
	return ensureDir(w, cache, DirPermNormal)
}

// ensureDir creates a directory if it doesn't exist.
func ensureDir(w io.Writer, path string, perm os.FileMode) error {
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			fmt.Fprintf(w, "  [SKIP] %s already exists\n", path)
			return nil
		}
		return fmt.Errorf("%s exists but is not a directory", path)
	}

	if err := os.MkdirAll(path, perm); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	// MkdirAll may not apply exact perms if parent dirs needed creation.
	if err := platform.Chmod(path, perm); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	fmt.Fprintf(w, "  [ OK ] Created %s\n", path)
	return nil
}
