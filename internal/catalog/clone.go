package catalog

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/armature-labs/armature/internal/template"
	"github.com/armature-labs/armature/internal/userdata"
)

// tmpSuffix is appended to the target dir during atomic clone.
const tmpSuffix = ".tmp"

// Clone materializes a template into targetDir. It performs a shallow
// clone of the template's repository, attempting a sparse checkout when
// the template declares a subdirectory, and strips the .git directory
// from the result so the new project starts without history.
//
// The clone is atomic: it writes to a .tmp directory first, then renames
// on success. On failure the .tmp directory is cleaned up.
func Clone(t *template.Template, targetDir string) error {
	if err := ensureGit(); err != nil {
		return err
	}

	if _, err := os.Stat(targetDir); err == nil {
		return fmt.Errorf("target directory %s already exists", targetDir)
	}

	tmpDir := targetDir + tmpSuffix

	// Clean up any leftover tmp dir from a previous failed attempt.
	_ = os.RemoveAll(tmpDir)

	if err := os.MkdirAll(filepath.Dir(targetDir), userdata.DirPermNormal); err != nil {
		return fmt.Errorf("creating parent directory: %w", err)
	}

	if t.Subdir != "" {
		if err := trySparseClone(tmpDir, t.URL, t.Subdir); err != nil {
			// Sparse clone failed — fall back to a full shallow clone.
			_ = os.RemoveAll(tmpDir)
			if err := fullShallowClone(tmpDir, t.URL); err != nil {
				_ = os.RemoveAll(tmpDir)
				return fmt.Errorf("cloning template: %w", err)
			}
		}
	} else if err := fullShallowClone(tmpDir, t.URL); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("cloning template: %w", err)
	}

	// New projects carry no template history.
	_ = os.RemoveAll(filepath.Join(tmpDir, ".git"))

	srcDir := tmpDir
	if t.Subdir != "" {
		srcDir = filepath.Join(tmpDir, filepath.FromSlash(t.Subdir))
		if _, err := os.Stat(srcDir); err != nil {
			_ = os.RemoveAll(tmpDir)
			return fmt.Errorf("template subdirectory %q not found in clone", t.Subdir)
		}
	}

	if err := os.Rename(srcDir, targetDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("finalizing template clone: %w", err)
	}
	_ = os.RemoveAll(tmpDir)

	return nil
}

// trySparseClone attempts a sparse shallow clone that only checks out subdir.
func trySparseClone(targetDir, repoURL, subdir string) error {
	cmd := exec.Command("git", "clone", "--depth=1", "--sparse", "--no-checkout", repoURL, targetDir)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("sparse clone: %w\n%s", err, strings.TrimSpace(string(output)))
	}

	cmd = exec.Command("git", "sparse-checkout", "set", subdir)
	cmd.Dir = targetDir
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("sparse-checkout set: %w\n%s", err, strings.TrimSpace(string(output)))
	}

	cmd = exec.Command("git", "checkout")
	cmd.Dir = targetDir
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("checkout: %w\n%s", err, strings.TrimSpace(string(output)))
	}

	return nil
}

// fullShallowClone performs a regular --depth=1 clone (fallback for older git).
func fullShallowClone(targetDir, repoURL string) error {
	cmd := exec.Command("git", "clone", "--depth=1", repoURL, targetDir)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("shallow clone: %w\n%s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// ensureGit checks that git is available on PATH.
func ensureGit() error {
	if _, err := exec.LookPath("git"); err != nil {
		return fmt.Errorf("git is required but not found in PATH")
	}
	return nil
}
