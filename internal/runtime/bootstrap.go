package runtime

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
)

// Supported package manager identifiers.
const (
	ManagerPnpm = "pnpm"
	ManagerYarn = "yarn"
	ManagerNpm  = "npm"
)

// lockfiles maps each manager to its lockfile, in preference order.
var lockfiles = []struct {
	manager string
	file    string
}{
	{ManagerPnpm, "pnpm-lock.yaml"},
	{ManagerYarn, "yarn.lock"},
	{ManagerNpm, "package-lock.json"},
}

// Detect returns the package manager for a project. A lockfile in the
// project root decides first (pnpm > yarn > npm); otherwise the first of
// pnpm, yarn, npm found on PATH wins. Returns "" when the project has no
// package.json or no manager is available.
func Detect(projectDir string) string {
	if _, err := os.Stat(filepath.Join(projectDir, "package.json")); err != nil {
		return ""
	}

	for _, lf := range lockfiles {
		if _, err := os.Stat(filepath.Join(projectDir, lf.file)); err == nil {
			return lf.manager
		}
	}

	for _, lf := range lockfiles {
		if _, err := exec.LookPath(lf.manager); err == nil {
			return lf.manager
		}
	}

	return ""
}

// Bootstrap runs `<manager> install` in the project directory, streaming
// output to w. If no manager is detected, it returns a warning message
// instead of an error.
func Bootstrap(projectDir string, w io.Writer) (string, error) {
	manager := Detect(projectDir)
	if manager == "" {
		if _, err := os.Stat(filepath.Join(projectDir, "package.json")); err != nil {
			return "", nil // not a node project, nothing to do
		}
		return "no package manager found — skipping dependency installation", nil
	}

	bin, err := exec.LookPath(manager)
	if err != nil {
		return fmt.Sprintf("%s not found — skipping dependency installation", manager), nil
	}

	cmd := exec.Command(bin, "install")
	cmd.Dir = projectDir
	cmd.Stdout = w
	cmd.Stderr = w

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s install in %s: %w", manager, projectDir, err)
	}

	return "", nil
}
