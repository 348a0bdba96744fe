package runtime

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func nodeProject(t *testing.T, lockfiles ...string) string {
	t.Helper()
	dir := t.TempDir()
	files := append([]string{"package.json"}, lockfiles...)
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f), []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestDetectRequiresPackageJSON(t *testing.T) {
	if got := Detect(t.TempDir()); got != "" {
		t.Errorf("Detect = %q, want empty for a non-node project", got)
	}
}

func TestDetectByLockfile(t *testing.T) {
	tests := []struct {
		lockfile string
		want     string
	}{
		{"pnpm-lock.yaml", ManagerPnpm},
		{"yarn.lock", ManagerYarn},
		{"package-lock.json", ManagerNpm},
	}

	for _, tt := range tests {
		if got := Detect(nodeProject(t, tt.lockfile)); got != tt.want {
			t.Errorf("Detect(%s) = %q, want %q", tt.lockfile, got, tt.want)
		}
	}
}

func TestDetectLockfilePreferenceOrder(t *testing.T) {
	dir := nodeProject(t, "package-lock.json", "yarn.lock", "pnpm-lock.yaml")
	if got := Detect(dir); got != ManagerPnpm {
		t.Errorf("Detect = %q, want pnpm to win", got)
	}
}

func TestDetectNoManagerAvailable(t *testing.T) {
	t.Setenv("PATH", "")
	if got := Detect(nodeProject(t)); got != "" {
		t.Errorf("Detect = %q, want empty with no lockfile and empty PATH", got)
	}
}

func TestBootstrapSkipsNonNodeProject(t *testing.T) {
	warning, err := Bootstrap(t.TempDir(), &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if warning != "" {
		t.Errorf("warning = %q, want none", warning)
	}
}

func TestBootstrapWarnsWithoutManager(t *testing.T) {
	t.Setenv("PATH", "")
	warning, err := Bootstrap(nodeProject(t), &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if warning == "" {
		t.Error("expected a warning when no package manager is found")
	}
}
