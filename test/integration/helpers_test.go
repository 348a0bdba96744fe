//go:build integration

package integration_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// testEnv holds the isolated directories one test runs against.
type testEnv struct {
	HomeDir  string // HOME — keeps ~/.armature out of the real home
	LogsDir  string // ARMATURE_LOGS — instruction audit records
	CacheDir string // ARMATURE_CACHE — registry index cache
	WorkDir  string // parent directory for generated projects
}

// setupTestEnv creates isolated temp directories and points the
// environment at them so every operation is sandboxed.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:  t.TempDir(),
		LogsDir:  t.TempDir(),
		CacheDir: t.TempDir(),
		WorkDir:  t.TempDir(),
	}

	t.Setenv("HOME", env.HomeDir)
	t.Setenv("ARMATURE_LOGS", env.LogsDir)
	t.Setenv("ARMATURE_CACHE", env.CacheDir)

	return env
}

// setupTemplateRepo creates a local git repository holding a complete
// template: a definition file, three optional modules with instruction
// sets, and the base source files the instructions mutate. Returns the
// repository path, usable directly as a clone URL.
func setupTemplateRepo(t *testing.T) string {
	t.Helper()

	repo := t.TempDir()

	writeFile(t, filepath.Join(repo, "template.yaml"), `name: react-app
description: React starter used by the integration suite
url: placeholder
modules:
  - name: auth
    description: Authentication pages and guards
    path: modules/auth/instructions.json
    priority: 10
    includes: [api-client]
  - name: api-client
    description: Typed HTTP client
    path: modules/api-client/instructions.json
    priority: 5
  - name: mock-api
    description: In-memory API, replaces the real client
    path: modules/mock-api/instructions.json
    excludes: [api-client]
`)

	writeFile(t, filepath.Join(repo, "src/app.ts"), `import React from 'react'

export function App() {
  return null
}
`)
	writeFile(t, filepath.Join(repo, "src/routes.ts"), "export const routes = []\n")

	writeFile(t, filepath.Join(repo, "modules/auth/instructions.json"), `{
  "instructions": [
    {"path": "src/auth.ts", "action": "CREATE_FILE", "content": "export const auth = true\n"},
    {"path": "src/app.ts", "action": "INSERT_IMPORT", "content": "import { auth } from './auth'"},
    {
      "path": "src/i18n-auth.ts",
      "action": "CREATE_FILE",
      "content": "export const messages = {}\n",
      "condition": {"conditions": [{"kind": "MODULE_EXISTS", "value": "i18n"}]}
    }
  ]
}`)

	writeFile(t, filepath.Join(repo, "modules/api-client/instructions.json"), `{
  "instructions": [
    {"path": "src/api.ts", "action": "CREATE_FILE", "content": "export const api = {}\n"},
    {"path": "src/routes.ts", "action": "REPLACE_CONTENT", "pattern": "routes = []", "replacement": "routes = ['/api']"}
  ]
}`)

	writeFile(t, filepath.Join(repo, "modules/mock-api/instructions.json"), `{
  "instructions": [
    {"path": "src/mock.ts", "action": "CREATE_FILE", "content": "export const mock = {}\n"}
  ]
}`)

	gitRun(t, repo, "init", "-q")
	gitRun(t, repo, "add", "-A")
	gitRun(t, repo, "-c", "user.name=test", "-c", "user.email=test@example.com", "commit", "-q", "-m", "template fixture")

	return repo
}

// setupRegistry writes a registry index file listing the template repo
// and returns its path, usable as a --registry value.
func setupRegistry(t *testing.T, repoPath string) string {
	t.Helper()

	index := filepath.Join(t.TempDir(), "index.json")
	writeFile(t, index, `[
  {"name": "react-app", "description": "React starter", "url": `+jsonString(repoPath)+`}
]`)
	return index
}

func jsonString(s string) string {
	return `"` + s + `"`
}

func gitRun(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, output)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected %s to exist: %v", path, err)
	}
}

func assertNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected %s to be absent", path)
	}
}
