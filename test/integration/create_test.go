//go:build integration

package integration_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/armature-labs/armature/internal/audit"
	"github.com/armature-labs/armature/internal/scaffold"
)

func TestCreateAppliesSelectedModules(t *testing.T) {
	env := setupTestEnv(t)
	repo := setupTemplateRepo(t)
	registry := setupRegistry(t, repo)

	projectDir := filepath.Join(env.WorkDir, "my-app")
	var out bytes.Buffer

	result, err := scaffold.Create(scaffold.Options{
		Name:        projectDir,
		Template:    "react-app",
		Modules:     []string{"auth"},
		Yes:         true,
		NoBootstrap: true,
		Registry:    registry,
		Out:         &out,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Base template content survives the clone.
	assertFileExists(t, filepath.Join(projectDir, "src/app.ts"))

	// auth's own instructions ran.
	assertFileExists(t, filepath.Join(projectDir, "src/auth.ts"))
	app := readFile(t, filepath.Join(projectDir, "src/app.ts"))
	if !strings.Contains(app, "import { auth } from './auth'") {
		t.Errorf("import not inserted:\n%s", app)
	}

	// api-client was pulled in transitively and ran too.
	assertFileExists(t, filepath.Join(projectDir, "src/api.ts"))
	routes := readFile(t, filepath.Join(projectDir, "src/routes.ts"))
	if !strings.Contains(routes, "routes = ['/api']") {
		t.Errorf("replacement not applied:\n%s", routes)
	}
	if len(result.Resolution.Included) != 1 || result.Resolution.Included[0] != "api-client" {
		t.Errorf("Included = %v, want [api-client]", result.Resolution.Included)
	}

	// The guarded instruction (MODULE_EXISTS i18n) was skipped.
	assertNotExists(t, filepath.Join(projectDir, "src/i18n-auth.ts"))

	// Higher priority installs first.
	output := out.String()
	if strings.Index(output, "Applying module auth") > strings.Index(output, "Applying module api-client") {
		t.Errorf("auth (priority 10) should run before api-client (priority 5):\n%s", output)
	}

	// No .git and no consumed artifacts in the generated project.
	assertNotExists(t, filepath.Join(projectDir, ".git"))
	assertNotExists(t, filepath.Join(projectDir, "template.yaml"))
	assertNotExists(t, filepath.Join(projectDir, "modules/auth/instructions.json"))

	if result.Summary.Executed != 4 || result.Summary.Skipped != 1 || result.Summary.Failed != 0 {
		t.Errorf("summary = %+v, want 4 executed, 1 skipped", result.Summary)
	}
}

func TestCreateRecordsAuditTrail(t *testing.T) {
	env := setupTestEnv(t)
	repo := setupTemplateRepo(t)
	registry := setupRegistry(t, repo)

	_, err := scaffold.Create(scaffold.Options{
		Name:        filepath.Join(env.WorkDir, "logged-app"),
		Template:    "react-app",
		Modules:     []string{"auth"},
		Yes:         true,
		NoBootstrap: true,
		Registry:    registry,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	store, err := audit.DefaultStore()
	if err != nil {
		t.Fatal(err)
	}

	logs, err := store.List(audit.Filter{})
	if err != nil {
		t.Fatal(err)
	}
	// auth (3) + api-client (2): one record per instruction attempt.
	if len(logs) != 5 {
		t.Fatalf("got %d audit records, want 5", len(logs))
	}

	skipped, err := store.List(audit.Filter{Status: audit.StatusSkipped, ModuleContains: "auth"})
	if err != nil {
		t.Fatal(err)
	}
	if len(skipped) != 1 {
		t.Fatalf("got %d skipped records, want 1", len(skipped))
	}
	if len(skipped[0].ConditionResults) != 1 || skipped[0].ConditionResults[0].Passed {
		t.Errorf("guard trace = %+v, want one failed condition", skipped[0].ConditionResults)
	}

	// Each record is retrievable by its hash.
	got, err := store.Get(logs[0].Hash)
	if err != nil {
		t.Fatal(err)
	}
	if got.Hash != logs[0].Hash {
		t.Errorf("Get returned %s, want %s", got.Hash, logs[0].Hash)
	}
}

func TestCreateModuleExclusion(t *testing.T) {
	env := setupTestEnv(t)
	repo := setupTemplateRepo(t)
	registry := setupRegistry(t, repo)

	projectDir := filepath.Join(env.WorkDir, "mocked-app")

	result, err := scaffold.Create(scaffold.Options{
		Name:        projectDir,
		Template:    "react-app",
		Modules:     []string{"auth", "mock-api"},
		Yes:         true,
		NoBootstrap: true,
		Registry:    registry,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// mock-api excludes api-client, so the transitively included client
	// is dropped while auth and mock-api both run.
	assertFileExists(t, filepath.Join(projectDir, "src/auth.ts"))
	assertFileExists(t, filepath.Join(projectDir, "src/mock.ts"))
	assertNotExists(t, filepath.Join(projectDir, "src/api.ts"))

	if len(result.Resolution.Excluded) != 1 || result.Resolution.Excluded[0].Module != "api-client" {
		t.Errorf("Excluded = %+v, want api-client dropped", result.Resolution.Excluded)
	}
}

func TestCreateNoModulesSelected(t *testing.T) {
	env := setupTestEnv(t)
	repo := setupTemplateRepo(t)
	registry := setupRegistry(t, repo)

	projectDir := filepath.Join(env.WorkDir, "bare-app")

	result, err := scaffold.Create(scaffold.Options{
		Name:        projectDir,
		Template:    "react-app",
		Yes:         true,
		NoBootstrap: true,
		Registry:    registry,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	assertFileExists(t, filepath.Join(projectDir, "src/app.ts"))
	assertNotExists(t, filepath.Join(projectDir, "src/auth.ts"))
	if result.Summary.Executed != 0 {
		t.Errorf("summary = %+v, want nothing executed", result.Summary)
	}
}

func TestCreateUnknownTemplate(t *testing.T) {
	env := setupTestEnv(t)
	repo := setupTemplateRepo(t)
	registry := setupRegistry(t, repo)

	_, err := scaffold.Create(scaffold.Options{
		Name:        filepath.Join(env.WorkDir, "x"),
		Template:    "nope",
		Yes:         true,
		NoBootstrap: true,
		Registry:    registry,
	})
	if err == nil || !strings.Contains(err.Error(), "not found in registry") {
		t.Errorf("err = %v, want unknown-template error", err)
	}
}

func TestCreateUnknownModuleWarns(t *testing.T) {
	env := setupTestEnv(t)
	repo := setupTemplateRepo(t)
	registry := setupRegistry(t, repo)

	result, err := scaffold.Create(scaffold.Options{
		Name:        filepath.Join(env.WorkDir, "warned-app"),
		Template:    "react-app",
		Modules:     []string{"auth", "telemetry"},
		Yes:         true,
		NoBootstrap: true,
		Registry:    registry,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "telemetry") {
			found = true
		}
	}
	if !found {
		t.Errorf("Warnings = %v, want a warning about the unknown module", result.Warnings)
	}
}

func TestCreateTargetExists(t *testing.T) {
	env := setupTestEnv(t)
	repo := setupTemplateRepo(t)
	registry := setupRegistry(t, repo)

	projectDir := filepath.Join(env.WorkDir, "taken")
	writeFile(t, filepath.Join(projectDir, "keep.txt"), "mine")

	_, err := scaffold.Create(scaffold.Options{
		Name:        projectDir,
		Template:    "react-app",
		Yes:         true,
		NoBootstrap: true,
		Registry:    registry,
	})
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("err = %v, want already-exists error", err)
	}

	// The existing directory is untouched.
	if got := readFile(t, filepath.Join(projectDir, "keep.txt")); got != "mine" {
		t.Errorf("existing content clobbered: %q", got)
	}
}
