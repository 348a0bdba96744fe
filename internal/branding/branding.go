// Package branding provides compile-time identity values for the CLI.
//
// Forkers edit branding.yaml at the repo root, then run `make build`.
// The Makefile syncs branding.yaml into this package before compilation,
// and Go's //go:embed bakes it into the binary.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

// B holds the parsed branding values, loaded once on first access.
var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
	GoModule    string `yaml:"go_module"`
	GitHubRepo  string `yaml:"github_repo"`
	RegistryURL string `yaml:"registry_url"`
}

func load() {
	once.Do(func() {
		// Set hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:     "armature",
			DisplayName: "Armature",
			Description: "Template scaffolding with composable feature modules",
			HomeDir:     ".armature",
			EnvPrefix:   "ARMATURE",
			GoModule:    "github.com/armature-labs/armature",
			GitHubRepo:  "armature-labs/armature",
			RegistryURL: "https://raw.githubusercontent.com/armature-labs/registry/main/templates.json",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "armature").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "Armature").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".armature").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "ARMATURE").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path (e.g., "github.com/armature-labs/armature").
// Used by scripts/rebrand.sh — not consumed at runtime.
func GoModule() string { load(); return defaults.GoModule }

// GitHubRepo returns the "owner/repo" string (e.g., "armature-labs/armature").
func GitHubRepo() string { load(); return defaults.GitHubRepo }

// RegistryURL returns the default location of the template registry index.
func RegistryURL() string { load(); return defaults.RegistryURL }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "ARMATURE_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
