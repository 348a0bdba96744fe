package template

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
)

// definitionNames is the fallback order for finding a template definition
// inside a cloned template.
var definitionNames = []string{"template.yaml", "template.json"}

// FindDefinition locates the template definition file in a project
// directory. Fallback order: template.yaml > template.json.
func FindDefinition(projectDir string) (string, error) {
	for _, name := range definitionNames {
		p := filepath.Join(projectDir, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("no template definition found in %s", projectDir)
}

// ParseDefinition reads, schema-validates, and decodes a template
// definition file. Module names must be unique within the definition;
// duplicates fail the load.
func ParseDefinition(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading definition %s: %w", path, err)
	}

	inst, err := jsonInstance(data, strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml"))
	if err != nil {
		return nil, fmt.Errorf("parsing definition %s: %w", path, err)
	}

	result, err := ValidateDefinition(inst)
	if err != nil {
		return nil, fmt.Errorf("validating definition %s: %w", path, err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("invalid template definition %s:\n%s", path, FormatIssues(result.Issues))
	}

	// yaml.v3 accepts JSON input too, so one decoder covers both formats.
	var t Template
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing definition %s: %w", path, err)
	}

	if err := checkUniqueModules(&t); err != nil {
		return nil, fmt.Errorf("invalid template definition %s: %w", path, err)
	}
	return &t, nil
}

// LoadInstructionSet reads, schema-validates, and decodes a module's
// instruction-set JSON document located at modulePath relative to the
// generated project root.
func LoadInstructionSet(projectDir, modulePath string) (*InstructionSet, error) {
	path := filepath.Join(projectDir, modulePath)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading instruction set %s: %w", modulePath, err)
	}

	inst, err := jsonInstance(data, false)
	if err != nil {
		return nil, fmt.Errorf("parsing instruction set %s: %w", modulePath, err)
	}

	result, err := ValidateInstructionSet(inst)
	if err != nil {
		return nil, fmt.Errorf("validating instruction set %s: %w", modulePath, err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("invalid instruction set %s:\n%s", modulePath, FormatIssues(result.Issues))
	}

	var set InstructionSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parsing instruction set %s: %w", modulePath, err)
	}
	return &set, nil
}

// checkUniqueModules enforces the unique-module-name invariant.
func checkUniqueModules(t *Template) error {
	seen := make(map[string]bool, len(t.Modules))
	for _, m := range t.Modules {
		if seen[m.Name] {
			return fmt.Errorf("duplicate module name %q", m.Name)
		}
		seen[m.Name] = true
	}
	return nil
}

// jsonInstance prepares raw bytes for the schema validator. YAML input is
// decoded, normalized to JSON-compatible types, and re-marshaled so the
// validator sees the same json.Number-based shapes for both formats.
func jsonInstance(data []byte, fromYAML bool) (interface{}, error) {
	if !fromYAML {
		return jsonschema.UnmarshalJSON(bytes.NewReader(data))
	}

	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	jsonData, err := json.Marshal(normalizeYAML(raw))
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
}

// normalizeYAML recursively converts YAML-decoded values to JSON-compatible
// types. yaml.v3 may produce map[string]interface{} but also int/int64 that
// JSON Schema validators may not handle consistently — this normalizes them.
func normalizeYAML(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, v := range val {
			m[k] = normalizeYAML(v)
		}
		return m
	case []interface{}:
		a := make([]interface{}, len(val))
		for i, v := range val {
			a[i] = normalizeYAML(v)
		}
		return a
	default:
		return val
	}
}
