package template

import "github.com/armature-labs/armature/internal/instruction"

// Module is an optional, named unit of scaffolding work. Path locates the
// module's instruction-set JSON document relative to the generated project
// root. Includes and Excludes reference other modules of the same template
// by name. Priority orders installation (higher installs first); equal
// priorities keep selection order. Modules are immutable once loaded.
type Module struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Path        string   `yaml:"path" json:"path"`
	Includes    []string `yaml:"includes,omitempty" json:"includes,omitempty"`
	Excludes    []string `yaml:"excludes,omitempty" json:"excludes,omitempty"`
	Priority    int      `yaml:"priority,omitempty" json:"priority,omitempty"`
}

// Template is a named project blueprint. URL is the git repository the
// template is cloned from; Subdir optionally narrows the clone to a
// subdirectory of that repository. Read-only, sourced from the registry
// index or a definition file inside the cloned template.
type Template struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	URL         string   `yaml:"url" json:"url"`
	Subdir      string   `yaml:"subdir,omitempty" json:"subdir,omitempty"`
	Modules     []Module `yaml:"modules,omitempty" json:"modules,omitempty"`
}

// InstructionSet is the wire shape of a module's instruction document.
type InstructionSet struct {
	Instructions []instruction.Instruction `json:"instructions"`
}

// FindModule returns the named module, or false if the template has none
// by that name.
func (t *Template) FindModule(name string) (Module, bool) {
	for _, m := range t.Modules {
		if m.Name == name {
			return m, true
		}
	}
	return Module{}, false
}
