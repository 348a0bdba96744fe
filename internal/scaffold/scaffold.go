package scaffold

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/armature-labs/armature/internal/audit"
	"github.com/armature-labs/armature/internal/catalog"
	"github.com/armature-labs/armature/internal/instruction"
	"github.com/armature-labs/armature/internal/prompt"
	"github.com/armature-labs/armature/internal/resolver"
	"github.com/armature-labs/armature/internal/runtime"
	"github.com/armature-labs/armature/internal/template"
)

// Options configures one create run.
type Options struct {
	Name        string   // project name and target directory
	Template    string   // template name; prompted for when empty
	Modules     []string // module names; prompted for when nil and not Yes
	Yes         bool     // skip prompts, accept defaults
	Verbose     bool     // print per-condition evaluation traces
	NoBootstrap bool     // skip the dependency install step
	Registry    string   // registry URL override; defaults to catalog.IndexURL()

	In  io.Reader
	Out io.Writer
}

// Result summarizes a create run.
type Result struct {
	ProjectDir string
	Resolution resolver.Resolution
	Summary    instruction.Summary
	Warnings   []string
}

// Create scaffolds a new project. The run is best-effort past the clone:
// a module whose instruction set fails to load is skipped with a warning,
// a failing instruction is tallied and logged, and only infrastructure
// failures (registry unreachable, clone failed) abort the flow.
func Create(opts Options) (*Result, error) {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}

	registryURL := opts.Registry
	if registryURL == "" {
		registryURL = catalog.IndexURL()
	}

	templates, err := catalog.FetchIndexCached(registryURL, catalog.DefaultIndexMaxAge)
	if err != nil {
		return nil, fmt.Errorf("loading template registry: %w", err)
	}

	prompter := prompt.New(opts.In, opts.Out)

	tmpl, err := chooseTemplate(opts, prompter, templates)
	if err != nil {
		return nil, err
	}

	projectDir, err := filepath.Abs(opts.Name)
	if err != nil {
		return nil, fmt.Errorf("resolving project directory: %w", err)
	}

	fmt.Fprintf(opts.Out, "Creating %s from template %s...\n", opts.Name, tmpl.Name)
	if err := catalog.Clone(tmpl, projectDir); err != nil {
		return nil, err
	}

	result := &Result{ProjectDir: projectDir}

	// A definition file inside the cloned template supersedes the index
	// entry's module metadata.
	defPath := ""
	if p, err := template.FindDefinition(projectDir); err == nil {
		defPath = p
		parsed, err := template.ParseDefinition(p)
		if err != nil {
			return nil, err
		}
		tmpl = parsed
	}

	selectedNames, err := chooseModules(opts, prompter, tmpl)
	if err != nil {
		return nil, err
	}

	selected, unknown := resolver.SelectByName(selectedNames, tmpl.Modules)
	for _, name := range unknown {
		result.warnf(opts.Out, "template %s has no module %q", tmpl.Name, name)
	}

	result.Resolution = resolver.Resolve(selected, tmpl.Modules)
	reportResolution(opts.Out, result.Resolution)

	if len(result.Resolution.Modules) > 0 {
		summary, warnings := processModules(opts, projectDir, tmpl, result.Resolution.Modules)
		result.Summary = summary
		for _, w := range warnings {
			result.warnf(opts.Out, "%s", w)
		}
	}

	cleanupArtifacts(projectDir, defPath, result.Resolution.Modules)

	if !opts.NoBootstrap {
		fmt.Fprintf(opts.Out, "Installing dependencies...\n")
		warning, err := runtime.Bootstrap(projectDir, opts.Out)
		if err != nil {
			result.warnf(opts.Out, "installing dependencies: %v", err)
		} else if warning != "" {
			result.warnf(opts.Out, "%s", warning)
		}
	}

	return result, nil
}

// chooseTemplate resolves the template from the --template flag or an
// interactive menu.
func chooseTemplate(opts Options, prompter *prompt.Prompter, templates []template.Template) (*template.Template, error) {
	if opts.Template != "" {
		return catalog.Find(templates, opts.Template)
	}
	if opts.Yes {
		return nil, fmt.Errorf("--yes requires --template")
	}
	return prompter.SelectTemplate(templates)
}

// chooseModules resolves the module selection from the --modules flag or
// an interactive multi-select. With --yes and no flag, no optional
// modules are selected.
func chooseModules(opts Options, prompter *prompt.Prompter, tmpl *template.Template) ([]string, error) {
	if opts.Modules != nil {
		return opts.Modules, nil
	}
	if opts.Yes || len(tmpl.Modules) == 0 {
		return nil, nil
	}
	return prompter.SelectModules(tmpl.Modules)
}

// processModules runs each resolved module's instruction set in order.
// A module whose instruction set fails to load is skipped with a warning;
// the remaining modules still run.
func processModules(opts Options, projectDir string, tmpl *template.Template, modules []template.Module) (instruction.Summary, []string) {
	var summary instruction.Summary
	var warnings []string

	selectedSet := make(map[string]bool, len(modules))
	for _, m := range modules {
		selectedSet[m.Name] = true
	}

	store, err := audit.DefaultStore()
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("instruction logs disabled: %v", err))
	}
	runner := &instruction.Runner{Store: store, Out: opts.Out}

	for _, m := range modules {
		set, err := template.LoadInstructionSet(projectDir, m.Path)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("skipping module %s: %v", m.Name, err))
			continue
		}

		fmt.Fprintf(opts.Out, "Applying module %s (%d instruction(s))...\n", m.Name, len(set.Instructions))
		ctx := instruction.Context{
			SelectedModules: selectedSet,
			ProjectRoot:     projectDir,
			ProjectName:     opts.Name,
			ModuleName:      m.Name,
			Verbose:         opts.Verbose,
		}

		s := runner.ProcessInstructions(set.Instructions, ctx)
		summary.Executed += s.Executed
		summary.Skipped += s.Skipped
		summary.Failed += s.Failed
	}

	return summary, warnings
}

// reportResolution prints what resolution added, dropped, or could not find.
func reportResolution(w io.Writer, res resolver.Resolution) {
	if len(res.Included) > 0 {
		fmt.Fprintf(w, "Added by dependency: %s\n", strings.Join(res.Included, ", "))
	}
	for _, ex := range res.Excluded {
		fmt.Fprintf(w, "⚠ module %s excluded by %s\n", ex.Module, ex.ExcludedBy)
	}
	for _, name := range res.Missing {
		fmt.Fprintf(w, "⚠ included module %s not found in template\n", name)
	}
}

// cleanupArtifacts removes the template definition file and the consumed
// instruction-set files from the generated project, best effort.
func cleanupArtifacts(projectDir, defPath string, modules []template.Module) {
	if defPath != "" {
		_ = os.Remove(defPath)
	}
	for _, m := range modules {
		_ = os.Remove(filepath.Join(projectDir, m.Path))
	}
}

func (r *Result) warnf(w io.Writer, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	r.Warnings = append(r.Warnings, msg)
	fmt.Fprintf(w, "⚠ %s\n", msg)
}
