package instruction

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/armature-labs/armature/internal/condition"
)

// importLine matches JS/TS import statements and CommonJS requires. Used by
// INSERT_IMPORT to find the last import-like line in a file.
var importLine = regexp.MustCompile(`^\s*(import[\s("'{]|(const|let|var)\s+.+=\s*require\()`)

// Apply executes a single instruction against the project tree. The guard
// condition, if present, is evaluated first; a failing guard yields a
// skipped outcome and no mutation. Validation and I/O failures return
// *ValidationError and *IOError respectively and abort only this
// instruction. The index parameter is the instruction's position within
// its module's set and is used for diagnostics only.
func Apply(inst Instruction, ctx Context, index int) (*Outcome, error) {
	outcome := &Outcome{Status: StatusExecuted}

	if inst.Condition != nil {
		gr := condition.EvaluateGroup(*inst.Condition, ctx.conditionContext(), inst.Path)
		outcome.ConditionResults = gr.Results
		if !gr.Passed {
			outcome.Status = StatusSkipped
			return outcome, nil
		}
	}

	if err := validate(inst); err != nil {
		return nil, err
	}

	var err error
	switch inst.Action {
	case CreateFile:
		err = applyCreateFile(inst, ctx)
	case DeleteFile:
		err = applyDeleteFile(inst, ctx)
	case InsertImport:
		err = applyInsertImport(inst, ctx)
	case InsertAfter:
		err = applyInsertLine(inst, ctx, false)
	case InsertBefore:
		err = applyInsertLine(inst, ctx, true)
	case ReplaceContent:
		err = applyReplaceContent(inst, ctx)
	case AppendToFile:
		err = applyAppendToFile(inst, ctx)
	case InsertProp:
		err = applyInsertProp(inst, ctx)
	}
	if err != nil {
		return nil, err
	}

	return outcome, nil
}

// validate checks that the fields the action depends on are present.
// Replacement and PropValue are legitimately empty and are not checked.
func validate(inst Instruction) error {
	if inst.Path == "" {
		return &ValidationError{Action: inst.Action, Field: "path"}
	}

	switch inst.Action {
	case CreateFile, InsertImport, AppendToFile:
		if inst.Content == "" {
			return &ValidationError{Action: inst.Action, Field: "content"}
		}
	case InsertAfter, InsertBefore:
		if inst.Pattern == "" {
			return &ValidationError{Action: inst.Action, Field: "pattern"}
		}
		if inst.Content == "" {
			return &ValidationError{Action: inst.Action, Field: "content"}
		}
	case ReplaceContent:
		if inst.Pattern == "" {
			return &ValidationError{Action: inst.Action, Field: "pattern"}
		}
	case InsertProp:
		if inst.ComponentName == "" {
			return &ValidationError{Action: inst.Action, Field: "componentName"}
		}
		if inst.PropName == "" {
			return &ValidationError{Action: inst.Action, Field: "propName"}
		}
	case DeleteFile:
		// Path is the only requirement.
	default:
		return &ValidationError{Action: inst.Action, Field: "action"}
	}

	return nil
}

func applyCreateFile(inst Instruction, ctx Context) error {
	path := filepath.Join(ctx.ProjectRoot, inst.Path)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &IOError{Op: "creating directory for", Path: inst.Path, Err: err}
	}
	if err := os.WriteFile(path, []byte(inst.Content), 0644); err != nil {
		return &IOError{Op: "writing", Path: inst.Path, Err: err}
	}
	return nil
}

func applyDeleteFile(inst Instruction, ctx Context) error {
	path := filepath.Join(ctx.ProjectRoot, inst.Path)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil // already absent
	}
	if err := os.RemoveAll(path); err != nil {
		return &IOError{Op: "removing", Path: inst.Path, Err: err}
	}
	return nil
}

func applyInsertImport(inst Instruction, ctx Context) error {
	content, err := readProjectFile(inst, ctx)
	if err != nil {
		return err
	}

	lines := strings.Split(content, "\n")
	last := -1
	for i, line := range lines {
		if importLine.MatchString(line) {
			last = i
		}
	}

	if last == -1 {
		lines = append([]string{inst.Content}, lines...)
	} else {
		lines = append(lines[:last+1], append([]string{inst.Content}, lines[last+1:]...)...)
	}

	return writeProjectFile(inst, ctx, strings.Join(lines, "\n"))
}

// applyInsertLine inserts content as a new line immediately before or after
// the first line containing the pattern. No matching line is a silent no-op.
func applyInsertLine(inst Instruction, ctx Context, before bool) error {
	content, err := readProjectFile(inst, ctx)
	if err != nil {
		return err
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.Contains(line, inst.Pattern) {
			at := i + 1
			if before {
				at = i
			}
			lines = append(lines[:at], append([]string{inst.Content}, lines[at:]...)...)
			return writeProjectFile(inst, ctx, strings.Join(lines, "\n"))
		}
	}

	return nil // no match, file untouched
}

func applyReplaceContent(inst Instruction, ctx Context) error {
	content, err := readProjectFile(inst, ctx)
	if err != nil {
		return err
	}

	replaced := strings.ReplaceAll(content, inst.Pattern, inst.Replacement)
	if replaced == content {
		return nil // pattern absent, file untouched
	}
	return writeProjectFile(inst, ctx, replaced)
}

func applyAppendToFile(inst Instruction, ctx Context) error {
	content, err := readProjectFile(inst, ctx)
	if err != nil {
		return err
	}

	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return writeProjectFile(inst, ctx, content+inst.Content+"\n")
}

// applyInsertProp injects an attribute into the first opening tag matching
// the component name, self-closing or not. The match is a single-pass
// regular expression over raw text, not a structural parse: it can misfire
// on tags whose attribute values contain ">". Known limitation.
func applyInsertProp(inst Instruction, ctx Context) error {
	content, err := readProjectFile(inst, ctx)
	if err != nil {
		return err
	}

	tag := regexp.MustCompile(`<` + regexp.QuoteMeta(inst.ComponentName) + `((?:\s[^>]*?)?)(/?)>`)
	loc := tag.FindStringSubmatchIndex(content)
	if loc == nil {
		return nil // component not found, file untouched
	}

	attrs := strings.TrimRight(content[loc[2]:loc[3]], " \t")
	selfClose := content[loc[4]:loc[5]] == "/"

	prop := inst.PropName
	if inst.PropValue != "" {
		prop = inst.PropName + "={" + inst.PropValue + "}"
	}

	rebuilt := "<" + inst.ComponentName + attrs + " " + prop
	if selfClose {
		rebuilt += " />"
	} else {
		rebuilt += ">"
	}

	return writeProjectFile(inst, ctx, content[:loc[0]]+rebuilt+content[loc[1]:])
}

func readProjectFile(inst Instruction, ctx Context) (string, error) {
	data, err := os.ReadFile(filepath.Join(ctx.ProjectRoot, inst.Path))
	if err != nil {
		return "", &IOError{Op: "reading", Path: inst.Path, Err: err}
	}
	return string(data), nil
}

func writeProjectFile(inst Instruction, ctx Context, content string) error {
	if err := os.WriteFile(filepath.Join(ctx.ProjectRoot, inst.Path), []byte(content), 0644); err != nil {
		return &IOError{Op: "writing", Path: inst.Path, Err: err}
	}
	return nil
}
