package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/armature-labs/armature/internal/template"
)

// Prompter reads selections from r and writes menus to w. One Prompter
// wraps the reader once so consecutive prompts share buffered input.
type Prompter struct {
	reader *bufio.Reader
	w      io.Writer
}

// New creates a Prompter over the given reader and writer.
func New(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{reader: bufio.NewReader(r), w: w}
}

// SelectTemplate presents a numbered menu of templates and returns the
// selected one.
func (p *Prompter) SelectTemplate(templates []template.Template) (*template.Template, error) {
	if len(templates) == 0 {
		return nil, fmt.Errorf("the registry lists no templates")
	}

	fmt.Fprintf(p.w, "\nSelect a template:\n")
	for i, t := range templates {
		fmt.Fprintf(p.w, "  %d) %s", i+1, t.Name)
		if t.Description != "" {
			fmt.Fprintf(p.w, " — %s", t.Description)
		}
		fmt.Fprintln(p.w)
	}
	fmt.Fprintf(p.w, "Enter number [1-%d]: ", len(templates))

	line, err := p.reader.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("reading selection: %w", err)
	}

	num, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || num < 1 || num > len(templates) {
		return nil, fmt.Errorf("invalid selection %q: choose 1-%d", strings.TrimSpace(line), len(templates))
	}

	return &templates[num-1], nil
}

// SelectModules presents the template's optional modules and reads a
// comma-separated list of numbers. An empty answer selects no modules.
func (p *Prompter) SelectModules(modules []template.Module) ([]string, error) {
	if len(modules) == 0 {
		return nil, nil
	}

	fmt.Fprintf(p.w, "\nOptional modules:\n")
	for i, m := range modules {
		fmt.Fprintf(p.w, "  %d) %s", i+1, m.Name)
		if m.Description != "" {
			fmt.Fprintf(p.w, " — %s", m.Description)
		}
		fmt.Fprintln(p.w)
	}
	fmt.Fprintf(p.w, "Enter numbers separated by commas (empty for none): ")

	line, err := p.reader.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("reading selection: %w", err)
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}

	seen := make(map[int]bool)
	var names []string
	for _, part := range strings.Split(line, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		num, err := strconv.Atoi(part)
		if err != nil || num < 1 || num > len(modules) {
			return nil, fmt.Errorf("invalid selection %q: choose numbers 1-%d", part, len(modules))
		}
		if !seen[num] {
			seen[num] = true
			names = append(names, modules[num-1].Name)
		}
	}

	return names, nil
}

// Confirm asks a yes/no question defaulting to yes. Only an explicit "n"
// or "no" declines.
func (p *Prompter) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.w, "%s [Y/n]: ", question)

	line, err := p.reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer != "n" && answer != "no", nil
}
