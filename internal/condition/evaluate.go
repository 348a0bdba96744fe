package condition

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Evaluate tests a single condition against the context and the project
// tree. defaultTarget is the owning instruction's project-relative path,
// used when a pattern condition does not name its own target. File read
// failures never propagate: PATTERN_EXISTS resolves fail-closed (false)
// and PATTERN_NOT_EXISTS fail-open (true), with the error in the reason.
func Evaluate(c Condition, ctx Context, defaultTarget string) Result {
	switch c.Kind {
	case ModuleExists:
		if ctx.SelectedModules[c.Value] {
			return Result{true, fmt.Sprintf("module %q is in the selection", c.Value)}
		}
		return Result{false, fmt.Sprintf("module %q is not in the selection", c.Value)}

	case ModuleNotExists:
		if ctx.SelectedModules[c.Value] {
			return Result{false, fmt.Sprintf("module %q is in the selection", c.Value)}
		}
		return Result{true, fmt.Sprintf("module %q is not in the selection", c.Value)}

	case PatternExists:
		return evalPattern(c, ctx, defaultTarget, true)

	case PatternNotExists:
		return evalPattern(c, ctx, defaultTarget, false)

	case PatternCount:
		return evalPatternCount(c, ctx, defaultTarget)

	case FileExists:
		target := fileTarget(c)
		if targetExists(ctx, target) {
			return Result{true, fmt.Sprintf("file %s exists", target)}
		}
		return Result{false, fmt.Sprintf("file %s does not exist", target)}

	case FileNotExists:
		target := fileTarget(c)
		if targetExists(ctx, target) {
			return Result{false, fmt.Sprintf("file %s exists", target)}
		}
		return Result{true, fmt.Sprintf("file %s does not exist", target)}
	}

	return Result{false, fmt.Sprintf("unknown condition kind %q", c.Kind)}
}

// EvaluateGroup evaluates every member condition and combines the results
// with the group's logic. All member results are returned so the trace is
// complete for logging even where AND/OR could short-circuit.
func EvaluateGroup(g Group, ctx Context, defaultTarget string) GroupResult {
	results := make([]Result, 0, len(g.Conditions))
	for _, c := range g.Conditions {
		results = append(results, Evaluate(c, ctx, defaultTarget))
	}

	logic := g.Logic
	if logic == "" {
		logic = LogicAnd
	}

	passed := logic == LogicAnd // AND over nothing is vacuously true, OR is not
	for _, r := range results {
		if logic == LogicAnd {
			passed = passed && r.Passed
		} else {
			passed = passed || r.Passed
		}
	}

	return GroupResult{Passed: passed, Results: results}
}

// evalPattern handles PATTERN_EXISTS (wantPresent=true) and
// PATTERN_NOT_EXISTS. A missing file counts as absence of the pattern.
func evalPattern(c Condition, ctx Context, defaultTarget string, wantPresent bool) Result {
	target := patternTarget(c, defaultTarget)
	content, err := readTarget(ctx, target)
	if os.IsNotExist(err) {
		return Result{!wantPresent, fmt.Sprintf("file %s does not exist, pattern %q treated as absent", target, c.Value)}
	}
	if err != nil {
		// Fail-closed for EXISTS, fail-open for NOT_EXISTS.
		return Result{!wantPresent, fmt.Sprintf("reading %s: %v (pattern %q treated as absent)", target, err, c.Value)}
	}

	found := strings.Contains(content, c.Value)
	if found == wantPresent {
		return Result{true, patternReason(c.Value, target, found)}
	}
	return Result{false, patternReason(c.Value, target, found)}
}

func patternReason(pattern, target string, found bool) string {
	if found {
		return fmt.Sprintf("pattern %q found in %s", pattern, target)
	}
	return fmt.Sprintf("pattern %q not found in %s", pattern, target)
}

// evalPatternCount counts non-overlapping literal occurrences of the value
// and compares against Count (default 0) using Operator (default EQUALS).
func evalPatternCount(c Condition, ctx Context, defaultTarget string) Result {
	target := patternTarget(c, defaultTarget)
	content, err := readTarget(ctx, target)
	if err != nil {
		return Result{false, fmt.Sprintf("reading %s: %v", target, err)}
	}

	op := c.Operator
	if op == "" {
		op = Equals
	}

	have := strings.Count(content, c.Value)
	passed := compareCount(op, have, c.Count)
	return Result{passed, fmt.Sprintf("pattern %q occurs %d time(s) in %s, want %s %d", c.Value, have, target, op, c.Count)}
}

func compareCount(op Operator, have, want int) bool {
	switch op {
	case Equals:
		return have == want
	case NotEquals:
		return have != want
	case GreaterThan:
		return have > want
	case LessThan:
		return have < want
	case GreaterOrEqual:
		return have >= want
	case LessOrEqual:
		return have <= want
	}
	return false
}

// patternTarget resolves the file a pattern condition reads.
func patternTarget(c Condition, defaultTarget string) string {
	if c.Target != "" {
		return c.Target
	}
	return defaultTarget
}

// fileTarget resolves the file an existence condition checks.
func fileTarget(c Condition) string {
	if c.Target != "" {
		return c.Target
	}
	return c.Value
}

func targetExists(ctx Context, target string) bool {
	_, err := os.Stat(filepath.Join(ctx.ProjectRoot, target))
	return err == nil
}

func readTarget(ctx Context, target string) (string, error) {
	data, err := os.ReadFile(filepath.Join(ctx.ProjectRoot, target))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
