package instruction

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/armature-labs/armature/internal/audit"
)

// Runner drives a module's instruction set sequentially. Each attempt is
// recorded to the store before the next one starts, so the audit trail
// always reflects exactly the instructions attempted so far. A nil Store
// disables persistence; a nil Out discards progress output.
type Runner struct {
	Store *audit.Store
	Out   io.Writer
}

// ProcessInstructions applies each instruction in order, tallying outcomes.
// Failures are converted to a failed tally and log entry, and processing
// continues with the next instruction: a single bad instruction never
// aborts the batch.
func (r *Runner) ProcessInstructions(instructions []Instruction, ctx Context) Summary {
	var summary Summary

	for i, inst := range instructions {
		outcome, err := Apply(inst, ctx, i)

		status := audit.StatusSuccess
		switch {
		case err != nil:
			status = audit.StatusFailed
			summary.Failed++
			r.printf("  ✗ [%d] %s %s: %v\n", i, inst.Action, inst.Path, err)
		case outcome.Status == StatusSkipped:
			status = audit.StatusSkipped
			summary.Skipped++
			r.printf("  → [%d] %s %s skipped\n", i, inst.Action, inst.Path)
		default:
			summary.Executed++
			r.printf("  ✓ [%d] %s %s\n", i, inst.Action, inst.Path)
		}

		if ctx.Verbose && outcome != nil {
			for _, cr := range outcome.ConditionResults {
				mark := "✗"
				if cr.Passed {
					mark = "✓"
				}
				r.printf("      %s %s\n", mark, cr.Reason)
			}
		}

		r.record(inst, ctx, i, status, err, outcome)
	}

	return summary
}

// record persists the audit log for one attempt. Log writes are
// synchronous: the run does not advance until the write completes.
func (r *Runner) record(inst Instruction, ctx Context, index int, status audit.Status, attemptErr error, outcome *Outcome) {
	if r.Store == nil {
		return
	}

	snapshot, err := json.Marshal(inst)
	if err != nil {
		snapshot = nil
	}

	l := audit.NewLog(ctx.ProjectName, ctx.ModuleName, index, snapshot, status)
	if attemptErr != nil {
		l.Error = attemptErr.Error()
	}
	if outcome != nil {
		for _, cr := range outcome.ConditionResults {
			l.ConditionResults = append(l.ConditionResults, audit.ConditionResult{
				Passed: cr.Passed,
				Reason: cr.Reason,
			})
		}
	}

	if err := r.Store.Save(l); err != nil {
		r.printf("  ⚠ recording instruction log: %v\n", err)
	}
}

func (r *Runner) printf(format string, args ...interface{}) {
	if r.Out == nil {
		return
	}
	fmt.Fprintf(r.Out, format, args...)
}
