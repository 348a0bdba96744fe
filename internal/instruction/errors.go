package instruction

import "fmt"

// ValidationError reports a required field missing for the chosen action.
// It aborts only the instruction that raised it.
type ValidationError struct {
	Action Action
	Field  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("action %s requires field %q", e.Action, e.Field)
}

// IOError reports a read-dependent action targeting a missing file, or a
// failed write. It aborts only the instruction that raised it.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
