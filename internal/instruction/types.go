package instruction

import (
	"github.com/armature-labs/armature/internal/condition"
)

// Action identifies a file mutation. The string values are the wire
// vocabulary used in instruction-set JSON documents.
type Action string

const (
	CreateFile     Action = "CREATE_FILE"
	DeleteFile     Action = "DELETE_FILE"
	InsertImport   Action = "INSERT_IMPORT"
	InsertAfter    Action = "INSERT_AFTER"
	InsertBefore   Action = "INSERT_BEFORE"
	ReplaceContent Action = "REPLACE_CONTENT"
	AppendToFile   Action = "APPEND_TO_FILE"
	InsertProp     Action = "INSERT_PROP"
)

// Instruction is a single declarative file mutation. Which optional fields
// are required depends on Action; Apply validates before mutating. An
// instruction is immutable and referenced by its 0-based index within its
// module's instruction set.
type Instruction struct {
	Path          string           `json:"path"`
	Action        Action           `json:"action"`
	Content       string           `json:"content,omitempty"`
	Pattern       string           `json:"pattern,omitempty"`
	Replacement   string           `json:"replacement,omitempty"`
	ComponentName string           `json:"componentName,omitempty"`
	PropName      string           `json:"propName,omitempty"`
	PropValue     string           `json:"propValue,omitempty"`
	Condition     *condition.Group `json:"condition,omitempty"`
}

// Context is the read-only state for one module-processing pass.
type Context struct {
	SelectedModules map[string]bool
	ProjectRoot     string
	ProjectName     string
	ModuleName      string
	Verbose         bool
}

// conditionContext projects the fields condition evaluation depends on.
func (c Context) conditionContext() condition.Context {
	return condition.Context{
		SelectedModules: c.SelectedModules,
		ProjectRoot:     c.ProjectRoot,
	}
}

// Status is the outcome of one instruction attempt.
type Status string

const (
	StatusExecuted Status = "executed"
	StatusSkipped  Status = "skipped"
)

// Outcome reports what Apply did, including the full guard trace when the
// instruction carried a condition group.
type Outcome struct {
	Status           Status
	ConditionResults []condition.Result
}

// Summary tallies a batch of instruction attempts.
type Summary struct {
	Executed int
	Skipped  int
	Failed   int
}
