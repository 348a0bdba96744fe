package condition

// Kind identifies what a condition tests. The string values are the wire
// vocabulary used in instruction-set JSON documents.
type Kind string

const (
	ModuleExists     Kind = "MODULE_EXISTS"
	ModuleNotExists  Kind = "MODULE_NOT_EXISTS"
	PatternExists    Kind = "PATTERN_EXISTS"
	PatternNotExists Kind = "PATTERN_NOT_EXISTS"
	PatternCount     Kind = "PATTERN_COUNT"
	FileExists       Kind = "FILE_EXISTS"
	FileNotExists    Kind = "FILE_NOT_EXISTS"
)

// Operator is the comparison used by PATTERN_COUNT conditions.
type Operator string

const (
	Equals         Operator = "EQUALS"
	NotEquals      Operator = "NOT_EQUALS"
	GreaterThan    Operator = "GREATER_THAN"
	LessThan       Operator = "LESS_THAN"
	GreaterOrEqual Operator = "GREATER_OR_EQUAL"
	LessOrEqual    Operator = "LESS_OR_EQUAL"
)

// Logic combines the member results of a Group.
type Logic string

const (
	LogicAnd Logic = "AND"
	LogicOr  Logic = "OR"
)

// Condition is a single predicate. Value carries the module name or text
// pattern depending on Kind. Target overrides the file a pattern or
// existence check reads; when empty, pattern kinds fall back to the owning
// instruction's path and FILE_* kinds fall back to Value.
type Condition struct {
	Kind     Kind     `json:"kind"`
	Value    string   `json:"value,omitempty"`
	Operator Operator `json:"operator,omitempty"`
	Count    int      `json:"count,omitempty"`
	Target   string   `json:"target,omitempty"`
}

// Group is an ordered list of conditions combined with AND or OR logic.
// An empty Logic defaults to AND. An AND group with no conditions is
// vacuously true; an OR group with no conditions is false.
type Group struct {
	Conditions []Condition `json:"conditions"`
	Logic      Logic       `json:"logic,omitempty"`
}

// Context is the read-only state conditions are evaluated against.
type Context struct {
	SelectedModules map[string]bool
	ProjectRoot     string
}

// Result is the outcome of evaluating one condition.
type Result struct {
	Passed bool
	Reason string
}

// GroupResult is the combined outcome of a Group plus the complete
// per-condition trace, preserved even when the combinator could have
// short-circuited.
type GroupResult struct {
	Passed  bool
	Results []Result
}
