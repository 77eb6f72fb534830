// Package analyzer inspects Python source for structural facts and
// performance anti-patterns. It combines a syntax-tree visitor with a
// text-pattern scanner and aggregates both into an immutable Report.
package analyzer

// Severity classifies how serious a finding is.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Finding kinds produced by the visitor, the scanner, and the entry points.
const (
	FindingMutableDefault     = "mutable_default_argument"
	FindingLenInLoop          = "len_in_loop"
	FindingSortedInLoop       = "sorted_in_loop"
	FindingRangeLenLoop       = "range_len_loop"
	FindingModuleConstant     = "module_constant"
	FindingStringConcatInLoop = "string_concat_in_loop"
	FindingSyntaxError        = "syntax_error"
	FindingSourceUnavailable  = "source_unavailable"
	FindingDepthExceeded      = "max_depth_exceeded"
)

// Finding is a single detected issue with its source location.
type Finding struct {
	Kind     string   `json:"kind"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Line     int      `json:"line"`
	Node     string   `json:"node,omitempty"`
}

// FunctionRecord describes one function definition. Records are keyed by
// name; a later definition with the same name overwrites an earlier one,
// so conditional redefinitions collapse to the last one seen.
type FunctionRecord struct {
	Name       string   `json:"name"`
	Line       int      `json:"line"`
	Params     []string `json:"params"`
	Defaults   int      `json:"defaults"`
	Decorators []string `json:"decorators,omitempty"`
}

// LoopRecord describes a for or while loop. Nested is measured against the
// live loop depth at the moment the loop is entered, before its body.
type LoopRecord struct {
	Line       int    `json:"line"`
	Kind       string `json:"kind"` // "for" or "while"
	Nested     bool   `json:"nested"`
	TargetType string `json:"target_type,omitempty"`
	IterType   string `json:"iter_type,omitempty"`
	TestType   string `json:"test_type,omitempty"`
}

// ConditionalRecord describes an if statement.
type ConditionalRecord struct {
	Line     int    `json:"line"`
	TestType string `json:"test_type"`
	HasElse  bool   `json:"has_else"`
}

// ExceptionRecord describes a try statement.
type ExceptionRecord struct {
	Line       int  `json:"line"`
	Handlers   int  `json:"handlers"`
	HasFinally bool `json:"has_finally"`
	HasElse    bool `json:"has_else"`
}

// ComprehensionRecord describes a comprehension or generator expression.
type ComprehensionRecord struct {
	Line       int    `json:"line"`
	Kind       string `json:"kind"` // "list", "dict", "set", "generator"
	Generators int    `json:"generators"`
}

// ContainerRecord describes a container literal, or a container produced by
// a comprehension (FromComprehension true, Size zero).
type ContainerRecord struct {
	Line              int    `json:"line"`
	Kind              string `json:"kind"` // "list", "dict", "set", "tuple"
	Size              int    `json:"size"`
	FromComprehension bool   `json:"from_comprehension"`
}

// Report is the aggregate result of one analysis run. Callers must treat it
// as immutable: the same value is shared with the recommendation layer.
type Report struct {
	Module          string                    `json:"module,omitempty"`
	Findings        []Finding                 `json:"findings"`
	IssueCounts     map[Severity]int          `json:"issue_counts"`
	ConstructCounts map[string]int            `json:"construct_counts"`
	ImportedModules []string                  `json:"imported_modules"`
	UsedBuiltins    []string                  `json:"used_builtins"`
	Functions       map[string]FunctionRecord `json:"functions"`
	UnusedFunctions []string                  `json:"unused_functions"`
	Loops           []LoopRecord              `json:"loops"`
	Conditionals    []ConditionalRecord       `json:"conditionals"`
	Exceptions      []ExceptionRecord         `json:"exceptions"`
	Comprehensions  []ComprehensionRecord     `json:"comprehensions"`
	Containers      []ContainerRecord         `json:"containers"`
}

// Opportunity is a uniform view over findings and structural facts, used by
// callers that want a flat list of things worth acting on.
type Opportunity struct {
	Type     string   `json:"type"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Line     int      `json:"line"`
}
