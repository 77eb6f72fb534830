package analyzer

// DefaultMaxDepth bounds traversal recursion. Python nesting this deep is
// pathological; the guard keeps a hostile input from exhausting the stack.
const DefaultMaxDepth = 512

// Context holds the accumulators for a single analysis run. A fresh Context
// is built per run and threaded through the traversal, so no state survives
// between runs on the same Analyzer.
type Context struct {
	Module   string
	MaxDepth int

	Findings        []Finding
	ImportedModules map[string]bool
	UsedBuiltins    map[string]bool
	Functions       map[string]FunctionRecord
	CalledNames     map[string]bool
	Loops           []LoopRecord
	Conditionals    []ConditionalRecord
	Exceptions      []ExceptionRecord
	Comprehensions  []ComprehensionRecord
	Containers      []ContainerRecord

	loopDepth       int
	currentFunction string
	depth           int
	depthExceeded   bool
}

// NewContext creates an empty accumulator set for one run.
func NewContext(module string, maxDepth int) *Context {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Context{
		Module:          module,
		MaxDepth:        maxDepth,
		ImportedModules: make(map[string]bool),
		UsedBuiltins:    make(map[string]bool),
		Functions:       make(map[string]FunctionRecord),
		CalledNames:     make(map[string]bool),
	}
}

// AddFinding appends a finding to the run.
func (c *Context) AddFinding(f Finding) {
	c.Findings = append(c.Findings, f)
}
