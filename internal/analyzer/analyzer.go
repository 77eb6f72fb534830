package analyzer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/blackwell-systems/perfscope/internal/pysrc"
)

// Analyzer orchestrates the visitor and the scanner over one input at a
// time. An instance may be reused across sequential runs (each run builds a
// fresh Context), but is not safe for concurrent use.
type Analyzer struct {
	// MaxDepth bounds traversal recursion; zero means DefaultMaxDepth.
	MaxDepth int

	last *Report
}

// New returns an Analyzer with default limits.
func New() *Analyzer {
	return &Analyzer{MaxDepth: DefaultMaxDepth}
}

// Reset discards state carried from the previous run. Analysis entry points
// call it implicitly; it exists so callers can drop the last report early.
func (a *Analyzer) Reset() {
	a.last = nil
}

// AnalyzeSource analyzes Python source text. Input-shape problems (a parse
// failure, malformed constructs) never produce an error return; they are
// captured as findings so batch analysis can continue.
func (a *Analyzer) AnalyzeSource(src []byte, module string) *Report {
	a.Reset()
	ctx := NewContext(module, a.MaxDepth)

	tree, err := pysrc.Parse(context.Background(), src)
	if err != nil || tree.HasError() {
		// Partial results from a broken parse are discarded, not returned.
		if tree != nil {
			tree.Close()
		}
		failed := NewContext(module, a.MaxDepth)
		failed.AddFinding(Finding{
			Kind:     FindingSyntaxError,
			Severity: SeverityError,
			Message:  fmt.Sprintf("Syntax error in %s: input does not parse as Python.", moduleLabel(module)),
			Line:     1,
		})
		a.last = buildReport(failed)
		return a.last
	}
	defer tree.Close()

	Visit(tree, ctx)
	mergeScanFindings(ctx, Scan(src))

	a.last = buildReport(ctx)
	return a.last
}

// AnalyzeFile reads and analyzes a Python file. An unreadable file is
// reported as a single error finding, not returned as an error.
func (a *Analyzer) AnalyzeFile(path string) *Report {
	src, err := os.ReadFile(path)
	if err != nil {
		a.Reset()
		failed := NewContext(moduleName(path), a.MaxDepth)
		failed.AddFinding(Finding{
			Kind:     FindingSourceUnavailable,
			Severity: SeverityError,
			Message:  fmt.Sprintf("Cannot read %s: %v", path, err),
			Line:     0,
		})
		a.last = buildReport(failed)
		return a.last
	}
	return a.AnalyzeSource(src, moduleName(path))
}

// Last returns the report from the most recent run, or nil.
func (a *Analyzer) Last() *Report {
	return a.last
}

// mergeScanFindings appends scanner findings to the context, dropping any
// whose line an AST-based finding already covers. The tree rules win; text
// scanning only adds lines the tree rules could not see.
func mergeScanFindings(ctx *Context, scanned []Finding) {
	covered := make(map[int]bool, len(ctx.Findings))
	for _, f := range ctx.Findings {
		covered[f.Line] = true
	}
	for _, f := range scanned {
		if covered[f.Line] {
			continue
		}
		ctx.AddFinding(f)
	}
}

// buildReport freezes a run's accumulators into a Report.
func buildReport(ctx *Context) *Report {
	report := &Report{
		Module:          ctx.Module,
		Findings:        ctx.Findings,
		IssueCounts:     map[Severity]int{SeverityInfo: 0, SeverityWarning: 0, SeverityError: 0},
		Functions:       ctx.Functions,
		ImportedModules: sortedKeys(ctx.ImportedModules),
		UsedBuiltins:    sortedKeys(ctx.UsedBuiltins),
		Loops:           ctx.Loops,
		Conditionals:    ctx.Conditionals,
		Exceptions:      ctx.Exceptions,
		Comprehensions:  ctx.Comprehensions,
		Containers:      ctx.Containers,
	}

	for _, f := range ctx.Findings {
		report.IssueCounts[f.Severity]++
	}

	report.ConstructCounts = map[string]int{
		"functions":        len(ctx.Functions),
		"loops":            len(ctx.Loops),
		"conditionals":     len(ctx.Conditionals),
		"exception_blocks": len(ctx.Exceptions),
		"comprehensions":   len(ctx.Comprehensions),
		"containers":       len(ctx.Containers),
	}

	for name := range ctx.Functions {
		if !ctx.CalledNames[name] {
			report.UnusedFunctions = append(report.UnusedFunctions, name)
		}
	}
	sort.Strings(report.UnusedFunctions)

	return report
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func moduleName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".py")
}

func moduleLabel(module string) string {
	if module == "" {
		return "source"
	}
	return module
}
