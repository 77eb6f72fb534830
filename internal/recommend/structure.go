package recommend

import (
	"fmt"

	"github.com/blackwell-systems/perfscope/internal/analyzer"
)

// largeListSize is the literal element count past which a list literal is
// called out.
const largeListSize = 100

// FromReport generates code-structure recommendations from an analysis
// report. The report is read, never modified.
func (a *Aggregator) FromReport(r *analyzer.Report) []string {
	var recs []string

	if r == nil {
		recs = append(recs, "No code analysis data available. Run an analysis to get recommendations.")
		a.recs[CategoryCodeStructure] = recs
		return recs
	}

	for _, f := range r.Findings {
		if f.Line > 0 {
			recs = append(recs, fmt.Sprintf("%s (line %d)", f.Message, f.Line))
		} else {
			recs = append(recs, f.Message)
		}
	}

	nested := 0
	for _, loop := range r.Loops {
		if loop.Nested {
			nested++
		}
	}
	if nested > 0 {
		recs = append(recs, fmt.Sprintf(
			"Found %d nested loop(s). Nested loops are a common bottleneck; consider restructuring or a better algorithm.", nested))
	}

	large := 0
	dictCount := 0
	for _, c := range r.Containers {
		if c.Kind == "list" && c.Size > largeListSize {
			large++
		}
		if c.Kind == "dict" {
			dictCount++
		}
	}
	if large > 0 {
		recs = append(recs, fmt.Sprintf(
			"Found %d large list literal(s). Check whether sets or dicts fit the access pattern better.", large))
	}

	if n := len(r.UnusedFunctions); n > 0 {
		recs = append(recs, fmt.Sprintf(
			"Found %d unused function(s). Remove dead code to improve maintainability.", n))
	}

	if !contains(r.ImportedModules, "itertools") && len(r.Loops) > 3 {
		recs = append(recs, "Consider the itertools module for more efficient iteration patterns.")
	}
	if !contains(r.ImportedModules, "collections") && dictCount > 3 {
		recs = append(recs, "Consider collections.defaultdict or collections.Counter for cleaner dictionary handling.")
	}

	a.recs[CategoryCodeStructure] = recs
	return recs
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
