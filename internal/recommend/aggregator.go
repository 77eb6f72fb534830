// Package recommend merges analysis reports, rewrite suggestions, and
// externally supplied profiling summaries into categorized, prioritized
// recommendations.
package recommend

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/perfscope/internal/analyzer"
	"github.com/blackwell-systems/perfscope/internal/profile"
	"github.com/blackwell-systems/perfscope/internal/rewrite"
)

// Category buckets recommendations by the kind of evidence behind them.
type Category string

const (
	CategoryCPU           Category = "cpu"
	CategoryMemory        Category = "memory"
	CategoryAlgorithm     Category = "algorithm"
	CategoryCodeStructure Category = "code_structure"
)

// categoryOrder fixes the ordering used by Prioritized.
var categoryOrder = []Category{
	CategoryCPU, CategoryMemory, CategoryAlgorithm, CategoryCodeStructure,
}

// Aggregator accumulates recommendations per category. Like the Analyzer,
// an instance is reusable sequentially (Reset between runs) but not safe
// for concurrent use.
type Aggregator struct {
	recs map[Category][]string
}

// New returns an empty Aggregator.
func New() *Aggregator {
	a := &Aggregator{}
	a.Reset()
	return a
}

// Reset clears all accumulated recommendations.
func (a *Aggregator) Reset() {
	a.recs = map[Category][]string{
		CategoryCPU:           nil,
		CategoryMemory:        nil,
		CategoryAlgorithm:     nil,
		CategoryCodeStructure: nil,
	}
}

// Inputs carries the optional data sources for one aggregation run.
type Inputs struct {
	Report      *analyzer.Report
	Suggestions []rewrite.Suggestion
	CPU         *profile.CPUProfile
	Memory      *profile.MemoryProfile
	Line        *profile.LineProfile
}

// Aggregate resets the Aggregator and generates recommendations from every
// input that is present, returning the full category map.
func (a *Aggregator) Aggregate(in Inputs) map[Category][]string {
	a.Reset()
	if in.CPU != nil {
		a.FromCPUProfile(in.CPU)
	}
	if in.Memory != nil {
		a.FromMemoryProfile(in.Memory)
	}
	if in.Line != nil {
		a.FromLineProfile(in.Line)
	}
	if in.Report != nil {
		a.FromReport(in.Report)
	}
	if len(in.Suggestions) > 0 {
		a.FromSuggestions(in.Suggestions)
	}
	return a.All()
}

// FromSuggestions folds rewrite suggestions into the algorithm category;
// they are line-level advice, like line-profile hotspots.
func (a *Aggregator) FromSuggestions(suggestions []rewrite.Suggestion) []string {
	var recs []string
	for _, s := range suggestions {
		recs = append(recs, fmt.Sprintf("%s (line %d)", s.Message, s.Line))
	}
	a.recs[CategoryAlgorithm] = append(a.recs[CategoryAlgorithm], recs...)
	return recs
}

// All returns the accumulated recommendations per category.
func (a *Aggregator) All() map[Category][]string {
	return a.recs
}

// Prioritized returns up to maxPerCategory recommendations from each
// category, in fixed category order, each prefixed with its category tag.
func (a *Aggregator) Prioritized(maxPerCategory int) []string {
	var out []string
	for _, cat := range categoryOrder {
		recs := a.recs[cat]
		if maxPerCategory > 0 && len(recs) > maxPerCategory {
			recs = recs[:maxPerCategory]
		}
		for _, r := range recs {
			out = append(out, fmt.Sprintf("[%s] %s", strings.ToUpper(string(cat)), r))
		}
	}
	return out
}
