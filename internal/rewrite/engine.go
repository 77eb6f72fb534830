package rewrite

import (
	"context"
	"sort"

	"github.com/blackwell-systems/perfscope/internal/analyzer"
	"github.com/blackwell-systems/perfscope/internal/pysrc"
)

// Engine applies the rewrite rule table to Python source. The input is
// never mutated; every run works on a fresh copy of the text. Aggressive
// enables rules whose safety rests on assumptions the engine cannot verify
// statically.
type Engine struct {
	Aggressive bool
}

// NewEngine returns an Engine in the given mode.
func NewEngine(aggressive bool) *Engine {
	return &Engine{Aggressive: aggressive}
}

// Rewrite transforms src and returns the result with a ledger of applied
// rules. It never fails: if the input does not parse, or the rewritten text
// no longer parses, the original source comes back unchanged with a warning
// attached.
func (e *Engine) Rewrite(src []byte) *Result {
	res := &Result{Source: src, Ledger: Ledger{}}

	tree, err := pysrc.Parse(context.Background(), src)
	if err != nil || tree.HasError() {
		if tree != nil {
			tree.Close()
		}
		res.Warnings = append(res.Warnings, analyzer.Finding{
			Kind:     analyzer.FindingSyntaxError,
			Severity: analyzer.SeverityWarning,
			Message:  "Input does not parse as Python; returning it unchanged.",
			Line:     1,
		})
		return res
	}
	defer tree.Close()

	var sites []*site
	for _, s := range collectSites(tree.Root(), src, e.Aggressive) {
		if !s.adviceOnly {
			sites = append(sites, s)
		}
	}
	if len(sites) == 0 {
		return res
	}

	out := applyEdits(src, sites)

	// Validate by reparsing. A rewrite that no longer parses is discarded
	// wholesale in favor of the original.
	check, err := pysrc.Parse(context.Background(), out)
	if err != nil || check.HasError() {
		if check != nil {
			check.Close()
		}
		res.Warnings = append(res.Warnings, analyzer.Finding{
			Kind:     "rewrite_emit_error",
			Severity: analyzer.SeverityWarning,
			Message:  "Rewritten source failed to reparse; returning the original unchanged.",
			Line:     1,
		})
		return res
	}
	check.Close()

	for _, s := range sites {
		res.Ledger[s.rule]++
	}
	res.Source = out
	res.Changed = true
	return res
}

// applyEdits builds the output text by applying every site's edits
// back-to-front, so earlier byte offsets stay valid throughout.
func applyEdits(src []byte, sites []*site) []byte {
	var edits []edit
	for _, s := range sites {
		edits = append(edits, s.edits...)
	}
	sort.Slice(edits, func(i, j int) bool {
		return edits[i].start > edits[j].start
	})

	out := make([]byte, len(src))
	copy(out, src)
	for _, e := range edits {
		patched := make([]byte, 0, len(out)-int(e.end-e.start)+len(e.replacement))
		patched = append(patched, out[:e.start]...)
		patched = append(patched, e.replacement...)
		patched = append(patched, out[e.end:]...)
		out = patched
	}
	return out
}
