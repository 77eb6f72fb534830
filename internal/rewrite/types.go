// Package rewrite applies semantics-preserving source transformations and
// produces the read-only suggestions that mirror them. Both sides run the
// same precondition matchers, so a suggestion is only ever emitted for a
// site the rewriter would actually change.
package rewrite

import "github.com/blackwell-systems/perfscope/internal/analyzer"

// Rule identifiers, used as ledger keys and suggestion types.
const (
	RuleRangeLenEnumerate       = "range_len_enumerate"
	RuleRedundantListConv       = "redundant_list_conversion"
	RuleListMapComprehension    = "list_map_comprehension"
	RuleListFilterComprehension = "list_filter_comprehension"
	RuleSortedKeyItemgetter     = "sorted_key_itemgetter"
)

// Ledger counts sites actually rewritten in one run, keyed by rule.
type Ledger map[string]int

// Total returns the number of rewritten sites across all rules.
func (l Ledger) Total() int {
	n := 0
	for _, c := range l {
		n += c
	}
	return n
}

// Result is the outcome of one rewrite run. When the rewritten source fails
// to reparse, Source is the original input, Changed is false, and Warnings
// explains why.
type Result struct {
	Source   []byte             `json:"-"`
	Ledger   Ledger             `json:"ledger"`
	Changed  bool               `json:"changed"`
	Warnings []analyzer.Finding `json:"warnings,omitempty"`
}

// Suggestion is the advisory counterpart of a rewrite: same trigger, no
// mutation. It is deliberately separate from analyzer.Finding because it
// originates from the rewrite rule table, not the analysis pass.
type Suggestion struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Line    int    `json:"line"`
}
