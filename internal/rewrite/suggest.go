package rewrite

import (
	"context"

	"github.com/blackwell-systems/perfscope/internal/pysrc"
)

// Suggest reports every site the rewrite rule table would change, without
// changing anything. Aggressive-only and advice-only rules are included:
// advice is free, applying a rewrite is what needs the explicit opt-in.
// Unparseable input yields no suggestions.
func Suggest(src []byte) []Suggestion {
	tree, err := pysrc.Parse(context.Background(), src)
	if err != nil || tree.HasError() {
		if tree != nil {
			tree.Close()
		}
		return nil
	}
	defer tree.Close()

	sites := collectSites(tree.Root(), src, true)
	suggestions := make([]Suggestion, 0, len(sites))
	for _, s := range sites {
		suggestions = append(suggestions, Suggestion{
			Type:    s.rule,
			Message: s.message(),
			Line:    s.line,
		})
	}
	return suggestions
}
