package rewrite

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/blackwell-systems/perfscope/internal/pysrc"
)

// edit replaces the byte range [start, end) of the original source.
type edit struct {
	start, end  uint32
	replacement string
}

// site is one rewritable location: the edits that change it, the span they
// cover, and the text used in messages. One site counts once in the ledger
// no matter how many edits it carries.
type site struct {
	rule       string
	line       int
	start, end uint32
	edits      []edit
	detail     string
	aggressive bool
	adviceOnly bool
}

func (s *site) message() string {
	switch s.rule {
	case RuleRangeLenEnumerate:
		return fmt.Sprintf("Use 'enumerate(%s)' instead of 'range(len(%s))'.", s.detail, s.detail)
	case RuleRedundantListConv:
		return "Unnecessary list() conversion of range(). Iterate the range directly."
	case RuleListMapComprehension:
		return "Replace list(map(lambda ...)) with a list comprehension."
	case RuleListFilterComprehension:
		return "Replace list(filter(lambda ...)) with a list comprehension."
	case RuleSortedKeyItemgetter:
		return "Consider operator.itemgetter for the sorted() key function."
	}
	return s.rule
}

// collectSites walks the tree in pre-order gathering every site whose rule
// precondition holds. Sites nested inside an earlier site's span are
// dropped, so overlapping edits cannot corrupt each other.
func collectSites(root *sitter.Node, src []byte, includeAggressive bool) []*site {
	var sites []*site
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if s := matchRangeLenFor(n, src); s != nil {
			sites = append(sites, s)
		}
		if s := matchListRange(n, src); s != nil && (includeAggressive || !s.aggressive) {
			sites = append(sites, s)
		}
		if s := matchListMapLambda(n, src); s != nil {
			sites = append(sites, s)
		}
		if s := matchListFilterLambda(n, src); s != nil {
			sites = append(sites, s)
		}
		if s := matchSortedKeyLambda(n, src); s != nil {
			sites = append(sites, s)
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			walk(n.NamedChild(i))
		}
	}
	walk(root)
	return dropContained(sites)
}

// matchRangeLenFor fires on a for loop whose iterable is range(len(x)) with
// a single plain-identifier target. The rewrite swaps the iterable for
// enumerate(x) and widens the target to an (index, item) pair. Body
// references like x[i] are left alone: correct, but a partial optimization.
// The rule assumes the loop body does not resize x, which is inherited from
// the pattern rather than verified here.
func matchRangeLenFor(n *sitter.Node, src []byte) *site {
	if pysrc.KindOf(n) != pysrc.KindFor {
		return nil
	}
	iter := n.ChildByFieldName("right")
	target := n.ChildByFieldName("left")
	if iter == nil || target == nil || pysrc.KindOf(target) != pysrc.KindIdentifier {
		return nil
	}
	if !pysrc.IsCallTo(iter, src, "range") {
		return nil
	}
	rangeArgs := pysrc.CallArgs(iter, src)
	if len(rangeArgs) != 1 || !pysrc.IsCallTo(rangeArgs[0], src, "len") {
		return nil
	}
	lenArgs := pysrc.CallArgs(rangeArgs[0], src)
	if len(lenArgs) != 1 {
		return nil
	}

	seq := pysrc.NodeText(lenArgs[0], src)
	targetText := pysrc.NodeText(target, src)
	return &site{
		rule:   RuleRangeLenEnumerate,
		line:   pysrc.Line(n),
		start:  target.StartByte(),
		end:    iter.EndByte(),
		detail: seq,
		edits: []edit{
			{target.StartByte(), target.EndByte(), targetText + ", _item"},
			{iter.StartByte(), iter.EndByte(), "enumerate(" + seq + ")"},
		},
	}
}

// matchListRange fires on list(range(...)). Dropping the conversion is only
// safe when the result is iterated once, so the rule is aggressive-only.
func matchListRange(n *sitter.Node, src []byte) *site {
	if !pysrc.IsCallTo(n, src, "list") {
		return nil
	}
	args := pysrc.CallArgs(n, src)
	if len(args) != 1 || !pysrc.IsCallTo(args[0], src, "range") {
		return nil
	}

	inner := pysrc.NodeText(args[0], src)
	return &site{
		rule:       RuleRedundantListConv,
		line:       pysrc.Line(n),
		start:      n.StartByte(),
		end:        n.EndByte(),
		detail:     inner,
		edits:      []edit{{n.StartByte(), n.EndByte(), inner}},
		aggressive: true,
	}
}

// matchListMapLambda fires on list(map(lambda v: expr, seq)) and replaces the
// whole call with [expr for v in seq]. Only single-parameter lambdas qualify;
// anything else, including map over a named function, is left alone.
func matchListMapLambda(n *sitter.Node, src []byte) *site {
	lam, seq := listWrappedLambdaCall(n, src, "map")
	if lam == nil {
		return nil
	}
	param, body := lambdaParts(lam, src)
	if param == nil || body == nil || body.Type() == "tuple" {
		return nil
	}

	p := pysrc.NodeText(param, src)
	replacement := "[" + pysrc.NodeText(body, src) + " for " + p + " in " + pysrc.NodeText(seq, src) + "]"
	return &site{
		rule:   RuleListMapComprehension,
		line:   pysrc.Line(n),
		start:  n.StartByte(),
		end:    n.EndByte(),
		detail: p,
		edits:  []edit{{n.StartByte(), n.EndByte(), replacement}},
	}
}

// matchListFilterLambda fires on list(filter(lambda v: cond, seq)) and
// replaces the whole call with [v for v in seq if cond].
func matchListFilterLambda(n *sitter.Node, src []byte) *site {
	lam, seq := listWrappedLambdaCall(n, src, "filter")
	if lam == nil {
		return nil
	}
	param, body := lambdaParts(lam, src)
	if param == nil || body == nil {
		return nil
	}

	p := pysrc.NodeText(param, src)
	replacement := "[" + p + " for " + p + " in " + pysrc.NodeText(seq, src) + " if " + pysrc.NodeText(body, src) + "]"
	return &site{
		rule:   RuleListFilterComprehension,
		line:   pysrc.Line(n),
		start:  n.StartByte(),
		end:    n.EndByte(),
		detail: p,
		edits:  []edit{{n.StartByte(), n.EndByte(), replacement}},
	}
}

// matchSortedKeyLambda fires on sorted(..., key=lambda v: v[...]) where the
// lambda body is a plain subscript. operator.itemgetter is both faster and
// clearer there, but swapping it in needs an import edit, so the rule only
// advises and never rewrites.
func matchSortedKeyLambda(n *sitter.Node, src []byte) *site {
	if !pysrc.IsCallTo(n, src, "sorted") {
		return nil
	}
	key := keywordArg(n, src, "key")
	if key == nil || key.Type() != "lambda" {
		return nil
	}
	_, body := lambdaParts(key, src)
	if body == nil || body.Type() != "subscript" {
		return nil
	}

	return &site{
		rule:       RuleSortedKeyItemgetter,
		line:       pysrc.Line(n),
		start:      n.StartByte(),
		end:        n.EndByte(),
		detail:     pysrc.NodeText(body, src),
		adviceOnly: true,
	}
}

// listWrappedLambdaCall matches list(inner(lambda ..., seq)) where inner is
// the named builtin, returning the lambda and sequence nodes.
func listWrappedLambdaCall(n *sitter.Node, src []byte, inner string) (lam, seq *sitter.Node) {
	if !pysrc.IsCallTo(n, src, "list") {
		return nil, nil
	}
	outerArgs := pysrc.CallArgs(n, src)
	if len(outerArgs) != 1 || !pysrc.IsCallTo(outerArgs[0], src, inner) {
		return nil, nil
	}
	args := pysrc.CallArgs(outerArgs[0], src)
	if len(args) != 2 || args[0].Type() != "lambda" {
		return nil, nil
	}
	return args[0], args[1]
}

// lambdaParts returns the single identifier parameter and the body of a
// lambda node, or nils when the parameter list is anything else.
func lambdaParts(lam *sitter.Node, src []byte) (param, body *sitter.Node) {
	params := lam.ChildByFieldName("parameters")
	body = lam.ChildByFieldName("body")
	if params == nil || body == nil || params.NamedChildCount() != 1 {
		return nil, nil
	}
	param = params.NamedChild(0)
	if pysrc.KindOf(param) != pysrc.KindIdentifier {
		return nil, nil
	}
	return param, body
}

// keywordArg returns the value of the named keyword argument of a call, or
// nil when absent.
func keywordArg(call *sitter.Node, src []byte, name string) *sitter.Node {
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return nil
	}
	for i := 0; i < int(args.NamedChildCount()); i++ {
		arg := args.NamedChild(i)
		if arg.Type() != "keyword_argument" {
			continue
		}
		argName := arg.ChildByFieldName("name")
		if argName != nil && pysrc.NodeText(argName, src) == name {
			return arg.ChildByFieldName("value")
		}
	}
	return nil
}

// dropContained removes sites fully inside an earlier (pre-order, so outer)
// site's span. Advice-only sites carry no edits, so they neither block inner
// rewrites nor get dropped themselves.
func dropContained(sites []*site) []*site {
	var kept []*site
	for _, s := range sites {
		contained := false
		if !s.adviceOnly {
			for _, outer := range kept {
				if outer.adviceOnly {
					continue
				}
				if s.start >= outer.start && s.end <= outer.end {
					contained = true
					break
				}
			}
		}
		if !contained {
			kept = append(kept, s)
		}
	}
	return kept
}
