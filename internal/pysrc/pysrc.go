// Package pysrc wraps the tree-sitter Python grammar behind a small parsing
// surface used by the analyzer and rewrite packages.
package pysrc

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Tree holds a parsed Python syntax tree together with the source it was
// parsed from. Node positions and text lookups are only valid against that
// same source.
type Tree struct {
	tree *sitter.Tree
	src  []byte
}

// Parse parses Python source text. A returned error means the parser itself
// failed; syntactically invalid input still yields a tree, check HasError.
func Parse(ctx context.Context, src []byte) (*Tree, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())
	t, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, err
	}
	return &Tree{tree: t, src: src}, nil
}

// Root returns the root node of the tree.
func (t *Tree) Root() *sitter.Node {
	return t.tree.RootNode()
}

// Source returns the source text the tree was parsed from.
func (t *Tree) Source() []byte {
	return t.src
}

// HasError reports whether the parse produced any error nodes.
func (t *Tree) HasError() bool {
	return t.tree.RootNode().HasError()
}

// Close releases the underlying tree-sitter tree.
func (t *Tree) Close() {
	t.tree.Close()
}

// NodeText returns the source text spanned by a node.
func NodeText(n *sitter.Node, src []byte) string {
	return string(src[n.StartByte():n.EndByte()])
}

// Line returns the 1-based source line a node starts on.
func Line(n *sitter.Node) int {
	return int(n.StartPoint().Row) + 1
}

// CallName resolves the callee name of a call node. A plain identifier
// resolves to itself; an attribute access resolves to its final attribute
// name, unqualified by receiver. Returns "" for shapes that carry no
// resolvable name (subscripts, lambdas, nested calls).
func CallName(call *sitter.Node, src []byte) string {
	fn := call.ChildByFieldName("function")
	if fn == nil {
		return ""
	}
	switch KindOf(fn) {
	case KindIdentifier:
		return NodeText(fn, src)
	case KindAttribute:
		attr := fn.ChildByFieldName("attribute")
		if attr != nil {
			return NodeText(attr, src)
		}
	}
	return ""
}

// DecoratorName resolves a decorator expression into a dotted name,
// unwrapping call and attribute wrappers recursively. Shapes it cannot
// resolve come back as "unknown" rather than failing the traversal.
func DecoratorName(n *sitter.Node, src []byte) string {
	switch KindOf(n) {
	case KindIdentifier:
		return NodeText(n, src)
	case KindAttribute:
		obj := n.ChildByFieldName("object")
		attr := n.ChildByFieldName("attribute")
		if obj != nil && attr != nil {
			return DecoratorName(obj, src) + "." + NodeText(attr, src)
		}
	case KindCall:
		fn := n.ChildByFieldName("function")
		if fn != nil {
			return DecoratorName(fn, src)
		}
	}
	return "unknown"
}

// CallArgs returns the positional argument nodes of a call, skipping
// punctuation and keyword arguments.
func CallArgs(call *sitter.Node, src []byte) []*sitter.Node {
	list := call.ChildByFieldName("arguments")
	if list == nil {
		return nil
	}
	var args []*sitter.Node
	for i := 0; i < int(list.NamedChildCount()); i++ {
		child := list.NamedChild(i)
		if child.Type() == "keyword_argument" || child.Type() == "comment" {
			continue
		}
		args = append(args, child)
	}
	return args
}

// IsCallTo reports whether a node is a call whose callee resolves to name
// (e.g. IsCallTo(n, src, "range")).
func IsCallTo(n *sitter.Node, src []byte, name string) bool {
	return n != nil && KindOf(n) == KindCall && CallName(n, src) == name
}

// CollapseWhitespace squeezes runs of whitespace in s to single spaces.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
