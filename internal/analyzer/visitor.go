package analyzer

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/blackwell-systems/perfscope/internal/pysrc"
)

// Visit walks the tree in pre-order, filling the Context with structural
// records and inline findings. The input tree must have parsed cleanly;
// the Analyzer checks that before calling Visit.
func Visit(tree *pysrc.Tree, ctx *Context) {
	walk(tree.Root(), tree.Source(), ctx)
}

func walk(n *sitter.Node, src []byte, ctx *Context) {
	if n == nil {
		return
	}
	ctx.depth++
	defer func() { ctx.depth-- }()
	if ctx.depth > ctx.MaxDepth {
		if !ctx.depthExceeded {
			ctx.depthExceeded = true
			ctx.AddFinding(Finding{
				Kind:     FindingDepthExceeded,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("Construct nesting exceeds %d levels; deeper constructs were skipped.", ctx.MaxDepth),
				Line:     pysrc.Line(n),
			})
		}
		return
	}

	switch pysrc.KindOf(n) {
	case pysrc.KindImport:
		visitImport(n, src, ctx)
	case pysrc.KindImportFrom:
		if mod := n.ChildByFieldName("module_name"); mod != nil {
			ctx.ImportedModules[pysrc.NodeText(mod, src)] = true
		}
	case pysrc.KindFunctionDef:
		visitFunctionDef(n, src, ctx)
		return
	case pysrc.KindFor:
		visitFor(n, src, ctx)
		return
	case pysrc.KindWhile:
		visitWhile(n, src, ctx)
		return
	case pysrc.KindIf:
		ctx.Conditionals = append(ctx.Conditionals, ConditionalRecord{
			Line:     pysrc.Line(n),
			TestType: kindName(n.ChildByFieldName("condition")),
			HasElse:  hasChildOfType(n, "elif_clause") || hasChildOfType(n, "else_clause"),
		})
	case pysrc.KindTry:
		ctx.Exceptions = append(ctx.Exceptions, ExceptionRecord{
			Line:       pysrc.Line(n),
			Handlers:   countChildrenOfType(n, "except_clause"),
			HasFinally: hasChildOfType(n, "finally_clause"),
			HasElse:    hasChildOfType(n, "else_clause"),
		})
	case pysrc.KindListComp:
		visitComprehension(n, ctx, "list", true)
	case pysrc.KindDictComp:
		visitComprehension(n, ctx, "dict", true)
	case pysrc.KindSetComp:
		visitComprehension(n, ctx, "set", true)
	case pysrc.KindGeneratorExp:
		visitComprehension(n, ctx, "generator", false)
	case pysrc.KindList:
		ctx.Containers = append(ctx.Containers, ContainerRecord{
			Line: pysrc.Line(n), Kind: "list", Size: int(n.NamedChildCount()),
		})
	case pysrc.KindDict:
		ctx.Containers = append(ctx.Containers, ContainerRecord{
			Line: pysrc.Line(n), Kind: "dict", Size: countChildrenOfType(n, "pair"),
		})
	case pysrc.KindSet:
		ctx.Containers = append(ctx.Containers, ContainerRecord{
			Line: pysrc.Line(n), Kind: "set", Size: int(n.NamedChildCount()),
		})
	case pysrc.KindTuple:
		ctx.Containers = append(ctx.Containers, ContainerRecord{
			Line: pysrc.Line(n), Kind: "tuple", Size: int(n.NamedChildCount()),
		})
	case pysrc.KindCall:
		visitCall(n, src, ctx)
	}

	walkChildren(n, src, ctx)
}

func walkChildren(n *sitter.Node, src []byte, ctx *Context) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		walk(n.NamedChild(i), src, ctx)
	}
}

func visitImport(n *sitter.Node, src []byte, ctx *Context) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "dotted_name":
			ctx.ImportedModules[pysrc.NodeText(child, src)] = true
		case "aliased_import":
			if name := child.ChildByFieldName("name"); name != nil {
				ctx.ImportedModules[pysrc.NodeText(name, src)] = true
			}
		}
	}
}

func visitFunctionDef(n *sitter.Node, src []byte, ctx *Context) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		walkChildren(n, src, ctx)
		return
	}
	name := pysrc.NodeText(nameNode, src)

	rec := FunctionRecord{
		Name:       name,
		Line:       pysrc.Line(n),
		Decorators: decoratorNames(n, src),
	}

	if params := n.ChildByFieldName("parameters"); params != nil {
		for i := 0; i < int(params.NamedChildCount()); i++ {
			p := params.NamedChild(i)
			switch p.Type() {
			case "identifier":
				rec.Params = append(rec.Params, pysrc.NodeText(p, src))
			case "typed_parameter":
				if id := firstChildOfType(p, "identifier"); id != nil {
					rec.Params = append(rec.Params, pysrc.NodeText(id, src))
				}
			case "default_parameter", "typed_default_parameter":
				if pn := p.ChildByFieldName("name"); pn != nil {
					rec.Params = append(rec.Params, pysrc.NodeText(pn, src))
				}
				rec.Defaults++
				checkMutableDefault(p, src, name, pysrc.Line(n), ctx)
			case "list_splat_pattern", "dictionary_splat_pattern":
				rec.Params = append(rec.Params, pysrc.NodeText(p, src))
			}
		}
	}

	// Last definition wins on name collision.
	ctx.Functions[name] = rec

	prev := ctx.currentFunction
	ctx.currentFunction = name
	walkChildren(n, src, ctx)
	ctx.currentFunction = prev
}

// checkMutableDefault flags list, dict, and set literals used as a
// parameter default. The finding is reported at the definition line, the
// way users read the warning.
func checkMutableDefault(param *sitter.Node, src []byte, funcName string, defLine int, ctx *Context) {
	value := param.ChildByFieldName("value")
	if value == nil {
		return
	}
	switch pysrc.KindOf(value) {
	case pysrc.KindList, pysrc.KindDict, pysrc.KindSet:
		ctx.AddFinding(Finding{
			Kind:     FindingMutableDefault,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("Mutable default argument in function %q at line %d.", funcName, defLine),
			Line:     defLine,
			Node:     funcName,
		})
	}
}

func visitFor(n *sitter.Node, src []byte, ctx *Context) {
	ctx.loopDepth++
	defer func() { ctx.loopDepth-- }()

	iter := n.ChildByFieldName("right")
	line := pysrc.Line(n)
	ctx.Loops = append(ctx.Loops, LoopRecord{
		Line:       line,
		Kind:       "for",
		Nested:     ctx.loopDepth > 1,
		TargetType: kindName(n.ChildByFieldName("left")),
		IterType:   kindName(iter),
	})

	if isRangeLen(iter, src) {
		ctx.AddFinding(Finding{
			Kind:     FindingRangeLenLoop,
			Severity: SeverityInfo,
			Message:  fmt.Sprintf("range(len(...)) at line %d. Use enumerate() for an index and item pair.", line),
			Line:     line,
		})
	}

	walkChildren(n, src, ctx)
}

func visitWhile(n *sitter.Node, src []byte, ctx *Context) {
	ctx.loopDepth++
	defer func() { ctx.loopDepth-- }()

	ctx.Loops = append(ctx.Loops, LoopRecord{
		Line:     pysrc.Line(n),
		Kind:     "while",
		Nested:   ctx.loopDepth > 1,
		TestType: kindName(n.ChildByFieldName("condition")),
	})

	walkChildren(n, src, ctx)
}

func visitComprehension(n *sitter.Node, ctx *Context, kind string, container bool) {
	ctx.Comprehensions = append(ctx.Comprehensions, ComprehensionRecord{
		Line:       pysrc.Line(n),
		Kind:       kind,
		Generators: countChildrenOfType(n, "for_in_clause"),
	})
	if container {
		ctx.Containers = append(ctx.Containers, ContainerRecord{
			Line: pysrc.Line(n), Kind: kind, FromComprehension: true,
		})
	}
}

func visitCall(n *sitter.Node, src []byte, ctx *Context) {
	name := pysrc.CallName(n, src)
	if name == "" {
		return
	}
	ctx.CalledNames[name] = true
	if !pythonBuiltins[name] {
		return
	}
	ctx.UsedBuiltins[name] = true
	if ctx.loopDepth == 0 {
		return
	}
	line := pysrc.Line(n)
	switch name {
	case "len":
		ctx.AddFinding(Finding{
			Kind:     FindingLenInLoop,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("Call to len() inside a loop at line %d. Compute the length once before the loop.", line),
			Line:     line,
		})
	case "sorted":
		ctx.AddFinding(Finding{
			Kind:     FindingSortedInLoop,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("Call to sorted() inside a loop at line %d. Sort once before the loop if possible.", line),
			Line:     line,
		})
	}
}

// isRangeLen reports whether n is range(...) with a single argument that is
// itself a len(...) call.
func isRangeLen(n *sitter.Node, src []byte) bool {
	if !pysrc.IsCallTo(n, src, "range") {
		return false
	}
	args := pysrc.CallArgs(n, src)
	return len(args) == 1 && pysrc.IsCallTo(args[0], src, "len")
}

// decoratorNames resolves the decorators attached to a definition through
// its enclosing decorated_definition node, if any.
func decoratorNames(def *sitter.Node, src []byte) []string {
	parent := def.Parent()
	if parent == nil || parent.Type() != "decorated_definition" {
		return nil
	}
	var names []string
	for i := 0; i < int(parent.NamedChildCount()); i++ {
		child := parent.NamedChild(i)
		if child.Type() != "decorator" {
			continue
		}
		if expr := child.NamedChild(0); expr != nil {
			names = append(names, pysrc.DecoratorName(expr, src))
		}
	}
	return names
}

func kindName(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return pysrc.KindOf(n).String()
}

func hasChildOfType(n *sitter.Node, nodeType string) bool {
	return countChildrenOfType(n, nodeType) > 0
}

func countChildrenOfType(n *sitter.Node, nodeType string) int {
	count := 0
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if n.NamedChild(i).Type() == nodeType {
			count++
		}
	}
	return count
}

func firstChildOfType(n *sitter.Node, nodeType string) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if child := n.NamedChild(i); child.Type() == nodeType {
			return child
		}
	}
	return nil
}
