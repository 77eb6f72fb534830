package pysrc

import sitter "github.com/smacker/go-tree-sitter"

// Kind is the closed set of Python node kinds the analysis passes dispatch
// on. Any grammar node type outside this set maps to KindUnsupported; the
// traversal still descends into its children, it just fires no rules there.
type Kind int

const (
	KindUnsupported Kind = iota
	KindModule
	KindFunctionDef
	KindClassDef
	KindDecoratedDef
	KindDecorator
	KindFor
	KindWhile
	KindIf
	KindTry
	KindListComp
	KindDictComp
	KindSetComp
	KindGeneratorExp
	KindList
	KindDict
	KindSet
	KindTuple
	KindCall
	KindImport
	KindImportFrom
	KindAssignment
	KindAugAssign
	KindBinaryOp
	KindAttribute
	KindIdentifier
)

var kindNames = map[Kind]string{
	KindUnsupported:  "unsupported",
	KindModule:       "module",
	KindFunctionDef:  "function_def",
	KindClassDef:     "class_def",
	KindDecoratedDef: "decorated_def",
	KindDecorator:    "decorator",
	KindFor:          "for",
	KindWhile:        "while",
	KindIf:           "if",
	KindTry:          "try",
	KindListComp:     "list_comp",
	KindDictComp:     "dict_comp",
	KindSetComp:      "set_comp",
	KindGeneratorExp: "generator_exp",
	KindList:         "list",
	KindDict:         "dict",
	KindSet:          "set",
	KindTuple:        "tuple",
	KindCall:         "call",
	KindImport:       "import",
	KindImportFrom:   "import_from",
	KindAssignment:   "assignment",
	KindAugAssign:    "aug_assign",
	KindBinaryOp:     "binary_op",
	KindAttribute:    "attribute",
	KindIdentifier:   "identifier",
}

// String returns a stable lowercase name for the kind.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unsupported"
}

// kindByType maps tree-sitter grammar type strings to kinds.
var kindByType = map[string]Kind{
	"module":                   KindModule,
	"function_definition":      KindFunctionDef,
	"class_definition":         KindClassDef,
	"decorated_definition":     KindDecoratedDef,
	"decorator":                KindDecorator,
	"for_statement":            KindFor,
	"while_statement":          KindWhile,
	"if_statement":             KindIf,
	"try_statement":            KindTry,
	"list_comprehension":       KindListComp,
	"dictionary_comprehension": KindDictComp,
	"set_comprehension":        KindSetComp,
	"generator_expression":     KindGeneratorExp,
	"list":                     KindList,
	"dictionary":               KindDict,
	"set":                      KindSet,
	"tuple":                    KindTuple,
	"call":                     KindCall,
	"import_statement":         KindImport,
	"import_from_statement":    KindImportFrom,
	"assignment":               KindAssignment,
	"augmented_assignment":     KindAugAssign,
	"binary_operator":          KindBinaryOp,
	"attribute":                KindAttribute,
	"identifier":               KindIdentifier,
}

// KindOf maps a node to its Kind, or KindUnsupported for anything outside
// the enumerated set.
func KindOf(n *sitter.Node) Kind {
	if n == nil {
		return KindUnsupported
	}
	if k, ok := kindByType[n.Type()]; ok {
		return k
	}
	return KindUnsupported
}
