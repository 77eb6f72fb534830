package analyzer

// pythonBuiltins is the subset of Python builtin names the visitor
// recognizes when classifying call sites. Resolution is by name only; a
// method named len on some object is indistinguishable from the builtin,
// which is a documented imprecision of name-based call resolution.
var pythonBuiltins = map[string]bool{
	"abs": true, "all": true, "any": true, "bool": true, "bytes": true,
	"callable": true, "chr": true, "dict": true, "dir": true, "divmod": true,
	"enumerate": true, "filter": true, "float": true, "format": true,
	"frozenset": true, "getattr": true, "hasattr": true, "hash": true,
	"hex": true, "id": true, "input": true, "int": true, "isinstance": true,
	"issubclass": true, "iter": true, "len": true, "list": true, "map": true,
	"max": true, "min": true, "next": true, "object": true, "oct": true,
	"open": true, "ord": true, "pow": true, "print": true, "range": true,
	"repr": true, "reversed": true, "round": true, "set": true,
	"setattr": true, "slice": true, "sorted": true, "str": true, "sum": true,
	"tuple": true, "type": true, "vars": true, "zip": true,
}
