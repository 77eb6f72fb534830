package analyzer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyze(t *testing.T, src string) *Report {
	t.Helper()
	a := New()
	return a.AnalyzeSource([]byte(src), "test")
}

func findingsOfKind(r *Report, kind string) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

func TestAnalyze_MutableDefaultArgument(t *testing.T) {
	src := `def collect(item, bucket=[]):
    bucket.append(item)
    return bucket
`
	r := analyze(t, src)

	found := findingsOfKind(r, FindingMutableDefault)
	require.Len(t, found, 1)
	assert.Equal(t, SeverityWarning, found[0].Severity)
	assert.Equal(t, 1, found[0].Line)
	assert.Equal(t, "collect", found[0].Node)

	fn, ok := r.Functions["collect"]
	require.True(t, ok)
	assert.Equal(t, []string{"item", "bucket"}, fn.Params)
	assert.Equal(t, 1, fn.Defaults)
}

func TestAnalyze_ImmutableDefaultNotFlagged(t *testing.T) {
	src := `def greet(name="world", count=0):
    return name * count
`
	r := analyze(t, src)
	assert.Empty(t, findingsOfKind(r, FindingMutableDefault))
}

func TestAnalyze_RangeLenLoop(t *testing.T) {
	src := `def walk(xs):
    for i in range(len(xs)):
        print(xs[i])
`
	r := analyze(t, src)

	found := findingsOfKind(r, FindingRangeLenLoop)
	require.Len(t, found, 1)
	assert.Equal(t, SeverityInfo, found[0].Severity)
	assert.Equal(t, 2, found[0].Line)
}

func TestAnalyze_RangeWithBoundsNotFlagged(t *testing.T) {
	src := `for i in range(0, 10):
    print(i)
`
	r := analyze(t, src)
	assert.Empty(t, findingsOfKind(r, FindingRangeLenLoop))
}

func TestAnalyze_LenAndSortedInLoop(t *testing.T) {
	src := `def busy(xs):
    for x in xs:
        if len(xs) > 2:
            ys = sorted(xs)
    n = len(xs)
`
	r := analyze(t, src)

	assert.Len(t, findingsOfKind(r, FindingLenInLoop), 1)
	assert.Len(t, findingsOfKind(r, FindingSortedInLoop), 1)
}

func TestAnalyze_NestedLoopTracking(t *testing.T) {
	src := `for a in xs:
    for b in ys:
        pass
for c in zs:
    pass
while True:
    pass
`
	r := analyze(t, src)

	require.Len(t, r.Loops, 4)
	assert.False(t, r.Loops[0].Nested, "outer for")
	assert.True(t, r.Loops[1].Nested, "inner for")
	assert.False(t, r.Loops[2].Nested, "sibling for after nested pair")
	assert.False(t, r.Loops[3].Nested, "top-level while")
	assert.Equal(t, "while", r.Loops[3].Kind)
}

func TestAnalyze_UnusedFunctions(t *testing.T) {
	src := `def used():
    pass

def helper():
    pass

used()
`
	r := analyze(t, src)
	assert.Equal(t, []string{"helper"}, r.UnusedFunctions)
}

func TestAnalyze_MethodCallCountsAsUse(t *testing.T) {
	src := `def process():
    pass

obj.process()
`
	r := analyze(t, src)
	assert.Empty(t, r.UnusedFunctions)
}

func TestAnalyze_LastDefinitionWins(t *testing.T) {
	src := `def f(a):
    pass

def f(a, b):
    pass
`
	r := analyze(t, src)

	require.Len(t, r.Functions, 1)
	assert.Equal(t, []string{"a", "b"}, r.Functions["f"].Params)
	assert.Equal(t, 4, r.Functions["f"].Line)
}

func TestAnalyze_Decorators(t *testing.T) {
	src := `@functools.lru_cache(maxsize=None)
def cached(x):
    return x
`
	r := analyze(t, src)
	require.Contains(t, r.Functions, "cached")
	assert.Equal(t, []string{"functools.lru_cache"}, r.Functions["cached"].Decorators)
}

func TestAnalyze_Imports(t *testing.T) {
	src := `import os, sys
import numpy as np
from collections import deque
`
	r := analyze(t, src)
	assert.ElementsMatch(t, []string{"os", "sys", "numpy", "collections"}, r.ImportedModules)
}

func TestAnalyze_ComprehensionsAndContainers(t *testing.T) {
	src := `squares = [x * x for x in range(10)]
lookup = {k: v for k, v in pairs}
gen = (x for x in xs)
literal = [1, 2, 3]
mapping = {"a": 1}
`
	r := analyze(t, src)

	require.Len(t, r.Comprehensions, 3)
	assert.Equal(t, "list", r.Comprehensions[0].Kind)
	assert.Equal(t, "dict", r.Comprehensions[1].Kind)
	assert.Equal(t, "generator", r.Comprehensions[2].Kind)

	// Two comprehension-backed containers plus two literals. The generator
	// expression does not produce a container record.
	fromComp := 0
	for _, c := range r.Containers {
		if c.FromComprehension {
			fromComp++
		}
	}
	assert.Equal(t, 2, fromComp)
	assert.Len(t, r.Containers, 4)
}

func TestAnalyze_ConditionalsAndExceptions(t *testing.T) {
	src := `if x > 0:
    pass
elif x < 0:
    pass

try:
    risky()
except ValueError:
    pass
except KeyError:
    pass
finally:
    cleanup()
`
	r := analyze(t, src)

	require.Len(t, r.Conditionals, 1)
	assert.True(t, r.Conditionals[0].HasElse)

	require.Len(t, r.Exceptions, 1)
	assert.Equal(t, 2, r.Exceptions[0].Handlers)
	assert.True(t, r.Exceptions[0].HasFinally)
	assert.False(t, r.Exceptions[0].HasElse)
}

func TestAnalyze_ConstructCounts(t *testing.T) {
	src := `def f():
    for x in xs:
        pass

if y:
    pass
`
	r := analyze(t, src)

	assert.Equal(t, 1, r.ConstructCounts["functions"])
	assert.Equal(t, 1, r.ConstructCounts["loops"])
	assert.Equal(t, 1, r.ConstructCounts["conditionals"])
	assert.Equal(t, 0, r.ConstructCounts["exception_blocks"])
}

func TestAnalyze_SyntaxErrorDiscardsPartials(t *testing.T) {
	src := `def broken(:
    pass
`
	r := analyze(t, src)

	require.Len(t, r.Findings, 1)
	assert.Equal(t, FindingSyntaxError, r.Findings[0].Kind)
	assert.Equal(t, SeverityError, r.Findings[0].Severity)
	assert.Empty(t, r.Functions)
	assert.Equal(t, 1, r.IssueCounts[SeverityError])
}

func TestAnalyze_IssueCountsAlwaysPresent(t *testing.T) {
	r := analyze(t, "x = 1\n")
	assert.Equal(t, 0, r.IssueCounts[SeverityError])
	assert.Equal(t, 0, r.IssueCounts[SeverityWarning])
	assert.Equal(t, 0, r.IssueCounts[SeverityInfo])
}

func TestAnalyzeFile_Missing(t *testing.T) {
	a := New()
	r := a.AnalyzeFile(filepath.Join(t.TempDir(), "nope.py"))

	require.Len(t, r.Findings, 1)
	assert.Equal(t, FindingSourceUnavailable, r.Findings[0].Kind)
	assert.Equal(t, SeverityError, r.Findings[0].Severity)
}

func TestAnalyze_Deterministic(t *testing.T) {
	src := `import sys
def f(xs):
    for i in range(len(xs)):
        print(len(xs))
`
	a := New()
	first := a.AnalyzeSource([]byte(src), "test")
	second := a.AnalyzeSource([]byte(src), "test")
	assert.Equal(t, first, second)
	assert.Same(t, second, a.Last())
}

func TestScan_ModuleConstant(t *testing.T) {
	src := `MAX_SIZE = 100
regular = 1
_PRIVATE_CAP = 5
`
	findings := Scan([]byte(src))

	var constants []Finding
	for _, f := range findings {
		if f.Kind == FindingModuleConstant {
			constants = append(constants, f)
		}
	}
	require.Len(t, constants, 2)
	assert.Equal(t, 1, constants[0].Line)
	assert.Equal(t, 3, constants[1].Line)
}

func TestScan_StringConcatInLoop(t *testing.T) {
	src := `out = ""
for part in parts:
    out += "x"
`
	findings := Scan([]byte(src))

	var concat []Finding
	for _, f := range findings {
		if f.Kind == FindingStringConcatInLoop {
			concat = append(concat, f)
		}
	}
	require.Len(t, concat, 1)
	assert.Equal(t, 2, concat[0].Line)
}

func TestAnalyze_ScannerSuppressedByVisitorFinding(t *testing.T) {
	// The for line carries a visitor finding (range(len)), so the scanner's
	// concat match on the same line must be dropped.
	src := `for i in range(len(xs)):
    out += "x"
`
	r := analyze(t, src)

	assert.NotEmpty(t, findingsOfKind(r, FindingRangeLenLoop))
	assert.Empty(t, findingsOfKind(r, FindingStringConcatInLoop))
}

func TestAnalyze_DepthGuard(t *testing.T) {
	a := New()
	a.MaxDepth = 4

	src := `def f():
    if a:
        if b:
            if c:
                pass
`
	r := a.AnalyzeSource([]byte(src), "deep")

	found := findingsOfKind(r, FindingDepthExceeded)
	require.Len(t, found, 1, "guard fires exactly once")
	assert.Equal(t, SeverityWarning, found[0].Severity)
}

func TestOpportunities_FlattensReport(t *testing.T) {
	src := `def unused():
    pass

for a in xs:
    for b in ys:
        pass

nums = [1, 2]
`
	r := analyze(t, src)
	ops := Opportunities(r)

	types := map[string]int{}
	for _, op := range ops {
		types[op.Type]++
	}
	assert.Equal(t, 1, types["loop"], "one nested loop")
	assert.Equal(t, 1, types["container"], "one plain list literal")
	assert.Equal(t, 1, types["function"], "one unused function")
}
