package analyzer

import (
	"bytes"
	"regexp"
)

// scanRule is a raw-text pattern with a fixed finding shape. The scanner is
// reserved for idioms that span multiple lines or sit outside any single
// node, so none of these overlap a visitor rule on the same construct.
type scanRule struct {
	kind     string
	severity Severity
	message  string
	re       *regexp.Regexp
}

var scanRules = []scanRule{
	{
		kind:     FindingModuleConstant,
		severity: SeverityWarning,
		message:  "Module-level ALL_CAPS assignment looks like global state. Consider encapsulating it in a function or class.",
		re:       regexp.MustCompile(`(?m)^[A-Z_][A-Z0-9_]*\s*=`),
	},
	{
		kind:     FindingStringConcatInLoop,
		severity: SeverityWarning,
		message:  "String concatenation with += inside a loop. Collect parts in a list and join once.",
		re:       regexp.MustCompile(`(?m)^[ \t]*for\s+.+\s+in\s+.+:\s*\n(?:[ \t]+.*\n)*?[ \t]+\S+\s*\+=\s*['"]`),
	},
}

// Scan runs the text-pattern rules over raw source and returns their
// findings. Match positions are converted to line numbers by counting
// newlines before the match offset.
func Scan(src []byte) []Finding {
	var findings []Finding
	for _, rule := range scanRules {
		for _, loc := range rule.re.FindAllIndex(src, -1) {
			findings = append(findings, Finding{
				Kind:     rule.kind,
				Severity: rule.severity,
				Message:  rule.message,
				Line:     lineAt(src, loc[0]),
			})
		}
	}
	return findings
}

func lineAt(src []byte, offset int) int {
	return bytes.Count(src[:offset], []byte{'\n'}) + 1
}
