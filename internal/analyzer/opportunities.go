package analyzer

import "fmt"

// Opportunities derives a flat optimization-opportunity list from an
// existing report. It is a view over already-computed facts: nested loops,
// eagerly built container literals, unused functions, and every finding
// re-expressed in the uniform shape. No new detection happens here.
func Opportunities(report *Report) []Opportunity {
	if report == nil {
		return nil
	}
	var opps []Opportunity

	for _, loop := range report.Loops {
		if !loop.Nested {
			continue
		}
		opps = append(opps, Opportunity{
			Type:     "loop",
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("Nested loop at line %d. Consider restructuring or a different algorithm.", loop.Line),
			Line:     loop.Line,
		})
	}

	for _, c := range report.Containers {
		if c.Kind != "list" || c.FromComprehension {
			// Comprehension-built lists are generally fine.
			continue
		}
		opps = append(opps, Opportunity{
			Type:     "container",
			Severity: SeverityInfo,
			Message:  fmt.Sprintf("List literal at line %d. Check whether a different container would serve better.", c.Line),
			Line:     c.Line,
		})
	}

	for _, name := range report.UnusedFunctions {
		line := report.Functions[name].Line
		opps = append(opps, Opportunity{
			Type:     "function",
			Severity: SeverityInfo,
			Message:  fmt.Sprintf("Function %q at line %d is defined but never called.", name, line),
			Line:     line,
		})
	}

	for _, f := range report.Findings {
		opps = append(opps, Opportunity{
			Type:     "issue",
			Severity: f.Severity,
			Message:  f.Message,
			Line:     f.Line,
		})
	}

	return opps
}
