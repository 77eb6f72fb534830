package output

import (
	"fmt"
	"strings"
)

// SeverityBadge returns a styled, upper-cased severity label.
func SeverityBadge(severity string) string {
	label := strings.ToUpper(severity)
	switch severity {
	case "error":
		return StyleError.Render(label)
	case "warning":
		return StyleWarning.Render(label)
	default:
		return StyleMuted.Render(label)
	}
}

// DeltaArrow returns a styled trend indicator for a metric delta between
// two analysis runs. Positive delta shows an up arrow, negative shows
// down, zero shows a dash. The lowerIsBetter parameter indicates whether
// a decrease counts as an improvement (true for issue counts).
func DeltaArrow(delta int, lowerIsBetter bool) string {
	if delta == 0 {
		return StyleMuted.Render("─")
	}

	isPositive := delta > 0
	isImproved := (isPositive && !lowerIsBetter) || (!isPositive && lowerIsBetter)

	var arrow string
	if isPositive {
		arrow = fmt.Sprintf("▲ +%d", delta)
	} else {
		arrow = fmt.Sprintf("▼ %d", delta)
	}

	if isImproved {
		return StyleSuccess.Render(arrow)
	}
	return StyleError.Render(arrow)
}

// IssueSummary renders a one-line count summary like "2 errors, 3 warnings, 1 info".
func IssueSummary(errors, warnings, infos int) string {
	parts := []string{
		fmt.Sprintf("%d %s", errors, plural(errors, "error", "errors")),
		fmt.Sprintf("%d %s", warnings, plural(warnings, "warning", "warnings")),
		fmt.Sprintf("%d info", infos),
	}
	s := strings.Join(parts, ", ")
	if errors > 0 {
		return StyleError.Render(s)
	}
	if warnings > 0 {
		return StyleWarning.Render(s)
	}
	return StyleSuccess.Render(s)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// Section prints a styled section header with a horizontal rule.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", 66))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}
