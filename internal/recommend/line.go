package recommend

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/blackwell-systems/perfscope/internal/profile"
)

// hotspotPercentage is the share of a function's time a line must consume
// to count as a hotspot; hotspotsPerFunction bounds how many are reported.
const (
	hotspotPercentage   = 5.0
	hotspotsPerFunction = 3
)

// Content heuristics for common line shapes.
var (
	loopLineRe       = regexp.MustCompile(`for\s+.*\s+in\s+`)
	membershipLineRe = regexp.MustCompile(`if\s+.*\s+in\s+`)
	concatLineRe     = regexp.MustCompile(`['"]\s*\+`)
	listModLineRe    = regexp.MustCompile(`\.\s*(?:append|extend|insert)`)
	builtinLineRe    = regexp.MustCompile(`(?:sum|min|max|sorted|list|set|dict)\s*\(`)
)

type lineHotspot struct {
	line    int
	pct     float64
	content string
}

// FromLineProfile generates line-level recommendations from a per-line
// timing summary.
func (a *Aggregator) FromLineProfile(p *profile.LineProfile) []string {
	var recs []string

	if p == nil || len(p.Functions) == 0 {
		recs = append(recs, "No line profiling data available. Run a line profile to get recommendations.")
		a.recs[CategoryAlgorithm] = recs
		return recs
	}

	for _, fn := range p.Functions {
		var hotspots []lineHotspot
		for lineNo, stat := range fn.Lines {
			if stat.Percentage > hotspotPercentage {
				hotspots = append(hotspots, lineHotspot{line: lineNo, pct: stat.Percentage, content: stat.Content})
			}
		}
		sort.Slice(hotspots, func(i, j int) bool {
			if hotspots[i].pct != hotspots[j].pct {
				return hotspots[i].pct > hotspots[j].pct
			}
			return hotspots[i].line < hotspots[j].line
		})
		if len(hotspots) > hotspotsPerFunction {
			hotspots = hotspots[:hotspotsPerFunction]
		}

		for _, h := range hotspots {
			content := strings.TrimSpace(h.content)
			recs = append(recs, fmt.Sprintf(
				"Hotspot at line %d in %s (%.1f%% of time): %q", h.line, fn.Name, h.pct, content))

			switch {
			case loopLineRe.MatchString(content):
				recs = append(recs, fmt.Sprintf(
					"Consider optimizing the loop at line %d with a comprehension or vectorization.", h.line))
			case membershipLineRe.MatchString(content):
				recs = append(recs, fmt.Sprintf(
					"Membership test at line %d: use a set instead of a list for faster lookups.", h.line))
			case concatLineRe.MatchString(content):
				recs = append(recs, fmt.Sprintf(
					"String concatenation at line %d: use join() or formatted strings.", h.line))
			case listModLineRe.MatchString(content):
				recs = append(recs, fmt.Sprintf(
					"List modification at line %d: preallocate when the size is known.", h.line))
			case builtinLineRe.MatchString(content):
				recs = append(recs, fmt.Sprintf(
					"Builtin call at line %d is expensive here; hoist it out of hot paths where possible.", h.line))
			}
		}
	}

	if len(recs) == 0 {
		recs = append(recs, "No clear line-level hotspots identified. The code may benefit from algorithm-level changes instead.")
	}

	a.recs[CategoryAlgorithm] = append(a.recs[CategoryAlgorithm], recs...)
	return recs
}
