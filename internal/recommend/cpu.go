package recommend

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/perfscope/internal/profile"
)

// totalTimeThreshold is the execution time, in seconds, past which overall
// runtime itself becomes a recommendation.
const totalTimeThreshold = 1.0

// cpuHotspotCount bounds how many top functions get name-based heuristics.
const cpuHotspotCount = 5

// FromCPUProfile generates CPU recommendations from a profiling summary.
// Functions are expected in descending cost order, as profilers report them.
func (a *Aggregator) FromCPUProfile(p *profile.CPUProfile) []string {
	var recs []string

	if p == nil || len(p.Functions) == 0 {
		recs = append(recs, "No CPU profiling data available. Run a CPU profile to get recommendations.")
		a.recs[CategoryCPU] = recs
		return recs
	}

	hotspots := p.Functions
	if len(hotspots) > cpuHotspotCount {
		hotspots = hotspots[:cpuHotspotCount]
	}

	recs = append(recs, fmt.Sprintf(
		"Focus optimization effort on the top time-consuming function: %s", hotspots[0].Name))

	// "total/primitive" call counts mark recursion.
	for _, fn := range p.Functions {
		if strings.Contains(fn.Calls, "/") {
			recs = append(recs, fmt.Sprintf(
				"Function %s is recursive. Consider an iterative approach or memoization if it recomputes the same values.", fn.Name))
		}
	}

	if p.TotalTime > totalTimeThreshold {
		recs = append(recs, fmt.Sprintf(
			"Total execution time (%.2fs) is high. Consider parallelizing or optimizing the most expensive operations.", p.TotalTime))
	}

	for _, fn := range hotspots {
		lower := strings.ToLower(fn.Name)
		switch {
		case containsAny(lower, "sort", "order"):
			recs = append(recs, fmt.Sprintf(
				"Function %s appears to sort. Check the algorithm and consider a key function for sorted().", fn.Name))
		case containsAny(lower, "read", "write", "load", "save", "file", "open"):
			recs = append(recs, fmt.Sprintf(
				"Function %s appears to do I/O. Consider buffering, asynchronous I/O, or batching.", fn.Name))
		case containsAny(lower, "str", "join", "split", "format"):
			recs = append(recs, fmt.Sprintf(
				"Function %s appears to process strings. Use join() for concatenation and prefer formatted strings.", fn.Name))
		}
	}

	a.recs[CategoryCPU] = recs
	return recs
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
