package recommend

import (
	"fmt"

	"github.com/blackwell-systems/perfscope/internal/profile"
)

// Memory thresholds, in MB and MB/s. Inherited from field experience with
// the instrumentation profilers these summaries come from.
const (
	leakIncreaseMB   = 5.0
	highPeakMB       = 500.0
	highGrowthMBPerS = 50.0
	doubledMinimumMB = 10.0
)

// FromMemoryProfile generates memory recommendations from a footprint
// summary.
func (a *Aggregator) FromMemoryProfile(p *profile.MemoryProfile) []string {
	var recs []string

	if p == nil || (len(p.MemoryMB) == 0 && p.PeakMemory == 0) {
		recs = append(recs, "No memory profiling data available. Run a memory profile to get recommendations.")
		a.recs[CategoryMemory] = recs
		return recs
	}

	if p.MemoryIncrease > leakIncreaseMB {
		recs = append(recs, fmt.Sprintf(
			"Potential memory leak: memory increased by %.2f MB over the run. Check for objects that are never released.", p.MemoryIncrease))
	}

	if p.PeakMemory > highPeakMB {
		recs = append(recs, fmt.Sprintf(
			"High peak memory usage: %.2f MB. Consider batch processing or a streaming approach for large datasets.", p.PeakMemory))
	}

	if len(p.Timestamps) > 1 && len(p.MemoryMB) > 1 {
		timeDiff := p.Timestamps[len(p.Timestamps)-1] - p.Timestamps[0]
		memDiff := p.MemoryMB[len(p.MemoryMB)-1] - p.MemoryMB[0]
		if timeDiff > 0 {
			if rate := memDiff / timeDiff; rate > highGrowthMBPerS {
				recs = append(recs, fmt.Sprintf(
					"High memory growth rate: %.2f MB/s. Check for unnecessary object creation in loops.", rate))
			}
		}
	}

	recs = append(recs, "For large data processing, consider generators, iterators, or lazy evaluation.")

	if p.FinalMemory > p.BaselineMemory*2 && p.FinalMemory-p.BaselineMemory > doubledMinimumMB {
		recs = append(recs, fmt.Sprintf(
			"Memory usage more than doubled, from %.2f MB to %.2f MB. Make sure resources are released when done.", p.BaselineMemory, p.FinalMemory))
	}

	a.recs[CategoryMemory] = recs
	return recs
}
