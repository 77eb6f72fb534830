// Package profile defines the summary shapes produced by external
// instrumentation profilers. perfscope only consumes these summaries (for
// recommendation generation); it never measures anything itself.
package profile

// CPUProfile summarizes a wall-clock/CPU profiling run.
type CPUProfile struct {
	TotalTime float64       `json:"total_time"`
	Functions []CPUFunction `json:"functions"`
}

// CPUFunction is one function's share of a CPU profile. Calls keeps the
// profiler's raw call-count string because recursive functions are reported
// as "total/primitive" (e.g. "5/1").
type CPUFunction struct {
	Name    string  `json:"name"`
	Calls   string  `json:"calls"`
	Total   float64 `json:"total_time"`
	CumTime float64 `json:"cumulative_time"`
}

// MemoryProfile summarizes a sampled memory footprint series. Timestamps
// and MemoryMB are parallel slices.
type MemoryProfile struct {
	Timestamps     []float64 `json:"timestamps"`
	MemoryMB       []float64 `json:"memory_mb"`
	BaselineMemory float64   `json:"baseline_memory"`
	PeakMemory     float64   `json:"peak_memory"`
	FinalMemory    float64   `json:"final_memory"`
	MemoryIncrease float64   `json:"memory_increase"`
}

// LineProfile summarizes per-line timing for a set of functions.
type LineProfile struct {
	Functions []LineFunction `json:"functions"`
}

// LineFunction is per-line timing for one function, keyed by line number.
type LineFunction struct {
	Name  string           `json:"name"`
	Total float64          `json:"total_time"`
	Lines map[int]LineStat `json:"lines"`
}

// LineStat is the cost of a single source line.
type LineStat struct {
	Hits       int     `json:"hits"`
	Time       float64 `json:"time"`
	Percentage float64 `json:"percentage"`
	Content    string  `json:"content"`
}
