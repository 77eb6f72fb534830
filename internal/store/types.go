// Package store provides SQLite persistence for perfscope analysis runs.
package store

import "time"

// Run is a point-in-time record of one analysis of a target.
type Run struct {
	ID         int64     `json:"id"`
	AnalyzedAt time.Time `json:"analyzed_at"`
	Target     string    `json:"target"`
	Module     string    `json:"module"`
	Version    string    `json:"version"`
}

// FindingRow is a persisted finding belonging to a run.
type FindingRow struct {
	ID       int64  `json:"id"`
	RunID    int64  `json:"run_id"`
	Kind     string `json:"kind"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Line     int    `json:"line"`
}

// MetricRow is a named count captured for a run. Construct counts and
// per-severity issue counts share this shape.
type MetricRow struct {
	ID    int64  `json:"id"`
	RunID int64  `json:"run_id"`
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// RewriteRow is a persisted rewrite-ledger entry for a run.
type RewriteRow struct {
	ID    int64  `json:"id"`
	RunID int64  `json:"run_id"`
	Rule  string `json:"rule"`
	Count int    `json:"count"`
}

// RunDelta is the change in one metric between two runs of the same target.
type RunDelta struct {
	Name      string `json:"name"`
	Previous  int    `json:"previous"`
	Current   int    `json:"current"`
	Delta     int    `json:"delta"`
	Direction string `json:"direction"` // "improved", "regressed", "unchanged"
}
