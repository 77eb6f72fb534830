package store

import (
	"time"

	"github.com/blackwell-systems/perfscope/internal/analyzer"
	"github.com/blackwell-systems/perfscope/internal/rewrite"
)

// SaveRun persists one analysis report (and optional rewrite ledger) as a
// run and returns the run ID. Findings, construct counts, issue counts, and
// ledger entries are written in a single transaction.
func (db *DB) SaveRun(target, version string, report *analyzer.Report, ledger rewrite.Ledger) (int64, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		"INSERT INTO runs (analyzed_at, target, module, version) VALUES (?, ?, ?, ?)",
		time.Now().UTC().Format(time.RFC3339), target, report.Module, version,
	)
	if err != nil {
		return 0, err
	}
	runID, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, f := range report.Findings {
		if _, err := tx.Exec(
			"INSERT INTO run_findings (run_id, kind, severity, message, line) VALUES (?, ?, ?, ?, ?)",
			runID, f.Kind, string(f.Severity), f.Message, f.Line,
		); err != nil {
			return 0, err
		}
	}

	for name, value := range report.ConstructCounts {
		if _, err := tx.Exec(
			"INSERT INTO run_metrics (run_id, name, value) VALUES (?, ?, ?)",
			runID, name, value,
		); err != nil {
			return 0, err
		}
	}
	for severity, value := range report.IssueCounts {
		if _, err := tx.Exec(
			"INSERT INTO run_metrics (run_id, name, value) VALUES (?, ?, ?)",
			runID, "issues_"+string(severity), value,
		); err != nil {
			return 0, err
		}
	}

	for rule, count := range ledger {
		if _, err := tx.Exec(
			"INSERT INTO run_rewrites (run_id, rule, count) VALUES (?, ?, ?)",
			runID, rule, count,
		); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return runID, nil
}

// ListRuns returns the most recent runs, newest first. When target is
// non-empty only runs for that target are returned.
func (db *DB) ListRuns(target string, limit int) ([]Run, error) {
	query := "SELECT id, analyzed_at, target, module, version FROM runs"
	args := []any{}
	if target != "" {
		query += " WHERE target = ?"
		args = append(args, target)
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var r Run
		var at string
		if err := rows.Scan(&r.ID, &at, &r.Target, &r.Module, &r.Version); err != nil {
			return nil, err
		}
		r.AnalyzedAt, _ = time.Parse(time.RFC3339, at)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunFindings returns the findings persisted for a run.
func (db *DB) RunFindings(runID int64) ([]FindingRow, error) {
	rows, err := db.conn.Query(
		"SELECT id, run_id, kind, severity, message, line FROM run_findings WHERE run_id = ? ORDER BY line",
		runID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var findings []FindingRow
	for rows.Next() {
		var f FindingRow
		if err := rows.Scan(&f.ID, &f.RunID, &f.Kind, &f.Severity, &f.Message, &f.Line); err != nil {
			return nil, err
		}
		findings = append(findings, f)
	}
	return findings, rows.Err()
}

// RunMetrics returns the metrics persisted for a run, keyed by name.
func (db *DB) RunMetrics(runID int64) (map[string]int, error) {
	rows, err := db.conn.Query(
		"SELECT name, value FROM run_metrics WHERE run_id = ?", runID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	metrics := make(map[string]int)
	for rows.Next() {
		var name string
		var value int
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		metrics[name] = value
	}
	return metrics, rows.Err()
}

// CompareRuns computes per-metric deltas between the two most recent runs
// of a target. Fewer issue counts is an improvement; construct counts are
// reported as unchanged/changed without judgement.
func (db *DB) CompareRuns(target string) ([]RunDelta, error) {
	runs, err := db.ListRuns(target, 2)
	if err != nil {
		return nil, err
	}
	if len(runs) < 2 {
		return nil, nil
	}
	current, err := db.RunMetrics(runs[0].ID)
	if err != nil {
		return nil, err
	}
	previous, err := db.RunMetrics(runs[1].ID)
	if err != nil {
		return nil, err
	}

	names := make(map[string]bool)
	for n := range current {
		names[n] = true
	}
	for n := range previous {
		names[n] = true
	}

	var deltas []RunDelta
	for name := range names {
		d := RunDelta{
			Name:     name,
			Previous: previous[name],
			Current:  current[name],
		}
		d.Delta = d.Current - d.Previous
		switch {
		case d.Delta == 0:
			d.Direction = "unchanged"
		case isIssueMetric(name) && d.Delta < 0:
			d.Direction = "improved"
		case isIssueMetric(name) && d.Delta > 0:
			d.Direction = "regressed"
		default:
			d.Direction = "changed"
		}
		deltas = append(deltas, d)
	}
	return deltas, nil
}

func isIssueMetric(name string) bool {
	return len(name) > 7 && name[:7] == "issues_"
}

// LatestRun returns the most recent run for a target, or nil.
func (db *DB) LatestRun(target string) (*Run, error) {
	runs, err := db.ListRuns(target, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}
