package app

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/perfscope/internal/config"
	"github.com/blackwell-systems/perfscope/internal/output"
	"github.com/blackwell-systems/perfscope/internal/store"
)

var (
	historyFlagTarget  string
	historyFlagLimit   int
	historyFlagCompare bool
	historyFlagJSON    bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show saved analysis runs and deltas between them",
	Long: `History lists runs saved with 'analyze --save' or 'rewrite --save'.
With --compare it diffs the two most recent runs for a target, showing
whether issue counts improved or regressed.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historyFlagTarget, "target", "", "Only show runs for this target path")
	historyCmd.Flags().IntVar(&historyFlagLimit, "limit", 10, "Maximum number of runs to show")
	historyCmd.Flags().BoolVar(&historyFlagCompare, "compare", false, "Diff the two most recent runs for --target")
	historyCmd.Flags().BoolVar(&historyFlagJSON, "json", false, "Output as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if _, err := config.Load(flagConfig); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	setupOutput()

	db, err := store.Open(config.DBPath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if historyFlagCompare {
		if historyFlagTarget == "" {
			return fmt.Errorf("--compare requires --target")
		}
		return runHistoryCompare(db)
	}

	runs, err := db.ListRuns(historyFlagTarget, historyFlagLimit)
	if err != nil {
		return fmt.Errorf("listing runs: %w", err)
	}

	if historyFlagJSON || flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	renderRuns(db, runs)
	return nil
}

func runHistoryCompare(db *store.DB) error {
	deltas, err := db.CompareRuns(historyFlagTarget)
	if err != nil {
		return fmt.Errorf("comparing runs: %w", err)
	}

	if historyFlagJSON || flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(deltas)
	}

	fmt.Println(output.Section("Run Comparison"))
	fmt.Println()

	if len(deltas) == 0 {
		fmt.Println(output.StyleMuted.Render(" Need at least two saved runs to compare."))
		fmt.Println()
		return nil
	}

	tbl := output.NewTable("Metric", "Previous", "Current", "Trend")
	for _, d := range deltas {
		// Issue metrics get a trend arrow; structural counts just change.
		trend := output.StyleMuted.Render(d.Direction)
		if d.Direction == "improved" || d.Direction == "regressed" {
			trend = output.DeltaArrow(d.Delta, true)
		}
		tbl.AddRow(d.Name, fmt.Sprintf("%d", d.Previous), fmt.Sprintf("%d", d.Current), trend)
	}
	tbl.Print()
	fmt.Println()
	return nil
}

func renderRuns(db *store.DB, runs []store.Run) {
	fmt.Println(output.Section("Saved Runs"))
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println(output.StyleMuted.Render(" No saved runs. Use 'perfscope analyze --save' to record one."))
		fmt.Println()
		return
	}

	tbl := output.NewTable("Run", "When", "Target", "Issues")
	for _, r := range runs {
		issues := ""
		metrics, err := db.RunMetrics(r.ID)
		if err == nil {
			names := make([]string, 0, len(metrics))
			for name := range metrics {
				if isIssueMetricName(name) {
					names = append(names, name)
				}
			}
			sort.Strings(names)
			total := 0
			for _, name := range names {
				total += metrics[name]
			}
			issues = fmt.Sprintf("%d", total)
		}
		tbl.AddRow(
			fmt.Sprintf("#%d", r.ID),
			r.AnalyzedAt.Format("2006-01-02 15:04"),
			r.Target,
			issues,
		)
	}
	tbl.Print()
	fmt.Println()
}

func isIssueMetricName(name string) bool {
	return strings.HasPrefix(name, "issues_")
}
