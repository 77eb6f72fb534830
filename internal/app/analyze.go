package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/perfscope/internal/analyzer"
	"github.com/blackwell-systems/perfscope/internal/config"
	"github.com/blackwell-systems/perfscope/internal/output"
	"github.com/blackwell-systems/perfscope/internal/scanner"
	"github.com/blackwell-systems/perfscope/internal/store"
)

var (
	analyzeFlagJSON     bool
	analyzeFlagSave     bool
	analyzeFlagMaxDepth int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path ...]",
	Short: "Catalog constructs and detect performance anti-patterns",
	Long: `Analyze parses every Python file under the given paths (or the configured
scan paths), catalogs functions, loops, comprehensions, and containers, and
reports anti-patterns like mutable default arguments and len() calls inside
loops. Use --save to record the run for later comparison with 'history'.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeFlagJSON, "json", false, "Output as JSON")
	analyzeCmd.Flags().BoolVar(&analyzeFlagSave, "save", false, "Save this run to the database")
	analyzeCmd.Flags().IntVar(&analyzeFlagMaxDepth, "max-depth", 0, "Maximum syntax tree depth (0 = configured default)")

	rootCmd.AddCommand(analyzeCmd)
}

// fileReport pairs a discovered source file with its analysis result.
type fileReport struct {
	Path   string           `json:"path"`
	Report *analyzer.Report `json:"report"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	setupOutput()

	paths := cfg.ScanPaths
	if len(args) > 0 {
		paths = args
	}

	files, err := scanner.DiscoverSources(paths)
	if err != nil {
		return fmt.Errorf("discovering sources: %w", err)
	}
	if len(files) == 0 {
		fmt.Println(output.StyleMuted.Render(" No Python files found."))
		return nil
	}

	maxDepth := cfg.Analysis.MaxDepth
	if analyzeFlagMaxDepth > 0 {
		maxDepth = analyzeFlagMaxDepth
	}

	// Each file gets its own Analyzer; reports land in a mutex-guarded
	// slice and are sorted by path afterwards for stable output.
	var (
		mu      sync.Mutex
		reports []fileReport
	)
	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(runtime.NumCPU())
	for _, f := range files {
		g.Go(func() error {
			a := analyzer.New()
			a.MaxDepth = maxDepth
			r := a.AnalyzeFile(f.Path)
			mu.Lock()
			reports = append(reports, fileReport{Path: f.Path, Report: r})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].Path < reports[j].Path })

	if analyzeFlagSave {
		if err := saveReports(reports); err != nil {
			return fmt.Errorf("saving run: %w", err)
		}
	}

	if analyzeFlagJSON || flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}

	renderAnalyzeTable(reports)
	renderFindings(reports)
	return nil
}

func saveReports(reports []fileReport) error {
	db, err := store.Open(config.DBPath())
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	for _, fr := range reports {
		if _, err := db.SaveRun(fr.Path, appVersion, fr.Report, nil); err != nil {
			return err
		}
	}
	return nil
}

func renderAnalyzeTable(reports []fileReport) {
	fmt.Println(output.Section("Analysis"))
	fmt.Println()

	tbl := output.NewTable("File", "Functions", "Loops", "Issues")
	for _, fr := range reports {
		r := fr.Report
		tbl.AddRow(
			fr.Path,
			fmt.Sprintf("%d", r.ConstructCounts["functions"]),
			fmt.Sprintf("%d", r.ConstructCounts["loops"]),
			output.IssueSummary(
				r.IssueCounts[analyzer.SeverityError],
				r.IssueCounts[analyzer.SeverityWarning],
				r.IssueCounts[analyzer.SeverityInfo],
			),
		)
	}
	tbl.Print()
}

func renderFindings(reports []fileReport) {
	total := 0
	for _, fr := range reports {
		total += len(fr.Report.Findings)
	}
	if total == 0 {
		fmt.Println(output.StyleSuccess.Render("\n No issues found."))
		return
	}

	fmt.Println(output.Section("Findings"))
	fmt.Println()
	for _, fr := range reports {
		for _, f := range fr.Report.Findings {
			fmt.Printf(" %s %s:%d  %s\n",
				output.SeverityBadge(string(f.Severity)),
				fr.Path, f.Line, f.Message)
		}
		if flagVerbose {
			for _, name := range fr.Report.UnusedFunctions {
				fn := fr.Report.Functions[name]
				fmt.Printf(" %s %s:%d  function '%s' is defined but never called\n",
					output.SeverityBadge("info"), fr.Path, fn.Line, name)
			}
		}
	}
	fmt.Println()
}
