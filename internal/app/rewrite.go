package app

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/perfscope/internal/analyzer"
	"github.com/blackwell-systems/perfscope/internal/config"
	"github.com/blackwell-systems/perfscope/internal/output"
	"github.com/blackwell-systems/perfscope/internal/rewrite"
	"github.com/blackwell-systems/perfscope/internal/scanner"
	"github.com/blackwell-systems/perfscope/internal/store"
)

var (
	rewriteFlagAggressive bool
	rewriteFlagWrite      bool
	rewriteFlagJSON       bool
	rewriteFlagSave       bool
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite [path ...]",
	Short: "Apply safe source rewrites and report a change ledger",
	Long: `Rewrite applies mechanical performance rewrites, like converting
'for i in range(len(xs))' loops to enumerate. Rewritten source goes to stdout
by default; --write modifies files in place. Files are left untouched when a
rewrite would produce source that no longer parses.

Aggressive rules, like dropping a redundant list() around range(), change
the static type of the expression and only run with --aggressive.`,
	RunE: runRewrite,
}

func init() {
	rewriteCmd.Flags().BoolVar(&rewriteFlagAggressive, "aggressive", false, "Enable rewrites that change expression types")
	rewriteCmd.Flags().BoolVar(&rewriteFlagWrite, "write", false, "Rewrite files in place instead of printing")
	rewriteCmd.Flags().BoolVar(&rewriteFlagJSON, "json", false, "Output the ledger as JSON")
	rewriteCmd.Flags().BoolVar(&rewriteFlagSave, "save", false, "Analyze the rewritten source and save the run with its ledger")

	rootCmd.AddCommand(rewriteCmd)
}

// fileRewrite records the outcome of rewriting one file.
type fileRewrite struct {
	Path     string         `json:"path"`
	Changed  bool           `json:"changed"`
	Ledger   rewrite.Ledger `json:"ledger"`
	Warnings int            `json:"warnings"`
}

func runRewrite(cmd *cobra.Command, args []string) error {
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

	aggressive := cfg.Rewrite.Aggressive || rewriteFlagAggressive
	engine := rewrite.NewEngine(aggressive)

	var outcomes []fileRewrite
	for _, f := range files {
		src, err := os.ReadFile(f.Path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", f.Path, err)
		}

		res := engine.Rewrite(src)
		outcomes = append(outcomes, fileRewrite{
			Path:     f.Path,
			Changed:  res.Changed,
			Ledger:   res.Ledger,
			Warnings: len(res.Warnings),
		})

		for _, w := range res.Warnings {
			fmt.Fprintf(os.Stderr, "warning: %s:%d: %s\n", f.Path, w.Line, w.Message)
		}

		if rewriteFlagSave {
			if err := saveRewriteRun(f.Path, f.Module, res); err != nil {
				return fmt.Errorf("saving run for %s: %w", f.Path, err)
			}
		}

		if !res.Changed {
			continue
		}
		if rewriteFlagWrite {
			if err := os.WriteFile(f.Path, res.Source, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", f.Path, err)
			}
		} else {
			fmt.Printf("--- %s\n", f.Path)
			os.Stdout.Write(res.Source)
		}
	}

	if rewriteFlagJSON || flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(outcomes)
	}

	renderLedger(outcomes)
	return nil
}

// saveRewriteRun analyzes the rewritten source and records the run
// together with the rewrite ledger.
func saveRewriteRun(path, module string, res *rewrite.Result) error {
	db, err := store.Open(config.DBPath())
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	a := analyzer.New()
	report := a.AnalyzeSource(res.Source, module)
	_, err = db.SaveRun(path, appVersion, report, res.Ledger)
	return err
}

func renderLedger(outcomes []fileRewrite) {
	fmt.Println(output.Section("Rewrite Ledger"))
	fmt.Println()

	tbl := output.NewTable("File", "Rule", "Count")
	total := 0
	for _, o := range outcomes {
		rules := make([]string, 0, len(o.Ledger))
		for rule := range o.Ledger {
			rules = append(rules, rule)
		}
		sort.Strings(rules)
		for _, rule := range rules {
			tbl.AddRow(o.Path, rule, fmt.Sprintf("%d", o.Ledger[rule]))
			total += o.Ledger[rule]
		}
	}

	if total == 0 {
		fmt.Println(output.StyleMuted.Render(" No rewrites applied."))
		fmt.Println()
		return
	}
	tbl.Print()
	fmt.Printf("\n %s %s\n\n",
		output.StyleLabel.Render("Total rewrites:"),
		output.StyleValue.Render(fmt.Sprintf("%d", total)))
}
