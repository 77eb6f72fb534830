package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/perfscope/internal/analyzer"
	"github.com/blackwell-systems/perfscope/internal/config"
	"github.com/blackwell-systems/perfscope/internal/output"
	"github.com/blackwell-systems/perfscope/internal/rewrite"
	"github.com/blackwell-systems/perfscope/internal/scanner"
)

var (
	suggestFlagJSON bool
	suggestFlagAll  bool
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [path ...]",
	Short: "List rewrite opportunities without touching source",
	Long: `Suggest reports the rewrites that 'rewrite' would apply, without
modifying anything. With --all it also lists structural opportunities from
the analyzer, like unused functions and nested loops.`,
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().BoolVar(&suggestFlagJSON, "json", false, "Output as JSON")
	suggestCmd.Flags().BoolVar(&suggestFlagAll, "all", false, "Include structural opportunities from the analyzer")

	rootCmd.AddCommand(suggestCmd)
}

// fileSuggestions holds the advice collected for one file.
type fileSuggestions struct {
	Path          string                 `json:"path"`
	Suggestions   []rewrite.Suggestion   `json:"suggestions"`
	Opportunities []analyzer.Opportunity `json:"opportunities,omitempty"`
}

func runSuggest(cmd *cobra.Command, args []string) error {
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

	var results []fileSuggestions
	for _, f := range files {
		src, err := os.ReadFile(f.Path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", f.Path, err)
		}
		fs := fileSuggestions{Path: f.Path, Suggestions: rewrite.Suggest(src)}
		if suggestFlagAll {
			a := analyzer.New()
			a.MaxDepth = cfg.Analysis.MaxDepth
			fs.Opportunities = analyzer.Opportunities(a.AnalyzeSource(src, f.Module))
		}
		results = append(results, fs)
	}

	if suggestFlagJSON || flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	renderSuggestions(results)
	return nil
}

func renderSuggestions(results []fileSuggestions) {
	fmt.Println(output.Section("Rewrite Suggestions"))
	fmt.Println()

	total := 0
	for _, fs := range results {
		for _, s := range fs.Suggestions {
			fmt.Printf(" %s %s:%d  %s\n",
				output.StyleBold.Render(s.Type), fs.Path, s.Line, s.Message)
			total++
		}
		for _, op := range fs.Opportunities {
			fmt.Printf(" %s %s:%d  %s\n",
				output.SeverityBadge(string(op.Severity)), fs.Path, op.Line, op.Message)
			total++
		}
	}

	if total == 0 {
		fmt.Println(output.StyleSuccess.Render(" Nothing to suggest."))
	}
	fmt.Println()
}
