package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/perfscope/internal/analyzer"
	"github.com/blackwell-systems/perfscope/internal/config"
	"github.com/blackwell-systems/perfscope/internal/output"
	"github.com/blackwell-systems/perfscope/internal/profile"
	"github.com/blackwell-systems/perfscope/internal/recommend"
	"github.com/blackwell-systems/perfscope/internal/rewrite"
)

var (
	recommendFlagReport string
	recommendFlagCPU    string
	recommendFlagMemory string
	recommendFlagLine   string
	recommendFlagMax    int
	recommendFlagJSON   bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend [file.py]",
	Short: "Merge analysis and profiling data into prioritized advice",
	Long: `Recommend combines static analysis of a Python file with exported
profiling data (cProfile, memory sampling, line profiling, all as JSON) and
produces categorized recommendations: CPU, memory, algorithm, and code
structure. Profiling inputs are optional; whatever is given contributes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().StringVar(&recommendFlagReport, "report", "", "Path to a saved analysis report JSON instead of a source file")
	recommendCmd.Flags().StringVar(&recommendFlagCPU, "cpu", "", "Path to exported CPU profile JSON")
	recommendCmd.Flags().StringVar(&recommendFlagMemory, "memory", "", "Path to exported memory profile JSON")
	recommendCmd.Flags().StringVar(&recommendFlagLine, "line", "", "Path to exported line profile JSON")
	recommendCmd.Flags().IntVar(&recommendFlagMax, "max-per-category", 0, "Cap recommendations per category (0 = configured default)")
	recommendCmd.Flags().BoolVar(&recommendFlagJSON, "json", false, "Output as JSON")

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	setupOutput()

	var in recommend.Inputs

	switch {
	case len(args) == 1:
		src, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}
		a := analyzer.New()
		a.MaxDepth = cfg.Analysis.MaxDepth
		in.Report = a.AnalyzeFile(args[0])
		in.Suggestions = rewrite.Suggest(src)
	case recommendFlagReport != "":
		data, err := os.ReadFile(recommendFlagReport)
		if err != nil {
			return fmt.Errorf("reading report: %w", err)
		}
		var report analyzer.Report
		if err := json.Unmarshal(data, &report); err != nil {
			return fmt.Errorf("parsing report: %w", err)
		}
		in.Report = &report
	}

	if recommendFlagCPU != "" {
		if in.CPU, err = profile.LoadCPU(recommendFlagCPU); err != nil {
			return fmt.Errorf("loading CPU profile: %w", err)
		}
	}
	if recommendFlagMemory != "" {
		if in.Memory, err = profile.LoadMemory(recommendFlagMemory); err != nil {
			return fmt.Errorf("loading memory profile: %w", err)
		}
	}
	if recommendFlagLine != "" {
		if in.Line, err = profile.LoadLine(recommendFlagLine); err != nil {
			return fmt.Errorf("loading line profile: %w", err)
		}
	}

	agg := recommend.New()
	byCategory := agg.Aggregate(in)

	maxPer := cfg.Recommend.MaxPerCategory
	if recommendFlagMax > 0 {
		maxPer = recommendFlagMax
	}

	if recommendFlagJSON || flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"recommendations": byCategory,
			"prioritized":     agg.Prioritized(maxPer),
		})
	}

	renderRecommendations(agg, maxPer)
	return nil
}

func renderRecommendations(agg *recommend.Aggregator, maxPer int) {
	fmt.Println(output.Section("Recommendations"))
	fmt.Println()

	prioritized := agg.Prioritized(maxPer)
	if len(prioritized) == 0 {
		fmt.Println(output.StyleSuccess.Render(" Nothing to recommend."))
		fmt.Println()
		return
	}
	for _, rec := range prioritized {
		fmt.Printf(" %s\n", rec)
	}
	fmt.Println()
}
