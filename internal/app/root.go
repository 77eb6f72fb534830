// Package app contains the Cobra command tree for perfscope.
package app

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/perfscope/internal/output"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagVerbose bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "perfscope",
	Short: "Performance analysis and rewrite advice for Python source",
	Long: `perfscope inspects Python source trees for performance anti-patterns,
suggests and applies safe rewrites, merges profiling output into prioritized
recommendations, and tracks issue counts across runs.

Run a subcommand to get started.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("perfscope", appVersion)
		fmt.Println()
		fmt.Println("Use a subcommand:")
		fmt.Println("  analyze    Catalog constructs and detect performance anti-patterns")
		fmt.Println("  suggest    List rewrite opportunities without touching source")
		fmt.Println("  rewrite    Apply safe source rewrites and report a change ledger")
		fmt.Println("  recommend  Merge analysis and profiling data into prioritized advice")
		fmt.Println("  history    Show saved analysis runs and deltas between them")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// setupOutput applies the color preference, disabling styles when the
// flag asks for it or stdout is not a terminal.
func setupOutput() {
	if flagNoColor || !isatty.IsTerminal(os.Stdout.Fd()) {
		output.SetNoColor(true)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/perfscope/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
}
