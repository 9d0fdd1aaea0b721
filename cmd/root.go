// =============================================================================
// Payment Analytics - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI and the shared logger
// construction. The root command carries the global flags; the pipeline
// itself lives behind the 'analyze' subcommand.
//
// COBRA CLI STRUCTURE:
//   rootCmd (payalytics)
//   ├── analyzeCmd (payalytics analyze)
//   └── versionCmd (payalytics version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// cfgFile holds the path to the configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "payalytics",
	Short: "Payment Analytics - Summarize payment transactions from a workbook",
	Long: `Payment Analytics reads a workbook of pre-aggregated payment transaction
buckets plus two reference sheets (currency-to-country, method-to-group),
validates and cleans them, and produces three summaries - by month, by
country and by payment-method group - each carrying an approval-rate metric.

The summaries are written to a multi-sheet workbook and rendered as a
combined chart image.

Example Usage:
  payalytics analyze                          # Use paths from config.yaml
  payalytics analyze --input ./q3.xlsx        # Override the input workbook
  payalytics analyze --dry-run                # Aggregate without writing sinks`,

	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print the help message.
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// init sets up the global flags.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// newLogger builds the logger injected through the pipeline. There is no
// package-level logger: every stage receives this one explicitly.
func newLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "payalytics",
	})

	if verbose {
		logger.SetLevel(log.DebugLevel)
		return logger
	}

	parsed, err := log.ParseLevel(level)
	if err != nil {
		parsed = log.InfoLevel
	}
	logger.SetLevel(parsed)
	return logger
}
