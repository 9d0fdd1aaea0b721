// =============================================================================
// Payment Analytics - Analyze Command
// =============================================================================
//
// This file defines the 'analyze' command, which runs the whole pipeline:
// load -> validate -> clean -> aggregate -> chart sink -> workbook sink.
//
// COMMAND USAGE:
//   payalytics analyze [flags]
//
// FLAGS:
//   --input            : Input workbook (overrides config)
//   --output-workbook  : Summary workbook destination (overrides config)
//   --output-chart     : Chart image destination (overrides config)
//   --dry-run          : Aggregate without writing any output file
//
// Any failure aborts the run: the process exits non-zero with a logged
// fatal message and no partial output.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/payment-analytics/internal/analyzer"
	"github.com/ginjaninja78/payment-analytics/internal/config"
)

// inputFile overrides the configured input workbook path.
var inputFile string

// outputWorkbook overrides the configured summary workbook path.
var outputWorkbook string

// outputChart overrides the configured chart image path.
var outputChart string

// dryRun stops the pipeline after aggregation, writing nothing.
var dryRun bool

// analyzeCmd represents the 'analyze' command.
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the analysis pipeline on the input workbook",
	Long: `The analyze command loads the data, country and method_group sheets from
the input workbook, validates and cleans them, aggregates the three
summaries and writes the summary workbook, the combined chart image and a
run report.

Paths default to the configuration file and can be overridden per flag.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyze()
	},

	SilenceUsage: true,
}

// init registers the analyze command and its flags.
func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(
		&inputFile,
		"input",
		"",
		"Path to the input workbook (default from config)",
	)

	analyzeCmd.Flags().StringVar(
		&outputWorkbook,
		"output-workbook",
		"",
		"Path for the summary workbook (default from config)",
	)

	analyzeCmd.Flags().StringVar(
		&outputChart,
		"output-chart",
		"",
		"Path for the combined chart image (default from config)",
	)

	analyzeCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Aggregate without writing any output file",
	)
}

// runAnalyze wires configuration, logger and pipeline together.
func runAnalyze() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Flags override the configured defaults.
	if inputFile != "" {
		cfg.InputFile = inputFile
	}
	if outputWorkbook != "" {
		cfg.OutputWorkbook = outputWorkbook
	}
	if outputChart != "" {
		cfg.OutputChart = outputChart
	}

	logger := newLogger(cfg.LogLevel)
	logger.Info("starting analysis", "input", cfg.InputFile)

	a := analyzer.New(cfg, logger)
	a.DryRun = dryRun

	result := a.Run()
	if !result.Success {
		return fmt.Errorf("analysis failed at %s stage: %w", result.Stage, result.Error)
	}

	logger.Info("analysis complete",
		"duration", result.Duration,
		"transactions", result.TransactionRows,
		"workbook", result.OutputWorkbook,
		"chart", result.OutputChart)
	return nil
}
