// =============================================================================
// Payment Analytics - File Management Utilities
// =============================================================================
//
// This module provides filesystem helpers shared by the sinks and the
// orchestrator: on-demand directory creation, existence checks, and the
// run-report writer that records what a pipeline run did and where its
// outputs went.
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// =============================================================================
// FILESYSTEM HELPERS
// =============================================================================

// EnsureParentDir creates the parent directory of the given file path if it
// does not exist yet.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// =============================================================================
// RUN REPORT
// =============================================================================

// RunReport contains summary information about one pipeline run.
type RunReport struct {
	RunID     string
	StartTime time.Time
	EndTime   time.Time

	InputFile       string
	TransactionRows int
	CountryRows     int
	MethodRows      int

	MonthBuckets       int
	CountryBuckets     int
	MethodGroupBuckets int

	OutputWorkbook string
	OutputChart    string
}

// WriteRunReport writes a run report next to the output workbook.
//
// PARAMETERS:
//   - report: The run report.
//   - outputDir: The directory to write the report file.
//
// RETURNS:
//   - The path to the report file.
//   - An error if writing fails.
func WriteRunReport(report RunReport, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", outputDir, err)
	}

	fileName := fmt.Sprintf("run_report_%s_%s.txt",
		report.StartTime.Format("20060102_150405"), report.RunID)
	reportPath := filepath.Join(outputDir, fileName)

	file, err := os.Create(reportPath)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	duration := report.EndTime.Sub(report.StartTime)
	fmt.Fprintf(writer, "Payment Analytics - Run Report\n"+
		"================================================================================\n\n"+
		"Run Information:\n"+
		"  Run ID:     %s\n"+
		"  Start Time: %s\n"+
		"  End Time:   %s\n"+
		"  Duration:   %s\n\n"+
		"Input:\n"+
		"  Workbook:          %s\n"+
		"  Transaction Rows:  %d\n"+
		"  Country Rows:      %d\n"+
		"  Method Rows:       %d\n\n"+
		"Summaries:\n"+
		"  Month Buckets:        %d\n"+
		"  Country Buckets:      %d\n"+
		"  Method Group Buckets: %d\n\n"+
		"Output:\n"+
		"  Workbook: %s\n"+
		"  Chart:    %s\n\n"+
		"================================================================================\n"+
		"End of Report\n",
		report.RunID,
		report.StartTime.Format("2006-01-02 15:04:05"),
		report.EndTime.Format("2006-01-02 15:04:05"),
		duration.String(),
		report.InputFile,
		report.TransactionRows,
		report.CountryRows,
		report.MethodRows,
		report.MonthBuckets,
		report.CountryBuckets,
		report.MethodGroupBuckets,
		report.OutputWorkbook,
		report.OutputChart)

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush report file: %w", err)
	}

	return reportPath, nil
}
