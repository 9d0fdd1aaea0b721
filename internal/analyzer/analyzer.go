// =============================================================================
// Payment Analytics - Pipeline Orchestrator
// =============================================================================
//
// This module sequences the whole pipeline for one run:
//
//   1. Load the three named tables from the input workbook
//   2. Validate each table against its role contract
//   3. Clean missing values in each table
//   4. Aggregate into the three summaries
//   5. Render the combined chart
//   6. Write the summary workbook
//   7. Write the run report
//
// Each stage completes fully before the next begins and any failure aborts
// the run: no partial results reach the sinks. The orchestrator owns no
// data-integrity logic of its own; it only wires the stages together and
// records what happened.
//
// =============================================================================

package analyzer

import (
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/ginjaninja78/payment-analytics/internal/analytics"
	"github.com/ginjaninja78/payment-analytics/internal/chart"
	"github.com/ginjaninja78/payment-analytics/internal/config"
	"github.com/ginjaninja78/payment-analytics/internal/table"
	"github.com/ginjaninja78/payment-analytics/internal/validation"
	"github.com/ginjaninja78/payment-analytics/internal/xlsxloader"
	"github.com/ginjaninja78/payment-analytics/internal/xlsxwriter"
	"github.com/ginjaninja78/payment-analytics/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result contains the outcome of one pipeline run.
type Result struct {
	// Success indicates whether the run completed.
	Success bool

	// Error is the failure cause when Success is false.
	Error error

	// Stage names the stage that failed ("load", "validate", "clean",
	// "aggregate", "chart", "workbook"), or the last completed stage on
	// success.
	Stage string

	// RunID is the unique identifier attached to this run's log lines and
	// report file.
	RunID string

	// Duration is the total wall-clock time of the run.
	Duration time.Duration

	// TransactionRows is the number of transaction rows processed.
	TransactionRows int

	// The three summaries, populated once aggregation succeeds.
	ByMonth       *analytics.Summary
	ByCountry     *analytics.Summary
	ByMethodGroup *analytics.Summary

	// Output paths, populated as each sink completes. Empty on dry runs.
	OutputWorkbook string
	OutputChart    string
	ReportPath     string
}

// =============================================================================
// ANALYZER
// =============================================================================

// Analyzer runs the analysis pipeline for one input workbook.
type Analyzer struct {
	cfg    *config.Config
	logger *log.Logger

	// DryRun stops the pipeline after aggregation: the data is loaded,
	// validated, cleaned and aggregated, but no sink is invoked.
	DryRun bool
}

// New creates an Analyzer for the given configuration. The logger is
// injected explicitly; the pipeline keeps no global logging state.
func New(cfg *config.Config, logger *log.Logger) *Analyzer {
	return &Analyzer{cfg: cfg, logger: logger}
}

// Run executes the pipeline and returns its Result. Run never panics and
// never returns a half-written Result: on failure the Result carries the
// failing stage and the error, and nothing was written after that stage.
func (a *Analyzer) Run() Result {
	startTime := time.Now()

	result := Result{
		RunID: uuid.New().String()[:8],
	}
	logger := a.logger.With("run_id", result.RunID)

	fail := func(stage string, err error) Result {
		result.Stage = stage
		result.Error = err
		result.Duration = time.Since(startTime)
		logger.Error("pipeline failed", "stage", stage, "error", err)
		return result
	}

	// =========================================================================
	// STEP 1: LOAD
	// =========================================================================

	logger.Info("loading workbook", "input", a.cfg.InputFile)

	transactions, countries, methods, err := xlsxloader.Load(a.cfg.InputFile)
	if err != nil {
		return fail("load", err)
	}
	result.TransactionRows = transactions.NumRows()

	logger.Info("workbook loaded",
		"transactions", transactions.NumRows(),
		"countries", countries.NumRows(),
		"methods", methods.NumRows())

	// =========================================================================
	// STEP 2: VALIDATE
	// =========================================================================

	contracts := []struct {
		table    *table.Table
		required []string
	}{
		{transactions, validation.TransactionColumns},
		{countries, validation.CountryColumns},
		{methods, validation.MethodColumns},
	}
	for _, c := range contracts {
		if err := validation.Validate(c.table, c.required, logger); err != nil {
			return fail("validate", err)
		}
	}

	// =========================================================================
	// STEP 3: CLEAN
	// =========================================================================

	validation.Clean(transactions, logger)
	validation.Clean(countries, logger)
	validation.Clean(methods, logger)

	// =========================================================================
	// STEP 4: AGGREGATE
	// =========================================================================

	byMonth, byCountry, byMethodGroup, err := analytics.Aggregate(transactions, countries, methods, logger)
	if err != nil {
		return fail("aggregate", err)
	}
	result.ByMonth = byMonth
	result.ByCountry = byCountry
	result.ByMethodGroup = byMethodGroup

	logger.Info("summaries computed",
		"months", len(byMonth.Rows),
		"countries", len(byCountry.Rows),
		"method_groups", len(byMethodGroup.Rows))

	if a.DryRun {
		logger.Info("dry run: skipping sinks")
		result.Success = true
		result.Stage = "aggregate"
		result.Duration = time.Since(startTime)
		return result
	}

	// =========================================================================
	// STEP 5: CHART SINK
	// =========================================================================

	if err := chart.Render(byMonth, byCountry, byMethodGroup, a.cfg.OutputChart, a.cfg.Chart); err != nil {
		return fail("chart", err)
	}
	result.OutputChart = a.cfg.OutputChart
	logger.Info("chart written", "path", a.cfg.OutputChart)

	// =========================================================================
	// STEP 6: WORKBOOK SINK
	// =========================================================================

	if err := xlsxwriter.Write(byMonth, byCountry, byMethodGroup, a.cfg.OutputWorkbook); err != nil {
		return fail("workbook", err)
	}
	result.OutputWorkbook = a.cfg.OutputWorkbook
	logger.Info("workbook written", "path", a.cfg.OutputWorkbook)

	// =========================================================================
	// STEP 7: RUN REPORT
	// =========================================================================
	// Both sinks succeeded, so a report failure only warns.

	report := utils.RunReport{
		RunID:              result.RunID,
		StartTime:          startTime,
		EndTime:            time.Now(),
		InputFile:          a.cfg.InputFile,
		TransactionRows:    transactions.NumRows(),
		CountryRows:        countries.NumRows(),
		MethodRows:         methods.NumRows(),
		MonthBuckets:       len(byMonth.Rows),
		CountryBuckets:     len(byCountry.Rows),
		MethodGroupBuckets: len(byMethodGroup.Rows),
		OutputWorkbook:     a.cfg.OutputWorkbook,
		OutputChart:        a.cfg.OutputChart,
	}
	reportPath, err := utils.WriteRunReport(report, filepath.Dir(a.cfg.OutputWorkbook))
	if err != nil {
		logger.Warn("failed to write run report", "error", err)
	} else {
		result.ReportPath = reportPath
	}

	result.Success = true
	result.Stage = "workbook"
	result.Duration = time.Since(startTime)
	return result
}
