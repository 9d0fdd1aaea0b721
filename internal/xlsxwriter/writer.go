// =============================================================================
// Payment Analytics - Workbook Sink
// =============================================================================
//
// This module writes the three summary tables to a multi-sheet workbook:
// one named sheet per summary, preserving the column names and the row
// order produced by the aggregation engine.
//
//   | Sheet     | Summary          |
//   |-----------|------------------|
//   | Monthly   | by month         |
//   | Countries | by country       |
//   | Methods   | by method group  |
//
// =============================================================================

package xlsxwriter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/payment-analytics/internal/analytics"
	"github.com/ginjaninja78/payment-analytics/pkg/utils"
)

// Output sheet names, matching the original report layout.
const (
	SheetMonthly   = "Monthly"
	SheetCountries = "Countries"
	SheetMethods   = "Methods"
)

// Write saves the three summaries to a workbook at path, creating the
// parent directory if needed.
func Write(byMonth, byCountry, byMethodGroup *analytics.Summary, path string) error {
	if err := utils.EnsureParentDir(path); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheets := []struct {
		name    string
		summary *analytics.Summary
	}{
		{SheetMonthly, byMonth},
		{SheetCountries, byCountry},
		{SheetMethods, byMethodGroup},
	}

	for _, s := range sheets {
		if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", s.name, err)
		}
		if err := writeSummary(f, s.name, s.summary); err != nil {
			return err
		}
	}

	// Drop the default sheet excelize creates with every new workbook.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// writeSummary fills one sheet: a header row naming the columns, then one
// row per bucket in engine order.
func writeSummary(f *excelize.File, sheet string, s *analytics.Summary) error {
	header := []interface{}{
		s.Dimension,
		"total_transactions",
		"approved_transactions",
		"volume_usd",
		"approval_rate",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header on %q: %w", sheet, err)
	}

	for i, row := range s.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d on %q: %w", i+2, sheet, err)
		}
		values := []interface{}{
			row.Key,
			row.TotalTransactions,
			row.ApprovedTransactions,
			row.VolumeUSD.InexactFloat64(),
			row.ApprovalRate,
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d on %q: %w", i+2, sheet, err)
		}
	}

	return nil
}
