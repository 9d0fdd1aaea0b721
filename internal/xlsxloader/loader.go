// =============================================================================
// Payment Analytics - Workbook Loader
// =============================================================================
//
// This module reads the input workbook and binds its sheets to the three
// logical roles of the pipeline:
//
//   | Sheet name   | Role           | Content                                |
//   |--------------|----------------|----------------------------------------|
//   | data         | transactions   | pre-aggregated payment buckets         |
//   | country      | country lookup | currency -> country                    |
//   | method_group | method lookup  | method_in_dwh -> method_group          |
//
// The loader is only responsible for existence and structural presence of
// the three named sheets. The tables it returns are raw: validation and
// cleaning are applied by the orchestrator afterwards.
//
// =============================================================================

package xlsxloader

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/payment-analytics/internal/table"
)

// Sheet names the loader requires in the input workbook.
const (
	SheetTransactions  = "data"
	SheetCountryLookup = "country"
	SheetMethodLookup  = "method_group"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// NotFoundError indicates that the input workbook does not exist.
type NotFoundError struct {
	Path string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("input file %q not found", e.Path)
}

// MissingSheetsError indicates that the workbook exists but does not expose
// every required named sheet. Sheets lists every absent name.
type MissingSheetsError struct {
	Path   string
	Sheets []string
}

// Error implements the error interface.
func (e *MissingSheetsError) Error() string {
	return fmt.Sprintf("workbook %q is missing required sheets: %s",
		e.Path, strings.Join(e.Sheets, ", "))
}

// =============================================================================
// LOADING
// =============================================================================

// Load opens the workbook at path and returns the three raw tables bound to
// their logical roles.
//
// RETURNS:
//   - transactions, country lookup and method lookup tables, in that order.
//   - *NotFoundError if the file does not exist.
//   - *MissingSheetsError if any required sheet is absent.
func Load(path string) (transactions, countries, methods *table.Table, err error) {
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		return nil, nil, nil, &NotFoundError{Path: path}
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	// Check that every required sheet is present before reading any of them,
	// so the error names the complete set of missing sheets at once.
	present := make(map[string]bool)
	for _, name := range f.GetSheetList() {
		present[name] = true
	}

	var missing []string
	for _, name := range []string{SheetTransactions, SheetCountryLookup, SheetMethodLookup} {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, nil, nil, &MissingSheetsError{Path: path, Sheets: missing}
	}

	if transactions, err = readSheet(f, SheetTransactions); err != nil {
		return nil, nil, nil, err
	}
	if countries, err = readSheet(f, SheetCountryLookup); err != nil {
		return nil, nil, nil, err
	}
	if methods, err = readSheet(f, SheetMethodLookup); err != nil {
		return nil, nil, nil, err
	}

	return transactions, countries, methods, nil
}

// readSheet reads one sheet into a Table. The first row is the header; the
// remaining rows are data. A sheet with no rows at all yields a table with
// zero columns and zero rows, which the validator rejects as empty.
func readSheet(f *excelize.File, sheetName string) (*table.Table, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}

	if len(rows) == 0 {
		return table.New(sheetName, nil, nil), nil
	}

	header := rows[0]
	var data [][]string
	for _, row := range rows[1:] {
		if isRowEmpty(row) {
			continue
		}
		data = append(data, row)
	}

	return table.New(sheetName, header, data), nil
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
