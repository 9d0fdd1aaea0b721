// =============================================================================
// Payment Analytics - Data Cleaning
// =============================================================================
//
// This module repairs missing values in a validated table. Cleaning is a
// total operation: it never fails, never removes rows, and only substitutes
// values. After one pass no missing cells remain, so cleaning is idempotent.
//
// REPAIR POLICY (per column):
//   - numeric columns            : missing -> "0"
//   - the method_in_dwh column   : missing -> "unknown_method"
//   - any other string column    : missing -> "Unknown"
//
// =============================================================================

package validation

import (
	"github.com/charmbracelet/log"

	"github.com/ginjaninja78/payment-analytics/internal/table"
)

// Sentinels substituted for missing cells.
const (
	// UnknownValue fills missing cells in generic string columns.
	UnknownValue = "Unknown"

	// UnknownMethod fills missing cells in the method_in_dwh column,
	// overriding the generic string sentinel for that one column.
	UnknownMethod = "unknown_method"

	// methodKeyColumn is the lookup-key column with its own sentinel.
	methodKeyColumn = "method_in_dwh"
)

// Clean repairs every missing cell in the table according to the per-column
// policy above and returns the same table. Column kinds are inferred before
// any substitution, so a column that is numeric apart from its missing
// cells is zero-filled rather than sentinel-filled.
func Clean(t *table.Table, logger *log.Logger) *table.Table {
	if !t.HasMissing() {
		return t
	}

	logger.Info("cleaning missing values", "table", t.Name)

	for col := range t.Columns {
		fill := UnknownValue
		if t.Columns[col] == methodKeyColumn {
			fill = UnknownMethod
		} else if t.ColumnKind(col) == table.KindNumeric {
			fill = "0"
		}

		for row := range t.Rows {
			if t.Cell(row, col) == "" {
				t.SetCell(row, col, fill)
			}
		}
	}

	return t
}
