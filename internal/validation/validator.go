// =============================================================================
// Payment Analytics - Schema Validation
// =============================================================================
//
// This module checks each loaded table against its required-column contract
// before any cleaning or aggregation runs. Validation is the single point
// where malformed input is rejected.
//
// VALIDATION STRATEGY:
//   1. An empty table (zero data rows) is always rejected.
//   2. Missing cells anywhere in the table produce one non-fatal warning on
//      the injected logger. This is observational only.
//   3. Every required column must be present; the error names all missing
//      columns at once rather than just the first.
//
// =============================================================================

package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/ginjaninja78/payment-analytics/internal/table"
)

// =============================================================================
// ROLE CONTRACTS
// =============================================================================

// Required-column sets, fixed per logical role.
var (
	// TransactionColumns are the columns the transaction table must carry.
	TransactionColumns = []string{"month", "currency", "method", "total_transactions"}

	// CountryColumns are the columns the country lookup must carry.
	CountryColumns = []string{"currency", "country"}

	// MethodColumns are the columns the method lookup must carry.
	MethodColumns = []string{"method_in_dwh", "method_group"}
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// EmptyDataError indicates that a required table has zero data rows.
type EmptyDataError struct {
	TableName string
}

// Error implements the error interface.
func (e *EmptyDataError) Error() string {
	return fmt.Sprintf("table %q is empty", e.TableName)
}

// SchemaError indicates that a table is missing one or more required
// columns. Columns lists every absent column name.
type SchemaError struct {
	TableName string
	Columns   []string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("table %q is missing required columns: %s",
		e.TableName, strings.Join(e.Columns, ", "))
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks a table against its required-column contract.
//
// PARAMETERS:
//   - t: the table to check.
//   - required: the required column names for the table's logical role.
//   - logger: receives the non-fatal missing-value warning.
//
// RETURNS:
//   - *EmptyDataError if the table has no data rows.
//   - *SchemaError if any required column is absent.
//   - nil when the table satisfies its contract.
func Validate(t *table.Table, required []string, logger *log.Logger) error {
	if t.Empty() {
		return &EmptyDataError{TableName: t.Name}
	}

	if n := t.MissingCount(); n > 0 {
		logger.Warn("missing values detected", "table", t.Name, "cells", n)
	}

	var missing []string
	for _, col := range required {
		if !t.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return &SchemaError{TableName: t.Name, Columns: missing}
	}

	return nil
}
