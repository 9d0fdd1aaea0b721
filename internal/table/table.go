// =============================================================================
// Payment Analytics - Table Model
// =============================================================================
//
// This module provides the in-memory representation of a rectangular table
// read from one sheet of the input workbook. A table is a header row plus
// data rows of string cells; an empty cell is a missing value.
//
// Column kinds (numeric vs. string) are inferred from the non-missing cells
// of each column. The Data Cleaner uses the inferred kind to decide how a
// missing cell is repaired: numeric columns are zero-filled, string columns
// receive a sentinel.
//
// =============================================================================

package table

import (
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// COLUMN KINDS
// =============================================================================

// Kind is the inferred element type of a column.
type Kind int

const (
	// KindString is the default kind for columns holding arbitrary text.
	KindString Kind = iota

	// KindNumeric is assigned to columns whose every non-missing cell
	// parses as a decimal number.
	KindNumeric
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	if k == KindNumeric {
		return "numeric"
	}
	return "string"
}

// =============================================================================
// TABLE STRUCTURE
// =============================================================================

// Table is a named rectangular table: a header row naming the columns and
// zero or more data rows. Every row is padded to the header width, so cell
// access never goes out of range. The empty string marks a missing cell.
type Table struct {
	// Name is the logical name of the table, used in diagnostics.
	// For input tables this is the sheet name it was read from.
	Name string

	// Columns holds the cleaned header names, in sheet order.
	Columns []string

	// Rows holds the data rows. len(Rows[i]) == len(Columns) for all i.
	Rows [][]string
}

// New builds a Table from a header row and data rows. Header names are
// trimmed and BOM-stripped; short rows are padded with missing cells and
// overlong rows are truncated to the header width.
func New(name string, columns []string, rows [][]string) *Table {
	cleaned := make([]string, len(columns))
	for i, c := range columns {
		cleaned[i] = cleanHeader(c)
	}

	padded := make([][]string, 0, len(rows))
	for _, row := range rows {
		r := make([]string, len(cleaned))
		for i := range cleaned {
			if i < len(row) {
				r[i] = strings.TrimSpace(row[i])
			}
		}
		padded = append(padded, r)
	}

	return &Table{Name: name, Columns: cleaned, Rows: padded}
}

// cleanHeader normalizes a header cell: strips a UTF-8 BOM if present and
// trims surrounding whitespace.
func cleanHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.TrimSpace(h)
}

// =============================================================================
// BASIC ACCESSORS
// =============================================================================

// Empty reports whether the table has no data rows.
func (t *Table) Empty() bool {
	return len(t.Rows) == 0
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int {
	return len(t.Columns)
}

// ColumnIndex returns the position of the named column, or -1 if the table
// has no such column.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Cell returns the value at (row, col). Rows are padded at construction,
// so any col < NumColumns is safe for any existing row.
func (t *Table) Cell(row, col int) string {
	return t.Rows[row][col]
}

// SetCell overwrites the value at (row, col).
func (t *Table) SetCell(row, col int, value string) {
	t.Rows[row][col] = value
}

// =============================================================================
// MISSING-VALUE INSPECTION
// =============================================================================

// MissingCount returns the number of missing (empty) cells in the table.
func (t *Table) MissingCount() int {
	n := 0
	for _, row := range t.Rows {
		for _, cell := range row {
			if cell == "" {
				n++
			}
		}
	}
	return n
}

// HasMissing reports whether any cell in the table is missing.
func (t *Table) HasMissing() bool {
	for _, row := range t.Rows {
		for _, cell := range row {
			if cell == "" {
				return true
			}
		}
	}
	return false
}

// =============================================================================
// COLUMN KIND INFERENCE
// =============================================================================

// ColumnKind infers the kind of the column at the given index. A column is
// numeric when it has at least one non-missing cell and every non-missing
// cell parses as a decimal number. A column with only missing cells is
// treated as string.
func (t *Table) ColumnKind(col int) Kind {
	sawValue := false
	for _, row := range t.Rows {
		cell := row[col]
		if cell == "" {
			continue
		}
		if !isNumeric(cell) {
			return KindString
		}
		sawValue = true
	}
	if sawValue {
		return KindNumeric
	}
	return KindString
}

// isNumeric reports whether a cell value parses as a decimal number.
func isNumeric(s string) bool {
	_, err := decimal.NewFromString(s)
	return err == nil
}
