package xlsxloader

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

// writeWorkbook builds an input workbook fixture. Each entry maps a sheet
// name to its rows (header first).
func writeWorkbook(t *testing.T, path string, sheets map[string][][]string) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for name, rows := range sheets {
		if _, err := f.NewSheet(name); err != nil {
			t.Fatalf("NewSheet(%q): %v", name, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				t.Fatalf("CoordinatesToCellName: %v", err)
			}
			values := make([]interface{}, len(row))
			for j, v := range row {
				values[j] = v
			}
			if err := f.SetSheetRow(name, cell, &values); err != nil {
				t.Fatalf("SetSheetRow: %v", err)
			}
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		t.Fatalf("DeleteSheet: %v", err)
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs(%q): %v", path, err)
	}
}

func fixtureSheets() map[string][][]string {
	return map[string][][]string{
		SheetTransactions: {
			{"month", "currency", "method", "total_transactions", "approved_transactions", "volume_usd"},
			{"2024-01", "USD", "card", "100", "80", "10000"},
			{"2024-02", "EUR", "wallet", "50", "40", "2500"},
		},
		SheetCountryLookup: {
			{"currency", "country"},
			{"USD", "US"},
			{"EUR", "DE"},
		},
		SheetMethodLookup: {
			{"method_in_dwh", "method_group"},
			{"card", "Cards"},
			{"wallet", "Wallets"},
		},
	}
}

// TestLoad_BindsRoles verifies the three sheets come back bound to their
// logical roles with headers and rows intact.
func TestLoad_BindsRoles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.xlsx")
	writeWorkbook(t, path, fixtureSheets())

	transactions, countries, methods, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if transactions.Name != SheetTransactions || transactions.NumRows() != 2 {
		t.Fatalf("transactions = %q with %d rows, want %q with 2",
			transactions.Name, transactions.NumRows(), SheetTransactions)
	}
	wantCols := []string{"month", "currency", "method", "total_transactions", "approved_transactions", "volume_usd"}
	if !reflect.DeepEqual(transactions.Columns, wantCols) {
		t.Fatalf("transaction columns = %v, want %v", transactions.Columns, wantCols)
	}
	if got := transactions.Cell(0, 3); got != "100" {
		t.Fatalf("cell(0,3) = %q, want \"100\"", got)
	}

	if countries.NumRows() != 2 || methods.NumRows() != 2 {
		t.Fatalf("lookup rows = %d/%d, want 2/2", countries.NumRows(), methods.NumRows())
	}
}

// TestLoad_NotFound verifies a missing input file yields *NotFoundError.
func TestLoad_NotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.xlsx")

	_, _, _, err := Load(path)
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Load = %v, want *NotFoundError", err)
	}
	if notFound.Path != path {
		t.Fatalf("Path = %q, want %q", notFound.Path, path)
	}
}

// TestLoad_MissingSheets verifies the error names every absent sheet.
func TestLoad_MissingSheets(t *testing.T) {
	sheets := fixtureSheets()
	delete(sheets, SheetCountryLookup)
	delete(sheets, SheetMethodLookup)

	path := filepath.Join(t.TempDir(), "input.xlsx")
	writeWorkbook(t, path, sheets)

	_, _, _, err := Load(path)
	var missing *MissingSheetsError
	if !errors.As(err, &missing) {
		t.Fatalf("Load = %v, want *MissingSheetsError", err)
	}
	want := []string{SheetCountryLookup, SheetMethodLookup}
	if !reflect.DeepEqual(missing.Sheets, want) {
		t.Fatalf("Sheets = %v, want %v", missing.Sheets, want)
	}
}

// TestLoad_SkipsBlankRows verifies fully blank sheet rows do not become
// data rows.
func TestLoad_SkipsBlankRows(t *testing.T) {
	sheets := fixtureSheets()
	sheets[SheetTransactions] = [][]string{
		{"month", "currency", "method", "total_transactions", "approved_transactions", "volume_usd"},
		{"2024-01", "USD", "card", "100", "80", "10000"},
		{"", "", "", "", "", ""},
		{"2024-02", "EUR", "wallet", "50", "40", "2500"},
	}

	path := filepath.Join(t.TempDir(), "input.xlsx")
	writeWorkbook(t, path, sheets)

	transactions, _, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if transactions.NumRows() != 2 {
		t.Fatalf("rows = %d, want 2 (blank row dropped)", transactions.NumRows())
	}
}
