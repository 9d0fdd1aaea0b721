package validation

import (
	"errors"
	"io"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/ginjaninja78/payment-analytics/internal/table"
)

func discard() *log.Logger {
	return log.New(io.Discard)
}

// TestValidate_EmptyTable verifies an empty table is rejected for every
// logical role, regardless of which columns its header carries.
func TestValidate_EmptyTable(t *testing.T) {
	roles := []struct {
		name     string
		columns  []string
		required []string
	}{
		{"transactions", []string{"month", "currency", "method", "total_transactions"}, TransactionColumns},
		{"country", []string{"currency", "country"}, CountryColumns},
		{"method_group", []string{"method_in_dwh", "method_group"}, MethodColumns},
	}

	for _, role := range roles {
		t.Run(role.name, func(t *testing.T) {
			tab := table.New(role.name, role.columns, nil)

			err := Validate(tab, role.required, discard())
			var emptyErr *EmptyDataError
			if !errors.As(err, &emptyErr) {
				t.Fatalf("Validate = %v, want *EmptyDataError", err)
			}
			if emptyErr.TableName != role.name {
				t.Fatalf("TableName = %q, want %q", emptyErr.TableName, role.name)
			}
		})
	}
}

// TestValidate_MissingColumns verifies the schema error names every absent
// required column.
func TestValidate_MissingColumns(t *testing.T) {
	tab := table.New("data", []string{"month", "currency"}, [][]string{
		{"2024-01", "USD"},
	})

	err := Validate(tab, TransactionColumns, discard())
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Validate = %v, want *SchemaError", err)
	}
	want := []string{"method", "total_transactions"}
	if !reflect.DeepEqual(schemaErr.Columns, want) {
		t.Fatalf("missing columns = %v, want %v", schemaErr.Columns, want)
	}
}

// TestValidate_OK verifies a full table passes, missing cells or not: the
// missing-value diagnostic is a warning, never an error.
func TestValidate_OK(t *testing.T) {
	tab := table.New("data",
		[]string{"month", "currency", "method", "total_transactions"},
		[][]string{
			{"2024-01", "USD", "card", "100"},
			{"2024-02", "", "card", "50"},
		})

	if err := Validate(tab, TransactionColumns, discard()); err != nil {
		t.Fatalf("Validate = %v, want nil", err)
	}
}

// TestClean_Policy exercises the per-column repair rules: numeric columns
// are zero-filled, method_in_dwh gets its own sentinel, and other string
// columns get the generic one.
func TestClean_Policy(t *testing.T) {
	tab := table.New("method_group",
		[]string{"method_in_dwh", "method_group", "weight"},
		[][]string{
			{"card", "Cards", "1"},
			{"", "", ""},
		})

	Clean(tab, discard())

	if got := tab.Cell(1, 0); got != UnknownMethod {
		t.Fatalf("method_in_dwh fill = %q, want %q", got, UnknownMethod)
	}
	if got := tab.Cell(1, 1); got != UnknownValue {
		t.Fatalf("method_group fill = %q, want %q", got, UnknownValue)
	}
	if got := tab.Cell(1, 2); got != "0" {
		t.Fatalf("numeric fill = %q, want \"0\"", got)
	}
}

// TestClean_PreservesRows verifies cleaning substitutes values only: the
// row count and all present values survive.
func TestClean_PreservesRows(t *testing.T) {
	tab := table.New("data",
		[]string{"month", "total_transactions"},
		[][]string{
			{"2024-01", "100"},
			{"", ""},
			{"2024-03", "25"},
		})

	Clean(tab, discard())

	if tab.NumRows() != 3 {
		t.Fatalf("rows = %d, want 3", tab.NumRows())
	}
	if got := tab.Cell(0, 1); got != "100" {
		t.Fatalf("present value changed to %q", got)
	}
}

// TestClean_Idempotent verifies clean(clean(T)) == clean(T).
func TestClean_Idempotent(t *testing.T) {
	tab := table.New("data",
		[]string{"month", "currency", "total_transactions"},
		[][]string{
			{"2024-01", "", ""},
			{"", "EUR", "7"},
		})

	Clean(tab, discard())
	first := make([][]string, len(tab.Rows))
	for i, row := range tab.Rows {
		first[i] = append([]string(nil), row...)
	}

	Clean(tab, discard())
	if !reflect.DeepEqual(first, tab.Rows) {
		t.Fatalf("second clean changed rows: %v -> %v", first, tab.Rows)
	}

	if tab.HasMissing() {
		t.Fatal("missing cells remain after clean")
	}
}
