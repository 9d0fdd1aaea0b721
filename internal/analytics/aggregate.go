// =============================================================================
// Payment Analytics - Aggregation Engine
// =============================================================================
//
// This module joins the transaction table against the two lookup tables and
// produces the three grouped summaries:
//
//   1. By month        : group by the exact month value, no normalization.
//   2. By country      : left-join on currency, group by resolved country.
//   3. By method group : left-join method against method_in_dwh, group by
//                        method_group.
//
// A transaction whose join key has no match in a lookup table is not
// dropped: it aggregates under the "Unresolved" bucket. Every input row
// therefore contributes to exactly one bucket per summary, and the summed
// transaction counts of each summary equal the sum over the raw table.
//
// Any parse or lookup failure surfaces as a wrapped *AggregationError so
// the orchestrator sees a uniform error surface.
//
// =============================================================================

package analytics

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/payment-analytics/internal/table"
)

// Unresolved is the bucket absorbing rows whose join key has no match in
// the corresponding lookup table. It is deliberately distinct from the
// cleaner's "Unknown" sentinel so a repaired cell and a failed join stay
// distinguishable in the summaries.
const Unresolved = "Unresolved"

// Dimension names for the three summaries.
const (
	DimensionMonth       = "month"
	DimensionCountry     = "country"
	DimensionMethodGroup = "method_group"
)

// AggregationError wraps any computation fault inside the engine.
type AggregationError struct {
	Err error
}

// Error implements the error interface.
func (e *AggregationError) Error() string {
	return fmt.Sprintf("aggregation failed: %v", e.Err)
}

// Unwrap exposes the underlying fault for errors.Is / errors.As.
func (e *AggregationError) Unwrap() error {
	return e.Err
}

// =============================================================================
// AGGREGATION
// =============================================================================

// Aggregate produces the month, country and method-group summaries from the
// validated, cleaned input tables.
//
// PARAMETERS:
//   - tx: the transaction table.
//   - countries: the currency -> country lookup.
//   - methods: the method_in_dwh -> method_group lookup.
//   - logger: receives non-fatal warnings about inconsistent counts.
//
// RETURNS:
//   - the three summaries, or *AggregationError on any internal fault.
func Aggregate(tx, countries, methods *table.Table, logger *log.Logger) (byMonth, byCountry, byMethodGroup *Summary, err error) {
	rows, err := parseTransactions(tx, logger)
	if err != nil {
		return nil, nil, nil, &AggregationError{Err: err}
	}

	countryByCurrency, err := lookupMap(countries, "currency", "country")
	if err != nil {
		return nil, nil, nil, &AggregationError{Err: err}
	}
	groupByMethod, err := lookupMap(methods, "method_in_dwh", "method_group")
	if err != nil {
		return nil, nil, nil, &AggregationError{Err: err}
	}

	byMonth = groupBy(rows, DimensionMonth, func(r txRow) string {
		return r.month
	})
	byCountry = groupBy(rows, DimensionCountry, func(r txRow) string {
		return resolve(countryByCurrency, r.currency)
	})
	byMethodGroup = groupBy(rows, DimensionMethodGroup, func(r txRow) string {
		return resolve(groupByMethod, r.method)
	})

	return byMonth, byCountry, byMethodGroup, nil
}

// txRow is one parsed transaction bucket.
type txRow struct {
	month    string
	currency string
	method   string
	total    int64
	approved int64
	volume   decimal.Decimal
}

// parseTransactions resolves the transaction columns and parses every row.
// The validator guarantees month, currency, method and total_transactions;
// the approved and volume columns are demanded here because the engine
// cannot aggregate without them.
func parseTransactions(tx *table.Table, logger *log.Logger) ([]txRow, error) {
	cols := map[string]int{}
	for _, name := range []string{
		"month", "currency", "method",
		"total_transactions", "approved_transactions", "volume_usd",
	} {
		idx := tx.ColumnIndex(name)
		if idx < 0 {
			return nil, fmt.Errorf("transactions table has no %q column", name)
		}
		cols[name] = idx
	}

	rows := make([]txRow, 0, tx.NumRows())
	for i := range tx.Rows {
		total, err := parseCount(tx.Cell(i, cols["total_transactions"]))
		if err != nil {
			return nil, fmt.Errorf("row %d: total_transactions: %w", i+1, err)
		}
		approved, err := parseCount(tx.Cell(i, cols["approved_transactions"]))
		if err != nil {
			return nil, fmt.Errorf("row %d: approved_transactions: %w", i+1, err)
		}
		volume, err := decimal.NewFromString(tx.Cell(i, cols["volume_usd"]))
		if err != nil {
			return nil, fmt.Errorf("row %d: volume_usd: %w", i+1, err)
		}

		// Inconsistent upstream counts are reported but kept: rejecting the
		// row would break the sum-preservation guarantee.
		if approved > total {
			logger.Warn("approved count exceeds total",
				"row", i+1, "approved", approved, "total", total)
		}

		rows = append(rows, txRow{
			month:    tx.Cell(i, cols["month"]),
			currency: tx.Cell(i, cols["currency"]),
			method:   tx.Cell(i, cols["method"]),
			total:    total,
			approved: approved,
			volume:   volume,
		})
	}

	return rows, nil
}

// parseCount parses a transaction-count cell as a non-fractional integer.
func parseCount(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("not a whole number: %q", s)
	}
	return n, nil
}

// lookupMap builds a key -> value map from a two-column lookup table.
// The first occurrence of a duplicated key wins.
func lookupMap(t *table.Table, keyCol, valueCol string) (map[string]string, error) {
	ki := t.ColumnIndex(keyCol)
	if ki < 0 {
		return nil, fmt.Errorf("table %q has no %q column", t.Name, keyCol)
	}
	vi := t.ColumnIndex(valueCol)
	if vi < 0 {
		return nil, fmt.Errorf("table %q has no %q column", t.Name, valueCol)
	}

	m := make(map[string]string, t.NumRows())
	for i := range t.Rows {
		key := t.Cell(i, ki)
		if _, dup := m[key]; !dup {
			m[key] = t.Cell(i, vi)
		}
	}
	return m, nil
}

// resolve maps a join key through a lookup, falling back to the Unresolved
// bucket when the key has no match.
func resolve(lookup map[string]string, key string) string {
	if v, ok := lookup[key]; ok {
		return v
	}
	return Unresolved
}

// groupBy reduces the parsed rows into one summary along a dimension.
// Buckets appear in first-seen row order. The rate divides by max(total, 1)
// so an all-zero bucket yields 0 instead of a division fault.
func groupBy(rows []txRow, dimension string, key func(txRow) string) *Summary {
	index := make(map[string]int)
	s := &Summary{Dimension: dimension}

	for _, r := range rows {
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(s.Rows)
			index[k] = i
			s.Rows = append(s.Rows, Row{Key: k, VolumeUSD: decimal.Zero})
		}
		s.Rows[i].TotalTransactions += r.total
		s.Rows[i].ApprovedTransactions += r.approved
		s.Rows[i].VolumeUSD = s.Rows[i].VolumeUSD.Add(r.volume)
	}

	for i := range s.Rows {
		total := s.Rows[i].TotalTransactions
		if total < 1 {
			total = 1
		}
		s.Rows[i].ApprovalRate = float64(s.Rows[i].ApprovedTransactions) / float64(total)
	}

	return s
}
