// =============================================================================
// Payment Analytics - Summary Tables
// =============================================================================

package analytics

import "github.com/shopspring/decimal"

// Row is one aggregated bucket of a summary table: a dimension value with
// its summed counts, summed USD volume and derived approval rate.
type Row struct {
	// Key is the dimension value: a month, a country or a method group.
	Key string

	// TotalTransactions is the summed transaction count for the bucket.
	TotalTransactions int64

	// ApprovedTransactions is the summed approved count for the bucket.
	ApprovedTransactions int64

	// VolumeUSD is the summed transaction volume in USD.
	VolumeUSD decimal.Decimal

	// ApprovalRate is ApprovedTransactions / TotalTransactions, or 0 when
	// the bucket has no transactions.
	ApprovalRate float64
}

// Summary is one aggregate output table. Rows appear in first-seen input
// order; sinks apply their own presentation ordering.
type Summary struct {
	// Dimension names the grouping dimension ("month", "country" or
	// "method_group"). It doubles as the key column header in the workbook.
	Dimension string

	// Rows holds one entry per distinct dimension value.
	Rows []Row
}

// TotalTransactions returns the sum of transaction counts across all rows.
// Because every input row lands in exactly one bucket, this equals the sum
// over the raw transaction table for each of the three summaries.
func (s *Summary) TotalTransactions() int64 {
	var n int64
	for _, r := range s.Rows {
		n += r.TotalTransactions
	}
	return n
}

// Find returns the row for the given key, or nil if no bucket has it.
func (s *Summary) Find(key string) *Row {
	for i := range s.Rows {
		if s.Rows[i].Key == key {
			return &s.Rows[i]
		}
	}
	return nil
}
