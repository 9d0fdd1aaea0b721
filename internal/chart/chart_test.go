package chart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/payment-analytics/internal/analytics"
	"github.com/ginjaninja78/payment-analytics/internal/config"
)

func testChartConfig() config.ChartConfig {
	// Small canvas keeps the test fast.
	return config.ChartConfig{Width: 400, Height: 300, DPI: 96, TopN: 10}
}

func summaryOf(dimension string, rows ...analytics.Row) *analytics.Summary {
	return &analytics.Summary{Dimension: dimension, Rows: rows}
}

func row(key string, total, approved int64, volume int64) analytics.Row {
	rate := 0.0
	if total > 0 {
		rate = float64(approved) / float64(total)
	}
	return analytics.Row{
		Key:                  key,
		TotalTransactions:    total,
		ApprovedTransactions: approved,
		VolumeUSD:            decimal.NewFromInt(volume),
		ApprovalRate:         rate,
	}
}

// assertPNG checks the rendered file exists and starts with the PNG magic.
func assertPNG(t *testing.T, path string) {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading chart: %v", err)
	}
	if len(data) < 8 || string(data[1:4]) != "PNG" {
		t.Fatalf("output is not a PNG (%d bytes)", len(data))
	}
}

// TestRender_WritesPNG renders a populated chart and checks the output.
func TestRender_WritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plots", "combined.png")

	err := Render(
		summaryOf(analytics.DimensionMonth, row("2024-01", 100, 80, 10000), row("2024-02", 50, 45, 2500)),
		summaryOf(analytics.DimensionCountry, row("US", 100, 80, 10000), row("DE", 50, 45, 2500)),
		summaryOf(analytics.DimensionMethodGroup, row("Cards", 150, 125, 12500)),
		path, testChartConfig())
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	assertPNG(t, path)
}

// TestRender_EmptySummaries verifies empty summaries yield placeholder
// panels rather than a failed chart.
func TestRender_EmptySummaries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "combined.png")

	err := Render(
		summaryOf(analytics.DimensionMonth),
		summaryOf(analytics.DimensionCountry),
		summaryOf(analytics.DimensionMethodGroup),
		path, testChartConfig())
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	assertPNG(t, path)
}

// TestTopByVolume verifies the cutoff and descending order.
func TestTopByVolume(t *testing.T) {
	rows := []analytics.Row{
		row("small", 1, 1, 100),
		row("big", 1, 1, 9000),
		row("mid", 1, 1, 5000),
	}

	top := topByVolume(rows, 2)
	if len(top) != 2 {
		t.Fatalf("len = %d, want 2", len(top))
	}
	if top[0].Key != "big" || top[1].Key != "mid" {
		t.Fatalf("order = %q, %q, want big, mid", top[0].Key, top[1].Key)
	}

	// The input slice must stay untouched.
	if rows[0].Key != "small" {
		t.Fatalf("input reordered: %q", rows[0].Key)
	}
}

// TestChronological verifies months sort ascending by key.
func TestChronological(t *testing.T) {
	rows := []analytics.Row{
		row("2024-03", 1, 1, 1),
		row("2024-01", 1, 1, 1),
		row("2024-02", 1, 1, 1),
	}

	sorted := chronological(rows)
	want := []string{"2024-01", "2024-02", "2024-03"}
	for i, key := range want {
		if sorted[i].Key != key {
			t.Fatalf("sorted[%d] = %q, want %q", i, sorted[i].Key, key)
		}
	}
}
