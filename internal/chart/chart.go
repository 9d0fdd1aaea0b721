// =============================================================================
// Payment Analytics - Visualization Sink
// =============================================================================
//
// This module renders the combined chart image: a 2x2 grid of panels over
// the three summary tables.
//
//   +---------------------------+---------------------------+
//   | Top-N countries by volume | Top-N countries by        |
//   | (USD)                     | approval rate             |
//   +---------------------------+---------------------------+
//   | Volume by payment method  | Approval rate by month    |
//   | group (USD)               |                           |
//   +---------------------------+---------------------------+
//
// An empty summary renders an empty "(no data)" panel instead of failing
// the whole chart. Presentation ordering (volume-descending bars,
// chronological months) happens here, not in the aggregation engine.
//
// =============================================================================

package chart

import (
	"fmt"
	"os"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/ginjaninja78/payment-analytics/internal/analytics"
	"github.com/ginjaninja78/payment-analytics/internal/config"
	"github.com/ginjaninja78/payment-analytics/pkg/utils"
)

// Render draws the combined chart for the three summaries and writes it as
// a PNG to path, creating the parent directory if needed.
func Render(byMonth, byCountry, byMethodGroup *analytics.Summary, path string, cfg config.ChartConfig) error {
	topVolume := topByVolume(byCountry.Rows, cfg.TopN)
	topApproval := topByApproval(byCountry.Rows, cfg.TopN)
	methodRows := byVolumeDesc(byMethodGroup.Rows)
	monthRows := chronological(byMonth.Rows)

	volumePanel, err := barPanel(
		fmt.Sprintf("Top %d countries by volume (USD)", cfg.TopN),
		keys(topVolume), volumes(topVolume), true)
	if err != nil {
		return err
	}

	approvalPanel, err := barPanel(
		fmt.Sprintf("Top %d countries by approval rate", cfg.TopN),
		keys(topApproval), rates(topApproval), true)
	if err != nil {
		return err
	}
	approvalPanel.X.Max = 1.15

	methodPanel, err := barPanel(
		"Volume by payment method group (USD)",
		keys(methodRows), volumes(methodRows), false)
	if err != nil {
		return err
	}

	monthPanel, err := barPanel(
		"Approval rate by month",
		keys(monthRows), rates(monthRows), false)
	if err != nil {
		return err
	}
	monthPanel.Y.Max = 1.1

	grid := [][]*plot.Plot{
		{volumePanel, approvalPanel},
		{methodPanel, monthPanel},
	}
	return write(grid, path, cfg)
}

// =============================================================================
// PANEL CONSTRUCTION
// =============================================================================

// barPanel builds one bar-chart panel. With no data the panel stays empty
// apart from its title, so the combined image still renders.
func barPanel(title string, names []string, values []float64, horizontal bool) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.Title.Padding = vg.Millimeter * 2

	if len(values) == 0 {
		p.Title.Text = title + " (no data)"
		return p, nil
	}

	bars, err := plotter.NewBarChart(plotter.Values(values), vg.Points(18))
	if err != nil {
		return nil, fmt.Errorf("failed to build %q panel: %w", title, err)
	}
	bars.Horizontal = horizontal
	bars.LineStyle.Width = 0
	p.Add(bars)

	if horizontal {
		p.NominalY(names...)
	} else {
		p.NominalX(names...)
	}
	return p, nil
}

// write lays the panels out on a 2x2 tile grid and saves the PNG.
func write(grid [][]*plot.Plot, path string, cfg config.ChartConfig) error {
	if err := utils.EnsureParentDir(path); err != nil {
		return err
	}

	width := vg.Inch * vg.Length(cfg.Width) / vg.Length(cfg.DPI)
	height := vg.Inch * vg.Length(cfg.Height) / vg.Length(cfg.DPI)

	img := vgimg.NewWith(
		vgimg.UseWH(width, height),
		vgimg.UseDPI(cfg.DPI),
	)
	canvas := draw.New(img)

	tiles := draw.Tiles{
		Rows: len(grid),
		Cols: len(grid[0]),
		PadX: vg.Millimeter * 4,
		PadY: vg.Millimeter * 4,
	}

	panels := plot.Align(grid, tiles, canvas)
	for i := range grid {
		for j := range grid[i] {
			grid[i][j].Draw(panels[i][j])
		}
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer out.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}
	return nil
}

// =============================================================================
// PRESENTATION ORDERING
// =============================================================================

// topByVolume returns up to n rows sorted by volume descending.
func topByVolume(rows []analytics.Row, n int) []analytics.Row {
	sorted := byVolumeDesc(rows)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// topByApproval returns up to n rows sorted by approval rate descending.
func topByApproval(rows []analytics.Row, n int) []analytics.Row {
	sorted := append([]analytics.Row(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ApprovalRate > sorted[j].ApprovalRate
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// byVolumeDesc returns a copy of rows sorted by volume descending.
func byVolumeDesc(rows []analytics.Row) []analytics.Row {
	sorted := append([]analytics.Row(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].VolumeUSD.GreaterThan(sorted[j].VolumeUSD)
	})
	return sorted
}

// chronological returns a copy of rows sorted by month key ascending.
// Month values like "2024-01" sort correctly as strings.
func chronological(rows []analytics.Row) []analytics.Row {
	sorted := append([]analytics.Row(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Key < sorted[j].Key
	})
	return sorted
}

// keys extracts the dimension values of the rows, in order.
func keys(rows []analytics.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Key
	}
	return out
}

// volumes extracts the USD volumes as floats, in order.
func volumes(rows []analytics.Row) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = r.VolumeUSD.InexactFloat64()
	}
	return out
}

// rates extracts the approval rates, in order.
func rates(rows []analytics.Row) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = r.ApprovalRate
	}
	return out
}
