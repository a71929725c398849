package render

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"defect-cost/core/aggregate"
	"defect-cost/core/chart"
	"defect-cost/core/types"
)

const (
	pieChartWidth  = "700px"
	pieChartHeight = "520px"
)

// WriteHTML renders the aggregation result as an interactive HTML page with
// the two-ring donut: an inner department pie and an outer role ring.
func WriteHTML(w io.Writer, result *aggregate.Result, colors map[types.Department]string, title string) error {
	entries, err := result.ChartEntries()
	if err != nil {
		return err
	}
	summary, err := result.DepartmentSummary()
	if err != nil {
		return err
	}
	if colors == nil {
		colors = chart.DefaultColors()
	}

	page := components.NewPage()
	page.SetPageTitle(title)
	page.AddCharts(buildDonut(entries, summary, colors, title))
	return page.Render(w)
}

// WriteComparisonHTML renders previous and current periods side by side,
// previous first.
func WriteComparisonHTML(w io.Writer, current, previous *aggregate.Result, colors map[types.Department]string, currentTitle, previousTitle string) error {
	if colors == nil {
		colors = chart.DefaultColors()
	}

	page := components.NewPage()
	page.SetPageTitle("Nonconformance comparison")
	for _, period := range []struct {
		result *aggregate.Result
		title  string
	}{{previous, previousTitle}, {current, currentTitle}} {
		entries, err := period.result.ChartEntries()
		if err != nil {
			return err
		}
		summary, err := period.result.DepartmentSummary()
		if err != nil {
			return err
		}
		page.AddCharts(buildDonut(entries, summary, colors, period.title))
	}
	return page.Render(w)
}

func buildDonut(entries []types.ChartEntry, summary []types.DepartmentTotal, colors map[types.Department]string, title string) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithInitializationOpts(opts.Initialization{
			Width:  pieChartWidth,
			Height: pieChartHeight,
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
	)

	roleData := make([]opts.PieData, 0, len(entries))
	for _, en := range entries {
		roleData = append(roleData, opts.PieData{
			Name:      roleLabel(en.Label),
			Value:     en.Size,
			ItemStyle: &opts.ItemStyle{Color: colors[en.Department]},
		})
	}

	deptData := make([]opts.PieData, 0, len(summary))
	for _, d := range summary {
		deptData = append(deptData, opts.PieData{
			Name:      string(d.Department),
			Value:     d.Count,
			ItemStyle: &opts.ItemStyle{Color: colors[d.Department]},
		})
	}

	// Series options go through AddSeries; SetSeriesOptions would apply to
	// both rings at once.
	pie.AddSeries("Departments", deptData,
		charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Position:  "inside",
			Formatter: "{b}",
			Color:     "white",
		}),
		charts.WithPieChartOpts(opts.PieChart{
			Radius: []string{"0%", "40%"},
		}),
	)

	pie.AddSeries("Roles", roleData,
		charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Formatter: "{b}: {c} ({d}%)",
		}),
		charts.WithPieChartOpts(opts.PieChart{
			Radius: []string{"55%", "75%"},
		}),
	)

	return pie
}

func roleLabel(role string) string {
	if role == "" {
		return "(unnamed)"
	}
	return role
}
