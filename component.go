package forecastviz

import (
	"fmt"

	"github.com/forecastviz/forecastviz/timetable"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// DefaultComponents is the component set rendered when none is requested.
var DefaultComponents = []string{
	timetable.ColTrend,
	timetable.ColSeasonality,
	timetable.ColRegression,
}

// ComponentPlotOptions configures ComponentPlot beyond its style.
type ComponentPlotOptions struct {
	Style *Style
	// Components lists the decomposition components to render, in panel
	// order. Names without a matching column are silently dropped.
	// Defaults to trend, seasonality, and regression.
	Components []string
	// Percentiles is the (lower, upper) percentile pair whose derived
	// per-component bound columns are shaded when both are present.
	// Defaults to (5, 95).
	Percentiles []int
}

// ComponentPlot draws one stacked panel per decomposed forecast component
// present in the table, each with its line and an optional percentile
// band. The page is saved or displayed per the style and returned for
// inspection.
func ComponentPlot(table *timetable.ComponentTable, opt *ComponentPlotOptions) (*components.Page, error) {
	if opt == nil {
		opt = &ComponentPlotOptions{}
	}
	style := opt.Style.withDefaults()

	if table.Len() == 0 {
		return nil, ErrNoDataToPlot
	}

	percentiles := opt.Percentiles
	if percentiles == nil {
		percentiles = timetable.DefaultPercentiles
	}
	if err := timetable.ValidatePercentiles(percentiles); err != nil {
		return nil, err
	}

	requested := opt.Components
	if requested == nil {
		requested = DefaultComponents
	}
	names := table.Present(requested)

	idx := axisIndex(table.T)
	n := len(table.T)
	panelHeight := style.Height / max(len(names), 1)

	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	for _, name := range names {
		bounds, err := timetable.NewBoundColumns(name, percentiles)
		if err != nil {
			return nil, err
		}

		line := charts.NewLine()
		line.SetGlobalOptions(
			style.initialization(style.Width, panelHeight),
			style.title(name),
		)
		line.SetXAxis(table.T)

		if lower, upper, ok := table.Bounds(bounds); ok {
			addBand(line, name, idx, n, table.T, lower, upper)
		}

		col, _ := table.Column(name)
		line.AddSeries(name, alignLine(idx, n, table.T, col),
			charts.WithLineChartOpts(opts.LineChart{Symbol: "none"}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: colorPredictionLine, Width: 2}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: colorPredictionLine}),
		)
		page.AddCharts(line)
	}

	if err := finish(page, style); err != nil {
		return nil, fmt.Errorf("unable to render component panels, %w", err)
	}
	return page, nil
}
