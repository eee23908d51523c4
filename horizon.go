package forecastviz

import (
	"fmt"

	"github.com/forecastviz/forecastviz/timetable"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// HorizonBarPlotOptions configures HorizonMetricBarPlot beyond its style.
type HorizonBarPlotOptions struct {
	Style *Style
	// BarWidth is each bar's share of a horizon slot as a fraction in
	// (0, 1]. Defaults to 0.1.
	BarWidth float64
	// MetricName labels the compared metric in the title.
	MetricName string
}

const defaultBarWidth = 0.1

// HorizonMetricBarPlot draws a grouped bar chart comparing a metric
// across models and forecast horizons. Each model gets one bar series in
// a distinct palette color, offset within each horizon slot, and the
// horizon axis is labeled with the distinct horizon values in table
// order. The chart is saved or displayed per the style and returned for
// inspection.
func HorizonMetricBarPlot(table *timetable.MetricTable, opt *HorizonBarPlotOptions) (*charts.Bar, error) {
	if opt == nil {
		opt = &HorizonBarPlotOptions{}
	}
	style := opt.Style.withDefaults()

	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("metric table, %w", err)
	}

	barWidth := opt.BarWidth
	if barWidth <= 0 || barWidth > 1 {
		barWidth = defaultBarWidth
	}

	models := table.Models()
	horizons := table.Horizons()

	// unused slot share within each horizon cluster
	categoryGap := (1.0 - barWidth*float64(len(models))) * 100.0
	if categoryGap < 0 {
		categoryGap = 0
	}

	title := style.Title
	if title == "" {
		name := opt.MetricName
		if name == "" {
			name = "metric"
		}
		title = fmt.Sprintf("Model Comparison with %s", name)
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		style.initialization(style.Width, style.Height),
		style.title(title),
		charts.WithXAxisOpts(opts.XAxis{Name: "predict-horizon"}),
	)
	bar.SetXAxis(horizons)

	for i, model := range models {
		vals := table.ModelValues(model)
		data := make([]opts.BarData, 0, len(vals))
		for _, v := range vals {
			data = append(data, opts.BarData{Value: v})
		}
		bar.AddSeries(model, data,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: barColor(i), BorderColor: "#ffffff"}),
			charts.WithBarChartOpts(opts.BarChart{
				BarGap:         "0%",
				BarCategoryGap: fmt.Sprintf("%.0f%%", categoryGap),
			}),
		)
	}

	if err := finish(bar, style); err != nil {
		return nil, err
	}
	return bar, nil
}
