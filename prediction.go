package forecastviz

import (
	"errors"
	"fmt"
	"time"

	"github.com/forecastviz/forecastviz/timetable"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

var ErrNoDataToPlot = errors.New("no prediction data or training observations to plot")

const defaultSymbolSize = 6

// PredictionPlotOptions configures PredictionPlot beyond its style.
type PredictionPlotOptions struct {
	Style *Style
	// Percentiles is the (lower, upper) percentile pair whose derived
	// bound columns are shaded when both are present. Defaults to (5, 95).
	Percentiles []int
	// TestActuals optionally overlays held-out observations.
	TestActuals *timetable.ObservationTable
	// LinePlot draws observations as lines instead of scatter points.
	LinePlot bool
	// SymbolSize is the scatter marker size in pixels.
	SymbolSize int
}

// PredictionPlot draws training observations together with the predicted
// series, an optional percentile interval band, optional test
// observations, and a dashed vertical separator where the forecast
// horizon extends past the training data. The chart is saved or displayed
// per the style and returned for inspection.
func PredictionPlot(training *timetable.ObservationTable, predicted *timetable.PredictionTable, opt *PredictionPlotOptions) (*charts.Line, error) {
	if opt == nil {
		opt = &PredictionPlotOptions{}
	}
	style := opt.Style.withDefaults()

	if training.Len() == 0 || predicted.Len() == 0 {
		return nil, ErrNoDataToPlot
	}
	if err := predicted.Validate(); err != nil {
		return nil, fmt.Errorf("prediction table, %w", err)
	}

	percentiles := opt.Percentiles
	if percentiles == nil {
		percentiles = timetable.DefaultPercentiles
	}
	bounds, err := timetable.NewBoundColumns(timetable.ColPrediction, percentiles)
	if err != nil {
		return nil, err
	}

	symbolSize := opt.SymbolSize
	if symbolSize <= 0 {
		symbolSize = defaultSymbolSize
	}

	timelines := [][]time.Time{training.T, predicted.T}
	if opt.TestActuals.Len() > 0 {
		timelines = append(timelines, opt.TestActuals.T)
	}
	axis := mergeTimeline(timelines...)
	idx := axisIndex(axis)
	n := len(axis)

	line := charts.NewLine()
	line.SetGlobalOptions(
		style.initialization(style.Width, style.Height),
		style.title(style.Title),
	)
	line.SetXAxis(axis)

	if lower, upper, ok := predicted.Bounds(bounds); ok {
		addBand(line, timetable.ColPrediction, idx, n, predicted.T, lower, upper)
	}

	// dashed separator between history and forecast
	var sepOpts []charts.SeriesOpts
	lastTrain := training.T[len(training.T)-1]
	if lastTrain.Before(predicted.T[len(predicted.T)-1]) {
		sepOpts = append(sepOpts,
			charts.WithMarkLineNameXAxisItemOpts(opts.MarkLineNameXAxisItem{
				Name:  "forecast start",
				XAxis: idx[lastTrain.UnixNano()],
			}),
			charts.WithMarkLineStyleOpts(opts.MarkLineStyle{
				Symbol: []string{"none", "none"},
				LineStyle: &opts.LineStyle{
					Type:    "dashed",
					Color:   colorHoldoutLine,
					Opacity: 0.5,
				},
			}),
		)
	}
	predOpts := append([]charts.SeriesOpts{
		charts.WithLineChartOpts(opts.LineChart{Symbol: "none"}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: colorPredictionLine, Width: 2}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: colorPredictionLine}),
	}, sepOpts...)
	line.AddSeries(timetable.ColPrediction, alignLine(idx, n, predicted.T, predicted.Prediction), predOpts...)

	if opt.LinePlot {
		line.AddSeries("train response", alignLine(idx, n, training.T, training.Y),
			charts.WithLineChartOpts(opts.LineChart{Symbol: "none"}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: colorActualObs, Width: 2}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: colorActualObs}),
		)
		if opt.TestActuals.Len() > 0 {
			line.AddSeries("test response", alignLine(idx, n, opt.TestActuals.T, opt.TestActuals.Y),
				charts.WithLineChartOpts(opts.LineChart{Symbol: "none"}),
				charts.WithLineStyleOpts(opts.LineStyle{Color: colorTestObs, Width: 2}),
				charts.WithItemStyleOpts(opts.ItemStyle{Color: colorTestObs}),
			)
		}
	} else {
		scatter := charts.NewScatter()
		scatter.SetXAxis(axis)
		scatter.AddSeries("train response", alignScatter(idx, n, training.T, training.Y, symbolSize),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: colorActualObs, Opacity: 0.8}),
		)
		if opt.TestActuals.Len() > 0 {
			scatter.AddSeries("test response", alignScatter(idx, n, opt.TestActuals.T, opt.TestActuals.Y, symbolSize),
				charts.WithItemStyleOpts(opts.ItemStyle{Color: colorTestObs}),
			)
		}
		line.Overlap(scatter)
	}

	if err := finish(line, style); err != nil {
		return nil, err
	}
	return line, nil
}
