package forecastviz

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/forecastviz/forecastviz/scores"
	"github.com/forecastviz/forecastviz/timetable"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/olekukonko/tablewriter"
)

// BacktestPlotOptions configures BacktestPanelPlot beyond its style.
type BacktestPlotOptions struct {
	Style *Style
	// Metric scores each split over its non-training rows and is shown
	// in the panel title. Defaults to SMAPE.
	Metric scores.Named
	// SplitKeys optionally restricts which splits are rendered. Defaults
	// to all splits in order of appearance.
	SplitKeys []string
	// Cols is the number of panel columns; rows are derived. Defaults
	// to 2.
	Cols int
	// IncludeCutover draws a dashed vertical line where held-out rows
	// start in each split.
	IncludeCutover bool
	// SymbolSize is the actuals marker size in pixels.
	SymbolSize int
}

const defaultPanelCols = 2

// BacktestPanelPlot draws a grid of small multiples, one panel per
// backtest split, each overlaying the predicted line with the actual
// value scatter and titled with the split key and its holdout metric.
// The page is saved or displayed per the style and returned for
// inspection.
func BacktestPanelPlot(table *timetable.BacktestTable, opt *BacktestPlotOptions) (*components.Page, error) {
	if opt == nil {
		opt = &BacktestPlotOptions{}
	}
	style := opt.Style.withDefaults()

	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("backtest table, %w", err)
	}

	metric := opt.Metric
	if metric.Score == nil {
		metric = scores.DefaultMetric()
	}

	ncol := opt.Cols
	if ncol < 1 {
		ncol = defaultPanelCols
	}

	keys := opt.SplitKeys
	if keys == nil {
		keys = table.SplitKeys()
	}

	nrow := gridRows(len(keys), ncol)
	panelWidth := style.Width / ncol
	panelHeight := style.Height / max(nrow, 1)

	symbolSize := opt.SymbolSize
	if symbolSize <= 0 {
		symbolSize = defaultSymbolSize
	}

	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)

	for _, key := range keys {
		split, err := table.Split(key)
		if err != nil {
			return nil, err
		}

		actual, prediction := split.Holdout()
		val, err := metric.Score(actual, prediction)
		if errors.Is(err, scores.ErrNoValidSamples) {
			// a split with no scoreable holdout rows still gets a panel
			val = math.NaN()
		} else if err != nil {
			return nil, fmt.Errorf("unable to score split %q, %w", key, err)
		}

		idx := axisIndex(split.T)
		n := split.Len()

		line := charts.NewLine()
		line.SetGlobalOptions(
			style.initialization(panelWidth, panelHeight),
			style.title(fmt.Sprintf("split %s; %s %.3f", key, metric.Name, val)),
		)
		line.SetXAxis(split.T)

		var sepOpts []charts.SeriesOpts
		if opt.IncludeCutover {
			if cutover, ok := split.CutoverTime(); ok {
				sepOpts = append(sepOpts,
					charts.WithMarkLineNameXAxisItemOpts(opts.MarkLineNameXAxisItem{
						Name:  "holdout start",
						XAxis: idx[cutover.UnixNano()],
					}),
					charts.WithMarkLineStyleOpts(opts.MarkLineStyle{
						Symbol: []string{"none", "none"},
						LineStyle: &opts.LineStyle{
							Type:    "dashed",
							Color:   colorHoldoutLine,
							Opacity: 0.8,
						},
					}),
				)
			}
		}
		predOpts := append([]charts.SeriesOpts{
			charts.WithLineChartOpts(opts.LineChart{Symbol: "none"}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: colorPredictionLine, Width: 2}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: colorPredictionLine}),
		}, sepOpts...)
		line.AddSeries(timetable.ColPrediction, alignLine(idx, n, split.T, split.Prediction), predOpts...)

		scatter := charts.NewScatter()
		scatter.SetXAxis(split.T)
		scatter.AddSeries("actual", alignScatter(idx, n, split.T, split.Actual, symbolSize),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: colorActualObs, Opacity: 0.6}),
		)
		line.Overlap(scatter)

		page.AddCharts(line)
	}

	if err := finish(page, style); err != nil {
		return nil, fmt.Errorf("unable to render backtest panels, %w", err)
	}
	return page, nil
}

// SummaryTable writes a per-split text summary of a backtest result with
// row counts and the holdout metric value per split.
func SummaryTable(w io.Writer, table *timetable.BacktestTable, metric scores.Named) error {
	if err := table.Validate(); err != nil {
		return fmt.Errorf("backtest table, %w", err)
	}
	if metric.Score == nil {
		metric = scores.DefaultMetric()
	}

	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"split", "rows", "holdout rows", metric.Name})

	for _, key := range table.SplitKeys() {
		split, err := table.Split(key)
		if err != nil {
			return err
		}
		actual, prediction := split.Holdout()
		val, err := metric.Score(actual, prediction)
		if errors.Is(err, scores.ErrNoValidSamples) {
			val = math.NaN()
		} else if err != nil {
			return fmt.Errorf("unable to score split %q, %w", key, err)
		}
		tw.Append([]string{
			key,
			strconv.Itoa(split.Len()),
			strconv.Itoa(len(actual)),
			strconv.FormatFloat(val, 'f', 3, 64),
		})
	}

	tw.Render()
	return nil
}
