package forecastviz

import (
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// addBand shades the interval between lower and upper by stacking a near
// invisible series at the lower bound with the upper-lower delta filled
// on top of it.
func addBand(line *charts.Line, name string, idx map[int64]int, n int, t []time.Time, lower, upper []float64) {
	delta := make([]float64, len(lower))
	for i := range lower {
		delta[i] = upper[i] - lower[i]
	}
	stack := name + "-band"
	line.AddSeries(name+" lower", alignLine(idx, n, t, lower),
		charts.WithLineChartOpts(opts.LineChart{Stack: stack, Symbol: "none"}),
		charts.WithLineStyleOpts(opts.LineStyle{Opacity: 0.05}),
	)
	line.AddSeries(name+" interval", alignLine(idx, n, t, delta),
		charts.WithLineChartOpts(opts.LineChart{Stack: stack, Symbol: "none"}),
		charts.WithLineStyleOpts(opts.LineStyle{Opacity: 0.05}),
		charts.WithAreaStyleOpts(opts.AreaStyle{Color: colorInterval, Opacity: 0.3}),
	)
}
