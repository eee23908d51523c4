// Package forecastviz renders forecasting output as Apache ECharts HTML
// documents. Every plot function takes already computed tabular data from
// a forecasting engine's predict or backtest step, validates it, draws a
// chart, optionally saves or displays it, and returns the chart handle
// for further inspection.
package forecastviz

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	defaultWidth    = 1200
	defaultHeight   = 600
	defaultFontSize = 16
)

// Prediction palette roughly matching the classic forecast chart colors:
// dark observations, a blue prediction line, and a light interval fill.
const (
	colorActualObs      = "#2c2c2c"
	colorTestObs        = "#fc7d0b"
	colorPredictionLine = "#1f77b4"
	colorInterval       = "#a6cee3"
	colorHoldoutLine    = "#7f7f7f"
)

// barPalette is a colorblind safe qualitative palette for model bars.
var barPalette = []string{
	"#0173b2", "#de8f05", "#029e73", "#d55e00", "#cc78bc",
	"#ca9161", "#fbafe4", "#949494", "#ece133", "#56b4e9",
}

func barColor(i int) string {
	return barPalette[i%len(barPalette)]
}

// Style is the display configuration applied by every plot function
// before drawing. Zero fields fall back to defaults.
type Style struct {
	// Width and Height are the overall figure size in pixels. Paneled
	// plots divide this area among their panels.
	Width  int
	Height int
	// Title is the figure title.
	Title string
	// FontSize is the title font size.
	FontSize int
	// Theme is an optional ECharts theme name.
	Theme string
	// Path optionally saves the rendered chart as an HTML file.
	Path string
	// Visible opens the rendered chart in the default browser. Tests
	// leave this false so rendering stays side effect free.
	Visible bool
}

// DefaultStyle returns the style applied when none is provided.
func DefaultStyle() *Style {
	return &Style{
		Width:    defaultWidth,
		Height:   defaultHeight,
		FontSize: defaultFontSize,
	}
}

func (s *Style) withDefaults() *Style {
	if s == nil {
		return DefaultStyle()
	}
	out := *s
	if out.Width <= 0 {
		out.Width = defaultWidth
	}
	if out.Height <= 0 {
		out.Height = defaultHeight
	}
	if out.FontSize <= 0 {
		out.FontSize = defaultFontSize
	}
	return &out
}

func (s *Style) initialization(width, height int) charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		Width:  fmt.Sprintf("%dpx", width),
		Height: fmt.Sprintf("%dpx", height),
		Theme:  s.Theme,
	})
}

func (s *Style) title(title string) charts.GlobalOpts {
	return charts.WithTitleOpts(opts.Title{
		Title: title,
		TitleStyle: &opts.TextStyle{
			FontSize: s.FontSize,
		},
	})
}
