package forecastviz

import (
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"runtime"
	"sort"
	"time"

	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/rs/zerolog"
)

// Logger reports render diagnostics such as saved file paths. It is a
// no-op by default so the library stays silent unless wired into the
// caller's logging stack.
var Logger = zerolog.Nop()

type renderable interface {
	Render(w io.Writer) error
}

// finish applies the style's output side effects after a chart has been
// fully assembled: an optional save to style.Path and an optional browser
// display. Validation has already happened by the time this is called so
// a chart is always produced.
func finish(r renderable, s *Style) error {
	path := s.Path
	if path != "" {
		if err := save(r, path); err != nil {
			return err
		}
	}
	if !s.Visible {
		return nil
	}
	if path == "" {
		file, err := os.CreateTemp("", "forecastviz-*.html")
		if err != nil {
			return fmt.Errorf("unable to create temp chart file, %w", err)
		}
		path = file.Name()
		if err := renderTo(r, file); err != nil {
			return err
		}
	}
	return openBrowser(path)
}

func save(r renderable, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create chart file, %w", err)
	}
	if err := renderTo(r, file); err != nil {
		return err
	}
	Logger.Debug().Str("path", path).Msg("chart saved")
	return nil
}

func renderTo(r renderable, file *os.File) error {
	if err := r.Render(file); err != nil {
		file.Close()
		return fmt.Errorf("unable to render chart to %s, %w", file.Name(), err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("unable to close chart file %s, %w", file.Name(), err)
	}
	return nil
}

func openBrowser(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("unable to open chart %s, %w", path, err)
	}
	Logger.Debug().Str("path", path).Msg("chart opened")
	return nil
}

// mergeTimeline builds the sorted union of all input timestamp slices for
// use as a shared category axis.
func mergeTimeline(series ...[]time.Time) []time.Time {
	seen := make(map[int64]struct{})
	var axis []time.Time
	for _, t := range series {
		for _, pnt := range t {
			key := pnt.UnixNano()
			if _, exists := seen[key]; exists {
				continue
			}
			seen[key] = struct{}{}
			axis = append(axis, pnt)
		}
	}
	sort.Slice(axis, func(i, j int) bool { return axis[i].Before(axis[j]) })
	return axis
}

func axisIndex(axis []time.Time) map[int64]int {
	idx := make(map[int64]int, len(axis))
	for i, pnt := range axis {
		idx[pnt.UnixNano()] = i
	}
	return idx
}

// gap is the value ECharts treats as a missing data point.
const gap = "-"

// alignLine places y values on the shared axis, filling "-" where a
// series has no sample for an axis position. NaNs become gaps as well.
func alignLine(idx map[int64]int, n int, t []time.Time, y []float64) []opts.LineData {
	data := make([]opts.LineData, n)
	for i := range data {
		data[i] = opts.LineData{Value: gap}
	}
	for i, pnt := range t {
		pos, exists := idx[pnt.UnixNano()]
		if !exists || math.IsNaN(y[i]) {
			continue
		}
		data[pos] = opts.LineData{Value: y[i]}
	}
	return data
}

func alignScatter(idx map[int64]int, n int, t []time.Time, y []float64, symbolSize int) []opts.ScatterData {
	data := make([]opts.ScatterData, n)
	for i := range data {
		data[i] = opts.ScatterData{Value: gap}
	}
	for i, pnt := range t {
		pos, exists := idx[pnt.UnixNano()]
		if !exists || math.IsNaN(y[i]) {
			continue
		}
		data[pos] = opts.ScatterData{Value: y[i], SymbolSize: symbolSize}
	}
	return data
}

// gridRows computes the number of panel rows needed to lay out n panels
// over ncol columns.
func gridRows(n, ncol int) int {
	if ncol < 1 {
		ncol = 1
	}
	return (n + ncol - 1) / ncol
}
