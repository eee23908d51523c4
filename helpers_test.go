package forecastviz

import (
	"time"

	"github.com/forecastviz/forecastviz/timetable"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

func genTimes(n int, start time.Time) []time.Time {
	t := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		t = append(t, start.Add(time.Duration(i)*time.Hour))
	}
	return t
}

var testStart = time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)

func genTraining(n int) *timetable.ObservationTable {
	t := genTimes(n, testStart)
	y := make([]float64, n)
	for i := range y {
		y[i] = 100.0 + float64(i)
	}
	table, err := timetable.NewObservationTable(t, y)
	if err != nil {
		panic(err)
	}
	return table
}

// genPrediction generates a prediction table starting at the given offset
// from the training start, optionally with (5, 95) bound columns.
func genPrediction(n, offsetHours int, withBounds bool) *timetable.PredictionTable {
	t := genTimes(n, testStart.Add(time.Duration(offsetHours)*time.Hour))
	pred := make([]float64, n)
	lower := make([]float64, n)
	upper := make([]float64, n)
	for i := range pred {
		pred[i] = 100.0 + float64(offsetHours+i)
		lower[i] = pred[i] - 5.0
		upper[i] = pred[i] + 5.0
	}
	table, err := timetable.NewPredictionTable(t, pred)
	if err != nil {
		panic(err)
	}
	if withBounds {
		if err := table.SetColumn("prediction_5", lower); err != nil {
			panic(err)
		}
		if err := table.SetColumn("prediction_95", upper); err != nil {
			panic(err)
		}
	}
	return table
}

func genBacktest(splits []string, rowsPerSplit, trainRows int) *timetable.BacktestTable {
	bt := &timetable.BacktestTable{}
	for _, key := range splits {
		t := genTimes(rowsPerSplit, testStart)
		for i, tm := range t {
			actual := 100.0 + float64(i)
			bt.Append(key, tm, actual, actual+1.0, i < trainRows)
		}
	}
	return bt
}

func findSeries(ms []charts.SingleSeries, name string) *charts.SingleSeries {
	for i := range ms {
		if ms[i].Name == name {
			return &ms[i]
		}
	}
	return nil
}

// seriesValues extracts the numeric values of a line series, skipping gap
// placeholders.
func seriesValues(s *charts.SingleSeries) []float64 {
	data, ok := s.Data.([]opts.LineData)
	if !ok {
		return nil
	}
	var vals []float64
	for _, d := range data {
		v, ok := d.Value.(float64)
		if !ok {
			continue
		}
		vals = append(vals, v)
	}
	return vals
}
