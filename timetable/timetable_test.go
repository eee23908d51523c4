package timetable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTimes(n int) []time.Time {
	t := make([]time.Time, 0, n)
	start := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		t = append(t, start.Add(time.Duration(i)*time.Hour))
	}
	return t
}

func TestNewObservationTable(t *testing.T) {
	testData := map[string]struct {
		t   []time.Time
		y   []float64
		err error
	}{
		"no rows": {
			err: ErrNoRows,
		},
		"length mismatch": {
			t:   testTimes(3),
			y:   []float64{1, 2},
			err: ErrLenMismatch,
		},
		"non increasing time": {
			t: []time.Time{
				time.Date(2023, 5, 2, 0, 0, 0, 0, time.UTC),
				time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC),
			},
			y:   []float64{1, 2},
			err: ErrNonIncreasingTime,
		},
		"duplicate time": {
			t: []time.Time{
				time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC),
			},
			y:   []float64{1, 2},
			err: ErrNonIncreasingTime,
		},
		"valid": {
			t: testTimes(2),
			y: []float64{1, 2},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			table, err := NewObservationTable(td.t, td.y)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, td.t, table.T)
			assert.Equal(t, td.y, table.Y)
		})
	}
}

func TestObservationTableCopies(t *testing.T) {
	tms := testTimes(2)
	y := []float64{1, 2}
	table, err := NewObservationTable(tms, y)
	require.NoError(t, err)

	y[0] = 99
	assert.Equal(t, []float64{1, 2}, table.Y)
}

func TestPredictionTableSetColumn(t *testing.T) {
	table, err := NewPredictionTable(testTimes(3), []float64{1, 2, 3})
	require.NoError(t, err)

	assert.ErrorIs(t, table.SetColumn("prediction_5", []float64{1}), ErrLenMismatch)

	require.NoError(t, table.SetColumn("prediction_5", []float64{0, 1, 2}))
	require.NoError(t, table.SetColumn("prediction_95", []float64{2, 3, 4}))

	lower, upper, ok := table.Bounds(BoundColumns{Lower: "prediction_5", Upper: "prediction_95"})
	require.True(t, ok)
	assert.Equal(t, []float64{0, 1, 2}, lower)
	assert.Equal(t, []float64{2, 3, 4}, upper)

	_, _, ok = table.Bounds(BoundColumns{Lower: "prediction_1", Upper: "prediction_99"})
	assert.False(t, ok)
}

func TestComponentTablePresent(t *testing.T) {
	table, err := NewComponentTable(testTimes(2))
	require.NoError(t, err)
	require.NoError(t, table.SetColumn(ColTrend, []float64{1, 2}))
	require.NoError(t, table.SetColumn(ColSeasonality, []float64{3, 4}))

	testData := map[string]struct {
		requested []string
		expected  []string
	}{
		"all present": {
			requested: []string{ColTrend, ColSeasonality},
			expected:  []string{ColTrend, ColSeasonality},
		},
		"missing dropped": {
			requested: []string{ColTrend, ColSeasonality, ColRegression},
			expected:  []string{ColTrend, ColSeasonality},
		},
		"request order preserved": {
			requested: []string{ColSeasonality, ColTrend},
			expected:  []string{ColSeasonality, ColTrend},
		},
		"none present": {
			requested: []string{ColRegression},
			expected:  []string{},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, td.expected, table.Present(td.requested))
		})
	}
}

func TestMetricTable(t *testing.T) {
	table := &MetricTable{
		Model:   []string{"prophet", "prophet", "prophet", "arima", "arima", "arima"},
		Horizon: []string{"1", "7", "28", "1", "7", "28"},
		Value:   []float64{0.1, 0.2, 0.3, 0.15, 0.25, 0.35},
	}
	require.NoError(t, table.Validate())

	assert.Equal(t, []string{"prophet", "arima"}, table.Models())
	assert.Equal(t, []string{"1", "7", "28"}, table.Horizons())
	assert.Equal(t, []float64{0.15, 0.25, 0.35}, table.ModelValues("arima"))

	bad := &MetricTable{Model: []string{"prophet"}, Horizon: []string{"1", "7"}, Value: []float64{0.1}}
	assert.ErrorIs(t, bad.Validate(), ErrLenMismatch)
	assert.ErrorIs(t, (&MetricTable{}).Validate(), ErrNoRows)
}

func buildBacktestTable() *BacktestTable {
	bt := &BacktestTable{}
	tms := testTimes(4)
	for _, key := range []string{"0", "1", "2"} {
		for i, tm := range tms {
			bt.Append(key, tm, float64(i+1), float64(i+1)+0.5, i < 2)
		}
	}
	return bt
}

func TestBacktestTableSplit(t *testing.T) {
	bt := buildBacktestTable()
	require.NoError(t, bt.Validate())
	assert.Equal(t, []string{"0", "1", "2"}, bt.SplitKeys())

	split, err := bt.Split("1")
	require.NoError(t, err)
	assert.Equal(t, 4, split.Len())

	actual, prediction := split.Holdout()
	assert.Equal(t, []float64{3, 4}, actual)
	assert.Equal(t, []float64{3.5, 4.5}, prediction)

	cutover, ok := split.CutoverTime()
	require.True(t, ok)
	assert.Equal(t, split.T[2], cutover)

	_, err = bt.Split("nope")
	assert.ErrorIs(t, err, ErrUnknownSplit)
}

func TestBacktestSplitAllTraining(t *testing.T) {
	bt := &BacktestTable{}
	for i, tm := range testTimes(3) {
		bt.Append("0", tm, float64(i), float64(i), true)
	}
	split, err := bt.Split("0")
	require.NoError(t, err)

	actual, prediction := split.Holdout()
	assert.Empty(t, actual)
	assert.Empty(t, prediction)

	_, ok := split.CutoverTime()
	assert.False(t, ok)
}
