package timetable

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBacktestTableJSON(t *testing.T) {
	bt := buildBacktestTable()

	var buf bytes.Buffer
	require.NoError(t, bt.WriteJSON(&buf))

	decoded, err := ReadBacktestTable(&buf)
	require.NoError(t, err)
	assert.Equal(t, bt.SplitKey, decoded.SplitKey)
	assert.Equal(t, bt.Actual, decoded.Actual)
	assert.Equal(t, bt.TrainingRow, decoded.TrainingRow)
	require.Len(t, decoded.T, len(bt.T))
	for i := range bt.T {
		assert.True(t, bt.T[i].Equal(decoded.T[i]))
	}
}

func TestComponentTableJSON(t *testing.T) {
	table, err := NewComponentTable(testTimes(3))
	require.NoError(t, err)
	require.NoError(t, table.SetColumn(ColTrend, []float64{1, 2, 3}))
	require.NoError(t, table.SetColumn("trend_5", []float64{0, 1, 2}))

	var buf bytes.Buffer
	require.NoError(t, table.WriteJSON(&buf))

	decoded, err := ReadComponentTable(&buf)
	require.NoError(t, err)
	assert.Equal(t, table.Columns, decoded.Columns)

	_, err = ReadComponentTable(strings.NewReader(
		`{"time":["2023-05-01T00:00:00Z","2023-05-02T00:00:00Z"],"columns":{"trend":[1]}}`,
	))
	assert.ErrorIs(t, err, ErrLenMismatch)
}

func TestMetricTableJSON(t *testing.T) {
	table := &MetricTable{
		Model:   []string{"prophet", "arima"},
		Horizon: []string{"1", "1"},
		Value:   []float64{0.1, 0.2},
	}

	var buf bytes.Buffer
	require.NoError(t, table.WriteJSON(&buf))

	decoded, err := ReadMetricTable(&buf)
	require.NoError(t, err)
	assert.Equal(t, table, decoded)

	_, err = ReadMetricTable(strings.NewReader(`{"model":["prophet"],"horizon":[],"value":[0.1]}`))
	assert.ErrorIs(t, err, ErrLenMismatch)
}

func TestReadPredictionTableInvalid(t *testing.T) {
	testData := map[string]struct {
		in  string
		err error
	}{
		"empty table": {
			in:  `{"time":[],"prediction":[]}`,
			err: ErrNoRows,
		},
		"unordered": {
			in:  `{"time":["2023-05-02T00:00:00Z","2023-05-01T00:00:00Z"],"prediction":[1,2]}`,
			err: ErrNonIncreasingTime,
		},
		"ragged column": {
			in:  `{"time":["2023-05-01T00:00:00Z","2023-05-02T00:00:00Z"],"prediction":[1,2],"columns":{"prediction_5":[1]}}`,
			err: ErrLenMismatch,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			_, err := ReadPredictionTable(strings.NewReader(td.in))
			assert.ErrorIs(t, err, td.err)
		})
	}
}
