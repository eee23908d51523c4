// Package timetable holds the tabular inputs consumed by the plotting
// functions. Tables are produced by a forecasting engine's predict or
// backtest step and are treated as read-only here. Constructors enforce
// that timestamp columns are strictly increasing.
package timetable

import (
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
)

var (
	ErrNoRows            = errors.New("table has no rows")
	ErrNonIncreasingTime = errors.New("timestamps are not strictly increasing")
	ErrLenMismatch       = errors.New("column has a different length than timestamps")
	ErrUnknownSplit      = errors.New("unknown split key")
)

// Well known column names produced by the forecasting engine.
const (
	ColPrediction  = "prediction"
	ColTrend       = "trend"
	ColSeasonality = "seasonality"
	ColRegression  = "regression"
)

func checkOrdered(t []time.Time) error {
	var lastT time.Time
	for i := 0; i < len(t); i++ {
		currT := t[i]
		if i > 0 && (currT.Before(lastT) || currT.Equal(lastT)) {
			return fmt.Errorf("non-increasing at %d, %w", i, ErrNonIncreasingTime)
		}
		lastT = currT
	}
	return nil
}

func checkLen(t []time.Time, col []float64) error {
	if len(col) != len(t) {
		return fmt.Errorf(
			"column has length of %d, but timestamps has a length of %d, %w",
			len(col), len(t), ErrLenMismatch,
		)
	}
	return nil
}

// ObservationTable is an ordered sequence of timestamped actual values.
type ObservationTable struct {
	T []time.Time `json:"time"`
	Y []float64   `json:"value"`
}

// NewObservationTable copies the input slices into a validated table.
func NewObservationTable(t []time.Time, y []float64) (*ObservationTable, error) {
	if len(y) == 0 {
		return nil, ErrNoRows
	}
	if err := checkLen(t, y); err != nil {
		return nil, err
	}
	if err := checkOrdered(t); err != nil {
		return nil, err
	}

	tSeries := make([]time.Time, len(t))
	ySeries := make([]float64, len(t))
	copy(tSeries, t)
	copy(ySeries, y)
	return &ObservationTable{T: tSeries, Y: ySeries}, nil
}

func (o *ObservationTable) Len() int {
	if o == nil {
		return 0
	}
	return len(o.T)
}

func (o *ObservationTable) Validate() error {
	if o.Len() == 0 {
		return ErrNoRows
	}
	if err := checkLen(o.T, o.Y); err != nil {
		return err
	}
	return checkOrdered(o.T)
}

// PredictionTable is an ordered sequence of timestamped point predictions
// with optional extra columns such as percentile bounds. Bound columns are
// named after the point prediction column, e.g. prediction_5 and
// prediction_95 for a (5, 95) percentile pair.
type PredictionTable struct {
	T          []time.Time          `json:"time"`
	Prediction []float64            `json:"prediction"`
	Columns    map[string][]float64 `json:"columns,omitempty"`
}

// NewPredictionTable copies the input slices into a validated table.
// Bound columns are attached afterwards with SetColumn.
func NewPredictionTable(t []time.Time, prediction []float64) (*PredictionTable, error) {
	if len(prediction) == 0 {
		return nil, ErrNoRows
	}
	if err := checkLen(t, prediction); err != nil {
		return nil, err
	}
	if err := checkOrdered(t); err != nil {
		return nil, err
	}

	tSeries := make([]time.Time, len(t))
	pSeries := make([]float64, len(t))
	copy(tSeries, t)
	copy(pSeries, prediction)
	return &PredictionTable{
		T:          tSeries,
		Prediction: pSeries,
		Columns:    make(map[string][]float64),
	}, nil
}

func (p *PredictionTable) Len() int {
	if p == nil {
		return 0
	}
	return len(p.T)
}

func (p *PredictionTable) Validate() error {
	if p.Len() == 0 {
		return ErrNoRows
	}
	if err := checkLen(p.T, p.Prediction); err != nil {
		return err
	}
	for name, col := range p.Columns {
		if err := checkLen(p.T, col); err != nil {
			return fmt.Errorf("column %q, %w", name, err)
		}
	}
	return checkOrdered(p.T)
}

// SetColumn attaches a named column of the same length as the timestamps.
func (p *PredictionTable) SetColumn(name string, vals []float64) error {
	if err := checkLen(p.T, vals); err != nil {
		return fmt.Errorf("column %q, %w", name, err)
	}
	if p.Columns == nil {
		p.Columns = make(map[string][]float64)
	}
	col := make([]float64, len(vals))
	copy(col, vals)
	p.Columns[name] = col
	return nil
}

func (p *PredictionTable) Column(name string) ([]float64, bool) {
	col, exists := p.Columns[name]
	return col, exists
}

// Bounds returns the lower and upper bound columns for the given pair of
// derived column names. Both must be present for an interval to be drawn.
func (p *PredictionTable) Bounds(bc BoundColumns) (lower, upper []float64, ok bool) {
	lower, lowerOk := p.Columns[bc.Lower]
	upper, upperOk := p.Columns[bc.Upper]
	if !lowerOk || !upperOk {
		return nil, nil, false
	}
	return lower, upper, true
}

// ComponentTable holds the decomposed forecast components keyed by
// component name, e.g. trend, seasonality, and regression, optionally with
// percentile bound columns named <component>_<percentile>.
type ComponentTable struct {
	T       []time.Time          `json:"time"`
	Columns map[string][]float64 `json:"columns"`
}

// NewComponentTable creates an empty component table over the given
// timestamps. Components are attached with SetColumn.
func NewComponentTable(t []time.Time) (*ComponentTable, error) {
	if len(t) == 0 {
		return nil, ErrNoRows
	}
	if err := checkOrdered(t); err != nil {
		return nil, err
	}
	tSeries := make([]time.Time, len(t))
	copy(tSeries, t)
	return &ComponentTable{
		T:       tSeries,
		Columns: make(map[string][]float64),
	}, nil
}

func (c *ComponentTable) Len() int {
	if c == nil {
		return 0
	}
	return len(c.T)
}

func (c *ComponentTable) Validate() error {
	if c.Len() == 0 {
		return ErrNoRows
	}
	for name, col := range c.Columns {
		if err := checkLen(c.T, col); err != nil {
			return fmt.Errorf("column %q, %w", name, err)
		}
	}
	return checkOrdered(c.T)
}

func (c *ComponentTable) SetColumn(name string, vals []float64) error {
	if err := checkLen(c.T, vals); err != nil {
		return fmt.Errorf("column %q, %w", name, err)
	}
	if c.Columns == nil {
		c.Columns = make(map[string][]float64)
	}
	col := make([]float64, len(vals))
	copy(col, vals)
	c.Columns[name] = col
	return nil
}

func (c *ComponentTable) Column(name string) ([]float64, bool) {
	col, exists := c.Columns[name]
	return col, exists
}

// Bounds returns the lower and upper bound columns for a component if both
// are present.
func (c *ComponentTable) Bounds(bc BoundColumns) (lower, upper []float64, ok bool) {
	lower, lowerOk := c.Columns[bc.Lower]
	upper, upperOk := c.Columns[bc.Upper]
	if !lowerOk || !upperOk {
		return nil, nil, false
	}
	return lower, upper, true
}

// Present filters the requested component names down to those present as
// columns, preserving the requested order. Missing names are silently
// dropped.
func (c *ComponentTable) Present(names []string) []string {
	return lo.Filter(names, func(name string, _ int) bool {
		_, exists := c.Columns[name]
		return exists
	})
}

// MetricTable holds one metric value per (model, horizon) row for model
// comparison. Rows for a model are expected in horizon order.
type MetricTable struct {
	Model   []string  `json:"model"`
	Horizon []string  `json:"horizon"`
	Value   []float64 `json:"value"`
}

func (m *MetricTable) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Model)
}

func (m *MetricTable) Validate() error {
	if m.Len() == 0 {
		return ErrNoRows
	}
	if len(m.Horizon) != len(m.Model) || len(m.Value) != len(m.Model) {
		return fmt.Errorf(
			"model, horizon, and value columns have lengths %d, %d, %d, %w",
			len(m.Model), len(m.Horizon), len(m.Value), ErrLenMismatch,
		)
	}
	return nil
}

// Models returns the distinct model identifiers in order of appearance.
func (m *MetricTable) Models() []string {
	return lo.Uniq(m.Model)
}

// Horizons returns the distinct horizon labels in order of appearance.
func (m *MetricTable) Horizons() []string {
	return lo.Uniq(m.Horizon)
}

// ModelValues returns the metric values for one model in row order.
func (m *MetricTable) ModelValues(model string) []float64 {
	vals := make([]float64, 0, len(m.Value))
	for i, name := range m.Model {
		if name == model {
			vals = append(vals, m.Value[i])
		}
	}
	return vals
}

// BacktestTable holds actual vs predicted rows for all splits produced by
// a backtesting run. Rows belonging to one split are expected to be
// contiguous and in timestamp order. TrainingRow marks in-sample rows.
type BacktestTable struct {
	SplitKey    []string    `json:"split_key"`
	T           []time.Time `json:"time"`
	Actual      []float64   `json:"actual"`
	Prediction  []float64   `json:"prediction"`
	TrainingRow []bool      `json:"training_row"`
}

func (b *BacktestTable) Len() int {
	if b == nil {
		return 0
	}
	return len(b.SplitKey)
}

func (b *BacktestTable) Validate() error {
	if b.Len() == 0 {
		return ErrNoRows
	}
	n := len(b.SplitKey)
	if len(b.T) != n || len(b.Actual) != n || len(b.Prediction) != n || len(b.TrainingRow) != n {
		return fmt.Errorf(
			"split, time, actual, prediction, and training columns have lengths %d, %d, %d, %d, %d, %w",
			len(b.SplitKey), len(b.T), len(b.Actual), len(b.Prediction), len(b.TrainingRow),
			ErrLenMismatch,
		)
	}
	return nil
}

// Append adds one row to the table.
func (b *BacktestTable) Append(key string, t time.Time, actual, prediction float64, training bool) {
	b.SplitKey = append(b.SplitKey, key)
	b.T = append(b.T, t)
	b.Actual = append(b.Actual, actual)
	b.Prediction = append(b.Prediction, prediction)
	b.TrainingRow = append(b.TrainingRow, training)
}

// SplitKeys returns the distinct split keys in order of appearance.
func (b *BacktestTable) SplitKeys() []string {
	return lo.Uniq(b.SplitKey)
}

// Split extracts the rows of one split as an independent frame.
func (b *BacktestTable) Split(key string) (*BacktestSplit, error) {
	s := &BacktestSplit{Key: key}
	for i, rowKey := range b.SplitKey {
		if rowKey != key {
			continue
		}
		s.T = append(s.T, b.T[i])
		s.Actual = append(s.Actual, b.Actual[i])
		s.Prediction = append(s.Prediction, b.Prediction[i])
		s.TrainingRow = append(s.TrainingRow, b.TrainingRow[i])
	}
	if len(s.T) == 0 {
		return nil, fmt.Errorf("%q, %w", key, ErrUnknownSplit)
	}
	return s, nil
}

// BacktestSplit is the actual vs predicted frame of a single split.
type BacktestSplit struct {
	Key         string
	T           []time.Time
	Actual      []float64
	Prediction  []float64
	TrainingRow []bool
}

func (s *BacktestSplit) Len() int {
	return len(s.T)
}

// Holdout returns the actual and predicted values of the non-training
// rows, the rows a backtest metric is scored over.
func (s *BacktestSplit) Holdout() (actual, prediction []float64) {
	for i, training := range s.TrainingRow {
		if training {
			continue
		}
		actual = append(actual, s.Actual[i])
		prediction = append(prediction, s.Prediction[i])
	}
	return actual, prediction
}

// CutoverTime returns the earliest timestamp among non-training rows,
// marking where held-out data starts. ok is false if every row is a
// training row.
func (s *BacktestSplit) CutoverTime() (time.Time, bool) {
	var cutover time.Time
	var found bool
	for i, training := range s.TrainingRow {
		if training {
			continue
		}
		if !found || s.T[i].Before(cutover) {
			cutover = s.T[i]
		}
		found = true
	}
	return cutover, found
}
