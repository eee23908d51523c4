package timetable

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// ReadObservationTable decodes a JSON encoded observation table and
// validates it.
func ReadObservationTable(r io.Reader) (*ObservationTable, error) {
	var o ObservationTable
	if err := json.NewDecoder(r).Decode(&o); err != nil {
		return nil, fmt.Errorf("unable to decode observation table, %w", err)
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return &o, nil
}

// WriteJSON encodes the observation table as JSON.
func (o *ObservationTable) WriteJSON(w io.Writer) error {
	return json.NewEncoder(w).Encode(o)
}

// ReadPredictionTable decodes a JSON encoded prediction table and
// validates it.
func ReadPredictionTable(r io.Reader) (*PredictionTable, error) {
	var p PredictionTable
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("unable to decode prediction table, %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// WriteJSON encodes the prediction table as JSON.
func (p *PredictionTable) WriteJSON(w io.Writer) error {
	return json.NewEncoder(w).Encode(p)
}

// ReadComponentTable decodes a JSON encoded component table and
// validates it.
func ReadComponentTable(r io.Reader) (*ComponentTable, error) {
	var c ComponentTable
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("unable to decode component table, %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// WriteJSON encodes the component table as JSON.
func (c *ComponentTable) WriteJSON(w io.Writer) error {
	return json.NewEncoder(w).Encode(c)
}

// ReadMetricTable decodes a JSON encoded metric table and validates it.
func ReadMetricTable(r io.Reader) (*MetricTable, error) {
	var m MetricTable
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("unable to decode metric table, %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// WriteJSON encodes the metric table as JSON.
func (m *MetricTable) WriteJSON(w io.Writer) error {
	return json.NewEncoder(w).Encode(m)
}

// ReadBacktestTable decodes a JSON encoded backtest result table and
// validates it.
func ReadBacktestTable(r io.Reader) (*BacktestTable, error) {
	var b BacktestTable
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return nil, fmt.Errorf("unable to decode backtest table, %w", err)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// WriteJSON encodes the backtest table as JSON.
func (b *BacktestTable) WriteJSON(w io.Writer) error {
	return json.NewEncoder(w).Encode(b)
}
