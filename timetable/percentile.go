package timetable

import (
	"errors"
	"fmt"
)

var (
	ErrPercentilePairSize = errors.New("percentile pair must contain exactly two elements")
	ErrPercentileRange    = errors.New("percentile must be between 0 and 100")
	ErrPercentileOrder    = errors.New("lower percentile must be less than upper percentile")
)

// DefaultPercentiles is the percentile pair used when none is provided.
var DefaultPercentiles = []int{5, 95}

// BoundColumns names the lower and upper bound columns derived from a
// percentile pair, e.g. prediction_5 and prediction_95.
type BoundColumns struct {
	Lower string
	Upper string
}

// ValidatePercentiles checks that a percentile pair has exactly two
// in-range elements in increasing order.
func ValidatePercentiles(percentiles []int) error {
	if len(percentiles) != 2 {
		return fmt.Errorf("got %d elements, %w", len(percentiles), ErrPercentilePairSize)
	}
	for _, p := range percentiles {
		if p < 0 || p > 100 {
			return fmt.Errorf("got %d, %w", p, ErrPercentileRange)
		}
	}
	if percentiles[0] >= percentiles[1] {
		return fmt.Errorf("got (%d, %d), %w", percentiles[0], percentiles[1], ErrPercentileOrder)
	}
	return nil
}

// NewBoundColumns derives bound column names for a prefix from a
// percentile pair.
func NewBoundColumns(prefix string, percentiles []int) (BoundColumns, error) {
	if err := ValidatePercentiles(percentiles); err != nil {
		return BoundColumns{}, err
	}
	return BoundColumns{
		Lower: fmt.Sprintf("%s_%d", prefix, percentiles[0]),
		Upper: fmt.Sprintf("%s_%d", prefix, percentiles[1]),
	}, nil
}
