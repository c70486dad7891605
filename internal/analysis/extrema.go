package analysis

import "errors"

// ErrEmptySeries is returned when an extremum is requested over no samples.
var ErrEmptySeries = errors.New("analysis: empty series")

// Min returns the smallest value in xs.
func Min(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, ErrEmptySeries
	}
	min := xs[0]
	for _, v := range xs[1:] {
		if v < min {
			min = v
		}
	}
	return min, nil
}

// Max returns the largest value in xs.
func Max(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, ErrEmptySeries
	}
	max := xs[0]
	for _, v := range xs[1:] {
		if v > max {
			max = v
		}
	}
	return max, nil
}
