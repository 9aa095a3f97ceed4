package fraud

import (
	"fmt"
	"math"
)

// StandardScaler centers each column to zero mean and unit population variance.
// Constant columns transform to zero.
type StandardScaler struct {
	mean  []float64
	scale []float64
}

// Fit computes per-column mean and standard deviation.
func (s *StandardScaler) Fit(x [][]float64) error {
	if len(x) == 0 {
		return fmt.Errorf("scaler: empty input")
	}
	cols := len(x[0])
	mean := make([]float64, cols)
	scale := make([]float64, cols)

	for _, row := range x {
		if len(row) != cols {
			return fmt.Errorf("scaler: ragged input, expected %d columns got %d", cols, len(row))
		}
		for j, v := range row {
			mean[j] += v
		}
	}
	n := float64(len(x))
	for j := range mean {
		mean[j] /= n
	}
	for _, row := range x {
		for j, v := range row {
			d := v - mean[j]
			scale[j] += d * d
		}
	}
	for j := range scale {
		std := math.Sqrt(scale[j] / n)
		if std < 1e-12 {
			std = 1
		}
		scale[j] = std
	}

	s.mean, s.scale = mean, scale
	return nil
}

// Transform applies the fitted scaling to x.
func (s *StandardScaler) Transform(x [][]float64) ([][]float64, error) {
	if s.mean == nil {
		return nil, fmt.Errorf("scaler: not fitted")
	}
	out := make([][]float64, len(x))
	for i, row := range x {
		if len(row) != len(s.mean) {
			return nil, fmt.Errorf("scaler: expected %d columns got %d", len(s.mean), len(row))
		}
		scaled := make([]float64, len(row))
		for j, v := range row {
			scaled[j] = (v - s.mean[j]) / s.scale[j]
		}
		out[i] = scaled
	}
	return out, nil
}

// FitTransform fits on x and returns the scaled copy.
func (s *StandardScaler) FitTransform(x [][]float64) ([][]float64, error) {
	if err := s.Fit(x); err != nil {
		return nil, err
	}
	return s.Transform(x)
}
