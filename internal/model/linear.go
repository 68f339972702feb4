package model

import (
	"context"
	"fmt"

	"github.com/lox/cropdss/internal/recommend"
)

// Scaler standardizes features as (x - mean) / scale before prediction.
type Scaler struct {
	Mean  []float64 `yaml:"mean"`
	Scale []float64 `yaml:"scale"`
}

func (s *Scaler) validate(n int) error {
	if len(s.Mean) != n || len(s.Scale) != n {
		return fmt.Errorf("scaler has %d means and %d scales for %d features: %w", len(s.Mean), len(s.Scale), n, recommend.ErrFeatureMismatch)
	}
	for i, v := range s.Scale {
		if v == 0 {
			return fmt.Errorf("scaler scale %d is zero", i)
		}
	}
	return nil
}

func (s *Scaler) transform(row []float64) []float64 {
	if s == nil {
		return row
	}
	out := make([]float64, len(row))
	for i, v := range row {
		out[i] = (v - s.Mean[i]) / s.Scale[i]
	}
	return out
}

// LinearRegressor predicts expected profit as intercept + coefficients·x.
type LinearRegressor struct {
	Intercept    float64   `yaml:"intercept"`
	Coefficients []float64 `yaml:"coefficients"`

	scaler *Scaler
}

func (m *LinearRegressor) validate(n int) error {
	if len(m.Coefficients) != n {
		return fmt.Errorf("regression has %d coefficients for %d features: %w", len(m.Coefficients), n, recommend.ErrFeatureMismatch)
	}
	return nil
}

func (m *LinearRegressor) PredictProfit(ctx context.Context, x [][]float64) ([]float64, error) {
	out := make([]float64, len(x))
	for i, row := range x {
		if len(row) != len(m.Coefficients) {
			return nil, fmt.Errorf("row %d has %d features, need %d: %w", i, len(row), len(m.Coefficients), recommend.ErrFeatureMismatch)
		}
		out[i] = m.Intercept + dot(m.Coefficients, m.scaler.transform(row))
	}
	return out, nil
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
