package model

import (
	"context"
	"fmt"

	"github.com/lox/cropdss/internal/recommend"
)

// LogisticClassifier is a multinomial logistic regression. The predicted
// class is the one with the largest decision value, which is also the
// largest softmax probability.
type LogisticClassifier struct {
	Intercepts   []float64   `yaml:"intercepts"`
	Coefficients [][]float64 `yaml:"coefficients"`

	scaler *Scaler
}

func (m *LogisticClassifier) validate(n int) error {
	if len(m.Intercepts) == 0 {
		return fmt.Errorf("classifier has no classes")
	}
	if len(m.Coefficients) != len(m.Intercepts) {
		return fmt.Errorf("classifier has %d coefficient rows for %d classes: %w", len(m.Coefficients), len(m.Intercepts), recommend.ErrFeatureMismatch)
	}
	for k, c := range m.Coefficients {
		if len(c) != n {
			return fmt.Errorf("classifier class %d has %d coefficients for %d features: %w", k, len(c), n, recommend.ErrFeatureMismatch)
		}
	}
	return nil
}

func (m *LogisticClassifier) PredictClass(ctx context.Context, x [][]float64) ([]int, error) {
	out := make([]int, len(x))
	for i, row := range x {
		if len(row) != len(m.Coefficients[0]) {
			return nil, fmt.Errorf("row %d has %d features, need %d: %w", i, len(row), len(m.Coefficients[0]), recommend.ErrFeatureMismatch)
		}
		row = m.scaler.transform(row)
		best, bestScore := 0, 0.0
		for k, coef := range m.Coefficients {
			score := m.Intercepts[k] + dot(coef, row)
			if k == 0 || score > bestScore {
				best, bestScore = k, score
			}
		}
		out[i] = best
	}
	return out, nil
}
