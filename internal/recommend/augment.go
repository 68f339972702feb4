package recommend

import (
	"context"
	"errors"
	"fmt"

	"github.com/lox/cropdss/internal/models"
)

var (
	ErrFeatureMismatch = errors.New("model feature mismatch")
	ErrUnknownClass    = errors.New("unknown profit class")
)

// FeatureColumns is the column order every model is trained on.
var FeatureColumns = []string{"Temperature_C", "Rainfall_mm", "Yield", "Total_Cost_INR", "Area_Hectare"}

// Regressor predicts the expected profit of each feature row.
type Regressor interface {
	PredictProfit(ctx context.Context, features [][]float64) ([]float64, error)
}

// Classifier predicts a profit class index for each feature row.
type Classifier interface {
	PredictClass(ctx context.Context, features [][]float64) ([]int, error)
}

// LabelDecoder maps a class index back to its category label.
type LabelDecoder interface {
	Decode(class int) (string, error)
}

type Models struct {
	Regressor  Regressor
	Classifier Classifier
	Labels     LabelDecoder
}

func (m Models) validate() error {
	if m.Regressor == nil || m.Classifier == nil || m.Labels == nil {
		return errors.New("regressor, classifier and label decoder are all required")
	}
	return nil
}

// Features builds the model input matrix in FeatureColumns order.
func Features(records []models.CropRecord) [][]float64 {
	x := make([][]float64, len(records))
	for i, r := range records {
		x[i] = []float64{r.TemperatureC, r.RainfallMM, r.Yield, r.TotalCostINR, r.AreaHectare}
	}
	return x
}

// Augment annotates every record with the predicted profit and profit
// category. The base records are copied, never modified.
func Augment(ctx context.Context, records []models.CropRecord, m Models) ([]models.AugmentedRecord, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}

	x := Features(records)

	profits, err := m.Regressor.PredictProfit(ctx, x)
	if err != nil {
		return nil, fmt.Errorf("predict profit: %w", err)
	}
	if len(profits) != len(records) {
		return nil, fmt.Errorf("predict profit: got %d predictions for %d rows: %w", len(profits), len(records), ErrFeatureMismatch)
	}

	classes, err := m.Classifier.PredictClass(ctx, x)
	if err != nil {
		return nil, fmt.Errorf("predict class: %w", err)
	}
	if len(classes) != len(records) {
		return nil, fmt.Errorf("predict class: got %d predictions for %d rows: %w", len(classes), len(records), ErrFeatureMismatch)
	}

	out := make([]models.AugmentedRecord, len(records))
	for i, r := range records {
		category, err := m.Labels.Decode(classes[i])
		if err != nil {
			return nil, fmt.Errorf("decode class for row %d: %w", i, err)
		}
		out[i] = models.AugmentedRecord{
			CropRecord:     r,
			ExpectedProfit: profits[i],
			ProfitCategory: category,
		}
	}
	return out, nil
}
