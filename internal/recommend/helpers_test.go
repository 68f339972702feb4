package recommend

import (
	"context"
	"fmt"

	"github.com/lox/cropdss/internal/models"
)

// profitRegressor predicts yield*100 - cost.
type profitRegressor struct {
	calls int
	short bool
}

func (p *profitRegressor) PredictProfit(_ context.Context, x [][]float64) ([]float64, error) {
	p.calls++
	out := make([]float64, len(x))
	for i, row := range x {
		out[i] = row[2]*100 - row[3]
	}
	if p.short && len(out) > 0 {
		out = out[:len(out)-1]
	}
	return out, nil
}

// yieldClassifier assigns class 1 to rows yielding at least 10, else 0.
type yieldClassifier struct{}

func (yieldClassifier) PredictClass(_ context.Context, x [][]float64) ([]int, error) {
	out := make([]int, len(x))
	for i, row := range x {
		if row[2] >= 10 {
			out[i] = 1
		}
	}
	return out, nil
}

type labels []string

func (l labels) Decode(class int) (string, error) {
	if class < 0 || class >= len(l) {
		return "", fmt.Errorf("class %d: %w", class, ErrUnknownClass)
	}
	return l[class], nil
}

func testModels() Models {
	return Models{
		Regressor:  &profitRegressor{},
		Classifier: yieldClassifier{},
		Labels:     labels{"Low Profit", "High Profit"},
	}
}

func crop(name string, temp, rain, yield, cost float64, risk models.RiskLevel) models.CropRecord {
	return models.CropRecord{
		Crop:         name,
		TemperatureC: temp,
		RainfallMM:   rain,
		Yield:        yield,
		TotalCostINR: cost,
		AreaHectare:  2,
		RiskLevel:    risk,
	}
}

func scored(name string, score float64, risk models.RiskLevel) models.AugmentedRecord {
	return models.AugmentedRecord{
		CropRecord:       models.CropRecord{Crop: name, RiskLevel: risk},
		SuitabilityScore: score,
	}
}

func cropNames(records []models.AugmentedRecord) []string {
	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.Crop
	}
	return names
}
