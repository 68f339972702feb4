package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/lox/cropdss/internal/models"
)

func TestFeatures_ColumnOrder(t *testing.T) {
	rec := models.CropRecord{TemperatureC: 1, RainfallMM: 2, Yield: 3, TotalCostINR: 4, AreaHectare: 5}
	x := Features([]models.CropRecord{rec})
	if len(x) != 1 || len(x[0]) != len(FeatureColumns) {
		t.Fatalf("shape = %dx%d, want 1x%d", len(x), len(x[0]), len(FeatureColumns))
	}
	for i, v := range x[0] {
		if v != float64(i+1) {
			t.Errorf("feature %s = %v, want %v", FeatureColumns[i], v, i+1)
		}
	}
}

func TestAugment(t *testing.T) {
	base := []models.CropRecord{
		crop("Rice", 25, 1200, 12, 300, models.RiskLow),
		crop("Millet", 30, 400, 4, 100, models.RiskHigh),
	}

	got, err := Augment(context.Background(), base, testModels())
	if err != nil {
		t.Fatalf("Augment: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ExpectedProfit != 900 {
		t.Errorf("Rice ExpectedProfit = %v, want 900", got[0].ExpectedProfit)
	}
	if got[0].ProfitCategory != "High Profit" {
		t.Errorf("Rice ProfitCategory = %q, want High Profit", got[0].ProfitCategory)
	}
	if got[1].ProfitCategory != "Low Profit" {
		t.Errorf("Millet ProfitCategory = %q, want Low Profit", got[1].ProfitCategory)
	}
	if got[1].CropRecord != base[1] {
		t.Errorf("CropRecord not carried over: %+v", got[1].CropRecord)
	}
}

func TestAugment_PredictionCountMismatch(t *testing.T) {
	m := testModels()
	m.Regressor = &profitRegressor{short: true}
	base := []models.CropRecord{
		crop("Rice", 25, 1200, 12, 300, models.RiskLow),
		crop("Millet", 30, 400, 4, 100, models.RiskHigh),
	}

	_, err := Augment(context.Background(), base, m)
	if !errors.Is(err, ErrFeatureMismatch) {
		t.Fatalf("err = %v, want ErrFeatureMismatch", err)
	}
}

func TestAugment_UnknownClass(t *testing.T) {
	m := testModels()
	m.Labels = labels{"Only"}
	base := []models.CropRecord{crop("Rice", 25, 1200, 12, 300, models.RiskLow)}

	_, err := Augment(context.Background(), base, m)
	if !errors.Is(err, ErrUnknownClass) {
		t.Fatalf("err = %v, want ErrUnknownClass", err)
	}
}

func TestAugment_MissingModel(t *testing.T) {
	_, err := Augment(context.Background(), nil, Models{Regressor: &profitRegressor{}})
	if err == nil {
		t.Fatal("expected error for missing classifier")
	}
}
