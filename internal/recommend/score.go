package recommend

import "github.com/lox/cropdss/internal/models"

const (
	weightTemp   = 0.25
	weightRain   = 0.25
	weightYield  = 0.25
	weightProfit = 0.25
)

const (
	ColumnExpectedProfit = "Expected_Profit"
	ColumnYield          = "Yield"
)

// Score fills the similarity, normalized and composite scores of every
// record in place. Normalization spans the whole slice, so it must run
// before any risk filtering. The names of degenerate columns are returned.
func Score(records []models.AugmentedRecord, q models.UserQuery) []string {
	profits := make([]float64, len(records))
	yields := make([]float64, len(records))
	for i, r := range records {
		profits[i] = r.ExpectedProfit
		yields[i] = r.Yield
	}

	var degenerate []string
	profitScores, flat := Normalize(profits)
	if flat {
		degenerate = append(degenerate, ColumnExpectedProfit)
	}
	yieldScores, flat := Normalize(yields)
	if flat {
		degenerate = append(degenerate, ColumnYield)
	}

	for i := range records {
		r := &records[i]
		r.TempScore = TempScore(q.Temperature, r.TemperatureC)
		r.RainScore = RainScore(q.Rainfall, r.RainfallMM)
		r.ProfitScore = profitScores[i]
		r.YieldScore = yieldScores[i]
		r.SuitabilityScore = Suitability(r.TempScore, r.RainScore, r.YieldScore, r.ProfitScore)
	}
	return degenerate
}

// Suitability is the equal-weight composite of the four component scores.
func Suitability(temp, rain, yield, profit float64) float64 {
	return weightTemp*temp + weightRain*rain + weightYield*yield + weightProfit*profit
}
