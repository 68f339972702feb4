package ingest

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/lox/cropdss/internal/models"
)

const (
	FlagCropMissing      = "crop_missing"
	FlagTempOutOfRange   = "temp_out_of_range"
	FlagRainfallNegative = "rainfall_negative"
	FlagYieldNegative    = "yield_negative"
	FlagCostNegative     = "cost_negative"
	FlagAreaNonPositive  = "area_non_positive"
	FlagRiskLevelInvalid = "risk_level_invalid"
	FlagNonFiniteValue   = "non_finite_value"
)

// ValidateCropRecord returns quality flags for a parsed row. A row with any
// flag is rejected from the dataset.
func ValidateCropRecord(r *models.CropRecord) []string {
	var flags []string

	if strings.TrimSpace(r.Crop) == "" {
		flags = append(flags, FlagCropMissing)
	}

	for _, v := range []float64{r.TemperatureC, r.RainfallMM, r.Yield, r.TotalCostINR, r.AreaHectare} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return append(flags, FlagNonFiniteValue)
		}
	}

	if r.TemperatureC < -10 || r.TemperatureC > 60 {
		flags = append(flags, FlagTempOutOfRange)
	}

	if r.RainfallMM < 0 {
		flags = append(flags, FlagRainfallNegative)
	}

	if r.Yield < 0 {
		flags = append(flags, FlagYieldNegative)
	}

	if r.TotalCostINR < 0 {
		flags = append(flags, FlagCostNegative)
	}

	if r.AreaHectare <= 0 {
		flags = append(flags, FlagAreaNonPositive)
	}

	if !r.RiskLevel.Valid() {
		flags = append(flags, FlagRiskLevelInvalid)
	}

	return flags
}

func QualityFlagsToJSON(flags []string) string {
	if len(flags) == 0 {
		return ""
	}
	b, _ := json.Marshal(flags)
	return string(b)
}
