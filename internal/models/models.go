package models

import (
	"fmt"
	"strings"
	"time"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// ParseRiskLevel accepts the level names case-insensitively.
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return RiskLow, nil
	case "medium":
		return RiskMedium, nil
	case "high":
		return RiskHigh, nil
	}
	return "", fmt.Errorf("unknown risk level %q", s)
}

// Rank orders levels Low < Medium < High. Unknown levels rank 0.
func (r RiskLevel) Rank() int {
	switch r {
	case RiskLow:
		return 1
	case RiskMedium:
		return 2
	case RiskHigh:
		return 3
	}
	return 0
}

func (r RiskLevel) Valid() bool {
	return r.Rank() > 0
}

// CropRecord is one crop-growing-condition observation from the dataset.
// Crop is not unique across rows.
type CropRecord struct {
	ID           int64
	Crop         string
	TemperatureC float64
	RainfallMM   float64
	Yield        float64
	TotalCostINR float64
	AreaHectare  float64
	RiskLevel    RiskLevel
}

// AugmentedRecord is a CropRecord with the model outputs and scores derived
// for a single request.
type AugmentedRecord struct {
	CropRecord
	ExpectedProfit   float64
	ProfitCategory   string
	TempScore        float64
	RainScore        float64
	ProfitScore      float64
	YieldScore       float64
	SuitabilityScore float64
}

const (
	MinTemperature = 10.0
	MaxTemperature = 45.0
	MinRainfall    = 100.0
	MaxRainfall    = 3000.0
	MinArea        = 1.0
	MaxArea        = 20.0
)

type UserQuery struct {
	Temperature    float64
	Rainfall       float64
	Area           float64 // collected but not used by scoring
	RiskPreference RiskLevel
}

// DefaultQuery mirrors the initial values of the input form.
func DefaultQuery() UserQuery {
	return UserQuery{
		Temperature:    22,
		Rainfall:       140,
		Area:           9.0,
		RiskPreference: RiskLow,
	}
}

func (q UserQuery) Validate() error {
	if q.Temperature < MinTemperature || q.Temperature > MaxTemperature {
		return fmt.Errorf("temperature %.1f outside %.0f-%.0f", q.Temperature, MinTemperature, MaxTemperature)
	}
	if q.Rainfall < MinRainfall || q.Rainfall > MaxRainfall {
		return fmt.Errorf("rainfall %.1f outside %.0f-%.0f", q.Rainfall, MinRainfall, MaxRainfall)
	}
	if q.Area < MinArea || q.Area > MaxArea {
		return fmt.Errorf("area %.2f outside %.1f-%.1f", q.Area, MinArea, MaxArea)
	}
	if !q.RiskPreference.Valid() {
		return fmt.Errorf("invalid risk preference %q", q.RiskPreference)
	}
	return nil
}

// RecommendationLog is one persisted request and its headline outcome.
type RecommendationLog struct {
	ID             int64
	RequestedAt    time.Time
	Temperature    float64
	Rainfall       float64
	Area           float64
	RiskPreference RiskLevel
	BestCrop       string // empty when nothing survived the risk filter
	ExpectedProfit float64
	Crops          []string
}
