package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/lox/cropdss/internal/models"
	"github.com/lox/cropdss/internal/recommend"
)

func TestFormatProfit(t *testing.T) {
	tests := []struct {
		in        float64
		want      string
		wantWhole string
	}{
		{52000.5, "52,000.50", "₹52,001"},
		{1234567.891, "1,234,567.89", "₹1,234,568"},
		{999, "999.00", "₹999"},
	}

	for _, tt := range tests {
		if got := formatProfit(tt.in); got != tt.want {
			t.Errorf("formatProfit(%v) = %q, want %q", tt.in, got, tt.want)
		}
		if got := formatProfitWhole(tt.in); got != tt.wantWhole {
			t.Errorf("formatProfitWhole(%v) = %q, want %q", tt.in, got, tt.wantWhole)
		}
	}
}

func TestPrintRecommendations(t *testing.T) {
	res := &recommend.Result{
		Query: models.DefaultQuery(),
		Crops: []models.AugmentedRecord{
			{CropRecord: models.CropRecord{Crop: "Rice", RiskLevel: models.RiskLow}, ExpectedProfit: 52000, ProfitCategory: "High", SuitabilityScore: 0.91},
			{CropRecord: models.CropRecord{Crop: "Wheat", RiskLevel: models.RiskLow}, ExpectedProfit: 31000, ProfitCategory: "Medium", SuitabilityScore: 0.72},
		},
		Degenerate: []string{recommend.ColumnYield},
	}

	var buf bytes.Buffer
	printRecommendations(&buf, res)
	out := buf.String()

	for _, want := range []string{"Top Recommended Crops", "Rice", "52,000.00", "Best Crop:        Rice", "₹52,000", "Risk Level:       Low", "Yield had no spread"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Rice") > strings.Index(out, "Wheat") {
		t.Error("Rice should be listed before Wheat")
	}
}

func TestPrintNoCandidates(t *testing.T) {
	var buf bytes.Buffer
	printNoCandidates(&buf, models.DefaultQuery())
	if !strings.Contains(buf.String(), "Low risk preference") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestPrintHistory(t *testing.T) {
	var buf bytes.Buffer
	printHistory(&buf, nil)
	if !strings.Contains(buf.String(), "No recommendations") {
		t.Errorf("empty history output = %q", buf.String())
	}

	buf.Reset()
	printHistory(&buf, []models.RecommendationLog{
		{RequestedAt: time.Now().Add(-time.Hour), Temperature: 22, Rainfall: 140, Area: 9, RiskPreference: models.RiskLow, BestCrop: "Rice", ExpectedProfit: 1500, Crops: []string{"Rice", "Wheat"}},
		{RequestedAt: time.Now(), Temperature: 40, Rainfall: 100, Area: 1, RiskPreference: models.RiskLow},
	})
	out := buf.String()
	for _, want := range []string{"Rice, Wheat", "1,500.00", "hour ago"} {
		if !strings.Contains(out, want) {
			t.Errorf("history missing %q:\n%s", want, out)
		}
	}
}

func TestRecommendCmdQuery(t *testing.T) {
	tests := []struct {
		name    string
		cmd     RecommendCmd
		wantErr bool
	}{
		{"defaults", RecommendCmd{Temperature: 22, Rainfall: 140, Area: 9, Risk: "Low"}, false},
		{"lowercase risk", RecommendCmd{Temperature: 22, Rainfall: 140, Area: 9, Risk: "high"}, false},
		{"too hot", RecommendCmd{Temperature: 46, Rainfall: 140, Area: 9, Risk: "Low"}, true},
		{"too dry", RecommendCmd{Temperature: 22, Rainfall: 99, Area: 9, Risk: "Low"}, true},
		{"too large", RecommendCmd{Temperature: 22, Rainfall: 140, Area: 20.5, Risk: "Low"}, true},
		{"bad risk", RecommendCmd{Temperature: 22, Rainfall: 140, Area: 9, Risk: "None"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cmd.query()
			if (err != nil) != tt.wantErr {
				t.Errorf("query() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
