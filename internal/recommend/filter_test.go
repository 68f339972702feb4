package recommend

import (
	"reflect"
	"testing"

	"github.com/lox/cropdss/internal/models"
)

func riskSample() []models.AugmentedRecord {
	return []models.AugmentedRecord{
		scored("Rice", 0.8, models.RiskLow),
		scored("Cotton", 0.7, models.RiskHigh),
		scored("Maize", 0.6, models.RiskMedium),
		scored("Wheat", 0.5, models.RiskLow),
		scored("Sugarcane", 0.4, models.RiskHigh),
	}
}

func TestFilterByRisk(t *testing.T) {
	tests := []struct {
		pref models.RiskLevel
		want []string
	}{
		{models.RiskLow, []string{"Rice", "Wheat"}},
		{models.RiskMedium, []string{"Rice", "Maize", "Wheat"}},
		{models.RiskHigh, []string{"Rice", "Cotton", "Maize", "Wheat", "Sugarcane"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.pref), func(t *testing.T) {
			got := cropNames(FilterByRisk(riskSample(), tt.pref))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FilterByRisk(%s) = %v, want %v", tt.pref, got, tt.want)
			}
		})
	}
}

func TestFilterByRisk_Monotonic(t *testing.T) {
	all := riskSample()
	all = append(all, scored("Unknown", 0.3, models.RiskLevel("Extreme")))

	low := FilterByRisk(all, models.RiskLow)
	medium := FilterByRisk(all, models.RiskMedium)
	high := FilterByRisk(all, models.RiskHigh)

	contains := func(set []models.AugmentedRecord, crop string) bool {
		for _, r := range set {
			if r.Crop == crop {
				return true
			}
		}
		return false
	}
	for _, r := range low {
		if !contains(medium, r.Crop) {
			t.Errorf("%s in Low but not Medium", r.Crop)
		}
	}
	for _, r := range medium {
		if !contains(high, r.Crop) {
			t.Errorf("%s in Medium but not High", r.Crop)
		}
	}
	if len(high) != len(all) {
		t.Errorf("High kept %d of %d rows", len(high), len(all))
	}
}

func TestFilterByRisk_DoesNotAlias(t *testing.T) {
	all := riskSample()
	out := FilterByRisk(all, models.RiskHigh)
	out[0].Crop = "changed"
	if all[0].Crop != "Rice" {
		t.Error("High filter returned a slice sharing the input array")
	}
}
