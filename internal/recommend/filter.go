package recommend

import "github.com/lox/cropdss/internal/models"

// FilterByRisk keeps records whose risk level does not exceed the
// preference: Low keeps Low, Medium keeps Low and Medium, High keeps all.
func FilterByRisk(records []models.AugmentedRecord, pref models.RiskLevel) []models.AugmentedRecord {
	if pref == models.RiskHigh {
		out := make([]models.AugmentedRecord, len(records))
		copy(out, records)
		return out
	}

	var out []models.AugmentedRecord
	for _, r := range records {
		if r.RiskLevel.Valid() && r.RiskLevel.Rank() <= pref.Rank() {
			out = append(out, r)
		}
	}
	return out
}
