package recommend

import (
	"sort"

	"github.com/lox/cropdss/internal/models"
)

const TopCrops = 3

// SelectTop returns at most n records with distinct crops, best first.
// Among rows of the same crop the highest scoring wins; equal scores keep
// the input order.
func SelectTop(records []models.AugmentedRecord, n int) []models.AugmentedRecord {
	sorted := make([]models.AugmentedRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SuitabilityScore > sorted[j].SuitabilityScore
	})

	seen := make(map[string]bool)
	var out []models.AugmentedRecord
	for _, r := range sorted {
		if len(out) >= n {
			break
		}
		if seen[r.Crop] {
			continue
		}
		seen[r.Crop] = true
		out = append(out, r)
	}
	return out
}
