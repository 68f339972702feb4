package insight

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/lox/cropdss/internal/recommend"
)

const systemPrompt = `You are an agronomy advisor for smallholder farmers in India.
Explain crop recommendations in plain language in at most 120 words.
Mention the climate match, the expected profit in rupees and the risk level.
Do not invent numbers that are not given.`

// BuildPrompt describes a recommendation result for the narrator.
func BuildPrompt(res *recommend.Result) string {
	q := res.Query
	var b strings.Builder
	fmt.Fprintf(&b, "Farm conditions: temperature %.1f°C, rainfall %.0f mm, area %.1f hectares, risk preference %s.\n",
		q.Temperature, q.Rainfall, q.Area, q.RiskPreference)
	fmt.Fprintf(&b, "%d crop records were scored, %d matched the risk preference.\n", res.Candidates, res.Eligible)
	b.WriteString("Recommended crops, best first:\n")
	for i, c := range res.Crops {
		fmt.Fprintf(&b, "%d. %s: suitability %.2f (temperature match %.2f, rainfall match %.2f, yield %.2f, profit %.2f), expected profit ₹%.0f, profit category %s, risk %s.\n",
			i+1, c.Crop, c.SuitabilityScore, c.TempScore, c.RainScore, c.YieldScore, c.ProfitScore, c.ExpectedProfit, c.ProfitCategory, c.RiskLevel)
	}
	return b.String()
}

// CacheKey identifies a result by its query and ranked crops.
func CacheKey(res *recommend.Result) string {
	q := res.Query
	crops := make([]string, len(res.Crops))
	for i, c := range res.Crops {
		crops[i] = fmt.Sprintf("%s:%.4f", c.Crop, c.SuitabilityScore)
	}
	data := fmt.Sprintf("%.2f_%.2f_%.2f_%s_%s", q.Temperature, q.Rainfall, q.Area, q.RiskPreference, strings.Join(crops, ","))
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
