package main

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/lox/cropdss/internal/models"
	"github.com/lox/cropdss/internal/recommend"
)

// formatProfit renders rupees with thousands separators and two decimals.
func formatProfit(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}

// formatProfitWhole renders rupees rounded to whole units.
func formatProfitWhole(v float64) string {
	return "₹" + humanize.Commaf(math.Round(v))
}

func printRecommendations(w io.Writer, res *recommend.Result) {
	fmt.Fprintln(w, "Top Recommended Crops")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tCrop\tExpected_Profit\tRisk_Level\tProfit_Category\tSuitability")
	for i, r := range res.Crops {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%.3f\n", i+1, r.Crop, formatProfit(r.ExpectedProfit), r.RiskLevel, r.ProfitCategory, r.SuitabilityScore)
	}
	tw.Flush()

	best, ok := res.Best()
	if !ok {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Decision Insight")
	fmt.Fprintf(w, "  Best Crop:        %s\n", best.Crop)
	fmt.Fprintf(w, "  Expected Profit:  %s\n", formatProfitWhole(best.ExpectedProfit))
	fmt.Fprintf(w, "  Risk Level:       %s\n", best.RiskLevel)
	if len(res.Degenerate) > 0 {
		fmt.Fprintf(w, "  Note: %s had no spread across the dataset and scored neutrally.\n", strings.Join(res.Degenerate, ", "))
	}
}

func printNoCandidates(w io.Writer, q models.UserQuery) {
	fmt.Fprintf(w, "No crops in the dataset match a %s risk preference. Try a higher risk tolerance.\n", q.RiskPreference)
}

func printNarrative(w io.Writer, text string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Advisor Notes")
	for _, line := range strings.Split(text, "\n") {
		fmt.Fprintf(w, "  %s\n", line)
	}
}

func printHistory(w io.Writer, logs []models.RecommendationLog) {
	if len(logs) == 0 {
		fmt.Fprintln(w, "No recommendations recorded yet.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "When\tTemp\tRain\tArea\tRisk\tBest\tExpected_Profit\tCrops")
	for _, l := range logs {
		best, profit := "-", "-"
		if l.BestCrop != "" {
			best = l.BestCrop
			profit = formatProfit(l.ExpectedProfit)
		}
		fmt.Fprintf(tw, "%s\t%.1f\t%.0f\t%.1f\t%s\t%s\t%s\t%s\n",
			humanize.Time(l.RequestedAt), l.Temperature, l.Rainfall, l.Area, l.RiskPreference, best, profit, strings.Join(l.Crops, ", "))
	}
	tw.Flush()
}
