package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cropdss_recommendations_total",
			Help: "Total recommendation requests by risk preference and outcome",
		},
		[]string{"risk", "outcome"},
	)

	PipelineLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cropdss_pipeline_latency_seconds",
			Help:    "End-to-end scoring pipeline latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	EligibleCandidates = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cropdss_eligible_candidates",
			Help:    "Rows remaining after the risk filter",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
		[]string{"risk"},
	)

	DegenerateColumns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cropdss_degenerate_columns_total",
			Help: "Normalized columns whose values were all equal",
		},
		[]string{"column"},
	)

	ModelCallLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cropdss_model_call_latency_seconds",
			Help:    "Remote model prediction latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"model", "status"},
	)

	RowsImported = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cropdss_rows_imported_total",
			Help: "Crop dataset rows imported by result",
		},
		[]string{"result"},
	)

	InsightRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cropdss_insight_requests_total",
			Help: "Narrative insight lookups by source",
		},
		[]string{"source"},
	)
)

// WriteTextfile dumps the default registry in the text exposition format,
// for pickup by the node exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
