package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lox/cropdss/internal/metrics"
	"github.com/lox/cropdss/internal/models"
)

var (
	ErrEmptyDataset = errors.New("crop dataset is empty")
	ErrNoCandidates = errors.New("no crops match the risk preference")
)

// Result is the ranked outcome of one request.
type Result struct {
	Query      models.UserQuery
	Crops      []models.AugmentedRecord
	Candidates int      // rows scored
	Eligible   int      // rows left after the risk filter
	Degenerate []string // columns normalized with the flat-column policy
}

// Best returns the headline recommendation.
func (r *Result) Best() (models.AugmentedRecord, bool) {
	if r == nil || len(r.Crops) == 0 {
		return models.AugmentedRecord{}, false
	}
	return r.Crops[0], true
}

type Recommender struct {
	models Models
	logger *zap.Logger
	limit  int
}

func NewRecommender(m Models, logger *zap.Logger) *Recommender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recommender{models: m, logger: logger, limit: TopCrops}
}

// Recommend scores the whole base dataset against q and returns the best
// distinct crops allowed by the risk preference. base is only read.
// ErrNoCandidates is returned when the risk filter leaves nothing.
func (r *Recommender) Recommend(ctx context.Context, base []models.CropRecord, q models.UserQuery) (*Result, error) {
	start := time.Now()
	risk := string(q.RiskPreference)

	res, err := r.recommend(ctx, base, q)
	metrics.PipelineLatency.Observe(time.Since(start).Seconds())
	switch {
	case errors.Is(err, ErrNoCandidates):
		metrics.RecommendationsTotal.WithLabelValues(risk, "empty").Inc()
	case err != nil:
		metrics.RecommendationsTotal.WithLabelValues(risk, "error").Inc()
	default:
		metrics.RecommendationsTotal.WithLabelValues(risk, "ok").Inc()
		metrics.EligibleCandidates.WithLabelValues(risk).Observe(float64(res.Eligible))
	}
	return res, err
}

func (r *Recommender) recommend(ctx context.Context, base []models.CropRecord, q models.UserQuery) (*Result, error) {
	if len(base) == 0 {
		return nil, ErrEmptyDataset
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	augmented, err := Augment(ctx, base, r.models)
	if err != nil {
		return nil, fmt.Errorf("augment: %w", err)
	}

	degenerate := Score(augmented, q)
	for _, col := range degenerate {
		metrics.DegenerateColumns.WithLabelValues(col).Inc()
		r.logger.Warn("degenerate column normalized to constant",
			zap.String("column", col),
			zap.Float64("value", degenerateValue),
			zap.Int("rows", len(augmented)))
	}

	eligible := FilterByRisk(augmented, q.RiskPreference)
	res := &Result{
		Query:      q,
		Candidates: len(augmented),
		Eligible:   len(eligible),
		Degenerate: degenerate,
	}
	if len(eligible) == 0 {
		return res, fmt.Errorf("risk %s: %w", q.RiskPreference, ErrNoCandidates)
	}

	res.Crops = SelectTop(eligible, r.limit)

	r.logger.Debug("recommendation computed",
		zap.Float64("temperature", q.Temperature),
		zap.Float64("rainfall", q.Rainfall),
		zap.Float64("area", q.Area),
		zap.String("risk", string(q.RiskPreference)),
		zap.Int("candidates", res.Candidates),
		zap.Int("eligible", res.Eligible),
		zap.Int("selected", len(res.Crops)))
	return res, nil
}
