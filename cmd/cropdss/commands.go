package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/lox/cropdss/internal/ingest"
	"github.com/lox/cropdss/internal/insight"
	"github.com/lox/cropdss/internal/model"
	"github.com/lox/cropdss/internal/models"
	"github.com/lox/cropdss/internal/recommend"
)

type ImportCmd struct {
	Source string `arg:"" help:"CSV file path or ftp:// URL of the merged crop dataset."`
	Force  bool   `help:"Import even if the source is unchanged since the last import."`
}

func (c *ImportCmd) Run(ctx context.Context, app *App) error {
	importer := ingest.NewImporter(app.Store, ingest.NewFTPFetcher(), app.Logger)
	summary, err := importer.Import(ctx, c.Source, c.Force)
	if err != nil {
		return err
	}
	if summary.Skipped {
		fmt.Printf("Dataset unchanged (import %d, %d rows); use --force to reload.\n", summary.ImportID, summary.Rows)
		return nil
	}
	fmt.Printf("Imported %d rows from %s (import %d, %d rejected).\n", summary.Rows, summary.Source, summary.ImportID, len(summary.Rejected))
	return nil
}

type RecommendCmd struct {
	Temperature float64 `help:"Temperature in °C (10-45)." default:"22"`
	Rainfall    float64 `help:"Rainfall in mm (100-3000)." default:"140"`
	Area        float64 `help:"Farm area in hectares (1-20). Recorded but not used for scoring." default:"9"`
	Risk        string  `help:"Risk preference." default:"Low" enum:"Low,Medium,High"`

	Model string `help:"Path to the model bundle." default:"models/bundle.yaml" env:"CROPDSS_MODEL"`

	Explain      bool          `help:"Add a narrative explanation generated by an OpenAI model."`
	OpenAIKey    string        `name:"openai-api-key" help:"OpenAI API key." env:"OPENAI_API_KEY"`
	OpenAIModel  string        `name:"openai-model" help:"OpenAI chat model for --explain." env:"CROPDSS_OPENAI_MODEL"`
	InsightCache string        `help:"Directory for cached narratives." default:"data/insights" env:"CROPDSS_INSIGHT_CACHE"`
	InsightTTL   time.Duration `name:"insight-ttl" help:"How long cached narratives stay valid." default:"168h"`

	NoHistory bool `help:"Do not record this request in the history."`
}

func (c *RecommendCmd) query() (models.UserQuery, error) {
	risk, err := models.ParseRiskLevel(c.Risk)
	if err != nil {
		return models.UserQuery{}, err
	}
	q := models.UserQuery{
		Temperature:    c.Temperature,
		Rainfall:       c.Rainfall,
		Area:           c.Area,
		RiskPreference: risk,
	}
	return q, q.Validate()
}

func (c *RecommendCmd) Run(ctx context.Context, app *App) error {
	q, err := c.query()
	if err != nil {
		return err
	}

	bundle, err := model.LoadBundle(c.Model)
	if err != nil {
		return err
	}

	base, err := app.Store.LoadCropRecords()
	if err != nil {
		return fmt.Errorf("load crop records: %w", err)
	}

	app.Logger.Debug("area is recorded but does not affect scoring", zap.Float64("area", q.Area))

	recommender := recommend.NewRecommender(bundle.Models(), app.Logger.Named("recommend"))
	res, err := recommender.Recommend(ctx, base, q)
	if errors.Is(err, recommend.ErrEmptyDataset) {
		return errors.New("no crop dataset loaded; run `cropdss import <csv>` first")
	}
	if err != nil && !errors.Is(err, recommend.ErrNoCandidates) {
		return err
	}

	if !c.NoHistory {
		c.record(app, q, res)
	}

	if errors.Is(err, recommend.ErrNoCandidates) {
		printNoCandidates(os.Stdout, q)
		return nil
	}

	printRecommendations(os.Stdout, res)

	if c.Explain {
		text, err := c.explain(ctx, app, res)
		if err != nil {
			app.Logger.Warn("narrative insight unavailable", zap.Error(err))
			return nil
		}
		printNarrative(os.Stdout, text)
	}
	return nil
}

func (c *RecommendCmd) record(app *App, q models.UserQuery, res *recommend.Result) {
	entry := models.RecommendationLog{
		RequestedAt:    time.Now(),
		Temperature:    q.Temperature,
		Rainfall:       q.Rainfall,
		Area:           q.Area,
		RiskPreference: q.RiskPreference,
	}
	if best, ok := res.Best(); ok {
		entry.BestCrop = best.Crop
		entry.ExpectedProfit = best.ExpectedProfit
		for _, r := range res.Crops {
			entry.Crops = append(entry.Crops, r.Crop)
		}
	}
	if _, err := app.Store.InsertRecommendation(entry); err != nil {
		app.Logger.Warn("record recommendation", zap.Error(err))
	}
}

func (c *RecommendCmd) explain(ctx context.Context, app *App, res *recommend.Result) (string, error) {
	gen, err := insight.NewGenerator(c.OpenAIKey, c.OpenAIModel)
	if err != nil {
		return "", err
	}
	cache, err := insight.NewCache(c.InsightCache, c.InsightTTL)
	if err != nil {
		app.Logger.Warn("insight cache disabled", zap.Error(err))
		cache = nil
	}
	return insight.NewService(gen, cache, app.Logger).Explain(ctx, res)
}

type HistoryCmd struct {
	Limit int `help:"Number of requests to show." default:"20"`
}

func (c *HistoryCmd) Run(app *App) error {
	logs, err := app.Store.ListRecommendations(c.Limit)
	if err != nil {
		return fmt.Errorf("list recommendations: %w", err)
	}
	printHistory(os.Stdout, logs)
	return nil
}
