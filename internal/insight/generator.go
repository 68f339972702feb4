// Package insight turns a recommendation into a short narrative for the
// farmer, using an OpenAI chat model.
package insight

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"

	"github.com/lox/cropdss/internal/metrics"
	"github.com/lox/cropdss/internal/recommend"
)

const defaultModel = openai.ChatModelGPT4oMini

// Narrator writes the narrative for a result.
type Narrator interface {
	Narrate(ctx context.Context, res *recommend.Result) (string, error)
}

// Generator narrates results with the OpenAI chat completions API.
type Generator struct {
	client openai.Client
	model  openai.ChatModel
}

func NewGenerator(apiKey, model string) (*Generator, error) {
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY not set")
	}
	g := &Generator{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  defaultModel,
	}
	if model != "" {
		g.model = openai.ChatModel(model)
	}
	return g, nil
}

func (g *Generator) Narrate(ctx context.Context, res *recommend.Result) (string, error) {
	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: g.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(BuildPrompt(res)),
		},
		MaxCompletionTokens: openai.Int(400),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no completion returned")
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New("empty completion returned")
	}
	return text, nil
}

// Service serves narratives from the cache, generating on a miss.
type Service struct {
	narrator Narrator
	cache    *Cache
	logger   *zap.Logger
}

func NewService(n Narrator, cache *Cache, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{narrator: n, cache: cache, logger: logger.Named("insight")}
}

func (s *Service) Explain(ctx context.Context, res *recommend.Result) (string, error) {
	if len(res.Crops) == 0 {
		return "", recommend.ErrNoCandidates
	}

	key := CacheKey(res)
	if s.cache != nil {
		if text, ok := s.cache.Get(key); ok {
			metrics.InsightRequests.WithLabelValues("cache").Inc()
			return text, nil
		}
	}

	text, err := s.narrator.Narrate(ctx, res)
	if err != nil {
		metrics.InsightRequests.WithLabelValues("error").Inc()
		return "", err
	}
	metrics.InsightRequests.WithLabelValues("generated").Inc()

	if s.cache != nil {
		if err := s.cache.Set(key, text); err != nil {
			s.logger.Warn("cache insight", zap.Error(err))
		}
	}
	return text, nil
}
