package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/lox/cropdss/internal/metrics"
	"github.com/lox/cropdss/internal/recommend"
)

const (
	defaultTimeout        = 30 * time.Second
	defaultRegressionName = "profit"
	defaultClassifierName = "profit_category"
)

// RemoteClient calls a model server speaking the TensorFlow Serving REST
// predict protocol: POST {"instances": [...]} to
// /v1/models/<name>:predict, answered with {"predictions": [...]}.
// Calls are not retried.
type RemoteClient struct {
	endpoint       string
	regressionName string
	classifierName string
	scaler         *Scaler
	client         *http.Client
}

func NewRemoteClient(cfg RemoteConfig, scaler *Scaler) *RemoteClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	c := &RemoteClient{
		endpoint:       strings.TrimRight(cfg.Endpoint, "/"),
		regressionName: cfg.RegressionName,
		classifierName: cfg.ClassifierName,
		scaler:         scaler,
		client:         &http.Client{Timeout: timeout},
	}
	if c.regressionName == "" {
		c.regressionName = defaultRegressionName
	}
	if c.classifierName == "" {
		c.classifierName = defaultClassifierName
	}
	return c
}

type predictRequest struct {
	Instances [][]float64 `json:"instances"`
}

type predictResponse struct {
	Predictions []float64 `json:"predictions"`
	Error       string    `json:"error,omitempty"`
}

func (c *RemoteClient) predict(ctx context.Context, name string, x [][]float64) ([]float64, error) {
	instances := make([][]float64, len(x))
	for i, row := range x {
		instances[i] = c.scaler.transform(row)
	}
	body, err := json.Marshal(predictRequest{Instances: instances})
	if err != nil {
		return nil, fmt.Errorf("marshal instances: %w", err)
	}

	url := fmt.Sprintf("%s/v1/models/%s:predict", c.endpoint, name)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		metrics.ModelCallLatency.WithLabelValues(name, "error").Observe(time.Since(start).Seconds())
		return nil, fmt.Errorf("predict %s: %w", name, err)
	}
	defer resp.Body.Close()
	metrics.ModelCallLatency.WithLabelValues(name, fmt.Sprint(resp.StatusCode)).Observe(time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("predict %s: status %d: %s", name, resp.StatusCode, string(b))
	}

	var data predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode %s predictions: %w", name, err)
	}
	if data.Error != "" {
		return nil, fmt.Errorf("predict %s: %s", name, data.Error)
	}
	if len(data.Predictions) != len(x) {
		return nil, fmt.Errorf("predict %s: got %d predictions for %d rows: %w", name, len(data.Predictions), len(x), recommend.ErrFeatureMismatch)
	}
	return data.Predictions, nil
}

func (c *RemoteClient) Regressor() recommend.Regressor {
	return remoteRegressor{c}
}

func (c *RemoteClient) Classifier() recommend.Classifier {
	return remoteClassifier{c}
}

type remoteRegressor struct{ c *RemoteClient }

func (r remoteRegressor) PredictProfit(ctx context.Context, x [][]float64) ([]float64, error) {
	return r.c.predict(ctx, r.c.regressionName, x)
}

type remoteClassifier struct{ c *RemoteClient }

func (r remoteClassifier) PredictClass(ctx context.Context, x [][]float64) ([]int, error) {
	preds, err := r.c.predict(ctx, r.c.classifierName, x)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(preds))
	for i, p := range preds {
		out[i] = int(math.Round(p))
	}
	return out, nil
}
