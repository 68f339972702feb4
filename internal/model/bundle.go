// Package model loads the pre-trained profit models used by the
// recommender. Models are exported from the training notebooks as a YAML
// bundle of coefficients, or served remotely.
package model

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lox/cropdss/internal/recommend"
)

type Bundle struct {
	Features   []string            `yaml:"features"`
	Scaler     *Scaler             `yaml:"scaler,omitempty"`
	Regression *LinearRegressor    `yaml:"regression,omitempty"`
	Classifier *LogisticClassifier `yaml:"classifier,omitempty"`
	Labels     LabelEncoder        `yaml:"labels"`
	Remote     *RemoteConfig       `yaml:"remote,omitempty"`
}

type RemoteConfig struct {
	Endpoint       string        `yaml:"endpoint"`
	RegressionName string        `yaml:"regression_model"`
	ClassifierName string        `yaml:"classifier_model"`
	Timeout        time.Duration `yaml:"timeout"`
}

func LoadBundle(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model bundle: %w", err)
	}
	return ParseBundle(data)
}

func ParseBundle(data []byte) (*Bundle, error) {
	var b Bundle
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse model bundle: %w", err)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// Validate fails fast when the bundle was trained on a different feature
// layout than the recommender supplies.
func (b *Bundle) Validate() error {
	want := recommend.FeatureColumns
	if len(b.Features) != len(want) {
		return fmt.Errorf("bundle has %d features, need %d %v: %w", len(b.Features), len(want), want, recommend.ErrFeatureMismatch)
	}
	for i, f := range b.Features {
		if f != want[i] {
			return fmt.Errorf("feature %d is %q, need %q: %w", i, f, want[i], recommend.ErrFeatureMismatch)
		}
	}
	if len(b.Labels) == 0 {
		return fmt.Errorf("bundle has no profit category labels")
	}

	n := len(want)
	if b.Scaler != nil {
		if err := b.Scaler.validate(n); err != nil {
			return err
		}
	}

	if b.Remote != nil {
		if b.Remote.Endpoint == "" {
			return fmt.Errorf("remote model endpoint is empty")
		}
		return nil
	}

	if b.Regression == nil || b.Classifier == nil {
		return fmt.Errorf("bundle needs regression and classifier sections or a remote endpoint")
	}
	if err := b.Regression.validate(n); err != nil {
		return err
	}
	if err := b.Classifier.validate(n); err != nil {
		return err
	}
	if len(b.Classifier.Intercepts) != len(b.Labels) {
		return fmt.Errorf("classifier has %d classes but %d labels: %w", len(b.Classifier.Intercepts), len(b.Labels), recommend.ErrFeatureMismatch)
	}
	return nil
}

// Models wires the bundle into the recommender's predictor interfaces.
func (b *Bundle) Models() recommend.Models {
	if b.Remote != nil {
		client := NewRemoteClient(*b.Remote, b.Scaler)
		return recommend.Models{
			Regressor:  client.Regressor(),
			Classifier: client.Classifier(),
			Labels:     b.Labels,
		}
	}

	b.Regression.scaler = b.Scaler
	b.Classifier.scaler = b.Scaler
	return recommend.Models{
		Regressor:  b.Regression,
		Classifier: b.Classifier,
		Labels:     b.Labels,
	}
}
