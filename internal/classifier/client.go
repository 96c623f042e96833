// Package classifier talks to the external fake-news classifier service.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/infomate/veracity/internal/model"
)

// bodyLimit bounds the body prefix sent for inference. The model truncates
// at its own token window anyway; this keeps request payloads small.
const bodyLimit = 2000

// Predictor is the classifier contract the signal layer depends on.
type Predictor interface {
	Predict(ctx context.Context, title, body string) (*model.Prediction, error)
}

// Client is an HTTP client for the classifier inference endpoint.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

var _ Predictor = (*Client)(nil)

// New creates a reusable classifier client. An empty endpoint yields a
// client whose Predict always fails, which the signal layer degrades to a
// neutral default.
func New(cfg model.ClassifierConfig) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		http:     &http.Client{Timeout: cfg.Timeout},
	}
}

// Predict sends "title [SEP] body" for inference and returns the class
// probabilities mapped to a prediction record.
func (c *Client) Predict(ctx context.Context, title, body string) (*model.Prediction, error) {
	if c.endpoint == "" {
		return nil, fmt.Errorf("classifier endpoint not configured")
	}

	runes := []rune(body)
	if len(runes) > bodyLimit {
		body = string(runes[:bodyLimit])
	}

	payload := map[string]any{
		"text": title + " [SEP] " + body,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/predict", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var out struct {
		ProbabilityTrue float64 `json:"probability_true"`
		ProbabilityFake float64 `json:"probability_fake"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	prediction := "True"
	if out.ProbabilityFake > out.ProbabilityTrue {
		prediction = "Fake"
	}

	return &model.Prediction{
		Prediction:     prediction,
		TruePercentage: round2(out.ProbabilityTrue * 100),
		FakePercentage: round2(out.ProbabilityFake * 100),
	}, nil
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
