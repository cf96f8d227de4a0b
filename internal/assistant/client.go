package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrEmptyResponse indicates the engine answered with no usable text.
var ErrEmptyResponse = errors.New("engine returned empty response")

// Options tune one generation call.
type Options struct {
	SystemInstruction string
	Temperature       float64
	// ThinkingBudget caps the engine's internal reasoning tokens. Zero lets
	// the engine decide.
	ThinkingBudget int
}

// Client generates text from a prompt. The terminal ships an HTTP
// implementation; tests substitute fakes.
type Client interface {
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
}

// HTTPClient speaks the generateContent REST dialect.
type HTTPClient struct {
	endpoint string
	apiKey   string
	model    string
	http     *http.Client
}

// NewHTTPClient builds a client for one model behind the given endpoint.
func NewHTTPClient(endpoint, apiKey, model string) *HTTPClient {
	return &HTTPClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generateRequest struct {
	Contents          []generateContent `json:"contents"`
	SystemInstruction *generateContent  `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type generationConfig struct {
	Temperature    float64         `json:"temperature,omitempty"`
	ThinkingConfig *thinkingConfig `json:"thinkingConfig,omitempty"`
}

type thinkingConfig struct {
	ThinkingBudget int `json:"thinkingBudget"`
}

type generateResponse struct {
	Candidates []struct {
		Content generateContent `json:"content"`
	} `json:"candidates"`
}

// Generate runs one completion round-trip.
func (c *HTTPClient) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	reqBody := generateRequest{
		Contents: []generateContent{{Parts: []generatePart{{Text: prompt}}}},
	}
	if opts.SystemInstruction != "" {
		reqBody.SystemInstruction = &generateContent{Parts: []generatePart{{Text: opts.SystemInstruction}}}
	}
	if opts.Temperature != 0 || opts.ThinkingBudget != 0 {
		cfg := &generationConfig{Temperature: opts.Temperature}
		if opts.ThinkingBudget != 0 {
			cfg.ThinkingConfig = &thinkingConfig{ThinkingBudget: opts.ThinkingBudget}
		}
		reqBody.GenerationConfig = cfg
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.endpoint, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("call engine: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("engine status %d", resp.StatusCode)
	}

	var decoded generateResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	for _, cand := range decoded.Candidates {
		for _, part := range cand.Content.Parts {
			if part.Text != "" {
				return part.Text, nil
			}
		}
	}
	return "", ErrEmptyResponse
}
