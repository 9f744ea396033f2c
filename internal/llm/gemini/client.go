// Package gemini implements llm.Generator on Google's Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"elevate-backend/internal/llm"
	"elevate-backend/internal/shared/metrics"
	"elevate-backend/internal/shared/telemetry"
)

// Client owns the Gemini connection; Models share it.
type Client struct {
	client *genai.Client
}

// New connects to Gemini with apiKey.
func New(ctx context.Context, apiKey string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	c, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{client: c}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Model is a Generator bound to one model name.
type Model struct {
	name        string
	model       *genai.GenerativeModel
	temperature float32
	json        bool
}

// Option tunes a Model.
type Option func(*Model)

// WithJSON asks the model for an application/json response.
func WithJSON() Option {
	return func(m *Model) { m.json = true }
}

// WithTemperature overrides the default temperature of 0.2.
func WithTemperature(t float32) Option {
	return func(m *Model) { m.temperature = t }
}

// Model returns a Generator for name.
func (c *Client) Model(name string, opts ...Option) *Model {
	m := &Model{name: name, temperature: 0.2}
	for _, opt := range opts {
		opt(m)
	}
	gm := c.client.GenerativeModel(name)
	gm.SetTemperature(m.temperature)
	if m.json {
		gm.ResponseMIMEType = "application/json"
	}
	m.model = gm
	return m
}

// Generate sends prompt and returns the concatenated text parts of the first candidate.
func (m *Model) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	resp, err := m.model.GenerateContent(ctx, genai.Text(prompt))
	metrics.ObserveAILatencyMs(float64(time.Since(start).Milliseconds()))
	if err != nil {
		return "", fmt.Errorf("gemini %s: %w", m.name, err)
	}
	logUsage(m.name, resp)
	return textFromResponse(resp)
}

var errEmptyResponse = errors.New("gemini returned no text")

func textFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errEmptyResponse
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return "", errEmptyResponse
	}
	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", errEmptyResponse
	}
	return strings.TrimSpace(strings.Join(parts, "")), nil
}

func logUsage(model string, resp *genai.GenerateContentResponse) {
	if resp == nil || resp.UsageMetadata == nil {
		return
	}
	telemetry.Info("llm.usage", map[string]any{
		"model":             model,
		"prompt_tokens":     resp.UsageMetadata.PromptTokenCount,
		"completion_tokens": resp.UsageMetadata.CandidatesTokenCount,
		"total_tokens":      resp.UsageMetadata.TotalTokenCount,
	})
}

var _ llm.Generator = (*Model)(nil)
