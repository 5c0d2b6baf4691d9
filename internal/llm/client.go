// Package llm is a small Anthropic Messages API client used to phrase guest
// answers.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultAPIURL      = "https://api.anthropic.com/v1/messages"
	defaultModel       = "claude-sonnet-4-20250514"
	defaultMaxTokens   = 500
	defaultTemperature = 0.7
	anthropicVersion   = "2023-06-01"
)

var (
	ErrNotConfigured       = errors.New("anthropic API key not configured")
	ErrInsufficientCredits = errors.New("anthropic credit balance too low")
)

type Config struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
}

// Client implements the completion collaborator on top of Claude.
type Client struct {
	apiKey      string
	model       string
	apiURL      string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
}

// NewClient creates a new Claude API client
func NewClient(cfg Config) *Client {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	temperature := cfg.Temperature
	if temperature <= 0 {
		temperature = defaultTemperature
	}

	return &Client{
		apiKey:      cfg.APIKey,
		model:       model,
		apiURL:      defaultAPIURL,
		maxTokens:   maxTokens,
		temperature: temperature,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// IsConfigured returns true if the client has an API key
func (c *Client) IsConfigured() bool {
	return c != nil && c.apiKey != ""
}

type apiRequest struct {
	Model       string       `json:"model"`
	MaxTokens   int          `json:"max_tokens"`
	Temperature float64      `json:"temperature"`
	System      string       `json:"system,omitempty"`
	Messages    []apiMessage `json:"messages"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type apiResponse struct {
	ID      string `json:"id"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Error      *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type apiErrorEnvelope struct {
	Type  string `json:"type"`
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
	RequestID string `json:"request_id"`
}

// Complete sends one system+user exchange and returns the concatenated text
// blocks of the reply.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if !c.IsConfigured() {
		return "", ErrNotConfigured
	}

	reqBody, err := json.Marshal(apiRequest{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		System:      systemPrompt,
		Messages: []apiMessage{
			{Role: "user", Content: userPrompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", formatAPIError(resp.StatusCode, body)
	}

	var apiResp apiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if apiResp.Error != nil {
		return "", fmt.Errorf("API error: %s - %s", apiResp.Error.Type, apiResp.Error.Message)
	}

	var sb strings.Builder
	for _, block := range apiResp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	// an empty result is left to the caller to judge
	return strings.TrimSpace(sb.String()), nil
}

// formatAPIError turns a non-200 reply into an error, keeping the request id
// when Anthropic sends one.
func formatAPIError(status int, body []byte) error {
	var env apiErrorEnvelope
	if err := json.Unmarshal(body, &env); err != nil || env.Error.Message == "" {
		return fmt.Errorf("API error (status %d): %s", status, strings.TrimSpace(string(body)))
	}

	if strings.Contains(strings.ToLower(env.Error.Message), "credit balance") {
		return fmt.Errorf("%w: add credits at https://console.anthropic.com/settings/plans (request_id=%s)",
			ErrInsufficientCredits, env.RequestID)
	}

	return fmt.Errorf("API error (status %d): %s: %s (request_id=%s)",
		status, env.Error.Type, env.Error.Message, env.RequestID)
}
