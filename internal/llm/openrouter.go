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

	"vmops/internal/retry"
)

const (
	openRouterBaseURL      = "https://openrouter.ai/api/v1"
	openRouterDefaultModel = "anthropic/claude-3-haiku:beta"

	// maxTokens caps response size to reduce timeout risk.
	maxTokens = 4000

	// maxResponseBytes bounds how much of a response body is read.
	maxResponseBytes = 10 * 1024 * 1024
)

// errIncomplete marks a response that parsed but appears truncated, so
// the retry loop treats it like a transient failure.
var errIncomplete = errors.New("llm: response appears incomplete")

// OpenRouterClient talks to the OpenRouter chat completions API.
type OpenRouterClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewOpenRouterClient creates a client for the given key and model.
// An empty model uses the default.
func NewOpenRouterClient(apiKey, model string) *OpenRouterClient {
	if model == "" {
		model = openRouterDefaultModel
	}
	return &OpenRouterClient{
		apiKey:     apiKey,
		model:      model,
		baseURL:    openRouterBaseURL,
		httpClient: &http.Client{},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Query sends the prompt and returns the model's reply. Transport
// failures, rate limits, server errors, and truncated replies are
// retried up to the configured attempt budget; everything else fails
// immediately.
func (c *OpenRouterClient) Query(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("llm: api key not configured")
	}

	config := retry.Config{
		MaxAttempts: 3,
		BaseDelay:   2 * time.Second,
		MaxDelay:    8 * time.Second,
	}

	shouldRetry := func(err error) bool {
		return errors.Is(err, errIncomplete) || retry.IsRetryableHTTP(err)
	}

	var answer string
	err := retry.Do(ctx, config, shouldRetry, func() error {
		text, err := c.complete(ctx, prompt)
		if err != nil {
			return err
		}
		if looksIncomplete(text) {
			return errIncomplete
		}
		answer = text
		return nil
	})
	if err != nil {
		return "", err
	}
	return answer, nil
}

// complete issues a single chat completions request.
func (c *OpenRouterClient) complete(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model:     c.model,
		Messages:  []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens: maxTokens,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("llm: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("llm: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("llm: failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &retry.StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("llm: failed to parse response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("llm: api error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("llm: no completion returned")
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
