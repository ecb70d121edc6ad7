// Package llm is a chat-completions client for OpenRouter's
// OpenAI-compatible API.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"uqbar/config"
)

// Client talks to an OpenAI-compatible chat completions endpoint.
type Client struct {
	apiKey  string
	baseURL string
	referer string
	model   string
	http    *http.Client

	maxRetries int
	retryBase  time.Duration
}

// New builds a client from configuration. The model may be an alias from
// the Models table or a full provider/model identifier.
func New(cfg *config.Config) (*Client, error) {
	if cfg.OpenRouterAPIKey == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY is not set")
	}
	return &Client{
		apiKey:     cfg.OpenRouterAPIKey,
		baseURL:    cfg.OpenRouterBaseURL,
		referer:    cfg.OpenRouterReferer,
		model:      ResolveModel(cfg.Model),
		http:       &http.Client{Timeout: 5 * time.Minute},
		maxRetries: config.LLMMaxRetries,
		retryBase:  config.LLMRetryBase,
	}, nil
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// Complete sends a single user prompt and returns the assistant content.
// Transient failures (5xx, 429, network) are retried with exponential
// backoff.
func (c *Client) Complete(ctx context.Context, userPrompt string) (string, error) {
	payload := chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: userPrompt}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := c.retryBase * time.Duration(1<<(attempt-1))
			log.Warn("retrying llm request", "attempt", attempt, "backoff", backoff, "err", lastErr)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		content, retryable, err := c.once(ctx, body)
		if err == nil {
			return content, nil
		}
		lastErr = err
		if !retryable {
			return "", err
		}
	}
	return "", fmt.Errorf("llm request failed after %d retries: %w", c.maxRetries, lastErr)
}

func (c *Client) once(ctx context.Context, body []byte) (content string, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", false, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	// OpenRouter requires a referer identifying the calling app.
	req.Header.Set("HTTP-Referer", c.referer)
	req.Header.Set("X-Title", "uqbar")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return "", true, fmt.Errorf("llm endpoint status %d", resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var parsed map[string]interface{}
		_ = json.NewDecoder(resp.Body).Decode(&parsed)
		return "", false, fmt.Errorf("llm endpoint status %d: %v", resp.StatusCode, parsed)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", true, fmt.Errorf("decode chat response: %w", err)
	}
	if parsed.Error != nil {
		return "", true, fmt.Errorf("llm error %d: %s", parsed.Error.Code, parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", true, fmt.Errorf("empty choices in chat response")
	}
	return parsed.Choices[0].Message.Content, false, nil
}

// Model returns the resolved model identifier in use.
func (c *Client) Model() string { return c.model }
