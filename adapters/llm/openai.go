package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"advocate/internal/errors"
	"advocate/models"
	"advocate/ports"
)

// OpenAIClient implements ports.LLMClient over the chat completions API
type OpenAIClient struct {
	APIKey        string
	BaseURL       string
	ModelName     string
	SystemContext string
	Timeout       time.Duration
	Temperature   float64
	MaxTokens     int

	httpClient *http.Client
}

func (c *OpenAIClient) Provider() string { return models.ProviderOpenAI }

func (c *OpenAIClient) Model() string { return c.ModelName }

// Complete sends one system + one user message and returns the first choice.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (*ports.LLMResponse, error) {
	if strings.TrimSpace(c.ModelName) == "" {
		return nil, errors.ConfigInvalid("missing model")
	}
	maxTokens := c.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	type msg struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	type reqBody struct {
		Model       string  `json:"model"`
		Messages    []msg   `json:"messages"`
		Temperature float64 `json:"temperature,omitempty"`
		MaxTokens   int     `json:"max_tokens,omitempty"`
	}

	messages := make([]msg, 0, 2)
	if c.SystemContext != "" {
		messages = append(messages, msg{Role: "system", Content: c.SystemContext})
	}
	messages = append(messages, msg{Role: "user", Content: prompt})

	raw, err := json.Marshal(reqBody{
		Model:       c.ModelName,
		Messages:    messages,
		Temperature: c.Temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := strings.TrimRight(c.BaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	client := c.httpClient
	if client == nil {
		client = &http.Client{Timeout: timeoutOrDefault(c.Timeout)}
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, errors.ExternalServiceError(models.ProviderOpenAI, fmt.Errorf("openai request failed: %w", err))
	}
	defer resp.Body.Close()

	respRaw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.ExternalServiceError(models.ProviderOpenAI, fmt.Errorf("read response: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.ExternalServiceError(models.ProviderOpenAI, fmt.Errorf("openai http %d: %s", resp.StatusCode, string(respRaw)))
	}

	var decoded struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Usage *struct {
			PromptTokens     int `json:"prompt_tokens"`
			CompletionTokens int `json:"completion_tokens"`
			TotalTokens      int `json:"total_tokens"`
		} `json:"usage"`
	}
	if err := json.Unmarshal(respRaw, &decoded); err != nil {
		return nil, errors.ExternalServiceError(models.ProviderOpenAI, fmt.Errorf("unmarshal response: %w", err))
	}
	if len(decoded.Choices) == 0 {
		return nil, errors.ExternalServiceError(models.ProviderOpenAI, fmt.Errorf("openai response missing choices"))
	}

	out := &ports.LLMResponse{Content: decoded.Choices[0].Message.Content}
	if decoded.Usage != nil {
		out.Usage = &ports.UsageData{
			PromptTokens:     decoded.Usage.PromptTokens,
			CompletionTokens: decoded.Usage.CompletionTokens,
			TotalTokens:      decoded.Usage.TotalTokens,
			Model:            c.ModelName,
			Provider:         models.ProviderOpenAI,
		}
	}
	return out, nil
}
