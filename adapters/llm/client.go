package llm

import (
	"context"
	"net/http"
	"strings"
	"time"

	"advocate/internal/errors"
	"advocate/models"
	"advocate/ports"
)

// NewClient builds the LLM client for config.Provider. Real providers
// require an API key; a missing one is a MISSING_API_KEY error.
func NewClient(ctx context.Context, config *models.AIConfig) (ports.LLMClient, error) {
	if config == nil {
		return nil, errors.ConfigInvalid("missing AI configuration")
	}

	switch config.Provider {
	case models.ProviderMock:
		return NewDemoClient(), nil
	case models.ProviderOpenAI:
		return newOpenAIClient(config)
	case models.ProviderGemini, "":
		return newGeminiClient(ctx, config)
	default:
		return nil, errors.ConfigInvalid("unsupported LLM provider: " + config.Provider)
	}
}

// Factory adapts NewClient to ports.LLMClientFactory.
var Factory ports.LLMClientFactory = NewClient

func timeoutOrDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return 60 * time.Second
	}
	return d
}

func newOpenAIClient(config *models.AIConfig) (*OpenAIClient, error) {
	if strings.TrimSpace(config.OpenAIKey) == "" {
		return nil, errors.MissingAPIKey("missing OpenAI API key")
	}

	baseURL := strings.TrimSpace(config.OpenAIBaseURL)
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	model := config.Model
	if model == "" {
		model = models.DefaultOpenAIModel
	}

	timeout := timeoutOrDefault(config.Timeout)
	return &OpenAIClient{
		APIKey:        config.OpenAIKey,
		BaseURL:       baseURL,
		ModelName:     model,
		SystemContext: config.SystemContext,
		Timeout:       timeout,
		Temperature:   config.Temperature,
		MaxTokens:     config.MaxTokens,
		httpClient:    &http.Client{Timeout: timeout},
	}, nil
}
