package ports

import (
	"context"

	"advocate/models"
)

// UsageData represents raw usage data from LLM provider APIs
type UsageData = models.UsageData

// LLMResponse is the opaque text a model returned plus token usage
type LLMResponse struct {
	Content string
	Usage   *UsageData
}

// LLMClient is the single call every agent makes. Implementations return the
// model text verbatim; they do not retry or parse it.
type LLMClient interface {
	Complete(ctx context.Context, prompt string) (*LLMResponse, error)
	Provider() string
	Model() string
}

// LLMClientFactory builds a client for a given AI config, so a request can
// bring its own API key.
type LLMClientFactory func(ctx context.Context, config *models.AIConfig) (LLMClient, error)
