package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"advocate/internal/errors"
	"advocate/models"
	"advocate/ports"

	"google.golang.org/genai"
)

// GeminiClient implements ports.LLMClient with the Google GenAI SDK
type GeminiClient struct {
	client        *genai.Client
	model         string
	systemContext string
	temperature   float32
	maxTokens     int32
}

func newGeminiClient(ctx context.Context, config *models.AIConfig) (*GeminiClient, error) {
	if strings.TrimSpace(config.GeminiKey) == "" {
		return nil, errors.MissingAPIKey("GOOGLE_API_KEY not found. Please set it in .env or enter it in the form.")
	}

	model := config.Model
	if model == "" {
		model = models.DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     config.GeminiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeoutOrDefault(config.Timeout)},
	})
	if err != nil {
		return nil, errors.ExternalServiceError(models.ProviderGemini, fmt.Errorf("failed to create GenAI client: %w", err))
	}

	return &GeminiClient{
		client:        client,
		model:         model,
		systemContext: config.SystemContext,
		temperature:   float32(config.Temperature),
		maxTokens:     int32(config.MaxTokens),
	}, nil
}

func (c *GeminiClient) Provider() string { return models.ProviderGemini }

func (c *GeminiClient) Model() string { return c.model }

// Complete calls GenerateContent with a single user turn.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (*ports.LLMResponse, error) {
	genConfig := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(c.temperature),
	}
	if c.maxTokens > 0 {
		genConfig.MaxOutputTokens = c.maxTokens
	}
	if c.systemContext != "" {
		genConfig.SystemInstruction = genai.NewContentFromText(c.systemContext, genai.RoleUser)
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), genConfig)
	if err != nil {
		return nil, errors.ExternalServiceError(models.ProviderGemini, fmt.Errorf("querying gemini: %w", err))
	}

	out := &ports.LLMResponse{Content: result.Text()}
	if meta := result.UsageMetadata; meta != nil {
		out.Usage = &ports.UsageData{
			PromptTokens:     int(meta.PromptTokenCount),
			CompletionTokens: int(meta.CandidatesTokenCount),
			TotalTokens:      int(meta.TotalTokenCount),
			Model:            c.model,
			Provider:         models.ProviderGemini,
		}
	}
	return out, nil
}
