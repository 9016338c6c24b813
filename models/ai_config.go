package models

import "time"

// Supported LLM providers
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderMock   = "mock"
)

// Default models per provider
const (
	DefaultGeminiModel = "gemini-2.0-flash"
	DefaultOpenAIModel = "gpt-4.1-mini"
	DefaultMockModel   = "mock-advocate"
)

// ProviderLabel returns the display name of a provider, e.g. "Google Gemini".
func ProviderLabel(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "OpenAI"
	case ProviderMock:
		return "Mock"
	default:
		return "Google Gemini"
	}
}

// AIConfig holds the settings an LLM adapter is built from
type AIConfig struct {
	Provider      string
	GeminiKey     string
	OpenAIKey     string
	OpenAIBaseURL string
	Model         string
	SystemContext string
	MaxTokens     int
	Temperature   float64
	Timeout       time.Duration
	PromptsDir    string // optional directory overriding embedded prompts
}

// DefaultAIConfig returns sensible defaults for the given provider
func DefaultAIConfig(provider string) *AIConfig {
	config := &AIConfig{
		Provider:      provider,
		SystemContext: "You are a professional consumer rights advocate.",
		MaxTokens:     2048,
		Temperature:   0.2,
		Timeout:       60 * time.Second,
	}

	switch provider {
	case ProviderOpenAI:
		config.Model = DefaultOpenAIModel
	case ProviderMock:
		config.Model = DefaultMockModel
	default:
		config.Provider = ProviderGemini
		config.Model = DefaultGeminiModel
	}

	return config
}

// APIKey returns the key for the configured provider
func (c *AIConfig) APIKey() string {
	switch c.Provider {
	case ProviderOpenAI:
		return c.OpenAIKey
	case ProviderGemini:
		return c.GeminiKey
	default:
		return ""
	}
}

// WithAPIKey returns a copy of the config using key for the configured
// provider. An empty key leaves the config unchanged.
func (c *AIConfig) WithAPIKey(key string) *AIConfig {
	clone := *c
	if key == "" {
		return &clone
	}
	switch c.Provider {
	case ProviderOpenAI:
		clone.OpenAIKey = key
	default:
		clone.GeminiKey = key
	}
	return &clone
}
