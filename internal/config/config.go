package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"advocate/internal/errors"
	"advocate/internal/logging"
	"advocate/models"
)

// Config represents the complete application configuration
type Config struct {
	AI       AIConfig
	Server   ServerConfig
	Advocate AdvocateConfig
	Log      LogConfig
}

// AIConfig holds AI/LLM related settings
type AIConfig struct {
	Provider      string
	GeminiKey     string
	OpenAIKey     string
	OpenAIBaseURL string
	Model         string
	MaxTokens     int
	Temperature   float64
	Timeout       time.Duration
	PromptsDir    string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	APIPort string
	GinMode string
}

// AdvocateConfig holds pipeline behaviour switches
type AdvocateConfig struct {
	// StrictVerification replaces an unverified policy with the fallback
	// regulatory text instead of proceeding with caution.
	StrictVerification bool
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{}

	aiConfig, err := loadAIConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load AI configuration")
	}
	config.AI = *aiConfig

	config.Server = *loadServerConfig()
	config.Advocate = AdvocateConfig{
		StrictVerification: getEnvBoolOrDefault("STRICT_VERIFICATION", false),
	}
	config.Log = LogConfig{
		Level:  getEnvOrDefault("LOG_LEVEL", "INFO"),
		Format: getEnvOrDefault("LOG_FORMAT", "console"),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadAIConfig() (*AIConfig, error) {
	provider := strings.ToLower(getEnvOrDefault("LLM_PROVIDER", models.ProviderGemini))

	// GOOGLE_API_KEY wins; GEMINI_API_KEY is accepted too.
	geminiKey := os.Getenv("GOOGLE_API_KEY")
	if geminiKey == "" {
		geminiKey = os.Getenv("GEMINI_API_KEY")
	}

	timeout, err := getEnvDurationOrDefault("LLM_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}

	return &AIConfig{
		Provider:      provider,
		GeminiKey:     geminiKey,
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: getEnvOrDefault("OPENAI_BASE_URL", ""),
		Model:         getEnvOrDefault("LLM_MODEL", ""),
		MaxTokens:     getEnvIntOrDefault("MAX_TOKENS", 2048),
		Temperature:   getEnvFloatOrDefault("TEMPERATURE", 0.2),
		Timeout:       timeout,
		PromptsDir:    getEnvOrDefault("PROMPTS_DIR", ""),
	}, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		APIPort: getEnvOrDefault("API_PORT", "8081"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
	}
}

func validateConfig(config *Config) error {
	switch config.AI.Provider {
	case models.ProviderGemini, models.ProviderOpenAI, models.ProviderMock:
	default:
		return errors.ConfigInvalid("unsupported LLM_PROVIDER: " + config.AI.Provider)
	}
	if config.AI.MaxTokens <= 0 {
		return errors.ConfigInvalid("MAX_TOKENS must be positive")
	}
	if config.AI.Temperature < 0 || config.AI.Temperature > 2 {
		return errors.ConfigInvalid("TEMPERATURE must be between 0 and 2")
	}
	if config.Log.Format != "console" && config.Log.Format != "json" {
		return errors.ConfigInvalid("LOG_FORMAT must be console or json")
	}
	return nil
}

// ModelConfig converts the AI section into the adapter-facing config.
// It does not require a key; the factory reports a missing one per call.
func (c *Config) ModelConfig() *models.AIConfig {
	ai := models.DefaultAIConfig(c.AI.Provider)
	ai.GeminiKey = c.AI.GeminiKey
	ai.OpenAIKey = c.AI.OpenAIKey
	ai.OpenAIBaseURL = c.AI.OpenAIBaseURL
	if c.AI.Model != "" {
		ai.Model = c.AI.Model
	}
	ai.MaxTokens = c.AI.MaxTokens
	ai.Temperature = c.AI.Temperature
	ai.Timeout = c.AI.Timeout
	ai.PromptsDir = c.AI.PromptsDir
	return ai
}

// HasAPIKey reports whether the configured provider can run without a
// per-request key.
func (c *Config) HasAPIKey() bool {
	return c.ModelConfig().APIKey() != "" || c.AI.Provider == models.ProviderMock
}

// LoggingOptions converts the log section into logger options.
func (c *Config) LoggingOptions() logging.Options {
	return logging.Options{
		Level:  logging.ParseLevel(c.Log.Level),
		Format: c.Log.Format,
	}
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, errors.ConfigInvalid(key + " is not a valid duration: " + value)
	}
	return duration, nil
}
