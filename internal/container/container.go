package container

import (
	"fmt"

	"advocate/adapters/llm"
	"advocate/adapters/memory"
	"advocate/app"
	"advocate/internal/config"
	"advocate/internal/logging"
	"advocate/internal/usage"
	"advocate/ports"

	"go.uber.org/zap"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	// Repositories (data access layer)
	UsageRepo ports.LLMUsageRepository

	// Services
	Usage    *usage.Service
	Advocate *app.AdvocateService
}

// Option customizes container construction
type Option func(*options)

type options struct {
	factory ports.LLMClientFactory
}

// WithLLMFactory replaces the provider-backed LLM factory, e.g. with a mock.
func WithLLMFactory(factory ports.LLMClientFactory) Option {
	return func(o *options) {
		o.factory = factory
	}
}

// New creates a new dependency injection container and installs its logger
// as the process default.
func New(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	o := options{factory: llm.Factory}
	for _, opt := range opts {
		opt(&o)
	}

	logger, err := logging.Init(cfg.LoggingOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	c := &Container{
		Config:    cfg,
		Logger:    logger,
		UsageRepo: memory.NewUsageRepository(memory.DefaultUsageLimit),
	}
	c.Usage = usage.NewService(c.UsageRepo)
	c.Advocate = app.NewAdvocateService(o.factory, cfg.ModelConfig(), c.Usage, cfg.Advocate.StrictVerification)

	logger.Info("container initialized",
		zap.String("provider", cfg.AI.Provider),
		zap.Bool("key_configured", cfg.HasAPIKey()),
		zap.Bool("strict_verification", cfg.Advocate.StrictVerification))
	return c, nil
}

// Close flushes buffered log entries
func (c *Container) Close() error {
	if c.Logger == nil {
		return nil
	}
	// Sync fails on stdout/stderr on some platforms; nothing to recover
	_ = c.Logger.Sync()
	return nil
}
