package ai

import (
	"context"
	"time"
	"unicode/utf8"

	"advocate/internal/errors"
	"advocate/internal/logging"
	"advocate/internal/usage"
	"advocate/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const previewLength = 500

// PromptClient renders a named prompt and sends it to the model once. The
// response text is returned as-is.
type PromptClient struct {
	llm     ports.LLMClient
	prompts *PromptManager
	usage   *usage.Service
	caseID  *uuid.UUID
	logger  *zap.Logger
}

// NewPromptClient creates a prompt client. usageSvc may be nil.
func NewPromptClient(llm ports.LLMClient, prompts *PromptManager, usageSvc *usage.Service) *PromptClient {
	if prompts == nil {
		prompts = NewPromptManager("")
	}
	return &PromptClient{
		llm:     llm,
		prompts: prompts,
		usage:   usageSvc,
		logger:  logging.Named("prompt_client"),
	}
}

// WithCase returns a copy that tags recorded usage with the case ID.
func (c *PromptClient) WithCase(id uuid.UUID) *PromptClient {
	clone := *c
	clone.caseID = &id
	return &clone
}

// Ask renders promptName with replacements, calls the model and returns its
// text. operation labels the call in logs and usage records.
func (c *PromptClient) Ask(ctx context.Context, operation, promptName string, replacements map[string]string) (string, error) {
	prompt, err := c.prompts.RenderPrompt(promptName, replacements)
	if err != nil {
		return "", errors.Wrapf(errors.InternalError(err.Error()), "failed to render prompt %s", promptName)
	}
	return c.AskRaw(ctx, operation, prompt)
}

// AskRaw sends an already rendered prompt.
func (c *PromptClient) AskRaw(ctx context.Context, operation, prompt string) (string, error) {
	logger := c.logger.With(
		zap.String("operation", operation),
		zap.String("provider", c.llm.Provider()),
		zap.String("model", c.llm.Model()),
	)
	logger.Debug("sending prompt",
		zap.Int("prompt_length", len(prompt)),
		zap.String("prompt_preview", preview(prompt)))

	start := time.Now()
	resp, err := c.llm.Complete(ctx, prompt)
	if err != nil {
		logger.Error("llm call failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		if errors.IsAppError(err) {
			return "", errors.Wrapf(err, "%s failed", operation)
		}
		return "", errors.ExternalServiceError(c.llm.Provider(), err)
	}

	logger.Debug("received response",
		zap.Int("response_length", len(resp.Content)),
		zap.Duration("elapsed", time.Since(start)))

	c.usage.RecordUsage(ctx, c.caseID, operation, resp.Usage)
	return resp.Content, nil
}

// preview truncates s to previewLength runes for logging.
func preview(s string) string {
	if utf8.RuneCountInString(s) <= previewLength {
		return s
	}
	return string([]rune(s)[:previewLength]) + "..."
}
