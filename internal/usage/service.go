package usage

import (
	"context"
	"time"

	"advocate/internal/logging"
	"advocate/models"
	"advocate/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service handles LLM usage tracking
type Service struct {
	repo ports.LLMUsageRepository
	now  func() time.Time
}

// NewService creates a new usage service
func NewService(repo ports.LLMUsageRepository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// RecordUsage records token usage for one LLM call. Tracking failures are
// logged and never fail the caller.
func (s *Service) RecordUsage(ctx context.Context, caseID *uuid.UUID, operationType string, usage *models.UsageData) {
	logger := logging.Named("usage")

	if s == nil || s.repo == nil {
		return
	}
	if usage == nil {
		logger.Debug("no usage data reported", zap.String("operation", operationType))
		return
	}
	if usage.PromptTokens < 0 || usage.CompletionTokens < 0 || usage.TotalTokens < 0 {
		logger.Warn("invalid token counts", zap.Any("usage", usage))
		return
	}

	total := usage.TotalTokens
	if total == 0 {
		total = usage.PromptTokens + usage.CompletionTokens
	}

	record := &models.LLMUsage{
		ID:               uuid.New(),
		CaseID:           caseID,
		Provider:         usage.Provider,
		Model:            usage.Model,
		OperationType:    operationType,
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		TotalTokens:      total,
		CreatedAt:        s.now(),
	}

	if err := s.repo.RecordUsage(ctx, record); err != nil {
		logger.Warn("failed to record usage", zap.Error(err))
	}
}

// CaseSummary returns aggregated usage for one case
func (s *Service) CaseSummary(ctx context.Context, caseID uuid.UUID) (*models.UsageSummary, error) {
	records, err := s.repo.GetCaseUsage(ctx, caseID)
	if err != nil {
		return nil, err
	}
	return models.Summarize(records), nil
}

// Summary returns aggregated usage in a time period
func (s *Service) Summary(ctx context.Context, start, end time.Time) (*models.UsageSummary, error) {
	return s.repo.GetUsageSummary(ctx, start, end)
}
