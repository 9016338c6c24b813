package ports

import (
	"context"
	"time"

	"advocate/models"

	"github.com/google/uuid"
)

// LLMUsageRepository defines the interface for LLM usage data operations
type LLMUsageRepository interface {
	// Record usage for an LLM call
	RecordUsage(ctx context.Context, usage *models.LLMUsage) error

	// Get usage recorded for one case
	GetCaseUsage(ctx context.Context, caseID uuid.UUID) ([]*models.LLMUsage, error)

	// Get aggregated usage within a date range
	GetUsageSummary(ctx context.Context, start, end time.Time) (*models.UsageSummary, error)
}
