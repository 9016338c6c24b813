package memory

import (
	"context"
	"sync"
	"time"

	"advocate/models"

	"github.com/google/uuid"
)

// UsageRepository keeps LLM usage records for the lifetime of the process.
// It bounds memory by dropping the oldest records past the limit.
type UsageRepository struct {
	mu      sync.RWMutex
	records []*models.LLMUsage
	limit   int
}

// DefaultUsageLimit caps the number of records held in memory.
const DefaultUsageLimit = 10000

// NewUsageRepository creates an empty repository. limit <= 0 uses the default.
func NewUsageRepository(limit int) *UsageRepository {
	if limit <= 0 {
		limit = DefaultUsageLimit
	}
	return &UsageRepository{limit: limit}
}

// RecordUsage stores a copy of the record.
func (r *UsageRepository) RecordUsage(ctx context.Context, usage *models.LLMUsage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rec := *usage
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, &rec)
	if over := len(r.records) - r.limit; over > 0 {
		r.records = append([]*models.LLMUsage(nil), r.records[over:]...)
	}
	return nil
}

// GetCaseUsage returns the records tagged with caseID, oldest first.
func (r *UsageRepository) GetCaseUsage(ctx context.Context, caseID uuid.UUID) ([]*models.LLMUsage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*models.LLMUsage
	for _, rec := range r.records {
		if rec.CaseID != nil && *rec.CaseID == caseID {
			out = append(out, rec)
		}
	}
	return out, nil
}

// GetUsageSummary aggregates records created in [start, end]. A zero end
// means no upper bound.
func (r *UsageRepository) GetUsageSummary(ctx context.Context, start, end time.Time) (*models.UsageSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var in []*models.LLMUsage
	for _, rec := range r.records {
		if rec.CreatedAt.Before(start) {
			continue
		}
		if !end.IsZero() && rec.CreatedAt.After(end) {
			continue
		}
		in = append(in, rec)
	}
	return models.Summarize(in), nil
}

// Len returns the number of stored records.
func (r *UsageRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}
