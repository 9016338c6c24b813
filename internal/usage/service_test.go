package usage

import (
	"context"
	"testing"
	"time"

	"advocate/adapters/memory"
	"advocate/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordUsageAndCaseSummary(t *testing.T) {
	repo := memory.NewUsageRepository(0)
	svc := NewService(repo)
	fixed := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	ctx := context.Background()
	caseID := uuid.New()

	svc.RecordUsage(ctx, &caseID, models.OpIntakeAnalysis, &models.UsageData{
		PromptTokens: 12, CompletionTokens: 8, Provider: models.ProviderMock, Model: "m",
	})
	svc.RecordUsage(ctx, &caseID, models.OpDemandLetter, &models.UsageData{
		PromptTokens: 100, CompletionTokens: 400, TotalTokens: 500, Provider: models.ProviderMock, Model: "m",
	})

	summary, err := svc.CaseSummary(ctx, caseID)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.RequestCount)
	assert.Equal(t, 520, summary.TotalTokens, "missing totals are derived from prompt+completion")
	assert.Equal(t, fixed, summary.PeriodStart)
	assert.Equal(t, 20, summary.ByOperation[models.OpIntakeAnalysis])
}

func TestRecordUsageIgnoresBadInput(t *testing.T) {
	repo := memory.NewUsageRepository(0)
	svc := NewService(repo)
	ctx := context.Background()

	svc.RecordUsage(ctx, nil, models.OpUserReply, nil)
	svc.RecordUsage(ctx, nil, models.OpUserReply, &models.UsageData{PromptTokens: -1})

	assert.Zero(t, repo.Len())

	var nilSvc *Service
	assert.NotPanics(t, func() { nilSvc.RecordUsage(ctx, nil, models.OpUserReply, &models.UsageData{}) })
}
