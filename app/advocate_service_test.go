package app

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"advocate/adapters/llm"
	"advocate/adapters/memory"
	"advocate/domain/dispute"
	"advocate/internal/errors"
	"advocate/internal/usage"
	"advocate/models"
	"advocate/ports"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var fixedNow = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

func deltaComplaint() dispute.Complaint {
	return dispute.Complaint{
		Name:          "John Doe",
		Email:         "john.doe@example.com",
		Address:       "123 Maple Street, Springfield, IL 62704",
		Company:       "Delta Airlines",
		Amount:        800,
		PurchaseDate:  "2025-11-15",
		Issue:         "My flight was delayed by 5 hours.",
		RefNumber:     "DL-987654321",
		PaymentMethod: "Visa ending in 1234",
	}
}

func scriptedMock(verdict string) *llm.MockLLMClient {
	return &llm.MockLLMClient{Rules: []llm.MockRule{
		{Match: "Analyze the following user complaint", Response: "{'sector': 'Travel'}"},
		{Match: "Google search query", Response: `"Delta delay refund policy"`},
		{Match: "standard refund policy", Response: "DOT rules require refunds."},
		{Match: "credible source", Response: verdict},
		{Match: "formal demand letter", Response: "Dear Delta Airlines,"},
		{Match: "letter is ready", Response: "Your letter is ready."},
	}}
}

func newTestService(t *testing.T, mock *llm.MockLLMClient, strict bool) (*AdvocateService, *[]*models.AIConfig) {
	t.Helper()
	var seen []*models.AIConfig
	factory := func(ctx context.Context, cfg *models.AIConfig) (ports.LLMClient, error) {
		seen = append(seen, cfg)
		return mock, nil
	}
	svc := NewAdvocateService(factory, models.DefaultAIConfig(models.ProviderGemini),
		usage.NewService(memory.NewUsageRepository(0)), strict)
	svc.now = func() time.Time { return fixedNow }
	return svc, &seen
}

func TestRunProducesCase(t *testing.T) {
	mock := scriptedMock("TRUE - delta.com is official")
	svc, _ := newTestService(t, mock, false)

	c, err := svc.Run(context.Background(), deltaComplaint(), RunOptions{})
	require.NoError(t, err)

	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", c.ID.String())
	assert.Equal(t, dispute.SectorTravel, c.Sector)
	assert.Equal(t, dispute.Refund{Amount: 600, Note: dispute.NoteCapped}, c.Refund)
	assert.Equal(t, "{'sector': 'Travel'}", c.Analysis)
	assert.True(t, c.Verification.Authentic)
	assert.Equal(t, c.Policy, c.PolicyApplied)
	assert.Equal(t, "Dear Delta Airlines,", c.Letter)
	assert.Equal(t, "Your letter is ready.", c.UserReply)
	assert.Equal(t, fixedNow, c.CreatedAt)

	agentsSeen := make([]string, 0, len(c.Steps))
	for _, s := range c.Steps {
		agentsSeen = append(agentsSeen, s.Agent)
	}
	if diff := cmp.Diff([]string{AgentRouter, AgentIntake, AgentResearcher, AgentVerifier, AgentWriter}, agentsSeen); diff != "" {
		t.Errorf("step agents mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Source Verified", c.Steps[3].Message)

	require.NotNil(t, c.Usage)
	assert.Equal(t, 6, c.Usage.RequestCount)
	assert.Len(t, mock.Prompts(), 6)
}

func TestRunUnverifiedProceedsWithCaution(t *testing.T) {
	svc, _ := newTestService(t, scriptedMock("FALSE - search page"), false)

	c, err := svc.Run(context.Background(), deltaComplaint(), RunOptions{})
	require.NoError(t, err)

	assert.False(t, c.Verification.Authentic)
	assert.Equal(t, c.Policy, c.PolicyApplied)
	assert.Equal(t, "Source Unverified - Proceeding with caution.", c.Steps[3].Message)
}

func TestRunStrictVerificationUsesFallback(t *testing.T) {
	mock := scriptedMock("FALSE - search page")
	svc, _ := newTestService(t, mock, true)

	c, err := svc.Run(context.Background(), deltaComplaint(), RunOptions{})
	require.NoError(t, err)

	assert.Equal(t, dispute.FallbackPolicy(), c.PolicyApplied)
	assert.NotEqual(t, c.Policy, c.PolicyApplied)
	found := false
	for _, p := range mock.Prompts() {
		if containsAll(p, "formal demand letter", "Standard Regulatory Logic applied.", "Source URL: N/A") {
			found = true
		}
	}
	assert.True(t, found, "letter prompt should cite the fallback policy")
}

func TestRunPassesPerRequestKey(t *testing.T) {
	svc, seen := newTestService(t, scriptedMock("TRUE"), false)

	_, err := svc.Run(context.Background(), deltaComplaint(), RunOptions{APIKey: "form-key"})
	require.NoError(t, err)

	require.Len(t, *seen, 1)
	assert.Equal(t, "form-key", (*seen)[0].GeminiKey)
	assert.Empty(t, svc.aiConfig.GeminiKey, "base config must not be mutated")
}

func TestRunRejectsInvalidComplaint(t *testing.T) {
	svc, seen := newTestService(t, scriptedMock("TRUE"), false)
	complaint := deltaComplaint()
	complaint.Company = " "

	_, err := svc.Run(context.Background(), complaint, RunOptions{})
	require.Error(t, err)
	assert.Equal(t, errors.CodeValidationError, errors.GetCode(err))
	assert.Empty(t, *seen)
}

func TestRunFactoryError(t *testing.T) {
	factory := func(ctx context.Context, cfg *models.AIConfig) (ports.LLMClient, error) {
		return nil, errors.MissingAPIKey("no key")
	}
	svc := NewAdvocateService(factory, models.DefaultAIConfig(models.ProviderGemini), nil, false)

	_, err := svc.Run(context.Background(), deltaComplaint(), RunOptions{})
	require.Error(t, err)
	assert.Equal(t, errors.CodeMissingAPIKey, errors.GetCode(err))
}

func TestRunAbortsOnLLMError(t *testing.T) {
	mock := scriptedMock("TRUE")
	mock.Rules = append([]llm.MockRule{{Match: "credible source", Error: fmt.Errorf("rate limited")}}, mock.Rules...)
	svc, _ := newTestService(t, mock, false)

	_, err := svc.Run(context.Background(), deltaComplaint(), RunOptions{})
	require.Error(t, err)
	assert.Equal(t, errors.CodeExternalService, errors.GetCode(err))
	assert.Contains(t, err.Error(), "rate limited")
	assert.Len(t, mock.Prompts(), 4, "writer must not run after a failed verification")
}

func TestRunWriterErrorStopsRun(t *testing.T) {
	mock := scriptedMock("TRUE")
	mock.Rules = append([]llm.MockRule{{Match: "letter is ready", Error: fmt.Errorf("overloaded")}}, mock.Rules...)
	svc, _ := newTestService(t, mock, false)

	c, err := svc.Run(context.Background(), deltaComplaint(), RunOptions{})
	require.Error(t, err)
	assert.Nil(t, c)
	assert.Contains(t, err.Error(), "user reply drafting failed")
}

func TestRunFillsPlaceholders(t *testing.T) {
	mock := scriptedMock("TRUE")
	svc, _ := newTestService(t, mock, false)
	complaint := dispute.Complaint{Company: "Amazon", Amount: 100, Issue: "The item I bought is defective."}

	c, err := svc.Run(context.Background(), complaint, RunOptions{})
	require.NoError(t, err)

	assert.Equal(t, dispute.SectorRetail, c.Sector)
	assert.Equal(t, dispute.DefaultName, c.Complaint.Name)
	assert.Equal(t, dispute.DefaultRefNumber, c.Complaint.RefNumber)
}

func TestTriage(t *testing.T) {
	svc, _ := newTestService(t, scriptedMock("TRUE"), false)

	sector, refund := svc.Triage(dispute.Complaint{Amount: 1200, Issue: "Hospital bill for surgery"})
	assert.Equal(t, dispute.SectorHealth, sector)
	assert.Equal(t, 700.0, refund.Amount)
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
