package agents

import (
	"context"
	"fmt"
	"testing"
	"time"

	"advocate/adapters/llm"
	"advocate/ai"
	"advocate/domain/dispute"
	"advocate/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(mock *llm.MockLLMClient) *ai.PromptClient {
	return ai.NewPromptClient(mock, nil, nil)
}

func TestIntakeAnalyzeIssue(t *testing.T) {
	mock := &llm.MockLLMClient{Response: "{'sector': 'Travel'}"}
	agent := NewIntakeAgent(newClient(mock))

	out, err := agent.AnalyzeIssue(context.Background(), "My flight was delayed")
	require.NoError(t, err)

	assert.Equal(t, "{'sector': 'Travel'}", out)
	assert.Contains(t, mock.Prompts()[0], `User Input: "My flight was delayed"`)
}

func TestResearcherFindPolicy(t *testing.T) {
	mock := &llm.MockLLMClient{Rules: []llm.MockRule{
		{Match: "Google search query", Response: "\"Delta flight delay refund policy\"\n"},
		{Match: "standard refund policy", Response: "DOT rules require a refund for significant delays."},
	}}
	agent := NewResearcherAgent(newClient(mock))

	policy, err := agent.FindPolicy(context.Background(), "Delta Airlines", dispute.SectorTravel, "My flight was delayed")
	require.NoError(t, err)

	assert.Equal(t, dispute.Policy{
		URL:         "https://www.google.com/search?q=Delta+flight+delay+refund+policy",
		Text:        "DOT rules require a refund for significant delays.",
		SearchQuery: "Delta flight delay refund policy",
	}, policy)

	prompts := mock.Prompts()
	require.Len(t, prompts, 2)
	assert.Contains(t, prompts[1], "for Delta Airlines in the Travel sector")
}

func TestResearcherStopsOnQueryFailure(t *testing.T) {
	mock := &llm.MockLLMClient{Error: fmt.Errorf("quota exceeded")}
	agent := NewResearcherAgent(newClient(mock))

	_, err := agent.FindPolicy(context.Background(), "Amazon", dispute.SectorRetail, "broken")
	require.Error(t, err)
	assert.Equal(t, errors.CodeExternalService, errors.GetCode(err))
	assert.Len(t, mock.Prompts(), 1)
}

func TestVerifierVerifySource(t *testing.T) {
	tests := []struct {
		response string
		want     bool
	}{
		{"TRUE. delta.com is the airline's official domain.", true},
		{"  true - looks official  ", true},
		{"FALSE. This is a search results page.", false},
	}
	for _, tt := range tests {
		mock := &llm.MockLLMClient{Response: tt.response}
		agent := NewVerifierAgent(newClient(mock))

		v, err := agent.VerifySource(context.Background(), "https://www.delta.com", "Delta")
		require.NoError(t, err)
		assert.Equal(t, tt.want, v.Authentic, tt.response)
		assert.NotEqual(t, ' ', v.Assessment[0])
	}
}

func TestWriterFillsLetterContext(t *testing.T) {
	mock := &llm.MockLLMClient{Rules: []llm.MockRule{
		{Match: "formal demand letter", Response: "Dear Delta,"},
		{Match: "letter is ready", Response: "Hi John, your letter is ready."},
	}}
	agent := NewWriterAgent(newClient(mock))
	lc := LetterContext{
		Complaint: dispute.Complaint{
			Name: "John Doe", Email: "john.doe@example.com", Address: "123 Maple Street",
			Company: "Delta Airlines", Amount: 800, PurchaseDate: "2025-11-15",
			Issue: "My flight was delayed by 5 hours.", RefNumber: "DL-987654321",
			PaymentMethod: "Visa ending in 1234",
		},
		Sector: dispute.SectorTravel,
		Refund: dispute.CalculateRefund(800, dispute.SectorTravel),
		Policy: dispute.Policy{URL: "https://example.com/policy", Text: "DOT rules"},
		Date:   time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
	}

	letter, err := agent.WriteLetter(context.Background(), lc)
	require.NoError(t, err)
	assert.Equal(t, "Dear Delta,", letter)

	reply, err := agent.WriteUserReply(context.Background(), lc)
	require.NoError(t, err)
	assert.Equal(t, "Hi John, your letter is ready.", reply)

	prompts := mock.Prompts()
	require.Len(t, prompts, 2)
	for _, want := range []string{
		"- User: John Doe (john.doe@example.com)",
		"- Date: 2026-10-19",
		"- Amount: $600.00",
		"- Refund Basis: Capped at Regulatory Max",
		"- Transaction Ref: DL-987654321",
		"- Source URL: https://example.com/policy",
		"set a deadline (14 days)",
	} {
		assert.Contains(t, prompts[0], want)
	}
	assert.Contains(t, prompts[1], "message to John Doe")
	assert.Contains(t, prompts[1], "(https://example.com/policy)")
}

func TestWriterDemandsDisputedAmountWithoutSectorRule(t *testing.T) {
	mock := &llm.MockLLMClient{Rules: []llm.MockRule{
		{Match: "formal demand letter", Response: "Dear Coinbase,"},
	}}
	agent := NewWriterAgent(newClient(mock))
	lc := LetterContext{
		Complaint: dispute.Complaint{
			Name: "John Doe", Company: "Coinbase", Amount: 900,
			Issue: "My bank transfer fee was charged twice.",
		},
		Sector: dispute.SectorFinance,
		Refund: dispute.CalculateRefund(900, dispute.SectorFinance),
		Date:   time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
	}

	_, err := agent.WriteLetter(context.Background(), lc)
	require.NoError(t, err)

	prompts := mock.Prompts()
	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], "- Amount: $900.00")
	assert.Contains(t, prompts[0], "- Refund Basis: Full Amount in Dispute")
	assert.NotContains(t, prompts[0], "$0.00")
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "$0.00", FormatAmount(0))
	assert.Equal(t, "$1200.50", FormatAmount(1200.5))
}
