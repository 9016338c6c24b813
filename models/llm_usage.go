package models

import (
	"time"

	"github.com/google/uuid"
)

// LLMUsage represents a single LLM API call's token usage
type LLMUsage struct {
	ID               uuid.UUID  `json:"id"`
	CaseID           *uuid.UUID `json:"case_id,omitempty"`
	Provider         string     `json:"provider"`       // 'gemini', 'openai', 'mock'
	Model            string     `json:"model"`          // 'gemini-2.0-flash', ...
	OperationType    string     `json:"operation_type"` // 'intake_analysis', 'demand_letter', ...
	PromptTokens     int        `json:"prompt_tokens"`
	CompletionTokens int        `json:"completion_tokens"`
	TotalTokens      int        `json:"total_tokens"`
	CreatedAt        time.Time  `json:"created_at"`
}

// UsageData represents raw usage data from LLM provider APIs
type UsageData struct {
	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
	TotalTokens      int    `json:"total_tokens"`
	Model            string `json:"model"`
	Provider         string `json:"provider"`
}

// UsageSummary provides aggregated usage statistics
type UsageSummary struct {
	PeriodStart           time.Time                `json:"period_start"`
	PeriodEnd             time.Time                `json:"period_end"`
	TotalTokens           int                      `json:"total_tokens"`
	TotalPromptTokens     int                      `json:"total_prompt_tokens"`
	TotalCompletionTokens int                      `json:"total_completion_tokens"`
	ByProvider            map[string]ProviderUsage `json:"by_provider"`
	ByModel               map[string]ModelUsage    `json:"by_model"`
	ByOperation           map[string]int           `json:"by_operation"`
	RequestCount          int                      `json:"request_count"`
}

// ProviderUsage represents usage aggregated by provider
type ProviderUsage struct {
	Provider     string `json:"provider"`
	TotalTokens  int    `json:"total_tokens"`
	RequestCount int    `json:"request_count"`
}

// ModelUsage represents usage aggregated by model
type ModelUsage struct {
	Model        string `json:"model"`
	Provider     string `json:"provider"`
	TotalTokens  int    `json:"total_tokens"`
	RequestCount int    `json:"request_count"`
}

// Operation types for categorization
const (
	OpIntakeAnalysis = "intake_analysis"
	OpSearchQuery    = "search_query"
	OpPolicySummary  = "policy_summary"
	OpVerifySource   = "verify_source"
	OpDemandLetter   = "demand_letter"
	OpUserReply      = "user_reply"
)

// Summarize aggregates a set of usage records.
func Summarize(records []*LLMUsage) *UsageSummary {
	summary := &UsageSummary{
		ByProvider:  make(map[string]ProviderUsage),
		ByModel:     make(map[string]ModelUsage),
		ByOperation: make(map[string]int),
	}
	for _, r := range records {
		if summary.PeriodStart.IsZero() || r.CreatedAt.Before(summary.PeriodStart) {
			summary.PeriodStart = r.CreatedAt
		}
		if r.CreatedAt.After(summary.PeriodEnd) {
			summary.PeriodEnd = r.CreatedAt
		}
		summary.TotalTokens += r.TotalTokens
		summary.TotalPromptTokens += r.PromptTokens
		summary.TotalCompletionTokens += r.CompletionTokens
		summary.RequestCount++

		p := summary.ByProvider[r.Provider]
		p.Provider = r.Provider
		p.TotalTokens += r.TotalTokens
		p.RequestCount++
		summary.ByProvider[r.Provider] = p

		m := summary.ByModel[r.Model]
		m.Model = r.Model
		m.Provider = r.Provider
		m.TotalTokens += r.TotalTokens
		m.RequestCount++
		summary.ByModel[r.Model] = m

		summary.ByOperation[r.OperationType] += r.TotalTokens
	}
	return summary
}
