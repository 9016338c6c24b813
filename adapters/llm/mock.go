package llm

import (
	"context"
	"strings"
	"sync"

	"advocate/models"
	"advocate/ports"
)

// MockRule answers any prompt containing Match with Response.
type MockRule struct {
	Match    string
	Response string
	Error    error
}

// MockLLMClient is a scripted LLM client for tests and offline demos.
// Rules are checked in order; the first match wins.
type MockLLMClient struct {
	Rules    []MockRule
	Response string // used when no rule matches
	Error    error  // returned for every call when set

	mu      sync.Mutex
	prompts []string
}

func (m *MockLLMClient) Provider() string { return models.ProviderMock }

func (m *MockLLMClient) Model() string { return models.DefaultMockModel }

func (m *MockLLMClient) Complete(ctx context.Context, prompt string) (*ports.LLMResponse, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Error != nil {
		return nil, m.Error
	}

	content := m.Response
	for _, rule := range m.Rules {
		if strings.Contains(prompt, rule.Match) {
			if rule.Error != nil {
				return nil, rule.Error
			}
			content = rule.Response
			break
		}
	}

	promptTokens := approxTokens(prompt)
	completionTokens := approxTokens(content)
	return &ports.LLMResponse{
		Content: content,
		Usage: &ports.UsageData{
			PromptTokens:     promptTokens,
			CompletionTokens: completionTokens,
			TotalTokens:      promptTokens + completionTokens,
			Model:            models.DefaultMockModel,
			Provider:         models.ProviderMock,
		},
	}, nil
}

// Prompts returns every prompt received so far, in call order.
func (m *MockLLMClient) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// approxTokens uses the ~4 characters per token rule of thumb.
func approxTokens(s string) int {
	return (len(s) + 3) / 4
}

// NewDemoClient returns a mock that answers each advocate prompt with a
// plausible canned response, for running the app without an API key.
func NewDemoClient() *MockLLMClient {
	return &MockLLMClient{
		Rules: []MockRule{
			{Match: "Analyze the following user complaint", Response: demoIntake},
			{Match: "Generate the best Google search query", Response: `"refund policy consumer complaint"`},
			{Match: "standard refund policy or relevant law", Response: demoPolicy},
			{Match: "credible source for information", Response: "FALSE - a search results page is not an official company or government source."},
			{Match: "formal demand letter", Response: demoLetter},
			{Match: "demand letter is ready", Response: demoReply},
		},
		Response: "N/A",
	}
}

const demoIntake = `{'sector': 'Other', 'company': 'N/A', 'amount': 'N/A', 'issue_summary': 'Demo mode: the complaint was not sent to a model.', 'key_facts': ['Demo mode is active']}`

const demoPolicy = `Most jurisdictions require a refund when a purchased product or service is not delivered as described. Likely citation: Company Terms of Service and applicable consumer protection statutes.`

const demoLetter = `[Demo letter]

To the Customer Relations Department,

I am writing to formally request a refund for the transaction described in my complaint. Under your published terms and applicable consumer protection law, I am entitled to this refund.

Copies of my receipt and supporting evidence are attached. Please process the refund within 14 days of the date of this letter.

Sincerely,
Valued Customer`

const demoReply = `**Your demand letter is ready.**

We found a policy that supports your case. Attach your proofs (receipts, emails, screenshots) and send the letter as a PDF.`
