package agents

import (
	"context"

	"advocate/ai"
	"advocate/domain/dispute"
	"advocate/internal/logging"
	"advocate/models"

	"go.uber.org/zap"
)

// ResearcherAgent finds the policy or law a demand letter can cite. It has
// no web access: the source is a search link built from a model-written
// query, and the policy text is the model's own summary.
type ResearcherAgent struct {
	client *ai.PromptClient
	logger *zap.Logger
}

// NewResearcherAgent creates a researcher agent.
func NewResearcherAgent(client *ai.PromptClient) *ResearcherAgent {
	return &ResearcherAgent{client: client, logger: logging.Named("researcher")}
}

// FindPolicy makes two model calls: one for a search query, one for the
// policy summary.
func (a *ResearcherAgent) FindPolicy(ctx context.Context, company string, sector dispute.Sector, issue string) (dispute.Policy, error) {
	a.logger.Info("searching for policies", zap.String("company", company), zap.String("sector", string(sector)))

	rawQuery, err := a.client.Ask(ctx, models.OpSearchQuery, ai.PromptSearchQuery, map[string]string{
		"COMPANY": company,
		"ISSUE":   issue,
	})
	if err != nil {
		return dispute.Policy{}, err
	}
	query := dispute.CleanQuery(rawQuery)
	a.logger.Info("search query", zap.String("query", query))

	summary, err := a.client.Ask(ctx, models.OpPolicySummary, ai.PromptPolicySummary, map[string]string{
		"COMPANY": company,
		"SECTOR":  sector.Title(),
		"ISSUE":   issue,
	})
	if err != nil {
		return dispute.Policy{}, err
	}

	return dispute.Policy{
		URL:         dispute.SearchLink(query),
		Text:        summary,
		SearchQuery: query,
	}, nil
}
