package agents

import (
	"context"

	"advocate/ai"
	"advocate/internal/logging"
	"advocate/models"

	"go.uber.org/zap"
)

// IntakeAgent asks the model to pull key details out of a complaint.
type IntakeAgent struct {
	client *ai.PromptClient
	logger *zap.Logger
}

// NewIntakeAgent creates an intake agent.
func NewIntakeAgent(client *ai.PromptClient) *IntakeAgent {
	return &IntakeAgent{client: client, logger: logging.Named("intake")}
}

// AnalyzeIssue returns the model's extraction as an opaque string.
func (a *IntakeAgent) AnalyzeIssue(ctx context.Context, userInput string) (string, error) {
	a.logger.Info("analyzing user issue")
	return a.client.Ask(ctx, models.OpIntakeAnalysis, ai.PromptIntakeAnalysis, map[string]string{
		"USER_INPUT": userInput,
	})
}
