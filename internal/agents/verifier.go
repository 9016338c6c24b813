package agents

import (
	"context"
	"strings"

	"advocate/ai"
	"advocate/domain/dispute"
	"advocate/internal/logging"
	"advocate/models"

	"go.uber.org/zap"
)

// VerifierAgent asks the model whether a source looks credible.
type VerifierAgent struct {
	client *ai.PromptClient
	logger *zap.Logger
}

// NewVerifierAgent creates a verifier agent.
func NewVerifierAgent(client *ai.PromptClient) *VerifierAgent {
	return &VerifierAgent{client: client, logger: logging.Named("verifier")}
}

// VerifySource reports the model's TRUE/FALSE judgement of url for company.
func (a *VerifierAgent) VerifySource(ctx context.Context, url, company string) (dispute.Verification, error) {
	a.logger.Info("verifying source", zap.String("url", url))

	response, err := a.client.Ask(ctx, models.OpVerifySource, ai.PromptVerifySource, map[string]string{
		"URL":     url,
		"COMPANY": company,
	})
	if err != nil {
		return dispute.Verification{}, err
	}

	assessment := strings.TrimSpace(response)
	authentic := dispute.IsAuthentic(assessment)
	a.logger.Info("assessment", zap.Bool("authentic", authentic), zap.String("assessment", assessment))

	return dispute.Verification{Authentic: authentic, Assessment: assessment}, nil
}
