package app

import (
	"context"
	"time"

	"advocate/ai"
	"advocate/domain/dispute"
	"advocate/internal/agents"
	"advocate/internal/errors"
	"advocate/internal/logging"
	"advocate/internal/usage"
	"advocate/models"
	"advocate/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Agent names shown in the step timeline
const (
	AgentRouter     = "Router"
	AgentIntake     = "Intake Agent"
	AgentResearcher = "Research Agent"
	AgentVerifier   = "Verifier Agent"
	AgentWriter     = "Writer Agent"
)

// RunOptions carries per-request overrides
type RunOptions struct {
	// APIKey replaces the configured provider key for this run only.
	APIKey string
}

// AdvocateService runs a complaint through routing, refund estimation and
// the four agents.
type AdvocateService struct {
	factory  ports.LLMClientFactory
	aiConfig *models.AIConfig
	prompts  *ai.PromptManager
	usage    *usage.Service
	strict   bool
	now      func() time.Time
	logger   *zap.Logger
}

// NewAdvocateService creates the service. usageSvc may be nil.
func NewAdvocateService(factory ports.LLMClientFactory, aiConfig *models.AIConfig, usageSvc *usage.Service, strictVerification bool) *AdvocateService {
	return &AdvocateService{
		factory:  factory,
		aiConfig: aiConfig,
		prompts:  ai.NewPromptManager(aiConfig.PromptsDir),
		usage:    usageSvc,
		strict:   strictVerification,
		now:      time.Now,
		logger:   logging.Named("advocate"),
	}
}

// Triage routes a complaint and estimates the refund without calling a model.
func (s *AdvocateService) Triage(complaint dispute.Complaint) (dispute.Sector, dispute.Refund) {
	sector := dispute.RouteCase(complaint.Issue)
	return sector, dispute.CalculateRefund(complaint.Amount, sector)
}

// Run executes the full pipeline. Any model error aborts the run.
func (s *AdvocateService) Run(ctx context.Context, complaint dispute.Complaint, opts RunOptions) (*dispute.Case, error) {
	if err := complaint.Validate(); err != nil {
		return nil, err
	}
	complaint = complaint.WithDefaults()

	llm, err := s.factory(ctx, s.aiConfig.WithAPIKey(opts.APIKey))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create LLM client")
	}

	c := &dispute.Case{
		ID:        uuid.New(),
		Complaint: complaint,
		CreatedAt: s.now(),
	}
	logger := s.logger.With(zap.String("case_id", c.ID.String()), zap.String("company", complaint.Company))
	logger.Info("starting advocate run", zap.String("provider", llm.Provider()), zap.String("model", llm.Model()))

	client := ai.NewPromptClient(llm, s.prompts, s.usage).WithCase(c.ID)
	tl := &timeline{now: s.now}

	// Routing and refund
	done := tl.start(AgentRouter)
	c.Sector, c.Refund = s.Triage(complaint)
	done("Routed to " + string(c.Sector) + "; estimated refund " + agents.FormatAmount(c.Refund.Amount) + " (" + c.Refund.Note + ")")

	// Intake
	done = tl.start(AgentIntake)
	c.Analysis, err = agents.NewIntakeAgent(client).AnalyzeIssue(ctx, complaint.Issue)
	if err != nil {
		return nil, errors.Wrap(err, "intake analysis failed")
	}
	done("Analyzed the case")

	// Research
	done = tl.start(AgentResearcher)
	c.Policy, err = agents.NewResearcherAgent(client).FindPolicy(ctx, complaint.Company, c.Sector, complaint.Issue)
	if err != nil {
		return nil, errors.Wrap(err, "policy research failed")
	}
	done("Found policy: " + c.Policy.URL)

	// Verification
	done = tl.start(AgentVerifier)
	c.Verification, err = agents.NewVerifierAgent(client).VerifySource(ctx, c.Policy.URL, complaint.Company)
	if err != nil {
		return nil, errors.Wrap(err, "source verification failed")
	}
	c.PolicyApplied = c.Policy
	switch {
	case c.Verification.Authentic:
		done("Source Verified")
	case s.strict:
		c.PolicyApplied = dispute.FallbackPolicy()
		done("Source Unverified - Using fallback regulatory logic.")
	default:
		done("Source Unverified - Proceeding with caution.")
	}

	// Letter and reply are independent drafts of the same context
	done = tl.start(AgentWriter)
	lc := agents.LetterContext{
		Complaint: complaint,
		Sector:    c.Sector,
		Refund:    c.Refund,
		Policy:    c.PolicyApplied,
		Date:      c.CreatedAt,
	}
	writer := agents.NewWriterAgent(client)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		letter, err := writer.WriteLetter(gctx, lc)
		if err != nil {
			return errors.Wrap(err, "letter drafting failed")
		}
		c.Letter = letter
		return nil
	})
	g.Go(func() error {
		reply, err := writer.WriteUserReply(gctx, lc)
		if err != nil {
			return errors.Wrap(err, "user reply drafting failed")
		}
		c.UserReply = reply
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	done("Drafted your legal demand letter")

	c.Steps = tl.steps
	if s.usage != nil {
		summary, err := s.usage.CaseSummary(ctx, c.ID)
		if err != nil {
			logger.Warn("failed to summarize usage", zap.Error(err))
		} else {
			c.Usage = summary
		}
	}

	logger.Info("advocate run complete",
		zap.String("sector", string(c.Sector)),
		zap.Float64("refund", c.Refund.Amount),
		zap.Bool("verified", c.Verification.Authentic))
	return c, nil
}

type timeline struct {
	now   func() time.Time
	steps []dispute.Step
}

func (t *timeline) start(agent string) func(message string) {
	began := t.now()
	return func(message string) {
		t.steps = append(t.steps, dispute.Step{
			Agent:    agent,
			Message:  message,
			Duration: t.now().Sub(began),
		})
	}
}
