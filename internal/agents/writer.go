package agents

import (
	"context"
	"strconv"
	"time"

	"advocate/ai"
	"advocate/domain/dispute"
	"advocate/internal/logging"
	"advocate/models"

	"go.uber.org/zap"
)

// DeadlineDays is the response window every demand letter sets.
const DeadlineDays = 14

// LetterContext is everything the writer puts into a letter or reply.
type LetterContext struct {
	Complaint dispute.Complaint
	Sector    dispute.Sector
	Refund    dispute.Refund
	Policy    dispute.Policy
	Date      time.Time
}

// WriterAgent drafts the demand letter and the note to the user.
type WriterAgent struct {
	client *ai.PromptClient
	logger *zap.Logger
}

// NewWriterAgent creates a writer agent.
func NewWriterAgent(client *ai.PromptClient) *WriterAgent {
	return &WriterAgent{client: client, logger: logging.Named("writer")}
}

// WriteLetter drafts the formal demand letter.
func (a *WriterAgent) WriteLetter(ctx context.Context, lc LetterContext) (string, error) {
	a.logger.Info("drafting demand letter", zap.String("company", lc.Complaint.Company))
	return a.client.Ask(ctx, models.OpDemandLetter, ai.PromptDemandLetter, letterReplacements(lc))
}

// WriteUserReply drafts the short message explaining the letter to the user.
func (a *WriterAgent) WriteUserReply(ctx context.Context, lc LetterContext) (string, error) {
	a.logger.Info("drafting user reply")
	return a.client.Ask(ctx, models.OpUserReply, ai.PromptUserReply, letterReplacements(lc))
}

func letterReplacements(lc LetterContext) map[string]string {
	date := lc.Date
	if date.IsZero() {
		date = time.Now()
	}
	c := lc.Complaint
	amount, basis := demand(lc)
	return map[string]string{
		"USER_NAME":      c.Name,
		"USER_EMAIL":     c.Email,
		"USER_ADDRESS":   c.Address,
		"TODAY":          date.Format("2006-01-02"),
		"COMPANY":        c.Company,
		"ISSUE":          c.Issue,
		"SECTOR":         string(lc.Sector),
		"AMOUNT":         FormatAmount(amount),
		"REFUND_NOTE":    basis,
		"REF_NUMBER":     c.RefNumber,
		"PURCHASE_DATE":  c.PurchaseDate,
		"PAYMENT_METHOD": c.PaymentMethod,
		"POLICY_TEXT":    lc.Policy.Text,
		"POLICY_URL":     lc.Policy.URL,
		"DEADLINE_DAYS":  strconv.Itoa(DeadlineDays),
	}
}

// disputedAmountBasis replaces the refund note when no sector rule applies.
const disputedAmountBasis = "Full Amount in Dispute"

// demand returns the amount the letter asks for and its basis. Sectors
// without a refund rule demand the disputed amount rather than zero.
func demand(lc LetterContext) (float64, string) {
	if lc.Refund.Note == dispute.NoteUnknownSector {
		return lc.Complaint.Amount, disputedAmountBasis
	}
	return lc.Refund.Amount, lc.Refund.Note
}

// FormatAmount renders a dollar amount with two decimals, e.g. "$600.00".
func FormatAmount(amount float64) string {
	return "$" + strconv.FormatFloat(amount, 'f', 2, 64)
}
