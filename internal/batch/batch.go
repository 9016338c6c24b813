package batch

import (
	"context"
	"sort"
	"time"

	"advocate/adapters/excel"
	"advocate/app"
	"advocate/domain/dispute"
	"advocate/internal/logging"

	"github.com/montanaflynn/stats"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers bounds concurrent pipeline runs
const DefaultWorkers = 2

// CaseRunner runs a complaint through the advocate pipeline
type CaseRunner interface {
	Run(ctx context.Context, complaint dispute.Complaint, opts app.RunOptions) (*dispute.Case, error)
}

// Summary aggregates the refunds of the rows that completed
type Summary struct {
	Count        int
	Succeeded    int
	Failed       int
	Verified     int
	TotalRefund  float64
	MeanRefund   float64
	MedianRefund float64
	MaxRefund    float64
	BySector     map[dispute.Sector]int
}

// Runner processes batch files
type Runner struct {
	runner  CaseRunner
	workers int
	opts    app.RunOptions
	logger  *zap.Logger
}

// NewRunner creates a batch runner. workers <= 0 uses DefaultWorkers.
func NewRunner(runner CaseRunner, workers int, opts app.RunOptions) *Runner {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Runner{runner: runner, workers: workers, opts: opts, logger: logging.Named("batch")}
}

// Run processes every row. A failing row is recorded in its result and
// does not stop the batch; only context cancellation does.
func (r *Runner) Run(ctx context.Context, rows []excel.ComplaintRow) ([]excel.ResultRow, error) {
	results := make([]excel.ResultRow, len(rows))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, row := range rows {
		results[i] = excel.ResultRow{
			Row:     row.Row,
			Company: row.Complaint.Company,
			Issue:   row.Complaint.Issue,
			Amount:  row.Complaint.Amount,
		}
		if row.Err != nil {
			results[i].Error = row.Err.Error()
			continue
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			c, err := r.runner.Run(gctx, row.Complaint, r.opts)
			results[i].DurationSecs = time.Since(start).Seconds()
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				r.logger.Warn("row failed", zap.Int("row", row.Row), zap.Error(err))
				results[i].Error = err.Error()
				return nil
			}
			results[i].Sector = c.Sector
			results[i].Refund = c.Refund
			results[i].Verified = c.Verification.Authentic
			results[i].PolicyURL = c.PolicyApplied.URL
			results[i].Letter = c.Letter
			r.logger.Info("row complete", zap.Int("row", row.Row), zap.String("sector", string(c.Sector)))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// Summarize computes refund statistics over the successful rows
func Summarize(results []excel.ResultRow) Summary {
	s := Summary{Count: len(results), BySector: make(map[dispute.Sector]int)}

	var refunds stats.Float64Data
	for _, r := range results {
		if r.Error != "" {
			s.Failed++
			continue
		}
		s.Succeeded++
		if r.Verified {
			s.Verified++
		}
		s.BySector[r.Sector]++
		refunds = append(refunds, r.Refund.Amount)
	}
	if len(refunds) == 0 {
		return s
	}

	// Errors only occur for empty input, which is excluded above
	s.TotalRefund, _ = refunds.Sum()
	s.MeanRefund, _ = refunds.Mean()
	s.MedianRefund, _ = refunds.Median()
	s.MaxRefund, _ = refunds.Max()
	return s
}

// Rows renders the summary for the results workbook
func (s Summary) Rows() []excel.SummaryRow {
	rows := []excel.SummaryRow{
		{Label: "Complaints", Value: s.Count},
		{Label: "Succeeded", Value: s.Succeeded},
		{Label: "Failed", Value: s.Failed},
		{Label: "Sources verified", Value: s.Verified},
		{Label: "Total refund", Value: s.TotalRefund},
		{Label: "Mean refund", Value: s.MeanRefund},
		{Label: "Median refund", Value: s.MedianRefund},
		{Label: "Max refund", Value: s.MaxRefund},
	}

	sectors := make([]string, 0, len(s.BySector))
	for sector := range s.BySector {
		sectors = append(sectors, string(sector))
	}
	sort.Strings(sectors)
	for _, sector := range sectors {
		rows = append(rows, excel.SummaryRow{Label: "Sector " + sector, Value: s.BySector[dispute.Sector(sector)]})
	}
	return rows
}
