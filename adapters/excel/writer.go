package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	resultsSheet = "Results"
	summarySheet = "Summary"
)

var resultHeaders = []string{
	"row", "company", "issue", "amount", "sector", "refund", "refund_note",
	"verified", "policy_url", "letter", "error", "duration_s",
}

// WriteResults writes batch results and a summary sheet to an xlsx file
func WriteResults(path string, results []ResultRow, summary []SummaryRow) error {
	f := excelize.NewFile()
	defer f.Close()

	// Rename the default sheet rather than leaving an empty Sheet1 behind
	if err := f.SetSheetName("Sheet1", resultsSheet); err != nil {
		return err
	}

	if err := writeRow(f, resultsSheet, 1, toCells(resultHeaders)); err != nil {
		return err
	}
	for i, r := range results {
		cells := []interface{}{
			r.Row, r.Company, r.Issue, r.Amount, string(r.Sector), r.Refund.Amount,
			r.Refund.Note, r.Verified, r.PolicyURL, r.Letter, r.Error, r.DurationSecs,
		}
		if err := writeRow(f, resultsSheet, i+2, cells); err != nil {
			return err
		}
	}
	if err := f.SetPanes(resultsSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	for i, s := range summary {
		if err := writeRow(f, summarySheet, i+1, []interface{}{s.Label, s.Value}); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, rowIdx int, values []interface{}) error {
	for c, v := range values {
		cell, err := excelize.CoordinatesToCellName(c+1, rowIdx)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func toCells(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
