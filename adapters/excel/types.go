package excel

import "advocate/domain/dispute"

// RawRowData represents a row of raw spreadsheet data as string key-value pairs
type RawRowData map[string]string

// ExcelData represents the complete spreadsheet
type ExcelData struct {
	Headers []string     // Column headers
	Rows    []RawRowData // Data rows
}

// ComplaintRow is one complaint read from a batch file. Row is the 1-based
// sheet row; Err is set when the row could not be parsed.
type ComplaintRow struct {
	Row       int
	Complaint dispute.Complaint
	Err       error
}

// ResultRow is one line of a batch results sheet
type ResultRow struct {
	Row          int
	Company      string
	Issue        string
	Amount       float64
	Sector       dispute.Sector
	Refund       dispute.Refund
	Verified     bool
	PolicyURL    string
	Letter       string
	Error        string
	DurationSecs float64
}

// SummaryRow is one label/value pair on the summary sheet
type SummaryRow struct {
	Label string
	Value interface{}
}
