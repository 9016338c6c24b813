package excel

import (
	"os"
	"path/filepath"
	"testing"

	"advocate/domain/dispute"
	"advocate/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeSheet(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		require.NoError(t, writeRow(f, "Sheet1", i+1, row))
	}
	path := filepath.Join(t.TempDir(), "complaints.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadComplaintsXLSX(t *testing.T) {
	path := writeSheet(t, [][]interface{}{
		{"Your Name", "Email", "Company Name", "Dispute Amount ($)", "Issue", "Ref"},
		{"John Doe", "john.doe@example.com", "Delta Airlines", "800", "My flight was delayed by 5 hours.", "DL-987654321"},
		{},
		{"Jane Smith", "jane.smith@example.com", "Amazon", "lots", "The item I bought is defective.", ""},
	})

	rows, err := ReadComplaints(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[0].Row)
	assert.NoError(t, rows[0].Err)
	assert.Equal(t, dispute.Complaint{
		Name:      "John Doe",
		Email:     "john.doe@example.com",
		Company:   "Delta Airlines",
		Amount:    800,
		Issue:     "My flight was delayed by 5 hours.",
		RefNumber: "DL-987654321",
	}, rows[0].Complaint)

	assert.Equal(t, 4, rows[1].Row)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(rows[1].Err))
	assert.Equal(t, "Amazon", rows[1].Complaint.Company)
}

func TestReadComplaintsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "complaints.csv")
	content := "company,amount,issue,payment_method\nBlueCross,\"$1,200.50\",Denied MRI claim,Visa\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	rows, err := ReadComplaints(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1200.5, rows[0].Complaint.Amount)
	assert.Equal(t, "Visa", rows[0].Complaint.PaymentMethod)
}

func TestReadComplaintsMissingColumn(t *testing.T) {
	path := writeSheet(t, [][]interface{}{
		{"company", "issue"},
		{"Delta", "late"},
	})

	_, err := ReadComplaints(path)
	assert.ErrorContains(t, err, `"amount"`)
}

func TestReadDataErrors(t *testing.T) {
	_, err := NewDataReader(filepath.Join(t.TempDir(), "missing.xlsx")).ReadData()
	assert.ErrorContains(t, err, "not found")

	path := writeSheet(t, [][]interface{}{{"company", "amount", "issue"}})
	_, err = NewDataReader(path).ReadData()
	assert.ErrorContains(t, err, "at least a header row")
}

func TestWriteResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xlsx")
	results := []ResultRow{{
		Row:       2,
		Company:   "Delta Airlines",
		Issue:     "My flight was delayed",
		Amount:    800,
		Sector:    dispute.SectorTravel,
		Refund:    dispute.Refund{Amount: 600, Note: dispute.NoteCapped},
		Verified:  true,
		PolicyURL: "https://www.google.com/search?q=delta",
		Letter:    "Dear Delta,",
	}}
	summary := []SummaryRow{{"Complaints", 1}, {"Total refund", 600.0}}

	require.NoError(t, WriteResults(path, results, summary))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{resultsSheet, summarySheet}, f.GetSheetList())

	rows, err := f.GetRows(resultsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, resultHeaders, rows[0])
	assert.Equal(t, "Delta Airlines", rows[1][1])
	assert.Equal(t, "TRAVEL", rows[1][4])
	assert.Equal(t, "600", rows[1][5])
	assert.Equal(t, "Capped at Regulatory Max", rows[1][6])
	assert.Equal(t, "TRUE", rows[1][7])

	label, err := f.GetCellValue(summarySheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Total refund", label)
}
