package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"advocate/adapters/excel"
	"advocate/domain/dispute"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func useMockProvider(t *testing.T) {
	t.Helper()
	for _, key := range []string{"LOG_FORMAT", "LOG_LEVEL", "LLM_TIMEOUT", "TEMPERATURE", "MAX_TOKENS", "STRICT_VERIFICATION"} {
		t.Setenv(key, "")
	}
	t.Setenv("LLM_PROVIDER", "mock")
}

func TestRouteCommand(t *testing.T) {
	out, err := execute(t, "route", "My flight was delayed by 5 hours.")
	require.NoError(t, err)
	assert.Equal(t, "TRAVEL\n", out)
}

func TestRefundCommand(t *testing.T) {
	out, err := execute(t, "refund", "800", "travel")
	require.NoError(t, err)
	assert.Equal(t, "$600.00 (Capped at Regulatory Max)\n", out)

	out, err = execute(t, "refund", "300", "health")
	require.NoError(t, err)
	assert.Equal(t, "$0.00 (Applied Deductible)\n", out)

	_, err = execute(t, "refund", "abc", "travel")
	assert.Error(t, err)

	_, err = execute(t, "refund", "100", "space")
	assert.Error(t, err)
}

func TestLoadDemoCases(t *testing.T) {
	cases, err := loadDemoCases("")
	require.NoError(t, err)
	require.Len(t, cases, 2)

	assert.Equal(t, "Delta Airlines", cases[0].Complaint.Company)
	assert.Equal(t, 800.0, cases[0].Complaint.Amount)
	assert.Equal(t, "2025-11-15", cases[0].Complaint.PurchaseDate)
	assert.Equal(t, "AMZ-11223344", cases[1].Complaint.RefNumber)

	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cases: []\n"), 0o600))
	_, err = loadDemoCases(path)
	assert.ErrorContains(t, err, "no demo cases")
}

func TestDemoCommandWithMockProvider(t *testing.T) {
	useMockProvider(t)

	out, err := execute(t, "demo")
	require.NoError(t, err)

	assert.Contains(t, out, "Travel (Delta Airlines) - Formal Request")
	assert.Contains(t, out, "Retail (Amazon) - Formal Request")
	assert.Contains(t, out, "[LEGAL LETTER]:")
	assert.Contains(t, out, "$600.00 (Capped at Regulatory Max)")
	assert.Contains(t, out, "Source Unverified")
}

func TestBatchCommandWithMockProvider(t *testing.T) {
	useMockProvider(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "in.csv")
	out := filepath.Join(dir, "out.xlsx")
	csv := "company,amount,issue\nDelta Airlines,800,Flight delayed\nAmazon,oops,Broken toaster\n"
	require.NoError(t, os.WriteFile(in, []byte(csv), 0o600))

	stdout, err := execute(t, "batch", "--in", in, "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Batch complete")

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Results")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, string(dispute.SectorTravel), rows[1][4])
	assert.NotEmpty(t, rows[2][10], "bad amount row carries an error")

	_, err = excel.ReadComplaints(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}

func TestBatchRequiresInput(t *testing.T) {
	_, err := execute(t, "batch")
	assert.Error(t, err)
}
