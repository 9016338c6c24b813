package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"advocate/domain/dispute"
	"advocate/internal/logging"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// DataReader handles reading Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	logger   *zap.Logger
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType, logger: logging.Named("excel")}
}

// ReadData reads the first sheet (or the CSV) into structured format
func (r *DataReader) ReadData() (*ExcelData, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	var rows [][]string
	var err error
	start := time.Now()
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	default:
		rows, err = r.readExcelRows()
	}
	if err != nil {
		return nil, err
	}
	r.logger.Debug("file read",
		zap.String("path", r.filePath),
		zap.Int("rows", len(rows)),
		zap.Duration("elapsed", time.Since(start)))

	if len(rows) < 2 {
		return nil, fmt.Errorf("%s file must have at least a header row and one data row", strings.ToUpper(r.fileType))
	}
	return r.processRows(rows), nil
}

func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel file has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", sheets[0], err)
	}
	return rows, nil
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return rows, nil
}

// processRows converts raw string rows into ExcelData. Blank rows are skipped.
func (r *DataReader) processRows(rows [][]string) *ExcelData {
	headers := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		headers[i] = normalizeHeader(header)
	}

	var dataRows []RawRowData
	for _, row := range rows[1:] {
		rowData := make(RawRowData)
		blank := true
		for j, cell := range row {
			if j < len(headers) {
				value := strings.TrimSpace(cell)
				rowData[headers[j]] = value
				if value != "" {
					blank = false
				}
			}
		}
		if blank {
			dataRows = append(dataRows, nil)
			continue
		}
		dataRows = append(dataRows, rowData)
	}

	return &ExcelData{Headers: headers, Rows: dataRows}
}

// headerAliases maps accepted column names to complaint fields
var headerAliases = map[string]string{
	"name":           "user_name",
	"your_name":      "user_name",
	"email":          "user_email",
	"address":        "user_address",
	"company_name":   "company",
	"dispute_amount": "amount",
	"description":    "issue",
	"reference":      "ref_number",
	"ref":            "ref_number",
	"payment":        "payment_method",
}

func normalizeHeader(h string) string {
	key := strings.ToLower(strings.TrimSpace(h))
	key = strings.NewReplacer(" ", "_", "-", "_", "($)", "", "$", "").Replace(key)
	key = strings.Trim(key, "_")
	if alias, ok := headerAliases[key]; ok {
		return alias
	}
	return key
}

// ReadComplaints reads a batch file of complaints. Rows with an unparseable
// amount are returned with Err set rather than failing the whole file.
func ReadComplaints(path string) ([]ComplaintRow, error) {
	data, err := NewDataReader(path).ReadData()
	if err != nil {
		return nil, err
	}

	for _, required := range []string{"company", "amount", "issue"} {
		if !hasHeader(data.Headers, required) {
			return nil, fmt.Errorf("batch file is missing the %q column", required)
		}
	}

	var out []ComplaintRow
	for i, row := range data.Rows {
		if row == nil {
			continue
		}
		cr := ComplaintRow{Row: i + 2}
		amount, err := dispute.ParseAmount(row["amount"])
		if err != nil {
			cr.Err = err
		}
		cr.Complaint = dispute.Complaint{
			Name:          row["user_name"],
			Email:         row["user_email"],
			Address:       row["user_address"],
			Company:       row["company"],
			Amount:        amount,
			PurchaseDate:  row["purchase_date"],
			Issue:         row["issue"],
			RefNumber:     row["ref_number"],
			PaymentMethod: row["payment_method"],
		}
		out = append(out, cr)
	}
	return out, nil
}

func hasHeader(headers []string, name string) bool {
	for _, h := range headers {
		if h == name {
			return true
		}
	}
	return false
}
