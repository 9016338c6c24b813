package dispute

import (
	"math"
	"strconv"
	"strings"

	"advocate/internal/errors"
)

// Complaint is what the intake form collects
type Complaint struct {
	Name          string  `json:"user_name" yaml:"user_name"`
	Email         string  `json:"user_email" yaml:"user_email"`
	Address       string  `json:"user_address" yaml:"user_address"`
	Company       string  `json:"company" yaml:"company"`
	Amount        float64 `json:"amount" yaml:"amount"`
	PurchaseDate  string  `json:"purchase_date" yaml:"purchase_date"`
	Issue         string  `json:"issue" yaml:"issue"`
	RefNumber     string  `json:"ref_number,omitempty" yaml:"ref_number"`
	PaymentMethod string  `json:"payment_method,omitempty" yaml:"payment_method"`
}

// Placeholders used in the letter when the user left a field blank
const (
	DefaultName          = "Valued Customer"
	DefaultEmail         = "customer@example.com"
	DefaultAddress       = "[Your Address]"
	DefaultPurchaseDate  = "[Date]"
	DefaultRefNumber     = "[Reference Number]"
	DefaultPaymentMethod = "[Payment Method]"
)

// Validate checks the fields the pipeline cannot run without.
func (c Complaint) Validate() error {
	if strings.TrimSpace(c.Company) == "" {
		return errors.ValidationError("company name is required")
	}
	if strings.TrimSpace(c.Issue) == "" {
		return errors.ValidationError("issue description is required")
	}
	if c.Amount < 0 || math.IsNaN(c.Amount) || math.IsInf(c.Amount, 0) {
		return errors.ValidationError("dispute amount must be a non-negative number")
	}
	return nil
}

// WithDefaults returns a copy with blank letter fields replaced by
// placeholders and surrounding whitespace trimmed.
func (c Complaint) WithDefaults() Complaint {
	c.Name = orDefault(c.Name, DefaultName)
	c.Email = orDefault(c.Email, DefaultEmail)
	c.Address = orDefault(c.Address, DefaultAddress)
	c.PurchaseDate = orDefault(c.PurchaseDate, DefaultPurchaseDate)
	c.RefNumber = orDefault(c.RefNumber, DefaultRefNumber)
	c.PaymentMethod = orDefault(c.PaymentMethod, DefaultPaymentMethod)
	c.Company = strings.TrimSpace(c.Company)
	c.Issue = strings.TrimSpace(c.Issue)
	return c
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

// ParseAmount parses a dispute amount typed into a form, e.g. "500" or
// "$1,200.50".
func ParseAmount(s string) (float64, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0, errors.InvalidInput("dispute amount is required")
	}
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, errors.InvalidInput("dispute amount is not a number: " + s)
	}
	if amount < 0 {
		return 0, errors.InvalidInput("dispute amount cannot be negative")
	}
	return amount, nil
}
