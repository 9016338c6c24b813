package dispute

import "strings"

// Refund is the estimate the demand letter asks for
type Refund struct {
	Amount float64 `json:"amount"`
	Note   string  `json:"note"`
}

const (
	// HealthDeductible is subtracted from health claims.
	HealthDeductible = 500.0
	// TravelRefundCap is the regulatory maximum for travel claims.
	TravelRefundCap = 600.0
)

// Notes attached to refund estimates
const (
	NoteDeductible    = "Applied Deductible"
	NoteCapped        = "Capped at Regulatory Max"
	NoteFullRefund    = "Full Refund"
	NoteUnknownSector = "Unknown Sector"
)

// CalculateRefund applies the per-sector refund rule. The sector is compared
// case-insensitively. Sectors without a rule, FINANCE included, yield zero.
func CalculateRefund(amount float64, sector Sector) Refund {
	switch Sector(strings.ToUpper(string(sector))) {
	case SectorHealth:
		final := amount - HealthDeductible
		if final < 0 {
			final = 0
		}
		return Refund{Amount: final, Note: NoteDeductible}
	case SectorTravel:
		if amount > TravelRefundCap {
			return Refund{Amount: TravelRefundCap, Note: NoteCapped}
		}
		return Refund{Amount: amount, Note: NoteFullRefund}
	case SectorRetail:
		return Refund{Amount: amount, Note: NoteFullRefund}
	default:
		return Refund{Amount: 0, Note: NoteUnknownSector}
	}
}
