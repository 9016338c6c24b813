package api

import "advocate/domain/dispute"

// CaseRequest is the body of POST /api/v1/cases
type CaseRequest struct {
	dispute.Complaint
	// APIKey overrides the configured provider key for this request
	APIKey string `json:"api_key,omitempty"`
}

// RouteRequest is the body of POST /api/v1/route
type RouteRequest struct {
	Issue string `json:"issue"`
}

// RouteResponse names the sector an issue routes to
type RouteResponse struct {
	Sector   dispute.Sector `json:"sector"`
	Keywords []string       `json:"keywords"`
}

// RefundRequest is the body of POST /api/v1/refund. Sector wins over
// Issue when both are set.
type RefundRequest struct {
	Amount float64 `json:"amount"`
	Sector string  `json:"sector,omitempty"`
	Issue  string  `json:"issue,omitempty"`
}

// RefundResponse is a refund estimate
type RefundResponse struct {
	Sector dispute.Sector `json:"sector"`
	dispute.Refund
}

// ErrorResponse is returned for every failed request
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
