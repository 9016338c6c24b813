package dispute

import (
	"net/url"
	"strings"
	"time"

	"advocate/models"

	"github.com/google/uuid"
)

// Policy is the researcher's finding: a link and the model's summary of the
// policy or law it believes applies.
type Policy struct {
	URL         string `json:"url"`
	Text        string `json:"text"`
	SearchQuery string `json:"search_query,omitempty"`
}

// Verification is the verifier's opinion of a policy source
type Verification struct {
	Authentic  bool   `json:"authentic"`
	Assessment string `json:"assessment"`
}

// Step is one entry in the progress timeline shown to the user
type Step struct {
	Agent    string        `json:"agent"`
	Message  string        `json:"message"`
	Duration time.Duration `json:"duration_ns"`
}

// Case is the full result of one advocate run
type Case struct {
	ID            uuid.UUID            `json:"id"`
	Complaint     Complaint            `json:"complaint"`
	Sector        Sector               `json:"sector"`
	Refund        Refund               `json:"refund"`
	Analysis      string               `json:"analysis"`
	Policy        Policy               `json:"policy"`
	Verification  Verification         `json:"verification"`
	PolicyApplied Policy               `json:"policy_applied"`
	Letter        string               `json:"letter"`
	UserReply     string               `json:"user_reply"`
	Steps         []Step               `json:"steps"`
	Usage         *models.UsageSummary `json:"usage,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

const searchEndpoint = "https://www.google.com/search?q="

// SearchLink is the raw-link search result for a query.
func SearchLink(query string) string {
	return searchEndpoint + url.QueryEscape(strings.TrimSpace(query))
}

// CleanQuery trims whitespace and wrapping quotes from a model-written
// search query.
func CleanQuery(raw string) string {
	return strings.Trim(strings.TrimSpace(raw), "\"")
}

// IsAuthentic reads a verifier answer: any "TRUE" in it counts.
func IsAuthentic(assessment string) bool {
	return strings.Contains(strings.ToUpper(assessment), "TRUE")
}

// FallbackPolicy is used when a found source cannot be trusted.
func FallbackPolicy() Policy {
	return Policy{URL: "N/A", Text: "Standard Regulatory Logic applied."}
}
