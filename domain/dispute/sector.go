package dispute

import (
	"fmt"
	"strings"
)

// Sector is the industry a complaint is routed to
type Sector string

const (
	SectorHealth  Sector = "HEALTH"
	SectorTravel  Sector = "TRAVEL"
	SectorFinance Sector = "FINANCE"
	SectorRetail  Sector = "RETAIL"
)

// Sectors lists every sector in routing priority order, default last.
var Sectors = []Sector{SectorHealth, SectorTravel, SectorFinance, SectorRetail}

// sectorRule pairs a sector with the keywords that select it.
type sectorRule struct {
	sector   Sector
	keywords []string
}

// Order matters: the first rule with a matching keyword wins.
var routingRules = []sectorRule{
	{SectorHealth, []string{"doctor", "hospital", "surgery", "mri", "bluecross", "insurance", "medical"}},
	{SectorTravel, []string{"flight", "delay", "airline", "indigo", "hotel", "train", "cancel"}},
	{SectorFinance, []string{"crypto", "bank", "transaction", "fee", "bitcoin", "wallet"}},
}

// RouteCase classifies an issue description by keyword. Matching is a
// case-insensitive substring test, so "cancelled" matches "cancel".
// Descriptions with no keyword are RETAIL.
func RouteCase(issue string) Sector {
	text := strings.ToLower(issue)
	for _, rule := range routingRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(text, keyword) {
				return rule.sector
			}
		}
	}
	return SectorRetail
}

// Keywords returns the routing keywords for a sector. RETAIL has none.
func Keywords(sector Sector) []string {
	for _, rule := range routingRules {
		if rule.sector == sector {
			return append([]string(nil), rule.keywords...)
		}
	}
	return nil
}

// ParseSector parses a sector name case-insensitively.
func ParseSector(s string) (Sector, error) {
	candidate := Sector(strings.ToUpper(strings.TrimSpace(s)))
	for _, sector := range Sectors {
		if candidate == sector {
			return sector, nil
		}
	}
	return "", fmt.Errorf("unknown sector %q", s)
}

// Title returns the sector in title case, e.g. "Travel".
func (s Sector) Title() string {
	if s == "" {
		return ""
	}
	lower := strings.ToLower(string(s))
	return strings.ToUpper(lower[:1]) + lower[1:]
}
