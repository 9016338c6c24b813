package dispute

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteCase(t *testing.T) {
	tests := []struct {
		name  string
		issue string
		want  Sector
	}{
		{"flight delay", "My flight was delayed by 5 hours.", SectorTravel},
		{"defective item", "The item I bought is defective.", SectorRetail},
		{"hospital bill", "The hospital billed me twice for an MRI", SectorHealth},
		{"mixed case keyword", "BlueCross denied my claim", SectorHealth},
		{"finance", "My bank charged an overdraft", SectorFinance},
		{"crypto wallet", "Lost access to my wallet", SectorFinance},
		{"substring match", "They cancelled my booking", SectorTravel},
		{"health beats travel", "Travel insurance refused my flight claim", SectorHealth},
		{"travel beats finance", "Airline charged a baggage fee", SectorTravel},
		{"empty", "", SectorRetail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RouteCase(tt.issue))
		})
	}
}

func TestKeywordsAreCopies(t *testing.T) {
	kw := Keywords(SectorTravel)
	require.NotEmpty(t, kw)
	kw[0] = "mutated"
	assert.Equal(t, "flight", Keywords(SectorTravel)[0])
	assert.Nil(t, Keywords(SectorRetail))
}

func TestParseSector(t *testing.T) {
	s, err := ParseSector(" travel ")
	require.NoError(t, err)
	assert.Equal(t, SectorTravel, s)

	_, err = ParseSector("General")
	assert.Error(t, err)
}

func TestSectorTitle(t *testing.T) {
	assert.Equal(t, "Health", SectorHealth.Title())
	assert.Equal(t, "", Sector("").Title())
}
