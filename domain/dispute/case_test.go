package dispute

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchLink(t *testing.T) {
	assert.Equal(t,
		"https://www.google.com/search?q=Delta+Airlines+refund+policy",
		SearchLink(" Delta Airlines refund policy "))
	assert.Equal(t,
		"https://www.google.com/search?q=AT%26T+fees",
		SearchLink("AT&T fees"))
}

func TestCleanQuery(t *testing.T) {
	assert.Equal(t, "delta refund policy", CleanQuery("  \"delta refund policy\"\n"))
	assert.Equal(t, "plain", CleanQuery("plain"))
}

func TestIsAuthentic(t *testing.T) {
	assert.True(t, IsAuthentic("TRUE - official domain"))
	assert.True(t, IsAuthentic("true, looks like the airline's site"))
	assert.False(t, IsAuthentic("FALSE: a search results page"))
	assert.False(t, IsAuthentic(""))
}

func TestFallbackPolicy(t *testing.T) {
	p := FallbackPolicy()
	assert.Equal(t, "N/A", p.URL)
	assert.Equal(t, "Standard Regulatory Logic applied.", p.Text)
}
