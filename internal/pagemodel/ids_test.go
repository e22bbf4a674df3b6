package pagemodel

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"root", "https://example.com/", "index"},
		{"no path", "https://example.com", "index"},
		{"single segment", "https://example.com/about", "about"},
		{"trailing slash", "https://example.com/about/", "about"},
		{"nested", "https://example.com/docs/Getting/Started", "docs-getting-started"},
		{"repeated slashes", "https://example.com//a//", "a"},
		{"unsafe chars", "https://example.com/user.profile", "user_profile"},
		{"query ignored", "https://example.com/search?q=x", "search"},
		{"percent encoded", "https://example.com/caf%C3%A9", "caf_c3_a9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PageID(tt.url))
		})
	}
}

func TestPageID_InvalidURLFallback(t *testing.T) {
	assert.Equal(t, "not_a_url", PageID("not a url"))

	long := strings.Repeat("Segment/", 20)
	id := PageID(long)
	assert.Len(t, id, 50)
	assert.Equal(t, strings.ToLower(id), id)
	assert.NotContains(t, id, "/")
}

func TestLevel(t *testing.T) {
	base := "https://example.com"
	tests := []struct {
		name string
		url  string
		base string
		want int
	}{
		{"root", "https://example.com/", base, 1},
		{"one segment", "https://example.com/about", base, 2},
		{"two segments", "https://example.com/docs/intro", base, 3},
		{"capped", "https://example.com/a/b/c/d/e/f/g/h", base, 6},
		{"equals base path", "https://example.com/docs", "https://example.com/docs/", 1},
		{"below base path", "https://example.com/docs/api", "https://example.com/docs", 2},
		{"sibling of base path", "https://example.com/docs2/api", "https://example.com/docs", 3},
		{"invalid url", "::nope", base, 1},
		{"invalid base", "https://example.com/a", "", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Level(tt.url, tt.base)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 1)
			assert.LessOrEqual(t, got, MaxLevel)
		})
	}
}

func TestTopLevelPath(t *testing.T) {
	base := "https://example.com/app"
	assert.Equal(t, "/", TopLevelPath("https://example.com/app", base))
	assert.Equal(t, "/settings", TopLevelPath("https://example.com/app/settings/profile", base))
	assert.Equal(t, "/other", TopLevelPath("https://example.com/other", base))
	assert.Equal(t, "/", TopLevelPath("bad url", base))
}
