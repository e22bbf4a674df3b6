package sitemap

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/webdoc/internal/pagemodel"
)

func pages(urls ...string) []pagemodel.PageInfo {
	out := make([]pagemodel.PageInfo, 0, len(urls))
	for _, u := range urls {
		out = append(out, pagemodel.PageInfo{URL: u, Title: u})
	}
	return out
}

func TestGenerate_SortsByLevelThenURL(t *testing.T) {
	s := Generate(pages(
		"https://example.com/docs/intro",
		"https://example.com/about",
		"https://example.com/",
		"https://example.com/contact",
		"https://example.com/a/b/c/d/e/f/g",
	), "https://example.com")

	var got []string
	for _, p := range s.Pages {
		got = append(got, p.URL)
	}
	assert.Equal(t, []string{
		"https://example.com/",
		"https://example.com/about",
		"https://example.com/contact",
		"https://example.com/docs/intro",
		"https://example.com/a/b/c/d/e/f/g",
	}, got)

	assert.Equal(t, 1, s.Pages[0].Level)
	assert.Equal(t, "index", s.Pages[0].ID)
	assert.Equal(t, 6, s.Pages[4].Level)
	for _, p := range s.Pages {
		assert.GreaterOrEqual(t, p.Level, 1)
		assert.LessOrEqual(t, p.Level, 6)
	}
}

func TestGenerate_Hierarchy(t *testing.T) {
	s := Generate(pages(
		"https://example.com/b",
		"https://example.com/",
		"https://example.com/a",
		"https://example.com/a/x",
	), "https://example.com/")

	require.Len(t, s.Hierarchy, 3)
	require.Len(t, s.Hierarchy[LevelKey(2)], 2)
	assert.Equal(t, "https://example.com/a", s.Hierarchy["level2"][0].URL)
	assert.Equal(t, "https://example.com/b", s.Hierarchy["level2"][1].URL)
	assert.Equal(t, "https://example.com/a/x", s.Hierarchy["level3"][0].URL)
	_, ok := s.Hierarchy["level4"]
	assert.False(t, ok)
}

func TestGenerate_BasePathPageIsLevelOne(t *testing.T) {
	s := Generate(pages("https://example.com/app/", "https://example.com/app/settings"), "https://example.com/app")
	assert.Equal(t, 1, s.Pages[0].Level)
	assert.Equal(t, 2, s.Pages[1].Level)
}

func TestGenerate_MalformedURLDefaultsToLevelOne(t *testing.T) {
	s := Generate(pages("not a url"), "https://example.com")
	require.Len(t, s.Pages, 1)
	assert.Equal(t, 1, s.Pages[0].Level)
	assert.Equal(t, "not_a_url", s.Pages[0].ID)
}

func TestGenerate_Empty(t *testing.T) {
	s := Generate(nil, "https://example.com")
	assert.Empty(t, s.Pages)
	assert.Empty(t, s.Hierarchy)
}

func TestStructure_XML(t *testing.T) {
	s := Generate(pages("https://example.com/", "https://example.com/docs/a"), "https://example.com")
	out, err := s.XML(time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	xml := string(out)
	assert.True(t, strings.HasPrefix(xml, "<?xml"))
	assert.Contains(t, xml, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	assert.Contains(t, xml, "<loc>https://example.com/</loc>")
	assert.Contains(t, xml, "<lastmod>2026-03-04</lastmod>")
	assert.Contains(t, xml, "<priority>1.0</priority>")
	assert.Contains(t, xml, "<priority>0.6</priority>")

	out, err = s.XML(time.Time{})
	require.NoError(t, err)
	assert.NotContains(t, string(out), "lastmod")
}
