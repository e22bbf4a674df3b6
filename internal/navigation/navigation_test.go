package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/webdoc/internal/pagemodel"
)

const base = "https://example.com"

func page(url, title string) pagemodel.PageInfo {
	return pagemodel.PageInfo{URL: url, Title: title}
}

func TestGenerate_GNBGroupsByTopLevelPath(t *testing.T) {
	pages := []pagemodel.PageInfo{
		page("https://example.com/settings/profile", "Profile"),
		page("https://example.com/", "Home"),
		page("https://example.com/settings", "Settings"),
		page("https://example.com/about", "About"),
		page("https://example.com/settings/billing", "Billing"),
	}

	nav := Generate(pages, base)
	require.Len(t, nav.GNB, 3)

	assert.Equal(t, "https://example.com/", nav.GNB[0].URL)
	assert.Nil(t, nav.GNB[0].Children)
	assert.Equal(t, "About", nav.GNB[1].Title)

	settings := nav.GNB[2]
	assert.Equal(t, "Settings", settings.Title)
	assert.Equal(t, []Item{
		{Title: "Profile", URL: "https://example.com/settings/profile"},
		{Title: "Billing", URL: "https://example.com/settings/billing"},
	}, settings.Children)
}

func TestGenerate_GNBTieKeepsFirstSeen(t *testing.T) {
	pages := []pagemodel.PageInfo{
		page("https://example.com/docs/bb", "B"),
		page("https://example.com/docs/aa", "A"),
	}
	nav := Generate(pages, base)
	require.Len(t, nav.GNB, 1)
	assert.Equal(t, "B", nav.GNB[0].Title)
	require.Len(t, nav.GNB[0].Children, 1)
	assert.Equal(t, "A", nav.GNB[0].Children[0].Title)
}

func TestGenerate_GNBDuplicateURLsExcludedFromChildren(t *testing.T) {
	pages := []pagemodel.PageInfo{
		page("https://example.com/docs", "Docs"),
		page("https://example.com/docs", "Docs again"),
	}
	nav := Generate(pages, base)
	require.Len(t, nav.GNB, 1)
	assert.NotNil(t, nav.GNB[0].Children)
	assert.Empty(t, nav.GNB[0].Children)
}

func TestGenerate_GNBCountBoundedByTopLevelPaths(t *testing.T) {
	pages := []pagemodel.PageInfo{
		page("https://example.com/a/1", "a1"),
		page("https://example.com/a/2", "a2"),
		page("https://example.com/b", "b"),
		page("invalid", "broken"),
		page("https://example.com/", "home"),
	}
	nav := Generate(pages, base)

	tops := map[string]bool{}
	for _, p := range pages {
		tops[pagemodel.TopLevelPath(p.URL, base)] = true
	}
	assert.LessOrEqual(t, len(nav.GNB), len(tops))
}

func TestGenerate_LNBListsEveryPageOnceSorted(t *testing.T) {
	pages := []pagemodel.PageInfo{
		page("https://example.com/z", "Z"),
		page("https://example.com/a/b", "AB"),
		page("https://example.com/", "Home"),
	}
	nav := Generate(pages, base)

	require.Len(t, nav.LNB, 3)
	assert.Equal(t, "https://example.com/", nav.LNB[0].URL)
	assert.Equal(t, "https://example.com/a/b", nav.LNB[1].URL)
	assert.Equal(t, "https://example.com/z", nav.LNB[2].URL)
	for _, item := range nav.LNB {
		assert.Nil(t, item.Children)
	}
}

func TestGenerate_Breadcrumbs(t *testing.T) {
	nav := Generate(nil, base)
	assert.Equal(t, []Item{{Title: "Home", URL: base}}, nav.Breadcrumbs)
	assert.Empty(t, nav.GNB)
	assert.Empty(t, nav.LNB)
}
