// Package sitemap orders crawled pages into a level-based site hierarchy.
package sitemap

import (
	"cmp"
	"fmt"
	"slices"

	"git.home.luguber.info/inful/webdoc/internal/pagemodel"
)

// Page is a page positioned in the site hierarchy.
type Page struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Level       int    `json:"level"`
}

// Structure holds pages sorted by level then URL, and the same pages bucketed
// under "level{N}" keys.
type Structure struct {
	Pages     []Page            `json:"pages"`
	Hierarchy map[string][]Page `json:"hierarchy"`
}

// LevelKey returns the hierarchy key for level n.
func LevelKey(n int) string {
	return fmt.Sprintf("level%d", n)
}

// Generate builds the sitemap for pages relative to baseURL.
func Generate(pages []pagemodel.PageInfo, baseURL string) Structure {
	out := make([]Page, 0, len(pages))
	for _, p := range pages {
		out = append(out, Page{
			ID:          pagemodel.PageID(p.URL),
			URL:         p.URL,
			Title:       p.Title,
			Description: p.Description,
			Level:       pagemodel.Level(p.URL, baseURL),
		})
	}

	slices.SortStableFunc(out, func(a, b Page) int {
		if c := cmp.Compare(a.Level, b.Level); c != 0 {
			return c
		}
		return cmp.Compare(a.URL, b.URL)
	})

	hierarchy := make(map[string][]Page)
	for _, p := range out {
		key := LevelKey(p.Level)
		hierarchy[key] = append(hierarchy[key], p)
	}

	return Structure{Pages: out, Hierarchy: hierarchy}
}
