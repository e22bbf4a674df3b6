// Package navigation derives global (GNB) and local (LNB) navigation lists from
// crawled pages.
package navigation

import (
	"cmp"
	"slices"

	"git.home.luguber.info/inful/webdoc/internal/pagemodel"
)

// Item is one navigation entry. Children is only set for GNB entries whose
// top-level group has more than one page.
type Item struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Children []Item `json:"children,omitempty"`
}

// Structure is the navigation derived for a site.
type Structure struct {
	GNB         []Item `json:"gnb"`
	LNB         []Item `json:"lnb"`
	Breadcrumbs []Item `json:"breadcrumbs"`
}

// HomeTitle is the label of the root breadcrumb.
const HomeTitle = "Home"

func byURL(a, b Item) int { return cmp.Compare(a.URL, b.URL) }

// Generate builds navigation for pages relative to baseURL.
func Generate(pages []pagemodel.PageInfo, baseURL string) Structure {
	return Structure{
		GNB:         globalNav(pages, baseURL),
		LNB:         localNav(pages),
		Breadcrumbs: []Item{{Title: HomeTitle, URL: baseURL}},
	}
}

// globalNav groups pages by their first path segment below baseURL. The shortest
// URL of a group is its entry; ties go to the page seen first.
func globalNav(pages []pagemodel.PageInfo, baseURL string) []Item {
	var order []string
	groups := make(map[string][]pagemodel.PageInfo)
	for _, p := range pages {
		top := pagemodel.TopLevelPath(p.URL, baseURL)
		if _, ok := groups[top]; !ok {
			order = append(order, top)
		}
		groups[top] = append(groups[top], p)
	}

	items := make([]Item, 0, len(order))
	for _, top := range order {
		members := groups[top]
		main := members[0]
		for _, p := range members[1:] {
			if len(p.URL) < len(main.URL) {
				main = p
			}
		}

		item := Item{Title: main.Title, URL: main.URL}
		if len(members) > 1 {
			item.Children = []Item{}
			for _, p := range members {
				if p.URL != main.URL {
					item.Children = append(item.Children, Item{Title: p.Title, URL: p.URL})
				}
			}
		}
		items = append(items, item)
	}

	slices.SortStableFunc(items, byURL)
	return items
}

func localNav(pages []pagemodel.PageInfo) []Item {
	items := make([]Item, 0, len(pages))
	for _, p := range pages {
		items = append(items, Item{Title: p.Title, URL: p.URL})
	}
	slices.SortStableFunc(items, byURL)
	return items
}
