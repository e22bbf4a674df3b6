package render

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/webdoc/internal/features"
	"git.home.luguber.info/inful/webdoc/internal/navigation"
)

// doc accumulates Markdown blocks separated by blank lines.
type doc struct {
	blocks []string
}

func (d *doc) add(format string, args ...any) {
	d.blocks = append(d.blocks, fmt.Sprintf(format, args...))
}

func (d *doc) list(items []string) {
	if len(items) > 0 {
		d.blocks = append(d.blocks, strings.Join(items, "\n"))
	}
}

func (d *doc) bytes() []byte {
	return []byte(strings.Join(d.blocks, "\n\n") + "\n")
}

func mdLink(text, target string) string {
	return fmt.Sprintf("[%s](%s)", text, target)
}

type builder struct {
	ctx        *Context
	layout     *layout
	dateFormat string
	opts       formatFlags
}

type formatFlags struct {
	screenshots bool
	breadcrumbs bool
	pageToc     bool
}

func (b *builder) generated() string {
	return b.ctx.Metadata.GeneratedAt.Format(b.dateFormat)
}

func (b *builder) index() []byte {
	m := b.ctx.Metadata
	var d doc
	d.add("# %s", m.Title)
	if m.Description != "" {
		d.add("%s", m.Description)
	}
	d.add("**Generated**: %s\n**Version**: %s\n**Base URL**: %s", b.generated(), m.Version, m.BaseURL)
	d.add("## Overview")
	d.add("This documentation provides comprehensive information about the application.")

	d.add("## Navigation")
	sitemapLink := link(b.layout.index, b.layout.sitemap)
	if sitemapLink == "" {
		sitemapLink = "#"
	}
	nav := []string{"- " + mdLink("Site Map", sitemapLink)}
	for _, item := range b.ctx.Navigation.GNB {
		nav = append(nav, "- "+mdLink(item.Title, item.URL))
	}
	d.list(nav)

	d.add("## Pages")
	var pages []string
	for _, p := range b.ctx.Sitemap.Pages {
		line := "- " + mdLink(p.Title, p.URL)
		if p.Description != "" {
			line += " - " + p.Description
		}
		pages = append(pages, line)
	}
	d.list(pages)

	d.add("---")
	d.add("*Generated with webdoc v%s*", m.Version)
	return d.bytes()
}

func headingForLevel(level int) string {
	switch level {
	case 1:
		return "###"
	case 2:
		return "####"
	default:
		return "#####"
	}
}

func (b *builder) sitemap() []byte {
	var d doc
	d.add("# Site Map")
	d.add("**Base URL**: %s\n**Generated**: %s", b.ctx.Metadata.BaseURL, b.generated())

	d.add("## Page Structure")
	for _, p := range b.ctx.Sitemap.Pages {
		d.add("%s %s", headingForLevel(p.Level), mdLink(p.Title, p.URL))
	}

	d.add("## Features")
	if len(b.ctx.Features) == 0 {
		d.add("No features were detected.")
		return d.bytes()
	}
	var items []string
	for _, f := range b.ctx.Features {
		items = append(items,
			fmt.Sprintf("- **%s**: %s", f.Name, f.Description),
			"  - Used in: "+strings.Join(f.Pages, ", "))
	}
	d.list(items)
	return d.bytes()
}

func (b *builder) gnb() []byte {
	var d doc
	d.add("# Global Navigation")
	for _, item := range b.ctx.Navigation.GNB {
		d.add("## %s", item.Title)
		d.add("**URL**: %s", item.URL)
		if len(item.Children) > 0 {
			d.add("### Sub-navigation")
			var children []string
			for _, c := range item.Children {
				children = append(children, "- "+mdLink(c.Title, c.URL))
			}
			d.list(children)
		}
	}
	return d.bytes()
}

// trail renders breadcrumbs: every entry but the last is a link.
func trail(items []navigation.Item) string {
	parts := make([]string, 0, len(items))
	for i, item := range items {
		if i == len(items)-1 {
			parts = append(parts, item.Title)
			continue
		}
		parts = append(parts, mdLink(item.Title, item.URL))
	}
	return strings.Join(parts, " > ")
}

func (b *builder) lnb() []byte {
	var d doc
	d.add("# Local Navigation")
	var items []string
	for _, item := range b.ctx.Navigation.LNB {
		items = append(items, "- "+mdLink(item.Title, item.URL))
	}
	d.list(items)
	d.add("## Breadcrumbs")
	if t := trail(b.ctx.Navigation.Breadcrumbs); t != "" {
		d.add("%s", t)
	}
	return d.bytes()
}

func elementLine(e features.ElementInfo) string {
	if e.Text == "" {
		return fmt.Sprintf("- **%s**: %s", e.Type, e.Description)
	}
	return fmt.Sprintf("- **%s**: %s - %s", e.Type, e.Text, e.Description)
}

func (b *builder) overview(p Page) []byte {
	var d doc
	d.add("# %s", p.Title)
	if b.opts.breadcrumbs {
		crumbs := append([]navigation.Item{}, b.ctx.Navigation.Breadcrumbs...)
		crumbs = append(crumbs, navigation.Item{Title: p.Title, URL: p.URL})
		d.add("%s", trail(crumbs))
	}
	d.add("**URL**: %s", p.URL)
	if b.opts.screenshots && p.Screenshot != "" {
		d.add("![Screenshot](%s)", p.Screenshot)
	}

	d.add("## Description")
	if p.Description != "" {
		d.add("%s", p.Description)
	} else {
		d.add("No description available.")
	}

	if b.opts.pageToc && len(p.Features) > 0 {
		d.add("## Contents")
		var toc []string
		for _, f := range p.Features {
			toc = append(toc, "- "+mdLink(f.Name, "#"+f.ID))
		}
		d.list(toc)
	}

	d.add("## Features")
	if len(p.Features) == 0 {
		d.add("No interactive features were detected on this page.")
	}
	for _, f := range p.Features {
		d.add("### %s", f.Name)
		d.add("%s", f.Description)
		if f.Scenario != "" {
			d.add("**Usage Scenario**: %s", f.Scenario)
		}
		if len(f.Elements) > 0 {
			d.add("**UI Elements**:")
			var els []string
			for _, e := range f.Elements {
				els = append(els, elementLine(e))
			}
			d.list(els)
		}
	}

	if len(p.Links) > 0 {
		d.add("## Related Links")
		var links []string
		for _, l := range p.Links {
			links = append(links, "- "+mdLink(l, l))
		}
		d.list(links)
	}
	return d.bytes()
}

func (b *builder) instructions(p Page) []byte {
	self := b.layout.instructions[p.ID]

	var d doc
	d.add("# %s - Instructions", p.Title)
	d.add("## How to Use")
	if len(p.Features) == 0 {
		d.add("This page has no interactive features to walk through.")
	}
	for _, f := range p.Features {
		d.add("### %s", f.Name)
		if f.Scenario != "" {
			d.add("**Scenario**: %s", f.Scenario)
		}
		d.add("**Steps**:")
		steps := make([]string, 0, len(f.Elements))
		for i, e := range f.Elements {
			steps = append(steps, fmt.Sprintf("%d. %s", i+1, e.Description))
		}
		d.list(steps)
	}

	d.add("## Tips")
	tips := []string{"- Check related pages in the navigation"}
	if overview := link(self, b.layout.overview[p.ID]); overview != "" {
		tips = append([]string{"- Review the " + mdLink("overview", overview) + " for more context"}, tips...)
	}
	d.list(tips)
	return d.bytes()
}

func (b *builder) feature(f features.Feature) []byte {
	self := b.layout.feature[f.ID]

	var d doc
	d.add("# %s", f.Name)
	d.add("%s", f.Description)
	if f.Scenario != "" {
		d.add("**Usage Scenario**: %s", f.Scenario)
	}

	d.add("## Used In")
	var pages []string
	for _, id := range f.Pages {
		if target := link(self, b.layout.overview[id]); target != "" {
			pages = append(pages, "- "+mdLink(id, target))
		} else {
			pages = append(pages, "- "+id)
		}
	}
	d.list(pages)

	d.add("## UI Elements")
	var els []string
	for _, e := range f.Elements {
		els = append(els, fmt.Sprintf("- **%s**: %s\n  - %s", e.Type, e.Text, e.Description))
	}
	d.list(els)
	return d.bytes()
}
