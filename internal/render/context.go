// Package render turns a documentation context into the in-memory file set
// described by a template definition. Each file kind (index, sitemap, global and
// local navigation, page overview, page instructions, feature) has its own typed
// builder; nothing is written to disk here.
package render

import (
	"time"

	"git.home.luguber.info/inful/webdoc/internal/features"
	"git.home.luguber.info/inful/webdoc/internal/navigation"
	"git.home.luguber.info/inful/webdoc/internal/pagemodel"
	"git.home.luguber.info/inful/webdoc/internal/sitemap"
)

// Metadata describes the documented site and the generation run.
type Metadata struct {
	Title       string
	Description string
	BaseURL     string
	Version     string
	GeneratedAt time.Time
}

// Page is a crawled page prepared for rendering. Features holds only the
// features observed on this page.
type Page struct {
	ID          string
	URL         string
	Title       string
	Description string
	Screenshot  string
	Features    []features.Feature
	Links       []string
	Level       int
}

// Context is everything a template renders from.
type Context struct {
	Metadata   Metadata
	Sitemap    sitemap.Structure
	Navigation navigation.Structure
	Pages      []Page
	Features   []features.Feature
}

// File is a rendered file. Path is slash-separated and relative to the output
// directory, already prefixed with the template root.
type File struct {
	Path    string
	Content []byte
}

// ResultMetadata summarizes a render call.
type ResultMetadata struct {
	TemplateName    string
	TemplateVersion string
	FilesGenerated  int
	GeneratedAt     time.Time
}

// Result is the ordered output of a render call.
type Result struct {
	Files    []File
	Metadata ResultMetadata
}

// NewContext assembles the render context for pages and their extracted
// features. Each page gets the subset of feats observed on it, in feature order.
func NewContext(pages []pagemodel.PageInfo, feats []features.Feature, meta Metadata) *Context {
	ctx := &Context{
		Metadata:   meta,
		Sitemap:    sitemap.Generate(pages, meta.BaseURL),
		Navigation: navigation.Generate(pages, meta.BaseURL),
		Pages:      make([]Page, 0, len(pages)),
		Features:   feats,
	}
	for _, p := range pages {
		id := pagemodel.PageID(p.URL)
		page := Page{
			ID:          id,
			URL:         p.URL,
			Title:       p.Title,
			Description: p.Description,
			Screenshot:  p.Screenshot,
			Links:       p.Links,
			Level:       pagemodel.Level(p.URL, meta.BaseURL),
		}
		for _, f := range feats {
			if f.AppearsOn(id) {
				page.Features = append(page.Features, f)
			}
		}
		ctx.Pages = append(ctx.Pages, page)
	}
	return ctx
}
