package features

import (
	"log/slog"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/webdoc/internal/logfields"
	"git.home.luguber.info/inful/webdoc/internal/pagemodel"
	"git.home.luguber.info/inful/webdoc/internal/util/sets"
)

// ElementInfo is a UI element re-described for documentation.
type ElementInfo struct {
	Type        string `json:"type"`
	Text        string `json:"text"`
	Description string `json:"description"`
}

// Feature is a named group of UI elements serving one user-facing purpose.
type Feature struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Pages       []string      `json:"pages"`
	Elements    []ElementInfo `json:"elements"`
	Scenario    string        `json:"scenario,omitempty"`
}

// AppearsOn reports whether the feature was observed on pageID.
func (f Feature) AppearsOn(pageID string) bool {
	for _, p := range f.Pages {
		if p == pageID {
			return true
		}
	}
	return false
}

// Extractor groups crawled UI elements into features.
type Extractor struct {
	logger *slog.Logger
}

// NewExtractor returns an extractor logging to logger, or slog.Default when nil.
func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

type group struct {
	name     string
	pages    sets.Ordered[string]
	elements []pagemodel.UIElement
}

// Extract infers features from pages. Groups, their pages and their elements all
// keep first-seen order, so equal input yields equal output.
func (e *Extractor) Extract(pages []pagemodel.PageInfo, style Style) []Feature {
	var order []*group
	byName := make(map[string]*group)

	for _, page := range pages {
		if len(page.Elements) == 0 {
			e.logger.Debug("Page has no elements", logfields.URL(page.URL))
			continue
		}
		pageID := pagemodel.PageID(page.URL)
		for _, el := range page.Elements {
			name := InferName(el)
			g, ok := byName[name]
			if !ok {
				g = &group{name: name}
				byName[name] = g
				order = append(order, g)
			}
			g.pages.Add(pageID)
			g.elements = append(g.elements, el)
		}
	}

	out := make([]Feature, 0, len(order))
	for _, g := range order {
		f := Feature{
			ID:          FeatureID(g.name),
			Name:        g.name,
			Description: describeFeature(g.name, len(g.elements), style),
			Pages:       g.pages.Values(),
			Elements:    make([]ElementInfo, 0, len(g.elements)),
		}
		for _, el := range g.elements {
			f.Elements = append(f.Elements, ElementInfo{
				Type:        string(el.Type),
				Text:        el.Text,
				Description: describeElement(el, style),
			})
		}
		if style == StyleScenarioBased {
			f.Scenario = scenarioFor(g.name)
		}
		out = append(out, f)
	}

	e.logger.Info("Extracted features", logfields.Count(len(out)), slog.String("style", string(style)))
	return out
}

var nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)

// FeatureID kebab-cases a feature name: "Data Submission" becomes "data-submission".
func FeatureID(name string) string {
	return strings.Trim(nonAlnumRun.ReplaceAllString(strings.ToLower(name), "-"), "-")
}
