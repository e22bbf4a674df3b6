package features

import (
	"strings"

	"git.home.luguber.info/inful/webdoc/internal/pagemodel"
)

// Rule maps element text containing any of Keywords to a feature name.
type Rule struct {
	Name     string
	Keywords []string
}

// Rules is evaluated in order and the first match wins, so "Search and Filter"
// lands in Search. Reordering changes output.
var Rules = []Rule{
	{Name: "Authentication", Keywords: []string{"login", "sign in"}},
	{Name: "Search", Keywords: []string{"search"}},
	{Name: "Filtering", Keywords: []string{"filter"}},
	{Name: "Data Submission", Keywords: []string{"submit", "save"}},
	{Name: "Data Modification", Keywords: []string{"edit", "update"}},
	{Name: "Data Deletion", Keywords: []string{"delete", "remove"}},
	{Name: "Navigation", Keywords: []string{"navigation", "menu"}},
}

var typeFallback = map[pagemodel.ElementType]string{
	pagemodel.ElementButton:  "Interactive Actions",
	pagemodel.ElementInput:   "Data Input",
	pagemodel.ElementForm:    "Form Submission",
	pagemodel.ElementLink:    "Navigation",
	pagemodel.ElementSection: "Content Display",
	pagemodel.ElementHeading: "Content Organization",
}

const generalFeatures = "General Features"

// InferName returns the feature an element belongs to.
func InferName(el pagemodel.UIElement) string {
	text := strings.ToLower(el.Text)
	for _, rule := range Rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				return rule.Name
			}
		}
	}
	if name, ok := typeFallback[el.Type]; ok {
		return name
	}
	return generalFeatures
}

var scenarios = map[string]string{
	"Authentication":  "When you need to access protected areas, use this feature to log in",
	"Search":          "When looking for specific content, use the search feature to find it quickly",
	"Filtering":       "When you need to narrow down results, apply filters to find what you need",
	"Data Submission": "When you want to save your information, submit the form",
	"Navigation":      "When you need to move between different sections, use the navigation menu",
}

func scenarioFor(name string) string {
	if s, ok := scenarios[name]; ok {
		return s
	}
	return "Use this feature when you need " + strings.ToLower(name)
}
