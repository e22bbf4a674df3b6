package features

import "git.home.luguber.info/inful/webdoc/internal/foundation/normalization"

// Style selects the voice used for feature and element descriptions.
type Style string

const (
	StyleTechnical     Style = "technical"
	StyleFunctional    Style = "functional"
	StyleScenarioBased Style = "scenario-based"
)

var styleNormalizer = normalization.WithCustomNormalizer("ui elements style", map[string]Style{
	string(StyleTechnical):     StyleTechnical,
	string(StyleFunctional):    StyleFunctional,
	string(StyleScenarioBased): StyleScenarioBased,
}, StyleFunctional, normalization.Kebab)

// ParseStyle accepts any casing and "_"/" " separators. Empty input means functional.
func ParseStyle(raw string) (Style, error) {
	return styleNormalizer.Parse(raw)
}

// Styles lists the accepted style names.
func Styles() []string {
	return styleNormalizer.ValidKeys()
}
