// Package templates loads, validates and caches documentation template
// definitions, and provides the path helpers used to lay their output out on disk.
//
// A definition is a YAML document describing which files to produce, where they
// go and in which voice UI elements are described. Three definitions ship with
// webdoc (user-guide, technical, quick-start); others are read from a custom
// template directory or an explicit path.
package templates

// Definition is a parsed template. It is treated as immutable once loaded.
type Definition struct {
	Name        string            `yaml:"name" validate:"required"`
	Version     string            `yaml:"version" validate:"required"`
	Description string            `yaml:"description" validate:"required"`
	Author      string            `yaml:"author,omitempty"`
	Structure   Structure         `yaml:"structure"`
	Sections    []Section         `yaml:"sections" validate:"required,min=1,dive"`
	Format      *Format           `yaml:"format" validate:"required"`
	Helpers     map[string]string `yaml:"helpers,omitempty"`
	Metadata    map[string]any    `yaml:"metadata,omitempty"`
}

// Structure declares output directories and file name patterns.
type Structure struct {
	Directories *Directories `yaml:"directories" validate:"required"`
	Files       *Files       `yaml:"files" validate:"required"`
}

// Directories are relative to the output directory. Only Root is mandatory; an
// empty Navigation, Pages or Features disables the files that live there.
type Directories struct {
	Root       string `yaml:"root" validate:"required"`
	Navigation string `yaml:"navigation,omitempty"`
	Pages      string `yaml:"pages,omitempty"`
	Features   string `yaml:"features,omitempty"`
	Assets     string `yaml:"assets,omitempty"`
}

// Files are patterns relative to Directories.Root. PageOverview and
// PageInstructions may contain {page-id}; Feature may contain {feature-id}.
// An empty pattern disables that file kind.
type Files struct {
	Index            string `yaml:"index,omitempty"`
	Sitemap          string `yaml:"sitemap,omitempty"`
	SitemapXML       string `yaml:"sitemapXml,omitempty"`
	GNB              string `yaml:"gnb,omitempty"`
	LNB              string `yaml:"lnb,omitempty"`
	PageOverview     string `yaml:"pageOverview,omitempty"`
	PageInstructions string `yaml:"pageInstructions,omitempty"`
	Feature          string `yaml:"feature,omitempty"`
}

// Section is a named part of the documentation.
type Section struct {
	Name        string    `yaml:"name" validate:"required"`
	Title       string    `yaml:"title" validate:"required"`
	Description string    `yaml:"description,omitempty"`
	Enabled     bool      `yaml:"enabled"`
	Subsections []Section `yaml:"subsections,omitempty" validate:"omitempty,dive"`
}

// Format controls presentation.
type Format struct {
	UIElementsStyle    string `yaml:"uiElementsStyle" validate:"required,oneof=technical functional scenario-based"`
	IncludeScreenshots bool   `yaml:"includeScreenshots"`
	IncludeBreadcrumbs bool   `yaml:"includeBreadcrumbs"`
	IncludePageToc     bool   `yaml:"includePageToc"`
	FrontMatter        bool   `yaml:"frontMatter"`
}

// HelperDateFormat is the helpers key holding a Go time layout for display dates.
const HelperDateFormat = "dateFormat"

// DefaultDateFormat is used when a definition sets no dateFormat helper.
const DefaultDateFormat = "2006-01-02 15:04:05 MST"

// DateFormat returns the display date layout for the definition.
func (d *Definition) DateFormat() string {
	if f := d.Helpers[HelperDateFormat]; f != "" {
		return f
	}
	return DefaultDateFormat
}

// EnabledSections returns the top-level sections with Enabled set.
func (d *Definition) EnabledSections() []Section {
	var out []Section
	for _, s := range d.Sections {
		if s.Enabled {
			out = append(out, s)
		}
	}
	return out
}
