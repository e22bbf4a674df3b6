package render

import (
	"fmt"

	"git.home.luguber.info/inful/webdoc/internal/templates"
)

// layout resolves every output path up front so builders can link between files.
type layout struct {
	root         string
	index        string
	sitemap      string
	sitemapXML   string
	gnb          string
	lnb          string
	overview     map[string]string
	instructions map[string]string
	feature      map[string]string
	taken        map[string]string
}

func newLayout(def *templates.Definition) *layout {
	return &layout{
		root:         def.Structure.Directories.Root,
		overview:     make(map[string]string),
		instructions: make(map[string]string),
		feature:      make(map[string]string),
		taken:        make(map[string]string),
	}
}

// claim resolves pattern under the root and records it for owner. Escaping the
// root or reusing another owner's path is an error.
func (l *layout) claim(pattern, owner string) (string, error) {
	p, ok := templates.UnderRoot(l.root, pattern)
	if !ok {
		return "", fmt.Errorf("output path %q for %s escapes root %q", pattern, owner, l.root)
	}
	if prev, dup := l.taken[p]; dup {
		return "", fmt.Errorf("duplicate output path %q for %s and %s", p, prev, owner)
	}
	l.taken[p] = owner
	return p, nil
}

// link returns a relative link from one output file to another, or "" when the
// target was not rendered.
func link(from, to string) string {
	if to == "" {
		return ""
	}
	return templates.RelativeLink(from, to)
}
