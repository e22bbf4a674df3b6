package linkverify

import (
	"bytes"
	"log/slog"
	"net/url"
	"path"
	"strings"

	"git.home.luguber.info/inful/webdoc/internal/frontmatter"
	"git.home.luguber.info/inful/webdoc/internal/logfields"
	"git.home.luguber.info/inful/webdoc/internal/render"
)

// BrokenLink is a relative reference whose target is not in the rendered set.
type BrokenLink struct {
	Source   string `json:"source"`   // File containing the link
	Target   string `json:"target"`   // Link as written
	Resolved string `json:"resolved"` // Target resolved against the source directory
}

// Verifier checks rendered files for dangling relative links.
type Verifier struct {
	logger *slog.Logger
}

// NewVerifier returns a verifier logging to logger, or slog.Default when nil.
func NewVerifier(logger *slog.Logger) *Verifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Verifier{logger: logger}
}

// Verify resolves every relative link of every Markdown and HTML file against
// the paths of files. Files that fail to parse are logged and skipped.
func (v *Verifier) Verify(files []render.File) []BrokenLink {
	known := make(map[string]struct{}, len(files))
	dirs := make(map[string]struct{})
	for _, f := range files {
		known[f.Path] = struct{}{}
		for d := path.Dir(f.Path); d != "." && d != "/"; d = path.Dir(d) {
			dirs[d] = struct{}{}
		}
	}

	var broken []BrokenLink
	for _, f := range files {
		links, err := linksOf(f)
		if err != nil {
			v.logger.Warn("Skipping unparsable file during link verification",
				logfields.Path(f.Path),
				logfields.Error(err))
			continue
		}
		for _, l := range links {
			if !ShouldVerify(l.URL) {
				continue
			}
			resolved, ok := resolve(f.Path, l.URL)
			if !ok {
				continue
			}
			if _, hit := known[resolved]; hit {
				continue
			}
			if _, hit := dirs[resolved]; hit {
				continue
			}
			broken = append(broken, BrokenLink{Source: f.Path, Target: l.URL, Resolved: resolved})
			v.logger.Debug("Broken link", logfields.Path(f.Path), logfields.URL(l.URL))
		}
	}
	return broken
}

func linksOf(f render.File) ([]*Link, error) {
	switch path.Ext(f.Path) {
	case ".md":
		_, body, _, err := frontmatter.Split(f.Content)
		if err != nil {
			return nil, err
		}
		return ExtractMarkdownLinks(body), nil
	case ".html", ".htm":
		return ExtractHTMLLinks(bytes.NewReader(f.Content))
	default:
		return nil, nil
	}
}

// resolve joins a relative link onto the directory of source. Query and
// fragment are dropped; a link with an empty path refers to source itself.
func resolve(source, link string) (string, bool) {
	u, err := url.Parse(link)
	if err != nil {
		return "", false
	}
	p, err := url.PathUnescape(u.Path)
	if err != nil {
		p = u.Path
	}
	if p == "" {
		return source, true
	}
	if strings.HasPrefix(p, "/") {
		return strings.TrimPrefix(path.Clean(p), "/"), true
	}
	return path.Join(path.Dir(source), p), true
}
