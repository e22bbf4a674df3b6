package render

import (
	"bytes"
	"fmt"
	"html"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"

	ferrors "git.home.luguber.info/inful/webdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/webdoc/internal/frontmatter"
	"git.home.luguber.info/inful/webdoc/internal/markdown"
)

const htmlPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s
</body>
</html>
`

// ToHTML converts every Markdown file of result into a standalone HTML page.
// Front matter is dropped, relative links to .md files are pointed at the .html
// counterparts, and the page title is taken from the first h1 (falling back to
// fallbackTitle). Non-Markdown files pass through unchanged.
func ToHTML(result *Result, fallbackTitle string) (*Result, error) {
	out := &Result{Metadata: result.Metadata, Files: make([]File, 0, len(result.Files))}
	for _, f := range result.Files {
		if path.Ext(f.Path) != ".md" {
			out.Files = append(out.Files, f)
			continue
		}
		page, err := markdownPage(f.Content, fallbackTitle)
		if err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryRender, "html conversion failed").
				WithContext("path", f.Path).
				Build()
		}
		out.Files = append(out.Files, File{Path: htmlPath(f.Path), Content: page})
	}
	return out, nil
}

func htmlPath(p string) string {
	return strings.TrimSuffix(p, ".md") + ".html"
}

func markdownPage(content []byte, fallbackTitle string) ([]byte, error) {
	_, body, _, err := frontmatter.Split(content)
	if err != nil {
		return nil, err
	}
	fragment, err := markdown.ToHTML(body)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(fragment))
	if err != nil {
		return nil, fmt.Errorf("parse rendered html: %w", err)
	}

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if rewritten, ok := rewriteMarkdownHref(href); ok {
			s.SetAttr("href", rewritten)
		}
	})

	title := strings.TrimSpace(doc.Find("h1").First().Text())
	if title == "" {
		title = fallbackTitle
	}

	inner, err := doc.Find("body").Html()
	if err != nil {
		return nil, fmt.Errorf("serialize html: %w", err)
	}
	return fmt.Appendf(nil, htmlPage, html.EscapeString(title), strings.TrimSpace(inner)), nil
}

// rewriteMarkdownHref maps a relative link to a .md file onto its .html output.
// Absolute URLs and links to anything else are left alone.
func rewriteMarkdownHref(href string) (string, bool) {
	u, err := url.Parse(href)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasSuffix(u.Path, ".md") {
		return "", false
	}
	u.Path = htmlPath(u.Path)
	return u.String(), true
}
