package linkverify

import (
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/webdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/webdoc/internal/markdown"
)

// Link is a reference found in a rendered file.
type Link struct {
	URL       string // The URL or path as written
	Tag       string // HTML tag, or the Markdown link kind
	Attribute string // Attribute holding the link for HTML sources
	Line      int    // Approximate element index for HTML sources
}

// ExtractHTMLLinks returns the href and src references of an HTML document.
func ExtractHTMLLinks(r io.Reader) ([]*Link, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "failed to parse HTML").Build()
	}

	var links []*Link
	var lineNum int

	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.ElementNode {
			lineNum++
			extractElementLinks(n, &links, lineNum)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}

	extract(doc)
	return links, nil
}

func extractElementLinks(n *html.Node, links *[]*Link, lineNum int) {
	var attr string
	switch n.Data {
	case "a", "link":
		attr = "href"
	case "img", "script", "video", "audio", "source":
		attr = "src"
	default:
		return
	}
	if v := getAttr(n, attr); v != "" {
		*links = append(*links, &Link{URL: v, Tag: n.Data, Attribute: attr, Line: lineNum})
	}
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// ExtractMarkdownLinks returns the links, images and reference definitions of a
// Markdown body (front matter already removed).
func ExtractMarkdownLinks(body []byte) []*Link {
	found := markdown.ExtractLinks(body)
	links := make([]*Link, 0, len(found))
	for _, l := range found {
		links = append(links, &Link{URL: l.Destination, Tag: string(l.Kind)})
	}
	return links
}

// ShouldVerify reports whether link points inside the rendered set. Absolute
// and protocol-relative URLs, special schemes and pure fragments are skipped.
func ShouldVerify(link string) bool {
	link = strings.TrimSpace(link)
	if link == "" || strings.HasPrefix(link, "#") || strings.HasPrefix(link, "//") {
		return false
	}
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == ""
}
