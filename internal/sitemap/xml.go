package sitemap

import (
	"encoding/xml"
	"strconv"
	"time"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	URLs    []xmlURL `xml:"url"`
}

type xmlURL struct {
	Loc      string `xml:"loc"`
	LastMod  string `xml:"lastmod,omitempty"`
	Priority string `xml:"priority,omitempty"`
}

var levelPriority = map[int]float64{1: 1.0, 2: 0.8, 3: 0.6, 4: 0.4, 5: 0.3}

func priority(level int) string {
	p, ok := levelPriority[level]
	if !ok {
		p = 0.2
	}
	return strconv.FormatFloat(p, 'f', 1, 64)
}

// XML renders the structure as a sitemaps.org urlset. A zero lastmod is omitted.
func (s Structure) XML(lastmod time.Time) ([]byte, error) {
	set := urlSet{XMLNS: sitemapNamespace, URLs: make([]xmlURL, 0, len(s.Pages))}
	for _, p := range s.Pages {
		u := xmlURL{Loc: p.URL, Priority: priority(p.Level)}
		if !lastmod.IsZero() {
			u.LastMod = lastmod.UTC().Format("2006-01-02")
		}
		set.URLs = append(set.URLs, u)
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}
