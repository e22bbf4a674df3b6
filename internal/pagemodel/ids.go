package pagemodel

import (
	"net/url"
	"regexp"
	"strings"
)

const (
	// MaxLevel caps hierarchy depth.
	MaxLevel = 6

	fallbackIDLength = 50
	indexID          = "index"
)

var unsafeIDChars = regexp.MustCompile(`[^a-zA-Z0-9\-_]`)

// parseAbsolute accepts only URLs with a scheme, the same inputs a browser URL
// constructor accepts without a base.
func parseAbsolute(raw string) (*url.URL, bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return nil, false
	}
	return u, true
}

func trimmedPath(u *url.URL) string {
	p := u.EscapedPath()
	if u.Opaque != "" {
		p = u.Opaque
	}
	return strings.Trim(p, "/")
}

// PageID derives a filesystem-safe slug from the URL path:
// slashes become "-", anything outside [a-zA-Z0-9-_] becomes "_", the result is
// lower-cased and an empty path yields "index". Invalid URLs fall back to the
// sanitized raw string truncated to 50 characters.
func PageID(rawURL string) string {
	u, ok := parseAbsolute(rawURL)
	if !ok {
		id := strings.ToLower(unsafeIDChars.ReplaceAllString(rawURL, "_"))
		if len(id) > fallbackIDLength {
			id = id[:fallbackIDLength]
		}
		return id
	}

	id := strings.ReplaceAll(trimmedPath(u), "/", "-")
	id = strings.ToLower(unsafeIDChars.ReplaceAllString(id, "_"))
	if id == "" {
		return indexID
	}
	return id
}

// RelativeSegments returns the non-empty path segments of rawURL below baseURL's
// path. The base prefix is only removed on a segment boundary, so "/docs2" is not
// considered below "/docs". ok is false when either URL is invalid.
func RelativeSegments(rawURL, baseURL string) ([]string, bool) {
	u, ok := parseAbsolute(rawURL)
	if !ok {
		return nil, false
	}
	base, ok := parseAbsolute(baseURL)
	if !ok {
		return nil, false
	}

	rel := trimmedPath(u)
	if basePath := trimmedPath(base); basePath != "" {
		switch {
		case rel == basePath:
			rel = ""
		case strings.HasPrefix(rel, basePath+"/"):
			rel = rel[len(basePath)+1:]
		}
	}

	var segments []string
	for _, s := range strings.Split(rel, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments, true
}

// Level is the hierarchy depth of rawURL below baseURL: 1 for the base itself,
// one more per path segment, capped at MaxLevel. Invalid URLs are level 1.
func Level(rawURL, baseURL string) int {
	segments, ok := RelativeSegments(rawURL, baseURL)
	if !ok {
		return 1
	}
	return min(len(segments)+1, MaxLevel)
}

// TopLevelPath returns "/" plus the first segment below baseURL, or "/" when
// there is none or a URL is invalid.
func TopLevelPath(rawURL, baseURL string) string {
	segments, ok := RelativeSegments(rawURL, baseURL)
	if !ok || len(segments) == 0 {
		return "/"
	}
	return "/" + segments[0]
}
