package templates

import (
	"path"
	"strings"
)

// Placeholders recognized in file patterns.
const (
	PageIDPlaceholder    = "{page-id}"
	FeatureIDPlaceholder = "{feature-id}"
)

// ExpandPattern substitutes every occurrence of placeholder in pattern.
func ExpandPattern(pattern, placeholder, value string) string {
	return strings.ReplaceAll(pattern, placeholder, value)
}

// UnderRoot joins rel under root using forward slashes and reports whether the
// cleaned result stays inside root.
func UnderRoot(root, rel string) (string, bool) {
	rel = strings.ReplaceAll(rel, `\`, "/")
	if path.IsAbs(rel) {
		return "", false
	}
	joined := path.Clean(path.Join(root, rel))
	cleanRoot := path.Clean(root)
	if cleanRoot == "." {
		if joined == ".." || strings.HasPrefix(joined, "../") {
			return "", false
		}
		return joined, true
	}
	if joined != cleanRoot && !strings.HasPrefix(joined, cleanRoot+"/") {
		return "", false
	}
	return joined, true
}

// RelativeLink returns the slash-separated link from the file at from to the
// file at to, both relative to the same base.
func RelativeLink(from, to string) string {
	fromParts := splitDir(path.Dir(path.Clean(from)))
	toParts := strings.Split(path.Clean(to), "/")

	i := 0
	for i < len(fromParts) && i < len(toParts)-1 && fromParts[i] == toParts[i] {
		i++
	}

	var b strings.Builder
	for range fromParts[i:] {
		b.WriteString("../")
	}
	b.WriteString(strings.Join(toParts[i:], "/"))
	return b.String()
}

func splitDir(dir string) []string {
	if dir == "." || dir == "" {
		return nil
	}
	return strings.Split(dir, "/")
}
