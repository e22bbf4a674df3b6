package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/webdoc/internal/templates"
)

func TestToHTML(t *testing.T) {
	res, err := renderWith(t, loadDef(t, templates.Technical), samplePages())
	require.NoError(t, err)

	out, err := ToHTML(res, "Example App")
	require.NoError(t, err)
	require.Len(t, out.Files, len(res.Files))
	assert.Equal(t, res.Metadata, out.Metadata)

	assert.Contains(t, paths(out), "docs/index.html")
	assert.Contains(t, paths(out), "docs/sitemap.xml")
	assert.NotContains(t, paths(out), "docs/index.md")

	index := content(t, out, "docs/index.html")
	assert.Contains(t, index, "<title>Example App</title>")
	assert.Contains(t, index, `href="sitemap.html"`)
	assert.Contains(t, index, `href="https://example.com/about"`)
	assert.NotContains(t, index, "fingerprint")

	feature := content(t, out, "docs/features/content-display.html")
	assert.Contains(t, feature, `href="../pages/about/overview.html"`)
}

func TestRewriteMarkdownHref(t *testing.T) {
	tests := []struct {
		href string
		want string
		ok   bool
	}{
		{"overview.md", "overview.html", true},
		{"../pages/a/overview.md#steps", "../pages/a/overview.html#steps", true},
		{"https://example.com/readme.md", "", false},
		{"image.png", "", false},
		{"#section", "", false},
	}
	for _, tt := range tests {
		got, ok := rewriteMarkdownHref(tt.href)
		assert.Equal(t, tt.ok, ok, tt.href)
		assert.Equal(t, tt.want, got, tt.href)
	}
}

func TestToHTML_TitleFallback(t *testing.T) {
	res := &Result{Files: []File{{Path: "docs/notes.md", Content: []byte("plain text\n")}}}
	out, err := ToHTML(res, "Fallback")
	require.NoError(t, err)
	assert.Equal(t, "docs/notes.html", out.Files[0].Path)
	assert.Contains(t, string(out.Files[0].Content), "<title>Fallback</title>")
}
