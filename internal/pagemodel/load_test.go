package pagemodel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	foundationerrors "git.home.luguber.info/inful/webdoc/internal/foundation/errors"
)

const samplePages = `[
  {
    "url": "https://example.com/",
    "title": "Home Page",
    "screenshot": "shots/home.png",
    "elements": [
      {"type": "button", "text": "Get Started"},
      {"type": "link", "text": "About", "ariaLabel": "about us"}
    ],
    "links": ["https://example.com/about"]
  },
  {
    "url": "https://example.com/about",
    "title": "About Us",
    "elements": [{"type": "section", "text": "Our Mission"}]
  }
]`

func TestDecodePages_Array(t *testing.T) {
	pages, err := DecodePages([]byte(samplePages))
	require.NoError(t, err)
	require.Len(t, pages, 2)

	assert.Equal(t, "Home Page", pages[0].Title)
	assert.Equal(t, ElementButton, pages[0].Elements[0].Type)
	assert.Equal(t, "about us", pages[0].Elements[1].AriaLabel)
	assert.Equal(t, []string{"https://example.com/about"}, pages[0].Links)
	assert.Empty(t, pages[1].Screenshot)
}

func TestDecodePages_Envelope(t *testing.T) {
	pages, err := DecodePages([]byte(`{"pages": [{"url": "https://example.com/", "title": "Home"}]}`))
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "Home", pages[0].Title)
}

func TestDecodePages_SchemaViolation(t *testing.T) {
	_, err := DecodePages([]byte(`[{"url": "https://example.com/"}]`))
	require.Error(t, err)
	assert.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryValidation))
	assert.Contains(t, err.Error(), "title")

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.NotEmpty(t, schemaErr.Errors)
}

func TestDecodePages_MalformedJSON(t *testing.T) {
	_, err := DecodePages([]byte(`[{`))
	require.Error(t, err)
	assert.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryInput))
}

func TestLoadPages(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pages.json")
	require.NoError(t, os.WriteFile(path, []byte(samplePages), 0o600))

	pages, err := LoadPages(path)
	require.NoError(t, err)
	assert.Len(t, pages, 2)

	_, err = LoadPages(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	classified, ok := foundationerrors.AsClassified(err)
	require.True(t, ok)
	p, _ := classified.Context().GetString("path")
	assert.Equal(t, filepath.Join(dir, "missing.json"), p)
}
