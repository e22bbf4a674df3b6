package templates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	foundationerrors "git.home.luguber.info/inful/webdoc/internal/foundation/errors"
)

const minimalTemplate = `name: custom
version: 0.1.0
description: Custom layout
structure:
  directories:
    root: manual
  files:
    index: README.md
sections:
  - name: intro
    title: Introduction
    enabled: true
format:
  uiElementsStyle: technical
`

func TestLoader_BuiltinUserGuide(t *testing.T) {
	l := NewLoader(LoaderOptions{})

	def, err := l.Load(UserGuide)
	require.NoError(t, err)

	assert.Equal(t, "user-guide", def.Name)
	assert.Equal(t, "1.0.0", def.Version)
	assert.Contains(t, def.Description, "End-user documentation")
	assert.Equal(t, "docs", def.Structure.Directories.Root)
	assert.Equal(t, "docs/navigation", def.Structure.Directories.Navigation)
	assert.Equal(t, "docs/pages", def.Structure.Directories.Pages)
	assert.Equal(t, "index.md", def.Structure.Files.Index)
	assert.Equal(t, "sitemap.md", def.Structure.Files.Sitemap)
	assert.Equal(t, "navigation/global-navigation.md", def.Structure.Files.GNB)
	assert.Equal(t, "functional", def.Format.UIElementsStyle)
	assert.Equal(t, "January 2, 2006", def.DateFormat())
}

func TestLoader_BuiltinStyles(t *testing.T) {
	l := NewLoader(LoaderOptions{})

	tech, err := l.Load(Technical)
	require.NoError(t, err)
	assert.Equal(t, "technical", tech.Format.UIElementsStyle)
	assert.Empty(t, tech.Structure.Files.PageInstructions)

	qs, err := l.Load(QuickStart)
	require.NoError(t, err)
	assert.Equal(t, "scenario-based", qs.Format.UIElementsStyle)
	assert.Empty(t, qs.Structure.Directories.Features)
}

func TestLoader_EveryBuiltinValidates(t *testing.T) {
	l := NewLoader(LoaderOptions{})
	for _, name := range ListBuiltin() {
		def, err := l.Load(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, def.Name)
		assert.NotEmpty(t, def.EnabledSections())
	}
	assert.Equal(t, []string{"user-guide", "technical", "quick-start"}, ListBuiltin())
}

func TestLoader_CacheReturnsSamePointer(t *testing.T) {
	l := NewLoader(LoaderOptions{})

	a, err := l.Load(UserGuide)
	require.NoError(t, err)
	b, err := l.Load(UserGuide)
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.Equal(t, 1, l.CacheSize())

	l.ClearCache()
	assert.Equal(t, 0, l.CacheSize())
	c, err := l.Load(UserGuide)
	require.NoError(t, err)
	assert.NotSame(t, a, c)
}

func TestLoader_CacheDisabledReturnsFreshCopies(t *testing.T) {
	l := NewLoader(LoaderOptions{DisableCache: true})

	a, err := l.Load(UserGuide)
	require.NoError(t, err)
	b, err := l.Load(UserGuide)
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.Equal(t, a, b)
	assert.Equal(t, 0, l.CacheSize())
}

func TestLoader_UnknownTemplate(t *testing.T) {
	l := NewLoader(LoaderOptions{CustomDir: t.TempDir()})

	def, err := l.Load("does-not-exist")
	require.Error(t, err)
	assert.Nil(t, def)
	assert.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryNotFound))
	assert.Contains(t, err.Error(), "template 'does-not-exist' not found")

	_, err = NewLoader(LoaderOptions{}).Load("does-not-exist")
	require.Error(t, err)
}

func TestLoader_CustomDirAndPath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "custom.yaml"), []byte(minimalTemplate), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "alt.yml"), []byte(minimalTemplate), 0o600))

	l := NewLoader(LoaderOptions{CustomDir: dir})

	def, err := l.Load("custom")
	require.NoError(t, err)
	assert.Equal(t, "manual", def.Structure.Directories.Root)

	_, err = l.Load("alt")
	require.NoError(t, err)

	def, err = NewLoader(LoaderOptions{}).Load(filepath.Join(dir, "custom.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "custom", def.Name)

	names, err := l.ListCustom()
	require.NoError(t, err)
	assert.Equal(t, []string{"alt", "custom"}, names)

	summary, err := l.Metadata("custom")
	require.NoError(t, err)
	assert.Equal(t, Summary{Name: "custom", Version: "0.1.0", Description: "Custom layout", Style: "technical"}, summary)

	summary, err = l.Metadata(UserGuide)
	require.NoError(t, err)
	assert.True(t, summary.Builtin)
}

func TestLoader_ParseError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("name: [unclosed"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "typo.yaml"), []byte(minimalTemplate+"colour: red\n"), 0o600))

	l := NewLoader(LoaderOptions{CustomDir: dir})

	_, err := l.Load("broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse template")

	_, err = l.Load("typo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colour")
}

func TestLoader_Validation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		message string
	}{
		{
			name:    "missing name",
			yaml:    "version: v1\ndescription: d\nstructure: {directories: {root: docs}, files: {}}\nsections: [{name: a, title: A}]\nformat: {uiElementsStyle: technical}\n",
			message: "name is required",
		},
		{
			name:    "missing directories",
			yaml:    "name: x\nversion: v1\ndescription: d\nstructure: {files: {}}\nsections: [{name: a, title: A}]\nformat: {uiElementsStyle: technical}\n",
			message: "structure.directories is required",
		},
		{
			name:    "missing files",
			yaml:    "name: x\nversion: v1\ndescription: d\nstructure: {directories: {root: docs}}\nsections: [{name: a, title: A}]\nformat: {uiElementsStyle: technical}\n",
			message: "structure.files is required",
		},
		{
			name:    "empty sections",
			yaml:    "name: x\nversion: v1\ndescription: d\nstructure: {directories: {root: docs}, files: {}}\nsections: []\nformat: {uiElementsStyle: technical}\n",
			message: "sections",
		},
		{
			name:    "section without title",
			yaml:    "name: x\nversion: v1\ndescription: d\nstructure: {directories: {root: docs}, files: {}}\nsections: [{name: a}]\nformat: {uiElementsStyle: technical}\n",
			message: "sections[0].title is required",
		},
		{
			name:    "bad style",
			yaml:    "name: x\nversion: v1\ndescription: d\nstructure: {directories: {root: docs}, files: {}}\nsections: [{name: a, title: A}]\nformat: {uiElementsStyle: poetic}\n",
			message: "format.uiElementsStyle must be one of [technical, functional, scenario-based]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "t.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o600))

			_, err := NewLoader(LoaderOptions{}).Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "template validation failed")
			assert.Contains(t, err.Error(), tt.message)
			assert.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryTemplate))

			_, err = NewLoader(LoaderOptions{DisableValidation: true}).Load(path)
			assert.NoError(t, err)
		})
	}
}
