package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/webdoc/internal/config"
	"git.home.luguber.info/inful/webdoc/internal/eventstore"
	ferrors "git.home.luguber.info/inful/webdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/webdoc/internal/generator"
	"git.home.luguber.info/inful/webdoc/internal/templates"
	"git.home.luguber.info/inful/webdoc/internal/testutil/testutils"
)

const pagesJSON = `[
  {"url": "https://example.com/", "title": "Home", "elements": [{"type": "button", "text": "Get Started"}]},
  {"url": "https://example.com/about", "title": "About", "elements": [{"type": "section", "text": "Our Mission"}]}
]`

func writePages(t *testing.T, dir string) string {
	t.Helper()
	p := filepath.Join(dir, "pages.json")
	require.NoError(t, os.WriteFile(p, []byte(pagesJSON), 0o600))
	return p
}

func TestGenerateCmd_FlagsWithoutConfigFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "manual")
	cli := &CLI{Config: filepath.Join(dir, "webdoc.yaml")}
	cmd := &GenerateCmd{GenerateFlags{
		Pages:   writePages(t, dir),
		Output:  out,
		BaseURL: "https://example.com",
		JSON:    true,
	}}

	var buf bytes.Buffer
	require.NoError(t, cmd.Run(&Global{Stdout: &buf}, cli))

	var res generator.Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &res))
	assert.Equal(t, templates.UserGuide, res.TemplateName)
	assert.Equal(t, 10, res.FilesGenerated)
	assert.Empty(t, res.BrokenLinks)

	testutils.NewFileAssertions(t, out).
		AssertFileExists("docs/index.md").
		AssertDirCount("docs/pages", 2)
}

func TestGenerateCmd_ConfigWithOverridesAndHistory(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "webdoc.yaml")
	db := filepath.Join(dir, "history.db")
	require.NoError(t, os.WriteFile(cfgPath, []byte(fmt.Sprintf(`version: "1.0"
site:
  base_url: https://example.com
  title: Example Manual
input:
  pages: %s
output:
  directory: %s
templates:
  name: technical
history:
  enabled: true
  path: %s
`, writePages(t, dir), filepath.Join(dir, "out"), db)), 0o600))
	cli := &CLI{Config: cfgPath}

	var buf bytes.Buffer
	gen := &GenerateCmd{GenerateFlags{Template: templates.QuickStart}}
	require.NoError(t, gen.Run(&Global{Stdout: &buf}, cli))
	assert.Contains(t, buf.String(), "Documentation generated")
	assert.Contains(t, buf.String(), templates.QuickStart)

	testutils.NewFileAssertions(t, filepath.Join(dir, "out")).
		AssertFileHasPrefix("docs/index.md", "# Example Manual\n")

	buf.Reset()
	hist := &HistoryCmd{Limit: 5, JSON: true}
	require.NoError(t, hist.Run(&Global{Stdout: &buf}, cli))

	var runs []eventstore.RunSummary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, eventstore.RunStatusCompleted, runs[0].Status)
	assert.Equal(t, templates.QuickStart, runs[0].Template)
	assert.Equal(t, 7, runs[0].FilesGenerated)

	buf.Reset()
	hist = &HistoryCmd{Run: runs[0].RunID}
	require.NoError(t, hist.Run(&Global{Stdout: &buf}, cli))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Contains(t, lines[0], eventstore.TypeGenerationStarted)
	assert.Contains(t, lines[len(lines)-1], eventstore.TypeGenerationCompleted)
}

func TestGenerateCmd_Errors(t *testing.T) {
	dir := t.TempDir()
	cli := &CLI{Config: filepath.Join(dir, "webdoc.yaml")}

	err := (&GenerateCmd{GenerateFlags{Pages: writePages(t, dir), Output: dir}}).Run(&Global{Stdout: &bytes.Buffer{}}, cli)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig), "missing base url: %v", err)

	err = (&GenerateCmd{GenerateFlags{BaseURL: "https://example.com", Format: "docx"}}).Run(&Global{Stdout: &bytes.Buffer{}}, cli)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))

	err = (&GenerateCmd{GenerateFlags{BaseURL: "https://example.com", Pages: filepath.Join(dir, "absent.json")}}).Run(&Global{Stdout: &bytes.Buffer{}}, cli)
	require.Error(t, err)
	assert.Equal(t, ferrors.CategoryInput, ferrors.RootCategory(err))
}

func TestGenerateFlags_Apply(t *testing.T) {
	cfg := config.Defaults()
	flags := GenerateFlags{
		BaseURL:  "https://example.com",
		Template: "technical",
		Format:   "HTML",
		NoVerify: true,
		Title:    "Manual",
	}
	require.NoError(t, flags.apply(cfg))
	assert.Equal(t, "https://example.com", cfg.Site.BaseURL)
	assert.Equal(t, "technical", cfg.Templates.Name)
	assert.Equal(t, config.FormatHTML, cfg.Output.Format)
	assert.False(t, cfg.Output.VerifyLinksEnabled())
	assert.Equal(t, "Manual", cfg.Site.Title)
	assert.Equal(t, config.DefaultOutputDir, cfg.Output.Directory)
}

func TestInitCmd(t *testing.T) {
	cli := &CLI{Config: filepath.Join(t.TempDir(), "webdoc.yaml")}
	var buf bytes.Buffer
	require.NoError(t, (&InitCmd{}).Run(&Global{Stdout: &buf}, cli))
	assert.Contains(t, buf.String(), "Wrote ")

	_, err := config.Load(cli.Config)
	require.NoError(t, err)

	require.Error(t, (&InitCmd{}).Run(&Global{Stdout: &buf}, cli))
	require.NoError(t, (&InitCmd{Force: true}).Run(&Global{Stdout: &buf}, cli))
}

func TestTemplatesCommands(t *testing.T) {
	cli := &CLI{Config: filepath.Join(t.TempDir(), "webdoc.yaml")}

	var buf bytes.Buffer
	require.NoError(t, (&TemplatesListCmd{JSON: true}).Run(&Global{Stdout: &buf}, cli))
	var summaries []templates.Summary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &summaries))
	names := make([]string, 0, len(summaries))
	for _, s := range summaries {
		names = append(names, s.Name)
		assert.True(t, s.Builtin)
	}
	assert.Equal(t, templates.ListBuiltin(), names)

	buf.Reset()
	require.NoError(t, (&TemplatesShowCmd{Name: templates.Technical}).Run(&Global{Stdout: &buf}, cli))
	assert.Contains(t, buf.String(), "name: technical")
	assert.Contains(t, buf.String(), "uiElementsStyle: technical")

	err := (&TemplatesShowCmd{Name: "missing"}).Run(&Global{Stdout: &buf}, cli)
	require.Error(t, err)
	assert.Equal(t, ferrors.CategoryNotFound, ferrors.RootCategory(err))
}

func TestVersionCmd(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, VersionCmd{}.Run(&Global{Stdout: &buf}))
	assert.True(t, strings.HasPrefix(buf.String(), "webdoc "))
}
