package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/webdoc/internal/foundation/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "webdoc.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLoad_FullConfig(t *testing.T) {
	p := writeConfig(t, `version: "1.0"
site:
  base_url: https://app.example.com
  title: Example
input:
  pages: crawl/pages.json
  screenshot_dir: crawl/shots
output:
  directory: ./out
  format: HTML
  asset_max_width: 800
  verify_links: false
templates:
  name: Technical
  custom_dir: ./templates
  cache: false
logging:
  level: DEBUG
  format: json
metrics:
  enabled: true
  listen: ":9100"
history:
  enabled: true
  path: runs.db
notify:
  nats_url: nats://localhost:4222
  subject: docs.events
  jetstream: true
`)
	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "https://app.example.com", cfg.Site.BaseURL)
	assert.Equal(t, "crawl/pages.json", cfg.Input.Pages)
	assert.Equal(t, "crawl/shots", cfg.Input.ScreenshotDir)
	assert.Equal(t, FormatHTML, cfg.Output.Format)
	assert.Equal(t, 800, cfg.Output.AssetMaxWidth)
	assert.False(t, cfg.Output.VerifyLinksEnabled())
	assert.Equal(t, "technical", cfg.Templates.Name)
	assert.False(t, cfg.Templates.CacheEnabled())
	assert.True(t, cfg.Templates.ValidateEnabled())
	assert.Equal(t, LogLevelDebug, cfg.Logging.Level)
	assert.Equal(t, LogFormatJSON, cfg.Logging.Format)
	assert.Equal(t, ":9100", cfg.Metrics.Listen)
	assert.Equal(t, "runs.db", cfg.History.Path)
	assert.True(t, cfg.Notify.JetStream)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "version: \"1.0\"\nsite:\n  base_url: https://example.com\n"))
	require.NoError(t, err)

	assert.Equal(t, DefaultPagesFile, cfg.Input.Pages)
	assert.Equal(t, DefaultOutputDir, cfg.Output.Directory)
	assert.Equal(t, FormatMarkdown, cfg.Output.Format)
	assert.Equal(t, DefaultAssetMaxWidth, cfg.Output.AssetMaxWidth)
	assert.True(t, cfg.Output.VerifyLinksEnabled())
	assert.Equal(t, DefaultTemplate, cfg.Templates.Name)
	assert.True(t, cfg.Templates.CacheEnabled())
	assert.Equal(t, LogLevelInfo, cfg.Logging.Level)
	assert.Equal(t, LogFormatText, cfg.Logging.Format)
	assert.Equal(t, DefaultMetricsListen, cfg.Metrics.Listen)
	assert.Equal(t, DefaultHistoryPath, cfg.History.Path)
	assert.Equal(t, DefaultNotifySubject, cfg.Notify.Subject)
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("WEBDOC_TEST_BASE_URL", "https://env.example.com")
	cfg, err := Load(writeConfig(t, "version: \"1.0\"\nsite:\n  base_url: ${WEBDOC_TEST_BASE_URL}\n"))
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.Site.BaseURL)
}

func TestLoad_ReadsDotEnvWithoutOverriding(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("WEBDOC_TEST_TITLE=From Dotenv\nWEBDOC_TEST_URL=https://dotenv.example.com\n"), 0o600))
	t.Setenv("WEBDOC_TEST_URL", "https://process.example.com")
	t.Cleanup(func() { _ = os.Unsetenv("WEBDOC_TEST_TITLE") })

	cfg, err := Load(writeConfig(t, "version: \"1.0\"\nsite:\n  base_url: ${WEBDOC_TEST_URL}\n  title: ${WEBDOC_TEST_TITLE}\n"))
	require.NoError(t, err)
	assert.Equal(t, "https://process.example.com", cfg.Site.BaseURL)
	assert.Equal(t, "From Dotenv", cfg.Site.Title)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		category ferrors.ErrorCategory
		contains string
	}{
		{"wrong version", "version: \"2.0\"\nsite:\n  base_url: https://example.com\n", ferrors.CategoryConfig, "unsupported configuration version"},
		{"unknown field", "version: \"1.0\"\nsite:\n  base_url: https://example.com\nhugo: {}\n", ferrors.CategoryConfig, "failed to parse config"},
		{"missing base url", "version: \"1.0\"\n", ferrors.CategoryConfig, "Site.BaseURL is required"},
		{"relative base url", "version: \"1.0\"\nsite:\n  base_url: example\n", ferrors.CategoryConfig, "must be an absolute URL"},
		{"bad format", "version: \"1.0\"\nsite:\n  base_url: https://example.com\noutput:\n  format: docx\n", ferrors.CategoryConfig, "Output.Format must be one of"},
		{"negative width", "version: \"1.0\"\nsite:\n  base_url: https://example.com\noutput:\n  asset_max_width: -1\n", ferrors.CategoryConfig, "Output.AssetMaxWidth failed gte"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.True(t, ferrors.HasCategory(err, tt.category), "got %v", err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Equal(t, ferrors.CategoryNotFound, ferrors.GetCategory(err))
}

func TestInit_WritesLoadableExample(t *testing.T) {
	p := filepath.Join(t.TempDir(), DefaultPath)
	require.NoError(t, Init(p, false))

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "https://app.example.com", cfg.Site.BaseURL)
	assert.Equal(t, DefaultTemplate, cfg.Templates.Name)

	err = Init(p, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	require.NoError(t, Init(p, true))
}

func TestSnapshot(t *testing.T) {
	load := func(extra string) *Config {
		cfg, err := Load(writeConfig(t, "version: \"1.0\"\nsite:\n  base_url: https://example.com\n"+extra))
		require.NoError(t, err)
		return cfg
	}
	base := load("")
	assert.Equal(t, base.Snapshot(), load("logging:\n  level: debug\n").Snapshot())
	assert.NotEqual(t, base.Snapshot(), load("templates:\n  name: technical\n").Snapshot())
	assert.Empty(t, (*Config)(nil).Snapshot())
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	require.Error(t, Validate(cfg))

	cfg.Site.BaseURL = "https://example.com"
	require.NoError(t, Validate(cfg))
	assert.Equal(t, FormatMarkdown, cfg.Output.Format)
}
