package config

import (
	"strings"

	"git.home.luguber.info/inful/webdoc/internal/foundation/normalization"
)

// Defaults applied when the corresponding field is empty.
const (
	DefaultTemplate      = "user-guide"
	DefaultOutputDir     = "./manual"
	DefaultPagesFile     = "pages.json"
	DefaultAssetMaxWidth = 1280
	DefaultMetricsListen = ":9464"
	DefaultHistoryPath   = "webdoc-history.db"
	DefaultNotifySubject = "webdoc.generation"
)

// Output formats accepted in output.format.
const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

var formatNormalizer = normalization.NewNormalizer("output format", map[string]string{
	"markdown": FormatMarkdown,
	"md":       FormatMarkdown,
	"html":     FormatHTML,
}, FormatMarkdown)

// normalize case-folds enumerations and trims free-form values. Unknown output
// formats are left as written so validation reports them.
func normalize(cfg *Config) {
	cfg.Site.BaseURL = strings.TrimSpace(cfg.Site.BaseURL)
	cfg.Site.Title = strings.TrimSpace(cfg.Site.Title)
	cfg.Templates.Name = normalization.Lower(cfg.Templates.Name)
	if f, err := formatNormalizer.Parse(cfg.Output.Format); err == nil {
		cfg.Output.Format = f
	}
	cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
	cfg.Logging.Format = NormalizeLogFormat(string(cfg.Logging.Format))
}

func applyDefaults(cfg *Config) {
	if cfg.Input.Pages == "" {
		cfg.Input.Pages = DefaultPagesFile
	}
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = DefaultOutputDir
	}
	if cfg.Output.AssetMaxWidth == 0 {
		cfg.Output.AssetMaxWidth = DefaultAssetMaxWidth
	}
	if cfg.Templates.Name == "" {
		cfg.Templates.Name = DefaultTemplate
	}
	if cfg.Metrics.Listen == "" {
		cfg.Metrics.Listen = DefaultMetricsListen
	}
	if cfg.History.Path == "" {
		cfg.History.Path = DefaultHistoryPath
	}
	if cfg.Notify.Subject == "" {
		cfg.Notify.Subject = DefaultNotifySubject
	}
}

// Defaults returns a configuration with every default applied. Site.BaseURL is
// left empty, so it does not validate until a base URL is supplied.
func Defaults() *Config {
	cfg := &Config{Version: CurrentVersion}
	normalize(cfg)
	applyDefaults(cfg)
	return cfg
}
