// Package config loads webdoc.yaml: environment files, variable expansion,
// normalization, defaults and validation, in that order.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/webdoc/internal/foundation/errors"
)

// CurrentVersion is the only configuration version understood by Load.
const CurrentVersion = "1.0"

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "webdoc.yaml"

// Config is the webdoc.yaml document.
type Config struct {
	Version   string          `yaml:"version"`
	Site      SiteConfig      `yaml:"site"`
	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	Templates TemplatesConfig `yaml:"templates"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	History   HistoryConfig   `yaml:"history"`
	Notify    NotifyConfig    `yaml:"notify"`
}

// SiteConfig describes the documented application.
type SiteConfig struct {
	BaseURL string `yaml:"base_url" validate:"required,url"`
	Title   string `yaml:"title"`
}

// InputConfig locates the crawled pages.
type InputConfig struct {
	Pages         string `yaml:"pages" validate:"required"`
	ScreenshotDir string `yaml:"screenshot_dir,omitempty"`
}

// OutputConfig controls where and how documentation is written.
type OutputConfig struct {
	Directory     string `yaml:"directory" validate:"required"`
	Format        string `yaml:"format" validate:"oneof=markdown html"`
	AssetMaxWidth int    `yaml:"asset_max_width" validate:"gte=0"`
	VerifyLinks   *bool  `yaml:"verify_links,omitempty"`
}

// TemplatesConfig selects the documentation template.
type TemplatesConfig struct {
	Name      string `yaml:"name" validate:"required"`
	CustomDir string `yaml:"custom_dir,omitempty"`
	Cache     *bool  `yaml:"cache,omitempty"`
	Validate  *bool  `yaml:"validate,omitempty"`
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MetricsConfig enables the Prometheus endpoint of long-running commands.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen" validate:"required_if=Enabled true"`
}

// HistoryConfig enables the SQLite run history.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path" validate:"required_if=Enabled true"`
}

// NotifyConfig publishes run events to NATS when NATSURL is set.
type NotifyConfig struct {
	NATSURL   string `yaml:"nats_url,omitempty" validate:"omitempty,url"`
	Subject   string `yaml:"subject,omitempty"`
	JetStream bool   `yaml:"jetstream,omitempty"`
}

// VerifyLinksEnabled reports the effective verify_links setting.
func (o OutputConfig) VerifyLinksEnabled() bool { return o.VerifyLinks == nil || *o.VerifyLinks }

// CacheEnabled reports the effective templates.cache setting.
func (t TemplatesConfig) CacheEnabled() bool { return t.Cache == nil || *t.Cache }

// ValidateEnabled reports the effective templates.validate setting.
func (t TemplatesConfig) ValidateEnabled() bool { return t.Validate == nil || *t.Validate }

// Load reads, expands, normalizes, defaults and validates the configuration at configPath.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ferrors.NotFoundError(fmt.Sprintf("configuration file not found: %s", configPath)).
			WithContext("path", configPath).
			UserAction().
			Build()
	}
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read config file").
			WithContext("path", configPath).
			Build()
	}

	cfg, err := Parse(data)
	if err != nil {
		if ce, ok := ferrors.AsClassified(err); ok {
			return nil, ce.WithContext("path", configPath)
		}
		return nil, err
	}
	return cfg, nil
}

// Parse processes raw YAML the way Load does, without touching the filesystem.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to parse config").Build()
	}

	if cfg.Version != CurrentVersion {
		return nil, ferrors.ConfigError(fmt.Sprintf("unsupported configuration version: %q (expected %s)", cfg.Version, CurrentVersion)).
			UserAction().
			Build()
	}

	normalize(&cfg)
	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return ferrors.ConfigError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath)).
			UserAction().
			Build()
	}

	verify := true
	example := Config{
		Version: CurrentVersion,
		Site: SiteConfig{
			BaseURL: "https://app.example.com",
			Title:   "Example App Manual",
		},
		Input: InputConfig{
			Pages:         "pages.json",
			ScreenshotDir: "screenshots",
		},
		Output: OutputConfig{
			Directory:     "./manual",
			Format:        FormatMarkdown,
			AssetMaxWidth: DefaultAssetMaxWidth,
			VerifyLinks:   &verify,
		},
		Templates: TemplatesConfig{Name: DefaultTemplate},
		Logging:   LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
		Metrics:   MetricsConfig{Listen: DefaultMetricsListen},
		History:   HistoryConfig{Path: DefaultHistoryPath},
		Notify:    NotifyConfig{Subject: DefaultNotifySubject},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to marshal example config").Build()
	}
	header := "# webdoc configuration\n# Values support ${ENV_VAR} expansion; .env and .env.local are read first.\n"

	// #nosec G306 -- configuration file is not secret
	if err := os.WriteFile(configPath, append([]byte(header), data...), 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}
