package generator

import (
	"log/slog"
	"time"

	"git.home.luguber.info/inful/webdoc/internal/foundation/normalization"
	"git.home.luguber.info/inful/webdoc/internal/metrics"
	"git.home.luguber.info/inful/webdoc/internal/templates"
)

// OutputFormat selects the file format written to disk.
type OutputFormat string

const (
	FormatMarkdown OutputFormat = "markdown"
	FormatHTML     OutputFormat = "html"
)

var outputFormats = normalization.NewNormalizer("output format", map[string]OutputFormat{
	"markdown": FormatMarkdown,
	"md":       FormatMarkdown,
	"html":     FormatHTML,
}, FormatMarkdown)

// ParseOutputFormat maps user input onto an OutputFormat. Empty input is markdown.
func ParseOutputFormat(raw string) (OutputFormat, error) {
	return outputFormats.Parse(raw)
}

// DefaultTemplate is used when Options.Template is empty.
const DefaultTemplate = templates.UserGuide

// DefaultTitle is used when Options.Title is empty.
const DefaultTitle = "Documentation"

// Options configures one generation run.
type Options struct {
	Template          string
	OutputDir         string `validate:"required"`
	BaseURL           string `validate:"required,url"`
	Title             string
	CustomTemplateDir string
	OutputFormat      OutputFormat `validate:"omitempty,oneof=markdown html"`
	// ScreenshotDir resolves relative screenshot paths; the working directory when empty.
	ScreenshotDir string
	// AssetMaxWidth caps the width of copied screenshots; 0 keeps the original size.
	AssetMaxWidth int `validate:"gte=0"`
	VerifyLinks   bool
}

func (o Options) withDefaults() Options {
	if o.Template == "" {
		o.Template = DefaultTemplate
	}
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.OutputFormat == "" {
		o.OutputFormat = FormatMarkdown
	}
	return o
}

// Option customizes a Generator.
type Option func(*Generator)

// WithLogger sets the logger. slog.Default is used otherwise.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithLoader injects a template loader instead of building one from Options.
func WithLoader(loader *templates.Loader) Option {
	return func(g *Generator) {
		if loader != nil {
			g.loader = loader
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(g *Generator) {
		if r != nil {
			g.recorder = r
		}
	}
}

// WithEventSink adds a sink for run lifecycle events. May be given repeatedly.
func WithEventSink(sink EventSink) Option {
	return func(g *Generator) {
		if sink != nil {
			g.sinks = append(g.sinks, sink)
		}
	}
}

// WithClock overrides the generation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}
