package commands

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/webdoc/internal/config"
	"git.home.luguber.info/inful/webdoc/internal/eventstore"
	ferrors "git.home.luguber.info/inful/webdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/webdoc/internal/generator"
	"git.home.luguber.info/inful/webdoc/internal/linkverify"
	"git.home.luguber.info/inful/webdoc/internal/logfields"
	"git.home.luguber.info/inful/webdoc/internal/metrics"
	"git.home.luguber.info/inful/webdoc/internal/pagemodel"
	"git.home.luguber.info/inful/webdoc/internal/templates"
)

// GenerateFlags override configuration values for a generation run.
type GenerateFlags struct {
	Pages         string `short:"p" help:"Crawled pages JSON file (overrides input.pages)" type:"path"`
	Output        string `short:"o" help:"Output directory (overrides output.directory)" type:"path"`
	Template      string `short:"t" help:"Template name or path (overrides templates.name)"`
	TemplateDir   string `name:"template-dir" help:"Directory with custom templates (overrides templates.custom_dir)" type:"path"`
	BaseURL       string `name:"base-url" help:"Base URL of the documented application (overrides site.base_url)"`
	Title         string `help:"Documentation title (overrides site.title)"`
	Format        string `short:"f" help:"Output format: markdown or html (overrides output.format)"`
	ScreenshotDir string `name:"screenshot-dir" help:"Directory relative screenshots are read from" type:"path"`
	NoVerify      bool   `name:"no-verify" help:"Skip broken link verification"`
	JSON          bool   `name:"json" help:"Print the result as JSON"`
}

// apply overlays non-empty flags onto cfg and revalidates it.
func (f GenerateFlags) apply(cfg *config.Config) error {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.Input.Pages, f.Pages)
	set(&cfg.Output.Directory, f.Output)
	set(&cfg.Templates.Name, f.Template)
	set(&cfg.Templates.CustomDir, f.TemplateDir)
	set(&cfg.Site.BaseURL, f.BaseURL)
	set(&cfg.Site.Title, f.Title)
	set(&cfg.Input.ScreenshotDir, f.ScreenshotDir)
	if f.Format != "" {
		format, err := generator.ParseOutputFormat(f.Format)
		if err != nil {
			return ferrors.WrapError(err, ferrors.CategoryValidation, "invalid --format").Build()
		}
		cfg.Output.Format = string(format)
	}
	if f.NoVerify {
		off := false
		cfg.Output.VerifyLinks = &off
	}
	return config.Validate(cfg)
}

// runner owns the resources one or more generation runs share: event sinks and
// the metrics recorder. Each run gets a fresh template loader.
type runner struct {
	cfg        *config.Config
	logger     *slog.Logger
	recorder   metrics.Recorder
	sinks      []generator.EventSink
	store      eventstore.Store
	projection *eventstore.RunHistoryProjection
	publisher  *linkverify.NATSPublisher
}

func newRunner(ctx context.Context, cfg *config.Config, logger *slog.Logger, recorder metrics.Recorder) (*runner, error) {
	r := &runner{cfg: cfg, logger: logger, recorder: recorder}

	if cfg.History.Enabled {
		store, err := eventstore.NewSQLiteStore(cfg.History.Path)
		if err != nil {
			return nil, err
		}
		r.store = store
		r.projection = eventstore.NewRunHistoryProjection(store, 0)
		if err := r.projection.Rebuild(ctx); err != nil {
			logger.Warn("Failed to rebuild run history", logfields.Error(err))
		}
		r.sinks = append(r.sinks, eventstore.NewJournal(store, r.projection))
	}

	if cfg.Notify.NATSURL != "" {
		pub, err := linkverify.NewNATSPublisher(linkverify.NATSOptions{
			URL:       cfg.Notify.NATSURL,
			Subject:   cfg.Notify.Subject,
			JetStream: cfg.Notify.JetStream,
			Logger:    logger,
		})
		if err != nil {
			_ = r.Close()
			return nil, err
		}
		r.publisher = pub
		r.sinks = append(r.sinks, pub)
	}
	return r, nil
}

func (r *runner) options() (generator.Options, error) {
	format, err := generator.ParseOutputFormat(r.cfg.Output.Format)
	if err != nil {
		return generator.Options{}, ferrors.WrapError(err, ferrors.CategoryConfig, "invalid output format").Build()
	}
	return generator.Options{
		Template:          r.cfg.Templates.Name,
		OutputDir:         r.cfg.Output.Directory,
		BaseURL:           r.cfg.Site.BaseURL,
		Title:             r.cfg.Site.Title,
		CustomTemplateDir: r.cfg.Templates.CustomDir,
		OutputFormat:      format,
		ScreenshotDir:     r.cfg.Input.ScreenshotDir,
		AssetMaxWidth:     r.cfg.Output.AssetMaxWidth,
		VerifyLinks:       r.cfg.Output.VerifyLinksEnabled(),
	}, nil
}

// generate loads the pages file and runs the pipeline once.
func (r *runner) generate(ctx context.Context) (*generator.Result, error) {
	pages, err := pagemodel.LoadPages(r.cfg.Input.Pages)
	if err != nil {
		return nil, err
	}
	opts, err := r.options()
	if err != nil {
		return nil, err
	}

	loader := templates.NewLoader(templates.LoaderOptions{
		CustomDir:         r.cfg.Templates.CustomDir,
		DisableValidation: !r.cfg.Templates.ValidateEnabled(),
		DisableCache:      !r.cfg.Templates.CacheEnabled(),
		Logger:            r.logger,
	})
	genOpts := []generator.Option{
		generator.WithLogger(r.logger),
		generator.WithLoader(loader),
		generator.WithRecorder(r.recorder),
	}
	for _, s := range r.sinks {
		genOpts = append(genOpts, generator.WithEventSink(s))
	}
	return generator.New(opts, genOpts...).Generate(ctx, pages)
}

// Close releases the history store and the NATS connection.
func (r *runner) Close() error {
	var first error
	if r.publisher != nil {
		first = r.publisher.Close()
	}
	if r.store != nil {
		if err := r.store.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
