// Package generator runs the multi-file documentation pipeline: it loads a
// template, derives features, sitemap and navigation from crawled pages, renders
// the template's files and writes them under an output directory.
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"git.home.luguber.info/inful/webdoc/internal/features"
	ferrors "git.home.luguber.info/inful/webdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/webdoc/internal/linkverify"
	"git.home.luguber.info/inful/webdoc/internal/logfields"
	"git.home.luguber.info/inful/webdoc/internal/metrics"
	"git.home.luguber.info/inful/webdoc/internal/pagemodel"
	"git.home.luguber.info/inful/webdoc/internal/render"
	"git.home.luguber.info/inful/webdoc/internal/templates"
	"git.home.luguber.info/inful/webdoc/internal/version"
)

// ResultMetadata describes the generated set.
type ResultMetadata struct {
	GeneratedAt  time.Time `json:"generatedAt"`
	BaseURL      string    `json:"baseUrl"`
	PageCount    int       `json:"pageCount"`
	FeatureCount int       `json:"featureCount"`
}

// Result reports a completed run.
type Result struct {
	FilesGenerated int                         `json:"filesGenerated"`
	OutputDir      string                      `json:"outputDir"`
	Files          []string                    `json:"files"`
	TemplateName   string                      `json:"templateName"`
	Metadata       ResultMetadata              `json:"metadata"`
	RunID          string                      `json:"runId"`
	BrokenLinks    []linkverify.BrokenLink     `json:"brokenLinks,omitempty"`
	StageDurations map[StageName]time.Duration `json:"-"`
}

// Generator produces documentation sets. It is not safe for concurrent use:
// the template loader cache it owns is unsynchronized.
type Generator struct {
	opts     Options
	logger   *slog.Logger
	loader   *templates.Loader
	recorder metrics.Recorder
	sinks    []EventSink
	now      func() time.Time
	validate *validator.Validate
}

// New returns a generator for opts.
func New(opts Options, options ...Option) *Generator {
	g := &Generator{
		opts:     opts.withDefaults(),
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
		now:      time.Now,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, o := range options {
		o(g)
	}
	if g.loader == nil {
		g.loader = templates.NewLoader(templates.LoaderOptions{
			CustomDir: g.opts.CustomTemplateDir,
			Logger:    g.logger,
		})
	}
	return g
}

// runState carries data between stages of one run.
type runState struct {
	runID          string
	opts           Options
	logger         *slog.Logger
	pages          []pagemodel.PageInfo
	generatedAt    time.Time
	def            *templates.Definition
	features       []features.Feature
	context        *render.Context
	rendered       *render.Result
	assets         []render.File
	broken         []linkverify.BrokenLink
	written        []string
	stageDurations map[StageName]time.Duration
}

// Generate runs the pipeline over pages. On failure the returned error is
// classified, carries the failing stage in its context and files already
// written stay on disk.
func (g *Generator) Generate(ctx context.Context, pages []pagemodel.PageInfo) (*Result, error) {
	start := time.Now()
	rs := &runState{
		runID:          uuid.NewString(),
		opts:           g.opts,
		pages:          pages,
		generatedAt:    g.now(),
		stageDurations: make(map[StageName]time.Duration),
	}
	rs.logger = g.logger.With(logfields.RunID(rs.runID))

	if err := g.validateInput(pages); err != nil {
		g.recorder.IncGenerationOutcome(metrics.OutcomeFailed)
		return nil, err
	}

	rs.logger.Info("Starting multi-file documentation generation",
		logfields.Template(g.opts.Template),
		logfields.Count(len(pages)),
		logfields.OutputFormat(string(g.opts.OutputFormat)))
	g.emit("start", func(s EventSink) error {
		return s.GenerationStarted(ctx, rs.runID, g.opts.Template, len(pages))
	})

	stages := newPipeline().
		add(StageLoadTemplate, g.stageLoadTemplate).
		add(StageBuildContext, stageBuildContext).
		add(StagePrepareAssets, stagePrepareAssetsIfEnabled).
		add(StageRender, stageRender).
		addIf(g.opts.OutputFormat == FormatHTML, StageConvert, stageConvert).
		addIf(g.opts.VerifyLinks, StageVerifyLinks, g.stageVerifyLinks).
		add(StageWriteFiles, stageWriteFiles).
		defs

	if se := g.runStages(ctx, rs, stages); se != nil {
		return nil, g.fail(ctx, rs, se, time.Since(start))
	}

	dur := time.Since(start)
	g.recorder.ObserveGenerationDuration(dur)
	g.recorder.AddFilesWritten(len(rs.written))
	g.recorder.AddBrokenLinks(len(rs.broken))
	outcome := metrics.OutcomeSuccess
	if len(rs.broken) > 0 {
		outcome = metrics.OutcomeWarning
	}
	g.recorder.IncGenerationOutcome(outcome)
	g.emit("complete", func(s EventSink) error {
		return s.GenerationCompleted(ctx, rs.runID, len(rs.written), len(rs.broken), dur)
	})

	rs.logger.Info("Multi-file generation complete",
		logfields.Count(len(rs.written)),
		logfields.Path(g.opts.OutputDir),
		logfields.DurationMS(float64(dur.Microseconds())/1000))

	return &Result{
		FilesGenerated: len(rs.written),
		OutputDir:      g.opts.OutputDir,
		Files:          rs.written,
		TemplateName:   rs.def.Name,
		Metadata: ResultMetadata{
			GeneratedAt:  rs.generatedAt,
			BaseURL:      g.opts.BaseURL,
			PageCount:    len(pages),
			FeatureCount: len(rs.features),
		},
		RunID:          rs.runID,
		BrokenLinks:    rs.broken,
		StageDurations: rs.stageDurations,
	}, nil
}

func (g *Generator) validateInput(pages []pagemodel.PageInfo) error {
	if err := g.validate.Struct(g.opts); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryValidation, "invalid generation options").Build()
	}
	if len(pages) == 0 {
		return ferrors.ValidationError("at least one page is required").Build()
	}
	return nil
}

func (g *Generator) fail(ctx context.Context, rs *runState, se *StageError, dur time.Duration) error {
	outcome := metrics.OutcomeFailed
	if se.Kind == StageErrorCanceled {
		outcome = metrics.OutcomeCanceled
	}
	g.recorder.ObserveGenerationDuration(dur)
	g.recorder.AddFilesWritten(len(rs.written))
	g.recorder.IncGenerationOutcome(outcome)

	cause := se.Err
	g.emit("failed", func(s EventSink) error {
		return s.GenerationFailed(context.WithoutCancel(ctx), rs.runID, string(se.Stage), cause.Error())
	})

	return ferrors.WrapError(cause, ferrors.GetCategory(cause), "multi-file generation failed").
		WithContext("stage", string(se.Stage)).
		WithContext("run_id", rs.runID).
		Build()
}

// emit fans fn out to every sink; failures are logged.
func (g *Generator) emit(what string, fn func(EventSink) error) {
	for _, s := range g.sinks {
		if err := fn(s); err != nil {
			g.logger.Warn("Event sink failed", "event", what, logfields.Error(err))
		}
	}
}

func (g *Generator) stageLoadTemplate(_ context.Context, rs *runState) error {
	def, err := g.loader.Load(rs.opts.Template)
	if err != nil {
		return err
	}
	rs.def = def
	rs.logger.Info("Using template", logfields.Template(def.Name), "template_version", def.Version)
	return nil
}

func stageBuildContext(_ context.Context, rs *runState) error {
	if err := rs.def.Usable(); err != nil {
		return err
	}
	style, err := features.ParseStyle(rs.def.Format.UIElementsStyle)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryTemplate, "unsupported ui elements style").
			WithContext("template", rs.def.Name).
			Build()
	}
	rs.features = features.NewExtractor(rs.logger).Extract(rs.pages, style)
	rs.context = render.NewContext(rs.pages, rs.features, render.Metadata{
		Title:       rs.opts.Title,
		Description: "Documentation for " + rs.opts.BaseURL,
		BaseURL:     rs.opts.BaseURL,
		Version:     version.Short(),
		GeneratedAt: rs.generatedAt,
	})
	rs.logger.Info("Context built",
		logfields.Count(len(rs.context.Pages)),
		"feature_count", len(rs.features))
	return nil
}

func stagePrepareAssetsIfEnabled(ctx context.Context, rs *runState) error {
	if !rs.def.Format.IncludeScreenshots || rs.def.Structure.Directories.Assets == "" {
		return nil
	}
	return stagePrepareAssets(ctx, rs)
}

func stageRender(_ context.Context, rs *runState) error {
	res, err := render.NewEngine(rs.logger).Render(rs.def, rs.context)
	if err != nil {
		return err
	}
	res.Files = append(res.Files, rs.assets...)
	rs.rendered = res
	return nil
}

func stageConvert(_ context.Context, rs *runState) error {
	res, err := render.ToHTML(rs.rendered, rs.opts.Title)
	if err != nil {
		return err
	}
	rs.rendered = res
	return nil
}

func (g *Generator) stageVerifyLinks(ctx context.Context, rs *runState) error {
	rs.broken = linkverify.NewVerifier(rs.logger).Verify(rs.rendered.Files)
	g.emit("links", func(s EventSink) error {
		return s.LinksVerified(ctx, rs.runID, rs.broken)
	})
	if len(rs.broken) > 0 {
		return newWarnStageError(StageVerifyLinks, fmt.Errorf("%d broken link(s)", len(rs.broken)))
	}
	return nil
}

func stageWriteFiles(ctx context.Context, rs *runState) error {
	rs.logger.Info("Writing files",
		logfields.Count(len(rs.rendered.Files)),
		logfields.Path(rs.opts.OutputDir))
	for _, f := range rs.rendered.Files {
		if err := ctx.Err(); err != nil {
			return newCanceledStageError(StageWriteFiles, err)
		}
		full, err := templates.WriteFile(rs.opts.OutputDir, f.Path, f.Content)
		if err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write output file").
				WithContext("path", f.Path).
				Build()
		}
		rs.written = append(rs.written, full)
		rs.logger.Debug("Written", logfields.Path(full))
	}
	return nil
}
