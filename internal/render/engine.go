package render

import (
	"fmt"
	"log/slog"

	ferrors "git.home.luguber.info/inful/webdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/webdoc/internal/frontmatter"
	"git.home.luguber.info/inful/webdoc/internal/frontmatterops"
	"git.home.luguber.info/inful/webdoc/internal/logfields"
	"git.home.luguber.info/inful/webdoc/internal/templates"
)

// Front matter keys written when a template enables front matter.
const (
	KeyTitle       = "title"
	KeyDescription = "description"
	KeyTemplate    = "template"
	KeyURL         = "url"
	KeyLevel       = "level"
	KeyFeatureID   = "feature"
)

// Engine renders template definitions against a Context.
type Engine struct {
	logger *slog.Logger
}

// NewEngine returns an engine logging to logger, or slog.Default when nil.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger}
}

// job is one file to produce: its resolved path, body builder and front matter.
type job struct {
	path   string
	fields map[string]any
	build  func() ([]byte, error)
}

// Render produces every file the definition enables, in a fixed order: index,
// sitemap, sitemap XML, global and local navigation, then per page the overview
// and instructions, then one file per feature. Any failure aborts the whole
// render; no partial result is returned.
func (e *Engine) Render(def *templates.Definition, ctx *Context) (*Result, error) {
	if def == nil || ctx == nil {
		return nil, ferrors.RenderError("template rendering failed").
			WithContext("reason", "nil definition or context").
			Build()
	}
	if err := def.Usable(); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryRender, "template rendering failed").
			WithContext("template", def.Name).
			Build()
	}

	jobs, err := e.plan(def, ctx)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryRender, "template rendering failed").
			WithContext("template", def.Name).
			Build()
	}

	files := make([]File, 0, len(jobs))
	for _, j := range jobs {
		body, err := j.build()
		if err == nil && def.Format.FrontMatter && j.fields != nil {
			body, err = withFrontMatter(j.fields, body, j.path)
		}
		if err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryRender, "template rendering failed").
				WithContext("template", def.Name).
				WithContext("path", j.path).
				Build()
		}
		files = append(files, File{Path: j.path, Content: body})
	}

	e.logger.Debug("Rendered template",
		logfields.Template(def.Name),
		logfields.Count(len(files)))

	return &Result{
		Files: files,
		Metadata: ResultMetadata{
			TemplateName:    def.Name,
			TemplateVersion: def.Version,
			FilesGenerated:  len(files),
			GeneratedAt:     ctx.Metadata.GeneratedAt,
		},
	}, nil
}

func withFrontMatter(fields map[string]any, body []byte, relPath string) ([]byte, error) {
	if err := frontmatterops.Stamp(fields, body, relPath); err != nil {
		return nil, err
	}
	return frontmatter.Prepend(fields, body)
}

// plan resolves all output paths before any body is built, so builders can link
// to files that come later in the output order.
func (e *Engine) plan(def *templates.Definition, ctx *Context) ([]job, error) {
	dirs := def.Structure.Directories
	pats := def.Structure.Files
	l := newLayout(def)
	b := &builder{
		ctx:        ctx,
		layout:     l,
		dateFormat: def.DateFormat(),
		opts: formatFlags{
			screenshots: def.Format.IncludeScreenshots,
			breadcrumbs: def.Format.IncludeBreadcrumbs,
			pageToc:     def.Format.IncludePageToc,
		},
	}
	generated := b.generated()
	common := func(title string) map[string]any {
		return map[string]any{
			KeyTitle:                    title,
			KeyTemplate:                 def.Name,
			frontmatterops.KeyGenerated: generated,
		}
	}

	var jobs []job
	var err error

	if pats.Index != "" {
		if l.index, err = l.claim(pats.Index, "index"); err != nil {
			return nil, err
		}
		fields := common(ctx.Metadata.Title)
		if ctx.Metadata.Description != "" {
			fields[KeyDescription] = ctx.Metadata.Description
		}
		jobs = append(jobs, job{path: l.index, fields: fields, build: static(b.index)})
	}

	if pats.Sitemap != "" {
		if l.sitemap, err = l.claim(pats.Sitemap, "sitemap"); err != nil {
			return nil, err
		}
		jobs = append(jobs, job{path: l.sitemap, fields: common("Site Map"), build: static(b.sitemap)})
	}

	if pats.SitemapXML != "" {
		if l.sitemapXML, err = l.claim(pats.SitemapXML, "sitemap xml"); err != nil {
			return nil, err
		}
		jobs = append(jobs, job{path: l.sitemapXML, build: func() ([]byte, error) {
			return ctx.Sitemap.XML(ctx.Metadata.GeneratedAt)
		}})
	}

	if dirs.Navigation != "" {
		if pats.GNB != "" {
			if l.gnb, err = l.claim(pats.GNB, "global navigation"); err != nil {
				return nil, err
			}
			jobs = append(jobs, job{path: l.gnb, fields: common("Global Navigation"), build: static(b.gnb)})
		}
		if pats.LNB != "" {
			if l.lnb, err = l.claim(pats.LNB, "local navigation"); err != nil {
				return nil, err
			}
			jobs = append(jobs, job{path: l.lnb, fields: common("Local Navigation"), build: static(b.lnb)})
		}
	}

	if dirs.Pages != "" && pats.PageOverview != "" {
		pageJobs, err := e.planPages(def, ctx, l, b, common)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, pageJobs...)
	}

	if dirs.Features != "" && pats.Feature != "" {
		for _, f := range ctx.Features {
			rel := templates.ExpandPattern(pats.Feature, templates.FeatureIDPlaceholder, f.ID)
			p, err := l.claim(rel, "feature "+f.ID)
			if err != nil {
				return nil, err
			}
			l.feature[f.ID] = p
			fields := common(f.Name)
			fields[KeyFeatureID] = f.ID
			fields[KeyDescription] = f.Description
			jobs = append(jobs, job{path: p, fields: fields, build: static(func() []byte { return b.feature(f) })})
		}
	}

	return jobs, nil
}

// planPages lays out per-page files. A page ID seen twice (the same URL crawled
// twice, or URLs differing only in query) keeps its first occurrence.
func (e *Engine) planPages(def *templates.Definition, ctx *Context, l *layout, b *builder, common func(string) map[string]any) ([]job, error) {
	pats := def.Structure.Files
	var jobs []job
	for _, page := range ctx.Pages {
		if _, seen := l.overview[page.ID]; seen {
			e.logger.Warn("Skipping page with duplicate id",
				logfields.PageID(page.ID),
				logfields.URL(page.URL))
			continue
		}

		rel := templates.ExpandPattern(pats.PageOverview, templates.PageIDPlaceholder, page.ID)
		p, err := l.claim(rel, "page "+page.ID)
		if err != nil {
			return nil, err
		}
		l.overview[page.ID] = p
		fields := common(page.Title)
		fields[KeyURL] = page.URL
		fields[KeyLevel] = page.Level
		if page.Description != "" {
			fields[KeyDescription] = page.Description
		}
		jobs = append(jobs, job{path: p, fields: fields, build: static(func() []byte { return b.overview(page) })})

		if pats.PageInstructions == "" {
			continue
		}
		rel = templates.ExpandPattern(pats.PageInstructions, templates.PageIDPlaceholder, page.ID)
		ip, err := l.claim(rel, "instructions "+page.ID)
		if err != nil {
			return nil, err
		}
		l.instructions[page.ID] = ip
		ifields := common(fmt.Sprintf("%s - Instructions", page.Title))
		ifields[KeyURL] = page.URL
		jobs = append(jobs, job{path: ip, fields: ifields, build: static(func() []byte { return b.instructions(page) })})
	}
	return jobs, nil
}

func static(fn func() []byte) func() ([]byte, error) {
	return func() ([]byte, error) { return fn(), nil }
}
