package templates

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	foundationerrors "git.home.luguber.info/inful/webdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/webdoc/internal/logfields"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Built-in template names, in presentation order.
const (
	UserGuide  = "user-guide"
	Technical  = "technical"
	QuickStart = "quick-start"
)

var builtinNames = []string{UserGuide, Technical, QuickStart}

// LoaderOptions configures a Loader. The zero value validates and caches.
type LoaderOptions struct {
	// CustomDir is searched for <name>.yaml and <name>.yml.
	CustomDir         string
	DisableValidation bool
	DisableCache      bool
	Logger            *slog.Logger
}

// Summary describes a template without its structure.
type Summary struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Author      string `json:"author,omitempty"`
	Style       string `json:"style"`
	Builtin     bool   `json:"builtin"`
}

// Loader resolves template names to definitions.
//
// The cache is a plain map; a Loader must not be shared between goroutines
// without external locking.
type Loader struct {
	opts     LoaderOptions
	logger   *slog.Logger
	validate *validator.Validate
	cache    map[string]*Definition
}

// NewLoader creates a loader.
func NewLoader(opts LoaderOptions) *Loader {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		opts:     opts,
		logger:   logger,
		validate: newValidator(),
		cache:    make(map[string]*Definition),
	}
}

// Load returns the definition for name: a built-in, a path (any name containing
// a path separator) or a file in the custom directory. With caching enabled the
// same pointer is returned for repeated loads of a name.
func (l *Loader) Load(name string) (*Definition, error) {
	if !l.opts.DisableCache {
		if def, ok := l.cache[name]; ok {
			return def, nil
		}
	}

	data, source, err := l.read(name)
	if err != nil {
		return nil, err
	}

	def, err := Parse(data)
	if err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryTemplate, "failed to parse template").
			WithContext("template", name).
			WithContext("source", source).
			Build()
	}

	if !l.opts.DisableValidation {
		if err := Validate(l.validate, def); err != nil {
			return nil, err
		}
	}

	if !l.opts.DisableCache {
		l.cache[name] = def
	}
	l.logger.Debug("Loaded template", logfields.Template(name), logfields.Path(source))
	return def, nil
}

// Parse decodes a YAML definition. Unknown keys are rejected.
func Parse(data []byte) (*Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var def Definition
	if err := dec.Decode(&def); err != nil {
		return nil, err
	}
	return &def, nil
}

func (l *Loader) read(name string) ([]byte, string, error) {
	if IsBuiltin(name) {
		p := "builtin/" + name + ".yaml"
		data, err := builtinFS.ReadFile(p)
		if err != nil {
			return nil, "", foundationerrors.InternalError("embedded template missing").
				WithCause(err).WithContext("template", name).Build()
		}
		return data, "builtin:" + name, nil
	}

	var candidates []string
	switch {
	case strings.ContainsAny(name, `/\`):
		candidates = []string{name}
	case l.opts.CustomDir != "" && name != "":
		candidates = []string{
			filepath.Join(l.opts.CustomDir, name+".yaml"),
			filepath.Join(l.opts.CustomDir, name+".yml"),
		}
	}

	for _, p := range candidates {
		// #nosec G304 -- template paths are chosen by the operator
		data, err := os.ReadFile(p)
		if err == nil {
			return data, p, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, p, foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to read template").
				WithContext("template", name).
				WithContext("path", p).
				Build()
		}
	}

	return nil, "", foundationerrors.NotFoundError(fmt.Sprintf("template '%s' not found", name)).
		WithContext("template", name).
		Build()
}

// IsBuiltin reports whether name is one of the shipped templates.
func IsBuiltin(name string) bool {
	return slices.Contains(builtinNames, name)
}

// ListBuiltin returns the built-in template names.
func ListBuiltin() []string {
	return slices.Clone(builtinNames)
}

// ListCustom returns template names found in the custom directory, sorted.
func (l *Loader) ListCustom() ([]string, error) {
	if l.opts.CustomDir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(l.opts.CustomDir)
	if err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to list custom templates").
			WithContext("path", l.opts.CustomDir).
			Build()
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, strings.TrimSuffix(e.Name(), ext))
		}
	}
	slices.Sort(names)
	return slices.Compact(names), nil
}

// Metadata loads name and summarizes it.
func (l *Loader) Metadata(name string) (Summary, error) {
	def, err := l.Load(name)
	if err != nil {
		return Summary{}, err
	}
	s := Summary{
		Name:        def.Name,
		Version:     def.Version,
		Description: def.Description,
		Author:      def.Author,
		Builtin:     IsBuiltin(name),
	}
	if def.Format != nil {
		s.Style = def.Format.UIElementsStyle
	}
	return s, nil
}

// ClearCache drops every cached definition.
func (l *Loader) ClearCache() {
	clear(l.cache)
}

// CacheSize returns the number of cached definitions.
func (l *Loader) CacheSize() int {
	return len(l.cache)
}
