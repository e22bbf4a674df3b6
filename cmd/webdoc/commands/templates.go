package commands

import (
	"fmt"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/webdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/webdoc/internal/templates"
)

// TemplatesCmd groups template-related commands.
type TemplatesCmd struct {
	List TemplatesListCmd `cmd:"" help:"List built-in and custom templates"`
	Show TemplatesShowCmd `cmd:"" help:"Print a template definition as YAML"`
}

// TemplatesListCmd implements 'webdoc templates list'.
type TemplatesListCmd struct {
	TemplateDir string `name:"template-dir" help:"Directory with custom templates (overrides templates.custom_dir)" type:"path"`
	JSON        bool   `name:"json" help:"Print as JSON"`
}

func (t *TemplatesListCmd) Run(global *Global, root *CLI) error {
	loader, err := templateLoader(root, t.TemplateDir)
	if err != nil {
		return err
	}

	names := templates.ListBuiltin()
	custom, err := loader.ListCustom()
	if err != nil {
		return err
	}
	names = append(names, custom...)

	summaries := make([]templates.Summary, 0, len(names))
	for _, name := range names {
		s, err := loader.Metadata(name)
		if err != nil {
			global.logger().Warn("Skipping invalid template", "template", name, "error", err)
			continue
		}
		summaries = append(summaries, s)
	}

	if t.JSON {
		return writeJSON(global.out(), summaries)
	}
	_, err = fmt.Fprintln(global.out(), renderTemplates(summaries))
	return err
}

// TemplatesShowCmd implements 'webdoc templates show'.
type TemplatesShowCmd struct {
	Name        string `arg:"" help:"Template name or path"`
	TemplateDir string `name:"template-dir" help:"Directory with custom templates (overrides templates.custom_dir)" type:"path"`
}

func (t *TemplatesShowCmd) Run(global *Global, root *CLI) error {
	loader, err := templateLoader(root, t.TemplateDir)
	if err != nil {
		return err
	}
	def, err := loader.Load(t.Name)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(def)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to marshal template").Build()
	}
	_, err = global.out().Write(data)
	return err
}

func templateLoader(root *CLI, dirFlag string) (*templates.Loader, error) {
	cfg, err := loadConfig(root.Config, false)
	if err != nil {
		return nil, err
	}
	dir := cfg.Templates.CustomDir
	if dirFlag != "" {
		dir = dirFlag
	}
	return templates.NewLoader(templates.LoaderOptions{
		CustomDir:         dir,
		DisableValidation: !cfg.Templates.ValidateEnabled(),
		Logger:            root.configureLogging(cfg),
	}), nil
}
