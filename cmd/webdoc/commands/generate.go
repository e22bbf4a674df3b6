package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/webdoc/internal/metrics"
)

// GenerateCmd implements 'webdoc generate'.
type GenerateCmd struct {
	GenerateFlags `embed:""`
}

func (g *GenerateCmd) Run(global *Global, root *CLI) error {
	cfg, err := loadConfig(root.Config, false)
	if err != nil {
		return err
	}
	if err := g.apply(cfg); err != nil {
		return err
	}
	logger := root.configureLogging(cfg)

	ctx := context.Background()
	r, err := newRunner(ctx, cfg, logger, metrics.NoopRecorder{})
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	res, err := r.generate(ctx)
	if err != nil {
		return err
	}

	if g.JSON {
		return writeJSON(global.out(), res)
	}
	_, err = fmt.Fprintln(global.out(), renderResult(res))
	if root.Verbose {
		for _, f := range relativeFiles(res) {
			_, _ = fmt.Fprintln(global.out(), "  "+f)
		}
	}
	return err
}
