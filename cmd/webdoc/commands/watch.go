package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/webdoc/internal/config"
	"git.home.luguber.info/inful/webdoc/internal/generator"
	"git.home.luguber.info/inful/webdoc/internal/logfields"
	"git.home.luguber.info/inful/webdoc/internal/metrics"
	"git.home.luguber.info/inful/webdoc/internal/watch"
)

// WatchCmd implements 'webdoc watch'.
type WatchCmd struct {
	GenerateFlags `embed:""`
	MetricsListen string        `name:"metrics-listen" help:"Serve Prometheus metrics on this address (enables metrics)"`
	Debounce      time.Duration `help:"Quiet period before regenerating" default:"500ms"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return w.run(ctx, root)
}

func (w *WatchCmd) load(root *CLI) (*config.Config, error) {
	cfg, err := loadConfig(root.Config, false)
	if err != nil {
		return nil, err
	}
	if err := w.apply(cfg); err != nil {
		return nil, err
	}
	if w.MetricsListen != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Listen = w.MetricsListen
	}
	return cfg, nil
}

func (w *WatchCmd) run(ctx context.Context, root *CLI) error {
	cfg, err := w.load(root)
	if err != nil {
		return err
	}
	logger := root.configureLogging(cfg)

	reg := prometheus.NewRegistry()
	recorder := metrics.NewPrometheusRecorder(reg)
	if cfg.Metrics.Enabled {
		srv := serveMetrics(cfg.Metrics.Listen, reg, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	r, err := newRunner(ctx, cfg, logger, recorder)
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	report := func(res *generator.Result, err error) error {
		if err != nil {
			return err
		}
		logger.Info("Documentation updated",
			logfields.Count(res.FilesGenerated),
			logfields.RunID(res.RunID),
			slog.Int("broken_links", len(res.BrokenLinks)))
		return nil
	}
	if err := report(r.generate(ctx)); err != nil {
		logger.Error("Initial generation failed", logfields.Error(err))
	}

	configPath, _ := filepath.Abs(root.Config)
	paths := []string{cfg.Input.Pages, cfg.Templates.CustomDir, cfg.Input.ScreenshotDir}
	if _, err := os.Stat(configPath); err == nil {
		paths = append(paths, configPath)
	}
	watcher, err := watch.New(watch.Options{Paths: paths, QuietWindow: w.Debounce, Logger: logger})
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	snapshot := cfg.Snapshot()
	return watcher.Run(ctx, func(ctx context.Context, changed []string) error {
		if slices.Contains(changed, configPath) {
			next, err := w.load(root)
			if err != nil {
				logger.Error("Keeping previous configuration", logfields.Error(err))
			} else if next.Snapshot() == snapshot && len(changed) == 1 {
				logger.Info("Configuration change does not affect output")
				return nil
			} else {
				snapshot = next.Snapshot()
				r.cfg = next
			}
		}
		return report(r.generate(ctx))
	})
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(reg))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Info("Serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed", logfields.Error(err))
		}
	}()
	return srv
}
