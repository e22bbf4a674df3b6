// Package commands implements the webdoc command line interface.
package commands

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/webdoc/internal/config"
)

// Global carries state shared by every command.
type Global struct {
	Logger *slog.Logger
	Stdout io.Writer
}

func (g *Global) out() io.Writer {
	if g == nil || g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

func (g *Global) logger() *slog.Logger {
	if g == nil || g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config    string           `short:"c" help:"Configuration file path" default:"webdoc.yaml" type:"path"`
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	LogFormat string           `name:"log-format" help:"Log output format (text, json); overrides logging.format"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Generate  GenerateCmd  `cmd:"" help:"Generate documentation from crawled pages"`
	Watch     WatchCmd     `cmd:"" help:"Regenerate documentation whenever pages, templates or configuration change"`
	Init      InitCmd      `cmd:"" help:"Write an example configuration file"`
	Templates TemplatesCmd `cmd:"" help:"Inspect documentation templates"`
	History   HistoryCmd   `cmd:"" help:"Show recorded generation runs"`
	Info      VersionCmd   `cmd:"" name:"version" help:"Print version and build information"`
}

// AfterApply runs after flag parsing; it installs the flag-driven logger.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply(g *Global) error {
	logger := c.configureLogging(nil)
	if g != nil {
		g.Logger = logger
	}
	return nil
}

// configureLogging builds the process logger from flags and, when given, the
// logging section of cfg. -v and --log-format win over the file.
func (c *CLI) configureLogging(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	format := config.LogFormatText
	if cfg != nil {
		level = cfg.Logging.Level.SlogLevel()
		format = cfg.Logging.Format
	}
	if c.Verbose {
		level = slog.LevelDebug
	}
	if c.LogFormat != "" {
		format = config.NormalizeLogFormat(c.LogFormat)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// loadConfig reads the configuration file. A missing file is only an error when
// required; otherwise defaults are returned for flags to fill in.
func loadConfig(path string, required bool) (*config.Config, error) {
	if !required {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return config.Defaults(), nil
		}
	}
	return config.Load(path)
}
