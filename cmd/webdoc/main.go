package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/webdoc/cmd/webdoc/commands"
	ferrors "git.home.luguber.info/inful/webdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/webdoc/internal/version"
)

func main() {
	cli := &commands.CLI{}
	global := &commands.Global{}

	kctx := kong.Parse(cli,
		kong.Name("webdoc"),
		kong.Description("Assemble multi-file user documentation from crawled web application pages."),
		kong.UsageOnError(),
		kong.Bind(global),
		kong.Vars{"version": version.Version},
	)

	if err := kctx.Run(global, cli); err != nil {
		ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
