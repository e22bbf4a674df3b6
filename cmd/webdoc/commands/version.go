package commands

import (
	"fmt"
	"runtime"

	"git.home.luguber.info/inful/webdoc/internal/version"
)

// VersionCmd implements 'webdoc version'.
type VersionCmd struct{}

func (VersionCmd) Run(global *Global) error {
	_, err := fmt.Fprintf(global.out(), "webdoc %s (commit %s, built %s, %s)\n",
		version.Version, version.GitCommit, version.BuildTime, runtime.Version())
	return err
}
