package commands

import (
	"fmt"

	"git.home.luguber.info/inful/webdoc/internal/config"
)

// InitCmd implements 'webdoc init'.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(global *Global, root *CLI) error {
	if err := config.Init(root.Config, i.Force); err != nil {
		return err
	}
	global.logger().Info("Configuration file created", "path", root.Config)
	_, err := fmt.Fprintf(global.out(), "Wrote %s\n", root.Config)
	return err
}
