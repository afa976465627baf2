package commands

import (
	"log/slog"

	"git.home.luguber.info/inful/composegen/internal/config"
	"git.home.luguber.info/inful/composegen/internal/logfields"
)

// InitCmd writes a starter configuration file.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(cli *CLI) error {
	if err := config.WriteDefault(cli.Config, i.Force); err != nil {
		return err
	}
	slog.Info("configuration written", logfields.Path(cli.Config))
	return nil
}
