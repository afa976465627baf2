package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/composegen/cmd/composegen/commands"
	"git.home.luguber.info/inful/composegen/internal/cgerrors"
	"git.home.luguber.info/inful/composegen/internal/version"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("composegen"),
		kong.Description("Generate UI component source files from Markdown documents."),
		kong.Vars{"version": version.Version},
	)

	if err := ctx.Run(&cli); err != nil {
		adapter := cgerrors.NewCLIAdapter(cli.Verbose, slog.Default())
		adapter.HandleError(err)
	}
}
