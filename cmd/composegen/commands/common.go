package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

// CLI definition & global flags shared by all subcommands.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"composegen.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Generate GenerateCmd `cmd:"" help:"Generate component source files from Markdown documents"`
	Init     InitCmd     `cmd:"" help:"Initialize a new configuration file"`
	Preview  PreviewCmd  `cmd:"" help:"Regenerate on change and serve the generated output"`
}

// AfterApply runs after flag parsing; sets up logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}
