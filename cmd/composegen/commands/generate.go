package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/composegen/internal/logfields"
	"git.home.luguber.info/inful/composegen/internal/source"
)

// GenerateCmd runs one generation pass over the configured source.
type GenerateCmd struct {
	Source string `short:"s" help:"Override the configured source (local dir or git URL)"`
	Output string `short:"o" help:"Override the configured output directory"`
}

func (g *GenerateCmd) Run(cli *CLI) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess, err := newSession(cli.Config, overrides{source: g.Source, output: g.Output})
	if err != nil {
		return err
	}
	defer sess.close()

	srcDir, cleanup, err := source.Resolve(ctx, sess.cfg.Source, sess.cfg.Branch)
	if err != nil {
		return err
	}
	defer cleanup()

	manifest, err := sess.generator.Run(ctx, srcDir)
	if err != nil {
		return err
	}

	slog.Info("generated",
		logfields.Count(len(manifest.Entries)),
		logfields.Output(sess.cfg.Output),
		logfields.Session(manifest.SessionID))
	return nil
}
