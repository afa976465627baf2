package commands

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/composegen/internal/cgerrors"
	"git.home.luguber.info/inful/composegen/internal/metrics"
	"git.home.luguber.info/inful/composegen/internal/preview"
	"git.home.luguber.info/inful/composegen/internal/source"
)

// PreviewCmd watches the source tree, regenerates on change and serves the
// generated output. Remote git sources are not watchable; preview requires a
// local source directory.
type PreviewCmd struct {
	Port int `short:"p" help:"Override the configured preview port"`
}

func (p *PreviewCmd) Run(cli *CLI) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess, err := newSession(cli.Config, overrides{withMetrics: true})
	if err != nil {
		return err
	}
	defer sess.close()

	if source.IsGitURL(sess.cfg.Source) {
		return cgerrors.New(cgerrors.CategoryValidation, "preview requires a local source directory, not a git URL")
	}
	srcDir, cleanup, err := source.Resolve(ctx, sess.cfg.Source, "")
	if err != nil {
		return err
	}
	defer cleanup()

	port := sess.cfg.Preview.Port
	if p.Port != 0 {
		port = p.Port
	}

	var metricsHandler http.Handler
	if sess.cfg.Preview.Metrics {
		if pr, ok := sess.recorder.(*metrics.PrometheusRecorder); ok {
			metricsHandler = pr.Handler()
		}
	}

	return preview.Run(ctx, preview.Options{
		SourceDir:      srcDir,
		OutputDir:      sess.cfg.Output,
		Port:           port,
		MetricsHandler: metricsHandler,
		Regenerate: func(ctx context.Context) error {
			_, err := sess.generator.Run(ctx, srcDir)
			return err
		},
	})
}
