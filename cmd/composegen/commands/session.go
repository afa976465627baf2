package commands

import (
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/composegen/internal/cache"
	"git.home.luguber.info/inful/composegen/internal/cgerrors"
	"git.home.luguber.info/inful/composegen/internal/config"
	"git.home.luguber.info/inful/composegen/internal/generate"
	"git.home.luguber.info/inful/composegen/internal/logfields"
	"git.home.luguber.info/inful/composegen/internal/markdown"
	"git.home.luguber.info/inful/composegen/internal/metrics"
)

// session bundles everything one generation run needs. Feature toggles, the
// binding table and the enhanced-components flag are all resolved here, once;
// they stay frozen for every render pass in the session.
type session struct {
	cfg       *config.Config
	parser    *markdown.Parser
	generator *generate.Generator
	store     *cache.Store
	recorder  metrics.Recorder
}

// overrides carries CLI flag values that take priority over config values.
type overrides struct {
	source      string
	output      string
	withMetrics bool
}

// newSession loads the config and builds the frozen per-run state.
func newSession(configPath string, ov overrides) (*session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if ov.source != "" {
		cfg.Source = ov.source
	}
	if ov.output != "" {
		cfg.Output = ov.output
	}

	parser, err := markdown.NewParser(cfg.MarkdownFeatures())
	if err != nil {
		return nil, cgerrors.Wrap(err, cgerrors.CategoryConfig, "build markdown parser")
	}

	table, err := cfg.BuildTable()
	if err != nil {
		return nil, err
	}

	var store *cache.Store
	if !cfg.Cache.Disabled {
		if err := os.MkdirAll(filepath.Dir(cfg.Cache.Path), 0o755); err != nil {
			return nil, cgerrors.Wrap(err, cgerrors.CategoryStorage, "create cache dir")
		}
		store, err = cache.Open(cfg.Cache.Path)
		if err != nil {
			// The cache is an optimization; a broken cache file should not
			// block generation.
			slog.Warn("cache unavailable, continuing without it", logfields.Error(err))
			store = nil
		}
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if ov.withMetrics {
		recorder = metrics.NewPrometheusRecorder(nil)
	}

	opts := generate.Options{
		Package:   cfg.Package,
		Imports:   cfg.Imports(),
		OutputDir: cfg.Output,
	}
	gen := generate.New(parser, table, cfg.RenderContext(), opts, store, recorder)

	return &session{cfg: cfg, parser: parser, generator: gen, store: store, recorder: recorder}, nil
}

func (s *session) close() {
	if s.store != nil {
		_ = s.store.Close()
	}
}
