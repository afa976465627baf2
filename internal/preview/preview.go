// Package preview watches a Markdown source tree, regenerates on change, and
// serves the generated output (plus metrics) over HTTP.
package preview

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/composegen/internal/logfields"
)

const debounceInterval = 300 * time.Millisecond

// Options configures a preview session.
type Options struct {
	SourceDir string
	OutputDir string
	Port      int
	// Regenerate runs one generation pass; it is called once at startup and
	// after every debounced change burst.
	Regenerate func(ctx context.Context) error
	// MetricsHandler, when non-nil, is mounted at /metrics.
	MetricsHandler http.Handler
}

// Run starts the preview session and blocks until ctx is cancelled or the
// server fails.
func Run(ctx context.Context, opts Options) error {
	if opts.Regenerate == nil {
		return errors.New("preview: Regenerate is required")
	}

	if err := opts.Regenerate(ctx); err != nil {
		// Keep serving; the next change may fix the source.
		slog.Error("initial generation failed", logfields.Error(err))
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = watcher.Close() }()
	if err := addDirsRecursive(watcher, opts.SourceDir); err != nil {
		return err
	}

	srv, errCh, err := startServer(opts)
	if err != nil {
		return err
	}
	defer func() {
		shutCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutCtx)
	}()

	regenReq, trigger := debouncer()
	go regenWorker(ctx, opts.Regenerate, regenReq)

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errCh:
			return err
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&fsnotify.Create != 0 {
				if st, err := os.Stat(ev.Name); err == nil && st.IsDir() {
					_ = addDirsRecursive(watcher, ev.Name)
				}
			}
			if relevant(ev) {
				slog.Debug("source change detected", logfields.Path(ev.Name))
				trigger()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", logfields.Error(err))
		}
	}
}

func relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	ext := filepath.Ext(ev.Name)
	return ext == ".md" || ext == ".markdown" || ext == ""
}

func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if filepath.Base(path)[0] == '.' && path != root {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}

// debouncer coalesces change bursts into single regeneration requests.
func debouncer() (chan struct{}, func()) {
	var mu sync.Mutex
	var timer *time.Timer
	req := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(debounceInterval, func() {
			select {
			case req <- struct{}{}:
			default:
			}
		})
	}
	return req, trigger
}

func regenWorker(ctx context.Context, regenerate func(context.Context) error, req <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-req:
			slog.Info("change detected; regenerating")
			if err := regenerate(ctx); err != nil {
				slog.Warn("regeneration failed", logfields.Error(err))
			}
		}
	}
}

func startServer(opts Options) (*http.Server, <-chan error, error) {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(opts.OutputDir)))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	if opts.MetricsHandler != nil {
		mux.Handle("/metrics", opts.MetricsHandler)
	}

	addr := fmt.Sprintf(":%d", opts.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("listen %s: %w", addr, err)
	}

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	slog.Info("preview server listening", slog.Int("port", opts.Port), logfields.Output(opts.OutputDir))
	return srv, errCh, nil
}
