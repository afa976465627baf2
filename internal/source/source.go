// Package source resolves the configured document source to a local
// directory, cloning git URLs into a scratch workspace when needed.
package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"git.home.luguber.info/inful/composegen/internal/cgerrors"
	"git.home.luguber.info/inful/composegen/internal/logfields"
)

// Resolve returns a local directory containing the Markdown sources.
//
// Local paths are validated and returned as-is with a no-op cleanup. Git URLs
// are shallow-cloned (branch-pinned when branch is non-empty) into a
// temporary directory that cleanup removes.
func Resolve(ctx context.Context, rawSource, branch string) (dir string, cleanup func(), err error) {
	noop := func() {}
	if !IsGitURL(rawSource) {
		abs, err := filepath.Abs(rawSource)
		if err != nil {
			return "", noop, cgerrors.Wrap(err, cgerrors.CategorySource, "resolve source dir")
		}
		st, err := os.Stat(abs)
		if err != nil || !st.IsDir() {
			return "", noop, cgerrors.Newf(cgerrors.CategorySource, "source dir not found or not a directory: %s", abs)
		}
		return abs, noop, nil
	}

	tmp, err := os.MkdirTemp("", "composegen-src-*")
	if err != nil {
		return "", noop, cgerrors.Wrap(err, cgerrors.CategorySource, "create clone workspace")
	}
	cleanup = func() { _ = os.RemoveAll(tmp) }

	if err := cloneOnce(ctx, rawSource, branch, tmp); err != nil {
		cleanup()
		return "", noop, err
	}
	return tmp, cleanup, nil
}

// IsGitURL reports whether the source string names a remote git repository
// rather than a local path.
func IsGitURL(s string) bool {
	return strings.HasPrefix(s, "http://") ||
		strings.HasPrefix(s, "https://") ||
		strings.HasPrefix(s, "ssh://") ||
		strings.HasPrefix(s, "git@") ||
		strings.HasSuffix(s, ".git")
}

func cloneOnce(ctx context.Context, url, branch, dest string) error {
	slog.Debug("cloning source repository", logfields.Source(url), slog.String("branch", branch), logfields.Path(dest))

	opts := &gogit.CloneOptions{URL: url, Depth: 1}
	if branch != "" {
		opts.ReferenceName = plumbing.ReferenceName("refs/heads/" + branch)
		opts.SingleBranch = true
	}

	repo, err := gogit.PlainCloneContext(ctx, dest, false, opts)
	if err != nil {
		return cgerrors.Wrap(err, cgerrors.CategorySource, fmt.Sprintf("clone %s", url))
	}

	if ref, herr := repo.Head(); herr == nil {
		slog.Info("source repository cloned", logfields.Source(url), slog.String("commit", ref.Hash().String()[:8]))
	} else {
		slog.Info("source repository cloned", logfields.Source(url))
	}
	return nil
}
