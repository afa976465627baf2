package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "composegen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewSession_FlagOverridesWinOverConfig(t *testing.T) {
	path := writeTestConfig(t, `
source: ./docs
output: ./generated
cache:
  disabled: true
`)

	sess, err := newSession(path, overrides{source: "/tmp/docs-alt", output: "/tmp/out-alt"})
	require.NoError(t, err)
	defer sess.close()

	require.Equal(t, "/tmp/docs-alt", sess.cfg.Source)
	require.Equal(t, "/tmp/out-alt", sess.cfg.Output)
	require.Nil(t, sess.store)
}

func TestNewSession_InvalidConfigFails(t *testing.T) {
	path := writeTestConfig(t, "components:\n  enhanced: sometimes\n")

	_, err := newSession(path, overrides{})
	require.Error(t, err)
}

func TestNewSession_CacheEnabledOpensStore(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "state", "cache.db")
	path := writeTestConfig(t, "cache:\n  path: "+cachePath+"\n")

	sess, err := newSession(path, overrides{})
	require.NoError(t, err)
	defer sess.close()

	require.NotNil(t, sess.store)
	_, statErr := os.Stat(cachePath)
	require.NoError(t, statErr)
}
