package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/composegen/internal/cgerrors"
	"git.home.luguber.info/inful/composegen/internal/mdast"
	"git.home.luguber.info/inful/composegen/internal/render"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "composegen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "package: site\n"))
	require.NoError(t, err)
	require.Equal(t, "site", cfg.Package)
	require.Equal(t, "./docs", cfg.Source)
	require.Equal(t, "./generated", cfg.Output)
	require.Equal(t, EnhancedAuto, cfg.Components.Enhanced)
	require.Equal(t, "example.com/ui/html", cfg.Components.HTMLImport)
	require.Equal(t, ".composegen/cache.db", cfg.Cache.Path)
	require.Equal(t, 8787, cfg.Preview.Port)
}

func TestLoad_MissingFileIsConfigError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	var cgErr *cgerrors.Error
	require.ErrorAs(t, err, &cgErr)
	require.Equal(t, cgerrors.CategoryConfig, cgErr.Category)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("COMPOSEGEN_SOURCE", "/tmp/alt-docs")
	t.Setenv("COMPOSEGEN_OUTPUT", "/tmp/alt-out")
	t.Setenv("COMPOSEGEN_ENHANCED", "on")

	cfg, err := Load(writeConfig(t, "source: ./docs\noutput: ./generated\n"))
	require.NoError(t, err)
	require.Equal(t, "/tmp/alt-docs", cfg.Source)
	require.Equal(t, "/tmp/alt-out", cfg.Output)
	require.Equal(t, EnhancedOn, cfg.Components.Enhanced)
}

func TestValidate_RejectsBadEnhancedMode(t *testing.T) {
	_, err := Load(writeConfig(t, "components:\n  enhanced: maybe\n"))
	require.Error(t, err)
	var cgErr *cgerrors.Error
	require.ErrorAs(t, err, &cgErr)
	require.Equal(t, cgerrors.CategoryValidation, cgErr.Category)
}

func TestValidate_RejectsBadDelimiterLength(t *testing.T) {
	_, err := Load(writeConfig(t, "features:\n  inline_call_delimiters: \"{\"\n"))
	require.Error(t, err)
}

func TestValidate_RejectsIdenticalDelimiters(t *testing.T) {
	_, err := Load(writeConfig(t, "features:\n  inline_call_delimiters: \"||\"\n"))
	require.Error(t, err)
	var cgErr *cgerrors.Error
	require.ErrorAs(t, err, &cgErr)
	require.Equal(t, cgerrors.CategoryValidation, cgErr.Category)
}

func TestMarkdownFeatures_TogglesAndDelimiters(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
features:
  autolink: false
  tables: false
  inline_call_delimiters: "<>"
`))
	require.NoError(t, err)

	f := cfg.MarkdownFeatures()
	require.False(t, f.Autolink)
	require.False(t, f.Tables)
	require.True(t, f.InlineCall) // unset toggles keep defaults
	require.Equal(t, '<', f.InlineCallOpen)
	require.Equal(t, '>', f.InlineCallClose)
}

func TestImports_IncludesExtraImports(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
components:
  html_import: acme.dev/ui/html
  extra_imports:
    theme: acme.dev/ui/theme
`))
	require.NoError(t, err)

	imports := cfg.Imports()
	require.Equal(t, "acme.dev/ui/html", imports["html"])
	require.Equal(t, "example.com/ui/widgets", imports["widgets"])
	require.Equal(t, "acme.dev/ui/theme", imports["theme"])
}

func TestBuildTable_OverrideSwapsCallKeepsArgs(t *testing.T) {
	cfg, err := Load(writeConfig(t, "bindings:\n  link: theme.NavLink\n"))
	require.NoError(t, err)

	table, err := cfg.BuildTable()
	require.NoError(t, err)

	link := &mdast.Node{
		Kind:        mdast.KindLink,
		Destination: "/page",
		Children:    []*mdast.Node{mdast.Text("Click")},
	}
	res, err := table.Render(link, render.Context{UseEnhancedComponents: true})
	require.NoError(t, err)
	require.Equal(t, "theme.NavLink", res.Call)
	require.Equal(t, []string{`"/page"`, `"Click"`}, res.Args)
	require.NotNil(t, res.Children)
	require.Empty(t, res.Children)
}

func TestBuildTable_UnknownKindNameRejected(t *testing.T) {
	cfg, err := Load(writeConfig(t, "bindings:\n  blockquote: theme.Quote\n"))
	require.NoError(t, err)

	_, err = cfg.BuildTable()
	require.Error(t, err)
	var cgErr *cgerrors.Error
	require.ErrorAs(t, err, &cgErr)
	require.Equal(t, cgerrors.CategoryValidation, cgErr.Category)
}

func TestRenderContext_ExplicitModes(t *testing.T) {
	on := &Config{Components: ComponentsConfig{Enhanced: EnhancedOn}}
	require.True(t, on.RenderContext().UseEnhancedComponents)

	off := &Config{Components: ComponentsConfig{Enhanced: EnhancedOff}}
	require.False(t, off.RenderContext().UseEnhancedComponents)
}

func TestModuleRequired(t *testing.T) {
	dir := t.TempDir()
	gomod := filepath.Join(dir, "go.mod")
	require.NoError(t, os.WriteFile(gomod, []byte(`module acme.dev/site

go 1.24

require (
	example.com/ui/widgets v1.2.0
	github.com/stretchr/testify v1.11.1
)
`), 0o644))

	require.True(t, moduleRequired(gomod, "example.com/ui/widgets"))
	require.True(t, moduleRequired(gomod, "example.com/ui/widgets/forms"))
	require.True(t, moduleRequired(gomod, "acme.dev/site/internal/ui"))
	require.False(t, moduleRequired(gomod, "example.com/ui/html"))
	require.False(t, moduleRequired(filepath.Join(dir, "absent.mod"), "example.com/ui/widgets"))
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "composegen.yaml")
	require.NoError(t, WriteDefault(path, false))

	// Starter config must load cleanly.
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "pages", cfg.Package)

	err = WriteDefault(path, false)
	require.Error(t, err)
	require.NoError(t, WriteDefault(path, true))
}
