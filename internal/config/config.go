// Package config loads and normalizes the composegen.yaml configuration.
package config

import (
	"os"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/composegen/internal/cgerrors"
	"git.home.luguber.info/inful/composegen/internal/markdown"
)

// DefaultFileName is the config file looked up when -c is not given.
const DefaultFileName = "composegen.yaml"

// EnhancedMode controls enhanced-component template selection.
type EnhancedMode string

const (
	EnhancedAuto EnhancedMode = "auto" // probe the host go.mod once at load time
	EnhancedOn   EnhancedMode = "on"
	EnhancedOff  EnhancedMode = "off"
)

// FeaturesConfig is the YAML shape of the parser feature toggles.
type FeaturesConfig struct {
	Autolink             *bool  `yaml:"autolink,omitempty"`
	FrontMatter          *bool  `yaml:"front_matter,omitempty"`
	InlineCall           *bool  `yaml:"inline_call,omitempty"`
	InlineCallDelimiters string `yaml:"inline_call_delimiters,omitempty"` // two runes, e.g. "{}"
	Tables               *bool  `yaml:"tables,omitempty"`
	TaskList             *bool  `yaml:"task_list,omitempty"`
}

// ComponentsConfig selects the component libraries referenced by generated code.
type ComponentsConfig struct {
	Enhanced      EnhancedMode `yaml:"enhanced,omitempty"`
	HTMLImport    string       `yaml:"html_import,omitempty"`
	WidgetsImport string       `yaml:"widgets_import,omitempty"`
	// ExtraImports maps additional aliases (used by binding overrides or
	// inline calls) to import paths.
	ExtraImports map[string]string `yaml:"extra_imports,omitempty"`
}

// CacheConfig controls the incremental generation cache.
type CacheConfig struct {
	Path     string `yaml:"path,omitempty"`
	Disabled bool   `yaml:"disabled,omitempty"`
}

// PreviewConfig controls the preview server.
type PreviewConfig struct {
	Port    int  `yaml:"port,omitempty"`
	Metrics bool `yaml:"metrics,omitempty"`
}

// Config is the root configuration.
type Config struct {
	// Package is the package clause of generated files.
	Package string `yaml:"package"`
	// Source is a local directory or a git URL (http(s)://, git@, ssh://).
	Source string `yaml:"source"`
	// Branch pins the branch when Source is a git URL.
	Branch string `yaml:"branch,omitempty"`
	// Output is the directory the generated tree is written under.
	Output string `yaml:"output"`

	Features   FeaturesConfig    `yaml:"features,omitempty"`
	Components ComponentsConfig  `yaml:"components,omitempty"`
	Bindings   map[string]string `yaml:"bindings,omitempty"` // kind name -> call target
	Cache      CacheConfig       `yaml:"cache,omitempty"`
	Preview    PreviewConfig     `yaml:"preview,omitempty"`
}

// Load reads, env-expands and normalizes a config file. Environment variables
// from .env/.env.local are loaded first (never overriding the process env) so
// COMPOSEGEN_* overrides work in local checkouts.
func Load(path string) (*Config, error) {
	// Best effort; absence of .env files is the normal case.
	_ = godotenv.Load(".env", ".env.local")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, cgerrors.Wrap(err, cgerrors.CategoryConfig, "read config file")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, cgerrors.Wrap(err, cgerrors.CategoryConfig, "parse config file")
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnv maps recognized COMPOSEGEN_* variables over file values.
func (c *Config) applyEnv() {
	if v := os.Getenv("COMPOSEGEN_SOURCE"); v != "" {
		c.Source = v
	}
	if v := os.Getenv("COMPOSEGEN_OUTPUT"); v != "" {
		c.Output = v
	}
	if v := os.Getenv("COMPOSEGEN_ENHANCED"); v != "" {
		c.Components.Enhanced = EnhancedMode(v)
	}
}

func (c *Config) applyDefaults() {
	if c.Package == "" {
		c.Package = "pages"
	}
	if c.Source == "" {
		c.Source = "./docs"
	}
	if c.Output == "" {
		c.Output = "./generated"
	}
	if c.Components.Enhanced == "" {
		c.Components.Enhanced = EnhancedAuto
	}
	if c.Components.HTMLImport == "" {
		c.Components.HTMLImport = "example.com/ui/html"
	}
	if c.Components.WidgetsImport == "" {
		c.Components.WidgetsImport = "example.com/ui/widgets"
	}
	if c.Cache.Path == "" {
		c.Cache.Path = ".composegen/cache.db"
	}
	if c.Preview.Port == 0 {
		c.Preview.Port = 8787
	}
}

// Validate rejects values the rest of the pipeline cannot work with.
func (c *Config) Validate() error {
	switch c.Components.Enhanced {
	case EnhancedAuto, EnhancedOn, EnhancedOff:
	default:
		return cgerrors.Newf(cgerrors.CategoryValidation,
			"components.enhanced must be auto, on or off (got %q)", c.Components.Enhanced)
	}
	if d := c.Features.InlineCallDelimiters; d != "" && utf8.RuneCountInString(d) != 2 {
		return cgerrors.Newf(cgerrors.CategoryValidation,
			"features.inline_call_delimiters must be exactly two characters (got %q)", d)
	}
	if err := c.MarkdownFeatures().Validate(); err != nil {
		return cgerrors.Wrap(err, cgerrors.CategoryValidation, "invalid feature toggles")
	}
	return nil
}

// MarkdownFeatures resolves the YAML toggle shape into parser features.
// Unset toggles keep their defaults.
func (c *Config) MarkdownFeatures() markdown.Features {
	f := markdown.DefaultFeatures()
	if c.Features.Autolink != nil {
		f.Autolink = *c.Features.Autolink
	}
	if c.Features.FrontMatter != nil {
		f.FrontMatter = *c.Features.FrontMatter
	}
	if c.Features.InlineCall != nil {
		f.InlineCall = *c.Features.InlineCall
	}
	if c.Features.Tables != nil {
		f.Tables = *c.Features.Tables
	}
	if c.Features.TaskList != nil {
		f.TaskList = *c.Features.TaskList
	}
	if d := c.Features.InlineCallDelimiters; d != "" {
		open, size := utf8.DecodeRuneInString(d)
		close, _ := utf8.DecodeRuneInString(d[size:])
		f.InlineCallOpen = open
		f.InlineCallClose = close
	}
	return f
}

// Imports returns the alias -> import path map for generated files.
func (c *Config) Imports() map[string]string {
	out := map[string]string{
		"html":    c.Components.HTMLImport,
		"widgets": c.Components.WidgetsImport,
	}
	for alias, path := range c.Components.ExtraImports {
		out[alias] = path
	}
	return out
}

// WriteDefault writes a commented starter config to path.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return cgerrors.Newf(cgerrors.CategoryValidation, "%s already exists (use --force to overwrite)", path)
		}
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

const defaultConfigYAML = `# composegen configuration
package: pages
source: ./docs
output: ./generated

features:
  autolink: true
  front_matter: true
  inline_call: true
  inline_call_delimiters: "{}"
  tables: true
  task_list: true

components:
  # auto probes the host go.mod for the widgets module; on/off force it.
  enhanced: auto
  html_import: example.com/ui/html
  widgets_import: example.com/ui/widgets

# Per-node-kind component overrides, e.g.:
# bindings:
#   heading1: theme.Title

cache:
  path: .composegen/cache.db

preview:
  port: 8787
  metrics: true
`
