package generate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/composegen/internal/cache"
	"git.home.luguber.info/inful/composegen/internal/cgerrors"
	"git.home.luguber.info/inful/composegen/internal/logfields"
	"git.home.luguber.info/inful/composegen/internal/markdown"
	"git.home.luguber.info/inful/composegen/internal/metrics"
	"git.home.luguber.info/inful/composegen/internal/render"
)

// fragmentCall wraps a document's top-level invocations into one expression.
const fragmentCall = "html.Fragment"

// Options configures a Generator.
type Options struct {
	// Package is the package clause of every generated file.
	Package string
	// Imports maps call-target aliases to import paths. Aliases that appear
	// in emitted invocations but have no mapping are assumed package-local.
	Imports map[string]string
	// OutputDir is the root the generated tree is written under.
	OutputDir string
}

// Generator turns a directory of Markdown documents into generated component
// source files.
type Generator struct {
	parser   *markdown.Parser
	emitter  *Emitter
	opts     Options
	store    *cache.Store // optional
	recorder metrics.Recorder
	session  string
	cfgSig   string
}

// New creates a Generator. store may be nil (no incremental cache); recorder
// may be nil (no metrics).
func New(parser *markdown.Parser, table *render.Table, rctx render.Context, opts Options, store *cache.Store, recorder metrics.Recorder) *Generator {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Generator{
		parser:   parser,
		emitter:  NewEmitter(table, rctx),
		opts:     opts,
		store:    store,
		recorder: recorder,
		session:  uuid.NewString(),
		cfgSig:   configSignature(parser.Features(), rctx, opts),
	}
}

// Session returns the run's session id (recorded in manifest and cache rows).
func (g *Generator) Session() string { return g.session }

// configSignature hashes everything besides document content that influences
// output, so config changes invalidate cached results.
func configSignature(features markdown.Features, rctx render.Context, opts Options) string {
	payload := struct {
		Features markdown.Features `json:"features"`
		Enhanced bool              `json:"enhanced"`
		Package  string            `json:"package"`
		Imports  map[string]string `json:"imports"`
	}{features, rctx.UseEnhancedComponents, opts.Package, opts.Imports}

	data, err := json.Marshal(payload)
	if err != nil {
		// Marshalling a plain struct of strings and bools cannot fail; keep
		// a stable fallback anyway.
		return "unsigned"
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Run generates output for every Markdown document under srcDir, writes the
// manifest, and prunes stale cache rows. Document order is the lexical walk
// order, so identical inputs produce identical manifests.
func (g *Generator) Run(ctx context.Context, srcDir string) (*Manifest, error) {
	start := time.Now()

	sources, err := discoverSources(srcDir)
	if err != nil {
		return nil, cgerrors.Wrap(err, cgerrors.CategorySource, "discover markdown sources")
	}
	g.recorder.SetDocumentsDiscovered(len(sources))

	manifest := &Manifest{
		SessionID:   g.session,
		GeneratedAt: start.UTC(),
		Package:     g.opts.Package,
	}
	seen := make(map[string]bool, len(sources))

	for _, rel := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entry, err := g.generateOne(ctx, srcDir, rel)
		if err != nil {
			g.recorder.IncDocumentResult(metrics.ResultFailed)
			return nil, err
		}
		seen[rel] = true
		manifest.Entries = append(manifest.Entries, entry)
	}

	if err := manifest.Write(g.opts.OutputDir); err != nil {
		return nil, cgerrors.Wrap(err, cgerrors.CategoryGenerate, "write manifest")
	}

	if g.store != nil {
		if removed, err := g.store.Purge(ctx, seen); err != nil {
			slog.Warn("cache purge failed", logfields.Error(err))
		} else if removed > 0 {
			slog.Debug("purged stale cache records", logfields.Count(removed))
		}
	}

	g.recorder.ObserveRunDuration(time.Since(start))
	slog.Info("generation run complete",
		logfields.Session(g.session),
		logfields.Count(len(manifest.Entries)),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
	return manifest, nil
}

func (g *Generator) generateOne(ctx context.Context, srcDir, rel string) (Entry, error) {
	start := time.Now()
	defer func() { g.recorder.ObserveDocumentDuration(time.Since(start)) }()

	content, err := os.ReadFile(filepath.Join(srcDir, rel))
	if err != nil {
		return Entry{}, cgerrors.Wrap(err, cgerrors.CategorySource, "read "+rel)
	}
	checksum := g.checksum(content)
	outRel := outputRel(rel)
	outPath := filepath.Join(g.opts.OutputDir, outRel)

	if g.store != nil {
		rec, ok, err := g.store.Lookup(ctx, rel, checksum)
		if err != nil {
			slog.Warn("cache lookup failed", logfields.Doc(rel), logfields.Error(err))
		} else if ok {
			if _, statErr := os.Stat(outPath); statErr == nil {
				g.recorder.IncDocumentResult(metrics.ResultCached)
				slog.Debug("document unchanged, skipping", logfields.Doc(rel))
				return Entry{
					Source:     rel,
					Output:     outRel,
					Identifier: rec.Identifier,
					Checksum:   checksum,
					Cached:     true,
				}, nil
			}
		}
	}

	doc, err := g.parser.Parse(content)
	if err != nil {
		return Entry{}, cgerrors.Wrap(err, cgerrors.CategoryParse, "parse "+rel)
	}

	ident := g.identifierFor(rel, doc)
	fileSrc, err := g.renderFile(doc, rel, ident)
	if err != nil {
		return Entry{}, cgerrors.Wrap(err, cgerrors.CategoryGenerate, "render "+rel)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return Entry{}, cgerrors.Wrap(err, cgerrors.CategoryGenerate, "create output dir")
	}
	if err := os.WriteFile(outPath, []byte(fileSrc), 0o644); err != nil {
		return Entry{}, cgerrors.Wrap(err, cgerrors.CategoryGenerate, "write "+outRel)
	}

	if g.store != nil {
		rec := cache.Record{
			Source:     rel,
			Checksum:   checksum,
			Output:     outRel,
			Identifier: ident,
			SessionID:  g.session,
		}
		if err := g.store.Put(ctx, rec); err != nil {
			slog.Warn("cache update failed", logfields.Doc(rel), logfields.Error(err))
		}
	}

	g.recorder.IncDocumentResult(metrics.ResultGenerated)
	slog.Debug("document generated", logfields.Doc(rel), logfields.Output(outRel), logfields.Component(ident))
	return Entry{Source: rel, Output: outRel, Identifier: ident, Checksum: checksum}, nil
}

// identifierFor picks the entry function name: an explicit front matter
// "component" field wins, otherwise the name derives from the file name.
func (g *Generator) identifierFor(rel string, doc *markdown.Document) string {
	if v, ok := doc.Meta["component"]; ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	base := strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))
	return Identifier(base)
}

// renderFile assembles one complete generated source file.
func (g *Generator) renderFile(doc *markdown.Document, rel, ident string) (string, error) {
	body, aliases, err := g.emitter.EmitDocument(doc)
	if err != nil {
		return "", err
	}
	aliases["html"] = true // Fragment wrapper and return type

	var sb strings.Builder
	sb.WriteString("// Code generated by composegen. DO NOT EDIT.\n//\n")
	fmt.Fprintf(&sb, "// Source: %s\n", filepath.ToSlash(rel))
	if title, ok := doc.Meta["title"].(string); ok && title != "" {
		fmt.Fprintf(&sb, "// Title: %s\n", title)
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "package %s\n\n", g.opts.Package)

	if imports := g.importLines(aliases); len(imports) > 0 {
		sb.WriteString("import (\n")
		for _, line := range imports {
			sb.WriteString("\t" + line + "\n")
		}
		sb.WriteString(")\n\n")
	}

	fmt.Fprintf(&sb, "func %s() html.Component {\n", ident)
	fmt.Fprintf(&sb, "\treturn %s(\n", fragmentCall)
	for _, line := range strings.Split(strings.TrimRight(body, "\n"), "\n") {
		sb.WriteString("\t" + line + "\n")
	}
	sb.WriteString("\t)\n}\n")
	return sb.String(), nil
}

// importLines maps used aliases through Options.Imports, sorted for stable
// output. Aliases matching the import path's last segment are emitted bare.
func (g *Generator) importLines(aliases map[string]bool) []string {
	used := make([]string, 0, len(aliases))
	for a := range aliases {
		if _, ok := g.opts.Imports[a]; ok {
			used = append(used, a)
		}
	}
	sort.Strings(used)

	lines := make([]string, 0, len(used))
	for _, a := range used {
		path := g.opts.Imports[a]
		if filepath.Base(path) == a {
			lines = append(lines, fmt.Sprintf("%q", path))
		} else {
			lines = append(lines, fmt.Sprintf("%s %q", a, path))
		}
	}
	return lines
}

func (g *Generator) checksum(content []byte) string {
	h := sha256.New()
	h.Write(content)
	h.Write([]byte{0})
	h.Write([]byte(g.cfgSig))
	return hex.EncodeToString(h.Sum(nil))
}

// outputRel maps a source path to its generated file path (guide/setup.md ->
// guide/setup.go).
func outputRel(rel string) string {
	return strings.TrimSuffix(rel, filepath.Ext(rel)) + ".go"
}

// discoverSources returns the relative paths of all Markdown files under
// root, in lexical walk order.
func discoverSources(root string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(d.Name()))
		if ext != ".md" && ext != ".markdown" {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		out = append(out, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
