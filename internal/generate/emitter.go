// Package generate drives rendering: it walks parsed documents through the
// binding table, assembles nested component invocations, and writes the
// generated source files plus a manifest of what was produced.
package generate

import (
	"strings"

	"git.home.luguber.info/inful/composegen/internal/markdown"
	"git.home.luguber.info/inful/composegen/internal/mdast"
	"git.home.luguber.info/inful/composegen/internal/render"
)

// Emitter assembles invocation source text for document trees. It holds the
// binding table and render context for one generation session; the table must
// not be mutated while an emit is in flight.
type Emitter struct {
	table *render.Table
	ctx   render.Context
}

// NewEmitter returns an emitter over the given table and context.
func NewEmitter(table *render.Table, ctx render.Context) *Emitter {
	return &Emitter{table: table, ctx: ctx}
}

// EmitDocument renders every top-level node of the document, one invocation
// per line group, indented one level for embedding in an entry function body.
// The returned alias set records the package qualifiers used by the emitted
// calls so the file writer can emit matching imports.
func (e *Emitter) EmitDocument(doc *markdown.Document) (body string, aliases map[string]bool, err error) {
	var sb strings.Builder
	aliases = make(map[string]bool)
	for _, n := range doc.Nodes {
		if err := e.emitNode(&sb, n, 1, aliases); err != nil {
			return "", nil, err
		}
		sb.WriteString(",\n")
	}
	return sb.String(), aliases, nil
}

// EmitNode renders a single node tree with no indentation. Used by tests and
// by callers embedding fragments.
func (e *Emitter) EmitNode(n *mdast.Node) (string, error) {
	var sb strings.Builder
	if err := e.emitNode(&sb, n, 0, map[string]bool{}); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (e *Emitter) emitNode(sb *strings.Builder, n *mdast.Node, depth int, aliases map[string]bool) error {
	res, err := e.table.Render(n, e.ctx)
	if err != nil {
		return err
	}
	recordAlias(aliases, res.Call)

	children := res.Children
	if children == nil {
		children = n.Children
	}

	indent := strings.Repeat("\t", depth)
	if len(children) == 0 {
		sb.WriteString(indent)
		sb.WriteString(res.Invocation())
		return nil
	}

	sb.WriteString(indent)
	sb.WriteString(res.Call)
	sb.WriteString("(\n")
	inner := strings.Repeat("\t", depth+1)
	for _, arg := range res.Args {
		sb.WriteString(inner)
		sb.WriteString(arg)
		sb.WriteString(",\n")
	}
	for _, c := range children {
		if err := e.emitNode(sb, c, depth+1, aliases); err != nil {
			return err
		}
		sb.WriteString(",\n")
	}
	sb.WriteString(indent)
	sb.WriteString(")")
	return nil
}

// recordAlias notes the package qualifier of a call target ("html.P" -> "html").
// Calls without a qualifier (inline-call expressions referencing local
// identifiers) record nothing.
func recordAlias(aliases map[string]bool, call string) {
	if i := strings.Index(call, "."); i > 0 {
		aliases[call[:i]] = true
	}
}
