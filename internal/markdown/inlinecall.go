package markdown

import (
	"unicode/utf8"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// InlineCallNode is the Goldmark AST node produced for a $<open>...<close>
// span. The expression between the delimiters is carried verbatim.
type InlineCallNode struct {
	gast.BaseInline
	Expression []byte
}

// KindInlineCall identifies InlineCallNode within the Goldmark AST.
var KindInlineCall = gast.NewNodeKind("InlineCall")

// Kind implements gast.Node.
func (n *InlineCallNode) Kind() gast.NodeKind { return KindInlineCall }

// Dump implements gast.Node.
func (n *InlineCallNode) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, map[string]string{
		"Expression": string(n.Expression),
	}, nil)
}

// inlineCallParser recognizes $<open>expression<close> spans on a single
// line. Delimiters may nest; the span ends at the matching close rune.
type inlineCallParser struct {
	open  rune
	close rune
}

func (p *inlineCallParser) Trigger() []byte { return []byte{'$'} }

func (p *inlineCallParser) Parse(_ gast.Node, block text.Reader, _ parser.Context) gast.Node {
	line, _ := block.PeekLine()
	if len(line) < 2 || line[0] != '$' {
		return nil
	}

	open, size := utf8.DecodeRune(line[1:])
	if open != p.open {
		return nil
	}

	exprStart := 1 + size
	depth := 1
	pos := exprStart
	for pos < len(line) {
		r, n := utf8.DecodeRune(line[pos:])
		switch r {
		case p.open:
			depth++
		case p.close:
			depth--
			if depth == 0 {
				expr := make([]byte, pos-exprStart)
				copy(expr, line[exprStart:pos])
				block.Advance(pos + n)
				return &InlineCallNode{Expression: expr}
			}
		}
		pos += n
	}
	// No matching close delimiter on this line; not an inline call.
	return nil
}

// inlineCallExtension wires the parser into a Goldmark instance.
type inlineCallExtension struct {
	open  rune
	close rune
}

func (e *inlineCallExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(&inlineCallParser{open: e.open, close: e.close}, 100),
	))
}
