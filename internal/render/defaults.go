package render

import (
	"strconv"
	"strings"

	"git.home.luguber.info/inful/composegen/internal/mdast"
)

// Component invocation targets for the default policy. The baseline set names
// plain HTML-element components; the enhanced set names the richer widgets
// library selected by Context.UseEnhancedComponents.
const (
	callText     = "html.Text"
	callSpanText = "widgets.SpanText"
	callAnchor   = "html.A"
	callLink     = "widgets.Link"
	callPre      = "html.Pre"
	callCode     = "html.Code"
	callCheckbox = "html.Checkbox"
)

var structuralCalls = map[mdast.Kind]string{
	mdast.KindHeading1:        "html.H1",
	mdast.KindHeading2:        "html.H2",
	mdast.KindHeading3:        "html.H3",
	mdast.KindHeading4:        "html.H4",
	mdast.KindHeading5:        "html.H5",
	mdast.KindHeading6:        "html.H6",
	mdast.KindParagraph:       "html.P",
	mdast.KindLineBreak:       "html.Br",
	mdast.KindEmphasis:        "html.Em",
	mdast.KindStrongEmphasis:  "html.Strong",
	mdast.KindThematicBreak:   "html.Hr",
	mdast.KindBulletList:      "html.Ul",
	mdast.KindOrderedList:     "html.Ol",
	mdast.KindListItem:        "html.Li",
	mdast.KindTable:           "html.Table",
	mdast.KindTableHead:       "html.THead",
	mdast.KindTableBody:       "html.TBody",
	mdast.KindTableRow:        "html.Tr",
	mdast.KindTableCell:       "html.Td",
	mdast.KindTableHeaderCell: "html.Th",
}

// defaultBinding returns the built-in binding for kind. Coverage is total
// over mdast.Kinds(); render_test.go pins that property.
func defaultBinding(kind mdast.Kind) Binding {
	switch kind {
	case mdast.KindText:
		return defaultText
	case mdast.KindLink:
		return defaultLink
	case mdast.KindCodeBlock:
		return defaultCodeBlock
	case mdast.KindInlineCode:
		return defaultInlineCode
	case mdast.KindImage:
		return defaultImage
	case mdast.KindInlineCall:
		return defaultInlineCall
	case mdast.KindTaskCheckbox:
		return defaultTaskCheckbox
	default:
		call := structuralCalls[kind]
		return func(*mdast.Node, Context) Result {
			return Result{Call: call}
		}
	}
}

// QuoteArg renders literal as a double-quoted argument expression, escaping
// backslashes and embedded double quotes.
func QuoteArg(literal string) string {
	var b strings.Builder
	b.Grow(len(literal) + 2)
	b.WriteByte('"')
	for _, r := range literal {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func defaultText(n *mdast.Node, ctx Context) Result {
	call := callText
	if ctx.UseEnhancedComponents {
		call = callSpanText
	}
	arg := QuoteArg(n.Literal)
	if n.Raw {
		// Synthetic raw nodes (inline code content) carry their literal
		// verbatim; only the surrounding quotes are added.
		arg = `"` + n.Literal + `"`
	}
	return Result{Call: call, Args: []string{arg}}
}

func defaultLink(n *mdast.Node, ctx Context) Result {
	if !ctx.UseEnhancedComponents {
		return Result{Call: callAnchor, Args: []string{QuoteArg(n.Destination)}}
	}
	label := n.FirstChildOfKind(mdast.KindText)
	if label == nil {
		// No direct text child to lift into a label; fall back to the plain
		// anchor shape and let the children render naturally.
		return Result{Call: callAnchor, Args: []string{QuoteArg(n.Destination)}}
	}
	return Result{
		Call:     callLink,
		Args:     []string{QuoteArg(n.Destination), QuoteArg(label.Literal)},
		Children: ConsumedChildren(),
	}
}

func defaultCodeBlock(n *mdast.Node, _ Context) Result {
	lines := strings.Split(n.Literal, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	children := make([]*mdast.Node, 0, len(lines))
	for _, line := range lines {
		// Re-wrapping each line with its newline keeps the structural breaks
		// from being lost to whitespace normalization downstream.
		children = append(children, mdast.Text(line+"\n"))
	}
	return Result{Call: callPre, Children: children}
}

func defaultInlineCode(n *mdast.Node, _ Context) Result {
	return Result{
		Call:     callCode,
		Children: []*mdast.Node{mdast.RawText(n.Literal)},
	}
}

func defaultImage(n *mdast.Node, _ Context) Result {
	return Result{Call: "html.Img", Args: []string{QuoteArg(n.Destination)}}
}

// defaultInlineCall emits the span's expression as the invocation itself.
// "widgets.Banner" becomes widgets.Banner(); an expression that already
// carries an argument list is split so the arguments survive verbatim.
func defaultInlineCall(n *mdast.Node, _ Context) Result {
	expr := strings.TrimSpace(n.Literal)
	if open := strings.Index(expr, "("); open >= 0 && strings.HasSuffix(expr, ")") {
		inner := expr[open+1 : len(expr)-1]
		res := Result{Call: expr[:open], Children: ConsumedChildren()}
		if inner != "" {
			res.Args = []string{inner}
		}
		return res
	}
	return Result{Call: expr, Children: ConsumedChildren()}
}

func defaultTaskCheckbox(n *mdast.Node, _ Context) Result {
	return Result{Call: callCheckbox, Args: []string{strconv.FormatBool(n.Checked)}}
}
