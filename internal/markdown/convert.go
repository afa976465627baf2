package markdown

import (
	"log/slog"
	"strings"

	gast "github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"git.home.luguber.info/inful/composegen/internal/logfields"
	"git.home.luguber.info/inful/composegen/internal/mdast"
)

// convertChildren converts every child of a Goldmark node, in order.
func convertChildren(parent gast.Node, source []byte) []*mdast.Node {
	var out []*mdast.Node
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		out = append(out, convertNode(c, source)...)
	}
	return out
}

// convertNode maps one Goldmark node to zero or more mdast nodes. A single
// Goldmark node may expand (a text segment followed by a hard break) or
// disappear (wrapper blocks whose children are hoisted).
func convertNode(n gast.Node, source []byte) []*mdast.Node {
	switch v := n.(type) {
	case *gast.Text:
		out := []*mdast.Node{mdast.Text(string(v.Segment.Value(source)))}
		if v.HardLineBreak() {
			out = append(out, &mdast.Node{Kind: mdast.KindLineBreak})
		} else if v.SoftLineBreak() {
			out = append(out, mdast.Text(" "))
		}
		return out

	case *gast.String:
		return []*mdast.Node{mdast.Text(string(v.Value))}

	case *gast.Heading:
		return []*mdast.Node{{
			Kind:     mdast.HeadingKind(v.Level),
			Children: convertChildren(v, source),
		}}

	case *gast.Paragraph:
		return []*mdast.Node{{
			Kind:     mdast.KindParagraph,
			Children: convertChildren(v, source),
		}}

	case *gast.TextBlock:
		// Tight list items wrap their inline content in a TextBlock; hoist
		// the children so no paragraph component is emitted.
		return convertChildren(v, source)

	case *gast.Emphasis:
		kind := mdast.KindEmphasis
		if v.Level >= 2 {
			kind = mdast.KindStrongEmphasis
		}
		return []*mdast.Node{{Kind: kind, Children: convertChildren(v, source)}}

	case *gast.Link:
		return []*mdast.Node{{
			Kind:        mdast.KindLink,
			Destination: string(v.Destination),
			Title:       string(v.Title),
			Children:    convertChildren(v, source),
		}}

	case *gast.AutoLink:
		url := string(v.URL(source))
		return []*mdast.Node{{
			Kind:        mdast.KindLink,
			Destination: url,
			Children:    []*mdast.Node{mdast.Text(string(v.Label(source)))},
		}}

	case *gast.Image:
		return []*mdast.Node{{
			Kind:        mdast.KindImage,
			Destination: string(v.Destination),
			Title:       string(v.Title),
			Children:    convertChildren(v, source),
		}}

	case *gast.CodeSpan:
		return []*mdast.Node{{
			Kind:    mdast.KindInlineCode,
			Literal: codeSpanLiteral(v, source),
		}}

	case *gast.FencedCodeBlock:
		return []*mdast.Node{{
			Kind:    mdast.KindCodeBlock,
			Literal: blockLines(v, source),
		}}

	case *gast.CodeBlock:
		return []*mdast.Node{{
			Kind:    mdast.KindCodeBlock,
			Literal: blockLines(v, source),
		}}

	case *gast.ThematicBreak:
		return []*mdast.Node{{Kind: mdast.KindThematicBreak}}

	case *gast.List:
		kind := mdast.KindBulletList
		if v.IsOrdered() {
			kind = mdast.KindOrderedList
		}
		return []*mdast.Node{{Kind: kind, Children: convertChildren(v, source)}}

	case *gast.ListItem:
		return []*mdast.Node{{Kind: mdast.KindListItem, Children: convertChildren(v, source)}}

	case *east.Table:
		return []*mdast.Node{convertTable(v, source)}

	case *east.TaskCheckBox:
		return []*mdast.Node{{Kind: mdast.KindTaskCheckbox, Checked: v.IsChecked}}

	case *InlineCallNode:
		return []*mdast.Node{{Kind: mdast.KindInlineCall, Literal: string(v.Expression)}}

	default:
		// Unknown parser constructs (blockquotes, raw HTML, future
		// extensions) are not part of the closed kind set. Skip the node
		// itself but keep descending so its content is not silently lost.
		slog.Debug("skipping unsupported markdown node", logfields.NodeKind(n.Kind().String()))
		return convertChildren(n, source)
	}
}

// convertTable regroups Goldmark's flat table shape (header row followed by
// body rows) into the head/body sections the component model expects.
func convertTable(t *east.Table, source []byte) *mdast.Node {
	table := &mdast.Node{Kind: mdast.KindTable}
	body := &mdast.Node{Kind: mdast.KindTableBody}

	for c := t.FirstChild(); c != nil; c = c.NextSibling() {
		switch row := c.(type) {
		case *east.TableHeader:
			head := &mdast.Node{Kind: mdast.KindTableHead}
			head.Children = append(head.Children, convertTableRow(row, source, true))
			table.Children = append(table.Children, head)
		case *east.TableRow:
			body.Children = append(body.Children, convertTableRow(row, source, false))
		}
	}

	if len(body.Children) > 0 {
		table.Children = append(table.Children, body)
	}
	return table
}

func convertTableRow(row gast.Node, source []byte, header bool) *mdast.Node {
	kind := mdast.KindTableCell
	if header {
		kind = mdast.KindTableHeaderCell
	}
	out := &mdast.Node{Kind: mdast.KindTableRow}
	for c := row.FirstChild(); c != nil; c = c.NextSibling() {
		out.Children = append(out.Children, &mdast.Node{
			Kind:     kind,
			Children: convertChildren(c, source),
		})
	}
	return out
}

func codeSpanLiteral(n *gast.CodeSpan, source []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*gast.Text); ok {
			sb.Write(t.Segment.Value(source))
		}
	}
	return sb.String()
}

func blockLines(n gast.Node, source []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(source))
	}
	return sb.String()
}
