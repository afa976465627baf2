// Package mdast provides the Markdown node model composegen renders from.
//
// The model is deliberately small: a closed Kind enumeration plus a single
// Node struct carrying the handful of attributes the default bindings need
// (literal text, link destination, heading level, list ordering). Parser
// specifics stay in internal/markdown, which converts a Goldmark AST into
// this representation.
package mdast

// Kind identifies the structural type of a Markdown node.
//
// The enumeration is closed: internal/render guarantees a default binding for
// every value listed here, and internal/markdown never produces values
// outside it.
type Kind int

const (
	KindText Kind = iota
	KindHeading1
	KindHeading2
	KindHeading3
	KindHeading4
	KindHeading5
	KindHeading6
	KindParagraph
	KindLineBreak
	KindLink
	KindEmphasis
	KindStrongEmphasis
	KindThematicBreak
	KindBulletList
	KindOrderedList
	KindListItem
	KindCodeBlock
	KindInlineCode
	KindImage
	KindTable
	KindTableHead
	KindTableBody
	KindTableRow
	KindTableCell
	KindTableHeaderCell
	KindInlineCall
	KindTaskCheckbox

	// kindCount marks the end of the enumeration; keep it last.
	kindCount
)

var kindNames = [...]string{
	KindText:            "text",
	KindHeading1:        "heading1",
	KindHeading2:        "heading2",
	KindHeading3:        "heading3",
	KindHeading4:        "heading4",
	KindHeading5:        "heading5",
	KindHeading6:        "heading6",
	KindParagraph:       "paragraph",
	KindLineBreak:       "line_break",
	KindLink:            "link",
	KindEmphasis:        "emphasis",
	KindStrongEmphasis:  "strong_emphasis",
	KindThematicBreak:   "thematic_break",
	KindBulletList:      "bullet_list",
	KindOrderedList:     "ordered_list",
	KindListItem:        "list_item",
	KindCodeBlock:       "code_block",
	KindInlineCode:      "inline_code",
	KindImage:           "image",
	KindTable:           "table",
	KindTableHead:       "table_head",
	KindTableBody:       "table_body",
	KindTableRow:        "table_row",
	KindTableCell:       "table_cell",
	KindTableHeaderCell: "table_header_cell",
	KindInlineCall:      "inline_call",
	KindTaskCheckbox:    "task_checkbox",
}

// String returns the canonical lowercase name of the kind (used in config
// binding overrides and log fields).
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "unknown"
	}
	return kindNames[k]
}

// IsValid reports whether k is a member of the enumeration.
func (k Kind) IsValid() bool { return k >= 0 && k < kindCount }

// Kinds returns every valid kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// KindFromName resolves a canonical kind name back to its Kind. It is the
// inverse of Kind.String and is used when parsing config binding overrides.
func KindFromName(name string) (Kind, bool) {
	for k := Kind(0); k < kindCount; k++ {
		if kindNames[k] == name {
			return k, true
		}
	}
	return 0, false
}

// HeadingKind returns the heading kind for a 1-based level. Levels outside
// 1..6 clamp to the nearest valid heading.
func HeadingKind(level int) Kind {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return KindHeading1 + Kind(level-1)
}

// Node is one structural unit of a parsed Markdown document.
//
// Bindings must treat nodes as read-only; traversal substitution happens via
// render.Result children, never by mutating a Node in place.
type Node struct {
	Kind        Kind
	Literal     string // text content, code content, or inline-call expression
	Destination string // link / image target
	Title       string // optional link / image title
	Checked     bool   // task checkbox state
	Children    []*Node

	// Raw marks a synthetic literal node whose content must be emitted
	// verbatim, bypassing quote escaping (inline code contract).
	Raw bool
}

// Text returns a synthetic text node, used by bindings that substitute
// children (code block line splitting).
func Text(literal string) *Node {
	return &Node{Kind: KindText, Literal: literal}
}

// RawText returns a synthetic text node whose literal bypasses escaping.
func RawText(literal string) *Node {
	return &Node{Kind: KindText, Literal: literal, Raw: true}
}

// FirstChildOfKind returns the first direct child with the given kind, or nil.
func (n *Node) FirstChildOfKind(k Kind) *Node {
	for _, c := range n.Children {
		if c.Kind == k {
			return c
		}
	}
	return nil
}
