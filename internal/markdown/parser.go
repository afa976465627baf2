package markdown

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"git.home.luguber.info/inful/composegen/internal/frontmatter"
	"git.home.luguber.info/inful/composegen/internal/mdast"
)

// Document is one parsed Markdown source: front matter fields (empty when the
// toggle is off or the document has none) plus the top-level node sequence.
type Document struct {
	Meta  map[string]any
	Nodes []*mdast.Node
}

// Parser turns Markdown source into Documents. Construction consumes the
// feature toggles once; a Parser is safe for concurrent use afterwards.
type Parser struct {
	features Features
	md       goldmark.Markdown
}

// NewParser builds a Goldmark parser from the feature toggles. Each enabled
// toggle contributes exactly one capability, added in a fixed order so
// identical configurations always produce identical parsers.
func NewParser(features Features) (*Parser, error) {
	if err := features.Validate(); err != nil {
		return nil, err
	}

	var exts []goldmark.Extender
	if features.Autolink {
		exts = append(exts, extension.Linkify)
	}
	if features.Tables {
		exts = append(exts, extension.Table)
	}
	if features.TaskList {
		exts = append(exts, extension.TaskList)
	}
	if features.InlineCall {
		open, close := features.delimiters()
		exts = append(exts, &inlineCallExtension{open: open, close: close})
	}

	return &Parser{
		features: features,
		md:       goldmark.New(goldmark.WithExtensions(exts...)),
	}, nil
}

// Features returns the toggles the parser was built with.
func (p *Parser) Features() Features { return p.features }

// Parse converts Markdown source into a Document. With the FrontMatter
// toggle enabled, a leading YAML block is split off and parsed into Meta
// before the body reaches Goldmark.
func (p *Parser) Parse(source []byte) (*Document, error) {
	meta := map[string]any{}
	body := source

	if p.features.FrontMatter {
		fm, rest, had, err := frontmatter.Split(source)
		if err != nil {
			return nil, err
		}
		if had {
			fields, err := frontmatter.ParseYAML(fm)
			if err != nil {
				return nil, err
			}
			meta = fields
			body = rest
		}
	}

	root := p.md.Parser().Parse(text.NewReader(body))
	return &Document{Meta: meta, Nodes: convertChildren(root, body)}, nil
}
