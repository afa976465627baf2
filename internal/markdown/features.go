// Package markdown builds the Goldmark parser from the configured feature
// toggles and converts the resulting AST into the mdast node model that
// internal/render understands.
package markdown

import (
	"errors"
	"fmt"
)

// Features is the set of optional parser capabilities. It is read once when
// the parser is constructed and must not change afterwards for the duration
// of a parse session.
type Features struct {
	// Autolink recognizes bare URLs and www-prefixed hosts as links.
	Autolink bool `yaml:"autolink"`
	// FrontMatter strips and parses a leading YAML front matter block before
	// the document body is handed to the parser.
	FrontMatter bool `yaml:"front_matter"`
	// InlineCall enables the $<open>expression<close> inline component-call
	// syntax.
	InlineCall bool `yaml:"inline_call"`
	// InlineCallOpen and InlineCallClose are the delimiter pair surrounding
	// an inline-call expression. Both default to '{' and '}'.
	InlineCallOpen  rune `yaml:"-"`
	InlineCallClose rune `yaml:"-"`
	// Tables enables GFM pipe tables.
	Tables bool `yaml:"tables"`
	// TaskList enables GFM task-list item checkboxes.
	TaskList bool `yaml:"task_list"`
}

// DefaultFeatures mirrors the out-of-the-box toggle values.
func DefaultFeatures() Features {
	return Features{
		Autolink:        true,
		FrontMatter:     true,
		InlineCall:      true,
		InlineCallOpen:  '{',
		InlineCallClose: '}',
		Tables:          true,
		TaskList:        true,
	}
}

// ErrIdenticalDelimiters reports an inline-call delimiter pair whose open and
// close runes are the same; the inline parser cannot find the span end.
var ErrIdenticalDelimiters = errors.New("inline call delimiters must differ")

// Validate checks the toggle values for combinations the parser cannot
// support. The current toggle set has no cross-feature conflicts; only the
// delimiter pair is checked.
func (f Features) Validate() error {
	if !f.InlineCall {
		return nil
	}
	open, close := f.delimiters()
	if open == close {
		return fmt.Errorf("%w: %q", ErrIdenticalDelimiters, string(open))
	}
	return nil
}

func (f Features) delimiters() (rune, rune) {
	open, close := f.InlineCallOpen, f.InlineCallClose
	if open == 0 {
		open = '{'
	}
	if close == 0 {
		close = '}'
	}
	return open, close
}
