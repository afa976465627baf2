// Package render maps Markdown nodes to UI-component invocation templates.
//
// A Table holds one Binding per mdast.Kind. NewTable installs the built-in
// defaults (total over the kind enumeration); callers may replace individual
// bindings with Register before the first render pass. Replacing bindings
// concurrently with an in-flight traversal is unsupported and is the caller's
// responsibility to avoid.
package render

import (
	"fmt"
	"strings"
	"sync"

	"git.home.luguber.info/inful/composegen/internal/mdast"
)

// Context carries per-session rendering configuration. It is resolved once
// when the session is built and never re-probed during traversal.
type Context struct {
	// UseEnhancedComponents selects the enhanced component library templates
	// (navigable links, styled text spans) over the baseline HTML-element
	// components.
	UseEnhancedComponents bool
}

// Result is what a Binding produces for a single node visit.
//
// Children controls traversal:
//   - nil: descend into the node's real children unchanged
//   - non-nil empty: children were consumed by the binding; do not descend
//   - non-nil non-empty: descend into these synthetic nodes instead
type Result struct {
	// Call is the component invocation target, e.g. "html.P".
	Call string
	// Args are pre-bound argument expressions (already quoted/escaped),
	// emitted before any rendered children.
	Args []string
	// Children optionally overrides traversal; see type comment.
	Children []*mdast.Node
}

// ConsumedChildren returns a non-nil empty override, signalling that the
// binding already extracted everything it needs from the node's children.
func ConsumedChildren() []*mdast.Node { return []*mdast.Node{} }

// Invocation assembles the template string for the result's call and bound
// arguments, without children: Call(arg1, arg2).
func (r Result) Invocation() string {
	return r.Call + "(" + strings.Join(r.Args, ", ") + ")"
}

// Binding maps one node to its invocation template. Implementations must not
// mutate the node; substituted traversal is expressed through Result.Children.
type Binding func(n *mdast.Node, ctx Context) Result

// UnboundKindError reports a Resolve against a kind with no binding. With a
// table built by NewTable this is unreachable; it exists for tables built
// empty and for future kind additions that miss a default.
type UnboundKindError struct {
	Kind mdast.Kind
}

func (e *UnboundKindError) Error() string {
	return fmt.Sprintf("render: no binding registered for node kind %q", e.Kind)
}

// Table resolves node kinds to bindings.
type Table struct {
	mu       sync.RWMutex
	bindings map[mdast.Kind]Binding
}

// NewTable returns a table pre-populated with the default binding policy.
// Every valid mdast.Kind has a binding; Render on such a table cannot fail
// with UnboundKindError.
func NewTable() *Table {
	t := NewEmptyTable()
	for _, k := range mdast.Kinds() {
		t.bindings[k] = defaultBinding(k)
	}
	return t
}

// NewEmptyTable returns a table with no bindings at all. Callers are
// responsible for full coverage before rendering.
func NewEmptyTable() *Table {
	return &Table{bindings: make(map[mdast.Kind]Binding, len(mdast.Kinds()))}
}

// Register replaces the binding for kind. The previous binding (default or
// user-supplied) is discarded.
func (t *Table) Register(kind mdast.Kind, b Binding) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bindings[kind] = b
}

// Resolve returns the binding for kind, or an UnboundKindError when none is
// registered.
func (t *Table) Resolve(kind mdast.Kind) (Binding, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	b, ok := t.bindings[kind]
	if !ok {
		return nil, &UnboundKindError{Kind: kind}
	}
	return b, nil
}

// Render resolves the binding for the node's kind and invokes it.
func (t *Table) Render(n *mdast.Node, ctx Context) (Result, error) {
	b, err := t.Resolve(n.Kind)
	if err != nil {
		return Result{}, err
	}
	return b(n, ctx), nil
}
