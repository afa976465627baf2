package config

import (
	"git.home.luguber.info/inful/composegen/internal/cgerrors"
	"git.home.luguber.info/inful/composegen/internal/mdast"
	"git.home.luguber.info/inful/composegen/internal/render"
)

// BuildTable constructs the render table for a session: the default policy
// plus the configured per-kind call overrides. An override swaps the
// invocation target while keeping the default's argument extraction and
// traversal behavior, so `bindings: {link: theme.NavLink}` still carries the
// destination and label.
func (c *Config) BuildTable() (*render.Table, error) {
	table := render.NewTable()
	for name, call := range c.Bindings {
		kind, ok := mdast.KindFromName(name)
		if !ok {
			return nil, cgerrors.Newf(cgerrors.CategoryValidation, "bindings: unknown node kind %q", name)
		}
		def, err := table.Resolve(kind)
		if err != nil {
			return nil, cgerrors.Wrap(err, cgerrors.CategoryInternal, "resolve default binding")
		}
		override := call
		table.Register(kind, func(n *mdast.Node, ctx render.Context) render.Result {
			res := def(n, ctx)
			res.Call = override
			return res
		})
	}
	return table, nil
}
