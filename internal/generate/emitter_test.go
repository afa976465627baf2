package generate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/composegen/internal/mdast"
	"git.home.luguber.info/inful/composegen/internal/render"
)

func TestEmitNode_NestedInvocations(t *testing.T) {
	e := NewEmitter(render.NewTable(), render.Context{})
	node := &mdast.Node{
		Kind: mdast.KindParagraph,
		Children: []*mdast.Node{
			mdast.Text("Hello "),
			{Kind: mdast.KindEmphasis, Children: []*mdast.Node{mdast.Text("x")}},
		},
	}

	out, err := e.EmitNode(node)
	require.NoError(t, err)
	require.Equal(t, "html.P(\n"+
		"\thtml.Text(\"Hello \"),\n"+
		"\thtml.Em(\n"+
		"\t\thtml.Text(\"x\"),\n"+
		"\t),\n"+
		")", out)
}

func TestEmitNode_ConsumedChildrenStayOnOneLine(t *testing.T) {
	e := NewEmitter(render.NewTable(), render.Context{UseEnhancedComponents: true})
	link := &mdast.Node{
		Kind:        mdast.KindLink,
		Destination: "/page",
		Children:    []*mdast.Node{mdast.Text("Click")},
	}

	out, err := e.EmitNode(link)
	require.NoError(t, err)
	require.Equal(t, `widgets.Link("/page", "Click")`, out)
}

func TestEmitNode_ChildrenOverrideReplacesTraversal(t *testing.T) {
	e := NewEmitter(render.NewTable(), render.Context{})
	block := &mdast.Node{Kind: mdast.KindCodeBlock, Literal: "a\nb"}

	out, err := e.EmitNode(block)
	require.NoError(t, err)
	require.Equal(t, "html.Pre(\n"+
		"\thtml.Text(\"a\\n\"),\n"+
		"\thtml.Text(\"b\\n\"),\n"+
		")", out)
}

func TestEmitNode_ArgsPrecedeChildren(t *testing.T) {
	e := NewEmitter(render.NewTable(), render.Context{})
	link := &mdast.Node{
		Kind:        mdast.KindLink,
		Destination: "/page",
		Children:    []*mdast.Node{mdast.Text("Click")},
	}

	out, err := e.EmitNode(link)
	require.NoError(t, err)
	require.Equal(t, "html.A(\n"+
		"\t\"/page\",\n"+
		"\thtml.Text(\"Click\"),\n"+
		")", out)
}

func TestEmitNode_UnboundKindPropagates(t *testing.T) {
	e := NewEmitter(render.NewEmptyTable(), render.Context{})
	_, err := e.EmitNode(mdast.Text("x"))
	require.Error(t, err)
	var unbound *render.UnboundKindError
	require.ErrorAs(t, err, &unbound)
}

func TestEmitNode_Idempotent(t *testing.T) {
	e := NewEmitter(render.NewTable(), render.Context{})
	node := &mdast.Node{
		Kind:     mdast.KindParagraph,
		Children: []*mdast.Node{mdast.Text(`He said "hi"`)},
	}
	first, err := e.EmitNode(node)
	require.NoError(t, err)
	second, err := e.EmitNode(node)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Contains(t, first, `He said \"hi\"`)
}
