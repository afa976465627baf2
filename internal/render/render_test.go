package render

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/composegen/internal/mdast"
)

func TestNewTable_EveryKindResolves(t *testing.T) {
	table := NewTable()
	for _, k := range mdast.Kinds() {
		b, err := table.Resolve(k)
		require.NoError(t, err, "kind %s", k)
		require.NotNil(t, b, "kind %s", k)
	}
}

func TestNewEmptyTable_ResolveFailsWithUnboundKind(t *testing.T) {
	table := NewEmptyTable()
	_, err := table.Resolve(mdast.KindParagraph)
	require.Error(t, err)
	var unbound *UnboundKindError
	require.ErrorAs(t, err, &unbound)
	require.Equal(t, mdast.KindParagraph, unbound.Kind)
}

func TestRegister_OverrideWinsForEveryKind(t *testing.T) {
	for _, k := range mdast.Kinds() {
		table := NewTable()
		table.Register(k, func(*mdast.Node, Context) Result {
			return Result{Call: "custom.Component"}
		})
		res, err := table.Render(&mdast.Node{Kind: k}, Context{})
		require.NoError(t, err, "kind %s", k)
		require.Equal(t, "custom.Component", res.Call, "kind %s", k)
	}
}

func TestDefaultText_EscapesEmbeddedQuotesOnce(t *testing.T) {
	table := NewTable()
	res, err := table.Render(mdast.Text(`He said "hi"`), Context{})
	require.NoError(t, err)
	require.Contains(t, res.Invocation(), `He said \"hi\"`)
	require.Equal(t, `html.Text("He said \"hi\"")`, res.Invocation())
}

func TestDefaultText_EnhancedUsesSpanText(t *testing.T) {
	table := NewTable()
	res, err := table.Render(mdast.Text("hello"), Context{UseEnhancedComponents: true})
	require.NoError(t, err)
	require.Equal(t, `widgets.SpanText("hello")`, res.Invocation())
}

func TestDefaultLink_EnhancedConsumesChildrenAndCarriesLabel(t *testing.T) {
	link := &mdast.Node{
		Kind:        mdast.KindLink,
		Destination: "/page",
		Children:    []*mdast.Node{mdast.Text("Click")},
	}
	table := NewTable()
	res, err := table.Render(link, Context{UseEnhancedComponents: true})
	require.NoError(t, err)

	inv := res.Invocation()
	require.Contains(t, inv, "/page")
	require.Contains(t, inv, "Click")
	// Children were consumed: override must be non-nil and empty.
	require.NotNil(t, res.Children)
	require.Empty(t, res.Children)
}

func TestDefaultLink_PlainKeepsNaturalChildren(t *testing.T) {
	link := &mdast.Node{
		Kind:        mdast.KindLink,
		Destination: "/page",
		Children:    []*mdast.Node{mdast.Text("Click")},
	}
	table := NewTable()
	res, err := table.Render(link, Context{UseEnhancedComponents: false})
	require.NoError(t, err)

	inv := res.Invocation()
	require.Contains(t, inv, "/page")
	require.NotContains(t, inv, "Click")
	require.Nil(t, res.Children)
}

func TestDefaultLink_EnhancedWithoutTextChildFallsBackToAnchor(t *testing.T) {
	link := &mdast.Node{
		Kind:        mdast.KindLink,
		Destination: "/img",
		Children:    []*mdast.Node{{Kind: mdast.KindImage, Destination: "x.png"}},
	}
	table := NewTable()
	res, err := table.Render(link, Context{UseEnhancedComponents: true})
	require.NoError(t, err)
	require.Equal(t, `html.A("/img")`, res.Invocation())
	require.Nil(t, res.Children)
}

func TestDefaultCodeBlock_SplitsLinesWithTrailingNewlines(t *testing.T) {
	block := &mdast.Node{Kind: mdast.KindCodeBlock, Literal: "a\nb"}
	table := NewTable()
	res, err := table.Render(block, Context{})
	require.NoError(t, err)

	require.Len(t, res.Children, 2)
	require.Equal(t, "a\n", res.Children[0].Literal)
	require.Equal(t, "b\n", res.Children[1].Literal)
	require.Equal(t, "html.Pre()", res.Invocation())
}

func TestDefaultCodeBlock_TrailingNewlineDoesNotAddEmptyLine(t *testing.T) {
	block := &mdast.Node{Kind: mdast.KindCodeBlock, Literal: "a\nb\n"}
	table := NewTable()
	res, err := table.Render(block, Context{})
	require.NoError(t, err)
	require.Len(t, res.Children, 2)
}

func TestDefaultInlineCode_SingleRawChildVerbatim(t *testing.T) {
	code := &mdast.Node{Kind: mdast.KindInlineCode, Literal: `fmt.Println("x")`}
	table := NewTable()
	res, err := table.Render(code, Context{})
	require.NoError(t, err)

	require.Len(t, res.Children, 1)
	child := res.Children[0]
	require.True(t, child.Raw)
	require.Equal(t, `fmt.Println("x")`, child.Literal)

	// The raw child renders without escaping its embedded quotes.
	childRes, err := table.Render(child, Context{})
	require.NoError(t, err)
	require.Equal(t, `html.Text("fmt.Println("x")")`, childRes.Invocation())
}

func TestDefaultInlineCall_BareExpressionGetsCallParens(t *testing.T) {
	n := &mdast.Node{Kind: mdast.KindInlineCall, Literal: "widgets.Divider"}
	table := NewTable()
	res, err := table.Render(n, Context{})
	require.NoError(t, err)
	require.Equal(t, "widgets.Divider()", res.Invocation())
}

func TestDefaultInlineCall_ExpressionWithArgsSurvivesVerbatim(t *testing.T) {
	n := &mdast.Node{Kind: mdast.KindInlineCall, Literal: `widgets.Banner("hi", 2)`}
	table := NewTable()
	res, err := table.Render(n, Context{})
	require.NoError(t, err)
	require.Equal(t, `widgets.Banner("hi", 2)`, res.Invocation())
}

func TestDefaultTaskCheckbox_CarriesCheckedFlag(t *testing.T) {
	table := NewTable()
	res, err := table.Render(&mdast.Node{Kind: mdast.KindTaskCheckbox, Checked: true}, Context{})
	require.NoError(t, err)
	require.Equal(t, "html.Checkbox(true)", res.Invocation())
}

func TestRender_Idempotent(t *testing.T) {
	table := NewTable()
	node := &mdast.Node{
		Kind:        mdast.KindLink,
		Destination: "/page",
		Children:    []*mdast.Node{mdast.Text("Click")},
	}
	ctx := Context{UseEnhancedComponents: true}

	first, err := table.Render(node, ctx)
	require.NoError(t, err)
	second, err := table.Render(node, ctx)
	require.NoError(t, err)
	require.Equal(t, first.Invocation(), second.Invocation())
	require.Equal(t, first.Children, second.Children)
}

func TestQuoteArg(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", `"hello"`},
		{"quotes", `a "b"`, `"a \"b\""`},
		{"backslash", `a\b`, `"a\\b"`},
		{"newline", "a\nb", `"a\nb"`},
		{"tab", "a\tb", `"a\tb"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, QuoteArg(tc.in))
		})
	}
}
