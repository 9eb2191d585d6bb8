package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func TestMakeBuildsElementWithClassesAndSortedAttrs(t *testing.T) {
	node := Make("div", []string{"cdx-input", "cta-block__title"}, map[string]string{
		"data-placeholder": "Enter a title",
		"contenteditable":  "true",
	})

	require.Equal(t, html.ElementNode, node.Type)
	assert.Equal(t, "div", node.Data)
	assert.Equal(t, atom.Div, node.DataAtom)

	// class first, then attributes in sorted key order.
	require.Len(t, node.Attr, 3)
	assert.Equal(t, "class", node.Attr[0].Key)
	assert.Equal(t, "cdx-input cta-block__title", node.Attr[0].Val)
	assert.Equal(t, "contenteditable", node.Attr[1].Key)
	assert.Equal(t, "data-placeholder", node.Attr[2].Key)
}

func TestMakeWithoutClassesOrAttrs(t *testing.T) {
	node := Make("blockquote", nil, nil)
	assert.Empty(t, node.Attr)
	assert.Equal(t, atom.Blockquote, node.DataAtom)
}

func TestAttrHelpers(t *testing.T) {
	node := Make("div", []string{"a"}, nil)

	value, ok := Attr(node, "class")
	require.True(t, ok)
	assert.Equal(t, "a", value)

	_, ok = Attr(node, "data-id")
	assert.False(t, ok)

	SetAttr(node, "data-id", "x1")
	value, ok = Attr(node, "data-id")
	require.True(t, ok)
	assert.Equal(t, "x1", value)

	SetAttr(node, "data-id", "x2")
	value, _ = Attr(node, "data-id")
	assert.Equal(t, "x2", value)
}

func TestHasClassMatchesWholeTokens(t *testing.T) {
	node := Make("div", []string{"cta-block", "cdx-block"}, nil)

	assert.True(t, HasClass(node, "cta-block"))
	assert.True(t, HasClass(node, "cdx-block"))
	assert.False(t, HasClass(node, "cta"))
	assert.False(t, HasClass(node, "block"))
}

func TestAddClass(t *testing.T) {
	node := Make("div", nil, nil)

	AddClass(node, "one")
	AddClass(node, "two")
	AddClass(node, "one")

	value, _ := Attr(node, "class")
	assert.Equal(t, "one two", value)
}

func TestFindByClassDepthFirst(t *testing.T) {
	root := Make("div", nil, nil)
	inner := Make("section", nil, nil)
	first := Make("span", []string{"target"}, nil)
	second := Make("span", []string{"target"}, nil)
	inner.AppendChild(first)
	root.AppendChild(inner)
	root.AppendChild(second)

	found := FindByClass(root, "target")
	assert.Same(t, first, found)

	assert.Nil(t, FindByClass(root, "absent"))
	assert.Nil(t, FindByClass(nil, "target"))
}

func TestFindByClassMatchesRootItself(t *testing.T) {
	root := Make("div", []string{"target"}, nil)
	assert.Same(t, root, FindByClass(root, "target"))
}

func TestFindByAttr(t *testing.T) {
	root := Make("div", nil, nil)
	a := Make("div", nil, map[string]string{"data-id": "a"})
	b := Make("div", nil, map[string]string{"data-id": "b"})
	root.AppendChild(a)
	root.AppendChild(b)

	assert.Same(t, b, FindByAttr(root, "data-id", "b"))
	assert.Nil(t, FindByAttr(root, "data-id", "c"))
}

func TestFindAllWithAttrPreservesOrder(t *testing.T) {
	root := Make("div", nil, nil)
	outer := Make("div", nil, map[string]string{"data-tool": "cta"})
	nested := Make("div", nil, map[string]string{"data-tool": "quote"})
	outer.AppendChild(nested)
	root.AppendChild(outer)

	found := FindAllWithAttr(root, "data-tool")
	require.Len(t, found, 2)
	assert.Same(t, outer, found[0])
	assert.Same(t, nested, found[1])
}

func TestSetInnerHTMLReplacesChildren(t *testing.T) {
	node := Make("div", nil, nil)
	node.AppendChild(Text("old"))

	SetInnerHTML(node, "new <b>content</b>")
	assert.Equal(t, "new <b>content</b>", InnerHTML(node))

	SetInnerHTML(node, "")
	assert.Nil(t, node.FirstChild)
}

func TestInnerHTMLRoundTrip(t *testing.T) {
	fragments := []string{
		"",
		"Hello World",
		"line one<br>line two",
		"<b>bold</b> and <i>italic</i>",
		"nested <span>a <b>b</b></span> tail",
		"amp &amp; lt &lt; entities",
		`<a href="https://example.com/?a=1&amp;b=2">link</a>`,
		"<br><br>",
	}

	for _, fragment := range fragments {
		node := Make("div", nil, nil)
		SetInnerHTML(node, fragment)
		assert.Equal(t, fragment, InnerHTML(node), "fragment %q should round-trip", fragment)
	}
}

func TestRenderVoidElementsUnslashed(t *testing.T) {
	node := Make("div", nil, nil)
	node.AppendChild(Make("br", nil, nil))
	node.AppendChild(Make("img", nil, map[string]string{"src": "x.png"}))

	assert.Equal(t, `<div><br><img src="x.png"></div>`, Render(node))
}

func TestRenderEscapesTextAndAttributes(t *testing.T) {
	node := Make("div", nil, map[string]string{"title": `say "hi" & bye`})
	node.AppendChild(Text("1 < 2 & 3 > 2"))

	assert.Equal(t, `<div title="say &quot;hi&quot; &amp; bye">1 &lt; 2 &amp; 3 &gt; 2</div>`, Render(node))
}

func TestRenderDropsNothingFromComments(t *testing.T) {
	node := Make("div", nil, nil)
	SetInnerHTML(node, "a<!-- note -->b")

	assert.Equal(t, "a<!-- note -->b", InnerHTML(node))
}

func TestParseFragmentDetachesNodes(t *testing.T) {
	nodes := ParseFragment("<b>x</b><i>y</i>")
	require.Len(t, nodes, 2)
	for _, n := range nodes {
		assert.Nil(t, n.Parent)
	}
}

func TestParseFragmentEmpty(t *testing.T) {
	assert.Nil(t, ParseFragment(""))
}
