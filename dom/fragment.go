package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseFragment parses markup the way a browser parses an innerHTML
// assignment on a div, returning the detached top-level nodes. The
// HTML5 parser does not fail on malformed markup and the input is an
// in-memory string, so there is no error path.
func ParseFragment(fragment string) []*html.Node {
	if fragment == "" {
		return nil
	}
	context := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), context)
	if err != nil {
		return nil
	}
	return nodes
}

// SetInnerHTML replaces n's children with the parsed fragment,
// mirroring an innerHTML assignment.
func SetInnerHTML(n *html.Node, fragment string) {
	for n.FirstChild != nil {
		n.RemoveChild(n.FirstChild)
	}
	for _, child := range ParseFragment(fragment) {
		n.AppendChild(child)
	}
}
