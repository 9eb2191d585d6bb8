package sanitize

import (
	"golang.org/x/net/html"

	"github.com/editorkit/ctablock/dom"
)

// Clean rewrites an HTML fragment so only policy-allowed markup
// survives. Disallowed elements are unwrapped (their children are
// kept), disallowed attributes are dropped from allowed tags, and
// comments are removed. A nil or empty policy reduces the fragment to
// its text content. Cleaning is idempotent.
func Clean(fragment string, policy Policy) string {
	container := dom.Make("div", nil, nil)
	for _, node := range dom.ParseFragment(fragment) {
		for _, cleaned := range cleanNode(node, policy) {
			container.AppendChild(cleaned)
		}
	}
	return dom.InnerHTML(container)
}

// cleanNode copies the allowed parts of one node. Elements outside the
// policy dissolve into their cleaned children.
func cleanNode(n *html.Node, policy Policy) []*html.Node {
	switch n.Type {
	case html.TextNode:
		return []*html.Node{dom.Text(n.Data)}
	case html.ElementNode:
		children := cleanChildren(n, policy)
		if !policy.Allows(n.Data) {
			return children
		}
		clone := &html.Node{
			Type:     html.ElementNode,
			Data:     n.Data,
			DataAtom: n.DataAtom,
		}
		for _, attr := range n.Attr {
			if policy.AllowsAttr(n.Data, attr.Key) {
				clone.Attr = append(clone.Attr, attr)
			}
		}
		for _, child := range children {
			clone.AppendChild(child)
		}
		return []*html.Node{clone}
	default:
		// Comments and anything exotic never survive.
		return nil
	}
}

func cleanChildren(n *html.Node, policy Policy) []*html.Node {
	var out []*html.Node
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		out = append(out, cleanNode(child, policy)...)
	}
	return out
}
