// Package dom builds, queries, and serializes HTML element subtrees.
// It works directly on golang.org/x/net/html nodes and speaks the
// browser innerHTML dialect: fragments parse the way an innerHTML
// assignment would, and serialization writes void elements without a
// self-closing slash so round trips stay byte-stable.
package dom

import (
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Make builds a detached element node with the given tag, CSS classes,
// and attributes. Attributes are written in sorted key order so
// serialization is deterministic.
func Make(tag string, classes []string, attrs map[string]string) *html.Node {
	node := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	if len(classes) > 0 {
		node.Attr = append(node.Attr, html.Attribute{Key: "class", Val: strings.Join(classes, " ")})
	}
	if len(attrs) > 0 {
		keys := make([]string, 0, len(attrs))
		for key := range attrs {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			node.Attr = append(node.Attr, html.Attribute{Key: key, Val: attrs[key]})
		}
	}
	return node
}

// Text builds a detached text node.
func Text(content string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: content}
}

// Attr returns the value of the named attribute on n.
func Attr(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// SetAttr sets or replaces the named attribute on n.
func SetAttr(n *html.Node, key, value string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

// HasClass reports whether n carries the given CSS class.
func HasClass(n *html.Node, class string) bool {
	value, ok := Attr(n, "class")
	if !ok {
		return false
	}
	for _, candidate := range strings.Fields(value) {
		if candidate == class {
			return true
		}
	}
	return false
}

// AddClass appends a CSS class to n unless already present.
func AddClass(n *html.Node, class string) {
	if HasClass(n, class) {
		return
	}
	value, ok := Attr(n, "class")
	if !ok || value == "" {
		SetAttr(n, "class", class)
		return
	}
	SetAttr(n, "class", value+" "+class)
}
