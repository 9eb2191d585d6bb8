package dom

import "golang.org/x/net/html"

// FindByClass returns the first element at or under root carrying the
// given CSS class, in depth-first order, or nil if none matches.
func FindByClass(root *html.Node, class string) *html.Node {
	if root == nil {
		return nil
	}
	if root.Type == html.ElementNode && HasClass(root, class) {
		return root
	}
	for child := root.FirstChild; child != nil; child = child.NextSibling {
		if found := FindByClass(child, class); found != nil {
			return found
		}
	}
	return nil
}

// FindByAttr returns the first element at or under root whose named
// attribute equals value, in depth-first order, or nil if none matches.
func FindByAttr(root *html.Node, key, value string) *html.Node {
	if root == nil {
		return nil
	}
	if root.Type == html.ElementNode {
		if got, ok := Attr(root, key); ok && got == value {
			return root
		}
	}
	for child := root.FirstChild; child != nil; child = child.NextSibling {
		if found := FindByAttr(child, key, value); found != nil {
			return found
		}
	}
	return nil
}

// FindAllWithAttr collects every element at or under root that carries
// the named attribute, in depth-first order.
func FindAllWithAttr(root *html.Node, key string) []*html.Node {
	var found []*html.Node
	collectWithAttr(root, key, &found)
	return found
}

func collectWithAttr(n *html.Node, key string, found *[]*html.Node) {
	if n == nil {
		return
	}
	if n.Type == html.ElementNode {
		if _, ok := Attr(n, key); ok {
			*found = append(*found, n)
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		collectWithAttr(child, key, found)
	}
}
